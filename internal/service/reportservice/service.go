// Package reportservice monta as visões derivadas do estoque (ocupação, descartes,
// contadores de sessão) e as exportações em CSV e XLSX. Nenhum agregado é
// armazenado: tudo é recalculado a partir da coleção de entradas a cada leitura.
package reportservice

import (
	"context"
	"sort"

	"gotire/internal/domain"
	apperror "gotire/internal/errors"
	"gotire/internal/pkg/logger"
)

// ReportRepository define o contrato que o Serviço de Relatórios espera do store.
type ReportRepository interface {
	GetContainers(ctx context.Context) ([]domain.Container, error)
	GetStockEntries(ctx context.Context, includeDiscarded bool) ([]domain.StockEntry, error)
	FilterStockEntries(ctx context.Context, filter domain.StockEntryFilter) ([]domain.StockEntry, error)
	GetMovements(ctx context.Context) ([]domain.Movement, error)
	GetConsumptions(ctx context.Context) ([]domain.Consumption, error)
}

// RemoteReader lê as entradas do espelho remoto. Pode ser nil quando o espelho está desativado.
type RemoteReader interface {
	ListStockEntries(ctx context.Context) ([]domain.StockEntry, error)
}

// Service é a estrutura que implementa os relatórios.
type Service struct {
	repo   ReportRepository
	remote RemoteReader
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Relatórios.
func NewService(repo ReportRepository, remote RemoteReader, logger logger.Logger) *Service {
	return &Service{repo: repo, remote: remote, logger: logger}
}

// Occupancy devolve a ocupação de cada container. A capacidade é informativa:
// Free nunca é negativo mesmo quando o container está acima da capacidade.
func (s *Service) Occupancy(ctx context.Context) ([]domain.ContainerOccupancy, error) {
	containers, err := s.repo.GetContainers(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.ContainerOccupancy, 0, len(containers))
	for _, c := range containers {
		o := domain.ContainerOccupancy{
			ID:       c.ID,
			Name:     c.Name,
			Location: c.Location,
			Capacity: c.Capacity,
			Current:  c.Current,
		}
		if c.Capacity > c.Current {
			o.Free = c.Capacity - c.Current
		}
		if c.Capacity > 0 {
			o.Ratio = float64(c.Current) / float64(c.Capacity)
		}
		out = append(out, o)
	}
	return out, nil
}

// DiscardStats conta os descartes por variante, por modelo e por piloto.
func (s *Service) DiscardStats(ctx context.Context) (domain.DiscardStats, error) {
	entries, err := s.repo.GetStockEntries(ctx, true)
	if err != nil {
		return domain.DiscardStats{}, err
	}

	stats := domain.DiscardStats{ByModel: map[string]int{}, ByPilot: map[string]int{}}
	for _, e := range entries {
		switch e.Status {
		case domain.StatusDescarte:
			stats.Descarte++
		case domain.StatusDescartePiloto:
			stats.DescartePiloto++
		default:
			continue
		}
		stats.Total++
		stats.ByModel[e.ModelName]++
		if e.Pilot != "" {
			stats.ByPilot[e.Pilot]++
		}
	}
	return stats, nil
}

// DiscardHistory devolve as entradas descartadas, da mais recente para a mais antiga.
func (s *Service) DiscardHistory(ctx context.Context) ([]domain.DiscardRecord, error) {
	entries, err := s.repo.GetStockEntries(ctx, true)
	if err != nil {
		return nil, err
	}
	movements, err := s.repo.GetMovements(ctx)
	if err != nil {
		return nil, err
	}

	// último movimento para descarte de cada código
	last := make(map[string]domain.Movement)
	for _, m := range movements {
		if m.ToStatus.IsDiscard() {
			last[m.Barcode] = m
		}
	}

	var out []domain.DiscardRecord
	for _, e := range entries {
		if !e.Status.IsDiscard() {
			continue
		}
		rec := domain.DiscardRecord{StockEntry: e, DiscardedAt: e.Timestamp}
		if m, ok := last[e.Barcode]; ok {
			rec.DiscardedAt = m.Timestamp
			rec.DiscardedBy = m.MovedBy
			rec.Reason = m.Reason
		}
		out = append(out, rec)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DiscardedAt.After(out[j].DiscardedAt)
	})
	return out, nil
}

// SessionCounters conta, por modelo, as entradas de uma sessão em cada status.
// Descartadas entram na contagem. A ordem segue a primeira aparição do modelo.
func (s *Service) SessionCounters(ctx context.Context, sessionID string) ([]domain.SessionCounter, error) {
	if sessionID == "" {
		return nil, apperror.NewValidationError("O ID da sessão é obrigatório.")
	}
	entries, err := s.repo.FilterStockEntries(ctx, domain.StockEntryFilter{IncludeDiscarded: true, SessionID: sessionID})
	if err != nil {
		return nil, err
	}

	index := make(map[string]int)
	var out []domain.SessionCounter
	for _, e := range entries {
		i, ok := index[e.ModelID]
		if !ok {
			i = len(out)
			index[e.ModelID] = i
			out = append(out, domain.SessionCounter{
				ModelID:   e.ModelID,
				ModelName: e.ModelName,
				ModelType: e.ModelType,
				ByStatus:  map[domain.Status]int{},
			})
		}
		out[i].Total++
		out[i].ByStatus[e.Status]++
	}
	return out, nil
}

// MirrorDrift compara os códigos do store local com os do espelho remoto.
func (s *Service) MirrorDrift(ctx context.Context) (domain.MirrorDrift, error) {
	if s.remote == nil {
		return domain.MirrorDrift{}, apperror.NewPreconditionError("o espelho remoto está desativado")
	}

	local, err := s.repo.GetStockEntries(ctx, true)
	if err != nil {
		return domain.MirrorDrift{}, err
	}
	remote, err := s.remote.ListStockEntries(ctx)
	if err != nil {
		s.logger.Error("Falha ao ler o espelho remoto.", err)
		return domain.MirrorDrift{}, err
	}

	drift := domain.MirrorDrift{
		LocalCount:     len(local),
		RemoteCount:    len(remote),
		LocalOnly:      []string{},
		RemoteOnly:     []string{},
		StatusMismatch: []domain.StatusDrift{},
	}
	remoteByBarcode := make(map[string]domain.StockEntry, len(remote))
	for _, e := range remote {
		remoteByBarcode[e.Barcode] = e
	}
	seen := make(map[string]bool, len(local))
	for _, e := range local {
		seen[e.Barcode] = true
		r, ok := remoteByBarcode[e.Barcode]
		if !ok {
			drift.LocalOnly = append(drift.LocalOnly, e.Barcode)
			continue
		}
		if r.Status != e.Status {
			drift.StatusMismatch = append(drift.StatusMismatch, domain.StatusDrift{Barcode: e.Barcode, Local: e.Status, Remote: r.Status})
		}
	}
	for _, e := range remote {
		if !seen[e.Barcode] {
			drift.RemoteOnly = append(drift.RemoteOnly, e.Barcode)
		}
	}

	s.logger.Info("Comparação com o espelho remoto concluída.", map[string]interface{}{
		"local_only":  len(drift.LocalOnly),
		"remote_only": len(drift.RemoteOnly),
		"mismatch":    len(drift.StatusMismatch),
	})
	return drift, nil
}
