// Package stockservice aplica transições de estado em lote sobre entradas de
// estoque: movimentação entre containers, transferência para piloto e troca de status.
package stockservice

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"gotire/internal/domain"
	apperror "gotire/internal/errors"
	"gotire/internal/pkg/logger"
)

// StockRepository define o contrato que o Serviço de Estoque espera do store.
type StockRepository interface {
	GetTireModelByID(ctx context.Context, id string) (domain.TireModel, error)
	GetContainerByID(ctx context.Context, id string) (domain.Container, error)
	FindTireStatusByName(ctx context.Context, name string) (domain.TireStatus, bool, error)
	FindStockEntry(ctx context.Context, barcode string) (domain.StockEntry, bool, error)
	FilterStockEntries(ctx context.Context, filter domain.StockEntryFilter) ([]domain.StockEntry, error)
	SaveStockEntry(ctx context.Context, entry domain.StockEntry) (domain.StockEntry, error)
	UpdateStockEntriesBatch(ctx context.Context, updates []domain.BarcodeUpdate) (int, error)
	DeleteStockEntry(ctx context.Context, id string) error
	AppendMovements(ctx context.Context, records []domain.Movement) ([]domain.Movement, error)
	AppendConsumptions(ctx context.Context, records []domain.Consumption) ([]domain.Consumption, error)
	Publish(ev domain.Event)
}

// Mirror recebe as escritas para o espelho remoto (fire-and-forget).
type Mirror interface {
	InsertStockEntries(entries []domain.StockEntry)
	UpdateStockEntries(entries []domain.StockEntry)
	InsertMovements(movements []domain.Movement)
	InsertConsumptions(consumptions []domain.Consumption)
}

// Options ajusta o motor de lotes.
type Options struct {
	// YieldEvery cede o processador a cada N itens avaliados (0 desativa).
	YieldEvery int
	// ActiveStatus é o status atribuído a um pneu "Novo" quando ele é movido.
	ActiveStatus domain.Status
}

// DefaultOptions devolve os valores usados quando nada é configurado.
func DefaultOptions() Options {
	return Options{YieldEvery: 50, ActiveStatus: domain.StatusPiloto}
}

// Service é a estrutura que implementa o motor de transições de estoque.
type Service struct {
	repo   StockRepository
	mirror Mirror
	logger logger.Logger
	opts   Options

	// mu serializa os lotes: as pré-condições avaliadas no snapshot valem até o commit.
	mu sync.Mutex
}

// NewService cria e retorna uma nova instância do Serviço de Estoque.
func NewService(repo StockRepository, mirror Mirror, logger logger.Logger, opts Options) *Service {
	if opts.ActiveStatus == "" {
		opts.ActiveStatus = domain.StatusPiloto
	}
	return &Service{repo: repo, mirror: mirror, logger: logger, opts: opts}
}

// Register grava um único pneu vindo do formulário (ou do leitor de código de barras).
func (s *Service) Register(ctx context.Context, req domain.RegisterRequest) (domain.StockEntry, error) {
	s.logger.Debug("Iniciando cadastro de pneu no serviço.", map[string]interface{}{"barcode": req.Barcode})

	if !domain.ValidBarcode(req.Barcode) {
		s.logger.Warn("Código de barras inválido.", map[string]interface{}{"barcode": req.Barcode})
		return domain.StockEntry{}, apperror.NewValidationError("O código de barras deve ter exatamente 8 dígitos numéricos.")
	}
	if req.ModelID == "" {
		return domain.StockEntry{}, apperror.NewValidationError("O modelo do pneu é obrigatório.")
	}

	model, err := s.repo.GetTireModelByID(ctx, req.ModelID)
	if err != nil {
		return domain.StockEntry{}, err
	}

	entry := domain.StockEntry{
		Barcode:   req.Barcode,
		ModelID:   model.ID,
		ModelName: model.Name,
		ModelType: model.Type,
		Status:    domain.StatusNovo,
		SessionID: req.SessionID,
	}
	if req.ContainerID != "" {
		container, err := s.repo.GetContainerByID(ctx, req.ContainerID)
		if err != nil {
			return domain.StockEntry{}, err
		}
		entry.ContainerID = container.ID
		entry.ContainerName = container.Name
	}

	saved, err := s.repo.SaveStockEntry(ctx, entry)
	if err != nil {
		if !apperror.IsConflict(err) {
			s.logger.Error("Falha ao gravar pneu no repositório.", err)
		}
		return domain.StockEntry{}, err
	}

	s.mirror.InsertStockEntries([]domain.StockEntry{saved})
	s.repo.Publish(domain.Event{Kind: domain.EventTireAdded, Count: 1, Barcodes: []string{saved.Barcode}})

	s.logger.Info("Pneu cadastrado com sucesso.", map[string]interface{}{"barcode": saved.Barcode, "model": saved.ModelName})
	return saved, nil
}

// GetByBarcode busca uma entrada pelo código, inclusive descartadas.
func (s *Service) GetByBarcode(ctx context.Context, barcode string) (domain.StockEntry, error) {
	if !domain.ValidBarcode(barcode) {
		return domain.StockEntry{}, apperror.NewValidationError("O código de barras deve ter exatamente 8 dígitos numéricos.")
	}
	entry, found, err := s.repo.FindStockEntry(ctx, barcode)
	if err != nil {
		return domain.StockEntry{}, err
	}
	if !found {
		return domain.StockEntry{}, apperror.NewNotFoundError(fmt.Sprintf("pneu com código %s não encontrado", barcode))
	}
	return entry, nil
}

// List devolve as entradas que satisfazem o filtro.
func (s *Service) List(ctx context.Context, filter domain.StockEntryFilter) ([]domain.StockEntry, error) {
	return s.repo.FilterStockEntries(ctx, filter)
}

// Purge remove definitivamente uma entrada (operação administrativa).
func (s *Service) Purge(ctx context.Context, id, actor string) error {
	if err := s.repo.DeleteStockEntry(ctx, id); err != nil {
		return err
	}
	s.logger.Warn("Entrada de estoque expurgada.", map[string]interface{}{"id": id, "actor": actor})
	return nil
}

// Move leva os pneus para outro container. Um pneu "Novo" movido passa para o
// status ativo configurado, na movimentação individual ou em lote.
func (s *Service) Move(ctx context.Context, req domain.MoveRequest, actor string) (domain.BatchResult, error) {
	s.logger.Debug("Iniciando movimentação em lote.", map[string]interface{}{"count": len(req.Barcodes), "container_id": req.ContainerID})

	if req.ContainerID == "" {
		return domain.BatchResult{}, apperror.NewValidationError("O container de destino é obrigatório.")
	}
	if len(req.Barcodes) == 0 {
		return domain.BatchResult{}, apperror.NewValidationError("Informe ao menos um código de barras.")
	}
	target, err := s.repo.GetContainerByID(ctx, req.ContainerID)
	if err != nil {
		return domain.BatchResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.newBatch(ctx)
	if err != nil {
		return domain.BatchResult{}, err
	}

	for i, barcode := range req.Barcodes {
		s.yield(i)

		entry, ok := b.lookup(barcode)
		if !ok {
			continue
		}
		if entry.Status.IsDiscard() {
			b.result.Fail(barcode, "pneu descartado não pode ser movido")
			continue
		}
		if entry.ContainerID == target.ID {
			b.result.Fail(barcode, fmt.Sprintf("pneu já está no container %s", target.Name))
			continue
		}

		toStatus := entry.Status
		if entry.Status == domain.StatusNovo {
			toStatus = s.opts.ActiveStatus
		}
		upd := domain.StockEntryUpdate{ContainerID: &target.ID, ContainerName: &target.Name}
		if toStatus != entry.Status {
			upd.Status = &toStatus
		}

		b.apply(entry, upd)
		b.movements = append(b.movements, domain.Movement{
			Barcode:       barcode,
			ModelName:     entry.ModelName,
			ModelType:     entry.ModelType,
			FromContainer: entry.ContainerName,
			ToContainer:   target.Name,
			FromStatus:    entry.Status,
			ToStatus:      toStatus,
			MovedBy:       actor,
			Reason:        req.Reason,
		})
	}

	if err := s.commit(ctx, b, domain.EventTireMoved); err != nil {
		return domain.BatchResult{}, err
	}
	s.logger.Info("Movimentação em lote concluída.", map[string]interface{}{
		"success": b.result.Success, "errors": b.result.Errors, "container": target.Name, "actor": actor,
	})
	return b.result, nil
}

// TransferToPilot entrega pneus "Novo" a um piloto. Itens em outro status falham
// individualmente com o motivo, sem interromper o lote.
func (s *Service) TransferToPilot(ctx context.Context, req domain.TransferRequest, actor string) (domain.BatchResult, error) {
	s.logger.Debug("Iniciando transferência para piloto.", map[string]interface{}{"count": len(req.Barcodes), "pilot": req.Pilot})

	if len(req.Barcodes) == 0 {
		return domain.BatchResult{}, apperror.NewValidationError("Informe ao menos um código de barras.")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.newBatch(ctx)
	if err != nil {
		return domain.BatchResult{}, err
	}

	piloto := domain.StatusPiloto
	for i, barcode := range req.Barcodes {
		s.yield(i)

		entry, ok := b.lookup(barcode)
		if !ok {
			continue
		}
		if reason := transferBlocker(entry); reason != "" {
			b.result.Fail(barcode, reason)
			continue
		}

		upd := domain.StockEntryUpdate{Status: &piloto, Pilot: &req.Pilot, Team: &req.Team, Notes: &req.Notes}
		if req.SessionID != "" {
			upd.SessionID = &req.SessionID
		}

		b.apply(entry, upd)
		b.consumptions = append(b.consumptions, domain.Consumption{
			Barcode:      barcode,
			Pilot:        req.Pilot,
			Team:         req.Team,
			Notes:        req.Notes,
			RegisteredBy: actor,
		})
	}

	if err := s.commit(ctx, b, domain.EventTireConsumed); err != nil {
		return domain.BatchResult{}, err
	}
	s.logger.Info("Transferência para piloto concluída.", map[string]interface{}{
		"success": b.result.Success, "errors": b.result.Errors, "pilot": req.Pilot, "actor": actor,
	})
	return b.result, nil
}

func transferBlocker(e domain.StockEntry) string {
	switch {
	case e.Status == domain.StatusNovo:
		return ""
	case e.Status == domain.StatusPiloto:
		if e.Pilot != "" {
			return fmt.Sprintf("pneu já está com piloto (%s)", e.Pilot)
		}
		return "pneu já está com piloto"
	case e.Status.IsDiscard():
		return "pneu descartado não pode ser transferido"
	default:
		return fmt.Sprintf("pneu com status '%s' não pode ser transferido; apenas pneus 'Novo'", e.Status)
	}
}

// ChangeStatus troca o status dos pneus. Um status de descarte também remove o
// pneu do container.
func (s *Service) ChangeStatus(ctx context.Context, req domain.StatusRequest, actor string) (domain.BatchResult, error) {
	s.logger.Debug("Iniciando troca de status em lote.", map[string]interface{}{"count": len(req.Barcodes), "status": req.Status})

	if req.Status == "" {
		return domain.BatchResult{}, apperror.NewValidationError("O novo status é obrigatório.")
	}
	if len(req.Barcodes) == 0 {
		return domain.BatchResult{}, apperror.NewValidationError("Informe ao menos um código de barras.")
	}
	registered, found, err := s.repo.FindTireStatusByName(ctx, string(req.Status))
	if err != nil {
		return domain.BatchResult{}, err
	}
	if !found {
		return domain.BatchResult{}, apperror.NewValidationError(fmt.Sprintf("Status '%s' não cadastrado.", req.Status))
	}
	toStatus := domain.Status(registered.Name)

	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.newBatch(ctx)
	if err != nil {
		return domain.BatchResult{}, err
	}

	empty := ""
	for i, barcode := range req.Barcodes {
		s.yield(i)

		entry, ok := b.lookup(barcode)
		if !ok {
			continue
		}
		if entry.Status == toStatus {
			b.result.Fail(barcode, fmt.Sprintf("pneu já está com status '%s'", toStatus))
			continue
		}

		upd := domain.StockEntryUpdate{Status: &toStatus}
		toContainer := entry.ContainerName
		if toStatus.IsDiscard() {
			upd.ContainerID = &empty
			upd.ContainerName = &empty
			toContainer = ""
		}

		b.apply(entry, upd)
		b.movements = append(b.movements, domain.Movement{
			Barcode:       barcode,
			ModelName:     entry.ModelName,
			ModelType:     entry.ModelType,
			FromContainer: entry.ContainerName,
			ToContainer:   toContainer,
			FromStatus:    entry.Status,
			ToStatus:      toStatus,
			MovedBy:       actor,
			Reason:        req.Reason,
		})
	}

	var milestone domain.EventKind
	if toStatus.IsDiscard() {
		milestone = domain.EventTireDiscarded
	}
	if err := s.commit(ctx, b, milestone); err != nil {
		return domain.BatchResult{}, err
	}
	s.logger.Info("Troca de status concluída.", map[string]interface{}{
		"success": b.result.Success, "errors": b.result.Errors, "status": toStatus, "actor": actor,
	})
	return b.result, nil
}

// yield cede o processador periodicamente durante lotes grandes. Não altera
// ordem nem atomicidade: o lote continua sendo gravado de uma vez no final.
func (s *Service) yield(i int) {
	if s.opts.YieldEvery > 0 && i > 0 && i%s.opts.YieldEvery == 0 {
		runtime.Gosched()
	}
}
