// Package importservice resolve descrições livres de modelos e transforma texto
// colado ou planilhas em entradas de estoque.
package importservice

import (
	"context"
	"sync"

	"gotire/internal/domain"
	apperror "gotire/internal/errors"
	"gotire/internal/pkg/logger"
)

// Repository define o contrato que o Serviço de Importação espera do store.
type Repository interface {
	GetTireModels(ctx context.Context) ([]domain.TireModel, error)
	GetStockEntries(ctx context.Context, includeDiscarded bool) ([]domain.StockEntry, error)
	SaveStockEntries(ctx context.Context, entries []domain.StockEntry) ([]domain.StockEntry, error)
	Publish(ev domain.Event)
}

// Mirror recebe as inserções para o espelho remoto (fire-and-forget).
type Mirror interface {
	InsertStockEntries(entries []domain.StockEntry)
}

// Service é a estrutura que implementa a importação em massa.
type Service struct {
	repo   Repository
	mirror Mirror
	logger logger.Logger
	// mu serializa importações: o snapshot de códigos do parser vale até a gravação.
	mu sync.Mutex
}

// NewService cria e retorna uma nova instância do Serviço de Importação.
func NewService(repo Repository, mirror Mirror, logger logger.Logger) *Service {
	return &Service{repo: repo, mirror: mirror, logger: logger}
}

// Preview processa o texto sem gravar nada.
func (s *Service) Preview(ctx context.Context, text string) (domain.ParseResult, error) {
	s.logger.Debug("Iniciando pré-visualização de importação.", map[string]interface{}{"bytes": len(text)})

	parser, err := s.newParser(ctx)
	if err != nil {
		return domain.ParseResult{}, err
	}
	result := parser.Parse(text)

	s.logger.Info("Pré-visualização concluída.", map[string]interface{}{
		"valid":    len(result.Entries),
		"errors":   len(result.Errors),
		"warnings": len(result.Warnings),
	})
	return result, nil
}

// Import processa o texto e grava o subconjunto válido numa única escrita.
// Linhas com erro não impedem a gravação das demais.
func (s *Service) Import(ctx context.Context, text, actor string) (domain.ImportResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	parsed, err := s.Preview(ctx, text)
	if err != nil {
		return domain.ImportResult{}, err
	}
	result := domain.ImportResult{ParseResult: parsed}
	if len(parsed.Entries) == 0 {
		s.logger.Warn("Importação sem entradas válidas.", map[string]interface{}{"actor": actor, "errors": len(parsed.Errors)})
		return result, nil
	}

	saved, err := s.repo.SaveStockEntries(ctx, parsed.Entries)
	if err != nil {
		s.logger.Error("Falha ao gravar entradas importadas.", err)
		if apperror.IsConflict(err) {
			return domain.ImportResult{}, err
		}
		return domain.ImportResult{}, apperror.NewInternalError("Falha interna ao gravar a importação.", err)
	}
	result.Entries = saved
	result.Imported = len(saved)

	s.mirror.InsertStockEntries(saved)

	barcodes := make([]string, len(saved))
	for i, e := range saved {
		barcodes[i] = e.Barcode
	}
	s.repo.Publish(domain.Event{Kind: domain.EventTireAdded, Count: len(saved), Barcodes: barcodes})

	s.logger.Info("Importação gravada com sucesso.", map[string]interface{}{"actor": actor, "imported": result.Imported})
	return result, nil
}

func (s *Service) newParser(ctx context.Context) (*Parser, error) {
	models, err := s.repo.GetTireModels(ctx)
	if err != nil {
		s.logger.Error("Falha ao carregar modelos para importação.", err)
		return nil, err
	}
	entries, err := s.repo.GetStockEntries(ctx, true)
	if err != nil {
		s.logger.Error("Falha ao carregar códigos existentes para importação.", err)
		return nil, err
	}

	existing := make(map[string]bool, len(entries))
	for _, e := range entries {
		existing[e.Barcode] = true
	}
	return NewParser(models, existing), nil
}
