package stockrepo

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"gotire/internal/domain"
	apperror "gotire/internal/errors"
)

// GetStockEntries devolve uma cópia da coleção, sem os descartados quando
// includeDiscarded é falso.
func (s *Store) GetStockEntries(ctx context.Context, includeDiscarded bool) ([]domain.StockEntry, error) {
	return s.FilterStockEntries(ctx, domain.StockEntryFilter{IncludeDiscarded: includeDiscarded})
}

// FilterStockEntries devolve as entradas que satisfazem o filtro, na ordem de gravação.
func (s *Store) FilterStockEntries(ctx context.Context, filter domain.StockEntryFilter) ([]domain.StockEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := load[domain.StockEntry](ctx, s, KeyStockEntries)
	if err != nil {
		return nil, err
	}

	out := make([]domain.StockEntry, 0, len(entries))
	for _, e := range entries {
		if filter.Matches(e) {
			out = append(out, e)
		}
	}
	return out, nil
}

// FindStockEntry busca uma entrada pelo código de barras, incluindo descartadas.
func (s *Store) FindStockEntry(ctx context.Context, barcode string) (domain.StockEntry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := load[domain.StockEntry](ctx, s, KeyStockEntries)
	if err != nil {
		return domain.StockEntry{}, false, err
	}
	if i := indexByBarcode(entries, barcode); i >= 0 {
		return entries[i], true, nil
	}
	return domain.StockEntry{}, false, nil
}

// CheckBarcodeExists informa se o código existe em qualquer lugar da coleção,
// inclusive em entradas descartadas: um código descartado nunca é reutilizado.
func (s *Store) CheckBarcodeExists(ctx context.Context, barcode string) (bool, error) {
	_, found, err := s.FindStockEntry(ctx, barcode)
	return found, err
}

// SaveStockEntry grava uma nova entrada. Código duplicado devolve ConflictError e
// a coleção não é alterada.
func (s *Store) SaveStockEntry(ctx context.Context, entry domain.StockEntry) (domain.StockEntry, error) {
	saved, err := s.SaveStockEntries(ctx, []domain.StockEntry{entry})
	if err != nil {
		return domain.StockEntry{}, err
	}
	return saved[0], nil
}

// SaveStockEntries grava várias entradas novas com uma única escrita e um único evento.
// A validação é tudo-ou-nada: qualquer entrada inválida ou duplicada rejeita o lote.
func (s *Store) SaveStockEntries(ctx context.Context, batch []domain.StockEntry) ([]domain.StockEntry, error) {
	if len(batch) == 0 {
		return nil, nil
	}

	prepared := make([]domain.StockEntry, len(batch))
	for i, e := range batch {
		if !domain.ValidBarcode(e.Barcode) {
			return nil, apperror.NewValidationError(fmt.Sprintf("código de barras '%s' deve ter exatamente 8 dígitos numéricos", e.Barcode))
		}
		if e.ModelID == "" {
			return nil, apperror.NewValidationError(fmt.Sprintf("entrada %s sem modelo", e.Barcode))
		}
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		if e.Status == "" {
			e.Status = domain.StatusNovo
		}
		if e.Timestamp.IsZero() {
			e.Timestamp = s.now()
		}
		prepared[i] = e
	}

	err := s.mutate(func() (domain.Event, error) {
		entries, err := load[domain.StockEntry](ctx, s, KeyStockEntries)
		if err != nil {
			return domain.Event{}, err
		}

		seen := make(map[string]bool, len(entries)+len(prepared))
		ids := make(map[string]bool, len(entries)+len(prepared))
		for _, e := range entries {
			seen[e.Barcode] = true
			ids[e.ID] = true
		}
		barcodes := make([]string, 0, len(prepared))
		for _, e := range prepared {
			if seen[e.Barcode] {
				s.logger.Warn("Código de barras duplicado rejeitado.", map[string]interface{}{"barcode": e.Barcode})
				return domain.Event{}, apperror.NewConflictError(fmt.Sprintf("código de barras %s já cadastrado", e.Barcode))
			}
			if ids[e.ID] {
				return domain.Event{}, apperror.NewConflictError(fmt.Sprintf("entrada com ID %s já existe", e.ID))
			}
			seen[e.Barcode] = true
			ids[e.ID] = true
			barcodes = append(barcodes, e.Barcode)
		}

		if err := persist(ctx, s, KeyStockEntries, append(entries, prepared...)); err != nil {
			return domain.Event{}, err
		}

		s.logger.Info("Entradas de estoque gravadas.", map[string]interface{}{"count": len(prepared)})
		return domain.Event{Kind: domain.EventStockEntriesUpdated, Count: len(prepared), Barcodes: barcodes}, nil
	})
	if err != nil {
		return nil, err
	}
	return prepared, nil
}

// UpdateStockEntry aplica uma atualização parcial à entrada com o código informado.
// Devolve false, sem erro, quando nenhuma entrada corresponde.
func (s *Store) UpdateStockEntry(ctx context.Context, barcode string, upd domain.StockEntryUpdate) (bool, error) {
	n, err := s.UpdateStockEntriesBatch(ctx, []domain.BarcodeUpdate{{Barcode: barcode, Update: upd}})
	return n == 1, err
}

// UpdateStockEntriesBatch aplica todas as atualizações a uma cópia de trabalho,
// grava uma única vez e emite um único evento. Códigos inexistentes são ignorados;
// o retorno é a quantidade de entradas atualizadas.
func (s *Store) UpdateStockEntriesBatch(ctx context.Context, updates []domain.BarcodeUpdate) (int, error) {
	if len(updates) == 0 {
		return 0, nil
	}

	var updated int
	err := s.mutate(func() (domain.Event, error) {
		entries, err := load[domain.StockEntry](ctx, s, KeyStockEntries)
		if err != nil {
			return domain.Event{}, err
		}

		index := make(map[string]int, len(entries))
		for i, e := range entries {
			index[e.Barcode] = i
		}

		barcodes := make([]string, 0, len(updates))
		for _, u := range updates {
			i, ok := index[u.Barcode]
			if !ok {
				s.logger.Warn("Atualização ignorada: código não encontrado.", map[string]interface{}{"barcode": u.Barcode})
				continue
			}
			entries[i] = u.Update.Apply(entries[i])
			barcodes = append(barcodes, u.Barcode)
		}

		if len(barcodes) == 0 {
			return domain.Event{}, nil
		}
		if err := persist(ctx, s, KeyStockEntries, entries); err != nil {
			return domain.Event{}, err
		}

		updated = len(barcodes)
		s.logger.Info("Entradas de estoque atualizadas.", map[string]interface{}{"count": updated})
		return domain.Event{Kind: domain.EventStockEntriesUpdated, Count: updated, Barcodes: barcodes}, nil
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}

// DeleteStockEntry remove definitivamente uma entrada (expurgo administrativo).
func (s *Store) DeleteStockEntry(ctx context.Context, id string) error {
	return s.mutate(func() (domain.Event, error) {
		entries, err := load[domain.StockEntry](ctx, s, KeyStockEntries)
		if err != nil {
			return domain.Event{}, err
		}

		for i, e := range entries {
			if e.ID != id {
				continue
			}
			entries = append(entries[:i], entries[i+1:]...)
			if err := persist(ctx, s, KeyStockEntries, entries); err != nil {
				return domain.Event{}, err
			}
			s.logger.Info("Entrada de estoque expurgada.", map[string]interface{}{"id": id, "barcode": e.Barcode})
			return domain.Event{Kind: domain.EventStockEntriesUpdated, Count: 1, Barcodes: []string{e.Barcode}}, nil
		}

		return domain.Event{}, apperror.NewNotFoundError(fmt.Sprintf("entrada de estoque com ID %s não encontrada", id))
	})
}

func indexByBarcode(entries []domain.StockEntry, barcode string) int {
	for i, e := range entries {
		if e.Barcode == barcode {
			return i
		}
	}
	return -1
}
