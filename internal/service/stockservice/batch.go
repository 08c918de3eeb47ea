package stockservice

import (
	"context"
	"fmt"

	"gotire/internal/domain"
)

// batch é a cópia de trabalho de uma operação em lote. Cada item é avaliado
// contra o estado já atualizado pelos itens anteriores e o resultado só vai para
// o store uma vez, em commit.
type batch struct {
	entries      map[string]domain.StockEntry
	touched      map[string]bool
	updates      []domain.BarcodeUpdate
	movements    []domain.Movement
	consumptions []domain.Consumption
	result       domain.BatchResult
}

func (s *Service) newBatch(ctx context.Context) (*batch, error) {
	all, err := s.repo.FilterStockEntries(ctx, domain.StockEntryFilter{IncludeDiscarded: true})
	if err != nil {
		s.logger.Error("Falha ao carregar entradas para o lote.", err)
		return nil, err
	}
	b := &batch{
		entries: make(map[string]domain.StockEntry, len(all)),
		touched: make(map[string]bool),
	}
	for _, e := range all {
		b.entries[e.Barcode] = e
	}
	return b, nil
}

// lookup devolve a entrada do código ou registra a falha do item.
func (b *batch) lookup(barcode string) (domain.StockEntry, bool) {
	if !domain.ValidBarcode(barcode) {
		b.result.Fail(barcode, "código de barras deve ter exatamente 8 dígitos numéricos")
		return domain.StockEntry{}, false
	}
	if b.touched[barcode] {
		b.result.Fail(barcode, "código repetido na mesma operação")
		return domain.StockEntry{}, false
	}
	e, ok := b.entries[barcode]
	if !ok {
		b.result.Fail(barcode, fmt.Sprintf("pneu com código %s não encontrado", barcode))
		return domain.StockEntry{}, false
	}
	return e, true
}

func (b *batch) apply(e domain.StockEntry, upd domain.StockEntryUpdate) {
	b.entries[e.Barcode] = upd.Apply(e)
	b.touched[e.Barcode] = true
	b.updates = append(b.updates, domain.BarcodeUpdate{Barcode: e.Barcode, Update: upd})
	b.result.Ok(e.Barcode)
}

func (b *batch) updatedEntries() []domain.StockEntry {
	out := make([]domain.StockEntry, 0, len(b.updates))
	for _, u := range b.updates {
		out = append(out, b.entries[u.Barcode])
	}
	return out
}

func (b *batch) barcodes() []string {
	out := make([]string, 0, len(b.updates))
	for _, u := range b.updates {
		out = append(out, u.Barcode)
	}
	return out
}

// commit grava a auditoria, depois as entradas numa única escrita, despacha o
// espelho e por fim o evento de marco (quando milestone não é vazio).
// A auditoria já gravada não é desfeita se a escrita das entradas falhar.
func (s *Service) commit(ctx context.Context, b *batch, milestone domain.EventKind) error {
	if len(b.updates) == 0 {
		return nil
	}

	var movements []domain.Movement
	var consumptions []domain.Consumption
	var err error
	if len(b.movements) > 0 {
		if movements, err = s.repo.AppendMovements(ctx, b.movements); err != nil {
			s.logger.Error("Falha ao gravar auditoria de movimentação.", err)
			return err
		}
	}
	if len(b.consumptions) > 0 {
		if consumptions, err = s.repo.AppendConsumptions(ctx, b.consumptions); err != nil {
			s.logger.Error("Falha ao gravar auditoria de consumo.", err)
			return err
		}
	}

	n, err := s.repo.UpdateStockEntriesBatch(ctx, b.updates)
	if err != nil {
		s.logger.Error("Falha ao gravar lote de entradas; auditoria mantida.", err)
		return err
	}
	if n != len(b.updates) {
		s.logger.Warn("Lote gravado parcialmente: entradas removidas durante a operação.", map[string]interface{}{
			"expected": len(b.updates), "updated": n,
		})
	}

	s.mirror.UpdateStockEntries(b.updatedEntries())
	if len(movements) > 0 {
		s.mirror.InsertMovements(movements)
	}
	if len(consumptions) > 0 {
		s.mirror.InsertConsumptions(consumptions)
	}

	if milestone != "" {
		s.repo.Publish(domain.Event{Kind: milestone, Count: n, Barcodes: b.barcodes()})
	}
	return nil
}
