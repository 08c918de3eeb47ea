package mirrorrepo

import (
	"context"
	"sync"
	"time"

	"gotire/internal/domain"
	"gotire/internal/pkg/logger"
)

// Writer é o contrato de escrita do espelho remoto (implementado por Repository).
type Writer interface {
	InsertStockEntries(ctx context.Context, entries []domain.StockEntry) error
	UpdateStockEntries(ctx context.Context, entries []domain.StockEntry) error
	InsertMovements(ctx context.Context, movements []domain.Movement) error
	InsertConsumptions(ctx context.Context, consumptions []domain.Consumption) error
}

// QueueSize é a capacidade da fila do espelho. Com a fila cheia o chamador espera.
const QueueSize = 256

// Async despacha escritas ao espelho sem bloquear o chamador. Um único worker
// consome a fila, então as escritas chegam ao banco remoto na ordem em que foram
// despachadas. Falhas são registradas no log e descartadas: não há retry nem fila
// de reconciliação.
type Async struct {
	writer  Writer
	timeout time.Duration
	logger  logger.Logger
	queue   chan job
	wg      sync.WaitGroup
}

type job struct {
	op    string
	count int
	fn    func(ctx context.Context) error
}

// NewAsync cria o despachante e inicia o worker. timeout limita cada escrita individualmente.
func NewAsync(writer Writer, timeout time.Duration, log logger.Logger) *Async {
	a := &Async{writer: writer, timeout: timeout, logger: log, queue: make(chan job, QueueSize)}
	go a.run()
	return a
}

func (a *Async) run() {
	for j := range a.queue {
		a.write(j)
		a.wg.Done()
	}
}

func (a *Async) write(j job) {
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	if err := j.fn(ctx); err != nil {
		a.logger.Error("Falha ao espelhar "+j.op+" no banco remoto.", err)
		return
	}
	a.logger.Debug("Espelho remoto atualizado.", map[string]interface{}{"op": j.op, "count": j.count})
}

func (a *Async) dispatch(op string, count int, fn func(ctx context.Context) error) {
	if count == 0 {
		return
	}
	a.wg.Add(1)
	a.queue <- job{op: op, count: count, fn: fn}
}

func (a *Async) InsertStockEntries(entries []domain.StockEntry) {
	batch := append([]domain.StockEntry(nil), entries...)
	a.dispatch("insert stock_entries", len(batch), func(ctx context.Context) error {
		return a.writer.InsertStockEntries(ctx, batch)
	})
}

func (a *Async) UpdateStockEntries(entries []domain.StockEntry) {
	batch := append([]domain.StockEntry(nil), entries...)
	a.dispatch("update stock_entries", len(batch), func(ctx context.Context) error {
		return a.writer.UpdateStockEntries(ctx, batch)
	})
}

func (a *Async) InsertMovements(movements []domain.Movement) {
	batch := append([]domain.Movement(nil), movements...)
	a.dispatch("insert tire_movements", len(batch), func(ctx context.Context) error {
		return a.writer.InsertMovements(ctx, batch)
	})
}

func (a *Async) InsertConsumptions(consumptions []domain.Consumption) {
	batch := append([]domain.Consumption(nil), consumptions...)
	a.dispatch("insert tire_consumption", len(batch), func(ctx context.Context) error {
		return a.writer.InsertConsumptions(ctx, batch)
	})
}

// Wait bloqueia até a fila esvaziar (shutdown e testes).
func (a *Async) Wait() {
	a.wg.Wait()
}

// Nop é o espelho usado quando DATABASE_URL não está configurada.
type Nop struct{}

func (Nop) InsertStockEntries([]domain.StockEntry) {}
func (Nop) UpdateStockEntries([]domain.StockEntry) {}
func (Nop) InsertMovements([]domain.Movement) {}
func (Nop) InsertConsumptions([]domain.Consumption) {}
func (Nop) Wait() {}
