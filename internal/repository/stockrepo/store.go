// Package stockrepo é o store de entidades: dono exclusivo das coleções de modelos,
// containers, status, entradas de estoque, registros de auditoria e operadores.
//
// Cada coleção é um array JSON gravado sob uma chave do backend. Todas as chamadas
// são síncronas e serializadas; eventos de mudança são entregues depois que a
// gravação é confirmada, fora do lock, na ordem de inscrição.
package stockrepo

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"gotire/internal/domain"
	apperror "gotire/internal/errors"
	"gotire/internal/pkg/logger"
	"gotire/internal/repository/collection"
)

// Chaves das coleções no backend.
const (
	KeyTireModels    = "tire_models"
	KeyContainers    = "containers"
	KeyStockEntries  = "stock_entries"
	KeyTireStatus    = "tire_status"
	KeyMovements     = "tire_movements"
	KeyConsumption   = "tire_consumption"
	KeyOperators     = "operators"
	KeySchemaVersion = "schema_version"
)

// Store implementa o repositório de entidades sobre um collection.Backend.
type Store struct {
	mu      sync.Mutex
	backend collection.Backend
	logger  logger.Logger
	events  *eventBus
	now     func() time.Time
}

// New cria o store e aplica as migrações versionadas pendentes.
func New(ctx context.Context, backend collection.Backend, log logger.Logger) (*Store, error) {
	s := &Store{
		backend: backend,
		logger:  log,
		events:  newEventBus(log),
		now:     func() time.Time { return time.Now().UTC() },
	}

	if err := s.migrate(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// mutate executa fn sob o lock e publica o evento devolvido somente se fn tiver sucesso.
// Um evento com Kind vazio significa "nada mudou".
func (s *Store) mutate(fn func() (domain.Event, error)) error {
	s.mu.Lock()
	ev, err := fn()
	s.mu.Unlock()

	if err != nil {
		return err
	}
	if ev.Kind != "" {
		s.events.publish(ev)
	}
	return nil
}

// load lê e desserializa uma coleção. Chave ausente é uma coleção vazia.
func load[T any](ctx context.Context, s *Store, key string) ([]T, error) {
	data, err := s.backend.Read(ctx, key)
	if err != nil {
		s.logger.Error("Falha ao ler coleção do armazenamento local.", err)
		return nil, apperror.NewStorageError("falha ao ler "+key, err)
	}
	if len(data) == 0 {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		s.logger.Error("Coleção corrompida no armazenamento local.", err)
		return nil, apperror.NewStorageError("falha ao desserializar "+key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// persist serializa e grava uma coleção inteira.
func persist[T any](ctx context.Context, s *Store, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		s.logger.Error("Falha ao serializar coleção.", err)
		return apperror.NewStorageError("falha ao serializar "+key, err)
	}
	if err := s.backend.Write(ctx, key, data); err != nil {
		s.logger.Error("Falha ao gravar coleção no armazenamento local.", err)
		return apperror.NewStorageError("falha ao gravar "+key, err)
	}
	return nil
}
