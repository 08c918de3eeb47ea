package stockrepo

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"gotire/internal/domain"
	apperror "gotire/internal/errors"
)

// GetTireModels devolve o registro de modelos.
func (s *Store) GetTireModels(ctx context.Context) ([]domain.TireModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return load[domain.TireModel](ctx, s, KeyTireModels)
}

// GetTireModelByID busca um modelo pelo ID.
func (s *Store) GetTireModelByID(ctx context.Context, id string) (domain.TireModel, error) {
	models, err := s.GetTireModels(ctx)
	if err != nil {
		return domain.TireModel{}, err
	}
	for _, m := range models {
		if m.ID == id {
			return m, nil
		}
	}
	return domain.TireModel{}, apperror.NewNotFoundError(fmt.Sprintf("modelo com ID %s não encontrado", id))
}

func (s *Store) SaveTireModel(ctx context.Context, m domain.TireModel) (domain.TireModel, error) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}

	err := s.mutate(func() (domain.Event, error) {
		models, err := load[domain.TireModel](ctx, s, KeyTireModels)
		if err != nil {
			return domain.Event{}, err
		}
		for _, existing := range models {
			if existing.ID == m.ID {
				return domain.Event{}, apperror.NewConflictError(fmt.Sprintf("modelo com ID %s já existe", m.ID))
			}
		}
		if err := persist(ctx, s, KeyTireModels, append(models, m)); err != nil {
			return domain.Event{}, err
		}
		return domain.Event{Kind: domain.EventTireModelsUpdated, Count: 1}, nil
	})
	if err != nil {
		return domain.TireModel{}, err
	}
	return m, nil
}

// UpdateTireModel aplica uma atualização parcial. Devolve false se o ID não existir.
func (s *Store) UpdateTireModel(ctx context.Context, id string, upd domain.TireModelUpdate) (bool, error) {
	found := false
	err := s.mutate(func() (domain.Event, error) {
		models, err := load[domain.TireModel](ctx, s, KeyTireModels)
		if err != nil {
			return domain.Event{}, err
		}
		for i := range models {
			if models[i].ID != id {
				continue
			}
			if upd.Name != nil {
				models[i].Name = *upd.Name
			}
			if upd.Code != nil {
				models[i].Code = *upd.Code
			}
			if upd.Type != nil {
				models[i].Type = *upd.Type
			}
			found = true
			break
		}
		if !found {
			return domain.Event{}, nil
		}
		if err := persist(ctx, s, KeyTireModels, models); err != nil {
			return domain.Event{}, err
		}
		return domain.Event{Kind: domain.EventTireModelsUpdated, Count: 1}, nil
	})
	return found, err
}

// DeleteTireModel remove um modelo. Entradas existentes mantêm o snapshot do nome.
func (s *Store) DeleteTireModel(ctx context.Context, id string) error {
	return s.mutate(func() (domain.Event, error) {
		models, err := load[domain.TireModel](ctx, s, KeyTireModels)
		if err != nil {
			return domain.Event{}, err
		}
		for i := range models {
			if models[i].ID != id {
				continue
			}
			models = append(models[:i], models[i+1:]...)
			if err := persist(ctx, s, KeyTireModels, models); err != nil {
				return domain.Event{}, err
			}
			return domain.Event{Kind: domain.EventTireModelsUpdated, Count: 1}, nil
		}
		return domain.Event{}, apperror.NewNotFoundError(fmt.Sprintf("modelo com ID %s não encontrado", id))
	})
}
