package stockrepo

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"gotire/internal/domain"
	apperror "gotire/internal/errors"
)

func (s *Store) GetTireStatuses(ctx context.Context) ([]domain.TireStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return load[domain.TireStatus](ctx, s, KeyTireStatus)
}

// FindTireStatusByName busca um status pelo nome, sem diferenciar caixa.
func (s *Store) FindTireStatusByName(ctx context.Context, name string) (domain.TireStatus, bool, error) {
	statuses, err := s.GetTireStatuses(ctx)
	if err != nil {
		return domain.TireStatus{}, false, err
	}
	if i := indexStatusByName(statuses, name, ""); i >= 0 {
		return statuses[i], true, nil
	}
	return domain.TireStatus{}, false, nil
}

// SaveTireStatus cadastra um status customizado. Nomes são únicos sem diferenciar caixa
// e IsDefault é sempre falso: só a migração inicial cria status protegidos.
func (s *Store) SaveTireStatus(ctx context.Context, st domain.TireStatus) (domain.TireStatus, error) {
	st.Name = strings.TrimSpace(st.Name)
	if st.Name == "" {
		return domain.TireStatus{}, apperror.NewValidationError("o nome do status é obrigatório")
	}
	if st.ID == "" {
		st.ID = uuid.NewString()
	}
	st.IsDefault = false
	if st.CreatedAt.IsZero() {
		st.CreatedAt = s.now()
	}

	err := s.mutate(func() (domain.Event, error) {
		statuses, err := load[domain.TireStatus](ctx, s, KeyTireStatus)
		if err != nil {
			return domain.Event{}, err
		}
		if indexStatusByName(statuses, st.Name, "") >= 0 {
			return domain.Event{}, apperror.NewConflictError(fmt.Sprintf("status '%s' já existe", st.Name))
		}
		for _, existing := range statuses {
			if existing.ID == st.ID {
				return domain.Event{}, apperror.NewConflictError(fmt.Sprintf("status com ID %s já existe", st.ID))
			}
		}
		if err := persist(ctx, s, KeyTireStatus, append(statuses, st)); err != nil {
			return domain.Event{}, err
		}
		return domain.Event{Kind: domain.EventTireStatusUpdated, Count: 1}, nil
	})
	if err != nil {
		return domain.TireStatus{}, err
	}
	return st, nil
}

// UpdateTireStatus altera nome ou cor. Status padrão aceitam só a troca de cor.
func (s *Store) UpdateTireStatus(ctx context.Context, id string, upd domain.TireStatusUpdate) (bool, error) {
	found := false
	err := s.mutate(func() (domain.Event, error) {
		statuses, err := load[domain.TireStatus](ctx, s, KeyTireStatus)
		if err != nil {
			return domain.Event{}, err
		}
		for i := range statuses {
			if statuses[i].ID != id {
				continue
			}
			found = true
			if upd.Name != nil {
				name := strings.TrimSpace(*upd.Name)
				if name != statuses[i].Name {
					if statuses[i].IsDefault {
						return domain.Event{}, apperror.NewPreconditionError(fmt.Sprintf("o status padrão '%s' não pode ser renomeado", statuses[i].Name))
					}
					if name == "" {
						return domain.Event{}, apperror.NewValidationError("o nome do status é obrigatório")
					}
					if indexStatusByName(statuses, name, id) >= 0 {
						return domain.Event{}, apperror.NewConflictError(fmt.Sprintf("status '%s' já existe", name))
					}
					statuses[i].Name = name
				}
			}
			if upd.Color != nil {
				statuses[i].Color = *upd.Color
			}
			break
		}
		if !found {
			return domain.Event{}, nil
		}
		if err := persist(ctx, s, KeyTireStatus, statuses); err != nil {
			return domain.Event{}, err
		}
		return domain.Event{Kind: domain.EventTireStatusUpdated, Count: 1}, nil
	})
	return found, err
}

// DeleteTireStatus remove um status customizado. Entradas que o usam mantêm o texto.
func (s *Store) DeleteTireStatus(ctx context.Context, id string) error {
	return s.mutate(func() (domain.Event, error) {
		statuses, err := load[domain.TireStatus](ctx, s, KeyTireStatus)
		if err != nil {
			return domain.Event{}, err
		}
		for i, st := range statuses {
			if st.ID != id {
				continue
			}
			if st.IsDefault {
				return domain.Event{}, apperror.NewPreconditionError(fmt.Sprintf("o status padrão '%s' não pode ser removido", st.Name))
			}
			statuses = append(statuses[:i], statuses[i+1:]...)
			if err := persist(ctx, s, KeyTireStatus, statuses); err != nil {
				return domain.Event{}, err
			}
			return domain.Event{Kind: domain.EventTireStatusUpdated, Count: 1}, nil
		}
		return domain.Event{}, apperror.NewNotFoundError(fmt.Sprintf("status com ID %s não encontrado", id))
	})
}

func indexStatusByName(statuses []domain.TireStatus, name, exceptID string) int {
	name = strings.TrimSpace(name)
	for i, st := range statuses {
		if st.ID != exceptID && strings.EqualFold(st.Name, name) {
			return i
		}
	}
	return -1
}
