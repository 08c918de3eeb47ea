package stockrepo

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"gotire/internal/domain"
	apperror "gotire/internal/errors"
)

// GetContainers devolve os containers com Current recalculado a partir das entradas.
func (s *Store) GetContainers(ctx context.Context) ([]domain.Container, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.containersWithOccupancy(ctx)
}

// GetContainerByID busca um container pelo ID, já com a ocupação calculada.
func (s *Store) GetContainerByID(ctx context.Context, id string) (domain.Container, error) {
	containers, err := s.GetContainers(ctx)
	if err != nil {
		return domain.Container{}, err
	}
	for _, c := range containers {
		if c.ID == id {
			return c, nil
		}
	}
	return domain.Container{}, apperror.NewNotFoundError(fmt.Sprintf("container com ID %s não encontrado", id))
}

func (s *Store) containersWithOccupancy(ctx context.Context) ([]domain.Container, error) {
	containers, err := load[domain.Container](ctx, s, KeyContainers)
	if err != nil {
		return nil, err
	}
	entries, err := load[domain.StockEntry](ctx, s, KeyStockEntries)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(containers))
	for _, e := range entries {
		if e.ContainerID != "" {
			counts[e.ContainerID]++
		}
	}
	for i := range containers {
		containers[i].Current = counts[containers[i].ID]
	}
	return containers, nil
}

// SaveContainer cadastra um container. O valor de Current informado é descartado.
func (s *Store) SaveContainer(ctx context.Context, c domain.Container) (domain.Container, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.Current = 0

	err := s.mutate(func() (domain.Event, error) {
		containers, err := load[domain.Container](ctx, s, KeyContainers)
		if err != nil {
			return domain.Event{}, err
		}
		for _, existing := range containers {
			if existing.ID == c.ID {
				return domain.Event{}, apperror.NewConflictError(fmt.Sprintf("container com ID %s já existe", c.ID))
			}
		}
		if err := persist(ctx, s, KeyContainers, append(containers, c)); err != nil {
			return domain.Event{}, err
		}
		return domain.Event{Kind: domain.EventContainersUpdated, Count: 1}, nil
	})
	if err != nil {
		return domain.Container{}, err
	}
	return c, nil
}

// UpdateContainer aplica uma atualização parcial. Devolve false se o ID não existir.
// Entradas já gravadas mantêm o nome antigo em ContainerName.
func (s *Store) UpdateContainer(ctx context.Context, id string, upd domain.ContainerUpdate) (bool, error) {
	found := false
	err := s.mutate(func() (domain.Event, error) {
		containers, err := load[domain.Container](ctx, s, KeyContainers)
		if err != nil {
			return domain.Event{}, err
		}
		for i := range containers {
			if containers[i].ID != id {
				continue
			}
			if upd.Name != nil {
				containers[i].Name = *upd.Name
			}
			if upd.Location != nil {
				containers[i].Location = *upd.Location
			}
			if upd.Capacity != nil {
				containers[i].Capacity = *upd.Capacity
			}
			found = true
			break
		}
		if !found {
			return domain.Event{}, nil
		}
		if err := persist(ctx, s, KeyContainers, containers); err != nil {
			return domain.Event{}, err
		}
		return domain.Event{Kind: domain.EventContainersUpdated, Count: 1}, nil
	})
	return found, err
}

// DeleteContainer remove um container vazio. Um container com pneus devolve ConflictError.
func (s *Store) DeleteContainer(ctx context.Context, id string) error {
	return s.mutate(func() (domain.Event, error) {
		containers, err := s.containersWithOccupancy(ctx)
		if err != nil {
			return domain.Event{}, err
		}
		for i, c := range containers {
			if c.ID != id {
				continue
			}
			if c.Current > 0 {
				return domain.Event{}, apperror.NewConflictError(fmt.Sprintf("container %s possui %d pneus e não pode ser removido", c.Name, c.Current))
			}
			containers = append(containers[:i], containers[i+1:]...)
			if err := persist(ctx, s, KeyContainers, containers); err != nil {
				return domain.Event{}, err
			}
			return domain.Event{Kind: domain.EventContainersUpdated, Count: 1}, nil
		}
		return domain.Event{}, apperror.NewNotFoundError(fmt.Sprintf("container com ID %s não encontrado", id))
	})
}
