package stockrepo

import (
	"context"

	"github.com/google/uuid"

	"gotire/internal/domain"
)

// AppendMovements acrescenta registros de movimentação. Registros de auditoria não
// emitem eventos de mudança e nunca são alterados.
func (s *Store) AppendMovements(ctx context.Context, records []domain.Movement) ([]domain.Movement, error) {
	if len(records) == 0 {
		return nil, nil
	}
	out := make([]domain.Movement, len(records))
	for i, r := range records {
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		if r.Timestamp.IsZero() {
			r.Timestamp = s.now()
		}
		out[i] = r
	}

	err := s.mutate(func() (domain.Event, error) {
		existing, err := load[domain.Movement](ctx, s, KeyMovements)
		if err != nil {
			return domain.Event{}, err
		}
		return domain.Event{}, persist(ctx, s, KeyMovements, append(existing, out...))
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AppendConsumptions acrescenta registros de consumo (transferências para piloto).
func (s *Store) AppendConsumptions(ctx context.Context, records []domain.Consumption) ([]domain.Consumption, error) {
	if len(records) == 0 {
		return nil, nil
	}
	out := make([]domain.Consumption, len(records))
	for i, r := range records {
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		if r.Timestamp.IsZero() {
			r.Timestamp = s.now()
		}
		out[i] = r
	}

	err := s.mutate(func() (domain.Event, error) {
		existing, err := load[domain.Consumption](ctx, s, KeyConsumption)
		if err != nil {
			return domain.Event{}, err
		}
		return domain.Event{}, persist(ctx, s, KeyConsumption, append(existing, out...))
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) GetMovements(ctx context.Context) ([]domain.Movement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return load[domain.Movement](ctx, s, KeyMovements)
}

func (s *Store) GetConsumptions(ctx context.Context) ([]domain.Consumption, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return load[domain.Consumption](ctx, s, KeyConsumption)
}
