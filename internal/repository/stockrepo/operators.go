package stockrepo

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"gotire/internal/domain"
	apperror "gotire/internal/errors"
)

// GetOperators devolve as contas cadastradas (com hash; o serviço limpa antes de expor).
func (s *Store) GetOperators(ctx context.Context) ([]domain.Operator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return load[domain.Operator](ctx, s, KeyOperators)
}

// FindOperatorByUsername busca uma conta pelo nome, sem diferenciar caixa.
func (s *Store) FindOperatorByUsername(ctx context.Context, username string) (domain.Operator, error) {
	operators, err := s.GetOperators(ctx)
	if err != nil {
		return domain.Operator{}, err
	}
	for _, o := range operators {
		if strings.EqualFold(o.Username, username) {
			return o, nil
		}
	}
	return domain.Operator{}, apperror.NewNotFoundError(fmt.Sprintf("operador '%s' não encontrado", username))
}

// SaveOperator grava uma nova conta. Nomes repetidos (sem caixa) são conflito.
// Contas não geram eventos de mudança.
func (s *Store) SaveOperator(ctx context.Context, o domain.Operator) (domain.Operator, error) {
	o.ID = uuid.NewString()
	o.CreatedAt = s.now()

	err := s.mutate(func() (domain.Event, error) {
		operators, err := load[domain.Operator](ctx, s, KeyOperators)
		if err != nil {
			return domain.Event{}, err
		}
		for _, existing := range operators {
			if strings.EqualFold(existing.Username, o.Username) {
				return domain.Event{}, apperror.NewConflictError(fmt.Sprintf("O operador '%s' já existe.", o.Username))
			}
		}
		return domain.Event{}, persist(ctx, s, KeyOperators, append(operators, o))
	})
	if err != nil {
		return domain.Operator{}, err
	}
	return o, nil
}
