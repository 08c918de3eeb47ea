// Package operatorservice cadastra contas de operador e autentica logins,
// emitindo o JWT usado pelas demais rotas.
package operatorservice

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"gotire/internal/domain"
	apperror "gotire/internal/errors"
	"gotire/internal/pkg/logger"
)

// MinPasswordLen é o tamanho mínimo de senha aceito no cadastro.
const MinPasswordLen = 8

// OperatorRepository define o contrato que o Serviço espera do store.
type OperatorRepository interface {
	GetOperators(ctx context.Context) ([]domain.Operator, error)
	FindOperatorByUsername(ctx context.Context, username string) (domain.Operator, error)
	SaveOperator(ctx context.Context, o domain.Operator) (domain.Operator, error)
}

// TokenService é o contrato da camada de token (internal/pkg/token).
type TokenService interface {
	GenerateToken(userID string, userRole string) (string, error)
}

// Service implementa o cadastro e o login de operadores.
type Service struct {
	repo     OperatorRepository
	tokenSvc TokenService
	logger   logger.Logger
	cost     int
}

// NewService cria uma nova instância do Serviço de Operadores.
func NewService(repo OperatorRepository, tokenSvc TokenService, logger logger.Logger) *Service {
	return &Service{repo: repo, tokenSvc: tokenSvc, logger: logger, cost: bcrypt.DefaultCost}
}

// Register cria uma conta. Sem papel informado, a conta é de operador.
func (s *Service) Register(ctx context.Context, reg domain.OperatorRegistration) (domain.Operator, error) {
	username := strings.TrimSpace(reg.Username)
	if n := utf8.RuneCountInString(username); n < 3 || n > 50 {
		return domain.Operator{}, apperror.NewValidationError("O nome do operador deve ter entre 3 e 50 caracteres.")
	}
	if strings.ContainsAny(username, " \t") {
		return domain.Operator{}, apperror.NewValidationError("O nome do operador não pode conter espaços.")
	}
	if len(reg.Password) < MinPasswordLen {
		return domain.Operator{}, apperror.NewValidationError(fmt.Sprintf("A senha deve ter ao menos %d caracteres.", MinPasswordLen))
	}
	role := reg.Role
	if role == "" {
		role = domain.RoleOperator
	}
	if !role.Valid() {
		return domain.Operator{}, apperror.NewValidationError("O papel deve ser 'operator' ou 'admin'.")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(reg.Password), s.cost)
	if err != nil {
		return domain.Operator{}, apperror.NewInternalError("Falha ao gerar hash da senha.", err)
	}

	saved, err := s.repo.SaveOperator(ctx, domain.Operator{Username: username, PasswordHash: string(hashed), Role: role})
	if err != nil {
		if !apperror.IsConflict(err) {
			s.logger.Error("Falha ao gravar operador.", err)
		}
		return domain.Operator{}, err
	}

	s.logger.Info("Operador cadastrado.", map[string]interface{}{"username": saved.Username, "role": saved.Role})
	return saved.Public(), nil
}

// List devolve as contas sem os hashes.
func (s *Service) List(ctx context.Context) ([]domain.Operator, error) {
	operators, err := s.repo.GetOperators(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Operator, len(operators))
	for i, o := range operators {
		out[i] = o.Public()
	}
	return out, nil
}

// Login confere a senha e emite um JWT com o nome do operador como user_id.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", apperror.NewUnauthorizedError("Usuário e senha são obrigatórios.")
	}

	o, err := s.repo.FindOperatorByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		// não revela se a conta existe
		if apperror.IsNotFound(err) {
			s.logger.Warn("Login com operador inexistente.", map[string]interface{}{"username": username})
			return "", apperror.NewUnauthorizedError("Credenciais inválidas.")
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(o.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("Login com senha incorreta.", map[string]interface{}{"username": o.Username})
		return "", apperror.NewUnauthorizedError("Credenciais inválidas.")
	}

	tok, err := s.tokenSvc.GenerateToken(o.Username, string(o.Role))
	if err != nil {
		return "", apperror.NewInternalError("Falha ao gerar token de autenticação.", err)
	}
	s.logger.Info("Login realizado.", map[string]interface{}{"username": o.Username})
	return tok, nil
}

// Bootstrap cria a conta admin inicial quando ainda não existe nenhum operador.
// Devolve false se já havia contas.
func (s *Service) Bootstrap(ctx context.Context, username, password string) (bool, error) {
	operators, err := s.repo.GetOperators(ctx)
	if err != nil {
		return false, err
	}
	if len(operators) > 0 {
		return false, nil
	}
	if _, err := s.Register(ctx, domain.OperatorRegistration{Username: username, Password: password, Role: domain.RoleAdmin}); err != nil {
		return false, err
	}
	return true, nil
}
