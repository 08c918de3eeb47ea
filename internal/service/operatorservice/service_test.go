package operatorservice_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"gotire/internal/domain"
	apperror "gotire/internal/errors"
	"gotire/internal/pkg/logger"
	"gotire/internal/service/operatorservice"
)

// MockOperatorRepository é uma implementação mock da interface OperatorRepository
type MockOperatorRepository struct {
	mock.Mock
}

func (m *MockOperatorRepository) GetOperators(ctx context.Context) ([]domain.Operator, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Operator), args.Error(1)
}

func (m *MockOperatorRepository) FindOperatorByUsername(ctx context.Context, username string) (domain.Operator, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(domain.Operator), args.Error(1)
}

func (m *MockOperatorRepository) SaveOperator(ctx context.Context, o domain.Operator) (domain.Operator, error) {
	args := m.Called(ctx, o)
	return args.Get(0).(domain.Operator), args.Error(1)
}

// MockTokenService é uma implementação mock da interface TokenService
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateToken(userID string, userRole string) (string, error) {
	args := m.Called(userID, userRole)
	return args.String(0), args.Error(1)
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestRegister_HashesPasswordAndHidesIt(t *testing.T) {
	repo := new(MockOperatorRepository)
	svc := operatorservice.NewService(repo, new(MockTokenService), logger.NewNop())
	ctx := context.Background()

	var stored domain.Operator
	repo.On("SaveOperator", ctx, mock.AnythingOfType("domain.Operator")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(domain.Operator) }).
		Return(domain.Operator{ID: "op-1", Username: "mecanico1", PasswordHash: "hash", Role: domain.RoleOperator}, nil).Once()

	out, err := svc.Register(ctx, domain.OperatorRegistration{Username: " mecanico1 ", Password: "senha-forte"})

	require.NoError(t, err)
	assert.Empty(t, out.PasswordHash)
	assert.Equal(t, domain.RoleOperator, stored.Role)
	assert.Equal(t, "mecanico1", stored.Username)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("senha-forte")))
	repo.AssertExpectations(t)
}

func TestRegister_Validation(t *testing.T) {
	cases := map[string]domain.OperatorRegistration{
		"nome curto":    {Username: "ab", Password: "senha-forte"},
		"nome c/ space": {Username: "ana maria", Password: "senha-forte"},
		"senha curta":   {Username: "mecanico1", Password: "1234"},
		"papel errado":  {Username: "mecanico1", Password: "senha-forte", Role: "root"},
	}
	for name, reg := range cases {
		t.Run(name, func(t *testing.T) {
			repo := new(MockOperatorRepository)
			svc := operatorservice.NewService(repo, new(MockTokenService), logger.NewNop())

			_, err := svc.Register(context.Background(), reg)

			assert.IsType(t, &apperror.ValidationError{}, err)
			repo.AssertNotCalled(t, "SaveOperator", mock.Anything, mock.Anything)
		})
	}
}

func TestLogin_Success(t *testing.T) {
	repo := new(MockOperatorRepository)
	tokens := new(MockTokenService)
	svc := operatorservice.NewService(repo, tokens, logger.NewNop())
	ctx := context.Background()

	repo.On("FindOperatorByUsername", ctx, "chefe").
		Return(domain.Operator{Username: "chefe", PasswordHash: hashOf(t, "senha-forte"), Role: domain.RoleAdmin}, nil).Once()
	tokens.On("GenerateToken", "chefe", "admin").Return("jwt", nil).Once()

	tok, err := svc.Login(ctx, "chefe", "senha-forte")

	require.NoError(t, err)
	assert.Equal(t, "jwt", tok)
	tokens.AssertExpectations(t)
}

func TestLogin_WrongPasswordOrUnknownUser(t *testing.T) {
	repo := new(MockOperatorRepository)
	tokens := new(MockTokenService)
	svc := operatorservice.NewService(repo, tokens, logger.NewNop())
	ctx := context.Background()

	repo.On("FindOperatorByUsername", ctx, "chefe").
		Return(domain.Operator{Username: "chefe", PasswordHash: hashOf(t, "senha-forte")}, nil).Once()
	repo.On("FindOperatorByUsername", ctx, "ninguem").
		Return(domain.Operator{}, apperror.NewNotFoundError("operador 'ninguem' não encontrado")).Once()

	_, err := svc.Login(ctx, "chefe", "errada")
	assert.IsType(t, &apperror.UnauthorizedError{}, err)

	_, err = svc.Login(ctx, "ninguem", "senha-forte")
	assert.IsType(t, &apperror.UnauthorizedError{}, err)

	tokens.AssertNotCalled(t, "GenerateToken", mock.Anything, mock.Anything)
}

func TestLogin_StorageErrorPropagates(t *testing.T) {
	repo := new(MockOperatorRepository)
	svc := operatorservice.NewService(repo, new(MockTokenService), logger.NewNop())
	ctx := context.Background()
	storageErr := apperror.NewStorageError("falha ao ler operators", errors.New("disk"))

	repo.On("FindOperatorByUsername", ctx, "chefe").Return(domain.Operator{}, storageErr).Once()

	_, err := svc.Login(ctx, "chefe", "senha-forte")

	assert.Equal(t, storageErr, err)
}

func TestBootstrap_OnlyWhenEmpty(t *testing.T) {
	repo := new(MockOperatorRepository)
	svc := operatorservice.NewService(repo, new(MockTokenService), logger.NewNop())
	ctx := context.Background()

	repo.On("GetOperators", ctx).Return([]domain.Operator{}, nil).Once()
	repo.On("SaveOperator", ctx, mock.MatchedBy(func(o domain.Operator) bool { return o.Role == domain.RoleAdmin })).
		Return(domain.Operator{Username: "chefe", Role: domain.RoleAdmin}, nil).Once()

	created, err := svc.Bootstrap(ctx, "chefe", "senha-forte")
	require.NoError(t, err)
	assert.True(t, created)

	repo.On("GetOperators", ctx).Return([]domain.Operator{{Username: "chefe"}}, nil).Once()

	created, err = svc.Bootstrap(ctx, "outro", "senha-forte")
	require.NoError(t, err)
	assert.False(t, created)
	repo.AssertExpectations(t)
}
