package catalogservice_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gotire/internal/domain"
	apperror "gotire/internal/errors"
	"gotire/internal/pkg/logger"
	"gotire/internal/service/catalogservice"
)

// MockCatalogRepository é uma implementação mock da interface CatalogRepository
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) GetTireModels(ctx context.Context) ([]domain.TireModel, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.TireModel), args.Error(1)
}

func (m *MockCatalogRepository) GetTireModelByID(ctx context.Context, id string) (domain.TireModel, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.TireModel), args.Error(1)
}

func (m *MockCatalogRepository) SaveTireModel(ctx context.Context, tm domain.TireModel) (domain.TireModel, error) {
	args := m.Called(ctx, tm)
	return args.Get(0).(domain.TireModel), args.Error(1)
}

func (m *MockCatalogRepository) UpdateTireModel(ctx context.Context, id string, upd domain.TireModelUpdate) (bool, error) {
	args := m.Called(ctx, id, upd)
	return args.Bool(0), args.Error(1)
}

func (m *MockCatalogRepository) DeleteTireModel(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCatalogRepository) GetContainers(ctx context.Context) ([]domain.Container, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Container), args.Error(1)
}

func (m *MockCatalogRepository) GetContainerByID(ctx context.Context, id string) (domain.Container, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Container), args.Error(1)
}

func (m *MockCatalogRepository) SaveContainer(ctx context.Context, c domain.Container) (domain.Container, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(domain.Container), args.Error(1)
}

func (m *MockCatalogRepository) UpdateContainer(ctx context.Context, id string, upd domain.ContainerUpdate) (bool, error) {
	args := m.Called(ctx, id, upd)
	return args.Bool(0), args.Error(1)
}

func (m *MockCatalogRepository) DeleteContainer(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCatalogRepository) GetTireStatuses(ctx context.Context) ([]domain.TireStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.TireStatus), args.Error(1)
}

func (m *MockCatalogRepository) SaveTireStatus(ctx context.Context, st domain.TireStatus) (domain.TireStatus, error) {
	args := m.Called(ctx, st)
	return args.Get(0).(domain.TireStatus), args.Error(1)
}

func (m *MockCatalogRepository) UpdateTireStatus(ctx context.Context, id string, upd domain.TireStatusUpdate) (bool, error) {
	args := m.Called(ctx, id, upd)
	return args.Bool(0), args.Error(1)
}

func (m *MockCatalogRepository) DeleteTireStatus(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestLogger() logger.Logger {
	return logger.NewNop()
}

// --- Modelos ---

func TestCreateTireModel_Success(t *testing.T) {
	mockRepo := new(MockCatalogRepository)
	svc := catalogservice.NewService(mockRepo, newTestLogger())

	input := domain.TireModel{Name: "  Slick 992 Dianteiro ", Code: "992-D", Type: domain.TireTypeSlick}
	trimmed := domain.TireModel{Name: "Slick 992 Dianteiro", Code: "992-D", Type: domain.TireTypeSlick}
	expected := trimmed
	expected.ID = uuid.New().String()

	mockRepo.On("GetTireModels", mock.Anything).Return([]domain.TireModel{{ID: "x", Name: "Wet 991 Dianteiro"}}, nil)
	mockRepo.On("SaveTireModel", mock.Anything, trimmed).Return(expected, nil)

	result, err := svc.CreateTireModel(context.Background(), input)

	assert.NoError(t, err)
	assert.Equal(t, expected.ID, result.ID)
	mockRepo.AssertExpectations(t)
}

func TestCreateTireModel_Fail_Validation(t *testing.T) {
	mockRepo := new(MockCatalogRepository)
	svc := catalogservice.NewService(mockRepo, newTestLogger())

	_, err := svc.CreateTireModel(context.Background(), domain.TireModel{Name: "", Type: domain.TireTypeSlick})
	assert.IsType(t, &apperror.ValidationError{}, err)
	assert.Contains(t, err.Error(), "não pode ser vazio")

	_, err = svc.CreateTireModel(context.Background(), domain.TireModel{Name: "Sl", Type: domain.TireTypeSlick})
	assert.IsType(t, &apperror.ValidationError{}, err)

	_, err = svc.CreateTireModel(context.Background(), domain.TireModel{Name: "Slick 992", Type: "Intermediário"})
	assert.IsType(t, &apperror.ValidationError{}, err)
	assert.Contains(t, err.Error(), "Slick")

	mockRepo.AssertNotCalled(t, "SaveTireModel")
}

func TestCreateTireModel_Fail_DuplicateName(t *testing.T) {
	mockRepo := new(MockCatalogRepository)
	svc := catalogservice.NewService(mockRepo, newTestLogger())

	mockRepo.On("GetTireModels", mock.Anything).Return([]domain.TireModel{{ID: "m1", Name: "Slick 992 Dianteiro"}}, nil)

	_, err := svc.CreateTireModel(context.Background(), domain.TireModel{Name: "slick 992 dianteiro", Type: domain.TireTypeSlick})

	assert.IsType(t, &apperror.ConflictError{}, err)
	mockRepo.AssertNotCalled(t, "SaveTireModel")
}

func TestUpdateTireModel_NotFound(t *testing.T) {
	mockRepo := new(MockCatalogRepository)
	svc := catalogservice.NewService(mockRepo, newTestLogger())

	code := "992-T"
	upd := domain.TireModelUpdate{Code: &code}
	mockRepo.On("UpdateTireModel", mock.Anything, "m9", upd).Return(false, nil)

	_, err := svc.UpdateTireModel(context.Background(), "m9", upd)

	assert.IsType(t, &apperror.NotFoundError{}, err)
	mockRepo.AssertExpectations(t)
}

func TestUpdateTireModel_Success(t *testing.T) {
	mockRepo := new(MockCatalogRepository)
	svc := catalogservice.NewService(mockRepo, newTestLogger())

	name := "Slick 992 Traseiro"
	upd := domain.TireModelUpdate{Name: &name}
	mockRepo.On("GetTireModels", mock.Anything).Return([]domain.TireModel{{ID: "m1", Name: "Slick 992 Dianteiro"}}, nil)
	mockRepo.On("UpdateTireModel", mock.Anything, "m1", mock.Anything).Return(true, nil)
	mockRepo.On("GetTireModelByID", mock.Anything, "m1").Return(domain.TireModel{ID: "m1", Name: name}, nil)

	result, err := svc.UpdateTireModel(context.Background(), "m1", upd)

	assert.NoError(t, err)
	assert.Equal(t, name, result.Name)
	mockRepo.AssertExpectations(t)
}

// --- Containers ---

func TestCreateContainer_Success(t *testing.T) {
	mockRepo := new(MockCatalogRepository)
	svc := catalogservice.NewService(mockRepo, newTestLogger())

	c := domain.Container{Name: "Container A", Location: "Box 12", Capacity: 40}
	expected := c
	expected.ID = uuid.New().String()
	mockRepo.On("SaveContainer", mock.Anything, c).Return(expected, nil)

	result, err := svc.CreateContainer(context.Background(), c)

	assert.NoError(t, err)
	assert.Equal(t, expected.ID, result.ID)
	mockRepo.AssertExpectations(t)
}

func TestCreateContainer_Fail_NegativeCapacity(t *testing.T) {
	mockRepo := new(MockCatalogRepository)
	svc := catalogservice.NewService(mockRepo, newTestLogger())

	_, err := svc.CreateContainer(context.Background(), domain.Container{Name: "Container A", Capacity: -1})

	assert.IsType(t, &apperror.ValidationError{}, err)
	mockRepo.AssertNotCalled(t, "SaveContainer")
}

func TestDeleteContainer_OccupiedPropagatesConflict(t *testing.T) {
	mockRepo := new(MockCatalogRepository)
	svc := catalogservice.NewService(mockRepo, newTestLogger())

	repoErr := apperror.NewConflictError("container Container A possui 2 pneus e não pode ser removido")
	mockRepo.On("DeleteContainer", mock.Anything, "c1").Return(repoErr)

	err := svc.DeleteContainer(context.Background(), "c1")

	assert.Equal(t, repoErr, err)
	mockRepo.AssertExpectations(t)
}

func TestUpdateContainer_RepoError(t *testing.T) {
	mockRepo := new(MockCatalogRepository)
	svc := catalogservice.NewService(mockRepo, newTestLogger())

	capacity := 10
	upd := domain.ContainerUpdate{Capacity: &capacity}
	repoErr := errors.New("disk full")
	mockRepo.On("UpdateContainer", mock.Anything, "c1", upd).Return(false, repoErr)

	_, err := svc.UpdateContainer(context.Background(), "c1", upd)

	assert.Equal(t, repoErr, err)
}

// --- Status ---

func TestCreateTireStatus_DefaultColor(t *testing.T) {
	mockRepo := new(MockCatalogRepository)
	svc := catalogservice.NewService(mockRepo, newTestLogger())

	expected := domain.TireStatus{Name: "Reserva", Color: "#6b7280"}
	mockRepo.On("SaveTireStatus", mock.Anything, expected).Return(expected, nil)

	result, err := svc.CreateTireStatus(context.Background(), domain.TireStatus{Name: " Reserva "})

	assert.NoError(t, err)
	assert.Equal(t, "#6b7280", result.Color)
	mockRepo.AssertExpectations(t)
}

func TestCreateTireStatus_Fail_InvalidColor(t *testing.T) {
	mockRepo := new(MockCatalogRepository)
	svc := catalogservice.NewService(mockRepo, newTestLogger())

	_, err := svc.CreateTireStatus(context.Background(), domain.TireStatus{Name: "Reserva", Color: "roxo"})

	assert.IsType(t, &apperror.ValidationError{}, err)
	mockRepo.AssertNotCalled(t, "SaveTireStatus")
}

func TestUpdateTireStatus_ReturnsUpdated(t *testing.T) {
	mockRepo := new(MockCatalogRepository)
	svc := catalogservice.NewService(mockRepo, newTestLogger())

	color := "#a855f7"
	upd := domain.TireStatusUpdate{Color: &color}
	mockRepo.On("UpdateTireStatus", mock.Anything, "status-novo", upd).Return(true, nil)
	mockRepo.On("GetTireStatuses", mock.Anything).Return([]domain.TireStatus{
		{ID: "status-novo", Name: "Novo", Color: color, IsDefault: true},
	}, nil)

	result, err := svc.UpdateTireStatus(context.Background(), "status-novo", upd)

	assert.NoError(t, err)
	assert.Equal(t, color, result.Color)
	assert.True(t, result.IsDefault)
}

func TestDeleteTireStatus_DefaultProtected(t *testing.T) {
	mockRepo := new(MockCatalogRepository)
	svc := catalogservice.NewService(mockRepo, newTestLogger())

	repoErr := apperror.NewPreconditionError("o status padrão 'Novo' não pode ser removido")
	mockRepo.On("DeleteTireStatus", mock.Anything, "status-novo").Return(repoErr)

	err := svc.DeleteTireStatus(context.Background(), "status-novo")

	assert.IsType(t, &apperror.PreconditionError{}, err)
}
