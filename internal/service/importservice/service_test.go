package importservice_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gotire/internal/domain"
	apperror "gotire/internal/errors"
	"gotire/internal/pkg/logger"
	"gotire/internal/service/importservice"
)

// MockRepository é uma implementação mock de importservice.Repository.
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetTireModels(ctx context.Context) ([]domain.TireModel, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.TireModel), args.Error(1)
}

func (m *MockRepository) GetStockEntries(ctx context.Context, includeDiscarded bool) ([]domain.StockEntry, error) {
	args := m.Called(ctx, includeDiscarded)
	return args.Get(0).([]domain.StockEntry), args.Error(1)
}

func (m *MockRepository) SaveStockEntries(ctx context.Context, entries []domain.StockEntry) ([]domain.StockEntry, error) {
	args := m.Called(ctx, entries)
	return args.Get(0).([]domain.StockEntry), args.Error(1)
}

func (m *MockRepository) Publish(ev domain.Event) {
	m.Called(ev)
}

// MockMirror é uma implementação mock de importservice.Mirror.
type MockMirror struct {
	mock.Mock
}

func (m *MockMirror) InsertStockEntries(entries []domain.StockEntry) {
	m.Called(entries)
}

func newService() (*importservice.Service, *MockRepository, *MockMirror) {
	repo := new(MockRepository)
	mirror := new(MockMirror)
	return importservice.NewService(repo, mirror, logger.NewNop()), repo, mirror
}

func TestImport_SavesValidSubset(t *testing.T) {
	svc, repo, mirror := newService()
	ctx := context.Background()

	discarded := domain.StockEntry{Barcode: "04903715", Status: domain.StatusDescarte}
	repo.On("GetTireModels", ctx).Return(registry(), nil)
	repo.On("GetStockEntries", ctx, true).Return([]domain.StockEntry{discarded}, nil)
	repo.On("SaveStockEntries", ctx, mock.MatchedBy(func(entries []domain.StockEntry) bool {
		return len(entries) == 1 && entries[0].Barcode == "04903716"
	})).Return([]domain.StockEntry{{ID: "id-1", Barcode: "04903716", ModelID: "m1"}}, nil)
	mirror.On("InsertStockEntries", mock.Anything).Return()
	repo.On("Publish", domain.Event{Kind: domain.EventTireAdded, Count: 1, Barcodes: []string{"04903716"}}).Return()

	result, err := svc.Import(ctx, "04903715\tSlick 992 Dianteiro\n04903716\tSlick 992 Dianteiro", "ana")

	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "já cadastrado")
	repo.AssertExpectations(t)
	mirror.AssertExpectations(t)
}

func TestImport_NothingValidDoesNotWrite(t *testing.T) {
	svc, repo, mirror := newService()
	ctx := context.Background()

	repo.On("GetTireModels", ctx).Return(registry(), nil)
	repo.On("GetStockEntries", ctx, true).Return([]domain.StockEntry{}, nil)

	result, err := svc.Import(ctx, "Slick 992 Dianteiro\nWet 991 Dianteiro", "ana")

	require.NoError(t, err)
	assert.Equal(t, 0, result.Imported)
	assert.Equal(t, []string{importservice.ErrSingleColumn}, result.Errors)
	repo.AssertNotCalled(t, "SaveStockEntries", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Publish", mock.Anything)
	mirror.AssertNotCalled(t, "InsertStockEntries", mock.Anything)
}

func TestImport_ConflictPropagates(t *testing.T) {
	svc, repo, mirror := newService()
	ctx := context.Background()

	repo.On("GetTireModels", ctx).Return(registry(), nil)
	repo.On("GetStockEntries", ctx, true).Return([]domain.StockEntry{}, nil)
	repo.On("SaveStockEntries", ctx, mock.Anything).Return([]domain.StockEntry(nil), apperror.NewConflictError("código de barras 04903715 já cadastrado"))

	_, err := svc.Import(ctx, "04903715\tSlick 992 Dianteiro", "ana")

	assert.True(t, apperror.IsConflict(err))
	mirror.AssertNotCalled(t, "InsertStockEntries", mock.Anything)
}

func TestImport_StorageFailureIsInternal(t *testing.T) {
	svc, repo, _ := newService()
	ctx := context.Background()

	repo.On("GetTireModels", ctx).Return(registry(), nil)
	repo.On("GetStockEntries", ctx, true).Return([]domain.StockEntry{}, nil)
	repo.On("SaveStockEntries", ctx, mock.Anything).Return([]domain.StockEntry(nil), errors.New("disk full"))

	_, err := svc.Import(ctx, "04903715\tSlick 992 Dianteiro", "ana")

	var iErr *apperror.InternalError
	assert.ErrorAs(t, err, &iErr)
}

func TestPreview_DoesNotWrite(t *testing.T) {
	svc, repo, _ := newService()
	ctx := context.Background()

	repo.On("GetTireModels", ctx).Return(registry(), nil)
	repo.On("GetStockEntries", ctx, true).Return([]domain.StockEntry{}, nil)

	result, err := svc.Preview(ctx, "04903715\tSlick 992 Dianteiro")

	require.NoError(t, err)
	assert.Len(t, result.Entries, 1)
	repo.AssertNotCalled(t, "SaveStockEntries", mock.Anything, mock.Anything)
}

func TestPreview_RepositoryError(t *testing.T) {
	svc, repo, _ := newService()
	ctx := context.Background()

	repo.On("GetTireModels", ctx).Return([]domain.TireModel(nil), apperror.NewStorageError("falha ao ler tire_models", errors.New("io")))

	_, err := svc.Preview(ctx, "04903715\tSlick 992 Dianteiro")

	assert.Error(t, err)
}
