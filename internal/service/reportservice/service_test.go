package reportservice_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gotire/internal/domain"
	apperror "gotire/internal/errors"
	"gotire/internal/pkg/logger"
	"gotire/internal/service/reportservice"
)

// MockReportRepository é uma implementação mock de reportservice.ReportRepository.
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) GetContainers(ctx context.Context) ([]domain.Container, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Container), args.Error(1)
}

func (m *MockReportRepository) GetStockEntries(ctx context.Context, includeDiscarded bool) ([]domain.StockEntry, error) {
	args := m.Called(ctx, includeDiscarded)
	return args.Get(0).([]domain.StockEntry), args.Error(1)
}

func (m *MockReportRepository) FilterStockEntries(ctx context.Context, filter domain.StockEntryFilter) ([]domain.StockEntry, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.StockEntry), args.Error(1)
}

func (m *MockReportRepository) GetMovements(ctx context.Context) ([]domain.Movement, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Movement), args.Error(1)
}

func (m *MockReportRepository) GetConsumptions(ctx context.Context) ([]domain.Consumption, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Consumption), args.Error(1)
}

// MockRemoteReader é uma implementação mock de reportservice.RemoteReader.
type MockRemoteReader struct {
	mock.Mock
}

func (m *MockRemoteReader) ListStockEntries(ctx context.Context) ([]domain.StockEntry, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.StockEntry), args.Error(1)
}

var (
	day1 = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	day2 = time.Date(2024, 3, 2, 14, 5, 0, 0, time.UTC)
)

func discardedEntries() []domain.StockEntry {
	return []domain.StockEntry{
		{Barcode: "00000001", ModelName: "Slick 992 Dianteiro", ModelType: domain.TireTypeSlick, Status: domain.StatusDescarte, Timestamp: day1},
		{Barcode: "00000002", ModelName: "Slick 992 Dianteiro", ModelType: domain.TireTypeSlick, Status: domain.StatusDescartePiloto, Pilot: "Bruno", Team: "Equipe 7", Timestamp: day1},
		{Barcode: "00000003", ModelName: "Wet 991 Dianteiro", ModelType: domain.TireTypeWet, Status: domain.StatusNovo, Timestamp: day1},
	}
}

func TestOccupancy(t *testing.T) {
	repo := new(MockReportRepository)
	svc := reportservice.NewService(repo, nil, logger.NewNop())
	ctx := context.Background()

	repo.On("GetContainers", ctx).Return([]domain.Container{
		{ID: "c1", Name: "Container A", Capacity: 4, Current: 1},
		{ID: "c2", Name: "Container B", Capacity: 2, Current: 3},
		{ID: "c3", Name: "Container C", Capacity: 0, Current: 0},
	}, nil)

	out, err := svc.Occupancy(ctx)

	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, 3, out[0].Free)
	assert.InDelta(t, 0.25, out[0].Ratio, 1e-9)
	assert.Equal(t, 0, out[1].Free)
	assert.InDelta(t, 1.5, out[1].Ratio, 1e-9)
	assert.Equal(t, 0.0, out[2].Ratio)
}

func TestDiscardStats(t *testing.T) {
	repo := new(MockReportRepository)
	svc := reportservice.NewService(repo, nil, logger.NewNop())
	ctx := context.Background()

	repo.On("GetStockEntries", ctx, true).Return(discardedEntries(), nil)

	stats, err := svc.DiscardStats(ctx)

	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Descarte)
	assert.Equal(t, 1, stats.DescartePiloto)
	assert.Equal(t, map[string]int{"Slick 992 Dianteiro": 2}, stats.ByModel)
	assert.Equal(t, map[string]int{"Bruno": 1}, stats.ByPilot)
}

func TestDiscardHistory_NewestFirstUsingMovements(t *testing.T) {
	repo := new(MockReportRepository)
	svc := reportservice.NewService(repo, nil, logger.NewNop())
	ctx := context.Background()

	repo.On("GetStockEntries", ctx, true).Return(discardedEntries(), nil)
	repo.On("GetMovements", ctx).Return([]domain.Movement{
		{Barcode: "00000001", ToStatus: domain.StatusDescarte, Timestamp: day2, MovedBy: "ana", Reason: "desgaste"},
		{Barcode: "00000002", ToStatus: domain.StatusPiloto, Timestamp: day2},
	}, nil)

	out, err := svc.DiscardHistory(ctx)

	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "00000001", out[0].Barcode)
	assert.Equal(t, day2, out[0].DiscardedAt)
	assert.Equal(t, "ana", out[0].DiscardedBy)
	assert.Equal(t, "desgaste", out[0].Reason)
	assert.Equal(t, "00000002", out[1].Barcode)
	assert.Equal(t, day1, out[1].DiscardedAt)
}

func TestSessionCounters(t *testing.T) {
	repo := new(MockReportRepository)
	svc := reportservice.NewService(repo, nil, logger.NewNop())
	ctx := context.Background()

	filter := domain.StockEntryFilter{IncludeDiscarded: true, SessionID: "s1"}
	repo.On("FilterStockEntries", ctx, filter).Return([]domain.StockEntry{
		{ModelID: "m1", ModelName: "Slick 992 Dianteiro", Status: domain.StatusNovo},
		{ModelID: "m2", ModelName: "Wet 991 Dianteiro", Status: domain.StatusNovo},
		{ModelID: "m1", ModelName: "Slick 992 Dianteiro", Status: domain.StatusPiloto},
		{ModelID: "m1", ModelName: "Slick 992 Dianteiro", Status: domain.StatusDescarte},
	}, nil)

	out, err := svc.SessionCounters(ctx, "s1")

	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "m1", out[0].ModelID)
	assert.Equal(t, 3, out[0].Total)
	assert.Equal(t, map[domain.Status]int{domain.StatusNovo: 1, domain.StatusPiloto: 1, domain.StatusDescarte: 1}, out[0].ByStatus)
	assert.Equal(t, 1, out[1].Total)

	_, err = svc.SessionCounters(ctx, "")
	var vErr *apperror.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestWriteDiscardsCSV(t *testing.T) {
	repo := new(MockReportRepository)
	svc := reportservice.NewService(repo, nil, logger.NewNop())
	ctx := context.Background()

	repo.On("GetStockEntries", ctx, true).Return(discardedEntries()[:2], nil)
	repo.On("GetMovements", ctx).Return([]domain.Movement{}, nil)

	var buf bytes.Buffer
	require.NoError(t, svc.WriteDiscardsCSV(ctx, &buf))

	assert.Equal(t,
		"Código,Modelo,Tipo,Status,Piloto,Equipe,Data\n"+
			"00000001,Slick 992 Dianteiro,Slick,Descarte,,,01/03/2024 09:30\n"+
			"00000002,Slick 992 Dianteiro,Slick,Descarte Piloto,Bruno,Equipe 7,01/03/2024 09:30\n",
		buf.String())
}

func TestWriteConsumptionCSV_QuotesEveryField(t *testing.T) {
	repo := new(MockReportRepository)
	svc := reportservice.NewService(repo, nil, logger.NewNop())
	ctx := context.Background()

	repo.On("GetConsumptions", ctx).Return([]domain.Consumption{
		{Barcode: "00000002", Pilot: "Bruno", Team: "Equipe 7", Notes: `pneu "extra", teste`, Timestamp: day2, RegisteredBy: "ana"},
	}, nil)

	var buf bytes.Buffer
	require.NoError(t, svc.WriteConsumptionCSV(ctx, &buf))

	assert.Equal(t,
		`"Código","Piloto","Equipe","Observações","Data","Registrado por"`+"\n"+
			`"00000002","Bruno","Equipe 7","pneu ""extra"", teste","02/03/2024 14:05","ana"`+"\n",
		buf.String())
}

func TestDiscardWorkbook(t *testing.T) {
	repo := new(MockReportRepository)
	svc := reportservice.NewService(repo, nil, logger.NewNop())
	ctx := context.Background()

	repo.On("GetStockEntries", ctx, true).Return(discardedEntries(), nil)
	repo.On("GetMovements", ctx).Return([]domain.Movement{}, nil)

	f, filename, err := svc.DiscardWorkbook(ctx)

	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, filename, ".xlsx")

	rows, err := f.GetRows("Descartes")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 3)
	assert.Equal(t, []string{"Código", "Modelo", "Tipo", "Status", "Piloto", "Equipe", "Data"}, rows[0])
	assert.Equal(t, "00000001", rows[1][0])
	assert.Equal(t, "Bruno", rows[2][4])
}

func TestMirrorDrift(t *testing.T) {
	repo := new(MockReportRepository)
	remote := new(MockRemoteReader)
	svc := reportservice.NewService(repo, remote, logger.NewNop())
	ctx := context.Background()

	repo.On("GetStockEntries", ctx, true).Return([]domain.StockEntry{
		{Barcode: "00000001", Status: domain.StatusNovo},
		{Barcode: "00000002", Status: domain.StatusDescarte},
	}, nil)
	remote.On("ListStockEntries", ctx).Return([]domain.StockEntry{
		{Barcode: "00000002", Status: domain.StatusNovo},
		{Barcode: "00000009", Status: domain.StatusNovo},
	}, nil)

	drift, err := svc.MirrorDrift(ctx)

	require.NoError(t, err)
	assert.Equal(t, []string{"00000001"}, drift.LocalOnly)
	assert.Equal(t, []string{"00000009"}, drift.RemoteOnly)
	assert.Equal(t, []domain.StatusDrift{{Barcode: "00000002", Local: domain.StatusDescarte, Remote: domain.StatusNovo}}, drift.StatusMismatch)
}

func TestMirrorDrift_Disabled(t *testing.T) {
	svc := reportservice.NewService(new(MockReportRepository), nil, logger.NewNop())

	_, err := svc.MirrorDrift(context.Background())

	var pErr *apperror.PreconditionError
	assert.ErrorAs(t, err, &pErr)
}

func TestMirrorDrift_RemoteError(t *testing.T) {
	repo := new(MockReportRepository)
	remote := new(MockRemoteReader)
	svc := reportservice.NewService(repo, remote, logger.NewNop())
	ctx := context.Background()

	repo.On("GetStockEntries", ctx, true).Return([]domain.StockEntry{}, nil)
	remote.On("ListStockEntries", ctx).Return([]domain.StockEntry(nil), apperror.NewDBError("falha ao listar", errors.New("timeout")))

	_, err := svc.MirrorDrift(ctx)

	assert.Error(t, err)
}
