package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gotire/internal/api/catalog"
	"gotire/internal/api/events"
	"gotire/internal/api/imports"
	"gotire/internal/api/operator"
	"gotire/internal/api/report"
	"gotire/internal/api/router"
	"gotire/internal/api/stock"
	"gotire/internal/domain"
	"gotire/internal/pkg/logger"
	"gotire/internal/pkg/sse"
	"gotire/internal/pkg/token"
	"gotire/internal/repository/collection"
	"gotire/internal/repository/mirrorrepo"
	"gotire/internal/repository/stockrepo"
	"gotire/internal/service/catalogservice"
	"gotire/internal/service/importservice"
	"gotire/internal/service/operatorservice"
	"gotire/internal/service/reportservice"
	"gotire/internal/service/stockservice"
)

type api struct {
	t        *testing.T
	handler  http.Handler
	admin    string
	operator string
}

func newAPI(t *testing.T) *api {
	t.Helper()
	log := logger.NewNop()
	store, err := stockrepo.New(context.Background(), collection.NewMemoryBackend(), log)
	require.NoError(t, err)

	mirror := mirrorrepo.Nop{}
	hub := sse.NewHub(log)
	t.Cleanup(hub.Attach(store))

	tokenSvc := token.NewService("segredo-de-teste", time.Hour)

	handlers := router.Handlers{
		Stock:    stock.NewHandler(stockservice.NewService(store, mirror, log, stockservice.DefaultOptions()), log),
		Catalog:  catalog.NewHandler(catalogservice.NewService(store, log), log),
		Imports:  imports.NewHandler(importservice.NewService(store, mirror, log), log),
		Report:   report.NewHandler(reportservice.NewService(store, nil, log), log),
		Events:   events.NewHandler(hub, log),
		Operator: operator.NewHandler(operatorservice.NewService(store, tokenSvc, log), log),
	}

	admin, err := tokenSvc.GenerateToken("chefe", string(domain.RoleAdmin))
	require.NoError(t, err)
	operatorTok, err := tokenSvc.GenerateToken("mecanico", string(domain.RoleOperator))
	require.NoError(t, err)

	return &api{
		t:        t,
		handler:  router.NewRouter(handlers, tokenSvc, router.Options{}, log),
		admin:    admin,
		operator: operatorTok,
	}
}

func (a *api) do(method, path, tok string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	rr := httptest.NewRecorder()
	a.handler.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&out))
	return out
}

// seedCatalog cria um modelo e dois containers pela API.
func (a *api) seedCatalog() (model domain.TireModel, boxA, boxB domain.Container) {
	rr := a.do(http.MethodPost, "/v1/tire-models", a.admin, domain.TireModel{Name: "Slick 992 Dianteiro", Code: "992-D", Type: domain.TireTypeSlick})
	require.Equal(a.t, http.StatusCreated, rr.Code, rr.Body.String())
	model = decode[domain.TireModel](a.t, rr)

	rr = a.do(http.MethodPost, "/v1/containers", a.admin, domain.Container{Name: "Container A", Location: "Box 12", Capacity: 10})
	require.Equal(a.t, http.StatusCreated, rr.Code, rr.Body.String())
	boxA = decode[domain.Container](a.t, rr)

	rr = a.do(http.MethodPost, "/v1/containers", a.admin, domain.Container{Name: "Container B", Location: "Box 13", Capacity: 10})
	require.Equal(a.t, http.StatusCreated, rr.Code, rr.Body.String())
	boxB = decode[domain.Container](a.t, rr)
	return model, boxA, boxB
}

func TestPing(t *testing.T) {
	a := newAPI(t)
	rr := a.do(http.MethodGet, "/ping", "", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "pong", rr.Body.String())
}

func TestRoutes_RequireToken(t *testing.T) {
	a := newAPI(t)
	rr := a.do(http.MethodGet, "/v1/stock-entries", "", nil)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "UNAUTHORIZED", decode[domain.ErrorResponse](t, rr).Category)
}

func TestCatalogMutations_AdminOnly(t *testing.T) {
	a := newAPI(t)
	rr := a.do(http.MethodPost, "/v1/tire-models", a.operator, domain.TireModel{Name: "Wet 991", Type: domain.TireTypeWet})

	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = a.do(http.MethodGet, "/v1/tire-models", a.operator, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestStockLifecycle(t *testing.T) {
	a := newAPI(t)
	model, boxA, boxB := a.seedCatalog()

	// cadastro
	rr := a.do(http.MethodPost, "/v1/stock-entries", a.operator, domain.RegisterRequest{Barcode: "04903715", ModelID: model.ID, ContainerID: boxA.ID})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	entry := decode[domain.StockEntry](t, rr)
	assert.Equal(t, "Slick 992 Dianteiro", entry.ModelName)
	assert.Equal(t, domain.StatusNovo, entry.Status)

	rr = a.do(http.MethodPost, "/v1/stock-entries", a.operator, domain.RegisterRequest{Barcode: "04903715", ModelID: model.ID})
	assert.Equal(t, http.StatusConflict, rr.Code)

	// movimentação promove Novo para Piloto
	rr = a.do(http.MethodPost, "/v1/stock-entries/move", a.operator, domain.MoveRequest{Barcodes: []string{"04903715", "99999999"}, ContainerID: boxB.ID})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	result := decode[domain.BatchResult](t, rr)
	assert.Equal(t, 1, result.Success)
	assert.Equal(t, 1, result.Errors)

	rr = a.do(http.MethodGet, "/v1/stock-entries/04903715", a.operator, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	moved := decode[domain.StockEntry](t, rr)
	assert.Equal(t, boxB.ID, moved.ContainerID)
	assert.Equal(t, domain.StatusPiloto, moved.Status)

	// descarte tira da listagem padrão
	rr = a.do(http.MethodPost, "/v1/stock-entries/status", a.operator, domain.StatusRequest{Barcodes: []string{"04903715"}, Status: domain.StatusDescarte, Reason: "bolha"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = a.do(http.MethodGet, "/v1/stock-entries", a.operator, nil)
	assert.Empty(t, decode[[]domain.StockEntry](t, rr))

	rr = a.do(http.MethodGet, "/v1/stock-entries?status=Descarte", a.operator, nil)
	assert.Len(t, decode[[]domain.StockEntry](t, rr), 1)

	rr = a.do(http.MethodGet, "/v1/reports/discards", a.operator, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	discards := decode[report.Discards](t, rr)
	assert.Equal(t, 1, discards.Stats.Descarte)
	require.Len(t, discards.History, 1)
	assert.Equal(t, "bolha", discards.History[0].Reason)

	rr = a.do(http.MethodGet, "/v1/reports/discards.csv", a.operator, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "descartes_")
	assert.True(t, strings.HasPrefix(rr.Body.String(), "Código,Modelo,Tipo,Status,Piloto,Equipe,Data"))

	// expurgo só para admin
	rr = a.do(http.MethodDelete, "/v1/stock-entries/"+entry.ID, a.operator, nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	rr = a.do(http.MethodDelete, "/v1/stock-entries/"+entry.ID, a.admin, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestImport_PlainTextBody(t *testing.T) {
	a := newAPI(t)
	a.seedCatalog()

	body := "Código\tModelo\n04903715\tSlick 992 Dianteiro\n4903716\tSlick 992 Dianteiro 30/65-18 N3\n12\tSlick 992\n"
	req := httptest.NewRequest(http.MethodPost, "/v1/imports", strings.NewReader(body))
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	req.Header.Set("Authorization", "Bearer "+a.operator)
	rr := httptest.NewRecorder()
	a.handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	result := decode[domain.ImportResult](t, rr)
	assert.Equal(t, 2, result.Imported)
	assert.Len(t, result.Errors, 1)

	rr = a.do(http.MethodGet, "/v1/stock-entries/04903716", a.operator, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestImportTemplate_IsWorkbook(t *testing.T) {
	a := newAPI(t)
	rr := a.do(http.MethodGet, "/v1/imports/template", a.operator, nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rr.Header().Get("Content-Type"))
	// xlsx é um zip
	assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("PK")))
}

func TestDeleteOccupiedContainer_Conflict(t *testing.T) {
	a := newAPI(t)
	model, boxA, _ := a.seedCatalog()
	rr := a.do(http.MethodPost, "/v1/stock-entries", a.operator, domain.RegisterRequest{Barcode: "04903715", ModelID: model.ID, ContainerID: boxA.ID})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = a.do(http.MethodDelete, "/v1/containers/"+boxA.ID, a.admin, nil)
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = a.do(http.MethodGet, "/v1/reports/occupancy", a.operator, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	rows := decode[[]domain.ContainerOccupancy](t, rr)
	require.Len(t, rows, 2)
}

func TestMirrorDrift_DisabledMirror(t *testing.T) {
	a := newAPI(t)
	rr := a.do(http.MethodGet, "/v1/reports/mirror-drift", a.admin, nil)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestUnknownJSONField_Rejected(t *testing.T) {
	a := newAPI(t)
	req := httptest.NewRequest(http.MethodPost, "/v1/stock-entries/move", strings.NewReader(`{"codes":["04903715"]}`))
	req.Header.Set("Authorization", "Bearer "+a.operator)
	rr := httptest.NewRecorder()
	a.handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestOperators_RegisterAndLogin(t *testing.T) {
	a := newAPI(t)
	reg := domain.OperatorRegistration{Username: "mecanico2", Password: "senha-forte"}

	rr := a.do(http.MethodPost, "/v1/operators", a.operator, reg)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = a.do(http.MethodPost, "/v1/operators", a.admin, reg)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.NotContains(t, rr.Body.String(), "passwordHash")

	rr = a.do(http.MethodPost, "/v1/login", "", operator.LoginRequest{Username: "mecanico2", Password: "errada"})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = a.do(http.MethodPost, "/v1/login", "", operator.LoginRequest{Username: "mecanico2", Password: "senha-forte"})
	require.Equal(t, http.StatusOK, rr.Code)
	tok := decode[operator.LoginResponse](t, rr).Token
	require.NotEmpty(t, tok)

	// o token emitido no login dá acesso às rotas de operador
	rr = a.do(http.MethodGet, "/v1/stock-entries", tok, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}
