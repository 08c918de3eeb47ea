package router

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "gotire/docs" // registra a especificação Swagger
	"gotire/internal/api/catalog"
	"gotire/internal/api/events"
	"gotire/internal/api/imports"
	"gotire/internal/api/operator"
	"gotire/internal/api/report"
	"gotire/internal/api/stock"
	"gotire/internal/domain"
	"gotire/internal/pkg/logger"
	"gotire/internal/pkg/middleware"
)

// Handlers reúne os handlers já inicializados por injeção de dependências.
type Handlers struct {
	Stock    *stock.Handler
	Catalog  *catalog.Handler
	Imports  *imports.Handler
	Report   *report.Handler
	Events   *events.Handler
	Operator *operator.Handler
}

// Options controla os middlewares globais. RateLimit nil desativa o limite.
type Options struct {
	RateLimit func(http.Handler) http.Handler
}

// NewRouter configura e retorna o roteador HTTP principal.
// As rotas /v1 exigem JWT (exceto o login); mutações do cadastro, contas e expurgos exigem admin.
func NewRouter(h Handlers, tokenSvc middleware.TokenService, opts Options, log logger.Logger) http.Handler {
	mux := http.NewServeMux()

	auth := middleware.NewAuthMiddleware(tokenSvc)
	streamAuth := middleware.NewStreamAuthMiddleware(tokenSvc)
	adminOnly := middleware.PermissionMiddleware(domain.RoleAdmin)
	admin := func(next http.HandlerFunc) http.HandlerFunc { return auth(adminOnly(next)) }

	// --- 1. Health check e documentação ---
	mux.HandleFunc("GET /ping", PingHandler)
	mux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// --- 2. Operadores (login é a única rota /v1 pública) ---
	mux.HandleFunc("POST /v1/login", h.Operator.LoginHandler)
	mux.HandleFunc("GET /v1/operators", admin(h.Operator.ListHandler))
	mux.HandleFunc("POST /v1/operators", admin(h.Operator.RegisterHandler))

	// --- 3. Estoque ---
	mux.HandleFunc("GET /v1/stock-entries", auth(h.Stock.ListHandler))
	mux.HandleFunc("POST /v1/stock-entries", auth(h.Stock.RegisterHandler))
	mux.HandleFunc("GET /v1/stock-entries/{barcode}", auth(h.Stock.GetByBarcodeHandler))
	mux.HandleFunc("DELETE /v1/stock-entries/{id}", admin(h.Stock.PurgeHandler))
	mux.HandleFunc("POST /v1/stock-entries/move", auth(h.Stock.MoveHandler))
	mux.HandleFunc("POST /v1/stock-entries/transfer", auth(h.Stock.TransferHandler))
	mux.HandleFunc("POST /v1/stock-entries/status", auth(h.Stock.StatusHandler))

	// --- 4. Importação em massa ---
	mux.HandleFunc("POST /v1/imports/preview", auth(h.Imports.PreviewHandler))
	mux.HandleFunc("POST /v1/imports", auth(h.Imports.ImportHandler))
	mux.HandleFunc("POST /v1/imports/xlsx", auth(h.Imports.ImportWorkbookHandler))
	mux.HandleFunc("GET /v1/imports/template", auth(h.Imports.TemplateHandler))

	// --- 5. Cadastro ---
	mux.HandleFunc("GET /v1/tire-models", auth(h.Catalog.ListTireModelsHandler))
	mux.HandleFunc("POST /v1/tire-models", admin(h.Catalog.CreateTireModelHandler))
	mux.HandleFunc("GET /v1/tire-models/{id}", auth(h.Catalog.GetTireModelHandler))
	mux.HandleFunc("PATCH /v1/tire-models/{id}", admin(h.Catalog.UpdateTireModelHandler))
	mux.HandleFunc("DELETE /v1/tire-models/{id}", admin(h.Catalog.DeleteTireModelHandler))

	mux.HandleFunc("GET /v1/containers", auth(h.Catalog.ListContainersHandler))
	mux.HandleFunc("POST /v1/containers", admin(h.Catalog.CreateContainerHandler))
	mux.HandleFunc("GET /v1/containers/{id}", auth(h.Catalog.GetContainerHandler))
	mux.HandleFunc("PATCH /v1/containers/{id}", admin(h.Catalog.UpdateContainerHandler))
	mux.HandleFunc("DELETE /v1/containers/{id}", admin(h.Catalog.DeleteContainerHandler))

	mux.HandleFunc("GET /v1/tire-statuses", auth(h.Catalog.ListTireStatusesHandler))
	mux.HandleFunc("POST /v1/tire-statuses", admin(h.Catalog.CreateTireStatusHandler))
	mux.HandleFunc("PATCH /v1/tire-statuses/{id}", admin(h.Catalog.UpdateTireStatusHandler))
	mux.HandleFunc("DELETE /v1/tire-statuses/{id}", admin(h.Catalog.DeleteTireStatusHandler))

	// --- 6. Relatórios e exportações ---
	mux.HandleFunc("GET /v1/reports/occupancy", auth(h.Report.OccupancyHandler))
	mux.HandleFunc("GET /v1/reports/discards", auth(h.Report.DiscardsHandler))
	mux.HandleFunc("GET /v1/reports/discards.csv", auth(h.Report.DiscardsCSVHandler))
	mux.HandleFunc("GET /v1/reports/discards.xlsx", auth(h.Report.DiscardsWorkbookHandler))
	mux.HandleFunc("GET /v1/reports/consumption.csv", auth(h.Report.ConsumptionCSVHandler))
	mux.HandleFunc("GET /v1/reports/sessions/{id}", auth(h.Report.SessionCountersHandler))
	mux.HandleFunc("GET /v1/reports/mirror-drift", admin(h.Report.MirrorDriftHandler))

	// --- 7. Eventos (SSE) ---
	mux.HandleFunc("GET /v1/events", streamAuth(h.Events.StreamHandler))

	// --- 8. Middlewares globais ---
	var handler http.Handler = mux
	if opts.RateLimit != nil {
		handler = opts.RateLimit(handler)
	}
	return middleware.RequestLogger(log)(handler)
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
