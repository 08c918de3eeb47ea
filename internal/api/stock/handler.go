package stock

import (
	"context"
	"net/http"

	"gotire/internal/api/response"
	"gotire/internal/domain"
	"gotire/internal/pkg/logger"
	"gotire/internal/pkg/middleware"
)

// StockService define o contrato que o Handler espera da camada de Serviço.
type StockService interface {
	Register(ctx context.Context, req domain.RegisterRequest) (domain.StockEntry, error)
	GetByBarcode(ctx context.Context, barcode string) (domain.StockEntry, error)
	List(ctx context.Context, filter domain.StockEntryFilter) ([]domain.StockEntry, error)
	Purge(ctx context.Context, id, actor string) error
	Move(ctx context.Context, req domain.MoveRequest, actor string) (domain.BatchResult, error)
	TransferToPilot(ctx context.Context, req domain.TransferRequest, actor string) (domain.BatchResult, error)
	ChangeStatus(ctx context.Context, req domain.StatusRequest, actor string) (domain.BatchResult, error)
}

// Handler agrupa todos os métodos de Handler de estoque.
type Handler struct {
	Service StockService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc StockService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

func (h *Handler) handleServiceResponse(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	response.Handle(h.Logger, w, r, data, err, successStatus)
}

// ListHandler lida com a requisição GET /v1/stock-entries.
// @Summary Lista entradas de estoque
// @Description Filtra por status, container, modelo, sessão e piloto. Descartadas só com includeDiscarded=true.
// @Tags stock
// @Produce json
// @Param status query string false "Status"
// @Param containerId query string false "ID do container"
// @Param modelId query string false "ID do modelo"
// @Param sessionId query string false "ID da sessão"
// @Param pilot query string false "Piloto"
// @Param includeDiscarded query bool false "Incluir descartadas"
// @Success 200 {array} domain.StockEntry
// @Failure 500 {object} domain.ErrorResponse
// @Security ApiKeyAuth
// @Router /stock-entries [get]
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.StockEntryFilter{
		IncludeDiscarded: q.Get("includeDiscarded") == "true",
		Status:           domain.Status(q.Get("status")),
		ContainerID:      q.Get("containerId"),
		ModelID:          q.Get("modelId"),
		SessionID:        q.Get("sessionId"),
		Pilot:            q.Get("pilot"),
	}
	// filtrar por um status de descarte implica incluir descartadas
	if filter.Status.IsDiscard() {
		filter.IncludeDiscarded = true
	}

	entries, err := h.Service.List(r.Context(), filter)
	h.handleServiceResponse(w, r, entries, err, http.StatusOK)
}

// GetByBarcodeHandler lida com a requisição GET /v1/stock-entries/{barcode}.
// @Summary Busca uma entrada pelo código de barras
// @Tags stock
// @Produce json
// @Param barcode path string true "Código de 8 dígitos"
// @Success 200 {object} domain.StockEntry
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security ApiKeyAuth
// @Router /stock-entries/{barcode} [get]
func (h *Handler) GetByBarcodeHandler(w http.ResponseWriter, r *http.Request) {
	entry, err := h.Service.GetByBarcode(r.Context(), r.PathValue("barcode"))
	h.handleServiceResponse(w, r, entry, err, http.StatusOK)
}

// RegisterHandler lida com a requisição POST /v1/stock-entries.
// @Summary Cadastra um pneu
// @Tags stock
// @Accept json
// @Produce json
// @Param entry body domain.RegisterRequest true "Pneu"
// @Success 201 {object} domain.StockEntry
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse "Código já cadastrado"
// @Security ApiKeyAuth
// @Router /stock-entries [post]
func (h *Handler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusBadRequest)
		return
	}

	entry, err := h.Service.Register(r.Context(), req)
	h.handleServiceResponse(w, r, entry, err, http.StatusCreated)
}

// PurgeHandler lida com a requisição DELETE /v1/stock-entries/{id}.
// @Summary Expurga uma entrada (admin)
// @Tags stock
// @Param id path string true "ID da entrada"
// @Success 204
// @Failure 403 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security ApiKeyAuth
// @Router /stock-entries/{id} [delete]
func (h *Handler) PurgeHandler(w http.ResponseWriter, r *http.Request) {
	err := h.Service.Purge(r.Context(), r.PathValue("id"), middleware.Actor(r.Context()))
	h.handleServiceResponse(w, r, nil, err, http.StatusNoContent)
}

// MoveHandler lida com a requisição POST /v1/stock-entries/move.
// @Summary Move pneus para outro container
// @Description Lote de melhor esforço: cada item falha individualmente. Pneus "Novo" passam ao status ativo.
// @Tags stock
// @Accept json
// @Produce json
// @Param request body domain.MoveRequest true "Códigos e container de destino"
// @Success 200 {object} domain.BatchResult
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse "Container inexistente"
// @Security ApiKeyAuth
// @Router /stock-entries/move [post]
func (h *Handler) MoveHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.MoveRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusBadRequest)
		return
	}

	result, err := h.Service.Move(r.Context(), req, middleware.Actor(r.Context()))
	h.handleServiceResponse(w, r, result, err, http.StatusOK)
}

// TransferHandler lida com a requisição POST /v1/stock-entries/transfer.
// @Summary Transfere pneus novos para um piloto
// @Tags stock
// @Accept json
// @Produce json
// @Param request body domain.TransferRequest true "Códigos e dados do piloto"
// @Success 200 {object} domain.BatchResult
// @Failure 400 {object} domain.ErrorResponse
// @Security ApiKeyAuth
// @Router /stock-entries/transfer [post]
func (h *Handler) TransferHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.TransferRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusBadRequest)
		return
	}

	result, err := h.Service.TransferToPilot(r.Context(), req, middleware.Actor(r.Context()))
	h.handleServiceResponse(w, r, result, err, http.StatusOK)
}

// StatusHandler lida com a requisição POST /v1/stock-entries/status.
// @Summary Altera o status de pneus
// @Description Status de descarte removem o pneu do container.
// @Tags stock
// @Accept json
// @Produce json
// @Param request body domain.StatusRequest true "Códigos e novo status"
// @Success 200 {object} domain.BatchResult
// @Failure 400 {object} domain.ErrorResponse
// @Security ApiKeyAuth
// @Router /stock-entries/status [post]
func (h *Handler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.StatusRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusBadRequest)
		return
	}

	result, err := h.Service.ChangeStatus(r.Context(), req, middleware.Actor(r.Context()))
	h.handleServiceResponse(w, r, result, err, http.StatusOK)
}
