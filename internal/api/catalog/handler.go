package catalog

import (
	"context"
	"net/http"

	"gotire/internal/api/response"
	"gotire/internal/domain"
	"gotire/internal/pkg/logger"
)

// CatalogService define o contrato que o Handler espera da camada de Serviço.
type CatalogService interface {
	ListTireModels(ctx context.Context) ([]domain.TireModel, error)
	GetTireModel(ctx context.Context, id string) (domain.TireModel, error)
	CreateTireModel(ctx context.Context, m domain.TireModel) (domain.TireModel, error)
	UpdateTireModel(ctx context.Context, id string, upd domain.TireModelUpdate) (domain.TireModel, error)
	DeleteTireModel(ctx context.Context, id string) error

	ListContainers(ctx context.Context) ([]domain.Container, error)
	GetContainer(ctx context.Context, id string) (domain.Container, error)
	CreateContainer(ctx context.Context, c domain.Container) (domain.Container, error)
	UpdateContainer(ctx context.Context, id string, upd domain.ContainerUpdate) (domain.Container, error)
	DeleteContainer(ctx context.Context, id string) error

	ListTireStatuses(ctx context.Context) ([]domain.TireStatus, error)
	CreateTireStatus(ctx context.Context, st domain.TireStatus) (domain.TireStatus, error)
	UpdateTireStatus(ctx context.Context, id string, upd domain.TireStatusUpdate) (domain.TireStatus, error)
	DeleteTireStatus(ctx context.Context, id string) error
}

// Handler agrupa os handlers do cadastro (modelos, containers e status).
type Handler struct {
	Service CatalogService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc CatalogService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

func (h *Handler) handleServiceResponse(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	response.Handle(h.Logger, w, r, data, err, successStatus)
}

// --- Modelos ---

// ListTireModelsHandler lida com a requisição GET /v1/tire-models.
// @Summary Lista os modelos de pneu
// @Tags catalog
// @Produce json
// @Success 200 {array} domain.TireModel
// @Security ApiKeyAuth
// @Router /tire-models [get]
func (h *Handler) ListTireModelsHandler(w http.ResponseWriter, r *http.Request) {
	models, err := h.Service.ListTireModels(r.Context())
	h.handleServiceResponse(w, r, models, err, http.StatusOK)
}

// GetTireModelHandler lida com a requisição GET /v1/tire-models/{id}.
// @Summary Obtém um modelo por ID
// @Tags catalog
// @Produce json
// @Param id path string true "ID do modelo"
// @Success 200 {object} domain.TireModel
// @Failure 404 {object} domain.ErrorResponse
// @Security ApiKeyAuth
// @Router /tire-models/{id} [get]
func (h *Handler) GetTireModelHandler(w http.ResponseWriter, r *http.Request) {
	m, err := h.Service.GetTireModel(r.Context(), r.PathValue("id"))
	h.handleServiceResponse(w, r, m, err, http.StatusOK)
}

// CreateTireModelHandler lida com a requisição POST /v1/tire-models.
// @Summary Cadastra um modelo (admin)
// @Tags catalog
// @Accept json
// @Produce json
// @Param model body domain.TireModel true "Modelo"
// @Success 201 {object} domain.TireModel
// @Failure 400 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse
// @Security ApiKeyAuth
// @Router /tire-models [post]
func (h *Handler) CreateTireModelHandler(w http.ResponseWriter, r *http.Request) {
	var m domain.TireModel
	if err := response.DecodeJSON(w, r, &m); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusBadRequest)
		return
	}
	created, err := h.Service.CreateTireModel(r.Context(), m)
	h.handleServiceResponse(w, r, created, err, http.StatusCreated)
}

// UpdateTireModelHandler lida com a requisição PATCH /v1/tire-models/{id}.
// @Summary Atualiza um modelo (admin)
// @Description Entradas já gravadas mantêm o nome antigo.
// @Tags catalog
// @Accept json
// @Produce json
// @Param id path string true "ID do modelo"
// @Param update body domain.TireModelUpdate true "Campos alterados"
// @Success 200 {object} domain.TireModel
// @Failure 404 {object} domain.ErrorResponse
// @Security ApiKeyAuth
// @Router /tire-models/{id} [patch]
func (h *Handler) UpdateTireModelHandler(w http.ResponseWriter, r *http.Request) {
	var upd domain.TireModelUpdate
	if err := response.DecodeJSON(w, r, &upd); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusBadRequest)
		return
	}
	updated, err := h.Service.UpdateTireModel(r.Context(), r.PathValue("id"), upd)
	h.handleServiceResponse(w, r, updated, err, http.StatusOK)
}

// DeleteTireModelHandler lida com a requisição DELETE /v1/tire-models/{id}.
// @Summary Remove um modelo (admin)
// @Tags catalog
// @Param id path string true "ID do modelo"
// @Success 204
// @Failure 404 {object} domain.ErrorResponse
// @Security ApiKeyAuth
// @Router /tire-models/{id} [delete]
func (h *Handler) DeleteTireModelHandler(w http.ResponseWriter, r *http.Request) {
	err := h.Service.DeleteTireModel(r.Context(), r.PathValue("id"))
	h.handleServiceResponse(w, r, nil, err, http.StatusNoContent)
}

// --- Containers ---

// ListContainersHandler lida com a requisição GET /v1/containers.
// @Summary Lista os containers com a ocupação atual
// @Tags catalog
// @Produce json
// @Success 200 {array} domain.Container
// @Security ApiKeyAuth
// @Router /containers [get]
func (h *Handler) ListContainersHandler(w http.ResponseWriter, r *http.Request) {
	containers, err := h.Service.ListContainers(r.Context())
	h.handleServiceResponse(w, r, containers, err, http.StatusOK)
}

// GetContainerHandler lida com a requisição GET /v1/containers/{id}.
// @Summary Obtém um container por ID
// @Tags catalog
// @Produce json
// @Param id path string true "ID do container"
// @Success 200 {object} domain.Container
// @Failure 404 {object} domain.ErrorResponse
// @Security ApiKeyAuth
// @Router /containers/{id} [get]
func (h *Handler) GetContainerHandler(w http.ResponseWriter, r *http.Request) {
	c, err := h.Service.GetContainer(r.Context(), r.PathValue("id"))
	h.handleServiceResponse(w, r, c, err, http.StatusOK)
}

// CreateContainerHandler lida com a requisição POST /v1/containers.
// @Summary Cadastra um container (admin)
// @Tags catalog
// @Accept json
// @Produce json
// @Param container body domain.Container true "Container"
// @Success 201 {object} domain.Container
// @Failure 400 {object} domain.ErrorResponse
// @Security ApiKeyAuth
// @Router /containers [post]
func (h *Handler) CreateContainerHandler(w http.ResponseWriter, r *http.Request) {
	var c domain.Container
	if err := response.DecodeJSON(w, r, &c); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusBadRequest)
		return
	}
	created, err := h.Service.CreateContainer(r.Context(), c)
	h.handleServiceResponse(w, r, created, err, http.StatusCreated)
}

// UpdateContainerHandler lida com a requisição PATCH /v1/containers/{id}.
// @Summary Atualiza um container (admin)
// @Tags catalog
// @Accept json
// @Produce json
// @Param id path string true "ID do container"
// @Param update body domain.ContainerUpdate true "Campos alterados"
// @Success 200 {object} domain.Container
// @Failure 404 {object} domain.ErrorResponse
// @Security ApiKeyAuth
// @Router /containers/{id} [patch]
func (h *Handler) UpdateContainerHandler(w http.ResponseWriter, r *http.Request) {
	var upd domain.ContainerUpdate
	if err := response.DecodeJSON(w, r, &upd); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusBadRequest)
		return
	}
	updated, err := h.Service.UpdateContainer(r.Context(), r.PathValue("id"), upd)
	h.handleServiceResponse(w, r, updated, err, http.StatusOK)
}

// DeleteContainerHandler lida com a requisição DELETE /v1/containers/{id}.
// @Summary Remove um container vazio (admin)
// @Tags catalog
// @Param id path string true "ID do container"
// @Success 204
// @Failure 404 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse "Container com pneus"
// @Security ApiKeyAuth
// @Router /containers/{id} [delete]
func (h *Handler) DeleteContainerHandler(w http.ResponseWriter, r *http.Request) {
	err := h.Service.DeleteContainer(r.Context(), r.PathValue("id"))
	h.handleServiceResponse(w, r, nil, err, http.StatusNoContent)
}

// --- Status ---

// ListTireStatusesHandler lida com a requisição GET /v1/tire-statuses.
// @Summary Lista os status cadastrados
// @Tags catalog
// @Produce json
// @Success 200 {array} domain.TireStatus
// @Security ApiKeyAuth
// @Router /tire-statuses [get]
func (h *Handler) ListTireStatusesHandler(w http.ResponseWriter, r *http.Request) {
	statuses, err := h.Service.ListTireStatuses(r.Context())
	h.handleServiceResponse(w, r, statuses, err, http.StatusOK)
}

// CreateTireStatusHandler lida com a requisição POST /v1/tire-statuses.
// @Summary Cadastra um status customizado (admin)
// @Tags catalog
// @Accept json
// @Produce json
// @Param status body domain.TireStatus true "Status"
// @Success 201 {object} domain.TireStatus
// @Failure 400 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse
// @Security ApiKeyAuth
// @Router /tire-statuses [post]
func (h *Handler) CreateTireStatusHandler(w http.ResponseWriter, r *http.Request) {
	var st domain.TireStatus
	if err := response.DecodeJSON(w, r, &st); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusBadRequest)
		return
	}
	created, err := h.Service.CreateTireStatus(r.Context(), st)
	h.handleServiceResponse(w, r, created, err, http.StatusCreated)
}

// UpdateTireStatusHandler lida com a requisição PATCH /v1/tire-statuses/{id}.
// @Summary Atualiza um status (admin)
// @Description Status padrão aceitam apenas troca de cor.
// @Tags catalog
// @Accept json
// @Produce json
// @Param id path string true "ID do status"
// @Param update body domain.TireStatusUpdate true "Campos alterados"
// @Success 200 {object} domain.TireStatus
// @Failure 422 {object} domain.ErrorResponse "Status padrão"
// @Security ApiKeyAuth
// @Router /tire-statuses/{id} [patch]
func (h *Handler) UpdateTireStatusHandler(w http.ResponseWriter, r *http.Request) {
	var upd domain.TireStatusUpdate
	if err := response.DecodeJSON(w, r, &upd); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusBadRequest)
		return
	}
	updated, err := h.Service.UpdateTireStatus(r.Context(), r.PathValue("id"), upd)
	h.handleServiceResponse(w, r, updated, err, http.StatusOK)
}

// DeleteTireStatusHandler lida com a requisição DELETE /v1/tire-statuses/{id}.
// @Summary Remove um status customizado (admin)
// @Tags catalog
// @Param id path string true "ID do status"
// @Success 204
// @Failure 422 {object} domain.ErrorResponse "Status padrão"
// @Security ApiKeyAuth
// @Router /tire-statuses/{id} [delete]
func (h *Handler) DeleteTireStatusHandler(w http.ResponseWriter, r *http.Request) {
	err := h.Service.DeleteTireStatus(r.Context(), r.PathValue("id"))
	h.handleServiceResponse(w, r, nil, err, http.StatusNoContent)
}
