package operator

import (
	"context"
	"net/http"

	"gotire/internal/api/response"
	"gotire/internal/domain"
	"gotire/internal/pkg/logger"
)

// OperatorService define o contrato para as operações de cadastro e login.
type OperatorService interface {
	Register(ctx context.Context, reg domain.OperatorRegistration) (domain.Operator, error)
	List(ctx context.Context) ([]domain.Operator, error)
	Login(ctx context.Context, username, password string) (string, error)
}

// LoginRequest representa o payload de entrada para o login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carrega o JWT emitido.
type LoginResponse struct {
	Token string `json:"token"`
}

// Handler agrupa todos os métodos de Handler de operadores.
type Handler struct {
	Service OperatorService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc OperatorService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

func (h *Handler) handleServiceResponse(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	response.Handle(h.Logger, w, r, data, err, successStatus)
}

// RegisterHandler lida com a requisição POST /v1/operators.
// @Summary Cadastra um operador (admin)
// @Description Hasheia a senha e grava a conta no store local.
// @Tags operators
// @Accept json
// @Produce json
// @Param registration body domain.OperatorRegistration true "Usuário, senha e papel"
// @Success 201 {object} domain.Operator "Operador criado"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 409 {object} domain.ErrorResponse "Operador já existe"
// @Security ApiKeyAuth
// @Router /operators [post]
func (h *Handler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var reg domain.OperatorRegistration
	if err := response.DecodeJSON(w, r, &reg); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusBadRequest)
		return
	}

	created, err := h.Service.Register(r.Context(), reg)
	h.handleServiceResponse(w, r, created, err, http.StatusCreated)
}

// ListHandler lida com a requisição GET /v1/operators.
// @Summary Lista os operadores (admin)
// @Tags operators
// @Produce json
// @Success 200 {array} domain.Operator
// @Security ApiKeyAuth
// @Router /operators [get]
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	operators, err := h.Service.List(r.Context())
	h.handleServiceResponse(w, r, operators, err, http.StatusOK)
}

// LoginHandler lida com a requisição POST /v1/login.
// @Summary Autentica um operador e retorna um JWT
// @Tags operators
// @Accept json
// @Produce json
// @Param login body LoginRequest true "Usuário e senha"
// @Success 200 {object} LoginResponse "Token JWT emitido"
// @Failure 401 {object} domain.ErrorResponse "Credenciais inválidas"
// @Router /login [post]
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusBadRequest)
		return
	}

	tok, err := h.Service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}
	h.handleServiceResponse(w, r, LoginResponse{Token: tok}, nil, http.StatusOK)
}
