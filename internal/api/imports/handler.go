package imports

import (
	"context"
	"io"
	"mime"
	"net/http"

	"github.com/xuri/excelize/v2"

	"gotire/internal/api/response"
	"gotire/internal/domain"
	apperror "gotire/internal/errors"
	"gotire/internal/pkg/logger"
	"gotire/internal/pkg/middleware"
	"gotire/internal/service/importservice"
)

// MaxUpload limita o tamanho de planilhas e textos enviados.
const MaxUpload = 10 << 20

// ImportService define o contrato que o Handler espera da camada de Serviço.
type ImportService interface {
	Preview(ctx context.Context, text string) (domain.ParseResult, error)
	Import(ctx context.Context, text, actor string) (domain.ImportResult, error)
}

// Request é o corpo JSON aceito pela importação.
type Request struct {
	Text string `json:"text"`
}

// Handler agrupa os handlers de importação em massa.
type Handler struct {
	Service ImportService
	Logger  logger.Logger
	// Template gera a planilha modelo; substituível em testes.
	Template func() (*excelize.File, error)
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc ImportService, log logger.Logger) *Handler {
	return &Handler{
		Service:  svc,
		Logger:   log,
		Template: importservice.Template,
	}
}

func (h *Handler) handleServiceResponse(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	response.Handle(h.Logger, w, r, data, err, successStatus)
}

// readText aceita {"text": "..."} em JSON ou o texto cru (text/plain, CSV).
func (h *Handler) readText(w http.ResponseWriter, r *http.Request) (string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" || mediaType == "" {
		var req Request
		if err := response.DecodeJSON(w, r, &req); err != nil {
			return "", err
		}
		return req.Text, nil
	}

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxUpload))
	if err != nil {
		return "", apperror.NewValidationError("Não foi possível ler o corpo da requisição.")
	}
	return importservice.DecodeText(raw), nil
}

// PreviewHandler lida com a requisição POST /v1/imports/preview.
// @Summary Pré-visualiza uma importação
// @Description Processa o texto colado (código e modelo por linha) sem gravar nada.
// @Tags imports
// @Accept json,plain
// @Produce json
// @Param request body Request true "Texto colado"
// @Success 200 {object} domain.ParseResult
// @Failure 400 {object} domain.ErrorResponse
// @Security ApiKeyAuth
// @Router /imports/preview [post]
func (h *Handler) PreviewHandler(w http.ResponseWriter, r *http.Request) {
	text, err := h.readText(w, r)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusBadRequest)
		return
	}

	result, err := h.Service.Preview(r.Context(), text)
	h.handleServiceResponse(w, r, result, err, http.StatusOK)
}

// ImportHandler lida com a requisição POST /v1/imports.
// @Summary Importa pneus em massa
// @Description Grava as linhas válidas numa única escrita; erros por linha voltam no relatório.
// @Tags imports
// @Accept json,plain
// @Produce json
// @Param request body Request true "Texto colado"
// @Success 200 {object} domain.ImportResult
// @Failure 400 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse
// @Security ApiKeyAuth
// @Router /imports [post]
func (h *Handler) ImportHandler(w http.ResponseWriter, r *http.Request) {
	text, err := h.readText(w, r)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusBadRequest)
		return
	}

	result, err := h.Service.Import(r.Context(), text, middleware.Actor(r.Context()))
	h.handleServiceResponse(w, r, result, err, http.StatusOK)
}

// ImportWorkbookHandler lida com a requisição POST /v1/imports/xlsx.
// @Summary Importa pneus a partir de uma planilha
// @Description Usa as duas primeiras colunas da primeira planilha (código e modelo).
// @Tags imports
// @Accept mpfd
// @Produce json
// @Param file formData file true "Planilha .xlsx"
// @Param preview query bool false "Apenas pré-visualizar"
// @Success 200 {object} domain.ImportResult
// @Failure 400 {object} domain.ErrorResponse
// @Security ApiKeyAuth
// @Router /imports/xlsx [post]
func (h *Handler) ImportWorkbookHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUpload)
	file, _, err := r.FormFile("file")
	if err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Envie a planilha no campo 'file'."), http.StatusBadRequest)
		return
	}
	defer file.Close()

	text, err := importservice.ReadWorkbook(file)
	if err != nil {
		h.Logger.Warn("Planilha de importação ilegível.", map[string]interface{}{"error": err.Error()})
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Arquivo não é uma planilha .xlsx válida."), http.StatusBadRequest)
		return
	}

	if r.URL.Query().Get("preview") == "true" {
		result, err := h.Service.Preview(r.Context(), text)
		h.handleServiceResponse(w, r, result, err, http.StatusOK)
		return
	}

	result, err := h.Service.Import(r.Context(), text, middleware.Actor(r.Context()))
	h.handleServiceResponse(w, r, result, err, http.StatusOK)
}

// TemplateHandler lida com a requisição GET /v1/imports/template.
// @Summary Baixa a planilha modelo de importação
// @Tags imports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Security ApiKeyAuth
// @Router /imports/template [get]
func (h *Handler) TemplateHandler(w http.ResponseWriter, r *http.Request) {
	f, err := h.Template()
	if err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewInternalError("Falha ao gerar a planilha modelo.", err), http.StatusOK)
		return
	}
	defer f.Close()

	response.Attachment(w, response.ContentTypeXLSX, "modelo_importacao.xlsx")
	if err := f.Write(w); err != nil {
		h.Logger.Error("Falha ao escrever a planilha modelo.", err)
	}
}
