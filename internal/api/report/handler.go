package report

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"

	"gotire/internal/api/response"
	"gotire/internal/domain"
	"gotire/internal/pkg/logger"
)

// ReportService define o contrato que o Handler espera da camada de Serviço.
type ReportService interface {
	Occupancy(ctx context.Context) ([]domain.ContainerOccupancy, error)
	DiscardStats(ctx context.Context) (domain.DiscardStats, error)
	DiscardHistory(ctx context.Context) ([]domain.DiscardRecord, error)
	SessionCounters(ctx context.Context, sessionID string) ([]domain.SessionCounter, error)
	MirrorDrift(ctx context.Context) (domain.MirrorDrift, error)
	WriteDiscardsCSV(ctx context.Context, w io.Writer) error
	WriteConsumptionCSV(ctx context.Context, w io.Writer) error
	DiscardWorkbook(ctx context.Context) (*excelize.File, string, error)
}

// Discards é a resposta do relatório de descartes.
type Discards struct {
	Stats   domain.DiscardStats    `json:"stats"`
	History []domain.DiscardRecord `json:"history"`
}

// Handler agrupa os handlers de relatórios e exportações.
type Handler struct {
	Service ReportService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc ReportService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

func (h *Handler) handleServiceResponse(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	response.Handle(h.Logger, w, r, data, err, successStatus)
}

// OccupancyHandler lida com a requisição GET /v1/reports/occupancy.
// @Summary Ocupação dos containers
// @Tags reports
// @Produce json
// @Success 200 {array} domain.ContainerOccupancy
// @Security ApiKeyAuth
// @Router /reports/occupancy [get]
func (h *Handler) OccupancyHandler(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.Occupancy(r.Context())
	h.handleServiceResponse(w, r, rows, err, http.StatusOK)
}

// DiscardsHandler lida com a requisição GET /v1/reports/discards.
// @Summary Estatísticas e histórico de descartes
// @Tags reports
// @Produce json
// @Success 200 {object} Discards
// @Security ApiKeyAuth
// @Router /reports/discards [get]
func (h *Handler) DiscardsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.DiscardStats(r.Context())
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}
	history, err := h.Service.DiscardHistory(r.Context())
	h.handleServiceResponse(w, r, Discards{Stats: stats, History: history}, err, http.StatusOK)
}

// SessionCountersHandler lida com a requisição GET /v1/reports/sessions/{id}.
// @Summary Contadores de pneus por modelo numa sessão
// @Tags reports
// @Produce json
// @Param id path string true "ID da sessão"
// @Success 200 {array} domain.SessionCounter
// @Failure 400 {object} domain.ErrorResponse
// @Security ApiKeyAuth
// @Router /reports/sessions/{id} [get]
func (h *Handler) SessionCountersHandler(w http.ResponseWriter, r *http.Request) {
	counters, err := h.Service.SessionCounters(r.Context(), r.PathValue("id"))
	h.handleServiceResponse(w, r, counters, err, http.StatusOK)
}

// MirrorDriftHandler lida com a requisição GET /v1/reports/mirror-drift.
// @Summary Divergências entre o estoque local e o espelho remoto (admin)
// @Tags reports
// @Produce json
// @Success 200 {object} domain.MirrorDrift
// @Failure 422 {object} domain.ErrorResponse "Espelho desativado"
// @Security ApiKeyAuth
// @Router /reports/mirror-drift [get]
func (h *Handler) MirrorDriftHandler(w http.ResponseWriter, r *http.Request) {
	drift, err := h.Service.MirrorDrift(r.Context())
	h.handleServiceResponse(w, r, drift, err, http.StatusOK)
}

// DiscardsCSVHandler lida com a requisição GET /v1/reports/discards.csv.
// @Summary Exporta os descartes em CSV
// @Tags reports
// @Produce text/csv
// @Success 200 {file} file
// @Security ApiKeyAuth
// @Router /reports/discards.csv [get]
func (h *Handler) DiscardsCSVHandler(w http.ResponseWriter, r *http.Request) {
	h.writeCSV(w, r, "descartes", h.Service.WriteDiscardsCSV)
}

// ConsumptionCSVHandler lida com a requisição GET /v1/reports/consumption.csv.
// @Summary Exporta o histórico de consumo em CSV
// @Tags reports
// @Produce text/csv
// @Success 200 {file} file
// @Security ApiKeyAuth
// @Router /reports/consumption.csv [get]
func (h *Handler) ConsumptionCSVHandler(w http.ResponseWriter, r *http.Request) {
	h.writeCSV(w, r, "consumo", h.Service.WriteConsumptionCSV)
}

// writeCSV gera o arquivo em memória para que uma falha ainda vire resposta JSON.
func (h *Handler) writeCSV(w http.ResponseWriter, r *http.Request, name string, write func(context.Context, io.Writer) error) {
	var buf bytes.Buffer
	if err := write(r.Context(), &buf); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	filename := fmt.Sprintf("%s_%s.csv", name, time.Now().Format("20060102"))
	response.Attachment(w, response.ContentTypeCSV, filename)
	if _, err := buf.WriteTo(w); err != nil {
		h.Logger.Error("Falha ao enviar CSV.", err)
	}
}

// DiscardsWorkbookHandler lida com a requisição GET /v1/reports/discards.xlsx.
// @Summary Exporta os descartes em planilha
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Security ApiKeyAuth
// @Router /reports/discards.xlsx [get]
func (h *Handler) DiscardsWorkbookHandler(w http.ResponseWriter, r *http.Request) {
	f, filename, err := h.Service.DiscardWorkbook(r.Context())
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}
	defer f.Close()

	response.Attachment(w, response.ContentTypeXLSX, filename)
	if err := f.Write(w); err != nil {
		h.Logger.Error("Falha ao escrever planilha de descartes.", err)
	}
}
