package events

import (
	"fmt"
	"net/http"
	"time"

	"gotire/internal/api/response"
	apperror "gotire/internal/errors"
	"gotire/internal/pkg/logger"
	"gotire/internal/pkg/middleware"
	"gotire/internal/pkg/sse"
)

// Heartbeat é o intervalo dos comentários keepalive.
var Heartbeat = 30 * time.Second

// Handler expõe o stream de eventos do estoque.
type Handler struct {
	Hub    *sse.Hub
	Logger logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Hub e o Logger.
func NewHandler(hub *sse.Hub, log logger.Logger) *Handler {
	return &Handler{Hub: hub, Logger: log}
}

// StreamHandler lida com a requisição GET /v1/events.
// @Summary Stream de mudanças do estoque (Server-Sent Events)
// @Description Aceita o token em ?token= porque EventSource não envia cabeçalhos.
// @Tags events
// @Produce text/event-stream
// @Param token query string false "JWT"
// @Success 200 {string} string "stream"
// @Security ApiKeyAuth
// @Router /events [get]
func (h *Handler) StreamHandler(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		response.Handle(h.Logger, w, r, nil, apperror.NewInternalError("Streaming não suportado.", nil), http.StatusOK)
		return
	}

	userID := middleware.Actor(r.Context())
	clientID := fmt.Sprintf("%s_%d", userID, time.Now().UnixNano())

	client := &sse.Client{
		ID:     clientID,
		UserID: userID,
		Events: make(chan sse.Event, 64),
	}
	h.Hub.Register(client)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	fmt.Fprintf(w, "event: connected\ndata: {\"client_id\":%q}\n\n", clientID)
	flusher.Flush()

	heartbeat := time.NewTicker(Heartbeat)
	defer heartbeat.Stop()

	clientGone := r.Context().Done()

	for {
		select {
		case <-clientGone:
			h.Hub.Unregister(clientID)
			return
		case event, ok := <-client.Events:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.EventType, event.Data)
			flusher.Flush()
		case <-heartbeat.C:
			fmt.Fprint(w, ": keepalive\n\n")
			flusher.Flush()
		}
	}
}
