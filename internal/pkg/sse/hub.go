// Package sse distribui os eventos de mudança do store para clientes conectados
// via Server-Sent Events.
package sse

import (
	"encoding/json"
	"sync"

	"gotire/internal/domain"
	"gotire/internal/pkg/logger"
)

// Event é uma mensagem SSE já serializada.
type Event struct {
	EventType string
	Data      string
}

// Client é uma conexão SSE registrada.
type Client struct {
	ID     string
	UserID string
	Events chan Event
}

// Hub mantém os clientes conectados. Clientes lentos perdem eventos em vez de
// bloquear o store, que entrega eventos de forma síncrona.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	logger  logger.Logger
}

// NewHub cria um hub sem clientes.
func NewHub(log logger.Logger) *Hub {
	return &Hub{clients: make(map[string]*Client), logger: log}
}

// Register adiciona um cliente ao hub.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client.ID] = client
	h.logger.Debug("Cliente SSE registrado.", map[string]interface{}{"id": client.ID, "user_id": client.UserID, "total": len(h.clients)})
}

// Unregister remove o cliente e fecha o canal dele.
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if client, ok := h.clients[clientID]; ok {
		close(client.Events)
		delete(h.clients, clientID)
		h.logger.Debug("Cliente SSE removido.", map[string]interface{}{"id": clientID, "total": len(h.clients)})
	}
}

// Close encerra todos os streams abertos (usado no desligamento do servidor).
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, client := range h.clients {
		close(client.Events)
		delete(h.clients, id)
	}
}

// Count devolve a quantidade de clientes conectados.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast envia o evento para todos os clientes conectados.
func (h *Hub) Broadcast(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		select {
		case client.Events <- event:
		default:
			h.logger.Warn("Buffer do cliente SSE cheio; evento descartado.", map[string]interface{}{"id": client.ID, "event": event.EventType})
		}
	}
}

// Publish serializa um evento do store e o envia a todos os clientes.
// Tem a assinatura de um handler do store para ser usado em Subscribe.
func (h *Hub) Publish(ev domain.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		h.logger.Error("Falha ao serializar evento SSE.", err)
		return
	}
	h.Broadcast(Event{EventType: string(ev.Kind), Data: string(data)})
}

// Subscriber é a parte do store que o hub precisa para se inscrever.
type Subscriber interface {
	Subscribe(kind domain.EventKind, h func(domain.Event)) func()
}

// AllKinds lista os eventos repassados aos clientes.
var AllKinds = []domain.EventKind{
	domain.EventStockEntriesUpdated,
	domain.EventContainersUpdated,
	domain.EventTireModelsUpdated,
	domain.EventTireStatusUpdated,
	domain.EventTireAdded,
	domain.EventTireMoved,
	domain.EventTireConsumed,
	domain.EventTireDiscarded,
}

// Attach inscreve o hub em todos os eventos do store e devolve a função que
// cancela as inscrições.
func (h *Hub) Attach(sub Subscriber) (detach func()) {
	cancels := make([]func(), 0, len(AllKinds))
	for _, kind := range AllKinds {
		cancels = append(cancels, sub.Subscribe(kind, h.Publish))
	}
	return func() {
		for _, cancel := range cancels {
			cancel()
		}
	}
}
