package domain

// EventKind identifica uma notificação de mudança emitida pelo store.
type EventKind string

const (
	EventStockEntriesUpdated EventKind = "stock-entries-updated"
	EventContainersUpdated   EventKind = "containers-updated"
	EventTireModelsUpdated   EventKind = "tire-models-updated"
	EventTireStatusUpdated   EventKind = "tire-status-updated"

	// Marcos semânticos consumidos pela UI de progresso.
	EventTireAdded     EventKind = "tire-added"
	EventTireMoved     EventKind = "tire-moved"
	EventTireConsumed  EventKind = "tire-consumed"
	EventTireDiscarded EventKind = "tire-discarded"
)

// Event é entregue aos assinantes. Count é o número de registros afetados.
type Event struct {
	Kind     EventKind `json:"kind"`
	Count    int       `json:"count"`
	Barcodes []string  `json:"barcodes,omitempty"`
}
