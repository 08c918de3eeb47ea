package domain

import "time"

// Movement é o registro de auditoria de uma mudança de container ou status.
// Nunca é alterado depois de criado.
type Movement struct {
	ID            string    `json:"id"`
	Barcode       string    `json:"barcode"`
	ModelName     string    `json:"modelName"`
	ModelType     TireType  `json:"modelType"`
	FromContainer string    `json:"fromContainer"`
	ToContainer   string    `json:"toContainer"`
	FromStatus    Status    `json:"fromStatus,omitempty"`
	ToStatus      Status    `json:"toStatus,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
	MovedBy       string    `json:"movedBy"`
	Reason        string    `json:"reason"`
}

// Consumption é o registro de auditoria da transferência de um pneu para um piloto.
type Consumption struct {
	ID           string    `json:"id"`
	Barcode      string    `json:"barcode"`
	Pilot        string    `json:"pilot"`
	Team         string    `json:"team"`
	Notes        string    `json:"notes"`
	Timestamp    time.Time `json:"timestamp"`
	RegisteredBy string    `json:"registeredBy"`
}
