package domain

import (
	"strings"
	"time"
)

// TireStatus é um rótulo de status cadastrável. Os quatro padrões são protegidos:
// não podem ser renomeados nem removidos.
type TireStatus struct {
	ID        string    `json:"id"`
	Name      string    `json:"name" example:"Reserva"`
	Color     string    `json:"color" example:"#a855f7"`
	IsDefault bool      `json:"isDefault"`
	CreatedAt time.Time `json:"createdAt"`
}

// TireStatusUpdate contém apenas os campos alterados (nil = manter).
type TireStatusUpdate struct {
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty"`
}

// DefaultStatuses lista os status protegidos com suas cores padrão.
func DefaultStatuses() []TireStatus {
	return []TireStatus{
		{ID: "status-novo", Name: string(StatusNovo), Color: "#22c55e", IsDefault: true},
		{ID: "status-piloto", Name: string(StatusPiloto), Color: "#3b82f6", IsDefault: true},
		{ID: "status-descarte", Name: string(StatusDescarte), Color: "#ef4444", IsDefault: true},
		{ID: "status-descarte-piloto", Name: string(StatusDescartePiloto), Color: "#f97316", IsDefault: true},
	}
}

// IsDefaultStatusName informa se o nome pertence a um dos status protegidos.
func IsDefaultStatusName(name string) bool {
	for _, s := range DefaultStatuses() {
		if strings.EqualFold(s.Name, strings.TrimSpace(name)) {
			return true
		}
	}
	return false
}
