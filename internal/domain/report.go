package domain

import "time"

// ContainerOccupancy é a visão de ocupação de um container, recalculada a cada leitura.
type ContainerOccupancy struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Location string  `json:"location"`
	Capacity int     `json:"capacity"`
	Current  int     `json:"current"`
	Free     int     `json:"free"`
	Ratio    float64 `json:"ratio"`
}

// DiscardStats resume os descartes por variante, modelo e piloto.
type DiscardStats struct {
	Total          int            `json:"total"`
	Descarte       int            `json:"descarte"`
	DescartePiloto int            `json:"descartePiloto"`
	ByModel        map[string]int `json:"byModel"`
	ByPilot        map[string]int `json:"byPilot"`
}

// DiscardRecord é uma linha do histórico de descartes. DiscardedAt vem do último
// registro de movimentação para um status de descarte; sem ele, da data da entrada.
type DiscardRecord struct {
	StockEntry
	DiscardedAt time.Time `json:"discardedAt"`
	DiscardedBy string    `json:"discardedBy,omitempty"`
	Reason      string    `json:"reason,omitempty"`
}

// SessionCounter conta as entradas de um modelo dentro de uma sessão.
type SessionCounter struct {
	ModelID   string         `json:"modelId"`
	ModelName string         `json:"modelName"`
	ModelType TireType       `json:"modelType"`
	Total     int            `json:"total"`
	ByStatus  map[Status]int `json:"byStatus"`
}

// StatusDrift é um código presente nos dois lados com status diferentes.
type StatusDrift struct {
	Barcode string `json:"barcode"`
	Local   Status `json:"local"`
	Remote  Status `json:"remote"`
}

// MirrorDrift compara o store local com o espelho remoto.
type MirrorDrift struct {
	LocalCount     int           `json:"localCount"`
	RemoteCount    int           `json:"remoteCount"`
	LocalOnly      []string      `json:"localOnly"`
	RemoteOnly     []string      `json:"remoteOnly"`
	StatusMismatch []StatusDrift `json:"statusMismatch"`
}
