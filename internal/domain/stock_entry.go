package domain

import "time"

// Status é o estado de uma entrada de estoque. Além dos quatro valores padrão,
// qualquer status customizado cadastrado pode ser usado (apenas para exibição).
type Status string

const (
	StatusNovo           Status = "Novo"
	StatusPiloto         Status = "Piloto"
	StatusDescarte       Status = "Descarte"
	StatusDescartePiloto Status = "Descarte Piloto"

	// StatusLegacyAtivo é o valor antigo migrado para StatusPiloto na inicialização.
	StatusLegacyAtivo Status = "Ativo"
)

// IsDiscard informa se o status é uma das variantes de descarte.
func (s Status) IsDiscard() bool {
	return s == StatusDescarte || s == StatusDescartePiloto
}

// StockEntry é um pneu físico identificado pelo código de barras.
//
// ModelName, ModelType e ContainerName são rótulos históricos gravados no momento da
// escrita, e não referências vivas: renomear um modelo ou container não altera
// entradas já existentes.
type StockEntry struct {
	ID            string    `json:"id"`
	Barcode       string    `json:"barcode" example:"04903715"`
	ModelID       string    `json:"modelId"`
	ModelName     string    `json:"modelName" example:"Slick 992 Dianteiro"`
	ModelType     TireType  `json:"modelType" example:"Slick"`
	ContainerID   string    `json:"containerId"`
	ContainerName string    `json:"containerName"`
	Timestamp     time.Time `json:"timestamp"`
	Status        Status    `json:"status" example:"Novo"`
	SessionID     string    `json:"sessionId,omitempty"`
	Pilot         string    `json:"pilot,omitempty"`
	Team          string    `json:"team,omitempty"`
	Notes         string    `json:"notes,omitempty"`
}

// StockEntryUpdate é uma atualização parcial; campos nil não são alterados.
// Um ponteiro para string vazia limpa o campo.
type StockEntryUpdate struct {
	ContainerID   *string `json:"containerId,omitempty"`
	ContainerName *string `json:"containerName,omitempty"`
	Status        *Status `json:"status,omitempty"`
	SessionID     *string `json:"sessionId,omitempty"`
	Pilot         *string `json:"pilot,omitempty"`
	Team          *string `json:"team,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

// Apply devolve uma cópia da entrada com a atualização aplicada.
func (u StockEntryUpdate) Apply(e StockEntry) StockEntry {
	if u.ContainerID != nil {
		e.ContainerID = *u.ContainerID
	}
	if u.ContainerName != nil {
		e.ContainerName = *u.ContainerName
	}
	if u.Status != nil {
		e.Status = *u.Status
	}
	if u.SessionID != nil {
		e.SessionID = *u.SessionID
	}
	if u.Pilot != nil {
		e.Pilot = *u.Pilot
	}
	if u.Team != nil {
		e.Team = *u.Team
	}
	if u.Notes != nil {
		e.Notes = *u.Notes
	}
	return e
}

// BarcodeUpdate associa uma atualização parcial ao código de barras alvo.
type BarcodeUpdate struct {
	Barcode string
	Update  StockEntryUpdate
}

// StockEntryFilter define os critérios de busca de entradas. Campos vazios não filtram.
type StockEntryFilter struct {
	IncludeDiscarded bool
	Status           Status
	ContainerID      string
	ModelID          string
	SessionID        string
	Pilot            string
}

// Matches informa se a entrada satisfaz o filtro.
func (f StockEntryFilter) Matches(e StockEntry) bool {
	if !f.IncludeDiscarded && e.Status.IsDiscard() {
		return false
	}
	if f.Status != "" && e.Status != f.Status {
		return false
	}
	if f.ContainerID != "" && e.ContainerID != f.ContainerID {
		return false
	}
	if f.ModelID != "" && e.ModelID != f.ModelID {
		return false
	}
	if f.SessionID != "" && e.SessionID != f.SessionID {
		return false
	}
	if f.Pilot != "" && e.Pilot != f.Pilot {
		return false
	}
	return true
}

// ValidBarcode informa se o código tem exatamente 8 dígitos numéricos.
func ValidBarcode(barcode string) bool {
	if len(barcode) != 8 {
		return false
	}
	for _, r := range barcode {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
