package domain

// TireType é o composto do pneu.
type TireType string

const (
	TireTypeSlick TireType = "Slick"
	TireTypeWet   TireType = "Wet"
)

// Valid informa se o tipo pertence ao vocabulário conhecido.
func (t TireType) Valid() bool {
	return t == TireTypeSlick || t == TireTypeWet
}

// TireModel é o registro canônico de um modelo de pneu.
// Entradas de estoque referenciam o modelo pelo ID.
type TireModel struct {
	ID   string   `json:"id"`
	Name string   `json:"name" example:"Slick 992 Dianteiro"`
	Code string   `json:"code" example:"992-D"`
	Type TireType `json:"type" example:"Slick"`
}

// TireModelUpdate contém apenas os campos alterados (nil = manter).
type TireModelUpdate struct {
	Name *string   `json:"name,omitempty"`
	Code *string   `json:"code,omitempty"`
	Type *TireType `json:"type,omitempty"`
}
