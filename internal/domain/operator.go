package domain

import "time"

// Operator é uma conta de acesso à API. O Username vira o movedBy/registeredBy
// dos registros de auditoria.
type Operator struct {
	ID           string    `json:"id"`
	Username     string    `json:"username" example:"mecanico1"`
	PasswordHash string    `json:"passwordHash,omitempty"`
	Role         UserRole  `json:"role" example:"operator"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Public devolve a conta sem o hash da senha, para respostas da API.
func (o Operator) Public() Operator {
	o.PasswordHash = ""
	return o
}

// OperatorRegistration é o payload de criação de conta.
type OperatorRegistration struct {
	Username string   `json:"username" example:"mecanico1"`
	Password string   `json:"password" example:"senha-forte"`
	Role     UserRole `json:"role,omitempty" example:"operator"`
}
