package domain

// UserRole é o papel do operador autenticado, vindo da claim "role" do JWT.
type UserRole string

const (
	// RoleAdmin pode alterar o cadastro e expurgar entradas.
	RoleAdmin UserRole = "admin"
	// RoleOperator registra, move, transfere e descarta pneus.
	RoleOperator UserRole = "operator"
)

// Valid informa se o papel pertence ao vocabulário conhecido.
func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleOperator
}
