package domain

// Container representa um local físico de armazenamento de pneus.
//
// Current é derivado: a quantidade de entradas de estoque cujo ContainerID é igual
// ao ID do container. O valor persistido é ignorado e sempre recalculado na leitura.
type Container struct {
	ID       string `json:"id"`
	Name     string `json:"name" example:"Container A"`
	Location string `json:"location" example:"Box 12"`
	Capacity int    `json:"capacity" example:"40"`
	Current  int    `json:"current"`
}

// ContainerUpdate contém apenas os campos alterados (nil = manter).
type ContainerUpdate struct {
	Name     *string `json:"name,omitempty"`
	Location *string `json:"location,omitempty"`
	Capacity *int    `json:"capacity,omitempty"`
}
