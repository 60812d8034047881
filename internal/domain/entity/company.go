package entity

import "time"

// Company representa una organización/tenant del sistema. Toda fila de toda
// tabla lleva company_id y toda consulta filtra por él.
type Company struct {
	ID        string
	Name      string
	Address   string
	Phone     string
	Email     string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
