package entity

import "time"

// Company representa una organización/tenant del sistema. Todas las operaciones
// del ledger están acotadas a una empresa.
type Company struct {
	ID        string
	Name      string
	INN       string // identificador fiscal, opcional
	CreatedAt time.Time
	UpdatedAt time.Time
}
