package entity

import "time"

// Storage representa una bodega de la empresa.
// Capacity es declarativa: el ledger no la hace cumplir.
type Storage struct {
	ID        string
	CompanyID string
	Name      string
	Address   string
	Capacity  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
