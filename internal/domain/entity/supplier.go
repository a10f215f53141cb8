package entity

import "time"

// Supplier representa un proveedor de la empresa (INN único por empresa).
type Supplier struct {
	ID          string
	CompanyID   string
	Name        string
	INN         string
	ContactInfo string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
