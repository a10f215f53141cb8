package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa una venta (salida de mercancía) a un comprador.
// TotalAmount es derivado: Σ(cantidad × precio de venta) de sus líneas.
type Sale struct {
	ID          string
	CompanyID   string
	BuyerName   string
	SaleDate    time.Time
	TotalAmount decimal.Decimal
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SaleLine línea de una venta. SalePrice es la copia del precio del producto al vender.
type SaleLine struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  int64
	SalePrice decimal.Decimal
	Position  int
	CreatedAt time.Time
}

// Subtotal cantidad × precio de venta.
func (l SaleLine) Subtotal() decimal.Decimal {
	return decimal.NewFromInt(l.Quantity).Mul(l.SalePrice)
}

// SaleAllocation cantidad descontada de una bodega para una línea de venta.
type SaleAllocation struct {
	SaleID    string
	ProductID string
	StorageID string
	Quantity  int64
}
