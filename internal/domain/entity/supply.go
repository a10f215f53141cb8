package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Supply representa una compra (entrada de mercancía) a un proveedor.
// TotalAmount es derivado: Σ(cantidad × precio de compra) de sus líneas.
type Supply struct {
	ID           string
	CompanyID    string
	SupplierID   string
	DeliveryDate time.Time
	TotalAmount  decimal.Decimal
	CreatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SupplyLine línea de una compra. PurchasePrice es la copia del precio del producto
// al registrar la compra y no cambia después. StorageID es la bodega que recibió.
type SupplyLine struct {
	ID            string
	SupplyID      string
	ProductID     string
	StorageID     string
	Quantity      int64
	PurchasePrice decimal.Decimal
	Position      int
	CreatedAt     time.Time
}

// Subtotal cantidad × precio de compra.
func (l SupplyLine) Subtotal() decimal.Decimal {
	return decimal.NewFromInt(l.Quantity).Mul(l.PurchasePrice)
}
