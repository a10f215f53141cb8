package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto de la empresa.
// Los precios son de referencia y pueden cambiar; las líneas de compra/venta guardan
// una copia del precio vigente al momento de la transacción. El stock vive en StockLevel.
type Product struct {
	ID            string
	CompanyID     string
	Name          string
	Description   string
	PurchasePrice decimal.Decimal // precio de compra
	SalePrice     decimal.Decimal // precio de venta
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
