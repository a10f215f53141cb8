package inventory

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// MaxLineQuantity cantidad máxima por línea de compra o venta.
const MaxLineQuantity int64 = 1_000_000_000

// AddQuantity suma dos cantidades; domain.ErrInvalidInput si el resultado no cabe en int64.
func AddQuantity(a, b int64) (int64, error) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, domain.Invalid("la cantidad %d %+d excede el máximo representable", a, b)
	}
	return a + b, nil
}

// LineAmount cantidad × precio.
func LineAmount(quantity int64, price decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(quantity).Mul(price)
}

// SupplyTotal Σ(cantidad × precio de compra) de las líneas.
func SupplyTotal(lines []entity.SupplyLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// SaleTotal Σ(cantidad × precio de venta) de las líneas.
func SaleTotal(lines []entity.SaleLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// TotalQuantity suma de cantidades de las filas de stock, con control de desbordamiento.
func TotalQuantity(rows []entity.StockLevel) (int64, error) {
	var total int64
	for _, r := range rows {
		var err error
		if total, err = AddQuantity(total, r.Quantity); err != nil {
			return 0, err
		}
	}
	return total, nil
}
