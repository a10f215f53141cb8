package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByIDAndCompany devuelve nil, nil si el producto no existe o es de otra empresa.
// UpdatePrices solo afecta a transacciones futuras: las líneas guardan su propio precio.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByIDAndCompany(ctx context.Context, id, companyID string) (*entity.Product, error)
	UpdatePrices(ctx context.Context, id, companyID string, purchase, sale decimal.Decimal) error
}
