package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para ventas (Sale + SaleLine + SaleAllocation).
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	CreateLines(ctx context.Context, lines []entity.SaleLine) error
	CreateAllocations(ctx context.Context, allocations []entity.SaleAllocation) error
	UpdateTotal(ctx context.Context, id string, total decimal.Decimal) error
	// UpdateHeader actualiza comprador y fecha; líneas y total no cambian.
	UpdateHeader(ctx context.Context, sale *entity.Sale) error
	GetByIDAndCompany(ctx context.Context, id, companyID string) (*entity.Sale, error)
	GetForUpdate(ctx context.Context, id, companyID string) (*entity.Sale, error)
	GetLines(ctx context.Context, saleID string) ([]entity.SaleLine, error)
	GetAllocations(ctx context.Context, saleID string) ([]entity.SaleAllocation, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Sale, error)
	// Delete borra la venta, sus líneas y sus asignaciones.
	Delete(ctx context.Context, id string) error
}
