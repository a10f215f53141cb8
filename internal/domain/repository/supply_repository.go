package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// SupplyRepository define el puerto de persistencia para compras (Supply + SupplyLine).
type SupplyRepository interface {
	Create(ctx context.Context, supply *entity.Supply) error
	// CreateLines inserta las líneas en lote. Un producto repetido en la misma compra es domain.ErrConflict.
	CreateLines(ctx context.Context, lines []entity.SupplyLine) error
	UpdateTotal(ctx context.Context, id string, total decimal.Decimal) error
	GetByIDAndCompany(ctx context.Context, id, companyID string) (*entity.Supply, error)
	// GetForUpdate igual que GetByIDAndCompany pero bloquea la cabecera (borrado concurrente).
	GetForUpdate(ctx context.Context, id, companyID string) (*entity.Supply, error)
	GetLines(ctx context.Context, supplyID string) ([]entity.SupplyLine, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Supply, error)
	// Delete borra la compra y sus líneas.
	Delete(ctx context.Context, id string) error
}
