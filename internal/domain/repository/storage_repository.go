package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// StorageRepository define el puerto de persistencia para Storage (bodegas).
type StorageRepository interface {
	Create(ctx context.Context, storage *entity.Storage) error
	GetByIDAndCompany(ctx context.Context, id, companyID string) (*entity.Storage, error)
	// FirstByCompany devuelve la bodega más antigua de la empresa (nil si no tiene).
	FirstByCompany(ctx context.Context, companyID string) (*entity.Storage, error)
}
