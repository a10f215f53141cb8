package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// StockLevelRepository define el puerto para consultar/actualizar stock por bodega+producto.
// Usado dentro de transacciones para garantizar consistencia.
type StockLevelRepository interface {
	// GetOrCreate devuelve la fila (storage, product), creándola con cantidad 0 si no existe, y la bloquea.
	GetOrCreate(ctx context.Context, storageID, productID string) (*entity.StockLevel, error)
	// Adjust suma delta a la cantidad y devuelve el nuevo valor.
	// Falla con domain.ErrInsufficientStock si el resultado sería negativo.
	Adjust(ctx context.Context, storageID, productID string, delta int64) (int64, error)
	// TotalAvailable suma las cantidades del producto en todas las bodegas de la empresa.
	TotalAvailable(ctx context.Context, companyID, productID string) (int64, error)
	// ListForUpdate filas del producto en bodegas de la empresa, por ID ascendente, bloqueadas (FOR UPDATE).
	ListForUpdate(ctx context.Context, companyID, productID string) ([]entity.StockLevel, error)
	// ListByProduct igual que ListForUpdate pero sin bloqueo (lectura).
	ListByProduct(ctx context.Context, companyID, productID string) ([]entity.StockLevel, error)
}
