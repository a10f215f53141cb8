package memory

import (
	"context"
	"time"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.StockLevelRepository = (*StockLevelRepo)(nil)

// StockLevelRepo stock por (bodega, producto) en memoria. Los IDs de fila son secuenciales.
type StockLevelRepo struct{ v *view }

func (r *StockLevelRepo) GetOrCreate(_ context.Context, storageID, productID string) (*entity.StockLevel, error) {
	var out entity.StockLevel
	err := r.v.do(func(st *state) error {
		out = st.getOrCreate(storageID, productID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (st *state) getOrCreate(storageID, productID string) entity.StockLevel {
	key := stockKey{storageID: storageID, productID: productID}
	if row, ok := st.stock[key]; ok {
		return row
	}
	st.nextStockID++
	now := time.Now()
	row := entity.StockLevel{
		ID:        st.nextStockID,
		StorageID: storageID,
		ProductID: productID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	st.stock[key] = row
	return row
}

func (r *StockLevelRepo) Adjust(_ context.Context, storageID, productID string, delta int64) (int64, error) {
	var qty int64
	err := r.v.do(func(st *state) error {
		key := stockKey{storageID: storageID, productID: productID}
		row, ok := st.stock[key]
		if !ok {
			if delta < 0 {
				return domain.InsufficientStock("bodega %s sin stock del producto %s", storageID, productID)
			}
			row = st.getOrCreate(storageID, productID)
		}
		next, err := inventory.AddQuantity(row.Quantity, delta)
		if err != nil {
			return err
		}
		if next < 0 {
			return domain.InsufficientStock("bodega %s: disponible %d, ajuste %d", storageID, row.Quantity, delta)
		}
		row.Quantity = next
		row.UpdatedAt = time.Now()
		st.stock[key] = row
		qty = row.Quantity
		return nil
	})
	return qty, err
}

func (r *StockLevelRepo) TotalAvailable(_ context.Context, companyID, productID string) (int64, error) {
	var total int64
	err := r.v.do(func(st *state) error {
		var err error
		total, err = inventory.TotalQuantity(st.stockRows(companyID, productID))
		return err
	})
	return total, err
}

func (r *StockLevelRepo) ListForUpdate(_ context.Context, companyID, productID string) ([]entity.StockLevel, error) {
	var rows []entity.StockLevel
	err := r.v.do(func(st *state) error {
		rows = st.stockRows(companyID, productID)
		return nil
	})
	return rows, err
}

func (r *StockLevelRepo) ListByProduct(ctx context.Context, companyID, productID string) ([]entity.StockLevel, error) {
	return r.ListForUpdate(ctx, companyID, productID)
}
