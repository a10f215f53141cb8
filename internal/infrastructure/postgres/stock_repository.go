package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.StockLevelRepository = (*StockLevelRepo)(nil)

// StockLevelRepo implementación de StockLevelRepository sobre PostgreSQL (usable con pool o tx).
// Los bloqueos (FOR UPDATE) solo tienen efecto dentro de una transacción.
type StockLevelRepo struct {
	q Querier
}

// NewStockLevelRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockLevelRepository(q Querier) *StockLevelRepo {
	return &StockLevelRepo{q: q}
}

// GetOrCreate crea la fila en 0 si no existe y la devuelve bloqueada (SELECT FOR UPDATE).
func (r *StockLevelRepo) GetOrCreate(ctx context.Context, storageID, productID string) (*entity.StockLevel, error) {
	insert := `
		INSERT INTO stock_levels (storage_id, product_id, quantity, created_at, updated_at)
		VALUES ($1, $2, 0, now(), now())
		ON CONFLICT (storage_id, product_id) DO NOTHING`
	if _, err := r.q.Exec(ctx, insert, storageID, productID); err != nil {
		return nil, fmt.Errorf("create stock level: %w", err)
	}

	query := `
		SELECT id, storage_id, product_id, quantity, created_at, updated_at
		FROM stock_levels WHERE storage_id = $1 AND product_id = $2
		FOR UPDATE`
	var s entity.StockLevel
	err := r.q.QueryRow(ctx, query, storageID, productID).Scan(
		&s.ID, &s.StorageID, &s.ProductID, &s.Quantity, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get stock level for update: %w", err)
	}
	return &s, nil
}

// Adjust suma delta con un UPDATE condicional: la fila queda bloqueada por el UPDATE y,
// si el resultado fuera negativo, no se actualiza nada y se devuelve InsufficientStock.
func (r *StockLevelRepo) Adjust(ctx context.Context, storageID, productID string, delta int64) (int64, error) {
	query := `
		UPDATE stock_levels
		SET quantity = quantity + $3, updated_at = now()
		WHERE storage_id = $1 AND product_id = $2 AND quantity + $3 >= 0
		RETURNING quantity`
	var qty int64
	err := r.q.QueryRow(ctx, query, storageID, productID, delta).Scan(&qty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.InsufficientStock("bodega %s: stock insuficiente para ajustar %d", storageID, delta)
		}
		if mapped := mapWriteError(err, "stock"); mapped != nil {
			return 0, mapped
		}
		return 0, fmt.Errorf("adjust stock: %w", err)
	}
	return qty, nil
}

// TotalAvailable suma el stock del producto en las bodegas de la empresa.
func (r *StockLevelRepo) TotalAvailable(ctx context.Context, companyID, productID string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(sl.quantity), 0)::BIGINT
		FROM stock_levels sl
		JOIN storages s ON s.id = sl.storage_id
		WHERE s.company_id = $1 AND sl.product_id = $2`
	var total int64
	if err := r.q.QueryRow(ctx, query, companyID, productID).Scan(&total); err != nil {
		if mapped := mapWriteError(err, "total disponible"); mapped != nil {
			return 0, mapped
		}
		return 0, fmt.Errorf("total available: %w", err)
	}
	return total, nil
}

// ListForUpdate filas del producto en bodegas de la empresa por id ascendente, bloqueadas.
func (r *StockLevelRepo) ListForUpdate(ctx context.Context, companyID, productID string) ([]entity.StockLevel, error) {
	return r.list(ctx, companyID, productID, true)
}

// ListByProduct igual que ListForUpdate sin bloqueo.
func (r *StockLevelRepo) ListByProduct(ctx context.Context, companyID, productID string) ([]entity.StockLevel, error) {
	return r.list(ctx, companyID, productID, false)
}

func (r *StockLevelRepo) list(ctx context.Context, companyID, productID string, lock bool) ([]entity.StockLevel, error) {
	query := `
		SELECT sl.id, sl.storage_id, sl.product_id, sl.quantity, sl.created_at, sl.updated_at
		FROM stock_levels sl
		JOIN storages s ON s.id = sl.storage_id
		WHERE s.company_id = $1 AND sl.product_id = $2
		ORDER BY sl.id`
	if lock {
		query += ` FOR UPDATE OF sl`
	}
	rows, err := r.q.Query(ctx, query, companyID, productID)
	if err != nil {
		return nil, fmt.Errorf("list stock levels: %w", err)
	}
	defer rows.Close()

	var out []entity.StockLevel
	for rows.Next() {
		var s entity.StockLevel
		if err := rows.Scan(&s.ID, &s.StorageID, &s.ProductID, &s.Quantity, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock level: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
