package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.SupplyRepository = (*SupplyRepo)(nil)

// SupplyRepo implementación de SupplyRepository sobre PostgreSQL.
type SupplyRepo struct {
	q Querier
}

// NewSupplyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplyRepository(q Querier) *SupplyRepo {
	return &SupplyRepo{q: q}
}

const supplyColumns = `id, company_id, supplier_id, delivery_date, total_amount, created_by, created_at, updated_at`

func scanSupply(row pgx.Row) (*entity.Supply, error) {
	var s entity.Supply
	err := row.Scan(&s.ID, &s.CompanyID, &s.SupplierID, &s.DeliveryDate, &s.TotalAmount, &s.CreatedBy, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// Create inserta la cabecera de la compra.
func (r *SupplyRepo) Create(ctx context.Context, s *entity.Supply) error {
	query := `
		INSERT INTO supplies (` + supplyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.CompanyID, s.SupplierID, s.DeliveryDate, s.TotalAmount, s.CreatedBy, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if mapped := mapWriteError(err, "compra"); mapped != nil {
			return mapped
		}
		return fmt.Errorf("insert supply: %w", err)
	}
	return nil
}

// CreateLines inserta las líneas en un solo round-trip (pgx.Batch).
func (r *SupplyRepo) CreateLines(ctx context.Context, lines []entity.SupplyLine) error {
	if len(lines) == 0 {
		return nil
	}
	query := `
		INSERT INTO supply_lines (id, supply_id, product_id, storage_id, quantity, purchase_price, position, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	batch := &pgx.Batch{}
	for _, l := range lines {
		batch.Queue(query, l.ID, l.SupplyID, l.ProductID, l.StorageID, l.Quantity, l.PurchasePrice, l.Position, l.CreatedAt)
	}
	return execBatch(ctx, r.q, batch, len(lines), "línea de compra")
}

// UpdateTotal guarda el total derivado de las líneas.
func (r *SupplyRepo) UpdateTotal(ctx context.Context, id string, total decimal.Decimal) error {
	tag, err := r.q.Exec(ctx, `UPDATE supplies SET total_amount = $2, updated_at = now() WHERE id = $1`, id, total)
	if err != nil {
		return fmt.Errorf("update supply total: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("compra %s no encontrada", id)
	}
	return nil
}

// GetByIDAndCompany obtiene la cabecera de una compra de la empresa (nil si no existe).
func (r *SupplyRepo) GetByIDAndCompany(ctx context.Context, id, companyID string) (*entity.Supply, error) {
	return r.get(ctx, id, companyID, false)
}

// GetForUpdate igual que GetByIDAndCompany pero bloquea la fila.
func (r *SupplyRepo) GetForUpdate(ctx context.Context, id, companyID string) (*entity.Supply, error) {
	return r.get(ctx, id, companyID, true)
}

func (r *SupplyRepo) get(ctx context.Context, id, companyID string, lock bool) (*entity.Supply, error) {
	if !validID(id) || !validID(companyID) {
		return nil, nil
	}
	query := `SELECT ` + supplyColumns + ` FROM supplies WHERE id = $1 AND company_id = $2`
	if lock {
		query += ` FOR UPDATE`
	}
	s, err := scanSupply(r.q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		return nil, fmt.Errorf("get supply: %w", err)
	}
	return s, nil
}

// GetLines líneas de la compra en el orden en que se registraron.
func (r *SupplyRepo) GetLines(ctx context.Context, supplyID string) ([]entity.SupplyLine, error) {
	query := `
		SELECT id, supply_id, product_id, storage_id, quantity, purchase_price, position, created_at
		FROM supply_lines WHERE supply_id = $1 ORDER BY position`
	rows, err := r.q.Query(ctx, query, supplyID)
	if err != nil {
		return nil, fmt.Errorf("list supply lines: %w", err)
	}
	defer rows.Close()

	var out []entity.SupplyLine
	for rows.Next() {
		var l entity.SupplyLine
		if err := rows.Scan(&l.ID, &l.SupplyID, &l.ProductID, &l.StorageID, &l.Quantity, &l.PurchasePrice, &l.Position, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan supply line: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// ListByCompany compras de la empresa, más recientes primero.
func (r *SupplyRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Supply, error) {
	if !validID(companyID) {
		return nil, nil
	}
	query := `
		SELECT ` + supplyColumns + `
		FROM supplies WHERE company_id = $1
		ORDER BY delivery_date DESC, created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list supplies: %w", err)
	}
	defer rows.Close()

	var out []*entity.Supply
	for rows.Next() {
		s, err := scanSupply(rows)
		if err != nil {
			return nil, fmt.Errorf("scan supply: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Delete borra la compra; las líneas caen por ON DELETE CASCADE.
func (r *SupplyRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM supplies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete supply: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("compra %s no encontrada", id)
	}
	return nil
}

// execBatch envía el lote y verifica el resultado de cada sentencia.
func execBatch(ctx context.Context, q Querier, batch *pgx.Batch, n int, what string) error {
	br := q.SendBatch(ctx, batch)
	for i := 0; i < n; i++ {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			if mapped := mapWriteError(err, what); mapped != nil {
				return mapped
			}
			return fmt.Errorf("insert %s %d: %w", what, i+1, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("batch %s: %w", what, err)
	}
	return nil
}
