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

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, company_id, buyer_name, sale_date, total_amount, created_by, created_at, updated_at`

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	err := row.Scan(&s.ID, &s.CompanyID, &s.BuyerName, &s.SaleDate, &s.TotalAmount, &s.CreatedBy, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// Create inserta la cabecera de la venta.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.CompanyID, s.BuyerName, s.SaleDate, s.TotalAmount, s.CreatedBy, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if mapped := mapWriteError(err, "venta"); mapped != nil {
			return mapped
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateLines inserta las líneas en lote.
func (r *SaleRepo) CreateLines(ctx context.Context, lines []entity.SaleLine) error {
	if len(lines) == 0 {
		return nil
	}
	query := `
		INSERT INTO sale_lines (id, sale_id, product_id, quantity, sale_price, position, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	batch := &pgx.Batch{}
	for _, l := range lines {
		batch.Queue(query, l.ID, l.SaleID, l.ProductID, l.Quantity, l.SalePrice, l.Position, l.CreatedAt)
	}
	return execBatch(ctx, r.q, batch, len(lines), "línea de venta")
}

// CreateAllocations registra de qué bodegas salió cada línea.
func (r *SaleRepo) CreateAllocations(ctx context.Context, allocations []entity.SaleAllocation) error {
	if len(allocations) == 0 {
		return nil
	}
	query := `
		INSERT INTO sale_allocations (sale_id, product_id, storage_id, quantity)
		VALUES ($1, $2, $3, $4)`
	batch := &pgx.Batch{}
	for _, a := range allocations {
		batch.Queue(query, a.SaleID, a.ProductID, a.StorageID, a.Quantity)
	}
	return execBatch(ctx, r.q, batch, len(allocations), "asignación de venta")
}

// UpdateTotal guarda el total derivado de las líneas.
func (r *SaleRepo) UpdateTotal(ctx context.Context, id string, total decimal.Decimal) error {
	tag, err := r.q.Exec(ctx, `UPDATE sales SET total_amount = $2, updated_at = now() WHERE id = $1`, id, total)
	if err != nil {
		return fmt.Errorf("update sale total: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("venta %s no encontrada", id)
	}
	return nil
}

// UpdateHeader actualiza comprador y fecha.
func (r *SaleRepo) UpdateHeader(ctx context.Context, s *entity.Sale) error {
	query := `UPDATE sales SET buyer_name = $2, sale_date = $3, updated_at = $4 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, s.ID, s.BuyerName, s.SaleDate, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("venta %s no encontrada", s.ID)
	}
	return nil
}

// GetByIDAndCompany obtiene la cabecera de una venta de la empresa (nil si no existe).
func (r *SaleRepo) GetByIDAndCompany(ctx context.Context, id, companyID string) (*entity.Sale, error) {
	return r.get(ctx, id, companyID, false)
}

// GetForUpdate igual que GetByIDAndCompany pero bloquea la fila.
func (r *SaleRepo) GetForUpdate(ctx context.Context, id, companyID string) (*entity.Sale, error) {
	return r.get(ctx, id, companyID, true)
}

func (r *SaleRepo) get(ctx context.Context, id, companyID string, lock bool) (*entity.Sale, error) {
	if !validID(id) || !validID(companyID) {
		return nil, nil
	}
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1 AND company_id = $2`
	if lock {
		query += ` FOR UPDATE`
	}
	s, err := scanSale(r.q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

// GetLines líneas de la venta en orden de registro.
func (r *SaleRepo) GetLines(ctx context.Context, saleID string) ([]entity.SaleLine, error) {
	query := `
		SELECT id, sale_id, product_id, quantity, sale_price, position, created_at
		FROM sale_lines WHERE sale_id = $1 ORDER BY position`
	rows, err := r.q.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale lines: %w", err)
	}
	defer rows.Close()

	var out []entity.SaleLine
	for rows.Next() {
		var l entity.SaleLine
		if err := rows.Scan(&l.ID, &l.SaleID, &l.ProductID, &l.Quantity, &l.SalePrice, &l.Position, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale line: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// GetAllocations asignaciones de la venta en el orden en que se descontaron.
func (r *SaleRepo) GetAllocations(ctx context.Context, saleID string) ([]entity.SaleAllocation, error) {
	query := `
		SELECT sale_id, product_id, storage_id, quantity
		FROM sale_allocations WHERE sale_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale allocations: %w", err)
	}
	defer rows.Close()

	var out []entity.SaleAllocation
	for rows.Next() {
		var a entity.SaleAllocation
		if err := rows.Scan(&a.SaleID, &a.ProductID, &a.StorageID, &a.Quantity); err != nil {
			return nil, fmt.Errorf("scan sale allocation: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// ListByCompany ventas de la empresa, más recientes primero.
func (r *SaleRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Sale, error) {
	if !validID(companyID) {
		return nil, nil
	}
	query := `
		SELECT ` + saleColumns + `
		FROM sales WHERE company_id = $1
		ORDER BY sale_date DESC, created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var out []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Delete borra la venta; líneas y asignaciones caen por ON DELETE CASCADE.
func (r *SaleRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("venta %s no encontrada", id)
	}
	return nil
}
