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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto con sus precios de referencia.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, company_id, name, description, purchase_price, sale_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CompanyID, p.Name, p.Description, p.PurchasePrice, p.SalePrice, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if mapped := mapWriteError(err, "producto"); mapped != nil {
			return mapped
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByIDAndCompany obtiene un producto de la empresa. Devuelve nil si no existe o es de otra empresa.
func (r *ProductRepo) GetByIDAndCompany(ctx context.Context, id, companyID string) (*entity.Product, error) {
	if !validID(id) || !validID(companyID) {
		return nil, nil
	}
	query := `
		SELECT id, company_id, name, description, purchase_price, sale_price, created_at, updated_at
		FROM products WHERE id = $1 AND company_id = $2`
	var p entity.Product
	err := r.q.QueryRow(ctx, query, id, companyID).Scan(
		&p.ID, &p.CompanyID, &p.Name, &p.Description, &p.PurchasePrice, &p.SalePrice, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// UpdatePrices actualiza los precios de referencia del producto de la empresa.
func (r *ProductRepo) UpdatePrices(ctx context.Context, id, companyID string, purchase, sale decimal.Decimal) error {
	if !validID(id) || !validID(companyID) {
		return domain.NotFound("producto %s no encontrado", id)
	}
	query := `
		UPDATE products SET purchase_price = $3, sale_price = $4, updated_at = now()
		WHERE id = $1 AND company_id = $2`
	tag, err := r.q.Exec(ctx, query, id, companyID, purchase, sale)
	if err != nil {
		if mapped := mapWriteError(err, "producto"); mapped != nil {
			return mapped
		}
		return fmt.Errorf("update product prices: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("producto %s no encontrado", id)
	}
	return nil
}
