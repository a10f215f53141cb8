package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación de SupplierRepository sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

// Create persiste un proveedor. INN repetido en la empresa -> domain.ErrConflict.
func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	query := `
		INSERT INTO suppliers (id, company_id, name, inn, contact_info, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, s.ID, s.CompanyID, s.Name, s.INN, s.ContactInfo, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if mapped := mapWriteError(err, "proveedor"); mapped != nil {
			return mapped
		}
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

// GetByIDAndCompany obtiene un proveedor de la empresa (nil si no existe o es de otra empresa).
func (r *SupplierRepo) GetByIDAndCompany(ctx context.Context, id, companyID string) (*entity.Supplier, error) {
	if !validID(id) || !validID(companyID) {
		return nil, nil
	}
	query := `
		SELECT id, company_id, name, inn, contact_info, created_at, updated_at
		FROM suppliers WHERE id = $1 AND company_id = $2`
	var s entity.Supplier
	err := r.q.QueryRow(ctx, query, id, companyID).Scan(
		&s.ID, &s.CompanyID, &s.Name, &s.INN, &s.ContactInfo, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}
