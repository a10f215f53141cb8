package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.StorageRepository = (*StorageRepo)(nil)

// StorageRepo implementación de StorageRepository sobre PostgreSQL.
type StorageRepo struct {
	q Querier
}

// NewStorageRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStorageRepository(q Querier) *StorageRepo {
	return &StorageRepo{q: q}
}

const storageColumns = `id, company_id, name, address, capacity, created_at, updated_at`

func scanStorage(row pgx.Row) (*entity.Storage, error) {
	var s entity.Storage
	err := row.Scan(&s.ID, &s.CompanyID, &s.Name, &s.Address, &s.Capacity, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// Create persiste una nueva bodega.
func (r *StorageRepo) Create(ctx context.Context, s *entity.Storage) error {
	query := `
		INSERT INTO storages (id, company_id, name, address, capacity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, s.ID, s.CompanyID, s.Name, s.Address, s.Capacity, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if mapped := mapWriteError(err, "bodega"); mapped != nil {
			return mapped
		}
		return fmt.Errorf("insert storage: %w", err)
	}
	return nil
}

// GetByIDAndCompany obtiene una bodega de la empresa (nil si no existe o es de otra empresa).
func (r *StorageRepo) GetByIDAndCompany(ctx context.Context, id, companyID string) (*entity.Storage, error) {
	if !validID(id) || !validID(companyID) {
		return nil, nil
	}
	query := `SELECT ` + storageColumns + ` FROM storages WHERE id = $1 AND company_id = $2`
	s, err := scanStorage(r.q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		return nil, fmt.Errorf("get storage: %w", err)
	}
	return s, nil
}

// FirstByCompany bodega más antigua de la empresa.
func (r *StorageRepo) FirstByCompany(ctx context.Context, companyID string) (*entity.Storage, error) {
	if !validID(companyID) {
		return nil, nil
	}
	query := `SELECT ` + storageColumns + ` FROM storages WHERE company_id = $1 ORDER BY created_at, id LIMIT 1`
	s, err := scanStorage(r.q.QueryRow(ctx, query, companyID))
	if err != nil {
		return nil, fmt.Errorf("first storage: %w", err)
	}
	return s, nil
}
