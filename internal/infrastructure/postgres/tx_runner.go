package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/stock-ledger/internal/application/ledger"
)

var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Deadlocks y fallos de serialización salen como domain.ErrConflict.
func (r *TxRunner) Run(ctx context.Context, fn func(repos ledger.Repositories) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRepositories(tx)); err != nil {
		if mapped := mapConcurrencyError(err); mapped != nil {
			return mapped
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		if mapped := mapConcurrencyError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// NewRepositories construye todos los repositorios sobre el mismo Querier (pool o tx).
func NewRepositories(q Querier) ledger.Repositories {
	return ledger.Repositories{
		Companies: NewCompanyRepository(q),
		Products:  NewProductRepository(q),
		Storages:  NewStorageRepository(q),
		Suppliers: NewSupplierRepository(q),
		Stock:     NewStockLevelRepository(q),
		Supplies:  NewSupplyRepository(q),
		Sales:     NewSaleRepository(q),
	}
}
