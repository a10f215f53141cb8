package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stock-ledger/internal/domain"
)

func TestMapWriteError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"duplicado", &pgconn.PgError{Code: "23505"}, domain.ErrConflict},
		{"stock negativo", &pgconn.PgError{Code: "23514", ConstraintName: "stock_levels_quantity_check"}, domain.ErrInsufficientStock},
		{"otro check", &pgconn.PgError{Code: "23514", ConstraintName: "supply_lines_quantity_check"}, domain.ErrInvalidInput},
		{"bigint desbordado", fmt.Errorf("adjust: %w", &pgconn.PgError{Code: "22003"}), domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, errors.Is(mapWriteError(tt.err, "stock"), tt.want))
		})
	}

	assert.Nil(t, mapWriteError(errors.New("conexión cerrada"), "stock"))
}

// Deadlock y fallo de serialización llegan al cliente como 409 reintentable, no como 500.
func TestMapConcurrencyError(t *testing.T) {
	for _, code := range []string{"40P01", "40001"} {
		err := fmt.Errorf("lock stock: %w", &pgconn.PgError{Code: code})
		assert.True(t, errors.Is(mapConcurrencyError(err), domain.ErrConflict), code)
	}
	assert.Nil(t, mapConcurrencyError(&pgconn.PgError{Code: "23505"}))
	assert.Nil(t, mapConcurrencyError(errors.New("timeout")))
}
