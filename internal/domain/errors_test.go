package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stock-ledger/internal/domain"
)

func TestError_IsPorTipo(t *testing.T) {
	err := domain.NotFound("producto %s no encontrado", "p-1")

	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.False(t, errors.Is(err, domain.ErrConflict))
	assert.Equal(t, "recurso no encontrado: producto p-1 no encontrado", err.Error())
}

func TestError_EnvueltoConservaTipo(t *testing.T) {
	err := fmt.Errorf("aplicar venta: %w", domain.InsufficientStock("disponible 4, solicitado 5"))

	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.Equal(t, "INSUFFICIENT_STOCK", domain.Code(err))
	assert.Equal(t, "disponible 4, solicitado 5", domain.Message(err))
}

func TestCode(t *testing.T) {
	cases := map[string]error{
		"NOT_FOUND":          domain.NotFound("x"),
		"VALIDATION":         domain.Invalid("x"),
		"INSUFFICIENT_STOCK": domain.InsufficientStock("x"),
		"CONFLICT":           domain.Conflict("x"),
		"UNAUTHORIZED":       domain.ErrUnauthorized,
		"INTERNAL":           errors.New("boom"),
	}
	for code, err := range cases {
		assert.Equal(t, code, domain.Code(err), code)
	}
}
