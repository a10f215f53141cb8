package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/application/ledger"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

func TestGenerateReceiptPDF(t *testing.T) {
	g := NewMarotoReceiptGenerator()
	receipt := ledger.Receipt{
		Title:            "NOTA DE ENTRADA",
		Number:           "3f2a9c1e-0000-0000-0000-000000000000",
		Date:             time.Date(2026, 2, 1, 10, 30, 0, 0, time.UTC),
		Company:          &entity.Company{Name: "Acme", INN: "900123"},
		CounterpartLabel: "PROVEEDOR",
		CounterpartName:  "Proveedor SA",
		Lines: []ledger.ReceiptLine{
			{ProductName: "Tornillo", StorageName: "Principal", Quantity: 3, UnitPrice: decimal.NewFromInt(10), Subtotal: decimal.NewFromInt(30)},
		},
		Total: decimal.NewFromInt(30),
	}

	out, err := g.GenerateReceiptPDF(context.Background(), receipt)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$1.234.567,50", formatMoney(decimal.RequireFromString("1234567.5")))
	assert.Equal(t, "$15,00", formatMoney(decimal.NewFromInt(15)))
	assert.Equal(t, "-$1.000,00", formatMoney(decimal.NewFromInt(-1000)))
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "3F2A9C1E", shortID("3f2a9c1e-0000"))
	assert.Equal(t, "AB", shortID("ab"))
}
