package ledger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/ledger"
	"github.com/jhoicas/stock-ledger/internal/domain"
)

// captureGenerator guarda el último comprobante recibido.
type captureGenerator struct {
	last ledger.Receipt
}

func (g *captureGenerator) GenerateReceiptPDF(_ context.Context, r ledger.Receipt) ([]byte, error) {
	g.last = r
	return []byte("%PDF-fake"), nil
}

func TestSaleReceipt_DatosResueltos(t *testing.T) {
	f := newFixture(t, ledger.Options{})
	f.supply(t, dto.SupplyLineRequest{ProductID: productA, StorageID: storageA, Quantity: 5})
	sale, err := f.sale(dto.SaleLineRequest{ProductID: productA, Quantity: 2})
	require.NoError(t, err)

	gen := &captureGenerator{}
	uc := ledger.NewReceiptUseCase(f.store.Repositories(), gen)

	out, name, err := uc.SaleReceipt(context.Background(), f.actor, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(out))
	assert.Equal(t, "venta-"+sale.ID+".pdf", name)

	assert.Equal(t, "Acme", gen.last.Company.Name)
	assert.Equal(t, "Cliente", gen.last.CounterpartName)
	require.Len(t, gen.last.Lines, 1)
	assert.Equal(t, "Tornillo", gen.last.Lines[0].ProductName)
	assert.True(t, gen.last.Lines[0].Subtotal.Equal(decimal.NewFromInt(30)))
	assert.True(t, gen.last.Total.Equal(decimal.NewFromInt(30)))
}

func TestSupplyReceipt_IncluyeProveedorYBodega(t *testing.T) {
	f := newFixture(t, ledger.Options{})
	sup := f.supply(t, dto.SupplyLineRequest{ProductID: productB, StorageID: storageB, Quantity: 4})

	gen := &captureGenerator{}
	uc := ledger.NewReceiptUseCase(f.store.Repositories(), gen)

	_, name, err := uc.SupplyReceipt(context.Background(), f.actor, sup.ID)
	require.NoError(t, err)
	assert.Equal(t, "compra-"+sup.ID+".pdf", name)
	assert.Equal(t, "Proveedor", gen.last.CounterpartName)
	assert.Equal(t, "900123", gen.last.CounterpartINN)
	require.Len(t, gen.last.Lines, 1)
	assert.Equal(t, "Secundaria", gen.last.Lines[0].StorageName)
	assert.True(t, gen.last.Total.Equal(decimal.NewFromInt(10)))
}

func TestReceipt_OtraEmpresaNoEncontrado(t *testing.T) {
	f := newFixture(t, ledger.Options{})
	sup := f.supply(t, dto.SupplyLineRequest{ProductID: productA, StorageID: storageA, Quantity: 1})

	uc := ledger.NewReceiptUseCase(f.store.Repositories(), &captureGenerator{})
	_, _, err := uc.SupplyReceipt(context.Background(), ledger.Actor{CompanyID: otherCompID}, sup.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
