package memory_test

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/application/ledger"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
)

func seed(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	repos := s.Repositories()
	require.NoError(t, repos.Storages.Create(ctx, &entity.Storage{ID: "a", CompanyID: "c1"}))
	require.NoError(t, repos.Storages.Create(ctx, &entity.Storage{ID: "b", CompanyID: "c1"}))
	require.NoError(t, repos.Storages.Create(ctx, &entity.Storage{ID: "z", CompanyID: "c2"}))
	return s
}

func TestAdjust_NoPermiteNegativos(t *testing.T) {
	s := seed(t)
	ctx := context.Background()
	stock := s.Repositories().Stock

	_, err := stock.GetOrCreate(ctx, "a", "p")
	require.NoError(t, err)
	qty, err := stock.Adjust(ctx, "a", "p", 4)
	require.NoError(t, err)
	assert.Equal(t, int64(4), qty)

	_, err = stock.Adjust(ctx, "a", "p", -5)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	_, err = stock.Adjust(ctx, "b", "p", -1)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock), "fila inexistente")

	total, err := stock.TotalAvailable(ctx, "c1", "p")
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
}

// Un ajuste que desbordaría int64 se rechaza como entrada inválida y la fila no cambia.
func TestAdjust_SinDesbordamiento(t *testing.T) {
	s := seed(t)
	ctx := context.Background()
	stock := s.Repositories().Stock

	_, err := stock.GetOrCreate(ctx, "a", "p")
	require.NoError(t, err)
	_, err = stock.Adjust(ctx, "a", "p", math.MaxInt64)
	require.NoError(t, err)

	_, err = stock.Adjust(ctx, "a", "p", 1)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), err)

	rows, err := stock.ListByProduct(ctx, "c1", "p")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(math.MaxInt64), rows[0].Quantity)

	_, err = stock.GetOrCreate(ctx, "b", "p")
	require.NoError(t, err)
	_, err = stock.Adjust(ctx, "b", "p", 1)
	require.NoError(t, err)
	_, err = stock.TotalAvailable(ctx, "c1", "p")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "el total no cabe en int64")
}

func TestStockRows_SoloEmpresaYOrdenPorID(t *testing.T) {
	s := seed(t)
	ctx := context.Background()
	stock := s.Repositories().Stock

	for _, storage := range []string{"b", "z", "a"} {
		_, err := stock.GetOrCreate(ctx, storage, "p")
		require.NoError(t, err)
		_, err = stock.Adjust(ctx, storage, "p", 1)
		require.NoError(t, err)
	}

	rows, err := stock.ListForUpdate(ctx, "c1", "p")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "b", rows[0].StorageID)
	assert.Equal(t, "a", rows[1].StorageID)
	assert.Less(t, rows[0].ID, rows[1].ID)
}

func TestRun_RollbackRestauraEstado(t *testing.T) {
	s := seed(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.Run(ctx, func(r ledger.Repositories) error {
		if _, err := r.Stock.GetOrCreate(ctx, "a", "p"); err != nil {
			return err
		}
		if _, err := r.Stock.Adjust(ctx, "a", "p", 10); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	total, err := s.Repositories().Stock.TotalAvailable(ctx, "c1", "p")
	require.NoError(t, err)
	assert.Zero(t, total)
	rows, err := s.Repositories().Stock.ListByProduct(ctx, "c1", "p")
	require.NoError(t, err)
	assert.Empty(t, rows, "la fila creada en la transacción también se revierte")
}

func TestRun_PanicRestauraEstadoYLiberaLock(t *testing.T) {
	s := seed(t)
	ctx := context.Background()

	assert.Panics(t, func() {
		_ = s.Run(ctx, func(r ledger.Repositories) error {
			_, _ = r.Stock.Adjust(ctx, "a", "p", 3)
			panic("fallo")
		})
	})

	total, err := s.Repositories().Stock.TotalAvailable(ctx, "c1", "p")
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestRun_Concurrente(t *testing.T) {
	s := seed(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Run(ctx, func(r ledger.Repositories) error {
				_, err := r.Stock.Adjust(ctx, "a", "p", 1)
				return err
			})
		}()
	}
	wg.Wait()

	total, err := s.Repositories().Stock.TotalAvailable(ctx, "c1", "p")
	require.NoError(t, err)
	assert.Equal(t, int64(20), total)
}

func TestFirstByCompany_OrdenDeAlta(t *testing.T) {
	s := seed(t)
	ctx := context.Background()

	first, err := s.Repositories().Storages.FirstByCompany(ctx, "c1")
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, "a", first.ID)

	none, err := s.Repositories().Storages.FirstByCompany(ctx, "sin-bodegas")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestSupplier_INNUnicoPorEmpresa(t *testing.T) {
	s := seed(t)
	ctx := context.Background()
	suppliers := s.Repositories().Suppliers

	require.NoError(t, suppliers.Create(ctx, &entity.Supplier{ID: "s1", CompanyID: "c1", INN: "123"}))
	err := suppliers.Create(ctx, &entity.Supplier{ID: "s2", CompanyID: "c1", INN: "123"})
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.NoError(t, suppliers.Create(ctx, &entity.Supplier{ID: "s3", CompanyID: "c2", INN: "123"}))
}

func TestUpdatePrices_SoloEmpresaDuena(t *testing.T) {
	s := seed(t)
	ctx := context.Background()
	products := s.Repositories().Products
	require.NoError(t, products.Create(ctx, &entity.Product{
		ID: "p1", CompanyID: "c1", PurchasePrice: decimal.NewFromInt(10), SalePrice: decimal.NewFromInt(15),
	}))

	err := products.UpdatePrices(ctx, "p1", "c2", decimal.NewFromInt(1), decimal.NewFromInt(1))
	assert.True(t, errors.Is(err, domain.ErrNotFound), "otra empresa")
	err = products.UpdatePrices(ctx, "no-existe", "c1", decimal.NewFromInt(1), decimal.NewFromInt(1))
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	require.NoError(t, products.UpdatePrices(ctx, "p1", "c1", decimal.NewFromInt(12), decimal.NewFromInt(18)))
	p, err := products.GetByIDAndCompany(ctx, "p1", "c1")
	require.NoError(t, err)
	assert.True(t, p.PurchasePrice.Equal(decimal.NewFromInt(12)))
	assert.True(t, p.SalePrice.Equal(decimal.NewFromInt(18)))
}
