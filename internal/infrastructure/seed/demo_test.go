package seed_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/ledger"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/seed"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

func TestDemo_CatalogoUtilizable(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repos := store.Repositories()

	data, err := seed.Demo(ctx, repos, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, data.StorageIDs, 2)
	require.Len(t, data.ProductIDs, 3)

	first, err := repos.Storages.FirstByCompany(ctx, data.CompanyID)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, data.StorageIDs[0], first.ID)

	// El catálogo sembrado alcanza para una compra y una venta completas.
	svc := ledger.NewService(store, repos, logger.Nop(), ledger.Options{})
	actor := ledger.Actor{CompanyID: data.CompanyID, UserID: "demo"}
	_, err = svc.ApplySupply(ctx, actor, dto.CreateSupplyRequest{
		SupplierID:   data.SupplierID,
		DeliveryDate: time.Now().Add(-time.Minute),
		Lines:        []dto.SupplyLineRequest{{ProductID: data.ProductIDs[0], StorageID: data.StorageIDs[1], Quantity: 4}},
	})
	require.NoError(t, err)
	_, err = svc.ApplySale(ctx, actor, dto.CreateSaleRequest{
		BuyerName: "Cliente",
		SaleDate:  time.Now().Add(-time.Second),
		Lines:     []dto.SaleLineRequest{{ProductID: data.ProductIDs[0], Quantity: 3}},
	})
	require.NoError(t, err)

	total, err := svc.TotalAvailable(ctx, actor, data.ProductIDs[0])
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}
