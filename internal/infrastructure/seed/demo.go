// Package seed carga un catálogo de demostración a través de los puertos de repositorio,
// de modo que sirve igual para PostgreSQL que para el store en memoria.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/application/ledger"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// DemoData ids creados por Demo.
type DemoData struct {
	CompanyID  string
	StorageIDs []string // en orden de creación; la primera es la bodega por defecto
	SupplierID string
	ProductIDs []string
}

type demoProduct struct {
	name     string
	purchase string
	sale     string
}

var demoProducts = []demoProduct{
	{name: "Tornillo 1/4", purchase: "120.00", sale: "250.00"},
	{name: "Tuerca 1/4", purchase: "80.00", sale: "150.00"},
	{name: "Arandela plana", purchase: "35.50", sale: "70.00"},
}

// Demo crea una empresa con dos bodegas, un proveedor y tres productos.
func Demo(ctx context.Context, repos ledger.Repositories, now time.Time) (*DemoData, error) {
	out := &DemoData{CompanyID: uuid.NewString()}

	company := &entity.Company{ID: out.CompanyID, Name: "Ferretería Demo", INN: "900000001", CreatedAt: now, UpdatedAt: now}
	if err := repos.Companies.Create(ctx, company); err != nil {
		return nil, fmt.Errorf("seed: empresa: %w", err)
	}

	for i, name := range []string{"Bodega principal", "Bodega secundaria"} {
		// created_at creciente para que el orden de las bodegas sea estable.
		at := now.Add(time.Duration(i) * time.Second)
		st := &entity.Storage{ID: uuid.NewString(), CompanyID: out.CompanyID, Name: name, CreatedAt: at, UpdatedAt: at}
		if err := repos.Storages.Create(ctx, st); err != nil {
			return nil, fmt.Errorf("seed: bodega %q: %w", name, err)
		}
		out.StorageIDs = append(out.StorageIDs, st.ID)
	}

	supplier := &entity.Supplier{
		ID: uuid.NewString(), CompanyID: out.CompanyID, Name: "Distribuidora Demo",
		INN: "800000001", ContactInfo: "compras@demo.local", CreatedAt: now, UpdatedAt: now,
	}
	if err := repos.Suppliers.Create(ctx, supplier); err != nil {
		return nil, fmt.Errorf("seed: proveedor: %w", err)
	}
	out.SupplierID = supplier.ID

	for _, p := range demoProducts {
		product := &entity.Product{
			ID:            uuid.NewString(),
			CompanyID:     out.CompanyID,
			Name:          p.name,
			PurchasePrice: decimal.RequireFromString(p.purchase),
			SalePrice:     decimal.RequireFromString(p.sale),
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := repos.Products.Create(ctx, product); err != nil {
			return nil, fmt.Errorf("seed: producto %q: %w", p.name, err)
		}
		out.ProductIDs = append(out.ProductIDs, product.ID)
	}
	return out, nil
}
