// seed crea un catálogo de demostración en PostgreSQL (empresa, bodegas, proveedor y productos)
// e imprime un JWT de esa empresa para probar la API.
//
// Uso: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jhoicas/stock-ledger/internal/application/ledger"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/seed"
	"github.com/jhoicas/stock-ledger/pkg/config"
	"github.com/jhoicas/stock-ledger/pkg/jwt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "Migrar: %v\n", err)
		os.Exit(1)
	}

	// Todo el catálogo en una transacción: o queda completo o no queda nada.
	var demo *seed.DemoData
	err = postgres.NewTxRunner(pool).Run(ctx, func(repos ledger.Repositories) error {
		var err error
		demo, err = seed.Demo(ctx, repos, time.Now())
		return err
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Sembrar: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("company_id:  %s\n", demo.CompanyID)
	fmt.Printf("storage_ids: %s\n", strings.Join(demo.StorageIDs, ", "))
	fmt.Printf("supplier_id: %s\n", demo.SupplierID)
	fmt.Printf("product_ids: %s\n", strings.Join(demo.ProductIDs, ", "))

	if cfg.JWT.Secret == "" {
		fmt.Println("JWT_SECRET vacío: no se genera token")
		return
	}
	token, err := jwt.Generate(cfg.JWT.Secret, "seed", demo.CompanyID, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar token: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("token:       %s\n", token)
}
