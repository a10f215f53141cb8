package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/ledger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger    *ledger.Service
	Receipts  *ledger.ReceiptUseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Supplies (entradas de mercancía)
	supplies := protected.Group("/supplies")
	supplyHandler := NewSupplyHandler(deps.Ledger, deps.Receipts)
	supplies.Post("/", supplyHandler.Create)
	supplies.Get("/", supplyHandler.List)
	supplies.Get("/:id", supplyHandler.GetByID)
	supplies.Delete("/:id", supplyHandler.Delete)
	supplies.Get("/:id/pdf", supplyHandler.PDF)

	// Sales
	sales := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.Ledger, deps.Receipts)
	sales.Post("/", saleHandler.Create)
	sales.Get("/", saleHandler.List)
	sales.Get("/:id", saleHandler.GetByID)
	sales.Patch("/:id", saleHandler.Update)
	sales.Delete("/:id", saleHandler.Delete)
	sales.Get("/:id/pdf", saleHandler.PDF)

	// Stock por producto
	products := protected.Group("/products")
	stockHandler := NewStockHandler(deps.Ledger)
	products.Get("/:id/stock", stockHandler.GetByProduct)
}
