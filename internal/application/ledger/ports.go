package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// Actor contexto de autorización ya resuelto: empresa (tenant) y usuario que opera.
type Actor struct {
	CompanyID string
	UserID    string
}

// Repositories agrupa los repositorios que usa el ledger. Dentro de TxRunner.Run
// todos están atados a la misma transacción.
type Repositories struct {
	Companies repository.CompanyRepository
	Products  repository.ProductRepository
	Storages  repository.StorageRepository
	Suppliers repository.SupplierRepository
	Stock     repository.StockLevelRepository
	Supplies  repository.SupplyRepository
	Sales     repository.SaleRepository
}

// TxRunner ejecuta fn dentro de una transacción: Commit si fn devuelve nil, Rollback en cualquier otro caso.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repositories) error) error
}

// ReceiptLine línea de un comprobante ya resuelta (nombre de producto y precio capturado).
type ReceiptLine struct {
	ProductName string
	StorageName string
	Quantity    int64
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// Receipt datos de un comprobante de venta o de compra.
type Receipt struct {
	Title            string
	Number           string
	Date             time.Time
	Company          *entity.Company
	CounterpartLabel string
	CounterpartName  string
	CounterpartINN   string
	Lines            []ReceiptLine
	Total            decimal.Decimal
}

// ReceiptPDFGenerator genera la representación PDF de un comprobante.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, receipt Receipt) ([]byte, error)
}
