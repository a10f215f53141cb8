package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest entrada para registrar una venta.
type CreateSaleRequest struct {
	BuyerName string            `json:"buyer_name" validate:"required,min=1,max=255"`
	SaleDate  time.Time         `json:"sale_date" validate:"required"`
	Lines     []SaleLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// SaleLineRequest línea de venta. La bodega la decide el ledger (FIFO).
type SaleLineRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"gt=0,max=1000000000"`
}

// UpdateSaleRequest edición de cabecera; las líneas no se pueden modificar.
type UpdateSaleRequest struct {
	BuyerName *string    `json:"buyer_name" validate:"omitempty,min=1,max=255"`
	SaleDate  *time.Time `json:"sale_date"`
}

// SaleResponse salida de una venta con sus líneas y de qué bodegas salió el stock.
type SaleResponse struct {
	ID          string                   `json:"id"`
	CompanyID   string                   `json:"company_id"`
	BuyerName   string                   `json:"buyer_name"`
	SaleDate    time.Time                `json:"sale_date"`
	TotalAmount decimal.Decimal          `json:"total_amount"`
	CreatedBy   string                   `json:"created_by"`
	CreatedAt   time.Time                `json:"created_at"`
	Lines       []SaleLineResponse       `json:"lines,omitempty"`
	Allocations []SaleAllocationResponse `json:"allocations,omitempty"`
}

// SaleLineResponse línea de venta con el precio capturado.
type SaleLineResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	SalePrice decimal.Decimal `json:"sale_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SaleAllocationResponse cantidad descontada de una bodega.
type SaleAllocationResponse struct {
	ProductID string `json:"product_id"`
	StorageID string `json:"storage_id"`
	Quantity  int64  `json:"quantity"`
}

// SaleListResponse lista paginada de ventas (sin líneas).
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
