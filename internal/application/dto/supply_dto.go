package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSupplyRequest entrada para registrar una compra (entrada de mercancía).
type CreateSupplyRequest struct {
	SupplierID   string              `json:"supplier_id" validate:"required"`
	DeliveryDate time.Time           `json:"delivery_date" validate:"required"`
	Lines        []SupplyLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// SupplyLineRequest línea de compra: producto, bodega que recibe y cantidad.
type SupplyLineRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	StorageID string `json:"storage_id" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"gt=0,max=1000000000"`
}

// SupplyResponse salida de una compra con sus líneas.
type SupplyResponse struct {
	ID           string               `json:"id"`
	CompanyID    string               `json:"company_id"`
	SupplierID   string               `json:"supplier_id"`
	DeliveryDate time.Time            `json:"delivery_date"`
	TotalAmount  decimal.Decimal      `json:"total_amount"`
	CreatedBy    string               `json:"created_by"`
	CreatedAt    time.Time            `json:"created_at"`
	Lines        []SupplyLineResponse `json:"lines,omitempty"`
}

// SupplyLineResponse línea de compra con el precio capturado.
type SupplyLineResponse struct {
	ProductID     string          `json:"product_id"`
	StorageID     string          `json:"storage_id"`
	Quantity      int64           `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	Subtotal      decimal.Decimal `json:"subtotal"`
}

// SupplyListResponse lista paginada de compras (sin líneas).
type SupplyListResponse struct {
	Items []SupplyResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
