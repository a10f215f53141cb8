package entity

import "time"

// StockLevel es la cantidad disponible de un producto en una bodega.
// Único por (StorageID, ProductID). ID es secuencial (orden de creación) y define
// el orden FIFO con el que las ventas consumen stock. Quantity nunca es negativa.
type StockLevel struct {
	ID        int64
	StorageID string
	ProductID string
	Quantity  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
