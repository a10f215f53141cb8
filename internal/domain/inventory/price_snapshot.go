package inventory

import (
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// SnapshotSupplyLine construye la línea de compra copiando el precio de compra vigente del producto.
// La línea no vuelve a leer el producto: cambios posteriores de precio no la afectan.
func SnapshotSupplyLine(supplyID string, product *entity.Product, storageID string, quantity int64, position int) entity.SupplyLine {
	return entity.SupplyLine{
		SupplyID:      supplyID,
		ProductID:     product.ID,
		StorageID:     storageID,
		Quantity:      quantity,
		PurchasePrice: product.PurchasePrice,
		Position:      position,
	}
}

// SnapshotSaleLine construye la línea de venta copiando el precio de venta vigente del producto.
func SnapshotSaleLine(saleID string, product *entity.Product, quantity int64, position int) entity.SaleLine {
	return entity.SaleLine{
		SaleID:    saleID,
		ProductID: product.ID,
		Quantity:  quantity,
		SalePrice: product.SalePrice,
		Position:  position,
	}
}
