package inventory

import (
	"sort"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// Allocation descuento planificado sobre una fila de stock (bodega + producto).
type Allocation struct {
	StockLevelID int64
	StorageID    string
	Quantity     int64
}

// Allocate reparte quantity entre las filas de stock de un producto en orden FIFO por ID de fila
// (orden de creación), tomando min(pendiente, disponible) de cada fila con stock hasta cubrir
// lo pedido. No modifica rows: devuelve el plan y el caller aplica los descuentos.
// Lo tomado nunca supera quantity, así que el recorrido no desborda aunque el total sí lo haga.
//
// Ejemplo: filas [5, 3] y quantity 6 → [{fila1, 5}, {fila2, 1}].
func Allocate(rows []entity.StockLevel, quantity int64) ([]Allocation, error) {
	if quantity <= 0 {
		return nil, domain.Invalid("la cantidad a asignar debe ser positiva (recibido %d)", quantity)
	}
	ordered := make([]entity.StockLevel, len(rows))
	copy(ordered, rows)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	remaining := quantity
	plan := make([]Allocation, 0, len(ordered))
	for _, row := range ordered {
		if remaining == 0 {
			break
		}
		if row.Quantity <= 0 {
			continue
		}
		take := min(remaining, row.Quantity)
		plan = append(plan, Allocation{StockLevelID: row.ID, StorageID: row.StorageID, Quantity: take})
		remaining -= take
	}
	if remaining > 0 {
		return nil, domain.InsufficientStock("disponible %d, solicitado %d", quantity-remaining, quantity)
	}
	return plan, nil
}
