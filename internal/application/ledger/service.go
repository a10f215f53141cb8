package ledger

import (
	"sort"
	"time"

	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// ReturnPolicy define a qué bodegas vuelve el stock al borrar una venta.
type ReturnPolicy string

const (
	// ReturnToFirstStorage devuelve todo a la bodega más antigua de la empresa.
	ReturnToFirstStorage ReturnPolicy = "first_storage"
	// ReturnToSourceStorages devuelve a las bodegas de donde salió (SaleAllocation).
	ReturnToSourceStorages ReturnPolicy = "source_storages"
)

const maxPageLimit = 100

// Options comportamiento configurable del ledger al borrar transacciones.
type Options struct {
	SaleReturnPolicy      ReturnPolicy
	ReverseSupplyOnDelete bool
}

// Service casos de uso del ledger de stock: compras, ventas, reversos y consultas.
// Las escrituras corren dentro de txRunner; las lecturas usan repos (pool).
type Service struct {
	txRunner TxRunner
	repos    Repositories
	log      *logger.Logger
	opts     Options
	now      func() time.Time
}

// NewService construye el servicio.
func NewService(txRunner TxRunner, repos Repositories, log *logger.Logger, opts Options) *Service {
	if opts.SaleReturnPolicy == "" {
		opts.SaleReturnPolicy = ReturnToFirstStorage
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		txRunner: txRunner,
		repos:    repos,
		log:      log.Component("ledger"),
		opts:     opts,
		now:      time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 20
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// lockOrder índices 0..n-1 ordenados por (producto, bodega). Las filas de stock se bloquean
// siempre en este orden para que dos transacciones con los mismos productos no se crucen.
func lockOrder(n int, key func(i int) (productID, storageID string)) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		pa, sa := key(idx[a])
		pb, sb := key(idx[b])
		if pa != pb {
			return pa < pb
		}
		return sa < sb
	})
	return idx
}
