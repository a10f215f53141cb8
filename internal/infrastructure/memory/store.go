// Package memory implementa los repositorios del ledger en memoria.
// Las transacciones se serializan con un mutex y el rollback restaura una copia del estado.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/stock-ledger/internal/application/ledger"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

var _ ledger.TxRunner = (*Store)(nil)

type stockKey struct {
	storageID string
	productID string
}

type state struct {
	companies    map[string]entity.Company
	products     map[string]entity.Product
	storages     map[string]entity.Storage
	storageOrder []string
	suppliers    map[string]entity.Supplier

	stock       map[stockKey]entity.StockLevel
	nextStockID int64

	supplies    map[string]entity.Supply
	supplyLines map[string][]entity.SupplyLine
	sales       map[string]entity.Sale
	saleLines   map[string][]entity.SaleLine
	saleAllocs  map[string][]entity.SaleAllocation
}

func newState() *state {
	return &state{
		companies:   map[string]entity.Company{},
		products:    map[string]entity.Product{},
		storages:    map[string]entity.Storage{},
		suppliers:   map[string]entity.Supplier{},
		stock:       map[stockKey]entity.StockLevel{},
		supplies:    map[string]entity.Supply{},
		supplyLines: map[string][]entity.SupplyLine{},
		sales:       map[string]entity.Sale{},
		saleLines:   map[string][]entity.SaleLine{},
		saleAllocs:  map[string][]entity.SaleAllocation{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.companies {
		c.companies[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.storages {
		c.storages[k] = v
	}
	c.storageOrder = append([]string(nil), s.storageOrder...)
	for k, v := range s.suppliers {
		c.suppliers[k] = v
	}
	for k, v := range s.stock {
		c.stock[k] = v
	}
	c.nextStockID = s.nextStockID
	for k, v := range s.supplies {
		c.supplies[k] = v
	}
	for k, v := range s.supplyLines {
		c.supplyLines[k] = append([]entity.SupplyLine(nil), v...)
	}
	for k, v := range s.sales {
		c.sales[k] = v
	}
	for k, v := range s.saleLines {
		c.saleLines[k] = append([]entity.SaleLine(nil), v...)
	}
	for k, v := range s.saleAllocs {
		c.saleAllocs[k] = append([]entity.SaleAllocation(nil), v...)
	}
	return c
}

// Store almacén en memoria. Usable como TxRunner y como fuente de repositorios de lectura.
type Store struct {
	mu   sync.Mutex
	data *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{data: newState()}
}

// view acceso al estado: fuera de una transacción cada operación toma el mutex;
// dentro de Run el mutex ya está tomado.
type view struct {
	store *Store
	inTx  bool
}

func (v *view) do(fn func(st *state) error) error {
	if !v.inTx {
		v.store.mu.Lock()
		defer v.store.mu.Unlock()
	}
	return fn(v.store.data)
}

func (s *Store) repositories(inTx bool) ledger.Repositories {
	v := &view{store: s, inTx: inTx}
	return ledger.Repositories{
		Companies: &CompanyRepo{v: v},
		Products:  &ProductRepo{v: v},
		Storages:  &StorageRepo{v: v},
		Suppliers: &SupplierRepo{v: v},
		Stock:     &StockLevelRepo{v: v},
		Supplies:  &SupplyRepo{v: v},
		Sales:     &SaleRepo{v: v},
	}
}

// Repositories devuelve repositorios fuera de transacción (lecturas y alta de catálogo).
func (s *Store) Repositories() ledger.Repositories {
	return s.repositories(false)
}

// Run ejecuta fn con repositorios atados a una transacción exclusiva.
// Si fn devuelve error (o hace panic) el estado vuelve a como estaba antes de empezar.
func (s *Store) Run(ctx context.Context, fn func(repos ledger.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	snapshot := s.data.clone()
	committed := false
	defer func() {
		if !committed {
			s.data = snapshot
		}
		s.mu.Unlock()
	}()

	if err := fn(s.repositories(true)); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	committed = true
	return nil
}

// stockRows filas del producto en bodegas de la empresa, por ID ascendente.
func (st *state) stockRows(companyID, productID string) []entity.StockLevel {
	var rows []entity.StockLevel
	for k, row := range st.stock {
		if k.productID != productID {
			continue
		}
		storage, ok := st.storages[k.storageID]
		if !ok || storage.CompanyID != companyID {
			continue
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return rows
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if limit <= 0 || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
