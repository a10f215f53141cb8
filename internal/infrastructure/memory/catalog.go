package memory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var (
	_ repository.CompanyRepository  = (*CompanyRepo)(nil)
	_ repository.ProductRepository  = (*ProductRepo)(nil)
	_ repository.StorageRepository  = (*StorageRepo)(nil)
	_ repository.SupplierRepository = (*SupplierRepo)(nil)
)

// CompanyRepo empresas en memoria.
type CompanyRepo struct{ v *view }

func (r *CompanyRepo) Create(_ context.Context, c *entity.Company) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.companies[c.ID]; ok {
			return domain.Conflict("empresa %s ya existe", c.ID)
		}
		st.companies[c.ID] = *c
		return nil
	})
}

func (r *CompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	var out *entity.Company
	err := r.v.do(func(st *state) error {
		if c, ok := st.companies[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

// ProductRepo productos en memoria.
type ProductRepo struct{ v *view }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.products[p.ID]; ok {
			return domain.Conflict("producto %s ya existe", p.ID)
		}
		st.products[p.ID] = *p
		return nil
	})
}

func (r *ProductRepo) GetByIDAndCompany(_ context.Context, id, companyID string) (*entity.Product, error) {
	var out *entity.Product
	err := r.v.do(func(st *state) error {
		if p, ok := st.products[id]; ok && p.CompanyID == companyID {
			out = &p
		}
		return nil
	})
	return out, err
}

// UpdatePrices cambia los precios de referencia; domain.ErrNotFound si no es de la empresa.
func (r *ProductRepo) UpdatePrices(_ context.Context, id, companyID string, purchase, sale decimal.Decimal) error {
	return r.v.do(func(st *state) error {
		p, ok := st.products[id]
		if !ok || p.CompanyID != companyID {
			return domain.NotFound("producto %s no encontrado", id)
		}
		p.PurchasePrice = purchase
		p.SalePrice = sale
		p.UpdatedAt = time.Now()
		st.products[id] = p
		return nil
	})
}

// StorageRepo bodegas en memoria. FirstByCompany respeta el orden de alta.
type StorageRepo struct{ v *view }

func (r *StorageRepo) Create(_ context.Context, s *entity.Storage) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.storages[s.ID]; ok {
			return domain.Conflict("bodega %s ya existe", s.ID)
		}
		st.storages[s.ID] = *s
		st.storageOrder = append(st.storageOrder, s.ID)
		return nil
	})
}

func (r *StorageRepo) GetByIDAndCompany(_ context.Context, id, companyID string) (*entity.Storage, error) {
	var out *entity.Storage
	err := r.v.do(func(st *state) error {
		if s, ok := st.storages[id]; ok && s.CompanyID == companyID {
			out = &s
		}
		return nil
	})
	return out, err
}

func (r *StorageRepo) FirstByCompany(_ context.Context, companyID string) (*entity.Storage, error) {
	var out *entity.Storage
	err := r.v.do(func(st *state) error {
		for _, id := range st.storageOrder {
			if s := st.storages[id]; s.CompanyID == companyID {
				out = &s
				return nil
			}
		}
		return nil
	})
	return out, err
}

// SupplierRepo proveedores en memoria. El INN es único por empresa.
type SupplierRepo struct{ v *view }

func (r *SupplierRepo) Create(_ context.Context, s *entity.Supplier) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.suppliers[s.ID]; ok {
			return domain.Conflict("proveedor %s ya existe", s.ID)
		}
		if s.INN != "" {
			for _, other := range st.suppliers {
				if other.CompanyID == s.CompanyID && other.INN == s.INN {
					return domain.Conflict("ya existe un proveedor con INN %s", s.INN)
				}
			}
		}
		st.suppliers[s.ID] = *s
		return nil
	})
}

func (r *SupplierRepo) GetByIDAndCompany(_ context.Context, id, companyID string) (*entity.Supplier, error) {
	var out *entity.Supplier
	err := r.v.do(func(st *state) error {
		if s, ok := st.suppliers[id]; ok && s.CompanyID == companyID {
			out = &s
		}
		return nil
	})
	return out, err
}
