package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var (
	_ repository.SupplyRepository = (*SupplyRepo)(nil)
	_ repository.SaleRepository   = (*SaleRepo)(nil)
)

// SupplyRepo compras en memoria.
type SupplyRepo struct{ v *view }

func (r *SupplyRepo) Create(_ context.Context, s *entity.Supply) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.supplies[s.ID]; ok {
			return domain.Conflict("compra %s ya existe", s.ID)
		}
		st.supplies[s.ID] = *s
		return nil
	})
}

func (r *SupplyRepo) CreateLines(_ context.Context, lines []entity.SupplyLine) error {
	return r.v.do(func(st *state) error {
		for _, l := range lines {
			if _, ok := st.supplies[l.SupplyID]; !ok {
				return domain.NotFound("compra %s no encontrada", l.SupplyID)
			}
			for _, existing := range st.supplyLines[l.SupplyID] {
				if existing.ProductID == l.ProductID {
					return domain.Conflict("el producto %s ya está en la compra", l.ProductID)
				}
			}
			st.supplyLines[l.SupplyID] = append(st.supplyLines[l.SupplyID], l)
		}
		return nil
	})
}

func (r *SupplyRepo) UpdateTotal(_ context.Context, id string, total decimal.Decimal) error {
	return r.v.do(func(st *state) error {
		s, ok := st.supplies[id]
		if !ok {
			return domain.NotFound("compra %s no encontrada", id)
		}
		s.TotalAmount = total
		s.UpdatedAt = time.Now()
		st.supplies[id] = s
		return nil
	})
}

func (r *SupplyRepo) GetByIDAndCompany(_ context.Context, id, companyID string) (*entity.Supply, error) {
	var out *entity.Supply
	err := r.v.do(func(st *state) error {
		if s, ok := st.supplies[id]; ok && s.CompanyID == companyID {
			out = &s
		}
		return nil
	})
	return out, err
}

func (r *SupplyRepo) GetForUpdate(ctx context.Context, id, companyID string) (*entity.Supply, error) {
	return r.GetByIDAndCompany(ctx, id, companyID)
}

func (r *SupplyRepo) GetLines(_ context.Context, supplyID string) ([]entity.SupplyLine, error) {
	var out []entity.SupplyLine
	err := r.v.do(func(st *state) error {
		out = append([]entity.SupplyLine(nil), st.supplyLines[supplyID]...)
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, err
}

func (r *SupplyRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Supply, error) {
	var all []*entity.Supply
	err := r.v.do(func(st *state) error {
		for _, s := range st.supplies {
			if s.CompanyID == companyID {
				s := s
				all = append(all, &s)
			}
		}
		return nil
	})
	sort.Slice(all, func(i, j int) bool {
		if !all[i].DeliveryDate.Equal(all[j].DeliveryDate) {
			return all[i].DeliveryDate.After(all[j].DeliveryDate)
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return page(all, limit, offset), err
}

func (r *SupplyRepo) Delete(_ context.Context, id string) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.supplies[id]; !ok {
			return domain.NotFound("compra %s no encontrada", id)
		}
		delete(st.supplies, id)
		delete(st.supplyLines, id)
		return nil
	})
}

// SaleRepo ventas en memoria.
type SaleRepo struct{ v *view }

func (r *SaleRepo) Create(_ context.Context, s *entity.Sale) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.sales[s.ID]; ok {
			return domain.Conflict("venta %s ya existe", s.ID)
		}
		st.sales[s.ID] = *s
		return nil
	})
}

func (r *SaleRepo) CreateLines(_ context.Context, lines []entity.SaleLine) error {
	return r.v.do(func(st *state) error {
		for _, l := range lines {
			if _, ok := st.sales[l.SaleID]; !ok {
				return domain.NotFound("venta %s no encontrada", l.SaleID)
			}
			for _, existing := range st.saleLines[l.SaleID] {
				if existing.ProductID == l.ProductID {
					return domain.Conflict("el producto %s ya está en la venta", l.ProductID)
				}
			}
			st.saleLines[l.SaleID] = append(st.saleLines[l.SaleID], l)
		}
		return nil
	})
}

func (r *SaleRepo) CreateAllocations(_ context.Context, allocations []entity.SaleAllocation) error {
	return r.v.do(func(st *state) error {
		for _, a := range allocations {
			st.saleAllocs[a.SaleID] = append(st.saleAllocs[a.SaleID], a)
		}
		return nil
	})
}

func (r *SaleRepo) UpdateTotal(_ context.Context, id string, total decimal.Decimal) error {
	return r.v.do(func(st *state) error {
		s, ok := st.sales[id]
		if !ok {
			return domain.NotFound("venta %s no encontrada", id)
		}
		s.TotalAmount = total
		s.UpdatedAt = time.Now()
		st.sales[id] = s
		return nil
	})
}

func (r *SaleRepo) UpdateHeader(_ context.Context, sale *entity.Sale) error {
	return r.v.do(func(st *state) error {
		s, ok := st.sales[sale.ID]
		if !ok {
			return domain.NotFound("venta %s no encontrada", sale.ID)
		}
		s.BuyerName = sale.BuyerName
		s.SaleDate = sale.SaleDate
		s.UpdatedAt = sale.UpdatedAt
		st.sales[sale.ID] = s
		return nil
	})
}

func (r *SaleRepo) GetByIDAndCompany(_ context.Context, id, companyID string) (*entity.Sale, error) {
	var out *entity.Sale
	err := r.v.do(func(st *state) error {
		if s, ok := st.sales[id]; ok && s.CompanyID == companyID {
			out = &s
		}
		return nil
	})
	return out, err
}

func (r *SaleRepo) GetForUpdate(ctx context.Context, id, companyID string) (*entity.Sale, error) {
	return r.GetByIDAndCompany(ctx, id, companyID)
}

func (r *SaleRepo) GetLines(_ context.Context, saleID string) ([]entity.SaleLine, error) {
	var out []entity.SaleLine
	err := r.v.do(func(st *state) error {
		out = append([]entity.SaleLine(nil), st.saleLines[saleID]...)
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, err
}

func (r *SaleRepo) GetAllocations(_ context.Context, saleID string) ([]entity.SaleAllocation, error) {
	var out []entity.SaleAllocation
	err := r.v.do(func(st *state) error {
		out = append([]entity.SaleAllocation(nil), st.saleAllocs[saleID]...)
		return nil
	})
	return out, err
}

func (r *SaleRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Sale, error) {
	var all []*entity.Sale
	err := r.v.do(func(st *state) error {
		for _, s := range st.sales {
			if s.CompanyID == companyID {
				s := s
				all = append(all, &s)
			}
		}
		return nil
	})
	sort.Slice(all, func(i, j int) bool {
		if !all[i].SaleDate.Equal(all[j].SaleDate) {
			return all[i].SaleDate.After(all[j].SaleDate)
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return page(all, limit, offset), err
}

func (r *SaleRepo) Delete(_ context.Context, id string) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.sales[id]; !ok {
			return domain.NotFound("venta %s no encontrada", id)
		}
		delete(st.sales, id)
		delete(st.saleLines, id)
		delete(st.saleAllocs, id)
		return nil
	})
}
