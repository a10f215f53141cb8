package ledger

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/inventory"
)

// ApplySale registra una venta. Por cada línea, en orden de producto: valida el producto, bloquea
// sus filas de stock (FOR UPDATE, por ID ascendente), verifica que el total disponible en las
// bodegas de la empresa cubra la cantidad, reparte el descuento FIFO por fila y captura el precio
// de venta. Líneas y asignaciones se devuelven en el orden recibido.
// Si cualquier línea falla se revierte la venta completa, incluidos los descuentos ya aplicados.
func (s *Service) ApplySale(ctx context.Context, actor Actor, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	now := s.now()
	if err := validateSale(in, now); err != nil {
		return nil, err
	}

	sale := &entity.Sale{
		ID:          uuid.New().String(),
		CompanyID:   actor.CompanyID,
		BuyerName:   strings.TrimSpace(in.BuyerName),
		SaleDate:    in.SaleDate,
		TotalAmount: decimal.Zero,
		CreatedBy:   actor.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	var (
		lines       []entity.SaleLine
		allocations []entity.SaleAllocation
	)

	err := s.txRunner.Run(ctx, func(r Repositories) error {
		if err := r.Sales.Create(ctx, sale); err != nil {
			return err
		}

		lines = make([]entity.SaleLine, len(in.Lines))
		byLine := make([][]entity.SaleAllocation, len(in.Lines))
		for _, i := range lockOrder(len(in.Lines), func(i int) (string, string) { return in.Lines[i].ProductID, "" }) {
			l := in.Lines[i]
			product, err := r.Products.GetByIDAndCompany(ctx, l.ProductID, actor.CompanyID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.NotFound("producto %s no encontrado", l.ProductID)
			}

			rows, err := r.Stock.ListForUpdate(ctx, actor.CompanyID, product.ID)
			if err != nil {
				return err
			}
			plan, err := inventory.Allocate(rows, l.Quantity)
			if err != nil {
				if errors.Is(err, domain.ErrInsufficientStock) {
					return domain.InsufficientStock("producto %s: %s", product.Name, domain.Message(err))
				}
				return err
			}
			for _, a := range plan {
				if _, err := r.Stock.Adjust(ctx, a.StorageID, product.ID, -a.Quantity); err != nil {
					return err
				}
				byLine[i] = append(byLine[i], entity.SaleAllocation{
					SaleID:    sale.ID,
					ProductID: product.ID,
					StorageID: a.StorageID,
					Quantity:  a.Quantity,
				})
			}

			line := inventory.SnapshotSaleLine(sale.ID, product, l.Quantity, i)
			line.ID = uuid.New().String()
			line.CreatedAt = now
			lines[i] = line
		}

		allocations = allocations[:0]
		for _, a := range byLine {
			allocations = append(allocations, a...)
		}

		if err := r.Sales.CreateLines(ctx, lines); err != nil {
			return err
		}
		if err := r.Sales.CreateAllocations(ctx, allocations); err != nil {
			return err
		}
		sale.TotalAmount = inventory.SaleTotal(lines)
		return r.Sales.UpdateTotal(ctx, sale.ID, sale.TotalAmount)
	})
	if err != nil {
		ev := s.log.Warn().Err(err).Str("company_id", actor.CompanyID)
		if errors.Is(err, domain.ErrInsufficientStock) {
			ev = ev.Str("reason", "stock_insuficiente")
		}
		ev.Msg("venta rechazada")
		return nil, err
	}

	s.log.Info().
		Str("company_id", actor.CompanyID).
		Str("sale_id", sale.ID).
		Int("lines", len(lines)).
		Int("allocations", len(allocations)).
		Str("total_amount", sale.TotalAmount.StringFixed(2)).
		Msg("venta registrada")
	return toSaleResponse(sale, lines, allocations), nil
}

// DeleteSale borra una venta y devuelve al stock la cantidad de cada línea.
// Con ReturnToFirstStorage todo vuelve a la bodega más antigua de la empresa;
// con ReturnToSourceStorages vuelve a las bodegas de donde salió.
func (s *Service) DeleteSale(ctx context.Context, actor Actor, saleID string) error {
	err := s.txRunner.Run(ctx, func(r Repositories) error {
		sale, err := r.Sales.GetForUpdate(ctx, saleID, actor.CompanyID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.NotFound("venta %s no encontrada", saleID)
		}

		returns, err := s.saleReturns(ctx, r, sale)
		if err != nil {
			return err
		}
		for _, i := range lockOrder(len(returns), func(i int) (string, string) { return returns[i].ProductID, returns[i].StorageID }) {
			ret := returns[i]
			if _, err := r.Stock.GetOrCreate(ctx, ret.StorageID, ret.ProductID); err != nil {
				return err
			}
			if _, err := r.Stock.Adjust(ctx, ret.StorageID, ret.ProductID, ret.Quantity); err != nil {
				return err
			}
		}
		return r.Sales.Delete(ctx, sale.ID)
	})
	if err != nil {
		return err
	}
	s.log.Info().
		Str("company_id", actor.CompanyID).
		Str("sale_id", saleID).
		Str("return_policy", string(s.opts.SaleReturnPolicy)).
		Msg("venta eliminada")
	return nil
}

// saleReturns calcula a qué bodega vuelve cada cantidad según la política configurada.
// Ventas sin asignaciones registradas usan siempre la primera bodega.
func (s *Service) saleReturns(ctx context.Context, r Repositories, sale *entity.Sale) ([]entity.SaleAllocation, error) {
	if s.opts.SaleReturnPolicy == ReturnToSourceStorages {
		allocs, err := r.Sales.GetAllocations(ctx, sale.ID)
		if err != nil {
			return nil, err
		}
		if len(allocs) > 0 {
			return allocs, nil
		}
	}

	lines, err := r.Sales.GetLines(ctx, sale.ID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, nil
	}
	first, err := r.Storages.FirstByCompany(ctx, sale.CompanyID)
	if err != nil {
		return nil, err
	}
	if first == nil {
		return nil, domain.NotFound("la empresa no tiene bodegas para devolver el stock")
	}
	returns := make([]entity.SaleAllocation, 0, len(lines))
	for _, l := range lines {
		returns = append(returns, entity.SaleAllocation{
			SaleID:    sale.ID,
			ProductID: l.ProductID,
			StorageID: first.ID,
			Quantity:  l.Quantity,
		})
	}
	return returns, nil
}

// UpdateSale edita la cabecera (comprador y/o fecha). Líneas, total y stock no cambian.
func (s *Service) UpdateSale(ctx context.Context, actor Actor, saleID string, in dto.UpdateSaleRequest) (*dto.SaleResponse, error) {
	now := s.now()
	if in.BuyerName != nil && strings.TrimSpace(*in.BuyerName) == "" {
		return nil, domain.Invalid("buyer_name no puede estar vacío")
	}
	if in.SaleDate != nil {
		if err := validateDate("sale_date", *in.SaleDate, now); err != nil {
			return nil, err
		}
	}

	var resp *dto.SaleResponse
	err := s.txRunner.Run(ctx, func(r Repositories) error {
		sale, err := r.Sales.GetForUpdate(ctx, saleID, actor.CompanyID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.NotFound("venta %s no encontrada", saleID)
		}
		if in.BuyerName != nil {
			sale.BuyerName = strings.TrimSpace(*in.BuyerName)
		}
		if in.SaleDate != nil {
			sale.SaleDate = *in.SaleDate
		}
		sale.UpdatedAt = now
		if err := r.Sales.UpdateHeader(ctx, sale); err != nil {
			return err
		}
		resp, err = loadSale(ctx, r, sale)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// GetSale obtiene una venta de la empresa con sus líneas y asignaciones.
func (s *Service) GetSale(ctx context.Context, actor Actor, saleID string) (*dto.SaleResponse, error) {
	sale, err := s.repos.Sales.GetByIDAndCompany(ctx, saleID, actor.CompanyID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.NotFound("venta %s no encontrada", saleID)
	}
	return loadSale(ctx, s.repos, sale)
}

// ListSales lista las ventas de la empresa (más recientes primero), sin líneas.
func (s *Service) ListSales(ctx context.Context, actor Actor, limit, offset int) (*dto.SaleListResponse, error) {
	limit, offset = clampPage(limit, offset)
	list, err := s.repos.Sales.ListByCompany(ctx, actor.CompanyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, sl := range list {
		items = append(items, *toSaleResponse(sl, nil, nil))
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func loadSale(ctx context.Context, r Repositories, sale *entity.Sale) (*dto.SaleResponse, error) {
	lines, err := r.Sales.GetLines(ctx, sale.ID)
	if err != nil {
		return nil, err
	}
	allocs, err := r.Sales.GetAllocations(ctx, sale.ID)
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale, lines, allocs), nil
}

func validateSale(in dto.CreateSaleRequest, now time.Time) error {
	if strings.TrimSpace(in.BuyerName) == "" {
		return domain.Invalid("buyer_name es obligatorio")
	}
	if err := validateDate("sale_date", in.SaleDate, now); err != nil {
		return err
	}
	if len(in.Lines) == 0 {
		return domain.Invalid("la venta debe tener al menos una línea")
	}
	seen := make(map[string]struct{}, len(in.Lines))
	for i, l := range in.Lines {
		if l.ProductID == "" {
			return domain.Invalid("línea %d: product_id es obligatorio", i+1)
		}
		if l.Quantity <= 0 {
			return domain.Invalid("línea %d: la cantidad debe ser mayor a 0", i+1)
		}
		if l.Quantity > inventory.MaxLineQuantity {
			return domain.Invalid("línea %d: la cantidad no puede superar %d", i+1, inventory.MaxLineQuantity)
		}
		if _, dup := seen[l.ProductID]; dup {
			return domain.Conflict("el producto %s está repetido en la venta", l.ProductID)
		}
		seen[l.ProductID] = struct{}{}
	}
	return nil
}

func toSaleResponse(s *entity.Sale, lines []entity.SaleLine, allocs []entity.SaleAllocation) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:          s.ID,
		CompanyID:   s.CompanyID,
		BuyerName:   s.BuyerName,
		SaleDate:    s.SaleDate,
		TotalAmount: s.TotalAmount,
		CreatedBy:   s.CreatedBy,
		CreatedAt:   s.CreatedAt,
	}
	if len(lines) > 0 {
		resp.Lines = make([]dto.SaleLineResponse, 0, len(lines))
		for _, l := range lines {
			resp.Lines = append(resp.Lines, dto.SaleLineResponse{
				ProductID: l.ProductID,
				Quantity:  l.Quantity,
				SalePrice: l.SalePrice,
				Subtotal:  l.Subtotal(),
			})
		}
	}
	if len(allocs) > 0 {
		resp.Allocations = make([]dto.SaleAllocationResponse, 0, len(allocs))
		for _, a := range allocs {
			resp.Allocations = append(resp.Allocations, dto.SaleAllocationResponse{
				ProductID: a.ProductID,
				StorageID: a.StorageID,
				Quantity:  a.Quantity,
			})
		}
	}
	return resp
}
