package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/inventory"
)

// ApplySupply registra una compra: crea la cabecera, suma cada línea al stock de su bodega,
// captura el precio de compra vigente y guarda el total. Todo en una transacción:
// si una línea falla no queda nada (ni cabecera, ni líneas, ni cambios de stock).
// Las líneas se aplican en lockOrder pero se guardan y devuelven en el orden recibido.
func (s *Service) ApplySupply(ctx context.Context, actor Actor, in dto.CreateSupplyRequest) (*dto.SupplyResponse, error) {
	now := s.now()
	if err := validateSupply(in, now); err != nil {
		return nil, err
	}

	supply := &entity.Supply{
		ID:           uuid.New().String(),
		CompanyID:    actor.CompanyID,
		SupplierID:   in.SupplierID,
		DeliveryDate: in.DeliveryDate,
		TotalAmount:  decimal.Zero,
		CreatedBy:    actor.UserID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	var lines []entity.SupplyLine

	err := s.txRunner.Run(ctx, func(r Repositories) error {
		supplier, err := r.Suppliers.GetByIDAndCompany(ctx, in.SupplierID, actor.CompanyID)
		if err != nil {
			return err
		}
		if supplier == nil {
			return domain.NotFound("proveedor %s no encontrado", in.SupplierID)
		}
		if err := r.Supplies.Create(ctx, supply); err != nil {
			return err
		}

		lines = make([]entity.SupplyLine, len(in.Lines))
		order := lockOrder(len(in.Lines), func(i int) (string, string) { return in.Lines[i].ProductID, in.Lines[i].StorageID })
		for _, i := range order {
			l := in.Lines[i]
			product, err := r.Products.GetByIDAndCompany(ctx, l.ProductID, actor.CompanyID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.NotFound("producto %s no encontrado", l.ProductID)
			}
			storage, err := r.Storages.GetByIDAndCompany(ctx, l.StorageID, actor.CompanyID)
			if err != nil {
				return err
			}
			if storage == nil {
				return domain.NotFound("bodega %s no encontrada", l.StorageID)
			}

			// Bloquea (o crea en 0) la fila antes de sumar
			if _, err := r.Stock.GetOrCreate(ctx, storage.ID, product.ID); err != nil {
				return err
			}
			if _, err := r.Stock.Adjust(ctx, storage.ID, product.ID, l.Quantity); err != nil {
				return err
			}

			line := inventory.SnapshotSupplyLine(supply.ID, product, storage.ID, l.Quantity, i)
			line.ID = uuid.New().String()
			line.CreatedAt = now
			lines[i] = line
		}

		if err := r.Supplies.CreateLines(ctx, lines); err != nil {
			return err
		}
		supply.TotalAmount = inventory.SupplyTotal(lines)
		return r.Supplies.UpdateTotal(ctx, supply.ID, supply.TotalAmount)
	})
	if err != nil {
		s.log.Warn().Err(err).Str("company_id", actor.CompanyID).Str("supplier_id", in.SupplierID).Msg("compra rechazada")
		return nil, err
	}

	s.log.Info().
		Str("company_id", actor.CompanyID).
		Str("supply_id", supply.ID).
		Int("lines", len(lines)).
		Str("total_amount", supply.TotalAmount.StringFixed(2)).
		Msg("compra registrada")
	return toSupplyResponse(supply, lines), nil
}

// DeleteSupply borra una compra y sus líneas. Por defecto no toca el stock; con
// ReverseSupplyOnDelete descuenta cada línea de la bodega que la recibió y falla con
// domain.ErrInsufficientStock si esa mercancía ya se vendió.
func (s *Service) DeleteSupply(ctx context.Context, actor Actor, supplyID string) error {
	err := s.txRunner.Run(ctx, func(r Repositories) error {
		supply, err := r.Supplies.GetForUpdate(ctx, supplyID, actor.CompanyID)
		if err != nil {
			return err
		}
		if supply == nil {
			return domain.NotFound("compra %s no encontrada", supplyID)
		}

		if s.opts.ReverseSupplyOnDelete {
			lines, err := r.Supplies.GetLines(ctx, supply.ID)
			if err != nil {
				return err
			}
			for _, i := range lockOrder(len(lines), func(i int) (string, string) { return lines[i].ProductID, lines[i].StorageID }) {
				l := lines[i]
				if _, err := r.Stock.Adjust(ctx, l.StorageID, l.ProductID, -l.Quantity); err != nil {
					if errors.Is(err, domain.ErrInsufficientStock) {
						return domain.InsufficientStock("el stock del producto %s recibido en la compra ya fue consumido", l.ProductID)
					}
					return err
				}
			}
		}
		return r.Supplies.Delete(ctx, supply.ID)
	})
	if err != nil {
		return err
	}
	s.log.Info().
		Str("company_id", actor.CompanyID).
		Str("supply_id", supplyID).
		Bool("stock_reversed", s.opts.ReverseSupplyOnDelete).
		Msg("compra eliminada")
	return nil
}

// GetSupply obtiene una compra de la empresa con sus líneas.
func (s *Service) GetSupply(ctx context.Context, actor Actor, supplyID string) (*dto.SupplyResponse, error) {
	supply, err := s.repos.Supplies.GetByIDAndCompany(ctx, supplyID, actor.CompanyID)
	if err != nil {
		return nil, err
	}
	if supply == nil {
		return nil, domain.NotFound("compra %s no encontrada", supplyID)
	}
	lines, err := s.repos.Supplies.GetLines(ctx, supply.ID)
	if err != nil {
		return nil, err
	}
	return toSupplyResponse(supply, lines), nil
}

// ListSupplies lista las compras de la empresa (más recientes primero), sin líneas.
func (s *Service) ListSupplies(ctx context.Context, actor Actor, limit, offset int) (*dto.SupplyListResponse, error) {
	limit, offset = clampPage(limit, offset)
	list, err := s.repos.Supplies.ListByCompany(ctx, actor.CompanyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplyResponse, 0, len(list))
	for _, sp := range list {
		items = append(items, *toSupplyResponse(sp, nil))
	}
	return &dto.SupplyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func validateSupply(in dto.CreateSupplyRequest, now time.Time) error {
	if in.SupplierID == "" {
		return domain.Invalid("supplier_id es obligatorio")
	}
	if err := validateDate("delivery_date", in.DeliveryDate, now); err != nil {
		return err
	}
	if len(in.Lines) == 0 {
		return domain.Invalid("la compra debe tener al menos una línea")
	}
	seen := make(map[string]struct{}, len(in.Lines))
	for i, l := range in.Lines {
		if l.ProductID == "" || l.StorageID == "" {
			return domain.Invalid("línea %d: product_id y storage_id son obligatorios", i+1)
		}
		if l.Quantity <= 0 {
			return domain.Invalid("línea %d: la cantidad debe ser mayor a 0", i+1)
		}
		if l.Quantity > inventory.MaxLineQuantity {
			return domain.Invalid("línea %d: la cantidad no puede superar %d", i+1, inventory.MaxLineQuantity)
		}
		if _, dup := seen[l.ProductID]; dup {
			return domain.Conflict("el producto %s está repetido en la compra", l.ProductID)
		}
		seen[l.ProductID] = struct{}{}
	}
	return nil
}

// validateDate la fecha es obligatoria y no puede ser futura.
func validateDate(field string, value, now time.Time) error {
	if value.IsZero() {
		return domain.Invalid("%s es obligatoria", field)
	}
	if value.After(now) {
		return domain.Invalid("%s no puede estar en el futuro", field)
	}
	return nil
}

func toSupplyResponse(s *entity.Supply, lines []entity.SupplyLine) *dto.SupplyResponse {
	resp := &dto.SupplyResponse{
		ID:           s.ID,
		CompanyID:    s.CompanyID,
		SupplierID:   s.SupplierID,
		DeliveryDate: s.DeliveryDate,
		TotalAmount:  s.TotalAmount,
		CreatedBy:    s.CreatedBy,
		CreatedAt:    s.CreatedAt,
	}
	if len(lines) > 0 {
		resp.Lines = make([]dto.SupplyLineResponse, 0, len(lines))
		for _, l := range lines {
			resp.Lines = append(resp.Lines, dto.SupplyLineResponse{
				ProductID:     l.ProductID,
				StorageID:     l.StorageID,
				Quantity:      l.Quantity,
				PurchasePrice: l.PurchasePrice,
				Subtotal:      l.Subtotal(),
			})
		}
	}
	return resp
}
