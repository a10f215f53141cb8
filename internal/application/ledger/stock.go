package ledger

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/inventory"
)

// TotalAvailable suma el stock del producto en todas las bodegas de la empresa.
func (s *Service) TotalAvailable(ctx context.Context, actor Actor, productID string) (int64, error) {
	product, err := s.repos.Products.GetByIDAndCompany(ctx, productID, actor.CompanyID)
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, domain.NotFound("producto %s no encontrado", productID)
	}
	return s.repos.Stock.TotalAvailable(ctx, actor.CompanyID, product.ID)
}

// StockLevels devuelve el total disponible del producto y el desglose por bodega (orden FIFO).
func (s *Service) StockLevels(ctx context.Context, actor Actor, productID string) (*dto.StockResponse, error) {
	product, err := s.repos.Products.GetByIDAndCompany(ctx, productID, actor.CompanyID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFound("producto %s no encontrado", productID)
	}
	rows, err := s.repos.Stock.ListByProduct(ctx, actor.CompanyID, product.ID)
	if err != nil {
		return nil, err
	}
	total, err := inventory.TotalQuantity(rows)
	if err != nil {
		return nil, err
	}
	resp := &dto.StockResponse{
		ProductID:      product.ID,
		TotalAvailable: total,
		Levels:         make([]dto.StockLevelResponse, 0, len(rows)),
	}
	for _, r := range rows {
		resp.Levels = append(resp.Levels, dto.StockLevelResponse{StorageID: r.StorageID, Quantity: r.Quantity})
	}
	return resp, nil
}
