package ledger

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// ReceiptUseCase genera los comprobantes PDF de ventas y compras.
type ReceiptUseCase struct {
	repos     Repositories
	generator ReceiptPDFGenerator
}

// NewReceiptUseCase construye el caso de uso inyectando repositorios y generador.
func NewReceiptUseCase(repos Repositories, generator ReceiptPDFGenerator) *ReceiptUseCase {
	return &ReceiptUseCase{repos: repos, generator: generator}
}

// SaleReceipt genera el comprobante de una venta de la empresa.
// Retorna (pdfBytes, filename, nil) o domain.ErrNotFound si la venta no existe o es de otra empresa.
func (uc *ReceiptUseCase) SaleReceipt(ctx context.Context, actor Actor, saleID string) ([]byte, string, error) {
	sale, err := uc.repos.Sales.GetByIDAndCompany(ctx, saleID, actor.CompanyID)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: obtener venta: %w", err)
	}
	if sale == nil {
		return nil, "", domain.NotFound("venta %s no encontrada", saleID)
	}
	company, err := uc.company(ctx, actor.CompanyID)
	if err != nil {
		return nil, "", err
	}
	lines, err := uc.repos.Sales.GetLines(ctx, sale.ID)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: obtener líneas: %w", err)
	}

	receipt := Receipt{
		Title:            "COMPROBANTE DE VENTA",
		Number:           sale.ID,
		Date:             sale.SaleDate,
		Company:          company,
		CounterpartLabel: "COMPRADOR",
		CounterpartName:  sale.BuyerName,
		Total:            sale.TotalAmount,
	}
	for _, l := range lines {
		name, err := uc.productName(ctx, l.ProductID, actor.CompanyID)
		if err != nil {
			return nil, "", err
		}
		receipt.Lines = append(receipt.Lines, ReceiptLine{
			ProductName: name,
			Quantity:    l.Quantity,
			UnitPrice:   l.SalePrice,
			Subtotal:    l.Subtotal(),
		})
	}

	pdf, err := uc.generator.GenerateReceiptPDF(ctx, receipt)
	if err != nil {
		return nil, "", err
	}
	return pdf, fmt.Sprintf("venta-%s.pdf", sale.ID), nil
}

// SupplyReceipt genera la nota de entrada de una compra de la empresa.
func (uc *ReceiptUseCase) SupplyReceipt(ctx context.Context, actor Actor, supplyID string) ([]byte, string, error) {
	supply, err := uc.repos.Supplies.GetByIDAndCompany(ctx, supplyID, actor.CompanyID)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: obtener compra: %w", err)
	}
	if supply == nil {
		return nil, "", domain.NotFound("compra %s no encontrada", supplyID)
	}
	company, err := uc.company(ctx, actor.CompanyID)
	if err != nil {
		return nil, "", err
	}
	supplier, err := uc.repos.Suppliers.GetByIDAndCompany(ctx, supply.SupplierID, actor.CompanyID)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: obtener proveedor: %w", err)
	}
	if supplier == nil {
		supplier = &entity.Supplier{ID: supply.SupplierID, Name: supply.SupplierID}
	}
	lines, err := uc.repos.Supplies.GetLines(ctx, supply.ID)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: obtener líneas: %w", err)
	}

	receipt := Receipt{
		Title:            "NOTA DE ENTRADA",
		Number:           supply.ID,
		Date:             supply.DeliveryDate,
		Company:          company,
		CounterpartLabel: "PROVEEDOR",
		CounterpartName:  supplier.Name,
		CounterpartINN:   supplier.INN,
		Total:            supply.TotalAmount,
	}
	for _, l := range lines {
		name, err := uc.productName(ctx, l.ProductID, actor.CompanyID)
		if err != nil {
			return nil, "", err
		}
		storageName := l.StorageID
		if st, err := uc.repos.Storages.GetByIDAndCompany(ctx, l.StorageID, actor.CompanyID); err == nil && st != nil {
			storageName = st.Name
		}
		receipt.Lines = append(receipt.Lines, ReceiptLine{
			ProductName: name,
			StorageName: storageName,
			Quantity:    l.Quantity,
			UnitPrice:   l.PurchasePrice,
			Subtotal:    l.Subtotal(),
		})
	}

	pdf, err := uc.generator.GenerateReceiptPDF(ctx, receipt)
	if err != nil {
		return nil, "", err
	}
	return pdf, fmt.Sprintf("compra-%s.pdf", supply.ID), nil
}

func (uc *ReceiptUseCase) company(ctx context.Context, companyID string) (*entity.Company, error) {
	company, err := uc.repos.Companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("comprobante: obtener empresa: %w", err)
	}
	if company == nil {
		return nil, domain.NotFound("empresa %s no encontrada", companyID)
	}
	return company, nil
}

// productName nombre del producto; si fue borrado se usa el ID.
func (uc *ReceiptUseCase) productName(ctx context.Context, productID, companyID string) (string, error) {
	p, err := uc.repos.Products.GetByIDAndCompany(ctx, productID, companyID)
	if err != nil {
		return "", fmt.Errorf("comprobante: obtener producto: %w", err)
	}
	if p == nil {
		return productID, nil
	}
	return p.Name, nil
}
