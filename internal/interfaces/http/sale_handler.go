package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/ledger"
)

// SaleHandler maneja las ventas. Protegido.
type SaleHandler struct {
	ledger   *ledger.Service
	receipts *ledger.ReceiptUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(svc *ledger.Service, receipts *ledger.ReceiptUseCase) *SaleHandler {
	return &SaleHandler{ledger: svc, receipts: receipts}
}

// Create godoc
// @Summary      Registrar venta
// @Description  Descuenta el stock de cada producto recorriendo sus bodegas en orden (FIFO por fila). Todo o nada.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Comprador, fecha y líneas"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "Stock insuficiente o producto repetido"
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	actor, ok := ActorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.CreateSaleRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.ledger.ApplySale(c.UserContext(), actor, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener venta por ID
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	actor, ok := ActorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := h.ledger.GetSale(c.UserContext(), actor, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar ventas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.SaleListResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	actor, ok := ActorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.ledger.ListSales(c.UserContext(), actor, c.QueryInt("limit", 20), c.QueryInt("offset", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar cabecera de venta
// @Description  Solo comprador y fecha; las líneas y el stock no cambian.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la venta"
// @Param        body  body  dto.UpdateSaleRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [patch]
func (h *SaleHandler) Update(c *fiber.Ctx) error {
	actor, ok := ActorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in dto.UpdateSaleRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.ledger.UpdateSale(c.UserContext(), actor, id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar venta
// @Description  Devuelve las cantidades vendidas al stock según LEDGER_SALE_RETURN_POLICY.
// @Tags         sales
// @Security     Bearer
// @Param        id   path  string  true  "ID de la venta"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [delete]
func (h *SaleHandler) Delete(c *fiber.Ctx) error {
	actor, ok := ActorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	if err := h.ledger.DeleteSale(c.UserContext(), actor, id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PDF godoc
// @Summary      Comprobante de venta en PDF
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/pdf [get]
func (h *SaleHandler) PDF(c *fiber.Ctx) error {
	actor, ok := ActorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	pdf, filename, err := h.receipts.SaleReceipt(c.UserContext(), actor, id)
	if err != nil {
		return writeError(c, err)
	}
	return sendPDF(c, pdf, filename)
}
