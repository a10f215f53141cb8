package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/ledger"
)

// SupplyHandler maneja las compras (entradas de mercancía). Protegido.
type SupplyHandler struct {
	ledger   *ledger.Service
	receipts *ledger.ReceiptUseCase
}

// NewSupplyHandler construye el handler.
func NewSupplyHandler(svc *ledger.Service, receipts *ledger.ReceiptUseCase) *SupplyHandler {
	return &SupplyHandler{ledger: svc, receipts: receipts}
}

// Create godoc
// @Summary      Registrar compra
// @Description  Suma el stock de cada línea en su bodega y captura el precio de compra vigente. Todo o nada.
// @Tags         supplies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSupplyRequest  true  "Proveedor, fecha de entrega y líneas"
// @Success      201   {object}  dto.SupplyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/supplies [post]
func (h *SupplyHandler) Create(c *fiber.Ctx) error {
	actor, ok := ActorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.CreateSupplyRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.ledger.ApplySupply(c.UserContext(), actor, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener compra por ID
// @Tags         supplies
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la compra"
// @Success      200  {object}  dto.SupplyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/supplies/{id} [get]
func (h *SupplyHandler) GetByID(c *fiber.Ctx) error {
	actor, ok := ActorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := h.ledger.GetSupply(c.UserContext(), actor, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar compras
// @Tags         supplies
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.SupplyListResponse
// @Router       /api/supplies [get]
func (h *SupplyHandler) List(c *fiber.Ctx) error {
	actor, ok := ActorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.ledger.ListSupplies(c.UserContext(), actor, c.QueryInt("limit", 20), c.QueryInt("offset", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar compra
// @Description  Con LEDGER_REVERSE_SUPPLY_ON_DELETE=true descuenta el stock recibido; si ya se consumió responde 409.
// @Tags         supplies
// @Security     Bearer
// @Param        id   path  string  true  "ID de la compra"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/supplies/{id} [delete]
func (h *SupplyHandler) Delete(c *fiber.Ctx) error {
	actor, ok := ActorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	if err := h.ledger.DeleteSupply(c.UserContext(), actor, id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PDF godoc
// @Summary      Nota de entrada en PDF
// @Tags         supplies
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la compra"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/supplies/{id}/pdf [get]
func (h *SupplyHandler) PDF(c *fiber.Ctx) error {
	actor, ok := ActorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	pdf, filename, err := h.receipts.SupplyReceipt(c.UserContext(), actor, id)
	if err != nil {
		return writeError(c, err)
	}
	return sendPDF(c, pdf, filename)
}
