package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/ledger"
)

// StockHandler consulta el stock disponible de un producto.
type StockHandler struct {
	ledger *ledger.Service
}

// NewStockHandler construye el handler.
func NewStockHandler(svc *ledger.Service) *StockHandler {
	return &StockHandler{ledger: svc}
}

// GetByProduct godoc
// @Summary      Stock de un producto
// @Description  Total disponible (suma de todas las bodegas) y detalle por bodega.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.StockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/stock [get]
func (h *StockHandler) GetByProduct(c *fiber.Ctx) error {
	actor, ok := ActorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := h.ledger.StockLevels(c.UserContext(), actor, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
