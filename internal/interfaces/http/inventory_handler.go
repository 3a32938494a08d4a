package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/relief-inventory-api/internal/application/analytics"
	"github.com/jhoicas/relief-inventory-api/internal/application/dto"
	"github.com/jhoicas/relief-inventory-api/internal/application/inventory"
)

// InventoryHandler maneja las entradas y salidas manuales y el historial de un ítem (protegido).
type InventoryHandler struct {
	uc        *inventory.RegisterMovementUseCase
	dashboard *analytics.DashboardUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.RegisterMovementUseCase, dashboard *analytics.DashboardUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc, dashboard: dashboard}
}

// StockIn godoc
// @Summary      Registrar entrada de stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockRequest  true  "item_id, quantity, reason"
// @Success      201   {object}  dto.StockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/donations/stock/in [post]
func (h *InventoryHandler) StockIn(c *fiber.Ctx) error {
	return h.register(c, entryMessage, h.uc.StockInFromRequest)
}

// StockOut godoc
// @Summary      Registrar salida de stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockRequest  true  "item_id, quantity, reason"
// @Success      201   {object}  dto.StockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/donations/stock/out [post]
func (h *InventoryHandler) StockOut(c *fiber.Ctx) error {
	return h.register(c, exitMessage, h.uc.StockOutFromRequest)
}

const (
	entryMessage = "Entrada registrada"
	exitMessage  = "Salida registrada"
)

type registerFunc func(ctx context.Context, userID string, in dto.StockRequest) (*inventory.MovementResult, error)

func (h *InventoryHandler) register(c *fiber.Ctx, message string, fn registerFunc) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.StockRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	res, err := fn(c.Context(), userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.StockResponse{
		Message:  message,
		Item:     dto.NewItemDTO(res.Item, nil),
		Movement: dto.NewMovementDTO(res.Movement),
	})
}

// History godoc
// @Summary      Historial de movimientos de un ítem
// @Description  Más recientes primero, con el usuario que registró cada movimiento.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        itemId  path   string  true   "ID del ítem"
// @Param        limit   query  int     false  "Máximo de movimientos (por defecto 200)"
// @Success      200  {object}  dto.ItemHistoryDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/donations/stock/history/{itemId} [get]
func (h *InventoryHandler) History(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", analytics.DefaultHistoryLimit)
	out, err := h.dashboard.GetItemHistory(c.Context(), c.Params("itemId"), limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
