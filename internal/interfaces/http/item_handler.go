package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/relief-inventory-api/internal/application/dto"
	"github.com/jhoicas/relief-inventory-api/internal/application/usecase"
)

// ItemHandler maneja las peticiones HTTP de ítems donados (protegido).
type ItemHandler struct {
	uc *usecase.ItemUseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *usecase.ItemUseCase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

// Create godoc
// @Summary      Crear ítem
// @Description  initial_quantity > 0 se registra como entrada "Initial stock" a nombre del usuario del token.
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "Datos del ítem"
// @Success      201   {object}  dto.ItemDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/donations/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar ítems
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.ItemDTO
// @Router       /api/donations/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListByCategory godoc
// @Summary      Ítems agrupados por categoría
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.CategoryWithItemsDTO
// @Router       /api/donations/items/by-category [get]
func (h *ItemHandler) ListByCategory(c *fiber.Ctx) error {
	out, err := h.uc.ListByCategory(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
