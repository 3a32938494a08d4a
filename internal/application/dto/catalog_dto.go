package dto

import (
	"time"

	"github.com/jhoicas/relief-inventory-api/internal/domain/entity"
)

// CreateCategoryRequest body para POST /api/donations/categories.
type CreateCategoryRequest struct {
	Name string `json:"name"`
}

// CreateItemRequest body para POST /api/donations/items.
// InitialQuantity > 0 se registra como una entrada "Initial stock".
type CreateItemRequest struct {
	Name            string `json:"name"`
	VariantLabel    string `json:"variant_label,omitempty"`
	Description     string `json:"description,omitempty"`
	UnitType        string `json:"unit_type,omitempty"`
	CategoryID      string `json:"category_id,omitempty"`
	InitialQuantity int    `json:"initial_quantity,omitempty"`
}

// CategoryDTO categoría en respuestas HTTP.
type CategoryDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryRefDTO referencia embebida de categoría dentro de un ítem.
type CategoryRefDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ItemDTO ítem en respuestas HTTP. Category solo se completa en listados.
type ItemDTO struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	VariantLabel    *string         `json:"variant_label"`
	Description     *string         `json:"description"`
	UnitType        string          `json:"unit_type"`
	CategoryID      *string         `json:"category_id"`
	CurrentQuantity int             `json:"current_quantity"`
	Category        *CategoryRefDTO `json:"category,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// CategoryWithItemsDTO elemento de GET /api/donations/items/by-category.
type CategoryWithItemsDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	Items     []ItemDTO `json:"items"`
}

// NewCategoryDTO convierte la entidad.
func NewCategoryDTO(c *entity.Category) CategoryDTO {
	return CategoryDTO{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}

// NewItemDTO convierte la entidad; category puede ser nil.
func NewItemDTO(i *entity.Item, category *entity.Category) ItemDTO {
	out := ItemDTO{
		ID:              i.ID,
		Name:            i.Name,
		VariantLabel:    nullable(i.VariantLabel),
		Description:     nullable(i.Description),
		UnitType:        i.UnitType,
		CategoryID:      nullable(i.CategoryID),
		CurrentQuantity: i.CurrentQuantity,
		CreatedAt:       i.CreatedAt,
		UpdatedAt:       i.UpdatedAt,
	}
	if category != nil {
		out.Category = &CategoryRefDTO{ID: category.ID, Name: category.Name}
	}
	return out
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
