package dto

import (
	"time"

	"github.com/jhoicas/relief-inventory-api/internal/domain/entity"
)

// StockRequest body para POST /api/donations/stock/in y /stock/out.
type StockRequest struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
	Reason   string `json:"reason,omitempty"`
}

// MovementDTO movimiento del ledger en respuestas HTTP.
type MovementDTO struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"item_id"`
	Type      string    `json:"type"`
	Quantity  int       `json:"quantity"`
	Reason    *string   `json:"reason"`
	Source    string    `json:"source"`
	CreatedBy *string   `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// StockResponse respuesta de una entrada o salida manual.
type StockResponse struct {
	Message  string      `json:"message"`
	Item     ItemDTO     `json:"item"`
	Movement MovementDTO `json:"movement"`
}

// NewMovementDTO convierte la entidad; los campos vacíos se serializan como null.
func NewMovementDTO(m *entity.StockMovement) MovementDTO {
	return MovementDTO{
		ID:        m.ID,
		ItemID:    m.ItemID,
		Type:      m.Type,
		Quantity:  m.Quantity,
		Reason:    nullable(m.Reason),
		Source:    m.Source,
		CreatedBy: nullable(m.CreatedBy),
		CreatedAt: m.CreatedAt,
	}
}
