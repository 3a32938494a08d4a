package repository

import (
	"context"

	"github.com/jhoicas/relief-inventory-api/internal/domain/entity"
)

// StockMovementRepository persiste el ledger. Los movimientos son inmutables: no hay Update ni Delete.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	// ListByItem devuelve los movimientos del ítem, más recientes primero.
	ListByItem(ctx context.Context, itemID string, limit, offset int) ([]*entity.StockMovement, error)
}
