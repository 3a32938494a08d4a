package inventory

import (
	"context"

	"github.com/jhoicas/relief-inventory-api/internal/application/dto"
	"github.com/jhoicas/relief-inventory-api/internal/domain/entity"
)

// StockInFromRequest adapta el request HTTP de entrada manual a ApplyMovement.
func (uc *RegisterMovementUseCase) StockInFromRequest(ctx context.Context, userID string, in dto.StockRequest) (*MovementResult, error) {
	return uc.ApplyMovement(ctx, fromRequest(entity.MovementTypeIN, userID, in))
}

// StockOutFromRequest adapta el request HTTP de salida manual a ApplyMovement.
func (uc *RegisterMovementUseCase) StockOutFromRequest(ctx context.Context, userID string, in dto.StockRequest) (*MovementResult, error) {
	return uc.ApplyMovement(ctx, fromRequest(entity.MovementTypeOUT, userID, in))
}

func fromRequest(movType, userID string, in dto.StockRequest) MovementInputDTO {
	return MovementInputDTO{
		ItemID:    in.ItemID,
		Type:      movType,
		Quantity:  in.Quantity,
		Reason:    in.Reason,
		Source:    entity.MovementSourceManual,
		CreatedBy: userID,
	}
}
