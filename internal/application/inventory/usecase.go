package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/relief-inventory-api/internal/domain"
	"github.com/jhoicas/relief-inventory-api/internal/domain/entity"
	"github.com/jhoicas/relief-inventory-api/internal/domain/ledger"
	"github.com/jhoicas/relief-inventory-api/internal/domain/repository"
)

// RegisterMovementUseCase registra entradas y salidas manuales de forma transaccional
// con bloqueo de fila del ítem (SELECT FOR UPDATE) y Commit/Rollback.
type RegisterMovementUseCase struct {
	txRunner TxRunner
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(txRunner TxRunner) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{txRunner: txRunner}
}

// MovementInputDTO entrada para registrar un movimiento del ledger.
// Source vacío equivale a MANUAL; CreatedBy vacío deja el movimiento sin actor.
type MovementInputDTO struct {
	ItemID    string
	Type      string
	Quantity  int
	Reason    string
	Source    string
	CreatedBy string
}

// MovementResult ítem con la cantidad ya actualizada y el movimiento insertado.
type MovementResult struct {
	Item     *entity.Item
	Movement *entity.StockMovement
}

// ApplyMovement valida la entrada, abre una transacción y aplica el movimiento.
// Las salidas manuales siempre verifican stock: OUT mayor al disponible devuelve *domain.InsufficientStockError.
func (uc *RegisterMovementUseCase) ApplyMovement(ctx context.Context, input MovementInputDTO) (*MovementResult, error) {
	if err := validateMovement(&input); err != nil {
		return nil, err
	}
	var result *MovementResult
	err := uc.txRunner.Run(ctx, func(
		_ repository.CategoryRepository,
		itemRepo repository.ItemRepository,
		movRepo repository.StockMovementRepository,
	) error {
		var err error
		result, err = ApplyInTx(ctx, itemRepo, movRepo, input, true)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ApplyInTx es el único camino de escritura del ledger. Usa los repositorios de la transacción del caller:
// bloquea el ítem, verifica stock si enforceStock, inserta el movimiento y actualiza la cantidad en caché.
// Con enforceStock=false una salida puede dejar la cantidad negativa.
func ApplyInTx(
	ctx context.Context,
	itemRepo repository.ItemRepository,
	movRepo repository.StockMovementRepository,
	input MovementInputDTO,
	enforceStock bool,
) (*MovementResult, error) {
	if err := validateMovement(&input); err != nil {
		return nil, err
	}

	// Bloquea la fila del ítem hasta el fin de la transacción
	item, err := itemRepo.GetForUpdate(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}

	if enforceStock && input.Type == entity.MovementTypeOUT && item.CurrentQuantity < input.Quantity {
		return nil, &domain.InsufficientStockError{
			ItemID:    item.ID,
			ItemName:  item.Name,
			Requested: input.Quantity,
			Available: item.CurrentQuantity,
		}
	}

	delta := input.Quantity
	if input.Type == entity.MovementTypeOUT {
		delta = -delta
	}
	if !ledger.WithinRange(item.CurrentQuantity, delta) {
		return nil, fmt.Errorf("%w: %q tiene %d y el movimiento aplica %d",
			domain.ErrQuantityOutOfRange, item.Name, item.CurrentQuantity, delta)
	}

	now := time.Now().UTC()
	mov := &entity.StockMovement{
		ID:        uuid.New().String(),
		ItemID:    item.ID,
		Type:      input.Type,
		Quantity:  input.Quantity,
		Reason:    input.Reason,
		Source:    input.Source,
		CreatedBy: input.CreatedBy,
		CreatedAt: now,
	}
	if err := movRepo.Create(ctx, mov); err != nil {
		return nil, fmt.Errorf("registrar movimiento: %w", err)
	}

	item.Apply(mov)
	item.UpdatedAt = now
	if err := itemRepo.UpdateQuantity(ctx, item.ID, item.CurrentQuantity); err != nil {
		return nil, fmt.Errorf("actualizar cantidad: %w", err)
	}
	return &MovementResult{Item: item, Movement: mov}, nil
}

func validateMovement(input *MovementInputDTO) error {
	input.ItemID = strings.TrimSpace(input.ItemID)
	input.Reason = strings.TrimSpace(input.Reason)
	if input.Source == "" {
		input.Source = entity.MovementSourceManual
	}
	if input.ItemID == "" {
		return fmt.Errorf("%w: item_id es obligatorio", domain.ErrInvalidInput)
	}
	if _, err := uuid.Parse(input.ItemID); err != nil {
		return domain.ErrItemNotFound
	}
	if !entity.ValidMovementType(input.Type) {
		return domain.ErrInvalidMovementType
	}
	if !entity.ValidMovementSource(input.Source) {
		return fmt.Errorf("%w: origen de movimiento desconocido", domain.ErrInvalidInput)
	}
	if input.Quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	if input.Quantity > ledger.MaxQuantity {
		return fmt.Errorf("%w: máximo %d por movimiento", domain.ErrInvalidQuantity, ledger.MaxQuantity)
	}
	return nil
}

// IsInsufficientStock indica si err es una salida rechazada por falta de stock y devuelve el detalle.
func IsInsufficientStock(err error) (*domain.InsufficientStockError, bool) {
	var stockErr *domain.InsufficientStockError
	if errors.As(err, &stockErr) {
		return stockErr, true
	}
	return nil, false
}
