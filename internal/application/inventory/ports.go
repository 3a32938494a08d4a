package inventory

import (
	"context"

	"github.com/jhoicas/relief-inventory-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback; en otro caso Commit. Garantiza atomicidad para el ledger.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		categoryRepo repository.CategoryRepository,
		itemRepo repository.ItemRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}
