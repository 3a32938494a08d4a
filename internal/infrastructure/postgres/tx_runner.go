package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/relief-inventory-api/internal/application/inventory"
	"github.com/jhoicas/relief-inventory-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL READ COMMITTED.
// Los bloqueos de fila (SELECT ... FOR UPDATE) los toma cada repositorio.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Deadlocks y fallos de serialización se devuelven como domain.ErrConflict.
func (r *TxRunner) Run(ctx context.Context, fn func(
	categoryRepo repository.CategoryRepository,
	itemRepo repository.ItemRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewCategoryRepository(tx), NewItemRepository(tx), NewStockMovementRepository(tx)); err != nil {
		if isConcurrencyConflict(err) {
			return translate("transacción", err)
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return translate("commit transaction", err)
	}
	return nil
}
