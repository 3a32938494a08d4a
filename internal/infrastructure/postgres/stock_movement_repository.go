package postgres

import (
	"context"

	"github.com/jhoicas/relief-inventory-api/internal/domain/entity"
	"github.com/jhoicas/relief-inventory-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo persiste stock_movements (append-only).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `id, item_id, type, quantity, reason, source, created_by, created_at`

func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, item_id, type, quantity, reason, source, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ItemID, m.Type, m.Quantity, nullString(m.Reason), m.Source, nullString(m.CreatedBy), m.CreatedAt,
	)
	return translate("registrar movimiento", err)
}

// ListByItem devuelve los movimientos del ítem, más recientes primero. limit <= 0 sin límite.
func (r *StockMovementRepo) ListByItem(ctx context.Context, itemID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements
		WHERE item_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT NULLIF($2, 0) OFFSET $3`
	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.q.Query(ctx, query, itemID, limit, offset)
	if err != nil {
		return nil, translate("listar movimientos", err)
	}
	defer rows.Close()

	list := []*entity.StockMovement{}
	for rows.Next() {
		var (
			m                 entity.StockMovement
			reason, createdBy *string
		)
		if err := rows.Scan(&m.ID, &m.ItemID, &m.Type, &m.Quantity, &reason, &m.Source, &createdBy, &m.CreatedAt); err != nil {
			return nil, translate("leer movimiento", err)
		}
		m.Reason = fromNull(reason)
		m.CreatedBy = fromNull(createdBy)
		list = append(list, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, translate("listar movimientos", err)
	}
	return list, nil
}
