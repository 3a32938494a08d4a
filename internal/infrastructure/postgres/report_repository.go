package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/relief-inventory-api/internal/domain/entity"
	"github.com/jhoicas/relief-inventory-api/internal/domain/repository"
)

var _ repository.LedgerReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para el dashboard y el historial.
// Usa el pool directamente: cada reporte es una sentencia única o una tx REPEATABLE READ de solo lectura.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// GetItemTotals una fila por ítem con Σ IN y Σ OUT, en una sola sentencia (instantánea consistente).
func (r *ReportRepo) GetItemTotals(ctx context.Context) ([]repository.ItemTotalsResult, error) {
	query := `
		SELECT
			i.id,
			i.name,
			COALESCE(i.variant_label, '')  AS variant_label,
			i.unit_type,
			COALESCE(c.id::text, '')        AS category_id,
			COALESCE(c.name, '')            AS category_name,
			i.current_quantity,
			COALESCE(SUM(m.quantity) FILTER (WHERE m.type = 'IN'), 0)  AS total_in,
			COALESCE(SUM(m.quantity) FILTER (WHERE m.type = 'OUT'), 0) AS total_out
		FROM items i
		LEFT JOIN categories c ON c.id = i.category_id
		LEFT JOIN stock_movements m ON m.item_id = i.id
		GROUP BY i.id, c.id
		ORDER BY i.name ASC, i.variant_label ASC NULLS FIRST, i.id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, translate("totales por ítem", err)
	}
	defer rows.Close()

	results := []repository.ItemTotalsResult{}
	for rows.Next() {
		var (
			res             repository.ItemTotalsResult
			totalIn, totOut int64
		)
		if err := rows.Scan(
			&res.ItemID, &res.ItemName, &res.VariantLabel, &res.UnitType,
			&res.CategoryID, &res.CategoryName, &res.CurrentQuantity, &totalIn, &totOut,
		); err != nil {
			return nil, translate("leer totales", err)
		}
		res.TotalReceived = int(totalIn)
		res.TotalSent = int(totOut)
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, translate("totales por ítem", err)
	}
	return results, nil
}

// GetItemHistory lee el ítem y sus movimientos con el actor en una tx REPEATABLE READ de solo lectura,
// para que ambos correspondan a la misma instantánea.
func (r *ReportRepo) GetItemHistory(ctx context.Context, itemID string, limit int) (*entity.Item, []repository.MovementHistoryResult, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	item, err := NewItemRepository(tx).GetByID(ctx, itemID)
	if err != nil {
		return nil, nil, err
	}

	if limit < 0 {
		limit = 0
	}
	query := `
		SELECT m.id, m.item_id, m.type, m.quantity, m.reason, m.source, m.created_by, m.created_at,
		       COALESCE(u.full_name, ''), COALESCE(u.email, '')
		FROM stock_movements m
		LEFT JOIN users u ON u.id = m.created_by
		WHERE m.item_id = $1
		ORDER BY m.created_at DESC, m.id DESC
		LIMIT NULLIF($2, 0)`
	rows, err := tx.Query(ctx, query, itemID, limit)
	if err != nil {
		return nil, nil, translate("historial del ítem", err)
	}
	defer rows.Close()

	history := []repository.MovementHistoryResult{}
	for rows.Next() {
		var (
			m                 entity.StockMovement
			reason, createdBy *string
			h                 repository.MovementHistoryResult
		)
		if err := rows.Scan(&m.ID, &m.ItemID, &m.Type, &m.Quantity, &reason, &m.Source, &createdBy,
			&m.CreatedAt, &h.ActorName, &h.ActorEmail); err != nil {
			return nil, nil, translate("leer historial", err)
		}
		m.Reason = fromNull(reason)
		m.CreatedBy = fromNull(createdBy)
		h.Movement = &m
		history = append(history, h)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, translate("historial del ítem", err)
	}
	return item, history, nil
}
