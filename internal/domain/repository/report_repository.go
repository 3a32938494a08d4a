package repository

import (
	"context"

	"github.com/jhoicas/relief-inventory-api/internal/domain/entity"
)

// ItemTotalsResult resultado crudo por ítem: cantidad en caché y totales derivados del ledger.
// Lo produce el almacenamiento; el use case lo agrupa en el resumen del dashboard.
type ItemTotalsResult struct {
	ItemID          string
	ItemName        string
	VariantLabel    string
	UnitType        string
	CategoryID      string // vacío si no tiene categoría
	CategoryName    string // vacío si no tiene categoría
	CurrentQuantity int
	TotalReceived   int // Σ IN
	TotalSent       int // Σ OUT
}

// MovementHistoryResult movimiento con la atribución del usuario que lo registró.
type MovementHistoryResult struct {
	Movement   *entity.StockMovement
	ActorName  string
	ActorEmail string
}

// LedgerReportRepository consultas de solo lectura para reportes.
// Cada método lee una instantánea consistente.
type LedgerReportRepository interface {
	// GetItemTotals devuelve una fila por ítem con totales IN/OUT.
	GetItemTotals(ctx context.Context) ([]ItemTotalsResult, error)

	// GetItemHistory devuelve el ítem y hasta limit movimientos, más recientes primero.
	// limit <= 0 significa sin límite. Devuelve domain.ErrItemNotFound si el ítem no existe.
	GetItemHistory(ctx context.Context, itemID string, limit int) (*entity.Item, []MovementHistoryResult, error)
}
