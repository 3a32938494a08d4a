package dto

// DashboardSummaryDTO respuesta de GET /api/donations/dashboard.
// Totales generales, desglose por categoría (ordenado por nombre) y lo enviado en unidades físicas.
type DashboardSummaryDTO struct {
	Totals        DashboardTotalsDTO    `json:"totals"`
	Categories    []CategorySummaryDTO  `json:"categories"`
	SentBreakdown SentBreakdownDTO      `json:"sent_breakdown"`
	Drift         LedgerDriftSummaryDTO `json:"ledger_drift"`
}

// DashboardTotalsDTO totales sobre todos los ítems.
type DashboardTotalsDTO struct {
	TotalItems            int `json:"total_items"`
	TotalQuantityCurrent  int `json:"total_quantity_current"`
	TotalQuantityReceived int `json:"total_quantity_received"` // Σ IN
	TotalQuantitySent     int `json:"total_quantity_sent"`     // Σ OUT (unidades crudas)
}

// CategorySummaryDTO agregado de una categoría. ID es null para "Uncategorized".
type CategorySummaryDTO struct {
	ID                    *string          `json:"id"`
	Name                  string           `json:"name"`
	TotalQuantityCurrent  int              `json:"total_quantity_current"`
	TotalQuantityReceived int              `json:"total_quantity_received"`
	TotalQuantitySent     int              `json:"total_quantity_sent"`
	Items                 []ItemSummaryDTO `json:"items"`
}

// ItemSummaryDTO totales de un ítem. LedgerDrift = actual − (recibido − enviado); 0 si el caché es coherente.
type ItemSummaryDTO struct {
	ID                    string  `json:"id"`
	Name                  string  `json:"name"`
	VariantLabel          *string `json:"variant_label"`
	UnitType              string  `json:"unit_type"`
	CurrentQuantity       int     `json:"current_quantity"`
	TotalQuantityReceived int     `json:"total_quantity_received"`
	TotalQuantitySent     int     `json:"total_quantity_sent"`
	LedgerDrift           int     `json:"ledger_drift"`
}

// SentBreakdownDTO lo distribuido expresado en kg, botellas y piezas.
type SentBreakdownDTO struct {
	RiceKgSent          int `json:"rice_kg_sent"`
	DhalKgSent          int `json:"dhal_kg_sent"`
	SaltKgSent          int `json:"salt_kg_sent"`
	SugarKgSent         int `json:"sugar_kg_sent"`
	WaterBottlesSent    int `json:"water_bottles_sent"`
	OtherEssentialsSent int `json:"other_essentials_sent"`
}

// LedgerDriftSummaryDTO cantidad de ítems cuyo caché no coincide con el ledger.
type LedgerDriftSummaryDTO struct {
	ItemsWithDrift int `json:"items_with_drift"`
}

// ItemHistoryDTO respuesta de GET /api/donations/stock/history/:itemId.
type ItemHistoryDTO struct {
	Item      ItemDTO              `json:"item"`
	Movements []MovementHistoryDTO `json:"movements"`
}

// MovementHistoryDTO movimiento con el usuario que lo registró (null si no hubo actor).
type MovementHistoryDTO struct {
	MovementDTO
	CreatedByUser *ActorDTO `json:"createdBy"`
}

// ActorDTO atribución mínima de un movimiento.
type ActorDTO struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}
