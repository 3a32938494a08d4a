package entity

import (
	"strings"
	"time"
)

// DefaultUnitType unidad por defecto cuando la fila o el request no la indica.
const DefaultUnitType = "pcs"

// Item representa un artículo donado. La identidad para find-or-create es
// (Name, VariantLabel, CategoryID); dos ítems con el mismo nombre y distinta
// variante o categoría son filas distintas.
//
// CurrentQuantity es una proyección del ledger: Σ IN − Σ OUT de sus movimientos.
// Solo el registrador de movimientos la modifica, en la misma transacción que inserta el movimiento.
type Item struct {
	ID              string
	Name            string
	VariantLabel    string // vacío si no tiene variante (ej. "5kg", "500ml")
	Description     string
	UnitType        string // pcs, kg, bottles, ...
	CategoryID      string // vacío si no tiene categoría
	CurrentQuantity int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ItemIdentity clave de identidad de un ítem tal como se busca en el almacenamiento (exacta).
type ItemIdentity struct {
	Name         string
	VariantLabel string
	CategoryID   string
}

// Identity devuelve la identidad exacta del ítem.
func (i *Item) Identity() ItemIdentity {
	return ItemIdentity{Name: i.Name, VariantLabel: i.VariantLabel, CategoryID: i.CategoryID}
}

// Apply aplica el delta del movimiento a la cantidad en caché.
func (i *Item) Apply(m *StockMovement) {
	i.CurrentQuantity += m.Delta()
}

// NormalizeUnitType recorta la unidad y aplica el valor por defecto.
func NormalizeUnitType(unitType string) string {
	u := strings.TrimSpace(unitType)
	if u == "" {
		return DefaultUnitType
	}
	return u
}
