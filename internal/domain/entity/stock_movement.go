package entity

import "time"

// Tipos de movimiento del ledger (enumeración cerrada).
const (
	MovementTypeIN  = "IN"  // entrada (recibido)
	MovementTypeOUT = "OUT" // salida (distribuido)
)

// Orígenes de un movimiento (enumeración cerrada).
const (
	MovementSourceManual = "MANUAL"
	MovementSourceImport = "IMPORT"
)

// Razones por defecto usadas por los casos de uso.
const (
	ReasonImported     = "Imported from CSV"
	ReasonInitialStock = "Initial stock"
)

// StockMovement representa un evento inmutable de entrada o salida de un ítem.
// Quantity siempre es positiva; el signo lo determina Type.
type StockMovement struct {
	ID        string
	ItemID    string
	Type      string // IN, OUT
	Quantity  int
	Reason    string
	Source    string // MANUAL, IMPORT
	CreatedBy string // UserID; vacío si no hay actor
	CreatedAt time.Time
}

// Delta devuelve el efecto firmado del movimiento sobre la cantidad del ítem.
func (m *StockMovement) Delta() int {
	if m.Type == MovementTypeOUT {
		return -m.Quantity
	}
	return m.Quantity
}

// ValidMovementType indica si t pertenece a la enumeración de tipos.
func ValidMovementType(t string) bool {
	return t == MovementTypeIN || t == MovementTypeOUT
}

// ValidMovementSource indica si s pertenece a la enumeración de orígenes.
func ValidMovementSource(s string) bool {
	return s == MovementSourceManual || s == MovementSourceImport
}
