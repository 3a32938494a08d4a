// Package ledger contiene las reglas puras del ledger de donaciones
// (servicios de dominio sin acceso a datos).
package ledger

import "strings"

// discreteUnitTypes unidades contables donde normalmente se exige stock suficiente en salidas.
var discreteUnitTypes = map[string]struct{}{
	"pcs": {}, "pieces": {},
	"packs": {}, "pack": {},
	"boxes": {}, "box": {},
	"cards": {}, "card": {},
	"tablets": {}, "tablet": {},
	"bottles": {}, "bottle": {},
}

// IsDiscreteUnit indica si la unidad es contable (pcs, boxes, bottles, ...). No distingue mayúsculas.
func IsDiscreteUnit(unitType string) bool {
	_, ok := discreteUnitTypes[strings.ToLower(strings.TrimSpace(unitType))]
	return ok
}

// RequiresStockCheck decide si una salida (OUT) importada debe verificar stock.
//
// Se verifica solo cuando la unidad del ítem es discreta y el ítem no está exento.
// Exenciones: té en polvo ("tea powder" o exactamente "tea"), panadol, leche en polvo
// y cualquier ítem de la categoría "sanitary and diapers". Las unidades continuas
// (kg, litros, ...) nunca se verifican.
func RequiresStockCheck(unitType, itemName, categoryName string) bool {
	if !IsDiscreteUnit(unitType) {
		return false
	}
	return !IsStockCheckExempt(itemName, categoryName)
}

// IsStockCheckExempt aplica la tabla de exenciones por nombre de ítem y categoría.
func IsStockCheckExempt(itemName, categoryName string) bool {
	name := strings.ToLower(strings.TrimSpace(itemName))
	cat := strings.ToLower(strings.TrimSpace(categoryName))

	switch {
	case strings.Contains(name, "tea powder") || name == "tea":
		return true
	case strings.Contains(name, "panadol"):
		return true
	case strings.Contains(name, "milk powder"):
		return true
	case strings.Contains(cat, "sanitary and diapers"):
		return true
	}
	return false
}
