package ledger

import (
	"regexp"
	"strconv"
)

var kgPattern = regexp.MustCompile(`(?i)(\d+)\s*kg`)

// KgPerUnit extrae los kilogramos por unidad de una etiqueta de variante libre
// ("5kg", "10 KG bag"). Toma el primer entero seguido de "kg".
// Devuelve 0 si la etiqueta está vacía, no coincide o el número no cabe en un int.
func KgPerUnit(variantLabel string) int {
	if variantLabel == "" {
		return 0
	}
	m := kgPattern.FindStringSubmatch(variantLabel)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}
