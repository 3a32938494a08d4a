package inventory

import (
	"sort"
	"strings"

	"github.com/jhoicas/relief-inventory-api/internal/domain/entity"
	"github.com/jhoicas/relief-inventory-api/internal/domain/ledger"
)

// ImportRow fila de importación ya normalizada.
type ImportRow struct {
	CategoryName string
	ItemName     string
	UnitType     string
	VariantLabel string
	Description  string
	Reason       string
	MovementType string
	Quantity     int
	QuantityOK   bool
}

// NormalizeRecord normaliza las claves (trim + minúsculas) y aplica los valores por defecto.
// Si dos claves colisionan tras normalizar gana el primer valor no vacío en orden de clave original.
// "qty" es alias de "quantity"; movement_type "OUT" (sin distinguir mayúsculas) es salida y cualquier otro valor es entrada.
func NormalizeRecord(record map[string]string) ImportRow {
	raw := make([]string, 0, len(record))
	for k := range record {
		raw = append(raw, k)
	}
	sort.Strings(raw)

	fields := make(map[string]string, len(record))
	for _, k := range raw {
		nk := strings.ToLower(strings.TrimSpace(k))
		v := strings.TrimSpace(record[k])
		if cur, ok := fields[nk]; ok && cur != "" {
			continue
		}
		fields[nk] = v
	}

	row := ImportRow{
		CategoryName: fields["category_name"],
		ItemName:     fields["item_name"],
		UnitType:     entity.NormalizeUnitType(fields["unit_type"]),
		VariantLabel: fields["variant_label"],
		Description:  fields["description"],
		Reason:       fields["reason"],
		MovementType: entity.MovementTypeIN,
	}
	if row.Reason == "" {
		row.Reason = entity.ReasonImported
	}
	if strings.EqualFold(fields["movement_type"], entity.MovementTypeOUT) {
		row.MovementType = entity.MovementTypeOUT
	}

	qty := fields["quantity"]
	if qty == "" {
		qty = fields["qty"]
	}
	row.Quantity, row.QuantityOK = ledger.ParseQuantity(qty)
	return row
}

// SkipReason devuelve por qué la fila se omite, o "" si es procesable.
func (r ImportRow) SkipReason() string {
	switch {
	case r.CategoryName == "":
		return "category_name vacío"
	case r.ItemName == "":
		return "item_name vacío"
	case !r.QuantityOK:
		return "quantity inválida, no positiva o mayor que el máximo admitido"
	}
	return ""
}
