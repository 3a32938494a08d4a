package entity

import "time"

// UncategorizedName nombre del grupo de reporte para ítems sin categoría.
const UncategorizedName = "Uncategorized"

// Category representa una categoría de donaciones (ej. "Dry Rations", "Water").
// El nombre es único (recortado, respetando mayúsculas). Se crea bajo demanda y nunca se elimina.
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
