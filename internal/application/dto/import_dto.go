package dto

// ImportResultDTO resultado de una reconciliación masiva (POST /api/uploads/import).
// Si Failure no es nil, la importación se revirtió completa y los contadores describen
// lo que se habría aplicado hasta la fila fallida.
type ImportResultDTO struct {
	Message           string            `json:"message"`
	DryRun            bool              `json:"dry_run"`
	TotalRows         int               `json:"total_rows"`
	ProcessedRows     int               `json:"processed_rows"`
	SkippedRows       int               `json:"skipped_rows"`
	Skipped           []SkippedRowDTO   `json:"skipped,omitempty"`
	CreatedCategories int               `json:"created_categories"`
	CreatedItems      int               `json:"created_items"`
	MovementsIn       int               `json:"movements_in"`
	MovementsOut      int               `json:"movements_out"`
	Failure           *ImportFailureDTO `json:"failure,omitempty"`
}

// SkippedRowDTO fila descartada por datos incompletos. Row es la fila de datos en el archivo
// (1 = primera línea tras la cabecera; las líneas vacías también cuentan).
type SkippedRowDTO struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ImportFailureDTO fila que abortó la importación.
type ImportFailureDTO struct {
	Row       int    `json:"row"`
	ItemName  string `json:"item_name"`
	Requested int    `json:"requested,omitempty"`
	Available int    `json:"available,omitempty"`
	Message   string `json:"message"`
}
