package analytics

import (
	"context"
	"time"

	"github.com/jhoicas/relief-inventory-api/internal/application/dto"
)

// SummaryPDFGenerator genera la versión imprimible del resumen del dashboard.
// La implementación vive en infrastructure/pdf (Maroto).
type SummaryPDFGenerator interface {
	GenerateSummaryPDF(ctx context.Context, summary *dto.DashboardSummaryDTO, generatedAt time.Time) ([]byte, error)
}
