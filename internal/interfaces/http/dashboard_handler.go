package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/relief-inventory-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints públicos del tablero de donaciones.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve los totales por ítem, por categoría y generales, más el desglose de lo enviado.
// GET /api/donations/dashboard
//
// Respuesta: DashboardSummaryDTO (totals, categories[items], sent_breakdown, ledger_drift).
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// DownloadPDF devuelve el mismo resumen renderizado como PDF.
// GET /api/donations/dashboard/pdf
func (h *DashboardHandler) DownloadPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.uc.DownloadSummaryPDF(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
