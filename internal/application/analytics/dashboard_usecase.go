// Package analytics contiene los casos de uso de reportes del ledger:
// resumen del dashboard, historial por ítem y su versión en PDF.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/relief-inventory-api/internal/application/dto"
	"github.com/jhoicas/relief-inventory-api/internal/domain"
	"github.com/jhoicas/relief-inventory-api/internal/domain/entity"
	"github.com/jhoicas/relief-inventory-api/internal/domain/ledger"
	"github.com/jhoicas/relief-inventory-api/internal/domain/repository"
)

// DefaultHistoryLimit movimientos por defecto en el historial de un ítem.
const DefaultHistoryLimit = 200

// DashboardUseCase genera el resumen del inventario y el historial de movimientos.
//
// Fuente de datos: LedgerReportRepository (consultas read-only sobre una instantánea).
// Los totales recibidos/enviados salen del ledger; la cantidad actual, del caché del ítem.
type DashboardUseCase struct {
	reportRepo repository.LedgerReportRepository
	pdf        SummaryPDFGenerator
}

// NewDashboardUseCase construye el caso de uso. pdf puede ser nil si no se expone la descarga.
func NewDashboardUseCase(reportRepo repository.LedgerReportRepository, pdf SummaryPDFGenerator) *DashboardUseCase {
	return &DashboardUseCase{reportRepo: reportRepo, pdf: pdf}
}

// GetSummary construye el DashboardSummaryDTO:
//  1. totales por ítem (una sola consulta)
//  2. agrupación por categoría; los ítems sin categoría van a "Uncategorized"
//  3. totales generales, desglose de lo enviado y ítems con deriva entre caché y ledger
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	rows, err := uc.reportRepo.GetItemTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: totales por ítem: %w", err)
	}

	var (
		totals    dto.DashboardTotalsDTO
		breakdown ledger.SentBreakdown
		drift     int
	)
	groups := make(map[string]*dto.CategorySummaryDTO)

	for _, r := range rows {
		totals.TotalItems++
		totals.TotalQuantityCurrent += r.CurrentQuantity
		totals.TotalQuantityReceived += r.TotalReceived
		totals.TotalQuantitySent += r.TotalSent

		categoryName := r.CategoryName
		if r.CategoryID == "" {
			categoryName = entity.UncategorizedName
		}
		g, ok := groups[r.CategoryID]
		if !ok {
			g = &dto.CategorySummaryDTO{Name: categoryName, Items: []dto.ItemSummaryDTO{}}
			if r.CategoryID != "" {
				id := r.CategoryID
				g.ID = &id
			}
			groups[r.CategoryID] = g
		}
		g.TotalQuantityCurrent += r.CurrentQuantity
		g.TotalQuantityReceived += r.TotalReceived
		g.TotalQuantitySent += r.TotalSent

		itemDrift := r.CurrentQuantity - (r.TotalReceived - r.TotalSent)
		if itemDrift != 0 {
			drift++
		}
		var variant *string
		if r.VariantLabel != "" {
			v := r.VariantLabel
			variant = &v
		}
		g.Items = append(g.Items, dto.ItemSummaryDTO{
			ID:                    r.ItemID,
			Name:                  r.ItemName,
			VariantLabel:          variant,
			UnitType:              r.UnitType,
			CurrentQuantity:       r.CurrentQuantity,
			TotalQuantityReceived: r.TotalReceived,
			TotalQuantitySent:     r.TotalSent,
			LedgerDrift:           itemDrift,
		})

		breakdown.Add(r.ItemName, categoryName, r.VariantLabel, r.TotalSent)
	}

	categories := make([]dto.CategorySummaryDTO, 0, len(groups))
	for _, g := range groups {
		categories = append(categories, *g)
	}
	sort.Slice(categories, func(i, j int) bool {
		a, b := strings.ToLower(categories[i].Name), strings.ToLower(categories[j].Name)
		if a != b {
			return a < b
		}
		return categories[i].Name < categories[j].Name
	})

	return &dto.DashboardSummaryDTO{
		Totals:     totals,
		Categories: categories,
		SentBreakdown: dto.SentBreakdownDTO{
			RiceKgSent:          breakdown.RiceKg,
			DhalKgSent:          breakdown.DhalKg,
			SaltKgSent:          breakdown.SaltKg,
			SugarKgSent:         breakdown.SugarKg,
			WaterBottlesSent:    breakdown.WaterBottles,
			OtherEssentialsSent: breakdown.OtherEssentials,
		},
		Drift: dto.LedgerDriftSummaryDTO{ItemsWithDrift: drift},
	}, nil
}

// GetItemHistory devuelve el ítem y sus movimientos más recientes primero, con el actor de cada uno.
// limit <= 0 usa DefaultHistoryLimit.
func (uc *DashboardUseCase) GetItemHistory(ctx context.Context, itemID string, limit int) (*dto.ItemHistoryDTO, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	itemID = strings.TrimSpace(itemID)
	if _, err := uuid.Parse(itemID); err != nil {
		return nil, domain.ErrItemNotFound
	}
	item, history, err := uc.reportRepo.GetItemHistory(ctx, itemID, limit)
	if err != nil {
		return nil, err
	}
	out := &dto.ItemHistoryDTO{
		Item:      dto.NewItemDTO(item, nil),
		Movements: make([]dto.MovementHistoryDTO, 0, len(history)),
	}
	for _, h := range history {
		m := dto.MovementHistoryDTO{MovementDTO: dto.NewMovementDTO(h.Movement)}
		if h.Movement.CreatedBy != "" {
			m.CreatedByUser = &dto.ActorDTO{ID: h.Movement.CreatedBy, FullName: h.ActorName, Email: h.ActorEmail}
		}
		out.Movements = append(out.Movements, m)
	}
	return out, nil
}

// DownloadSummaryPDF genera el resumen y lo renderiza como PDF.
// Retorna los bytes y un nombre de archivo con la fecha, ej: "resumen-inventario-2026-03-01.pdf".
func (uc *DashboardUseCase) DownloadSummaryPDF(ctx context.Context) (pdfBytes []byte, filename string, err error) {
	if uc.pdf == nil {
		return nil, "", fmt.Errorf("dashboard: generador de PDF no configurado")
	}
	summary, err := uc.GetSummary(ctx)
	if err != nil {
		return nil, "", err
	}
	now := time.Now()
	pdfBytes, err = uc.pdf.GenerateSummaryPDF(ctx, summary, now)
	if err != nil {
		return nil, "", fmt.Errorf("dashboard: generar PDF: %w", err)
	}
	return pdfBytes, fmt.Sprintf("resumen-inventario-%s.pdf", now.Format("2006-01-02")), nil
}
