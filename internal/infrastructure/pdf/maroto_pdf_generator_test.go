package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/relief-inventory-api/internal/application/dto"
)

func TestFormatQty(t *testing.T) {
	assert.Equal(t, "0", formatQty(0))
	assert.Equal(t, "999", formatQty(999))
	assert.Equal(t, "25.000", formatQty(25000))
	assert.Equal(t, "1.000.000", formatQty(1000000))
	assert.Equal(t, "-1.200", formatQty(-1200))
	assert.Equal(t, "-5", formatQty(-5))
}

func TestGenerateSummaryPDF(t *testing.T) {
	variant := "5kg"
	categoryID := "c1"
	summary := &dto.DashboardSummaryDTO{
		Totals: dto.DashboardTotalsDTO{TotalItems: 1, TotalQuantityCurrent: 7, TotalQuantityReceived: 10, TotalQuantitySent: 3},
		Categories: []dto.CategorySummaryDTO{{
			ID: &categoryID, Name: "Dry Rations",
			TotalQuantityCurrent: 7, TotalQuantityReceived: 10, TotalQuantitySent: 3,
			Items: []dto.ItemSummaryDTO{{
				ID: "i1", Name: "Rice", VariantLabel: &variant, UnitType: "pcs",
				CurrentQuantity: 7, TotalQuantityReceived: 10, TotalQuantitySent: 3,
			}},
		}},
		SentBreakdown: dto.SentBreakdownDTO{RiceKgSent: 15},
	}

	data, err := NewMarotoPDFGenerator("").GenerateSummaryPDF(context.Background(), summary, time.Now())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}
