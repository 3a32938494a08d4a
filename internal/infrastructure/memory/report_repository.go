package memory

import (
	"context"

	"github.com/jhoicas/relief-inventory-api/internal/domain"
	"github.com/jhoicas/relief-inventory-api/internal/domain/entity"
	"github.com/jhoicas/relief-inventory-api/internal/domain/repository"
)

var _ repository.LedgerReportRepository = (*ReportRepo)(nil)

// ReportRepo LedgerReportRepository en memoria. Cada consulta lee bajo el lock de lectura.
type ReportRepo struct {
	s *Store
}

func (r *ReportRepo) GetItemTotals(_ context.Context) ([]repository.ItemTotalsResult, error) {
	var out []repository.ItemTotalsResult
	err := r.s.read(false, func(st *state) error {
		type totals struct{ in, out int }
		byItem := make(map[string]totals, len(st.items))
		for _, m := range st.movements {
			t := byItem[m.ItemID]
			if m.Type == entity.MovementTypeOUT {
				t.out += m.Quantity
			} else {
				t.in += m.Quantity
			}
			byItem[m.ItemID] = t
		}

		items := sortedItems(st, func(*entity.Item) bool { return true })
		out = make([]repository.ItemTotalsResult, 0, len(items))
		for _, it := range items {
			row := repository.ItemTotalsResult{
				ItemID:          it.ID,
				ItemName:        it.Name,
				VariantLabel:    it.VariantLabel,
				UnitType:        it.UnitType,
				CategoryID:      it.CategoryID,
				CurrentQuantity: it.CurrentQuantity,
				TotalReceived:   byItem[it.ID].in,
				TotalSent:       byItem[it.ID].out,
			}
			if c, ok := st.categories[it.CategoryID]; ok {
				row.CategoryName = c.Name
			}
			out = append(out, row)
		}
		return nil
	})
	return out, err
}

func (r *ReportRepo) GetItemHistory(_ context.Context, itemID string, limit int) (*entity.Item, []repository.MovementHistoryResult, error) {
	var (
		item    *entity.Item
		history []repository.MovementHistoryResult
	)
	err := r.s.read(false, func(st *state) error {
		it, ok := st.items[itemID]
		if !ok {
			return domain.ErrItemNotFound
		}
		cp := *it
		item = &cp

		movs := movementsNewestFirst(st, itemID, limit, 0)
		history = make([]repository.MovementHistoryResult, 0, len(movs))
		for _, m := range movs {
			h := repository.MovementHistoryResult{Movement: m}
			if u, ok := st.users[m.CreatedBy]; ok {
				h.ActorName = u.Name
				h.ActorEmail = u.Email
			}
			history = append(history, h)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return item, history, nil
}
