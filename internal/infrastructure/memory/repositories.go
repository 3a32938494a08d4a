package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/relief-inventory-api/internal/domain"
	"github.com/jhoicas/relief-inventory-api/internal/domain/entity"
	"github.com/jhoicas/relief-inventory-api/internal/domain/repository"
)

var (
	_ repository.CategoryRepository      = (*CategoryRepo)(nil)
	_ repository.ItemRepository          = (*ItemRepo)(nil)
	_ repository.StockMovementRepository = (*MovementRepo)(nil)
	_ repository.UserRepository          = (*UserRepo)(nil)
)

// ── Categorías ───────────────────────────────────────────────────────────────

// CategoryRepo CategoryRepository en memoria.
type CategoryRepo struct {
	s    *Store
	inTx bool
}

func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	return r.s.write(r.inTx, func(st *state) error {
		if findCategoryByName(st, c.Name) != nil {
			return domain.ErrDuplicate
		}
		insertCategory(st, c)
		return nil
	})
}

func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	var out *entity.Category
	err := r.s.read(r.inTx, func(st *state) error {
		c, ok := st.categories[id]
		if !ok {
			return domain.ErrCategoryNotFound
		}
		cp := *c
		out = &cp
		return nil
	})
	return out, err
}

func (r *CategoryRepo) GetByName(_ context.Context, name string) (*entity.Category, error) {
	var out *entity.Category
	err := r.s.read(r.inTx, func(st *state) error {
		c := findCategoryByName(st, name)
		if c == nil {
			return domain.ErrCategoryNotFound
		}
		cp := *c
		out = &cp
		return nil
	})
	return out, err
}

func (r *CategoryRepo) FindOrCreate(_ context.Context, name string) (*entity.Category, bool, error) {
	var (
		out     *entity.Category
		created bool
	)
	err := r.s.write(r.inTx, func(st *state) error {
		c := findCategoryByName(st, name)
		if c == nil {
			now := time.Now().UTC()
			c = &entity.Category{ID: uuid.New().String(), Name: name, CreatedAt: now, UpdatedAt: now}
			insertCategory(st, c)
			created = true
		}
		cp := *c
		out = &cp
		return nil
	})
	return out, created, err
}

func (r *CategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	var out []*entity.Category
	err := r.s.read(r.inTx, func(st *state) error {
		out = make([]*entity.Category, 0, len(st.categories))
		for _, c := range st.categories {
			cp := *c
			out = append(out, &cp)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return nil
	})
	return out, err
}

func findCategoryByName(st *state, name string) *entity.Category {
	for _, c := range st.categories {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func insertCategory(st *state, c *entity.Category) {
	cp := *c
	st.categories[c.ID] = &cp
}

// ── Ítems ────────────────────────────────────────────────────────────────────

// ItemRepo ItemRepository en memoria.
type ItemRepo struct {
	s    *Store
	inTx bool
}

func (r *ItemRepo) Create(_ context.Context, it *entity.Item) error {
	return r.s.write(r.inTx, func(st *state) error {
		return insertItem(st, it)
	})
}

func (r *ItemRepo) GetByID(_ context.Context, id string) (*entity.Item, error) {
	var out *entity.Item
	err := r.s.read(r.inTx, func(st *state) error {
		it, ok := st.items[id]
		if !ok {
			return domain.ErrItemNotFound
		}
		cp := *it
		out = &cp
		return nil
	})
	return out, err
}

// GetForUpdate en memoria equivale a GetByID: la transacción ya tiene el lock exclusivo.
func (r *ItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	return r.GetByID(ctx, id)
}

func (r *ItemRepo) FindByIdentity(_ context.Context, identity entity.ItemIdentity) (*entity.Item, error) {
	var out *entity.Item
	err := r.s.read(r.inTx, func(st *state) error {
		it := findItemByIdentity(st, identity)
		if it == nil {
			return domain.ErrItemNotFound
		}
		cp := *it
		out = &cp
		return nil
	})
	return out, err
}

func (r *ItemRepo) FindOrCreate(_ context.Context, candidate *entity.Item) (*entity.Item, bool, error) {
	var (
		out     *entity.Item
		created bool
	)
	err := r.s.write(r.inTx, func(st *state) error {
		it := findItemByIdentity(st, candidate.Identity())
		if it == nil {
			fresh := *candidate
			fresh.CurrentQuantity = 0
			if err := insertItem(st, &fresh); err != nil {
				return err
			}
			it = &fresh
			created = true
		}
		cp := *it
		out = &cp
		return nil
	})
	return out, created, err
}

func (r *ItemRepo) UpdateQuantity(_ context.Context, id string, quantity int) error {
	return r.s.write(r.inTx, func(st *state) error {
		it, ok := st.items[id]
		if !ok {
			return domain.ErrItemNotFound
		}
		it.CurrentQuantity = quantity
		it.UpdatedAt = time.Now().UTC()
		return nil
	})
}

func (r *ItemRepo) List(_ context.Context) ([]*entity.Item, error) {
	return r.list(func(*entity.Item) bool { return true })
}

func (r *ItemRepo) ListByCategory(_ context.Context, categoryID string) ([]*entity.Item, error) {
	return r.list(func(it *entity.Item) bool { return it.CategoryID == categoryID })
}

func (r *ItemRepo) list(keep func(*entity.Item) bool) ([]*entity.Item, error) {
	var out []*entity.Item
	err := r.s.read(r.inTx, func(st *state) error {
		out = sortedItems(st, keep)
		return nil
	})
	return out, err
}

func sortedItems(st *state, keep func(*entity.Item) bool) []*entity.Item {
	out := make([]*entity.Item, 0, len(st.items))
	for _, it := range st.items {
		if keep(it) {
			cp := *it
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		if out[i].VariantLabel != out[j].VariantLabel {
			return out[i].VariantLabel < out[j].VariantLabel
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func findItemByIdentity(st *state, identity entity.ItemIdentity) *entity.Item {
	for _, it := range st.items {
		if it.Identity() == identity {
			return it
		}
	}
	return nil
}

func insertItem(st *state, it *entity.Item) error {
	if findItemByIdentity(st, it.Identity()) != nil {
		return domain.ErrDuplicate
	}
	if it.CategoryID != "" {
		if _, ok := st.categories[it.CategoryID]; !ok {
			return domain.ErrCategoryNotFound
		}
	}
	cp := *it
	st.items[it.ID] = &cp
	return nil
}

// ── Movimientos ──────────────────────────────────────────────────────────────

// MovementRepo StockMovementRepository en memoria (append-only).
type MovementRepo struct {
	s    *Store
	inTx bool
}

func (r *MovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	return r.s.write(r.inTx, func(st *state) error {
		if _, ok := st.items[m.ItemID]; !ok {
			return domain.ErrItemNotFound
		}
		if m.CreatedBy != "" {
			if _, ok := st.users[m.CreatedBy]; !ok {
				return fmt.Errorf("%w: usuario %s", domain.ErrNotFound, m.CreatedBy)
			}
		}
		cp := *m
		st.movements = append(st.movements, &cp)
		return nil
	})
}

func (r *MovementRepo) ListByItem(_ context.Context, itemID string, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	err := r.s.read(r.inTx, func(st *state) error {
		out = movementsNewestFirst(st, itemID, limit, offset)
		return nil
	})
	return out, err
}

func movementsNewestFirst(st *state, itemID string, limit, offset int) []*entity.StockMovement {
	out := []*entity.StockMovement{}
	skipped := 0
	for i := len(st.movements) - 1; i >= 0; i-- {
		m := st.movements[i]
		if m.ItemID != itemID {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		if limit > 0 && len(out) >= limit {
			break
		}
		cp := *m
		out = append(out, &cp)
	}
	return out
}

// ── Usuarios ─────────────────────────────────────────────────────────────────

// UserRepo UserRepository en memoria (solo lectura; alta vía Store.AddUser).
type UserRepo struct {
	s *Store
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.s.read(false, func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return fmt.Errorf("%w: usuario", domain.ErrNotFound)
		}
		cp := *u
		out = &cp
		return nil
	})
	return out, err
}
