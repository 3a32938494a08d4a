package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/relief-inventory-api/internal/domain"
	"github.com/jhoicas/relief-inventory-api/internal/domain/entity"
	"github.com/jhoicas/relief-inventory-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación de ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `id, name, variant_label, description, unit_type, category_id, current_quantity, created_at, updated_at`

// identityPredicate compara la identidad con la misma expresión que el índice único items_identity_uq.
const identityPredicate = `
	name = $1
	AND COALESCE(variant_label, '') = $2
	AND COALESCE(category_id, '00000000-0000-0000-0000-000000000000'::uuid) =
	    COALESCE($3::uuid, '00000000-0000-0000-0000-000000000000'::uuid)`

func scanItem(row pgx.Row) (*entity.Item, error) {
	var (
		it                               entity.Item
		variant, description, categoryID *string
	)
	err := row.Scan(&it.ID, &it.Name, &variant, &description, &it.UnitType, &categoryID,
		&it.CurrentQuantity, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return nil, err
	}
	it.VariantLabel = fromNull(variant)
	it.Description = fromNull(description)
	it.CategoryID = fromNull(categoryID)
	return &it, nil
}

func (r *ItemRepo) Create(ctx context.Context, it *entity.Item) error {
	query := `
		INSERT INTO items (id, name, variant_label, description, unit_type, category_id, current_quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.Name, nullString(it.VariantLabel), nullString(it.Description), it.UnitType,
		nullString(it.CategoryID), it.CurrentQuantity, it.CreatedAt, it.UpdatedAt,
	)
	if err != nil && isForeignKeyViolation(err) {
		return domain.ErrCategoryNotFound
	}
	return translate("crear ítem", err)
}

func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	return r.getOne(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, "obtener ítem", id)
}

// GetForUpdate obtiene el ítem y bloquea la fila (SELECT FOR UPDATE) hasta el fin de la transacción.
func (r *ItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	return r.getOne(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1 FOR UPDATE`, "bloquear ítem", id)
}

func (r *ItemRepo) FindByIdentity(ctx context.Context, identity entity.ItemIdentity) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE ` + identityPredicate
	return r.getOne(ctx, query, "buscar ítem",
		identity.Name, identity.VariantLabel, nullString(identity.CategoryID))
}

// FindOrCreate busca por identidad exacta y, si no existe, inserta con ON CONFLICT DO NOTHING
// sobre el índice de identidad; ante una carrera perdida relee la fila ganadora.
func (r *ItemRepo) FindOrCreate(ctx context.Context, candidate *entity.Item) (*entity.Item, bool, error) {
	found, err := r.FindByIdentity(ctx, candidate.Identity())
	if err == nil {
		return found, false, nil
	}
	if !errors.Is(err, domain.ErrItemNotFound) {
		return nil, false, err
	}

	query := `
		INSERT INTO items (id, name, variant_label, description, unit_type, category_id, current_quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, 0, $7, $8)
		ON CONFLICT DO NOTHING
		RETURNING ` + itemColumns
	created, err := scanItem(r.q.QueryRow(ctx, query,
		candidate.ID, candidate.Name, nullString(candidate.VariantLabel), nullString(candidate.Description),
		candidate.UnitType, nullString(candidate.CategoryID), candidate.CreatedAt, candidate.UpdatedAt,
	))
	if err == nil {
		return created, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		if isForeignKeyViolation(err) {
			return nil, false, domain.ErrCategoryNotFound
		}
		return nil, false, translate("crear ítem", err)
	}
	found, err = r.FindByIdentity(ctx, candidate.Identity())
	if err != nil {
		return nil, false, err
	}
	return found, false, nil
}

// UpdateQuantity escribe la cantidad en caché. Solo debe llamarse dentro de la transacción del movimiento.
func (r *ItemRepo) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	tag, err := r.q.Exec(ctx, `UPDATE items SET current_quantity = $2, updated_at = now() WHERE id = $1`, id, quantity)
	if err != nil {
		return translate("actualizar cantidad", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (r *ItemRepo) List(ctx context.Context) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items ORDER BY name ASC, variant_label ASC NULLS FIRST, id`
	return r.list(ctx, query)
}

func (r *ItemRepo) ListByCategory(ctx context.Context, categoryID string) ([]*entity.Item, error) {
	if categoryID == "" {
		return r.list(ctx, `SELECT `+itemColumns+` FROM items WHERE category_id IS NULL
			ORDER BY name ASC, variant_label ASC NULLS FIRST, id`)
	}
	return r.list(ctx, `SELECT `+itemColumns+` FROM items WHERE category_id = $1
		ORDER BY name ASC, variant_label ASC NULLS FIRST, id`, categoryID)
}

func (r *ItemRepo) getOne(ctx context.Context, query, op string, args ...any) (*entity.Item, error) {
	it, err := scanItem(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, translate(op, err)
	}
	return it, nil
}

func (r *ItemRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Item, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, translate("listar ítems", err)
	}
	defer rows.Close()

	var list []*entity.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, translate("leer ítem", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}
