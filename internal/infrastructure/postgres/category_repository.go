package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/relief-inventory-api/internal/domain"
	"github.com/jhoicas/relief-inventory-api/internal/domain/entity"
	"github.com/jhoicas/relief-inventory-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación de CategoryRepository sobre PostgreSQL (usable con pool o tx).
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

const categoryColumns = `id, name, created_at, updated_at`

func scanCategory(row pgx.Row) (*entity.Category, error) {
	var c entity.Category
	if err := row.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserta la categoría. Nombre existente → domain.ErrDuplicate.
func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	query := `
		INSERT INTO categories (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query, c.ID, c.Name, c.CreatedAt, c.UpdatedAt)
	return translate("crear categoría", err)
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`
	c, err := scanCategory(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, translate("obtener categoría", err)
	}
	return c, nil
}

func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE name = $1`
	c, err := scanCategory(r.q.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, translate("obtener categoría por nombre", err)
	}
	return c, nil
}

// FindOrCreate inserta con ON CONFLICT DO NOTHING; si otra transacción ganó la carrera
// (o ya existía) no hay fila devuelta y se relee por nombre.
func (r *CategoryRepo) FindOrCreate(ctx context.Context, name string) (*entity.Category, bool, error) {
	now := time.Now().UTC()
	query := `
		INSERT INTO categories (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		ON CONFLICT (name) DO NOTHING
		RETURNING ` + categoryColumns
	c, err := scanCategory(r.q.QueryRow(ctx, query, uuid.New().String(), name, now))
	if err == nil {
		return c, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, translate("crear categoría", err)
	}
	c, err = r.GetByName(ctx, name)
	if err != nil {
		return nil, false, err
	}
	return c, false, nil
}

// List devuelve todas las categorías ordenadas por nombre.
func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories ORDER BY name ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, translate("listar categorías", err)
	}
	defer rows.Close()

	var list []*entity.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, translate("leer categoría", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}
