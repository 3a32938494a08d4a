package repository

import (
	"context"

	"github.com/jhoicas/relief-inventory-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	// Create inserta la categoría. Si el nombre ya existe devuelve domain.ErrDuplicate.
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	// GetByName busca por nombre exacto (respetando mayúsculas). Devuelve domain.ErrCategoryNotFound si no existe.
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	// FindOrCreate devuelve la categoría con ese nombre, creándola si no existe.
	// created indica si esta llamada la insertó; una colisión concurrente se resuelve releyendo.
	FindOrCreate(ctx context.Context, name string) (category *entity.Category, created bool, err error)
	// List devuelve todas las categorías ordenadas por nombre.
	List(ctx context.Context) ([]*entity.Category, error)
}
