package repository

import (
	"context"

	"github.com/jhoicas/relief-inventory-api/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para Item.
// CurrentQuantity solo cambia vía UpdateQuantity, dentro de la transacción del movimiento.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	// GetByID devuelve domain.ErrItemNotFound si no existe.
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	// GetForUpdate obtiene el ítem y bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Item, error)
	// FindByIdentity busca por (nombre, variante, categoría) exactos; devuelve domain.ErrItemNotFound si no hay coincidencia.
	FindByIdentity(ctx context.Context, identity entity.ItemIdentity) (*entity.Item, error)
	// FindOrCreate devuelve el ítem con la identidad de item o inserta item (cantidad 0).
	FindOrCreate(ctx context.Context, item *entity.Item) (found *entity.Item, created bool, err error)
	UpdateQuantity(ctx context.Context, id string, quantity int) error
	// List devuelve todos los ítems ordenados por nombre y variante.
	List(ctx context.Context) ([]*entity.Item, error)
	// ListByCategory lista los ítems de una categoría; categoryID vacío lista los ítems sin categoría.
	ListByCategory(ctx context.Context, categoryID string) ([]*entity.Item, error)
}
