package repository

import (
	"context"

	"github.com/jhoicas/relief-inventory-api/internal/domain/entity"
)

// UserRepository lectura de usuarios del componente de identidad, solo para atribución.
type UserRepository interface {
	// GetByID devuelve domain.ErrNotFound si el usuario no existe.
	GetByID(ctx context.Context, id string) (*entity.User, error)
}
