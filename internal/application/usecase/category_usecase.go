package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/relief-inventory-api/internal/application/dto"
	"github.com/jhoicas/relief-inventory-api/internal/domain"
	"github.com/jhoicas/relief-inventory-api/internal/domain/entity"
	"github.com/jhoicas/relief-inventory-api/internal/domain/repository"
)

// CategoryUseCase alta y listado de categorías. Las categorías nunca se eliminan.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// Create crea una categoría con el nombre recortado. Nombre vacío → ErrInvalidInput; existente → ErrDuplicate.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryDTO, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre de la categoría es obligatorio", domain.ErrInvalidInput)
	}
	now := time.Now().UTC()
	category := &entity.Category{ID: uuid.New().String(), Name: name, CreatedAt: now, UpdatedAt: now}
	if err := uc.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	out := dto.NewCategoryDTO(category)
	return &out, nil
}

// List devuelve las categorías ordenadas por nombre.
func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryDTO, error) {
	categories, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryDTO, 0, len(categories))
	for _, c := range categories {
		out = append(out, dto.NewCategoryDTO(c))
	}
	return out, nil
}
