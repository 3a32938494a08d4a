package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/relief-inventory-api/internal/domain"
	"github.com/jhoicas/relief-inventory-api/internal/domain/entity"
	"github.com/jhoicas/relief-inventory-api/internal/domain/repository"
)

// ItemSpec datos de un ítem tal como llegan de una fila importada.
type ItemSpec struct {
	Name         string
	VariantLabel string
	UnitType     string
	Description  string
	CategoryID   string
}

type itemKey struct {
	name       string
	variant    string
	categoryID string
}

// Resolver resuelve categorías e ítems por nombre con semántica find-or-create.
// Memoriza los resultados durante una corrida (sin distinguir mayúsculas) para no repetir
// consultas por fila. Se crea uno por reconciliación y usa los repositorios de su transacción.
type Resolver struct {
	categoryRepo repository.CategoryRepository
	itemRepo     repository.ItemRepository

	categories map[string]*entity.Category
	items      map[itemKey]*entity.Item

	CreatedCategories int
	CreatedItems      int
}

// NewResolver construye un resolver con memo vacío.
func NewResolver(categoryRepo repository.CategoryRepository, itemRepo repository.ItemRepository) *Resolver {
	return &Resolver{
		categoryRepo: categoryRepo,
		itemRepo:     itemRepo,
		categories:   make(map[string]*entity.Category),
		items:        make(map[itemKey]*entity.Item),
	}
}

// ResolveCategory devuelve la categoría con ese nombre (recortado), creándola si no existe.
func (r *Resolver) ResolveCategory(ctx context.Context, name string) (*entity.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: nombre de categoría vacío", domain.ErrInvalidInput)
	}
	key := strings.ToLower(name)
	if c, ok := r.categories[key]; ok {
		return c, nil
	}
	c, created, err := r.categoryRepo.FindOrCreate(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("resolver categoría %q: %w", name, err)
	}
	if created {
		r.CreatedCategories++
	}
	r.categories[key] = c
	return c, nil
}

// ResolveItem devuelve el ítem con identidad (nombre, variante, categoría), creándolo con cantidad 0 si no existe.
// La unidad y la descripción solo se usan al crear.
func (r *Resolver) ResolveItem(ctx context.Context, spec ItemSpec) (*entity.Item, error) {
	spec.Name = strings.TrimSpace(spec.Name)
	spec.VariantLabel = strings.TrimSpace(spec.VariantLabel)
	if spec.Name == "" {
		return nil, fmt.Errorf("%w: nombre de ítem vacío", domain.ErrInvalidInput)
	}
	key := itemKey{
		name:       strings.ToLower(spec.Name),
		variant:    strings.ToLower(spec.VariantLabel),
		categoryID: spec.CategoryID,
	}
	if key.categoryID == "" {
		key.categoryID = "none"
	}
	if it, ok := r.items[key]; ok {
		return it, nil
	}

	now := time.Now().UTC()
	candidate := &entity.Item{
		ID:           uuid.New().String(),
		Name:         spec.Name,
		VariantLabel: spec.VariantLabel,
		Description:  strings.TrimSpace(spec.Description),
		UnitType:     entity.NormalizeUnitType(spec.UnitType),
		CategoryID:   spec.CategoryID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	it, created, err := r.itemRepo.FindOrCreate(ctx, candidate)
	if err != nil {
		return nil, fmt.Errorf("resolver ítem %q: %w", spec.Name, err)
	}
	if created {
		r.CreatedItems++
	}
	r.items[key] = it
	return it, nil
}
