package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/relief-inventory-api/internal/application/dto"
	"github.com/jhoicas/relief-inventory-api/internal/application/inventory"
	"github.com/jhoicas/relief-inventory-api/internal/domain"
	"github.com/jhoicas/relief-inventory-api/internal/domain/entity"
	"github.com/jhoicas/relief-inventory-api/internal/domain/repository"
)

// ItemUseCase alta y listados de ítems. La cantidad solo cambia vía movimientos del ledger.
type ItemUseCase struct {
	txRunner     inventory.TxRunner
	itemRepo     repository.ItemRepository
	categoryRepo repository.CategoryRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(
	txRunner inventory.TxRunner,
	itemRepo repository.ItemRepository,
	categoryRepo repository.CategoryRepository,
) *ItemUseCase {
	return &ItemUseCase{txRunner: txRunner, itemRepo: itemRepo, categoryRepo: categoryRepo}
}

// Create crea un ítem con cantidad 0. Si InitialQuantity > 0 registra, en la misma transacción,
// una entrada "Initial stock" atribuida a userID para que el caché siga derivando del ledger.
func (uc *ItemUseCase) Create(ctx context.Context, userID string, in dto.CreateItemRequest) (*dto.ItemDTO, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre del ítem es obligatorio", domain.ErrInvalidInput)
	}
	if in.InitialQuantity < 0 {
		return nil, domain.ErrInvalidQuantity
	}
	categoryID := strings.TrimSpace(in.CategoryID)
	if categoryID != "" {
		if _, err := uuid.Parse(categoryID); err != nil {
			return nil, domain.ErrCategoryNotFound
		}
	}

	now := time.Now().UTC()
	item := &entity.Item{
		ID:           uuid.New().String(),
		Name:         name,
		VariantLabel: strings.TrimSpace(in.VariantLabel),
		Description:  strings.TrimSpace(in.Description),
		UnitType:     entity.NormalizeUnitType(in.UnitType),
		CategoryID:   categoryID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var category *entity.Category
	err := uc.txRunner.Run(ctx, func(
		categoryRepo repository.CategoryRepository,
		itemRepo repository.ItemRepository,
		movRepo repository.StockMovementRepository,
	) error {
		if item.CategoryID != "" {
			c, err := categoryRepo.GetByID(ctx, item.CategoryID)
			if err != nil {
				return err
			}
			category = c
		}
		if err := itemRepo.Create(ctx, item); err != nil {
			return err
		}
		if in.InitialQuantity == 0 {
			return nil
		}
		res, err := inventory.ApplyInTx(ctx, itemRepo, movRepo, inventory.MovementInputDTO{
			ItemID:    item.ID,
			Type:      entity.MovementTypeIN,
			Quantity:  in.InitialQuantity,
			Reason:    entity.ReasonInitialStock,
			Source:    entity.MovementSourceManual,
			CreatedBy: userID,
		}, false)
		if err != nil {
			return err
		}
		item = res.Item
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := dto.NewItemDTO(item, category)
	return &out, nil
}

// List devuelve todos los ítems con su categoría, ordenados por nombre y variante.
func (uc *ItemUseCase) List(ctx context.Context) ([]dto.ItemDTO, error) {
	items, err := uc.itemRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := uc.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}
	out := make([]dto.ItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, dto.NewItemDTO(it, byID[it.CategoryID]))
	}
	return out, nil
}

// ListByCategory devuelve las categorías (por nombre) con sus ítems. Los ítems sin categoría no aparecen.
func (uc *ItemUseCase) ListByCategory(ctx context.Context) ([]dto.CategoryWithItemsDTO, error) {
	categories, err := uc.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryWithItemsDTO, 0, len(categories))
	for _, c := range categories {
		items, err := uc.itemRepo.ListByCategory(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		group := dto.CategoryWithItemsDTO{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt, Items: make([]dto.ItemDTO, 0, len(items))}
		for _, it := range items {
			group.Items = append(group.Items, dto.NewItemDTO(it, nil))
		}
		out = append(out, group)
	}
	return out, nil
}
