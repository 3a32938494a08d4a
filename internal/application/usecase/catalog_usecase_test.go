package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/relief-inventory-api/internal/application/dto"
	"github.com/jhoicas/relief-inventory-api/internal/application/usecase"
	"github.com/jhoicas/relief-inventory-api/internal/domain"
	"github.com/jhoicas/relief-inventory-api/internal/domain/entity"
	"github.com/jhoicas/relief-inventory-api/internal/infrastructure/memory"
)

func TestCategoryUseCase_Create(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewCategoryUseCase(memory.NewStore().Categories())

	got, err := uc.Create(ctx, dto.CreateCategoryRequest{Name: "  Water "})
	require.NoError(t, err)
	assert.Equal(t, "Water", got.Name)

	_, err = uc.Create(ctx, dto.CreateCategoryRequest{Name: "Water"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, dto.CreateCategoryRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.CreateCategoryRequest{Name: "Dry Rations"})
	require.NoError(t, err)
	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Dry Rations", list[0].Name)
	assert.Equal(t, "Water", list[1].Name)
}

func TestItemUseCase_CreateConStockInicial(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	actorID := uuid.New().String()
	store.AddUser(entity.User{ID: actorID, Name: "Coordinador"})
	cats := usecase.NewCategoryUseCase(store.Categories())
	items := usecase.NewItemUseCase(store, store.Items(), store.Categories())

	cat, err := cats.Create(ctx, dto.CreateCategoryRequest{Name: "Dry Rations"})
	require.NoError(t, err)

	got, err := items.Create(ctx, actorID, dto.CreateItemRequest{
		Name: "Rice", VariantLabel: "5kg", CategoryID: cat.ID, InitialQuantity: 12,
	})
	require.NoError(t, err)
	assert.Equal(t, 12, got.CurrentQuantity)
	assert.Equal(t, entity.DefaultUnitType, got.UnitType)
	require.NotNil(t, got.Category)
	assert.Equal(t, "Dry Rations", got.Category.Name)

	movs, err := store.Movements().ListByItem(ctx, got.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.ReasonInitialStock, movs[0].Reason)
	assert.Equal(t, entity.MovementTypeIN, movs[0].Type)
	assert.Equal(t, actorID, movs[0].CreatedBy)

	// Misma identidad: duplicado
	_, err = items.Create(ctx, actorID, dto.CreateItemRequest{Name: "Rice", VariantLabel: "5kg", CategoryID: cat.ID})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// Sin stock inicial no hay movimiento
	salt, err := items.Create(ctx, "", dto.CreateItemRequest{Name: "Salt", UnitType: "kg"})
	require.NoError(t, err)
	assert.Zero(t, salt.CurrentQuantity)
	assert.Nil(t, salt.CategoryID)
	movs, err = store.Movements().ListByItem(ctx, salt.ID, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestItemUseCase_CreateValidaciones(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	items := usecase.NewItemUseCase(store, store.Items(), store.Categories())

	_, err := items.Create(ctx, "", dto.CreateItemRequest{Name: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = items.Create(ctx, "", dto.CreateItemRequest{Name: "Rice", InitialQuantity: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = items.Create(ctx, "", dto.CreateItemRequest{Name: "Rice", CategoryID: uuid.New().String()})
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)

	list, err := items.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestItemUseCase_ListByCategory(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	cats := usecase.NewCategoryUseCase(store.Categories())
	items := usecase.NewItemUseCase(store, store.Items(), store.Categories())

	water, err := cats.Create(ctx, dto.CreateCategoryRequest{Name: "Water"})
	require.NoError(t, err)
	food, err := cats.Create(ctx, dto.CreateCategoryRequest{Name: "Food"})
	require.NoError(t, err)
	_, err = items.Create(ctx, "", dto.CreateItemRequest{Name: "Bottle", CategoryID: water.ID})
	require.NoError(t, err)
	_, err = items.Create(ctx, "", dto.CreateItemRequest{Name: "Biscuits", CategoryID: food.ID})
	require.NoError(t, err)
	_, err = items.Create(ctx, "", dto.CreateItemRequest{Name: "Loose"})
	require.NoError(t, err)

	groups, err := items.ListByCategory(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "Food", groups[0].Name)
	require.Len(t, groups[0].Items, 1)
	assert.Equal(t, "Biscuits", groups[0].Items[0].Name)
	assert.Equal(t, "Water", groups[1].Name)

	all, err := items.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
