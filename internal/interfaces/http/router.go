package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/relief-inventory-api/internal/application/analytics"
	"github.com/jhoicas/relief-inventory-api/internal/application/inventory"
	"github.com/jhoicas/relief-inventory-api/internal/application/usecase"
	"github.com/jhoicas/relief-inventory-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CategoryUC       *usecase.CategoryUseCase
	ItemUC           *usecase.ItemUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	Reconcile        *inventory.ReconcileUseCase
	DashboardUC      *analytics.DashboardUseCase
	Users            repository.UserRepository
	Import           ImportConfig
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	auth := AuthMiddleware(deps.JWTSecret, deps.Users)

	donations := api.Group("/donations")

	// Tablero (público)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	donations.Get("/dashboard", dashboardHandler.GetSummary)
	donations.Get("/dashboard/pdf", dashboardHandler.DownloadPDF)

	// Categorías (protegido)
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	donations.Post("/categories", auth, categoryHandler.Create)
	donations.Get("/categories", auth, categoryHandler.List)

	// Ítems (protegido)
	itemHandler := NewItemHandler(deps.ItemUC)
	donations.Post("/items", auth, itemHandler.Create)
	donations.Get("/items", auth, itemHandler.List)
	donations.Get("/items/by-category", auth, itemHandler.ListByCategory)

	// Movimientos de stock (protegido)
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.DashboardUC)
	donations.Post("/stock/in", auth, inventoryHandler.StockIn)
	donations.Post("/stock/out", auth, inventoryHandler.StockOut)
	donations.Get("/stock/history/:itemId", auth, inventoryHandler.History)

	// Importación CSV (protegido: created_by sale del token)
	importHandler := NewImportHandler(deps.Reconcile, deps.Import)
	api.Post("/uploads/import", auth, importHandler.Import)
}
