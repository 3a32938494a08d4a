package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/relief-inventory-api/internal/application/analytics"
	"github.com/jhoicas/relief-inventory-api/internal/application/inventory"
	"github.com/jhoicas/relief-inventory-api/internal/application/usecase"
	"github.com/jhoicas/relief-inventory-api/internal/domain/entity"
	"github.com/jhoicas/relief-inventory-api/internal/domain/repository"
	"github.com/jhoicas/relief-inventory-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/relief-inventory-api/internal/infrastructure/pdf"
	"github.com/jhoicas/relief-inventory-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/relief-inventory-api/internal/interfaces/http"
	"github.com/jhoicas/relief-inventory-api/pkg/config"
	"github.com/jhoicas/relief-inventory-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// stores repositorios y runner de transacciones del driver elegido.
type stores struct {
	txRunner     inventory.TxRunner
	categoryRepo repository.CategoryRepository
	itemRepo     repository.ItemRepository
	reportRepo   repository.LedgerReportRepository
	userRepo     repository.UserRepository
	close        func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")
	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: todas las rutas protegidas responderán 401")
	}

	ctx := context.Background()
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer st.close()

	registerMovementUC := inventory.NewRegisterMovementUseCase(st.txRunner)
	reconcileUC := inventory.NewReconcileUseCase(st.txRunner, log.Component("import"), cfg.Import.MaxRows)
	categoryUC := usecase.NewCategoryUseCase(st.categoryRepo)
	itemUC := usecase.NewItemUseCase(st.txRunner, st.itemRepo, st.categoryRepo)

	// PDF: versión imprimible del tablero
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)
	dashboardUC := appanalytics.NewDashboardUseCase(st.reportRepo, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.Import.MaxUploadBytes() + 64*1024,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	origins := strings.Join(cfg.HTTP.CORSAllowedOrigins, ",")
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,OPTIONS",
		AllowCredentials: origins != "*",
	}))
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Relief Inventory API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.Store.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CategoryUC:       categoryUC,
		ItemUC:           itemUC,
		RegisterMovement: registerMovementUC,
		Reconcile:        reconcileUC,
		DashboardUC:      dashboardUC,
		Users:            st.userRepo,
		Import: httpRouter.ImportConfig{
			MaxRows:        cfg.Import.MaxRows,
			MaxUploadBytes: cfg.Import.MaxUploadBytes(),
			DefaultCharset: cfg.Import.DefaultCharset,
		},
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (*stores, error) {
	if cfg.Store.Driver == config.StoreDriverMemory {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		mem := memory.NewStore()
		if cfg.Store.SeedUserID != "" {
			mem.AddUser(entity.User{ID: cfg.Store.SeedUserID, Name: cfg.Store.SeedUserName, Email: cfg.Store.SeedUserEmail})
			log.Info().Str("user_id", cfg.Store.SeedUserID).Msg("usuario precargado")
		} else {
			log.Warn().Msg("MEMORY_SEED_USER_ID vacío: ningún token será aceptado")
		}
		return &stores{
			txRunner:     mem,
			categoryRepo: mem.Categories(),
			itemRepo:     mem.Items(),
			reportRepo:   mem.Reports(),
			userRepo:     mem.Users(),
			close:        func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.Store.AutoMigrate {
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("esquema verificado")
	}
	return &stores{
		txRunner:     postgres.NewTxRunner(pool),
		categoryRepo: postgres.NewCategoryRepository(pool),
		itemRepo:     postgres.NewItemRepository(pool),
		reportRepo:   postgres.NewReportRepository(pool),
		userRepo:     postgres.NewUserRepository(pool),
		close:        pool.Close,
	}, nil
}
