package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/Cordeleria-api/internal/application/fulfillment"
	"github.com/jhoicas/Cordeleria-api/internal/application/inventory"
	"github.com/jhoicas/Cordeleria-api/internal/application/pricing"
	"github.com/jhoicas/Cordeleria-api/internal/application/production"
	"github.com/jhoicas/Cordeleria-api/internal/application/recipe"
	"github.com/jhoicas/Cordeleria-api/internal/application/zone"
	"github.com/jhoicas/Cordeleria-api/internal/domain"
	"github.com/jhoicas/Cordeleria-api/internal/domain/repository"
	"github.com/jhoicas/Cordeleria-api/internal/infrastructure/memory"
	"github.com/jhoicas/Cordeleria-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Cordeleria-api/internal/interfaces/http"
	"github.com/jhoicas/Cordeleria-api/pkg/config"
	"github.com/jhoicas/Cordeleria-api/pkg/logger"
	"github.com/jhoicas/Cordeleria-api/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Almacenamiento: PostgreSQL (pgx) o memoria para demos y pruebas locales.
	var (
		txRunner repository.TxRunner
		repos    repository.UnitOfWork
	)
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		store := memory.NewStore()
		store.SeedDefaultZones()
		for _, id := range cfg.Store.SeedMaterials {
			store.AddMaterial(id)
		}
		for _, id := range cfg.Store.SeedProducts {
			store.AddProduct(id)
		}
		txRunner, repos = store, store.Repositories()
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.Store.AutoMigrate {
			if err := postgres.Migrate(ctx, pool, "up"); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
			log.Info().Msg("migraciones aplicadas")
		}
		txRunner, repos = postgres.NewTxRunner(pool), postgres.NewUnitOfWork(pool)
	}

	var (
		registry *prometheus.Registry
		gatherer prometheus.Gatherer
	)
	if cfg.Metrics.Enabled {
		registry = prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		gatherer = registry
	}
	var reg prometheus.Registerer
	if registry != nil {
		reg = registry
	}
	coreMetrics := metrics.NewCoreMetrics(reg, domain.KindLabel)

	priority, err := inventory.ParseZonePriority(cfg.Stock.ZonePriority)
	if err != nil {
		log.Fatal().Err(err).Msg("STOCK_ZONE_PRIORITY")
	}
	engine := inventory.NewConsumptionEngine(priority, cfg.Stock.MaxLotsPerZone, coreMetrics)

	zoneRegistry := zone.NewRegistry(repos.Zones)
	ledgerSvc := inventory.NewLedgerService(repos.Ledger, repos.Zones, cfg.Stock.MaxLotsPerZone)
	registerMovementUC := inventory.NewRegisterMovementUseCase(txRunner, engine, coreMetrics)
	productionUC := production.NewRegisterProductionUseCase(txRunner, engine, coreMetrics)
	recipeSvc := recipe.NewService(txRunner, coreMetrics)
	orderUC := fulfillment.NewOrderUseCase(txRunner, coreMetrics)
	deliveryUC := fulfillment.NewDeliveryUseCase(txRunner, log.Named("fulfillment"), coreMetrics, cfg.App.DefaultCurrency)
	priceSvc := pricing.NewService(txRunner, cfg.App.DefaultCurrency, coreMetrics)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Cordelería API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.Store.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Zones:            zoneRegistry,
		Ledger:           ledgerSvc,
		RegisterMovement: registerMovementUC,
		Production:       productionUC,
		Recipes:          recipeSvc,
		Orders:           orderUC,
		Deliveries:       deliveryUC,
		Prices:           priceSvc,
		JWTSecret:        cfg.JWT.Secret,
		JWTIssuer:        cfg.JWT.Issuer,
		Gatherer:         gatherer,
		Log:              log,
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
