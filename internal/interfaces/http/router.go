package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jhoicas/Cordeleria-api/internal/application/fulfillment"
	"github.com/jhoicas/Cordeleria-api/internal/application/inventory"
	"github.com/jhoicas/Cordeleria-api/internal/application/pricing"
	"github.com/jhoicas/Cordeleria-api/internal/application/production"
	"github.com/jhoicas/Cordeleria-api/internal/application/recipe"
	"github.com/jhoicas/Cordeleria-api/internal/application/zone"
	"github.com/jhoicas/Cordeleria-api/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Zones            *zone.Registry
	Ledger           *inventory.LedgerService
	RegisterMovement *inventory.RegisterMovementUseCase
	Production       *production.RegisterProductionUseCase
	Recipes          *recipe.Service
	Orders           *fulfillment.OrderUseCase
	Deliveries       *fulfillment.DeliveryUseCase
	Prices           *pricing.Service
	JWTSecret        string
	JWTIssuer        string
	// Gatherer nil desactiva /metrics.
	Gatherer prometheus.Gatherer
	Log      *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	log = log.Named("http")

	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	// Rutas protegidas (requieren Bearer Token)
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))

	zoneHandler := NewZoneHandler(deps.Zones, log)
	zones := api.Group("/zones")
	zones.Get("/", zoneHandler.List)
	zones.Get("/:id", zoneHandler.GetByID)

	stockHandler := NewStockHandler(deps.RegisterMovement, deps.Ledger, log)
	stock := api.Group("/stock")
	stock.Post("/movements", stockHandler.RegisterMovement)
	stock.Get("/balance", stockHandler.Balance)
	stock.Get("/lots", stockHandler.Lots)
	stock.Get("/entries", stockHandler.Entries)

	productionHandler := NewProductionHandler(deps.Production, log)
	api.Post("/production", productionHandler.Register)

	recipeHandler := NewRecipeHandler(deps.Recipes, log)
	recipes := api.Group("/recipes")
	recipes.Get("/:productId", recipeHandler.Get)
	recipes.Put("/:productId", recipeHandler.Replace)
	recipes.Post("/:productId/plan", recipeHandler.Plan)

	orderHandler := NewOrderHandler(deps.Orders, deps.Deliveries, log)
	orders := api.Group("/orders")
	orders.Post("/", orderHandler.Create)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Post("/:id/deliveries", orderHandler.CreateDelivery)
	api.Patch("/order-lines/:id", orderHandler.UpdateLine)
	api.Delete("/order-lines/:id", orderHandler.DeleteLine)
	api.Get("/deliveries/:id", orderHandler.GetDelivery)
	api.Get("/customers/:id/receivables", orderHandler.Receivables)

	priceHandler := NewPriceHandler(deps.Prices, log)
	prices := api.Group("/prices")
	prices.Put("/", priceHandler.Upsert)
	prices.Get("/effective", priceHandler.Effective)
	prices.Get("/history", priceHandler.History)
}
