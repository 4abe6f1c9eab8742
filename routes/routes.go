package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/chaitanya039/sales-dashboard-backend/handlers"
	"github.com/chaitanya039/sales-dashboard-backend/middleware"
)

// Deps are the collaborators the routes are bound to.
type Deps struct {
	Sales    handlers.SalesLister
	Store    handlers.Pinger
	Registry *prometheus.Registry
}

// NewApp builds the fiber app with the shared error envelope.
func NewApp() *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      "sales-dashboard-backend",
		ErrorHandler: middleware.ErrorHandler,
	})
}

// SetupRoutes defines all the routes for the application.
func SetupRoutes(app *fiber.App, deps Deps) {
	app.Use(recover.New())
	app.Use(middleware.RequestLogger())
	app.Use(cors.New())

	health := handlers.NewHealthHandler(deps.Store)
	app.Get("/health", health.HandleHealth)
	app.Get("/version", handlers.HandleVersion)

	if deps.Registry != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api/v1")

	// --- Sales Routes ---
	sales := handlers.NewSalesHandler(deps.Sales)
	api.Get("/sales", sales.HandleGetSales)
}
