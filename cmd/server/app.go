package main

import (
	"net/http"
	"time"

	"github.com/diewo77/inventory-api/internal/handlers"
	"github.com/diewo77/inventory-api/internal/httpx"
	"github.com/diewo77/inventory-api/internal/middleware"
	"github.com/diewo77/inventory-api/internal/services"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// defaultRequestTimeout matches the default SERVER_WRITE_TIMEOUT.
const defaultRequestTimeout = 15 * time.Second

// Options tunes the router. Zero values fall back to defaults.
type Options struct {
	AllowedOrigins []string
	// RequestTimeout bounds each request context; keep it within the server write timeout.
	RequestTimeout time.Duration
}

// App is the main application handler that sets up all routes.
type App struct {
	router         *chi.Mux
	db             *gorm.DB
	log            *logrus.Logger
	requestTimeout time.Duration
}

// NewApp creates a new application with all routes configured.
// Without AllowedOrigins every origin is allowed.
func NewApp(db *gorm.DB, log *logrus.Logger, opts Options) *App {
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = defaultRequestTimeout
	}
	app := &App{
		router:         chi.NewRouter(),
		db:             db,
		log:            log,
		requestTimeout: opts.RequestTimeout,
	}
	app.setupMiddleware(opts.AllowedOrigins)
	app.setupRoutes()
	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

func (a *App) setupMiddleware(allowedOrigins []string) {
	a.router.Use(chimiddleware.RequestID)
	a.router.Use(chimiddleware.RealIP)
	a.router.Use(middleware.Logger(a.log))
	a.router.Use(chimiddleware.Recoverer)
	a.router.Use(chimiddleware.Timeout(a.requestTimeout))
	a.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))
}

// setupRoutes configures all application routes.
func (a *App) setupRoutes() {
	a.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.JSONError(w, http.StatusNotFound, "Not found")
	})
	a.router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.JSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	a.router.Method(http.MethodGet, "/health", handlers.NewHealthHandler(a.db, a.log))

	a.router.Route("/api", func(r chi.Router) {
		handlers.Mount(r, "/categories", handlers.NewCategoryHandler(services.NewCategoryService(a.db), a.log))
		handlers.Mount(r, "/customers", handlers.NewCustomerHandler(services.NewCustomerService(a.db), a.log))
		handlers.Mount(r, "/products", handlers.NewProductHandler(services.NewProductService(a.db), a.log))
		handlers.Mount(r, "/orders", handlers.NewOrderHandler(services.NewOrderService(a.db), a.log))
	})
}
