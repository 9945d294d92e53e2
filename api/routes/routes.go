package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wadidirect/storefront-backend/api/controllers"
	"github.com/wadidirect/storefront-backend/api/middleware"
	"github.com/wadidirect/storefront-backend/internal/cart"
	"github.com/wadidirect/storefront-backend/internal/catalog"
	"github.com/wadidirect/storefront-backend/internal/checkout"
	"github.com/wadidirect/storefront-backend/pkg/config"
	"github.com/wadidirect/storefront-backend/pkg/logger"
)

// Params collects everything the router needs. Cache and Gatherer may be nil;
// the matching endpoints degrade rather than fail.
type Params struct {
	Config       *config.Config
	Logger       *logger.Logger
	Catalog      catalog.Service
	Checkout     checkout.Service
	Forwarder    controllers.Forwarder
	CartRegistry *cart.Registry
	CachePinger  controllers.Pinger
	Gatherer     prometheus.Gatherer
}

// NewRouter wires the HTTP surface. The cart session middleware only wraps the
// cart and checkout routes; catalog reads stay cookie-free and cacheable.
func NewRouter(params Params) http.Handler {
	logg := params.Logger

	router := chi.NewRouter()
	router.Use(middleware.Recoverer(logg))
	router.Use(middleware.RequestID(logg))
	router.Use(middleware.Logging(logg))
	router.Use(middleware.CORS())

	router.Get("/health/live", controllers.HealthLive())
	router.Get("/health/ready", controllers.HealthReady(params.CachePinger, logg))

	if params.Gatherer != nil {
		router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(params.Gatherer, promhttp.HandlerOpts{}))
	}

	router.Get("/api/proxy", controllers.Proxy(params.Forwarder, logg))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/products", controllers.CatalogProducts(params.Catalog, logg))
			r.Get("/search", controllers.CatalogSearch(params.Catalog, logg))
			r.Get("/categories/{category}", controllers.CatalogByCategory(params.Catalog, logg))
			r.Get("/brands/{brand}", controllers.CatalogByBrand(params.Catalog, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.CartSession(params.CartRegistry, params.Config.Cart, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(logg))
				r.Delete("/", controllers.CartClear(logg))
				r.Post("/items", controllers.CartAddItem(logg))
				r.Patch("/items/{itemId}", controllers.CartUpdateItem(logg))
				r.Delete("/items/{itemId}", controllers.CartRemoveItem(logg))
			})

			r.Post("/checkout", controllers.Checkout(params.Checkout, logg))
		})
	})

	return router
}
