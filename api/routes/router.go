package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/shopstate/api/controllers"
	"github.com/angelmondragon/shopstate/api/middleware"
	"github.com/angelmondragon/shopstate/internal/derive"
	"github.com/angelmondragon/shopstate/pkg/config"
	"github.com/angelmondragon/shopstate/pkg/logger"
)

// Params groups the router dependencies. Gatherer may be nil when metrics are disabled.
type Params struct {
	Config   *config.Config
	Logger   *logger.Logger
	Engine   controllers.Engine
	State    controllers.StateReader
	Gatherer prometheus.Gatherer
	Ready    map[string]controllers.Pinger
}

func NewRouter(p Params) http.Handler {
	cfg, logg := p.Config, p.Logger
	sel := derive.NewSelectors()

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.Ready))
	})

	if cfg.Metrics.Enabled && p.Gatherer != nil {
		path := cfg.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		r.Method(http.MethodGet, path, promhttp.HandlerFor(p.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/state", controllers.State(p.State, sel))
		r.Get("/home", controllers.Home(p.State, sel))

		r.Route("/catalog", func(r chi.Router) {
			r.Post("/load", controllers.CatalogLoad(p.Engine, p.State, logg))
			r.Post("/refresh", controllers.CatalogRefresh(p.Engine))
		})
		r.Post("/search", controllers.Search(p.Engine, logg))
		r.Post("/products/{productId}/select", controllers.SelectProduct(p.Engine, p.State, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.Cart(p.State, sel))
			r.Post("/open", controllers.CartOpen(p.Engine, p.State, sel))
			r.Post("/items", controllers.CartAddItem(p.Engine, p.State, sel, logg))
			r.Post("/items/{productId}/increment", controllers.CartAdjust(p.Engine, p.State, sel, 1, logg))
			r.Post("/items/{productId}/decrement", controllers.CartAdjust(p.Engine, p.State, sel, -1, logg))
			r.Delete("/items/{productId}", controllers.CartRemoveItem(p.Engine, p.State, sel, logg))
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/payment-methods/load", controllers.PaymentMethodsLoad(p.Engine, p.State, logg))
			r.Put("/payment-method", controllers.PaymentMethodChoose(p.Engine, logg))
			r.Post("/", controllers.Checkout(p.Engine, logg))
		})
	})

	return r
}
