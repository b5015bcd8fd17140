package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/afuwah/electronics-backend/api/controllers"
	"github.com/afuwah/electronics-backend/api/middleware"
	cartsvc "github.com/afuwah/electronics-backend/internal/cart"
	"github.com/afuwah/electronics-backend/internal/snapshot"
	wishlistsvc "github.com/afuwah/electronics-backend/internal/wishlist"
	"github.com/afuwah/electronics-backend/pkg/config"
	"github.com/afuwah/electronics-backend/pkg/logger"
)

// NewRouter wires every storefront route behind the shared middleware
// chain. All /api/v1 routes run under the session middleware, so handlers
// can rely on a session id being present in the request context.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	snapshots snapshot.Store,
	cartService cartsvc.Service,
	wishlistService wishlistsvc.Service,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, snapshots, logg))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Session(cfg.Session, logg))

		r.Get("/ping", controllers.SessionPing())

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(cartService, logg))
			r.Delete("/", controllers.CartClear(cartService, logg))
			r.Post("/items", controllers.CartAddItem(cartService, logg))
			r.Patch("/items/{productID}", controllers.CartUpdateQuantity(cartService, logg))
			r.Delete("/items/{productID}", controllers.CartRemoveItem(cartService, logg))
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", controllers.WishlistFetch(wishlistService, logg))
			r.Delete("/", controllers.WishlistClear(wishlistService, logg))
			r.Post("/items", controllers.WishlistAddItem(wishlistService, logg))
			r.Get("/items/{productID}", controllers.WishlistContains(wishlistService, logg))
			r.Delete("/items/{productID}", controllers.WishlistRemoveItem(wishlistService, logg))
		})
	})

	return r
}
