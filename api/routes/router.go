package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/storefront-backend/api/controllers"
	"github.com/angelmondragon/storefront-backend/api/middleware"
	authsvc "github.com/angelmondragon/storefront-backend/internal/auth"
	"github.com/angelmondragon/storefront-backend/internal/cart"
	"github.com/angelmondragon/storefront-backend/internal/catalog"
	"github.com/angelmondragon/storefront-backend/internal/checkout"
	"github.com/angelmondragon/storefront-backend/internal/orders"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/kv"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	slot kv.Store,
	catalogClient *catalog.Client,
	cartStore *cart.Store,
	flow *checkout.Flow,
	authService *authsvc.Service,
	ordersService *orders.Service,
	m *metrics.StorefrontMetrics,
	gatherer prometheus.Gatherer,
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
		r.Get("/ready", controllers.HealthReady(cfg, slot, logg))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(catalogClient, logg))
			r.Get("/categories", controllers.CategoryList(catalogClient, logg))
			r.Get("/{id}", controllers.ProductDetail(catalogClient, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartGet(cartStore, logg))
			r.Delete("/", controllers.CartClear(cartStore, m, logg))
			r.Get("/quote", controllers.CartQuote(flow, logg))
			r.Post("/items", controllers.CartAddItem(cartStore, m, logg))
			r.Post("/items/{id}/decrement", controllers.CartDecrementItem(cartStore, m, logg))
			r.Delete("/items/{id}", controllers.CartDeleteItem(cartStore, m, logg))
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Get("/", controllers.CheckoutState(flow, logg))
			r.Post("/shipping", controllers.CheckoutShipping(flow, logg))
			r.Post("/payment", controllers.CheckoutPayment(flow, logg))
			r.Post("/back", controllers.CheckoutBack(flow, logg))
			r.Post("/coupon", controllers.CheckoutApplyCoupon(flow, m, logg))
			r.Delete("/coupon", controllers.CheckoutRemoveCoupon(flow, logg))
			r.Post("/gift-wrap", controllers.CheckoutGiftWrap(flow, logg))
			r.Post("/place-order", controllers.CheckoutPlaceOrder(flow, logg))
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", controllers.AuthLogin(authService, logg))
			r.Post("/register", controllers.AuthRegister(authService, logg))
			r.Post("/logout", controllers.AuthLogout(authService, logg))
			r.Get("/me", controllers.AuthMe(authService, logg))
			r.Put("/profile", controllers.AuthUpdateProfile(authService, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrderList(ordersService, logg))
			r.Get("/{orderNumber}", controllers.OrderDetail(ordersService, logg))
		})
	})

	return r
}
