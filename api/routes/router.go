package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nmoussa/shopzone-backend/api/controllers"
	"github.com/nmoussa/shopzone-backend/api/middleware"
	"github.com/nmoussa/shopzone-backend/internal/auth"
	"github.com/nmoussa/shopzone-backend/internal/cart"
	checkoutsvc "github.com/nmoussa/shopzone-backend/internal/checkout"
	"github.com/nmoussa/shopzone-backend/internal/customers"
	"github.com/nmoussa/shopzone-backend/internal/orders"
	"github.com/nmoussa/shopzone-backend/internal/payments"
	"github.com/nmoussa/shopzone-backend/internal/products"
	"github.com/nmoussa/shopzone-backend/pkg/auth/session"
	"github.com/nmoussa/shopzone-backend/pkg/config"
	"github.com/nmoussa/shopzone-backend/pkg/db"
	"github.com/nmoussa/shopzone-backend/pkg/logger"
	"github.com/nmoussa/shopzone-backend/pkg/metrics"
	"github.com/nmoussa/shopzone-backend/pkg/redis"
)

// RouterParams bundles everything the HTTP surface depends on.
type RouterParams struct {
	Config         *config.Config
	Logger         *logger.Logger
	DBPinger       db.Pinger
	RedisClient    *redis.Client
	SessionChecker session.AccessSessionChecker
	HTTPMetrics    *metrics.HTTPMetrics
	MetricsHandler http.Handler

	AuthService      auth.Service
	CartService      cart.Service
	CheckoutService  checkoutsvc.Service
	OrdersService    orders.Service
	PaymentsService  payments.Service
	CustomersService customers.Service
	ProductsRepo     *products.Repository
}

// NewRouter assembles the middleware chain and the route tree.
func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(p.HTTPMetrics),
		middleware.CORS(),
	)

	authed := middleware.Auth(cfg.JWT, p.SessionChecker, logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.DBPinger, p.RedisClient))
	})

	if p.MetricsHandler != nil {
		r.Handle("/metrics", p.MetricsHandler)
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", controllers.AuthRegister(p.AuthService, logg))
		r.Post("/login", controllers.AuthLogin(p.AuthService, logg))
		r.Post("/refresh", controllers.AuthRefresh(p.AuthService, logg))
		r.With(authed).Post("/logout", controllers.AuthLogout(p.AuthService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(authed)

		r.Get("/ping", controllers.PrivatePing())

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductsList(p.ProductsRepo, logg))
			r.Get("/{productID}", controllers.ProductsGet(p.ProductsRepo, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Post("/", controllers.CartCreate(p.CartService, logg))
			r.Get("/", controllers.CartList(p.CartService, logg))
			r.Route("/{cartID}", func(r chi.Router) {
				r.Delete("/", controllers.CartDelete(p.CartService, logg))
				r.Post("/items", controllers.CartAddItem(p.CartService, logg))
				r.Get("/items", controllers.CartListItems(p.CartService, logg))
				r.Get("/items/{itemID}", controllers.CartGetItem(p.CartService, logg))
				r.Patch("/items/{itemID}", controllers.CartUpdateItem(p.CartService, logg))
				r.Delete("/items/{itemID}", controllers.CartRemoveItem(p.CartService, logg))
			})
		})

		r.Post("/checkout", controllers.Checkout(p.CheckoutService, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrdersList(p.OrdersService, logg))
			r.Get("/{orderID}", controllers.OrdersGet(p.OrdersService, logg))
			r.Patch("/{orderID}/delivery", controllers.OrdersUpdateDelivery(p.OrdersService, logg))
		})

		r.Route("/payments", func(r chi.Router) {
			r.Post("/", controllers.PaymentsCreate(p.PaymentsService, logg))
			r.Get("/{paymentID}", controllers.PaymentsGet(p.PaymentsService, logg))
			r.Patch("/{paymentID}", controllers.PaymentsUpdateStatus(p.PaymentsService, logg))
		})

		r.Route("/profile", func(r chi.Router) {
			r.Post("/", controllers.ProfileCreate(p.CustomersService, logg))
			r.Get("/", controllers.ProfileGet(p.CustomersService, logg))
			r.Patch("/", controllers.ProfileUpdate(p.CustomersService, logg))
		})

		r.Route("/addresses", func(r chi.Router) {
			r.Post("/", controllers.AddressCreate(p.CustomersService, logg))
			r.Get("/", controllers.AddressList(p.CustomersService, logg))
			r.Route("/{addressID}", func(r chi.Router) {
				r.Get("/", controllers.AddressGet(p.CustomersService, logg))
				r.Patch("/", controllers.AddressUpdate(p.CustomersService, logg))
				r.Delete("/", controllers.AddressDelete(p.CustomersService, logg))
			})
		})
	})

	return r
}
