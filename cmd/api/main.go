package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/multierr"

	"github.com/nmoussa/shopzone-backend/api/routes"
	"github.com/nmoussa/shopzone-backend/internal/auth"
	"github.com/nmoussa/shopzone-backend/internal/cart"
	"github.com/nmoussa/shopzone-backend/internal/checkout"
	"github.com/nmoussa/shopzone-backend/internal/customers"
	"github.com/nmoussa/shopzone-backend/internal/orders"
	"github.com/nmoussa/shopzone-backend/internal/payments"
	"github.com/nmoussa/shopzone-backend/internal/products"
	"github.com/nmoussa/shopzone-backend/internal/users"
	"github.com/nmoussa/shopzone-backend/pkg/auth/session"
	"github.com/nmoussa/shopzone-backend/pkg/config"
	"github.com/nmoussa/shopzone-backend/pkg/db"
	"github.com/nmoussa/shopzone-backend/pkg/logger"
	"github.com/nmoussa/shopzone-backend/pkg/metrics"
	"github.com/nmoussa/shopzone-backend/pkg/migrate"
	"github.com/nmoussa/shopzone-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	gormDB := dbClient.DB()
	userRepo := users.NewRepository(gormDB)
	productRepo := products.NewRepository(gormDB)
	cartRepo := cart.NewRepository(gormDB)
	orderRepo := orders.NewRepository(gormDB)
	paymentRepo := payments.NewRepository(gormDB)
	customerRepo := customers.NewRepository(gormDB)
	checkoutRepo := checkout.NewRepository(gormDB)

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:    userRepo,
		Sessions:    sessionManager,
		JWT:         cfg.JWT,
		PasswordCfg: cfg.Password,
	})
	exitOn(logg, "auth service", err)

	cartService, err := cart.NewService(cart.ServiceParams{
		CartRepo:    cartRepo,
		ProductRepo: productRepo,
	})
	exitOn(logg, "cart service", err)

	checkoutService, err := checkout.NewService(checkout.ServiceParams{
		Tx:           dbClient,
		CheckoutRepo: checkoutRepo,
		AddressRepo:  customerRepo,
	})
	exitOn(logg, "checkout service", err)

	ordersService, err := orders.NewService(orders.ServiceParams{OrderRepo: orderRepo})
	exitOn(logg, "orders service", err)

	paymentsService, err := payments.NewService(payments.ServiceParams{
		PaymentRepo: paymentRepo,
		OrderRepo:   orderRepo,
	})
	exitOn(logg, "payments service", err)

	customersService, err := customers.NewService(customers.ServiceParams{CustomerRepo: customerRepo})
	exitOn(logg, "customers service", err)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	handler := routes.NewRouter(routes.RouterParams{
		Config:         cfg,
		Logger:         logg,
		DBPinger:       dbClient,
		RedisClient:    redisClient,
		SessionChecker: sessionManager,
		HTTPMetrics:    httpMetrics,
		MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),

		AuthService:      authService,
		CartService:      cartService,
		CheckoutService:  checkoutService,
		OrdersService:    ordersService,
		PaymentsService:  paymentsService,
		CustomersService: customersService,
		ProductsRepo:     productRepo,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		err := server.Shutdown(shutdownCtx)
		err = multierr.Append(err, redisClient.Close())
		err = multierr.Append(err, dbClient.Close())
		if err != nil {
			logg.Error(ctx, "shutdown finished with errors", err)
			os.Exit(1)
		}
		logg.Info(ctx, "shutdown complete")
	}
}

func exitOn(logg *logger.Logger, what string, err error) {
	if err == nil {
		return
	}
	logg.Error(context.Background(), "failed to create "+what, err)
	os.Exit(1)
}
