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

	"github.com/angelmondragon/bookhaven-backend/api/controllers"
	"github.com/angelmondragon/bookhaven-backend/api/routes"
	"github.com/angelmondragon/bookhaven-backend/internal/admin"
	"github.com/angelmondragon/bookhaven-backend/internal/auth"
	"github.com/angelmondragon/bookhaven-backend/internal/catalog"
	"github.com/angelmondragon/bookhaven-backend/internal/customers"
	"github.com/angelmondragon/bookhaven-backend/internal/inventory"
	"github.com/angelmondragon/bookhaven-backend/internal/orders"
	"github.com/angelmondragon/bookhaven-backend/internal/users"
	"github.com/angelmondragon/bookhaven-backend/internal/visits"
	"github.com/angelmondragon/bookhaven-backend/pkg/auth/session"
	"github.com/angelmondragon/bookhaven-backend/pkg/config"
	"github.com/angelmondragon/bookhaven-backend/pkg/db"
	"github.com/angelmondragon/bookhaven-backend/pkg/logger"
	"github.com/angelmondragon/bookhaven-backend/pkg/metrics"
	"github.com/angelmondragon/bookhaven-backend/pkg/migrate"
	"github.com/angelmondragon/bookhaven-backend/pkg/redis"
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
	requireResource(ctx, logg, "database", err)

	err = migrate.MaybeRunDev(ctx, cfg, logg, dbClient)
	requireResource(ctx, logg, "dev migrations", err)

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	requireResource(ctx, logg, "redis", err)

	defer func() {
		if err := multierr.Combine(dbClient.Close(), redisClient.Close()); err != nil {
			logg.Error(context.Background(), "error closing resources", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	requireResource(ctx, logg, "session manager", err)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	conn := dbClient.DB()
	userRepo := users.NewRepository(conn)

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	requireResource(ctx, logg, "auth service", err)

	registerService, err := auth.NewRegisterService(auth.RegisterServiceParams{
		DB:             dbClient,
		PasswordConfig: cfg.Password,
	})
	requireResource(ctx, logg, "register service", err)

	catalogService, err := catalog.NewService(catalog.NewRepository(conn), time.Now)
	requireResource(ctx, logg, "catalog service", err)

	inventoryService, err := inventory.NewService(inventory.NewRepository(conn))
	requireResource(ctx, logg, "inventory service", err)

	customerService, err := customers.NewService(customers.NewRepository(conn), userRepo)
	requireResource(ctx, logg, "customer service", err)

	orderService, err := orders.NewService(orders.ServiceParams{
		Repo:     orders.NewRepository(conn),
		Tx:       dbClient,
		Recorder: metrics.NewCartMetrics(reg),
	})
	requireResource(ctx, logg, "order service", err)

	visitCounter, err := visits.NewCounter(redisClient, cfg.Session.TTL)
	requireResource(ctx, logg, "visit counter", err)

	adminService, err := admin.NewService(admin.DefaultRegistry(), conn)
	requireResource(ctx, logg, "admin service", err)

	router := routes.NewRouter(routes.Dependencies{
		Config: cfg,
		Logger: logg,
		Health: map[string]controllers.Pinger{
			"db":    dbClient,
			"redis": redisClient,
		},
		Sessions:       sessionManager,
		RateLimits:     redisClient,
		Idempotency:    redisClient,
		HTTPMetrics:    metrics.NewHTTPMetrics(reg),
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
		Auth:           authService,
		Register:       registerService,
		Catalog:        catalogService,
		Inventory:      inventoryService,
		Visits:         visitCounter,
		Orders:         orderService,
		Customers:      customerService,
		Admin:          adminService,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	logCtx := logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logg.Info(logCtx, "starting api server")
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(logCtx, "api server stopped unexpectedly", err)
		}
		return
	case <-ctx.Done():
	}

	logg.Info(logCtx, "shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(logCtx, "graceful shutdown failed", err)
	}
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, "resource not working: "+resource, err)
	os.Exit(1)
}
