package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/hellolocalo/localo-backend/api/routes"
	"github.com/hellolocalo/localo-backend/internal/auth"
	"github.com/hellolocalo/localo-backend/internal/banners"
	"github.com/hellolocalo/localo-backend/internal/categories"
	"github.com/hellolocalo/localo-backend/internal/geo"
	"github.com/hellolocalo/localo-backend/internal/intelligence"
	"github.com/hellolocalo/localo-backend/internal/orders"
	"github.com/hellolocalo/localo-backend/internal/payments"
	"github.com/hellolocalo/localo-backend/internal/products"
	"github.com/hellolocalo/localo-backend/internal/sysconfig"
	"github.com/hellolocalo/localo-backend/internal/vendors"
	"github.com/hellolocalo/localo-backend/pkg/auth/session"
	"github.com/hellolocalo/localo-backend/pkg/config"
	"github.com/hellolocalo/localo-backend/pkg/db"
	"github.com/hellolocalo/localo-backend/pkg/logger"
	"github.com/hellolocalo/localo-backend/pkg/migrate"
	"github.com/hellolocalo/localo-backend/pkg/redis"
)

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
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	svcs, err := buildServices(cfg, dbClient, redisClient, sessionManager)
	if err != nil {
		logg.Error(context.Background(), "failed to wire services", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

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
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, sessionManager, svcs, registry),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func buildServices(cfg *config.Config, dbClient *db.Client, redisClient *redis.Client, sessions *session.Manager) (routes.Services, error) {
	gdb := dbClient.DB()
	dirCache := vendors.NewDirectoryCache(redisClient, redisClient, cfg.Directory.SnapshotTTL)

	categoriesSvc, err := categories.NewService(categories.NewRepository(gdb), dbClient, dirCache)
	if err != nil {
		return routes.Services{}, err
	}

	configSvc, err := sysconfig.NewService(sysconfig.NewRepository(gdb))
	if err != nil {
		return routes.Services{}, err
	}

	vendorsSvc, err := vendors.NewService(vendors.NewRepository(gdb), dbClient, categoriesSvc, vendors.Options{
		Snapshot: dirCache,
		Pinned:   configSvc,
	})
	if err != nil {
		return routes.Services{}, err
	}

	productsSvc, err := products.NewService(products.NewRepository(gdb), dbClient, dirCache)
	if err != nil {
		return routes.Services{}, err
	}

	ordersSvc, err := orders.NewService(orders.NewRepository(gdb), dbClient)
	if err != nil {
		return routes.Services{}, err
	}

	bannersSvc, err := banners.NewService(banners.NewRepository(gdb), dbClient)
	if err != nil {
		return routes.Services{}, err
	}

	authSvc, err := auth.NewService(auth.NewRepository(gdb), sessions, cfg.JWT, cfg.Password)
	if err != nil {
		return routes.Services{}, err
	}

	aiSvc, err := intelligence.NewService(cfg.Search)
	if err != nil {
		return routes.Services{}, err
	}

	paymentsSvc, err := payments.NewService(redisClient, redisClient, cfg.Payments)
	if err != nil {
		return routes.Services{}, err
	}

	return routes.Services{
		Auth:       authSvc,
		Categories: categoriesSvc,
		Vendors:    vendorsSvc,
		Products:   productsSvc,
		Orders:     ordersSvc,
		Banners:    bannersSvc,
		Sysconfig:  configSvc,
		Geo:        geo.NewService(),
		AI:         aiSvc,
		Payments:   paymentsSvc,
	}, nil
}
