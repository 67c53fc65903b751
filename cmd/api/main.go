package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/vendora-backend/api/routes"
	"github.com/angelmondragon/vendora-backend/internal/commission"
	"github.com/angelmondragon/vendora-backend/internal/earnings"
	"github.com/angelmondragon/vendora-backend/internal/orders"
	"github.com/angelmondragon/vendora-backend/internal/payouts"
	"github.com/angelmondragon/vendora-backend/internal/stores"
	"github.com/angelmondragon/vendora-backend/internal/wallet"
	"github.com/angelmondragon/vendora-backend/pkg/config"
	"github.com/angelmondragon/vendora-backend/pkg/db"
	"github.com/angelmondragon/vendora-backend/pkg/logger"
	"github.com/angelmondragon/vendora-backend/pkg/metrics"
	"github.com/angelmondragon/vendora-backend/pkg/migrate"
	"github.com/angelmondragon/vendora-backend/pkg/redis"
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

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	settlementMetrics := metrics.NewSettlementMetrics(registry)

	gdb := dbClient.DB()
	walletRepo := wallet.NewRepository(gdb)

	storesService, err := stores.NewService(stores.NewRepository(gdb), dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create stores service", err)
		os.Exit(1)
	}

	commissionService, err := commission.NewService(commission.NewRepository(gdb))
	if err != nil {
		logg.Error(context.Background(), "failed to create commission service", err)
		os.Exit(1)
	}

	ordersService, err := orders.NewService(orders.NewRepository(gdb), dbClient, storesService, commissionService, walletRepo, settlementMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	payoutsService, err := payouts.NewService(payouts.NewRepository(gdb), dbClient, storesService, walletRepo, cfg.Payouts, settlementMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create payouts service", err)
		os.Exit(1)
	}

	earningsService, err := earnings.NewService(earnings.NewRepository(gdb), storesService)
	if err != nil {
		logg.Error(context.Background(), "failed to create earnings service", err)
		os.Exit(1)
	}

	walletService, err := wallet.NewService(walletRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create wallet service", err)
		os.Exit(1)
	}

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
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, registry, routes.Services{
			Orders:     ordersService,
			Payouts:    payoutsService,
			Earnings:   earningsService,
			Wallet:     walletService,
			Commission: commissionService,
			Stores:     storesService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
