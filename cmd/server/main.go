package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"go.uber.org/zap"

	"lickees/internal/cache"
	"lickees/internal/catalog"
	"lickees/internal/config"
	"lickees/internal/db"
	httpapi "lickees/internal/http"
	"lickees/internal/inventory"
	"lickees/internal/logging"
	"lickees/internal/repository"
	"lickees/internal/service"
	"lickees/internal/settings"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	var store repository.SalesStore
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("database error", zap.Error(err))
		}
		defer pool.Close()

		if err := db.RunMigrations(ctx, pool, logger); err != nil {
			logger.Fatal("migration error", zap.Error(err))
		}
		store = repository.New(pool)
	} else {
		logger.Warn("DATABASE_URL not set, sales are kept in memory only")
		store = repository.NewMemoryStore(time.Now)
	}

	prefs, err := settings.Open(cfg.SettingsPath, cfg.PhoneRegion)
	if err != nil {
		logger.Fatal("settings error", zap.Error(err))
	}
	ledger := inventory.NewLedger(catalog.Names(), prefs.Inventory(), cfg.DefaultStock, cfg.LowStockThreshold)

	deps := service.Deps{
		Store:       store,
		Ledger:      ledger,
		Settings:    prefs,
		Logger:      logger,
		Location:    cfg.Location,
		PhoneRegion: cfg.PhoneRegion,
	}
	if cfg.RedisAddress != "" {
		rdb, err := cache.Connect(ctx, cfg.RedisAddress)
		if err != nil {
			logger.Warn("redis unavailable, running without cache and till lock", zap.Error(err))
		} else {
			defer rdb.Close()
			deps.Cache = cache.NewAnalyticsCache(rdb, 10*time.Minute)
			deps.Lock = cache.NewTillLock(rdb, "main", 30*time.Second)
		}
	}

	svc := service.New(deps)
	handler := httpapi.NewHandler(svc, logger)
	router := httpapi.NewRouter(handler, logger)

	server := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("lickees listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("force close failed", zap.Error(closeErr))
		}
	}
}
