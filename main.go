package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Omthube23/fastapi-elk-project/config"
	"github.com/Omthube23/fastapi-elk-project/controllers"
	"github.com/Omthube23/fastapi-elk-project/database"
	"github.com/Omthube23/fastapi-elk-project/logging"
	"github.com/Omthube23/fastapi-elk-project/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {

	err := config.LoadEnvVars()

	if err != nil {
		log.Fatalf("Failed to load environment variables: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, err := logging.New(logging.Options{
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
	})
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logger.Sync()

	store, err := openStore(cfg)
	if err != nil {
		logger.Fatal("Failed to open item store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close item store", zap.Error(err))
		}
	}()

	gin.SetMode(cfg.GinMode)
	router := controllers.NewRouter(controllers.NewHandler(store, logger))

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("Server listening", zap.String("addr", srv.Addr), zap.String("store", cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server stopped unexpectedly", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}

// openStore builds the item store for the configured driver. Database-backed
// stores get a read cache unless ITEM_CACHE_TTL is 0.
func openStore(cfg config.Config) (services.ItemStore, error) {
	if cfg.StoreDriver == config.DriverMemory {
		return services.NewMemoryStore(), nil
	}

	db, err := database.ConnectToDB(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}

	var store services.ItemStore = services.NewGormStore(db)
	if cfg.ItemCacheTTL > 0 {
		store = services.NewCachedStore(store, cfg.ItemCacheTTL)
	}
	return store, nil
}
