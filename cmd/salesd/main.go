package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/musika/salescore/internal/checkout"
	"github.com/musika/salescore/internal/common"
	"github.com/musika/salescore/internal/lifecycle"
	"github.com/musika/salescore/internal/repository"
	"github.com/musika/salescore/internal/server"
)

func main() {
	// Optional .env for local development.
	_ = godotenv.Overload()

	// Logger
	zl, _ := zap.NewProduction()
	defer zl.Sync()
	log := zl.Sugar()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := common.LoadConfig()
	if cfg.Database.DSN == "" {
		log.Fatal("DB_URL env var is required")
	}

	// Context with signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		catalog repository.Catalog
		store   repository.TransactionStore
	)
	switch cfg.Database.Driver {
	case "sqlite":
		db, err := repository.OpenSQLite(cfg.Database.DSN, logger)
		if err != nil {
			log.Fatalf("opening sqlite: %v", err)
		}
		defer db.Close()
		catalog = repository.NewSQLiteCatalog(db, logger)
		store = repository.NewSQLiteTransactionStore(db, logger)
	case "postgres":
		pool, err := repository.OpenPool(ctx, cfg.Database, logger)
		if err != nil {
			log.Fatalf("creating DB pool: %v", err)
		}
		defer pool.Close()
		if err := repository.HealthCheck(ctx, pool, logger); err != nil {
			log.Fatalf("DB health failed: %v", err)
		}
		log.Infow("DB health OK")
		if err := repository.EnsureSchema(ctx, pool, logger); err != nil {
			log.Fatalf("ensuring schema: %v", err)
		}
		catalog = repository.NewPostgresCatalog(pool, logger)
		store = repository.NewPostgresTransactionStore(pool, logger)
	default:
		log.Fatalf("unknown DB_DRIVER %q (want postgres or sqlite)", cfg.Database.Driver)
	}

	manager := lifecycle.NewManager(catalog, store, logger)
	sales := checkout.NewService(catalog, manager, cfg.Sales, logger)
	api := server.New(sales, manager, logger)

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      api.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Infof("HTTP serving on %s", cfg.Server.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http serve: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Errorf("shutdown: %v", err)
	}
	log.Info("stopped.")
}
