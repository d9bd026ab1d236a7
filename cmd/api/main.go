package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/foliocraft/foliocraft-backend/config"
	"github.com/foliocraft/foliocraft-backend/internal/assets/janitor"
	assetsrepository "github.com/foliocraft/foliocraft-backend/internal/assets/repository"
	assetsservice "github.com/foliocraft/foliocraft-backend/internal/assets/service"
	"github.com/foliocraft/foliocraft-backend/internal/assets/storage"
	"github.com/foliocraft/foliocraft-backend/internal/auth"
	"github.com/foliocraft/foliocraft-backend/internal/bootstrap"
	"github.com/foliocraft/foliocraft-backend/internal/db"
	"github.com/foliocraft/foliocraft-backend/internal/logging"
	"github.com/foliocraft/foliocraft-backend/internal/storage/postgres"
)

const shutdownGrace = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.App.Environment, cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.Open(ctx, db.Options{
		DSN:      postgres.DSN(&cfg.Database),
		MaxConns: 10,
		MinConns: 1,
		PingTO:   5 * time.Second,
	})
	if err != nil {
		return err
	}
	defer pool.Close()

	applied, err := db.Migrate(ctx, pool)
	if err != nil {
		return err
	}
	if len(applied) > 0 {
		logger.Info("migrations applied", zap.Strings("files", applied))
	}

	sqlDB, err := postgres.NewConnection(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	rdb, err := bootstrap.OpenRedis(ctx, &cfg.Redis)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
	}

	deps := bootstrap.RouterDeps{
		Config: cfg,
		Logger: logger,
		Pool:   pool,
		SQL:    sqlDB,
		Redis:  rdb,
		Engine: bootstrap.NewEngine(cfg, rdb, logger),
	}

	if cfg.Firebase.AuthMode == "firebase" {
		client, err := auth.InitializeFirebase(ctx, &cfg.Firebase)
		if err != nil {
			return err
		}
		deps.Verifier = client
	} else {
		logger.Warn("AUTH_MODE=header: identities are taken from X-User-Id without verification")
	}

	if cfg.Assets.Bucket != "" {
		host, err := storage.NewFromConfig(ctx, &cfg.Assets)
		if err != nil {
			return err
		}
		deps.Assets = assetsservice.NewAssetService(host, assetsrepository.NewPendingDeletionRepository(sqlDB), cfg.Assets.MaxUploadSize, logger)

		j, err := janitor.New(cfg.Jobs.AssetJanitorSpec, deps.Assets, logger)
		if err != nil {
			return err
		}
		j.Start()
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
			defer cancel()
			if err := j.Stop(stopCtx); err != nil {
				logger.Warn("asset janitor stop", zap.Error(err))
			}
		}()
	} else {
		logger.Info("ASSET_BUCKET not set, asset routes disabled")
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           bootstrap.BuildRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", httpServer.Addr), zap.String("env", cfg.App.Environment))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	return httpServer.Shutdown(shutdownCtx)
}
