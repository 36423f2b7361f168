package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/app"
	"github.com/pageza/recipebox/backend/internal/server"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("recipebox api: %v", err)
	}
}

func run() error {
	// A missing .env is fine, real deployments use the environment
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()
	a.Backend.ConnectRedis(ctx, cfg, logger)

	logger.Info("starting recipebox api",
		zap.String("environment", string(cfg.Environment)),
		zap.String("store_driver", cfg.StoreDriver),
		zap.String("addr", cfg.Addr()),
	)
	return server.New(cfg, a.Handler(), logger).Run(ctx)
}
