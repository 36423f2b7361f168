// Package app wires configuration, persistence and services together for the
// API server and the CLI.
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/api"
	"github.com/pageza/recipebox/backend/internal/database"
	"github.com/pageza/recipebox/backend/internal/gateway"
	"github.com/pageza/recipebox/backend/internal/metrics"
	"github.com/pageza/recipebox/backend/internal/middleware"
	"github.com/pageza/recipebox/backend/internal/router"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/store"
)

// App holds the assembled application
type App struct {
	Config  *config.Config
	Log     *zap.Logger
	Backend *database.Backend

	Registry *prometheus.Registry
	Metrics  *metrics.Collector

	Recipes *service.RecipeService
	Auth    *service.AuthService
	Session *service.Session
	Images  *service.ImageService
}

// bcryptCost keeps hashing cheap outside of real deployments' test suites
func bcryptCost(env config.Environment) int {
	if env == config.Test || env == config.CI {
		return bcrypt.MinCost
	}
	return bcrypt.DefaultCost
}

// New opens the configured backend and builds every service on top of it
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	backend, err := database.OpenBackend(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("open backend: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(reg)
	gw := gateway.WithObserver(backend.Gateway, collector)

	s3Config, err := config.NewS3Config(ctx, cfg)
	if err != nil {
		_ = backend.Close()
		return nil, err
	}
	if s3Config == nil {
		log.Info("S3_BUCKET not set, recipe image uploads disabled")
	}

	cost := bcryptCost(cfg.Environment)
	users := store.NewUserStore(gw, store.DefaultAccounts(cost))
	auth := service.NewAuthService(users, service.AuthConfig{
		JWTSecret:  cfg.JWTSecret,
		TokenTTL:   cfg.TokenTTL,
		BcryptCost: cost,
	}, log)
	recipes := service.NewRecipeService(store.NewRecipeStore(gw, store.DefaultRecipes), service.NewSanitizer(), log)

	return &App{
		Config:   cfg,
		Log:      log,
		Backend:  backend,
		Registry: reg,
		Metrics:  collector,
		Recipes:  recipes,
		Auth:     auth,
		Session:  service.NewSession(auth, store.NewSessionStore(gw)),
		Images:   service.NewImageService(s3Config, recipes, log),
	}, nil
}

// Handler builds the HTTP handler serving the API
func (a *App) Handler() http.Handler {
	limiter := middleware.NewRecipeCreationRateLimiter(
		a.Backend.Redis,
		a.Config.RecipeCreateLimit,
		a.Config.RecipeCreateWindow,
		a.Log,
	).WithRecorder(a.Metrics)

	return router.SetupRouter(api.Dependencies{
		Auth:          a.Auth,
		Recipes:       a.Recipes,
		Images:        a.Images,
		CreateLimiter: limiter,
		Metrics:       metrics.Handler(a.Registry),
		Log:           a.Log,
	}, router.Options{
		AllowedOrigins: a.Config.AllowedOrigins,
		Recorder:       a.Metrics,
	})
}

// Reset restores the seeded recipes and accounts and signs the current user out
func (a *App) Reset(ctx context.Context) error {
	if err := a.Recipes.ResetRecipes(ctx); err != nil {
		return err
	}
	if err := a.Auth.ResetUsers(ctx); err != nil {
		return err
	}
	return a.Session.Logout(ctx)
}

// Close releases the backend connections
func (a *App) Close() error {
	return a.Backend.Close()
}
