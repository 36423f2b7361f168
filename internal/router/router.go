// Package router assembles the gin engine: middleware chain plus API routes.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/recipebox/backend/internal/api"
	"github.com/pageza/recipebox/backend/internal/middleware"
)

// Options configures the middleware chain
type Options struct {
	AllowedOrigins []string
	// Recorder receives per-request metrics; nil disables them
	Recorder middleware.RequestRecorder
}

// SetupRouter configures the application routes
func SetupRouter(deps api.Dependencies, opts Options) *gin.Engine {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
		deps.Log = log
	}

	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(log),
		middleware.Recovery(log),
		middleware.CORS(opts.AllowedOrigins),
	)
	if opts.Recorder != nil {
		router.Use(middleware.Metrics(opts.Recorder))
	}

	api.RegisterRoutes(router, deps)
	return router
}
