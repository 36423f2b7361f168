package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/recipebox/backend/internal/errs"
	"github.com/pageza/recipebox/backend/internal/service"
)

// respondError writes the JSON error response for err. Unknown errors are
// logged and hidden behind a generic 500.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	var verr *errs.ValidationError
	var aerr *errs.AuthError

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": verr.Fields})
	case errors.Is(err, errs.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, errs.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": "you can only change your own recipes"})
	case errors.Is(err, errs.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "must be logged in"})
	case errors.As(err, &aerr):
		status := http.StatusUnauthorized
		if aerr == errs.ErrEmailRegistered {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": aerr.Message})
	case errors.Is(err, service.ErrImagesDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
	}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}
