package service_test

import (
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/pageza/recipebox/backend/internal/gateway"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/store"
)

type fixture struct {
	gw       *gateway.MemoryGateway
	recipes  *service.RecipeService
	auth     *service.AuthService
	session  *service.Session
	sessions *store.SessionStore
}

func setup(t *testing.T) *fixture {
	t.Helper()
	gw := gateway.NewMemoryGateway()
	log := zap.NewNop()

	users := store.NewUserStore(gw, store.DefaultAccounts(bcrypt.MinCost))
	sessions := store.NewSessionStore(gw)
	auth := service.NewAuthService(users, service.AuthConfig{
		JWTSecret:  "test-secret",
		TokenTTL:   time.Hour,
		BcryptCost: bcrypt.MinCost,
	}, log)

	return &fixture{
		gw:       gw,
		recipes:  service.NewRecipeService(store.NewRecipeStore(gw, store.DefaultRecipes), nil, log),
		auth:     auth,
		session:  service.NewSession(auth, sessions),
		sessions: sessions,
	}
}
