package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/filter"
	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/types"
)

func testConfig(driver string) *config.Config {
	return &config.Config{
		Environment:        config.Test,
		ServerHost:         "127.0.0.1",
		ServerPort:         "0",
		StoreDriver:        driver,
		JWTSecret:          "test-jwt-secret",
		TokenTTL:           time.Hour,
		RecipeCreateLimit:  5,
		RecipeCreateWindow: time.Hour,
	}
}

func TestNewMemoryApp(t *testing.T) {
	gin.SetMode(gin.TestMode)
	a, err := New(context.Background(), testConfig(config.DriverMemory), zap.NewNop())
	require.NoError(t, err)
	defer a.Close()

	w := httptest.NewRecorder()
	a.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/recipes?q=pasta", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Creamy Garlic Pasta")

	// Gateway traffic shows up in the metrics
	w = httptest.NewRecorder()
	a.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/metrics", nil))
	assert.Contains(t, w.Body.String(), `recipebox_gateway_operations_total{key="recipes",op="get",outcome="missing"} 1`)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestSQLiteAppPersistsAcrossRestarts(t *testing.T) {
	cfg := testConfig(config.DriverSQLite)
	cfg.SQLitePath = filepath.Join(t.TempDir(), "recipes.db")
	ctx := context.Background()

	a, err := New(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	user, err := a.Session.Login(ctx, "test@example.com", "password123")
	require.NoError(t, err)
	created, err := a.Recipes.CreateRecipe(ctx, &user, types.RecipeInput{
		Title:        "Shakshuka",
		Description:  "Eggs in spiced tomato sauce",
		Ingredients:  []string{"4 eggs", "1 can tomatoes"},
		Instructions: model.Instructions{"Simmer the sauce", "Poach the eggs"},
		CookingTime:  25,
		Servings:     2,
		Difficulty:   model.DifficultyEasy,
		Dietary:      []string{"vegetarian", "gluten-free"},
	})
	require.NoError(t, err)
	require.NoError(t, a.Close())

	b, err := New(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	defer b.Close()

	cur, err := b.Session.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, "test123", cur.ID)

	got, err := b.Recipes.ListRecipes(ctx, filter.Criteria{Tags: []string{"gluten-free"}, Category: filter.CategoryQuick})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, created.ID, got[0].ID)

	require.NoError(t, b.Reset(ctx))
	all, err := b.Recipes.ListRecipes(ctx, filter.Criteria{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
	cur, err = b.Session.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, cur)
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	_, err := New(context.Background(), testConfig("etcd"), zap.NewNop())
	assert.ErrorContains(t, err, "open backend")
}
