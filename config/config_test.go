package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T, env string) {
	t.Helper()
	for _, k := range []string{
		"CI", "CONFIG_FILE", "SERVER_PORT", "STORE_DRIVER", "SQLITE_PATH", "GATEWAY_DELAY",
		"DB_HOST", "DB_USER", "DB_PASSWORD", "DB_NAME", "JWT_SECRET", "TOKEN_TTL",
		"REDIS_URL", "REDIS_HOST", "ALLOWED_ORIGINS", "RECIPE_CREATE_LIMIT", "LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
	t.Setenv("ENV", env)
	t.Setenv("SECRETS_DIR", t.TempDir())
}

func TestLoadConfigDevelopmentDefaults(t *testing.T) {
	isolate(t, "development")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, Development, cfg.Environment)
	assert.Equal(t, DriverSQLite, cfg.StoreDriver)
	assert.Equal(t, 300*time.Millisecond, cfg.GatewayDelay)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.NotEmpty(t, cfg.JWTSecret)
}

func TestLoadConfigTestEnvironmentHasNoDelay(t *testing.T) {
	isolate(t, "test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DriverMemory, cfg.StoreDriver)
	assert.Zero(t, cfg.GatewayDelay)
}

func TestLoadConfigEnvironmentOverrides(t *testing.T) {
	isolate(t, "development")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DB_USER", "postgres")
	t.Setenv("DB_PASSWORD", "postpass")
	t.Setenv("GATEWAY_DELAY", "500ms")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("RECIPE_CREATE_LIMIT", "20")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, DriverPostgres, cfg.StoreDriver)
	assert.Equal(t, "postpass", cfg.DBPassword)
	assert.Equal(t, 500*time.Millisecond, cfg.GatewayDelay)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 20, cfg.RecipeCreateLimit)
}

func TestLoadConfigFileThenEnv(t *testing.T) {
	isolate(t, "development")
	path := filepath.Join(t.TempDir(), "recipebox.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server_port: "7070"
store_driver: redis
redis_url: redis://cache:6379/0
gateway_delay: 1s
token_ttl: 2h
`), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("SERVER_PORT", "7171")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "7171", cfg.ServerPort)
	assert.Equal(t, DriverRedis, cfg.StoreDriver)
	assert.Equal(t, "redis://cache:6379/0", cfg.RedisURL)
	assert.Equal(t, time.Second, cfg.GatewayDelay)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
}

func TestLoadConfigReadsSecrets(t *testing.T) {
	isolate(t, "production")
	dir := os.Getenv("SECRETS_DIR")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jwt_secret"), []byte("from-secret\n"), 0o600))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-secret", cfg.JWTSecret)
}

func TestLoadConfigProductionRequiresSecret(t *testing.T) {
	isolate(t, "production")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt_secret")
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	isolate(t, "development")
	t.Setenv("STORE_DRIVER", "mongo")
	t.Setenv("TOKEN_TTL", "soon")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TOKEN_TTL")
}

func TestValidateConfigAggregates(t *testing.T) {
	cfg := defaults(Production)
	cfg.StoreDriver = "mongo"
	cfg.RecipeCreateLimit = 0

	err := ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORE_DRIVER")
	assert.Contains(t, err.Error(), "jwt_secret")
	assert.Contains(t, err.Error(), "RECIPE_CREATE_LIMIT")
}

func TestParseEnvironment(t *testing.T) {
	assert.Equal(t, Production, ParseEnvironment("prod"))
	assert.Equal(t, Test, ParseEnvironment("TEST"))
	assert.Equal(t, Development, ParseEnvironment(""))
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(&Config{Environment: Production, LogLevel: "warn"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(-1))

	_, err = NewLogger(&Config{Environment: Development, LogLevel: "loud"})
	assert.Error(t, err)
}
