package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Store drivers selectable with STORE_DRIVER
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment `yaml:"-"`

	// Server configuration
	ServerPort     string   `yaml:"server_port"`
	ServerHost     string   `yaml:"server_host"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	LogLevel       string   `yaml:"log_level"`

	// Persistence gateway
	StoreDriver    string        `yaml:"store_driver"`
	SQLitePath     string        `yaml:"sqlite_path"`
	GatewayDelay   time.Duration `yaml:"gateway_delay"`
	RedisKeyPrefix string        `yaml:"redis_key_prefix"`

	// Database configuration
	DBHost     string `yaml:"db_host"`
	DBPort     string `yaml:"db_port"`
	DBUser     string `yaml:"db_user"`
	DBPassword string `yaml:"-"`
	DBName     string `yaml:"db_name"`
	DBSSLMode  string `yaml:"db_ssl_mode"`

	// Redis configuration
	RedisHost     string `yaml:"redis_host"`
	RedisPort     string `yaml:"redis_port"`
	RedisPassword string `yaml:"-"`
	RedisDB       int    `yaml:"redis_db"`
	RedisURL      string `yaml:"redis_url"`

	// JWT configuration
	JWTSecret string        `yaml:"-"`
	TokenTTL  time.Duration `yaml:"token_ttl"`

	// Recipe images
	S3Bucket        string `yaml:"s3_bucket"`
	AWSRegion       string `yaml:"aws_region"`
	S3PublicBaseURL string `yaml:"s3_public_base_url"`

	// Recipe creation rate limit
	RecipeCreateLimit  int           `yaml:"recipe_create_limit"`
	RecipeCreateWindow time.Duration `yaml:"recipe_create_window"`
}

// Addr is the listen address of the HTTP server
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// defaults returns the baseline configuration for env
func defaults(env Environment) *Config {
	cfg := &Config{
		Environment:        env,
		ServerPort:         "8080",
		ServerHost:         "0.0.0.0",
		AllowedOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		LogLevel:           "info",
		StoreDriver:        DriverSQLite,
		SQLitePath:         "recipebox.db",
		RedisKeyPrefix:     "recipebox:",
		DBHost:             "localhost",
		DBPort:             "5432",
		DBName:             "recipebox",
		DBSSLMode:          "disable",
		RedisHost:          "localhost",
		RedisPort:          "6379",
		TokenTTL:           24 * time.Hour,
		RecipeCreateLimit:  5,
		RecipeCreateWindow: time.Hour,
	}

	switch env {
	case Development:
		cfg.LogLevel = "debug"
		cfg.GatewayDelay = 300 * time.Millisecond
		cfg.JWTSecret = "dev-secret-change-me"
	case Test, CI:
		cfg.StoreDriver = DriverMemory
		cfg.JWTSecret = "test-jwt-secret"
	}
	return cfg
}

// LoadConfig resolves configuration from defaults, an optional YAML file named by
// CONFIG_FILE, environment variables and finally Docker secrets, in that order.
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := defaults(env)

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := loadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to load environment configuration: %w", err)
	}

	// Load sensitive values based on environment
	switch env {
	case CI:
		loadCISecrets(cfg)
	case Development, Test, Production:
		loadSecrets(cfg)
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadFile overlays the YAML document at path onto cfg
func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// loadEnv overlays every variable that is set onto cfg
func loadEnv(cfg *Config) error {
	setString(&cfg.ServerPort, "SERVER_PORT")
	setString(&cfg.ServerHost, "SERVER_HOST")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.StoreDriver, "STORE_DRIVER")
	setString(&cfg.SQLitePath, "SQLITE_PATH")
	setString(&cfg.RedisKeyPrefix, "REDIS_KEY_PREFIX")
	setString(&cfg.DBHost, "DB_HOST")
	setString(&cfg.DBPort, "DB_PORT")
	setString(&cfg.DBUser, "DB_USER")
	setString(&cfg.DBPassword, "DB_PASSWORD")
	setString(&cfg.DBName, "DB_NAME")
	setString(&cfg.DBSSLMode, "DB_SSL_MODE")
	setString(&cfg.RedisHost, "REDIS_HOST")
	setString(&cfg.RedisPort, "REDIS_PORT")
	setString(&cfg.RedisPassword, "REDIS_PASSWORD")
	setString(&cfg.RedisURL, "REDIS_URL")
	setString(&cfg.JWTSecret, "JWT_SECRET")
	setString(&cfg.S3Bucket, "S3_BUCKET_NAME")
	setString(&cfg.AWSRegion, "AWS_REGION")
	setString(&cfg.S3PublicBaseURL, "S3_PUBLIC_BASE_URL")

	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.AllowedOrigins = splitList(v)
	}

	var errs []string
	if err := setInt(&cfg.RedisDB, "REDIS_DB"); err != nil {
		errs = append(errs, err.Error())
	}
	if err := setInt(&cfg.RecipeCreateLimit, "RECIPE_CREATE_LIMIT"); err != nil {
		errs = append(errs, err.Error())
	}
	if err := setDuration(&cfg.GatewayDelay, "GATEWAY_DELAY"); err != nil {
		errs = append(errs, err.Error())
	}
	if err := setDuration(&cfg.TokenTTL, "TOKEN_TTL"); err != nil {
		errs = append(errs, err.Error())
	}
	if err := setDuration(&cfg.RecipeCreateWindow, "RECIPE_CREATE_WINDOW"); err != nil {
		errs = append(errs, err.Error())
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// loadCISecrets reads sensitive values for CI from the TEST_ prefixed variables GitHub Actions exposes
func loadCISecrets(cfg *Config) {
	setString(&cfg.DBPassword, "TEST_DB_PASSWORD")
	setString(&cfg.JWTSecret, "TEST_JWT_SECRET")
	setString(&cfg.RedisPassword, "TEST_REDIS_PASSWORD")
	setString(&cfg.RedisURL, "TEST_REDIS_URL")
}

// loadSecrets lets Docker secrets override sensitive values
func loadSecrets(cfg *Config) {
	if v := readSecret("db_user"); v != "" {
		cfg.DBUser = v
	}
	if v := readSecret("db_password"); v != "" {
		cfg.DBPassword = v
	}
	if v := readSecret("redis_password"); v != "" {
		cfg.RedisPassword = v
	}
	if v := readSecret("redis_url"); v != "" {
		cfg.RedisURL = v
	}
	if v := readSecret("jwt_secret"); v != "" {
		cfg.JWTSecret = v
	}
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	*dst = n
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s must be a duration, got %q", key, v)
	}
	*dst = d
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
