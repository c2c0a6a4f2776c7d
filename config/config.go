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

// Config holds all configuration for the application
type Config struct {
	Environment Environment `yaml:"-"`

	// Server configuration
	ServerPort  string   `yaml:"server_port"`
	ServerHost  string   `yaml:"server_host"`
	CORSOrigins []string `yaml:"cors_origins"`
	LogLevel    string   `yaml:"log_level"`

	// Database configuration
	DBDriver   string `yaml:"db_driver"`
	DBHost     string `yaml:"db_host"`
	DBPort     string `yaml:"db_port"`
	DBUser     string `yaml:"db_user"`
	DBPassword string `yaml:"db_password"`
	DBName     string `yaml:"db_name"`
	DBSSLMode  string `yaml:"db_ssl_mode"`
	SQLitePath string `yaml:"sqlite_path"`

	// Redis configuration
	RedisHost     string `yaml:"redis_host"`
	RedisPort     string `yaml:"redis_port"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
	RedisURL      string `yaml:"redis_url"`

	// JWT configuration
	JWTSecret       string        `yaml:"jwt_secret"`
	JWTIssuer       string        `yaml:"jwt_issuer"`
	JWTAudience     string        `yaml:"jwt_audience"`
	AccessTokenTTL  time.Duration `yaml:"access_token_ttl"`
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl"`

	// Rate limiting, requests per window per key
	RateLimitWindow time.Duration `yaml:"rate_limit_window"`
	AuthRateLimit   int           `yaml:"auth_rate_limit"`
	WriteRateLimit  int           `yaml:"write_rate_limit"`

	Storage StorageConfig `yaml:"storage"`
}

const defaultJWTSecret = "development-secret-change-me"

// Default returns a configuration suitable for local development.
func Default() *Config {
	return &Config{
		Environment:     Development,
		ServerPort:      "8080",
		ServerHost:      "0.0.0.0",
		CORSOrigins:     []string{"http://localhost:5173"},
		LogLevel:        "info",
		DBDriver:        "sqlite",
		DBPort:          "5432",
		DBSSLMode:       "disable",
		SQLitePath:      "savory.db",
		JWTSecret:       defaultJWTSecret,
		JWTIssuer:       "savory-api",
		JWTAudience:     "savory-client",
		AccessTokenTTL:  60 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
		RateLimitWindow: time.Minute,
		AuthRateLimit:   20,
		WriteRateLimit:  60,
		Storage: StorageConfig{
			Driver:        StorageLocal,
			LocalDir:      "./data/images",
			PublicBaseURL: "/images/recipes",
			MaxImageSize:  5 * 1024 * 1024,
		},
	}
}

// LoadConfig builds the configuration from defaults, an optional YAML file
// (CONFIG_FILE), environment variables and Docker secrets, in that order.
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := Default()
	cfg.Environment = env

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := loadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to load %s configuration: %w", env, err)
	}

	// CI injects secrets as environment variables only
	if env != CI {
		loadSecrets(cfg)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func loadEnv(cfg *Config) error {
	setString(&cfg.ServerPort, "SERVER_PORT")
	setString(&cfg.ServerHost, "SERVER_HOST")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitList(v)
	}

	setString(&cfg.DBDriver, "DB_DRIVER")
	setString(&cfg.DBHost, "DB_HOST")
	setString(&cfg.DBPort, "DB_PORT")
	setString(&cfg.DBUser, "DB_USER")
	setString(&cfg.DBPassword, "DB_PASSWORD")
	setString(&cfg.DBName, "DB_NAME")
	setString(&cfg.DBSSLMode, "DB_SSL_MODE")
	setString(&cfg.SQLitePath, "SQLITE_PATH")

	setString(&cfg.RedisHost, "REDIS_HOST")
	setString(&cfg.RedisPort, "REDIS_PORT")
	setString(&cfg.RedisPassword, "REDIS_PASSWORD")
	setString(&cfg.RedisURL, "REDIS_URL")

	setString(&cfg.JWTSecret, "JWT_SECRET")
	setString(&cfg.JWTIssuer, "JWT_ISSUER")
	setString(&cfg.JWTAudience, "JWT_AUDIENCE")

	setString(&cfg.Storage.Driver, "STORAGE_DRIVER")
	setString(&cfg.Storage.LocalDir, "STORAGE_LOCAL_DIR")
	setString(&cfg.Storage.PublicBaseURL, "STORAGE_PUBLIC_BASE_URL")
	setString(&cfg.Storage.Bucket, "S3_BUCKET_NAME")
	setString(&cfg.Storage.Region, "AWS_REGION")
	setString(&cfg.Storage.Endpoint, "STORAGE_ENDPOINT")
	setString(&cfg.Storage.AccessKey, "STORAGE_ACCESS_KEY")
	setString(&cfg.Storage.SecretKey, "STORAGE_SECRET_KEY")

	var errs []string
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err.Error())
		}
	}
	collect(setInt(&cfg.RedisDB, "REDIS_DB"))
	collect(setInt(&cfg.AuthRateLimit, "AUTH_RATE_LIMIT"))
	collect(setInt(&cfg.WriteRateLimit, "WRITE_RATE_LIMIT"))
	collect(setDuration(&cfg.AccessTokenTTL, "ACCESS_TOKEN_TTL"))
	collect(setDuration(&cfg.RefreshTokenTTL, "REFRESH_TOKEN_TTL"))
	collect(setDuration(&cfg.RateLimitWindow, "RATE_LIMIT_WINDOW"))
	collect(setBool(&cfg.Storage.UseSSL, "STORAGE_USE_SSL"))
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// loadSecrets overrides sensitive values with Docker secrets when present
func loadSecrets(cfg *Config) {
	overrides := map[string]*string{
		"db_user":            &cfg.DBUser,
		"db_password":        &cfg.DBPassword,
		"jwt_secret":         &cfg.JWTSecret,
		"redis_password":     &cfg.RedisPassword,
		"redis_url":          &cfg.RedisURL,
		"storage_access_key": &cfg.Storage.AccessKey,
		"storage_secret_key": &cfg.Storage.SecretKey,
	}
	for name, dst := range overrides {
		if v := readSecret(name); v != "" {
			*dst = v
		}
	}
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

// PostgresDSN returns the lib/pq connection string
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// RedisEnabled reports whether a Redis server is configured
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// Addr returns the listen address of the HTTP server
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
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
		return fmt.Errorf("%s must be an integer", key)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s must be a boolean", key)
	}
	*dst = b
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s must be a duration", key)
	}
	*dst = d
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
