package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Token modes
const (
	TokenModeOpaque = "opaque"
	TokenModeJWT    = "jwt"
)

// Password digest schemes
const (
	PasswordSchemeSHA256 = "sha256"
	PasswordSchemeBcrypt = "bcrypt"
)

// Config holds all configuration for the application
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Logger   LoggerConfig   `mapstructure:"logger"`
	Security SecurityConfig `mapstructure:"security"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	Host         string        `mapstructure:"host"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// StorageConfig holds document store configuration
type StorageConfig struct {
	// DataDir is the directory holding one JSON file per collection.
	DataDir string `mapstructure:"data_dir"`
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	// TokenMode selects between opaque bearer tokens (the compatible
	// default) and signed, time-boxed JWTs.
	TokenMode      string        `mapstructure:"token_mode"`
	TokenSecret    string        `mapstructure:"token_secret"`
	TokenExpiresIn time.Duration `mapstructure:"token_expires_in"`
	TokenIssuer    string        `mapstructure:"token_issuer"`
	// PasswordScheme selects between the legacy unsalted sha256 digest
	// (compatible with existing data files) and bcrypt.
	PasswordScheme string `mapstructure:"password_scheme"`
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	Filename string `mapstructure:"filename"`
}

// SecurityConfig holds security-related configuration
type SecurityConfig struct {
	CORSAllowedOrigins string        `mapstructure:"cors_allowed_origins"`
	RateLimitRequests  int           `mapstructure:"rate_limit_requests"`
	RateLimitWindow    time.Duration `mapstructure:"rate_limit_window"`
	// AdminAuth gates /api/admin behind bearer tokens. Off by default:
	// the admin console predates token checks and sends none.
	AdminAuth bool `mapstructure:"admin_auth"`
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Load loads configuration from various sources
func Load() (*Config, error) {
	// Load .env file if it exists (ignore errors)
	_ = godotenv.Load()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()
	bindEnvVars()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	// App defaults
	viper.SetDefault("app.name", "Storefront")
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.environment", "development")
	viper.SetDefault("app.debug", false)

	// Server defaults
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")

	// Storage defaults
	viper.SetDefault("storage.data_dir", "data")

	// Auth defaults
	viper.SetDefault("auth.token_mode", TokenModeOpaque)
	viper.SetDefault("auth.token_secret", "")
	viper.SetDefault("auth.token_expires_in", "24h")
	viper.SetDefault("auth.token_issuer", "storefront-api")
	viper.SetDefault("auth.password_scheme", PasswordSchemeSHA256)

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "json")
	viper.SetDefault("logger.output", "stdout")

	// Security defaults
	viper.SetDefault("security.cors_allowed_origins", "*")
	viper.SetDefault("security.rate_limit_requests", 100)
	viper.SetDefault("security.rate_limit_window", "1m")
	viper.SetDefault("security.admin_auth", false)

	// Metrics defaults
	viper.SetDefault("metrics.enabled", true)
}

func bindEnvVars() {
	// App
	viper.BindEnv("app.name", "APP_NAME")
	viper.BindEnv("app.version", "APP_VERSION")
	viper.BindEnv("app.environment", "APP_ENVIRONMENT")
	viper.BindEnv("app.debug", "APP_DEBUG")

	// Server
	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("server.host", "SERVER_HOST")
	viper.BindEnv("server.read_timeout", "SERVER_READ_TIMEOUT")
	viper.BindEnv("server.write_timeout", "SERVER_WRITE_TIMEOUT")
	viper.BindEnv("server.idle_timeout", "SERVER_IDLE_TIMEOUT")

	// Storage
	viper.BindEnv("storage.data_dir", "DATA_DIR")

	// Auth
	viper.BindEnv("auth.token_mode", "AUTH_TOKEN_MODE")
	viper.BindEnv("auth.token_secret", "AUTH_TOKEN_SECRET")
	viper.BindEnv("auth.token_expires_in", "AUTH_TOKEN_EXPIRES_IN")
	viper.BindEnv("auth.token_issuer", "AUTH_TOKEN_ISSUER")
	viper.BindEnv("auth.password_scheme", "AUTH_PASSWORD_SCHEME")

	// Logger
	viper.BindEnv("logger.level", "LOG_LEVEL")
	viper.BindEnv("logger.format", "LOG_FORMAT")
	viper.BindEnv("logger.output", "LOG_OUTPUT")
	viper.BindEnv("logger.filename", "LOG_FILENAME")

	// Security
	viper.BindEnv("security.cors_allowed_origins", "CORS_ALLOWED_ORIGINS")
	viper.BindEnv("security.rate_limit_requests", "RATE_LIMIT_REQUESTS")
	viper.BindEnv("security.rate_limit_window", "RATE_LIMIT_WINDOW")
	viper.BindEnv("security.admin_auth", "ADMIN_AUTH")

	// Metrics
	viper.BindEnv("metrics.enabled", "ENABLE_METRICS")
}

func validateConfig(cfg *Config) error {
	if cfg.Storage.DataDir == "" {
		return fmt.Errorf("storage data directory is required")
	}

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535")
	}

	switch cfg.Auth.TokenMode {
	case TokenModeOpaque:
	case TokenModeJWT:
		if cfg.Auth.TokenSecret == "" {
			return fmt.Errorf("auth token secret is required in jwt token mode")
		}
	default:
		return fmt.Errorf("auth token mode must be %q or %q", TokenModeOpaque, TokenModeJWT)
	}

	switch cfg.Auth.PasswordScheme {
	case PasswordSchemeSHA256, PasswordSchemeBcrypt:
	default:
		return fmt.Errorf("auth password scheme must be %q or %q", PasswordSchemeSHA256, PasswordSchemeBcrypt)
	}

	return nil
}

// IsDevelopment returns true if the environment is development
func (cfg *AppConfig) IsDevelopment() bool {
	return cfg.Environment == "development"
}

// IsProduction returns true if the environment is production
func (cfg *AppConfig) IsProduction() bool {
	return cfg.Environment == "production"
}
