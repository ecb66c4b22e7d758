package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// EnvProduction enables secure, SameSite=Lax session cookies.
	EnvProduction = "production"

	// DriverPostgres and DriverMySQL are the supported DB_DRIVER values.
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"

	defaultJWTSecret = "change-me"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort   string   `yaml:"serverPort"`
	Environment  string   `yaml:"environment"`
	DBDriver     string   `yaml:"dbDriver"`
	DatabaseDSN  string   `yaml:"databaseDSN"`
	ResetDB      bool     `yaml:"resetDB"`
	RedisAddr    string   `yaml:"redisAddr"`
	RedisDB      int      `yaml:"redisDB"`
	RedisPass    string   `yaml:"redisPassword"`
	JWTSecret    string   `yaml:"jwtSecret"`
	JWTExpiresIn int      `yaml:"jwtExpiresIn"` // seconds
	CORSOrigins  []string `yaml:"corsOrigins"`
	LogLevel     string   `yaml:"logLevel"`
	LogFormat    string   `yaml:"logFormat"`
	SwaggerHost  string   `yaml:"swaggerHost"`
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// Load builds Config from environment with sensible defaults.
// A .env file and the YAML file named by CONFIG_FILE are both optional;
// environment variables win over the file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	cfg.ServerPort = getEnv("SERVER_PORT", cfg.ServerPort)
	cfg.Environment = getEnv("ENVIRONMENT", cfg.Environment)
	cfg.DBDriver = strings.ToLower(getEnv("DB_DRIVER", cfg.DBDriver))
	cfg.DatabaseDSN = getEnv("DATABASE_DSN", cfg.DatabaseDSN)
	cfg.ResetDB = getEnvBool("RESET_DB", cfg.ResetDB)
	cfg.RedisAddr = getEnv("REDIS_ADDR", cfg.RedisAddr)
	cfg.RedisDB = getEnvInt("REDIS_DB", cfg.RedisDB)
	cfg.RedisPass = getEnv("REDIS_PASSWORD", cfg.RedisPass)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.JWTExpiresIn = getEnvInt("JWT_EXPIRES_IN", cfg.JWTExpiresIn)
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitCSV(v)
	}
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)
	cfg.SwaggerHost = getEnv("SWAGGER_HOST", cfg.SwaggerHost)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		ServerPort:   "8080",
		Environment:  "development",
		DBDriver:     DriverPostgres,
		DatabaseDSN:  "host=localhost user=spotbook password=spotbook dbname=spotbook port=5432 sslmode=disable",
		RedisAddr:    "localhost:6379",
		JWTSecret:    defaultJWTSecret,
		JWTExpiresIn: 604800,
		CORSOrigins:  []string{"http://localhost:3000"},
		LogLevel:     "info",
		LogFormat:    "json",
	}
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case DriverPostgres, DriverMySQL:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.IsProduction() && (c.JWTSecret == "" || c.JWTSecret == defaultJWTSecret) {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}
	if c.JWTExpiresIn <= 0 {
		return fmt.Errorf("JWT_EXPIRES_IN must be positive, got %d", c.JWTExpiresIn)
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
