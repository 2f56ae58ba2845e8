package configs

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	API     APIConfig
	JWT     JWTConfig
	Session SessionConfig
	Redis   RedisConfig

	// CORS
	AllowedOrigins     []string
	AllowedCredentials bool

	// Logging
	LogLevel string

	DefaultPageSize int
}

type ServerConfig struct {
	Port            int
	ShutdownTimeout time.Duration
}

// GetAddr returns the server address in format ":port"
func (s ServerConfig) GetAddr() string {
	return fmt.Sprintf(":%d", s.Port)
}

// APIConfig describes the remote healthcare API
type APIConfig struct {
	BaseURL   string
	Timeout   time.Duration
	UsersPath string
	PostsPath string
}

type JWTConfig struct {
	// Secret is optional; empty means claims are read without verification.
	Secret string
}

type SessionConfig struct {
	Store string // memory | redis
	TTL   time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Load đọc .env (nếu có) rồi environment variables
func Load() (*Config, error) {
	// .env is optional; real environment wins
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		API: APIConfig{
			BaseURL:   strings.TrimRight(getEnv("API_BASE_URL", ""), "/"),
			Timeout:   getEnvAsDuration("API_TIMEOUT", 10*time.Second),
			UsersPath: getEnv("USERS_PATH", "/users"),
			PostsPath: getEnv("POSTS_PATH", "/posts"),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", ""),
		},
		Session: SessionConfig{
			Store: strings.ToLower(getEnv("SESSION_STORE", "memory")),
			TTL:   getEnvAsDuration("SESSION_TTL", 8*time.Hour),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},

		// CORS
		AllowedOrigins:     getEnvAsSlice("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		AllowedCredentials: getEnvAsBool("ALLOW_CREDENTIALS", true),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DefaultPageSize: getEnvAsInt("DEFAULT_PAGE_SIZE", 10),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required settings.
func (c *Config) Validate() error {
	var errs []error
	if c.API.BaseURL == "" {
		errs = append(errs, errors.New("API_BASE_URL is required"))
	}
	switch c.Session.Store {
	case "memory":
	case "redis":
		if c.Redis.Addr == "" {
			errs = append(errs, errors.New("REDIS_ADDR is required when SESSION_STORE=redis"))
		}
	default:
		errs = append(errs, fmt.Errorf("SESSION_STORE must be memory or redis, got %q", c.Session.Store))
	}
	if c.DefaultPageSize < 1 {
		errs = append(errs, errors.New("DEFAULT_PAGE_SIZE must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		// Split by comma and trim spaces
		parts := strings.Split(value, ",")
		result := make([]string, 0, len(parts))
		for _, item := range parts {
			if trimmed := strings.TrimSpace(item); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
