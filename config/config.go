package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application.
type Config struct {
	// Server configuration
	ServerHost string
	ServerPort string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// JWT configuration
	JWTSecret string
	JWTExpiry time.Duration

	// AI configuration
	AIAPIKey  string
	AIBaseURL string
	AIModel   string

	// Object storage configuration
	AWSRegion string
	S3Bucket  string

	// CORS configuration
	AllowedOrigins []string
}

// Load builds the configuration from environment variables. Secrets accept a
// *_FILE variant pointing at a file, which wins only when the plain variable
// is unset.
func Load() (*Config, error) {
	jwtSecret, err := secretValue("JWT_SECRET")
	if err != nil {
		return nil, err
	}

	jwtExpiry := time.Hour
	if raw := os.Getenv("JWT_EXPIRY"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_EXPIRY %q: %w", raw, err)
		}
		jwtExpiry = parsed
	}

	dbPassword, err := secretValue("DB_PASSWORD")
	if err != nil {
		return nil, err
	}
	redisPassword, _ := secretValue("REDIS_PASSWORD")
	aiKey, _ := secretValue("AI_API_KEY")

	redisDB := 0
	if raw := os.Getenv("REDIS_DB"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			redisDB = parsed
		}
	}

	cfg := &Config{
		ServerHost: envOr("SERVER_HOST", "0.0.0.0"),
		ServerPort: envOr("SERVER_PORT", "8080"),

		DBHost:     envOr("DB_HOST", "localhost"),
		DBPort:     envOr("DB_PORT", "5432"),
		DBUser:     envOr("DB_USER", "postgres"),
		DBPassword: dbPassword,
		DBName:     envOr("DB_NAME", "gastrogenius"),
		DBSSLMode:  envOr("DB_SSL_MODE", "disable"),

		RedisHost:     envOr("REDIS_HOST", "localhost"),
		RedisPort:     envOr("REDIS_PORT", "6379"),
		RedisPassword: redisPassword,
		RedisDB:       redisDB,

		JWTSecret: jwtSecret,
		JWTExpiry: jwtExpiry,

		AIAPIKey:  aiKey,
		AIBaseURL: os.Getenv("AI_BASE_URL"),
		AIModel:   envOr("AI_MODEL", "gpt-4o-mini"),

		AWSRegion: envOr("AWS_REGION", "us-east-1"),
		S3Bucket:  envOr("S3_BUCKET_NAME", "gastro-genius-recipe-images"),

		AllowedOrigins: splitList(envOr("ALLOWED_ORIGINS", "http://localhost:5173")),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DatabaseDSN renders the postgres connection string.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// RedisAddr renders the redis host:port address.
func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

// ServerAddr renders the listen address.
func (c *Config) ServerAddr() string {
	return c.ServerHost + ":" + c.ServerPort
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if len(c.JWTSecret) < 32 && IsProduction() {
		return fmt.Errorf("JWT_SECRET must be at least 32 bytes in production")
	}
	if c.JWTExpiry <= 0 {
		return fmt.Errorf("JWT_EXPIRY must be positive")
	}
	return nil
}

// secretValue reads NAME, falling back to the file named by NAME_FILE.
func secretValue(name string) (string, error) {
	if value := os.Getenv(name); value != "" {
		return value, nil
	}
	file := os.Getenv(name + "_FILE")
	if file == "" {
		return "", nil
	}
	content, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("failed to read %s_FILE: %w", name, err)
	}
	return strings.TrimSpace(string(content)), nil
}

func envOr(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
