package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Firebase FirebaseConfig
	Assets   AssetsConfig
	GitHub   GitHubConfig
	Render   RenderConfig
	Jobs     JobsConfig
	App      AppConfig
}

type ServerConfig struct {
	Port           string
	PublicBaseURL  string
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	// DSN overrides the individual fields when set.
	DSN string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type FirebaseConfig struct {
	CredentialsPath string
	ProjectID       string
	// AuthMode is "firebase" (verify ID tokens) or "header" (trust X-User-Id, development only).
	AuthMode string
}

type AssetsConfig struct {
	Bucket        string
	Region        string
	Endpoint      string
	PublicBaseURL string
	MaxUploadSize int64
}

type GitHubConfig struct {
	Token      string
	APIURL     string
	RatePerSec float64
	Burst      int
	CacheTTL   time.Duration
}

type RenderConfig struct {
	WrapStrategy   string
	PreviewStore   string
	PreviewTTL     time.Duration
	PreviewPerUser float64
}

type JobsConfig struct {
	AssetJanitorSpec string
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			PublicBaseURL:  strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:8080"), "/"),
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "foliocraft"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			DSN:      getEnv("DB_DSN", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Firebase: FirebaseConfig{
			CredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
			ProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
			AuthMode:        getEnv("AUTH_MODE", "firebase"),
		},
		Assets: AssetsConfig{
			Bucket:        getEnv("ASSET_BUCKET", ""),
			Region:        getEnv("ASSET_REGION", "us-east-1"),
			Endpoint:      getEnv("ASSET_ENDPOINT", ""),
			PublicBaseURL: strings.TrimRight(getEnv("ASSET_PUBLIC_BASE_URL", ""), "/"),
			MaxUploadSize: int64(getEnvAsInt("ASSET_MAX_UPLOAD_BYTES", 5<<20)),
		},
		GitHub: GitHubConfig{
			Token:      getEnv("GITHUB_TOKEN", ""),
			APIURL:     strings.TrimRight(getEnv("GITHUB_API_URL", "https://api.github.com"), "/"),
			RatePerSec: getEnvAsFloat("GITHUB_RATE_PER_SEC", 2),
			Burst:      getEnvAsInt("GITHUB_RATE_BURST", 4),
			CacheTTL:   getEnvAsDuration("GITHUB_CACHE_TTL", time.Hour),
		},
		Render: RenderConfig{
			WrapStrategy:   getEnv("RENDER_WRAP_STRATEGY", "regex"),
			PreviewStore:   getEnv("PREVIEW_STORE", "memory"),
			PreviewTTL:     getEnvAsDuration("PREVIEW_TTL", 30*time.Minute),
			PreviewPerUser: getEnvAsFloat("PREVIEW_RATE_PER_SEC", 1),
		},
		Jobs: JobsConfig{
			AssetJanitorSpec: getEnv("ASSET_JANITOR_SPEC", "0 0 3 * * *"),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Database.DSN == "" && c.Database.Host == "" {
		return fmt.Errorf("DB_HOST or DB_DSN is required")
	}

	switch c.Firebase.AuthMode {
	case "firebase":
		if c.Firebase.CredentialsPath == "" {
			return fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required when AUTH_MODE=firebase")
		}
	case "header":
		if c.App.Environment == "production" {
			return fmt.Errorf("AUTH_MODE=header is not allowed in production")
		}
	default:
		return fmt.Errorf("AUTH_MODE must be firebase or header, got %q", c.Firebase.AuthMode)
	}

	switch c.Render.WrapStrategy {
	case "regex", "ast":
	default:
		return fmt.Errorf("RENDER_WRAP_STRATEGY must be regex or ast, got %q", c.Render.WrapStrategy)
	}

	switch c.Render.PreviewStore {
	case "memory":
	case "redis":
		if c.Redis.Addr == "" {
			return fmt.Errorf("REDIS_ADDR is required when PREVIEW_STORE=redis")
		}
	default:
		return fmt.Errorf("PREVIEW_STORE must be memory or redis, got %q", c.Render.PreviewStore)
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
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid number for %s, using default: %g", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
