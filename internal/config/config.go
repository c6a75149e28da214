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
	Server    ServerConfig
	Content   ContentConfig
	Analytics AnalyticsConfig
	Admin     AdminConfig
	UI        UIConfig
}

type ServerConfig struct {
	Port        string
	GinMode     string
	CORSOrigins []string
	RateLimit   float64
	RateBurst   int
}

type ContentConfig struct {
	Path       string
	ResumePath string
}

type AnalyticsConfig struct {
	DSN             string
	RetentionDays   int
	CleanupSchedule string
}

type AdminConfig struct {
	Username string
	Password string
	// UsingDefaults is set when either credential fell back to the dev value.
	UsingDefaults bool
}

type UIConfig struct {
	SkillAnimation time.Duration
	ProjectFade    time.Duration
}

const defaultDSN = "file:portfolio?mode=memory&cache=shared"

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			GinMode:     getEnv("GIN_MODE", "debug"),
			CORSOrigins: getEnvAsList("CORS_ORIGINS"),
			RateLimit:   getEnvAsFloat("RATE_LIMIT_RPS", 5),
			RateBurst:   getEnvAsInt("RATE_LIMIT_BURST", 10),
		},
		Content: ContentConfig{
			Path:       getEnv("CONTENT_PATH", ""),
			ResumePath: getEnv("RESUME_PATH", ""),
		},
		Analytics: AnalyticsConfig{
			DSN:             getEnv("DATABASE_DSN", defaultDSN),
			RetentionDays:   getEnvAsInt("VISITOR_RETENTION_DAYS", 365),
			CleanupSchedule: getEnv("CLEANUP_SCHEDULE", "0 0 3 * * *"),
		},
		Admin: AdminConfig{
			Username: os.Getenv("ADMIN_USERNAME"),
			Password: os.Getenv("ADMIN_PASSWORD"),
		},
		UI: UIConfig{
			SkillAnimation: time.Duration(getEnvAsInt("SKILL_ANIMATION_MS", 400)) * time.Millisecond,
			ProjectFade:    time.Duration(getEnvAsInt("PROJECT_FADE_MS", 400)) * time.Millisecond,
		},
	}

	// Default credentials for development (set ADMIN_USERNAME/ADMIN_PASSWORD in production)
	if cfg.Admin.Username == "" {
		cfg.Admin.Username = "admin"
		cfg.Admin.UsingDefaults = true
	}
	if cfg.Admin.Password == "" {
		cfg.Admin.Password = "admin123"
		cfg.Admin.UsingDefaults = true
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

	switch c.Server.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("GIN_MODE must be debug, release or test, got %q", c.Server.GinMode)
	}

	if c.Analytics.DSN == "" {
		return fmt.Errorf("DATABASE_DSN is required")
	}

	if c.Server.RateLimit <= 0 || c.Server.RateBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}

	if c.UI.SkillAnimation < 0 || c.UI.ProjectFade < 0 {
		return fmt.Errorf("animation durations must not be negative")
	}

	if c.Analytics.RetentionDays <= 0 {
		return fmt.Errorf("VISITOR_RETENTION_DAYS must be positive")
	}

	return nil
}

// Retention is how long visitor rows are kept.
func (c AnalyticsConfig) Retention() time.Duration {
	return time.Duration(c.RetentionDays) * 24 * time.Hour
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

func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
