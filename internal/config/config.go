// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	Database struct {
		Host       string `json:"host"`
		Port       string `json:"port"`
		User       string `json:"user"`
		Password   string `json:"password"`
		Name       string `json:"name"`
		SSLMode    string `json:"sslmode"`
		SearchPath string `json:"schema"`
	} `json:"database"`
	JWT struct {
		Secret      string        `json:"secret"`
		BaseExpiry  time.Duration `json:"base_expiry"`
		ResetExpiry time.Duration `json:"reset_expiry"`
	} `json:"jwt"`
	Server struct {
		Port         string        `json:"port"`
		ReadTimeout  time.Duration `json:"read_timeout"`
		WriteTimeout time.Duration `json:"write_timeout"`
	}
	Provisioning struct {
		// ServiceURLs maps a product code to the base URL of its service.
		// Codes absent from the map fall back to http://{code}-service.
		ServiceURLs map[string]string `json:"service_urls"`
		Timeout     time.Duration     `json:"timeout"`
	} `json:"provisioning"`
	WebappURL string `json:"webapp_url"`
}

func Load() *Config {
	cfg := &Config{}

	// Database configuration
	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = getEnv("DB_PORT", "5432")
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "")
	cfg.Database.Name = getEnv("DB_NAME", "accountd")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.Database.SearchPath = getEnv("DB_SCHEMA", "public")

	// JWT configuration
	cfg.JWT.Secret = getEnv("JWT_SECRET", "")
	cfg.JWT.BaseExpiry = 7 * 24 * time.Hour
	cfg.JWT.ResetExpiry = time.Hour

	// Product service endpoints
	cfg.Provisioning.ServiceURLs = map[string]string{
		"notify":  getEnv("NOTIFY_SERVICE_URL", "http://localhost:3001"),
		"media":   getEnv("MEDIA_SERVICE_URL", "http://localhost:3002"),
		"billing": getEnv("BILLING_SERVICE_URL", "http://localhost:3003"),
	}
	cfg.Provisioning.Timeout = 10 * time.Second

	// Server configuration
	cfg.Server.Port = getEnv("SERVER_PORT", "8080")
	cfg.Server.ReadTimeout = time.Second * 15
	cfg.Server.WriteTimeout = time.Second * 15

	cfg.WebappURL = getEnv("WEBAPP_URL", "http://localhost:3000")

	return cfg
}

// DatabaseURL renders the postgres connection URL used by the migrator.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// DSN renders the keyword/value form gorm's postgres driver consumes.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s search_path=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
		c.Database.SearchPath,
	)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
