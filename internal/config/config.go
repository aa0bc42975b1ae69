// file: internal/config/config.go
// version: 1.1.0
// guid: 3f9a1c2b-7d4e-4b8a-9c6f-2e5d8a1b4c7e

package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Environment      string
	ProjectID        string
	CredentialsPath  string
	IdentityEndpoint string
	CORSOrigins      []string
	Port             string
	Host             string
	LogLevel         string
	DatabasePath     string
	CacheTTL         time.Duration
}

var AppConfig Config

// InitConfig initializes the application configuration
func InitConfig() {
	// Set defaults
	viper.SetDefault("environment", "development")
	viper.SetDefault("project_id", "storefront-dev")
	viper.SetDefault("identity_credentials", "service-account.json")
	viper.SetDefault("identity_endpoint", "https://identitytoolkit.googleapis.com")
	viper.SetDefault("cors_origins", "http://localhost:3000,http://127.0.0.1:3000")
	viper.SetDefault("port", "8080")
	viper.SetDefault("host", "0.0.0.0")
	viper.SetDefault("log_level", "INFO")
	viper.SetDefault("database_path", "storefront.pebble")
	viper.SetDefault("cache_ttl_seconds", 60)

	AppConfig = Config{
		Environment:      viper.GetString("environment"),
		ProjectID:        viper.GetString("project_id"),
		CredentialsPath:  viper.GetString("identity_credentials"),
		IdentityEndpoint: viper.GetString("identity_endpoint"),
		CORSOrigins:      ParseCORSOrigins(viper.GetString("cors_origins")),
		Port:             viper.GetString("port"),
		Host:             viper.GetString("host"),
		LogLevel:         viper.GetString("log_level"),
		DatabasePath:     viper.GetString("database_path"),
		CacheTTL:         time.Duration(viper.GetInt("cache_ttl_seconds")) * time.Second,
	}

	if AppConfig.CacheTTL <= 0 {
		AppConfig.CacheTTL = 60 * time.Second
	}
}

// ParseCORSOrigins splits a comma-separated origin list, trimming whitespace
// and dropping empty entries.
func ParseCORSOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}

// IsProduction reports whether the process runs in the production environment.
func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

// IsDevelopment reports whether the process runs in the development environment.
func (c Config) IsDevelopment() bool {
	return c.Environment == "development"
}
