/*
Package configs is responsible for loading and parsing the application's configuration.

Configuration comes from environment variables (optionally seeded from a .env file),
covering the running environment, listen port, CORS allowed origins, and the
location of the external care backend.
*/
package configs

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig contains all configuration parameters required for the application to run.
type AppConfig struct {
	// General Server Settings
	Environment string
	Port        int

	// Security Settings
	AllowedOrigins []string

	// External Backend Settings
	// BackendOrigin is the base URL of the care backend that owns persistence,
	// scheduling, payments, and ratings.
	BackendOrigin string
}

// LoadConfig reads the application configuration from environment variables,
// applying development defaults and validating each value. A .env file in the
// working directory is loaded first when present.
func LoadConfig() (*AppConfig, error) {
	// Missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	cfg := &AppConfig{}

	cfg.Environment = os.Getenv("ENVIRONMENT")
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "3000"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT environment variable: %w", err)
	}
	if port < 1024 || port > 65535 {
		return nil, fmt.Errorf("port number %d is outside the allowed range (1024-65535)", port)
	}
	cfg.Port = port

	originsStr := os.Getenv("ALLOWED_ORIGINS")
	if originsStr != "" {
		for _, origin := range strings.Split(originsStr, ",") {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
			}
		}
	} else {
		cfg.AllowedOrigins = []string{}
	}

	cfg.BackendOrigin = os.Getenv("BACKEND_ORIGIN")
	if cfg.BackendOrigin == "" {
		if cfg.Environment == "development" {
			cfg.BackendOrigin = "http://localhost:8080"
		} else {
			return nil, fmt.Errorf("BACKEND_ORIGIN environment variable is required in %s environment", cfg.Environment)
		}
	}
	if _, err := url.Parse(cfg.BackendOrigin); err != nil {
		return nil, fmt.Errorf("invalid BACKEND_ORIGIN %q: %w", cfg.BackendOrigin, err)
	}
	cfg.BackendOrigin = strings.TrimRight(cfg.BackendOrigin, "/")

	return cfg, nil
}

// MessagingEndpoint derives the websocket endpoint of the care backend from
// its HTTP origin.
func (c *AppConfig) MessagingEndpoint() string {
	endpoint := c.BackendOrigin
	switch {
	case strings.HasPrefix(endpoint, "https://"):
		endpoint = "wss://" + strings.TrimPrefix(endpoint, "https://")
	case strings.HasPrefix(endpoint, "http://"):
		endpoint = "ws://" + strings.TrimPrefix(endpoint, "http://")
	}
	return endpoint + "/ws"
}
