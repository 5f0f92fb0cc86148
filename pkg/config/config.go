package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every environment variable read by the client.
const EnvPrefix = "SALESMANAGER"

// DefaultBaseURL is the hosted backend used when no base URL is supplied.
const DefaultBaseURL = "https://sales-management-backend-iapk.onrender.com/api"

type Config struct {
	App     AppConfig
	API     APIConfig
	Session SessionConfig
	Login   LoginConfig
	Demo    DemoConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.API.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	LogLevel string `envconfig:"SALESMANAGER_LOG_LEVEL" default:"info"`
}

type APIConfig struct {
	BaseURL string        `envconfig:"SALESMANAGER_API_URL" default:"https://sales-management-backend-iapk.onrender.com/api"`
	Timeout time.Duration `envconfig:"SALESMANAGER_API_TIMEOUT" default:"15s"`

	// MutationMethod is the verb used for approve/reject/complete. The
	// deployed backend expects GET for these despite them mutating state.
	MutationMethod string `envconfig:"SALESMANAGER_API_MUTATION_METHOD" default:"GET"`
}

type SessionConfig struct {
	// StateDir holds the persisted token and identity. Empty means the
	// user config directory resolved at runtime.
	StateDir string `envconfig:"SALESMANAGER_STATE_DIR"`
}

// LoginConfig seeds the demo shell's login; either TestEmail (shortcut
// login) or Email+Password (credential login).
type LoginConfig struct {
	Email     string `envconfig:"SALESMANAGER_LOGIN_EMAIL"`
	Password  string `envconfig:"SALESMANAGER_LOGIN_PASSWORD"`
	TestEmail string `envconfig:"SALESMANAGER_LOGIN_TEST_EMAIL"`
}

type DemoConfig struct {
	Port      string `envconfig:"SALESMANAGER_DEMO_PORT" default:"8080"`
	JWTSecret string `envconfig:"SALESMANAGER_DEMO_JWT_SECRET" default:"demo-secret"`
}

func (a *APIConfig) validate() error {
	trimmed := strings.TrimSpace(a.BaseURL)
	if trimmed == "" {
		a.BaseURL = DefaultBaseURL
		return nil
	}
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		return fmt.Errorf("api base url must be http(s), got %q", trimmed)
	}
	a.BaseURL = strings.TrimRight(trimmed, "/")
	return nil
}
