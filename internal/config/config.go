// Package config resolves the environment the suite runs against.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	EnvDev     = "DEV"
	EnvStaging = "STG"
)

var (
	// ErrNoBaseURL is returned when the selected environment has no URL configured.
	ErrNoBaseURL = errors.New("no URL found for the environment")
	// ErrUnknownEnvironment is returned for an ENV other than DEV or STG.
	ErrUnknownEnvironment = errors.New("unknown environment")
)

// Config is built once at process start and passed to whatever needs it.
type Config struct {
	Env            string        `envconfig:"ENV" default:"DEV"`
	DevBaseURL     string        `envconfig:"DEV_BASE_URL"`
	StagingBaseURL string        `envconfig:"STAGING_BASE_URL"`
	Headless       bool          `envconfig:"HEADLESS" default:"true"`
	BrowserTimeout time.Duration `envconfig:"BROWSER_TIMEOUT" default:"30s"`
	SearchData     string        `envconfig:"SEARCH_DATA" default:"testdata/search.json"`
	DBPath         string        `envconfig:"DB_PATH" default:"runs.db"`
	ArtifactsDir   string        `envconfig:"ARTIFACTS_DIR" default:"artifacts"`
	StrictDestiny  bool          `envconfig:"STRICT_DESTINY" default:"false"`

	// BaseURL is the URL of the selected environment, set by Resolve.
	BaseURL string `ignored:"true"`
}

// Load reads the given dotenv files (".env" when none are given, ignored if missing),
// then the process environment, and resolves the base URL.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		_ = godotenv.Load()
	} else if err := godotenv.Load(files...); err != nil {
		return nil, fmt.Errorf("failed to load env files: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}
	if err := cfg.Resolve(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Resolve normalises Env and picks the base URL for it.
func (c *Config) Resolve() error {
	c.Env = strings.ToUpper(strings.TrimSpace(c.Env))
	if c.Env == "" {
		c.Env = EnvDev
	}

	switch c.Env {
	case EnvDev:
		c.BaseURL = c.DevBaseURL
	case EnvStaging:
		c.BaseURL = c.StagingBaseURL
	default:
		return fmt.Errorf("%w %q, expected %s or %s", ErrUnknownEnvironment, c.Env, EnvDev, EnvStaging)
	}

	c.BaseURL = strings.TrimSpace(c.BaseURL)
	if c.BaseURL == "" {
		return fmt.Errorf("%w %s", ErrNoBaseURL, c.Env)
	}
	return nil
}
