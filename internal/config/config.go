package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/moodlit/internal/constants"
)

// Config is the client configuration. Environment variables override the
// file, and a .env file in the working directory is read first.
type Config struct {
	APIURL           string        `yaml:"api_url"`
	Timeout          time.Duration `yaml:"timeout"`
	FetchConcurrency int           `yaml:"fetch_concurrency"`
	Store            string        `yaml:"store"`
	Debug            bool          `yaml:"debug"`

	// path is where the file was (or would be) read from
	path string
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		APIURL:           constants.DefaultAPIURL,
		Timeout:          constants.DefaultTimeoutSeconds * time.Second,
		FetchConcurrency: constants.DefaultFetchConcurrency,
		Store:            constants.DefaultStorePath,
	}
}

// Load reads the YAML file at path (a missing file is not an error), applies
// environment overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	path = ExpandHome(path)
	cfg.path = path

	// .env is optional
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}

	cfg.Store = ExpandHome(cfg.Store)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := env("API_URL"); v != "" {
		c.APIURL = v
	}
	if v := env("STORE"); v != "" {
		c.Store = v
	}
	if v := env("DEBUG"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %sDEBUG %q: %w", constants.EnvPrefix, v, err)
		}
		c.Debug = b
	}
	if v := env("FETCH_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %sFETCH_CONCURRENCY %q: %w", constants.EnvPrefix, v, err)
		}
		c.FetchConcurrency = n
	}
	if v := env("TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %sTIMEOUT %q: %w", constants.EnvPrefix, v, err)
		}
		c.Timeout = d
	}
	return nil
}

// Validate checks the values that would otherwise fail later and obscurely
func (c Config) Validate() error {
	if !strings.HasPrefix(c.APIURL, "http://") && !strings.HasPrefix(c.APIURL, "https://") {
		return fmt.Errorf("api_url must start with http:// or https://, got %q", c.APIURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.FetchConcurrency < 1 {
		return fmt.Errorf("fetch_concurrency must be at least 1, got %d", c.FetchConcurrency)
	}
	if strings.TrimSpace(c.Store) == "" {
		return errors.New("store cannot be empty")
	}
	return nil
}

// Path returns the file the configuration was loaded from
func (c Config) Path() string {
	return c.path
}

// Dir returns the directory holding the config file; logs and lockfiles live there
func (c Config) Dir() string {
	if c.path == "" {
		return ExpandHome(constants.DefaultConfigDir)
	}
	return filepath.Dir(c.path)
}

// Save writes the configuration back as YAML
func (c Config) Save() error {
	if c.path == "" {
		return errors.New("config has no path")
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return os.WriteFile(c.path, data, 0600)
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func env(name string) string {
	return strings.TrimSpace(os.Getenv(constants.EnvPrefix + name))
}
