package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/fsproc/internal/connection"
	"github.com/vvka-141/fsproc/internal/retry"
	"github.com/vvka-141/fsproc/pkg/fsproc"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

const ConfigFileName = "fsproc.yaml"

// Environment variables that override file values.
const (
	EnvRoot         = "FSPROC_ROOT"
	EnvEncoding     = "FSPROC_ENCODING"
	EnvPGConnection = "FSPROC_PG_CONNECTION"
)

type RetryConfig struct {
	MaxAttempts  int    `yaml:"max_attempts,omitempty"`
	InitialDelay string `yaml:"initial_delay,omitempty"`
	MaxDelay     string `yaml:"max_delay,omitempty"`
}

type PostgresConfig struct {
	Connection string `yaml:"connection,omitempty"`
	Table      string `yaml:"table,omitempty"`
}

type ProjectConfig struct {
	Root                    string            `yaml:"root"`
	Encoding                string            `yaml:"encoding,omitempty"`
	AllowParentPaths        bool              `yaml:"allow_parent_paths"`
	ExceptionIfFileNotFound bool              `yaml:"exception_if_file_not_found"`
	FileMapping             map[string]string `yaml:"file_mapping,omitempty"`
	Retry                   RetryConfig       `yaml:"retry,omitempty"`
	Postgres                PostgresConfig    `yaml:"postgres,omitempty"`
	Timeout                 string            `yaml:"timeout,omitempty"`
}

// Load reads the config file at path.
func Load(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", fsproc.ErrInvalidConfig, path, err)
	}
	return &cfg, nil
}

// LoadOrDefault behaves like Load but treats a missing file as an empty config.
func LoadOrDefault(path string) (*ProjectConfig, error) {
	cfg, err := Load(path)
	if errors.Is(err, ErrConfigNotFound) {
		return &ProjectConfig{}, nil
	}
	return cfg, err
}

// LoadDotEnv loads .env files into the process environment without
// overriding variables that are already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides file values with non-empty environment variables.
func (c *ProjectConfig) ApplyEnv(lookup func(string) (string, bool)) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	set := func(dst *string, key string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = v
		}
	}
	set(&c.Root, EnvRoot)
	set(&c.Encoding, EnvEncoding)
	set(&c.Postgres.Connection, EnvPGConnection)
}

// TimeoutOr parses Timeout, returning def when unset.
func (c *ProjectConfig) TimeoutOr(def time.Duration) (time.Duration, error) {
	return parseDuration("timeout", c.Timeout, def)
}

// Connection builds the file connection settings.
func (c *ProjectConfig) Connection() connection.Config {
	return connection.Config{
		ParentDirectory:         c.Root,
		FileMapping:             c.FileMapping,
		AllowParentPaths:        c.AllowParentPaths,
		ExceptionIfFileNotFound: c.ExceptionIfFileNotFound,
	}
}

// Backoff builds the retry strategy described by the retry section.
func (c *ProjectConfig) Backoff() (*retry.ExponentialBackoff, error) {
	attempts := c.Retry.MaxAttempts
	if attempts < 0 {
		return nil, fmt.Errorf("%w: retry.max_attempts must not be negative", fsproc.ErrInvalidConfig)
	}
	if attempts == 0 {
		attempts = fsproc.DefaultRetryMaxAttempts
	}
	initial, err := parseDuration("retry.initial_delay", c.Retry.InitialDelay, fsproc.DefaultRetryInitialDelay)
	if err != nil {
		return nil, err
	}
	maxDelay, err := parseDuration("retry.max_delay", c.Retry.MaxDelay, fsproc.DefaultRetryMaxDelay)
	if err != nil {
		return nil, err
	}
	if maxDelay < initial {
		return nil, fmt.Errorf("%w: retry.max_delay %s is shorter than retry.initial_delay %s", fsproc.ErrInvalidConfig, maxDelay, initial)
	}
	return retry.NewExponentialBackoff(attempts, retry.WithInitialDelay(initial), retry.WithMaxDelay(maxDelay)), nil
}

func parseDuration(key, value string, def time.Duration) (time.Duration, error) {
	if value == "" {
		return def, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s: %w", fsproc.ErrInvalidConfig, key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %s must be positive, got %s", fsproc.ErrInvalidConfig, key, value)
	}
	return d, nil
}
