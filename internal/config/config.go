package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/wahlandcase/mergegate/internal/models"
)

// ConfigError means the configuration is missing or malformed. It is
// detected before any network call.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "config: " + e.Field + ": " + e.Reason
}

// Config is the on-disk configuration. Durations are stored as strings
// ("5s", "10m") because TOML has no duration type.
type Config struct {
	Gate GateConfig `toml:"gate"`
	Poll PollConfig `toml:"poll"`
}

type GateConfig struct {
	MergeMethod       string   `toml:"merge_method"`
	RequiredApprovals int      `toml:"required_approvals"`
	RequiredContexts  []string `toml:"required_contexts"`
}

type PollConfig struct {
	Interval string `toml:"interval"`
	Timeout  string `toml:"timeout"`
}

// Settings is the validated, typed form of Config
type Settings struct {
	Method            models.MergeMethod
	RequiredApprovals int
	RequiredContexts  []string
	PollInterval      time.Duration
	PollTimeout       time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		Gate: GateConfig{
			MergeMethod:       string(models.DefaultMergeMethod),
			RequiredApprovals: 1,
		},
		Poll: PollConfig{
			Interval: "5s",
			Timeout:  "5m",
		},
	}
}

// Path returns the config file location under the user config directory
func Path() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "mergegate.toml"), nil
}

// Load reads the config file, falling back to defaults when it does not
// exist (and saving them, best effort, so the file is there to edit).
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads a config file from an explicit path
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			_ = cfg.SaveTo(path) // Best effort save
			return cfg, nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, &ConfigError{Field: path, Reason: err.Error()}
	}
	return cfg, nil
}

func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Resolve validates the config and returns its typed form
func (c *Config) Resolve() (Settings, error) {
	method, err := models.ParseMergeMethod(c.Gate.MergeMethod)
	if err != nil {
		return Settings{}, &ConfigError{Field: "gate.merge_method", Reason: err.Error()}
	}
	if c.Gate.RequiredApprovals < 0 {
		return Settings{}, &ConfigError{Field: "gate.required_approvals", Reason: "must not be negative"}
	}

	interval, err := parseDuration("poll.interval", c.Poll.Interval)
	if err != nil {
		return Settings{}, err
	}
	timeout, err := parseDuration("poll.timeout", c.Poll.Timeout)
	if err != nil {
		return Settings{}, err
	}

	return Settings{
		Method:            method,
		RequiredApprovals: c.Gate.RequiredApprovals,
		RequiredContexts:  c.Gate.RequiredContexts,
		PollInterval:      interval,
		PollTimeout:       timeout,
	}, nil
}

func parseDuration(field, s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, &ConfigError{Field: field, Reason: fmt.Sprintf("invalid duration %q", s)}
	}
	if d <= 0 {
		return 0, &ConfigError{Field: field, Reason: "must be positive"}
	}
	return d, nil
}

// ParseRepo splits an "owner/name" repository identity
func ParseRepo(s string) (owner, name string, err error) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", &ConfigError{Field: "repository", Reason: fmt.Sprintf("%q is not owner/name", s)}
	}
	return parts[0], parts[1], nil
}
