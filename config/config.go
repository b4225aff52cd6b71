package config

import (
	"fmt"
	"os"

	"github.com/Masterminds/semver/v3"
	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

const (
	EnvListenAddr = "VERIFICATION_CENTER_LISTEN_ADDR"
	EnvLogLevel   = "VERIFICATION_CENTER_LOG_LEVEL"
	EnvProvider   = "VERIFICATION_CENTER_PROVIDER"
)

type Config struct {
	// Allowed is a semver constraint on the verifier version carried by incoming documents.
	// Empty allows every version.
	Allowed string `yaml:"allowed"`

	Provider             string `yaml:"provider"`
	DarkMode             bool   `yaml:"darkMode"`
	Compact              bool   `yaml:"compact"`
	ShowVerificationFlow bool   `yaml:"showVerificationFlow"`
	ListenAddr           string `yaml:"listenAddr"`
	LogLevel             string `yaml:"logLevel"`

	// CORSOrigins lists the host origins allowed to call the HTTP transport
	CORSOrigins []string `yaml:"corsOrigins"`

	constraints *semver.Constraints
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Provider:             "Tinfoil",
		DarkMode:             true,
		Compact:              true,
		ShowVerificationFlow: true,
		ListenAddr:           ":8080",
		LogLevel:             "info",
	}
}

// Parse reads a YAML (or JSON) config on top of the defaults
func Parse(s string) (*Config, error) {
	c := Default()
	if err := yaml.Unmarshal([]byte(s), c); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := c.init(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads the config file at path and applies environment overrides.
// An empty path yields the defaults.
func Load(path string) (*Config, error) {
	c := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if c, err = Parse(string(data)); err != nil {
			return nil, err
		}
	}

	c.applyEnv()
	if err := c.init(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv(EnvListenAddr); ok {
		c.ListenAddr = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		c.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvProvider); ok {
		c.Provider = v
	}
}

func (c *Config) init() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}

	c.constraints = nil
	if c.Allowed == "" {
		return nil
	}
	var err error
	c.constraints, err = semver.NewConstraint(c.Allowed)
	if err != nil {
		return fmt.Errorf("invalid version constraint %q: %w", c.Allowed, err)
	}
	return nil
}

// Level returns the configured log level
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// IsValidVersion checks if the given version is allowed by the config
func (c *Config) IsValidVersion(version string) bool {
	if c.constraints == nil {
		return true
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return false
	}
	return c.constraints.Check(v)
}
