package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/mrios/netrecon/internal/profiles"
)

// Config represents the complete netrecon configuration.
type Config struct {
	// Scanning configuration
	Scanning ScanningConfig `yaml:"scanning" json:"scanning"`

	// Report output configuration
	Reports ReportsConfig `yaml:"reports" json:"reports"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// ScanningConfig holds settings for the external tool invocation.
type ScanningConfig struct {
	// Name or path of the external scanning binary
	Binary string `yaml:"binary" json:"binary" validate:"required"`

	// Timeout for all profiles except vulnerability scans
	DefaultTimeout time.Duration `yaml:"default_timeout" json:"default_timeout" validate:"gt=0"`

	// Timeout for vulnerability scans
	VulnTimeout time.Duration `yaml:"vuln_timeout" json:"vuln_timeout" validate:"gt=0"`

	// Skip the binary/version preflight check
	SkipPreflight bool `yaml:"skip_preflight" json:"skip_preflight"`
}

// ReportsConfig holds report writer settings.
type ReportsConfig struct {
	// Directory where report files are written
	Directory string `yaml:"directory" json:"directory" validate:"required"`

	// Formats to emit per scan
	Formats []string `yaml:"formats" json:"formats" validate:"required,min=1,dive,oneof=txt json md html"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Log level (debug, info, warn, error)
	Level string `yaml:"level" json:"level" validate:"oneof=debug info warn error"`

	// Log format (text, json)
	Format string `yaml:"format" json:"format" validate:"oneof=text json"`

	// Log output (stdout, stderr, file path)
	Output string `yaml:"output" json:"output" validate:"required"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Scanning: ScanningConfig{
			Binary:         "nmap",
			DefaultTimeout: profiles.DefaultTimeout,
			VulnTimeout:    profiles.VulnTimeout,
			SkipPreflight:  false,
		},
		Reports: ReportsConfig{
			Directory: "reports",
			Formats:   []string{"txt", "json", "md", "html"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

var validate = validator.New()

// Load loads configuration from a file, falling back to defaults when the
// file does not exist.
func Load(path string) (*Config, error) {
	config := Default()

	if path == "" {
		return config, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Save saves configuration to a file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			e := errs[0]
			return fmt.Errorf("field %s failed %q validation", e.Namespace(), e.Tag())
		}
		return err
	}
	return nil
}

// TimeoutFor returns the timeout that applies to the given profile,
// preferring the configured values over the profile's built-in default.
func (c *Config) TimeoutFor(profile *profiles.Profile) time.Duration {
	if profile.Name == "vulnerability" {
		return c.Scanning.VulnTimeout
	}
	return c.Scanning.DefaultTimeout
}
