package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrios/netrecon/internal/profiles"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "nmap", cfg.Scanning.Binary)
	assert.Equal(t, 10*time.Minute, cfg.Scanning.DefaultTimeout)
	assert.Equal(t, 15*time.Minute, cfg.Scanning.VulnTimeout)
	assert.Equal(t, "reports", cfg.Reports.Directory)
	assert.Equal(t, []string{"txt", "json", "md", "html"}, cfg.Reports.Formats)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "netrecon.yaml")
	content := `
scanning:
  binary: /usr/local/bin/nmap
  default_timeout: 5m
  vuln_timeout: 20m
reports:
  directory: /tmp/scan-reports
  formats: [json, html]
logging:
  level: debug
  format: json
  output: stderr
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "/usr/local/bin/nmap", cfg.Scanning.Binary)
	assert.Equal(t, 5*time.Minute, cfg.Scanning.DefaultTimeout)
	assert.Equal(t, 20*time.Minute, cfg.Scanning.VulnTimeout)
	assert.Equal(t, "/tmp/scan-reports", cfg.Reports.Directory)
	assert.Equal(t, []string{"json", "html"}, cfg.Reports.Formats)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "netrecon.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scanning: [not: a: map"), 0o644))

	_, err := Load(path)

	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(*Config) {}, false},
		{"missing binary", func(c *Config) { c.Scanning.Binary = "" }, true},
		{"zero timeout", func(c *Config) { c.Scanning.DefaultTimeout = 0 }, true},
		{"empty report directory", func(c *Config) { c.Reports.Directory = "" }, true},
		{"no formats", func(c *Config) { c.Reports.Formats = nil }, true},
		{"unknown format", func(c *Config) { c.Reports.Formats = []string{"pdf"} }, true},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, true},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "netrecon.yaml")
	cfg := Default()
	cfg.Scanning.Binary = "/opt/nmap/bin/nmap"

	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestTimeoutFor(t *testing.T) {
	cfg := Default()
	cfg.Scanning.DefaultTimeout = time.Minute
	cfg.Scanning.VulnTimeout = 3 * time.Minute

	vuln, err := profiles.Resolve("vulnerability")
	require.NoError(t, err)
	quick, err := profiles.Resolve("quick")
	require.NoError(t, err)

	assert.Equal(t, 3*time.Minute, cfg.TimeoutFor(vuln))
	assert.Equal(t, time.Minute, cfg.TimeoutFor(quick))
}
