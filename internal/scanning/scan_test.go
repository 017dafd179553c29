package scanning

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrios/netrecon/internal/config"
	"github.com/mrios/netrecon/internal/errors"
	"github.com/mrios/netrecon/internal/parse"
)

const sampleOutput = `Starting Nmap 7.94 ( https://nmap.org ) at 2025-03-14 10:00 UTC
Nmap scan report for 127.0.0.1
Host is up (0.00045s latency).
PORT    STATE SERVICE
80/tcp  open  http
443/tcp open  https

Nmap done: 1 IP address (1 host up) scanned in 1.20 seconds
`

// stubTool writes an executable shell script that stands in for nmap.
func stubTool(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stub-nmap")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755))
	return path
}

func stubConfig(binary string) *config.Config {
	cfg := config.Default()
	cfg.Scanning.Binary = binary
	return cfg
}

func TestScanSuccess(t *testing.T) {
	marker := filepath.Join(t.TempDir(), "ran")
	binary := stubTool(t, fmt.Sprintf("touch %s\ncat <<'EOF'\n%sEOF\n", marker, sampleOutput))
	scanner := New(stubConfig(binary))

	result, err := scanner.Scan(context.Background(), "127.0.0.1", "quick")

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.Success)
	assert.Equal(t, 0, result.ReturnCode)
	assert.Equal(t, "127.0.0.1", result.Target)
	assert.Equal(t, "quick", result.Profile)
	assert.NotEmpty(t, result.ReportID)
	assert.Contains(t, result.Command, "-sS -T4 -F 127.0.0.1")
	assert.Positive(t, result.Duration)

	require.NotNil(t, result.Stats)
	assert.Equal(t, 1, result.Stats.HostsUp)
	assert.Len(t, result.Stats.OpenPorts, 2)
	assert.FileExists(t, marker)
}

func TestScanUnknownProfileSpawnsNothing(t *testing.T) {
	marker := filepath.Join(t.TempDir(), "ran")
	binary := stubTool(t, "touch "+marker)
	scanner := New(stubConfig(binary))

	result, err := scanner.Scan(context.Background(), "127.0.0.1", "stealth")

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.IsCode(err, errors.CodeInvalidProfile))
	assert.NoFileExists(t, marker, "no process may be spawned for an unknown profile")
}

func TestScanInvalidTarget(t *testing.T) {
	scanner := New(stubConfig(stubTool(t, "exit 0")))

	result, err := scanner.Scan(context.Background(), "example.com; id", "quick")

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.IsCode(err, errors.CodeTargetInvalid))
}

func TestScanMissingBinary(t *testing.T) {
	scanner := New(stubConfig("definitely-not-a-real-scanner-binary"))

	result, err := scanner.Scan(context.Background(), "127.0.0.1", "discovery")

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.IsCode(err, errors.CodeToolNotFound))
}

func TestScanNonZeroExit(t *testing.T) {
	binary := stubTool(t, "echo 'partial output'\necho 'segfault' >&2\nexit 1")
	scanner := New(stubConfig(binary))

	result, err := scanner.Scan(context.Background(), "127.0.0.1", "discovery")

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeToolExit))
	require.NotNil(t, result, "failed runs still produce a reportable result")
	assert.False(t, result.Success)
	assert.Equal(t, 1, result.ReturnCode)
	assert.Contains(t, result.RawOutput, "partial output")
	assert.NotEmpty(t, result.Error)
}

func TestScanTimeout(t *testing.T) {
	binary := stubTool(t, "sleep 30")
	cfg := stubConfig(binary)
	cfg.Scanning.SkipPreflight = true
	scanner := New(cfg)

	start := time.Now()
	result, err := scanner.ScanWithTimeout(context.Background(), "127.0.0.1", "quick", 200*time.Millisecond)

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeToolTimeout))
	assert.Less(t, time.Since(start), 10*time.Second, "timeouts must not hang")

	require.NotNil(t, result)
	assert.False(t, result.Success)
	assert.Equal(t, "Timeout", result.Error)
	assert.Equal(t, parse.StatusTimeout, result.Stats.ScanStatus)
	assert.Equal(t, 0, result.Stats.HostsUp)
}

func TestScanWithTimeoutRejectsNonPositive(t *testing.T) {
	scanner := New(stubConfig(stubTool(t, "exit 0")))

	_, err := scanner.ScanWithTimeout(context.Background(), "127.0.0.1", "quick", 0)

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeConfiguration))
}

func TestPreflightSkipped(t *testing.T) {
	cfg := stubConfig("definitely-not-a-real-scanner-binary")
	cfg.Scanning.SkipPreflight = true
	scanner := New(cfg)

	assert.NoError(t, scanner.Preflight(context.Background()))
}
