package profiles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrios/netrecon/internal/errors"
)

func TestResolveKnownProfiles(t *testing.T) {
	for _, name := range []string{"discovery", "quick", "comprehensive", "vulnerability", "udp"} {
		t.Run(name, func(t *testing.T) {
			profile, err := Resolve(name)
			require.NoError(t, err)
			assert.Equal(t, name, profile.Name)
			assert.NotEmpty(t, profile.Args)
			assert.NotEmpty(t, profile.Description)
			assert.Positive(t, profile.Timeout)

			// Argument lists are deterministic across resolutions.
			again, err := Resolve(name)
			require.NoError(t, err)
			assert.Equal(t, profile.Args, again.Args)
		})
	}
}

func TestResolveUnknownProfile(t *testing.T) {
	profile, err := Resolve("stealth")

	require.Error(t, err)
	assert.Nil(t, profile)
	assert.True(t, errors.IsCode(err, errors.CodeInvalidProfile))
	assert.Contains(t, err.Error(), "discovery")
}

func TestProfileArgs(t *testing.T) {
	tests := []struct {
		name     string
		expected []string
	}{
		{"discovery", []string{"-sn"}},
		{"quick", []string{"-sS", "-T4", "-F"}},
		{"comprehensive", []string{"-sS", "-sV", "-sC", "-O", "-A"}},
		{"vulnerability", []string{"-sV", "--script", "vuln,safe"}},
		{"udp", []string{"-sU", "--top-ports", "100"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile, err := Resolve(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, profile.Args)
		})
	}
}

func TestBuildArgsAppendsTargetLast(t *testing.T) {
	profile, err := Resolve("quick")
	require.NoError(t, err)

	args, err := profile.BuildArgs("192.168.1.0/24")
	require.NoError(t, err)
	assert.Equal(t, []string{"-sS", "-T4", "-F", "192.168.1.0/24"}, args)

	// BuildArgs must not mutate the registered profile.
	assert.Equal(t, []string{"-sS", "-T4", "-F"}, profile.Args)
}

func TestVulnerabilityTimeoutIsLonger(t *testing.T) {
	vuln, err := Resolve("vulnerability")
	require.NoError(t, err)
	quick, err := Resolve("quick")
	require.NoError(t, err)

	assert.Greater(t, vuln.Timeout, quick.Timeout)
}

func TestNamesSorted(t *testing.T) {
	assert.Equal(t,
		[]string{"comprehensive", "discovery", "quick", "udp", "vulnerability"},
		Names())
}

func TestValidateTarget(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		wantErr bool
	}{
		{"ipv4", "192.168.1.10", false},
		{"cidr", "192.168.1.0/24", false},
		{"hostname", "scanme.example.com", false},
		{"octet range", "192.168.1.1-20", false},
		{"ipv6", "2001:db8::1", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"shell metacharacters", "example.com; rm -rf /", true},
		{"embedded flag smuggling", "example.com --script=evil", true},
		{"leading dash", "-sV", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTarget(tt.target)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.CodeTargetInvalid))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCommandLine(t *testing.T) {
	profile, err := Resolve("discovery")
	require.NoError(t, err)

	assert.Equal(t, "nmap -sn 10.0.0.0/24", profile.CommandLine("nmap", "10.0.0.0/24"))
}
