// Package profiles provides scan profile management for netrecon.
// A profile maps a short name to the fixed nmap argument list, timing
// expectation, and timeout used for that kind of assessment.
package profiles

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/mrios/netrecon/internal/errors"
)

const (
	// DefaultTimeout bounds every profile except vulnerability scans.
	DefaultTimeout = 10 * time.Minute
	// VulnTimeout bounds vulnerability scans, which run NSE scripts and
	// routinely exceed the default window.
	VulnTimeout = 15 * time.Minute
)

// Profile describes a named scan configuration passed to the external tool.
type Profile struct {
	Name        string        `yaml:"name" json:"name"`
	Args        []string      `yaml:"args" json:"args"`
	Description string        `yaml:"description" json:"description"`
	Estimated   string        `yaml:"estimated" json:"estimated"`
	Timeout     time.Duration `yaml:"timeout" json:"timeout"`
}

// BuildArgs returns the full argument list for a scan of target. The target
// is always the final argument, matching nmap's positional convention.
func (p *Profile) BuildArgs(target string) ([]string, error) {
	if err := ValidateTarget(target); err != nil {
		return nil, err
	}
	args := make([]string, 0, len(p.Args)+1)
	args = append(args, p.Args...)
	args = append(args, target)
	return args, nil
}

// CommandLine renders the invocation as a display string for reports.
func (p *Profile) CommandLine(binary, target string) string {
	return binary + " " + strings.Join(p.Args, " ") + " " + target
}

// registry is the fixed profile set. Argument lists are ordered and never
// mutated after startup.
var registry = map[string]*Profile{
	"discovery": {
		Name:        "discovery",
		Args:        []string{"-sn"},
		Description: "Host discovery only",
		Estimated:   "Fast",
		Timeout:     DefaultTimeout,
	},
	"quick": {
		Name:        "quick",
		Args:        []string{"-sS", "-T4", "-F"},
		Description: "Quick TCP port scan",
		Estimated:   "Medium",
		Timeout:     DefaultTimeout,
	},
	"comprehensive": {
		Name:        "comprehensive",
		Args:        []string{"-sS", "-sV", "-sC", "-O", "-A"},
		Description: "Comprehensive scan with OS/version detection",
		Estimated:   "Slow",
		Timeout:     DefaultTimeout,
	},
	"vulnerability": {
		Name:        "vulnerability",
		Args:        []string{"-sV", "--script", "vuln,safe"},
		Description: "Vulnerability assessment",
		Estimated:   "Very Slow",
		Timeout:     VulnTimeout,
	},
	"udp": {
		Name:        "udp",
		Args:        []string{"-sU", "--top-ports", "100"},
		Description: "Top UDP ports scan",
		Estimated:   "Medium",
		Timeout:     DefaultTimeout,
	},
}

// Resolve returns the profile registered under name.
func Resolve(name string) (*Profile, error) {
	profile, ok := registry[name]
	if !ok {
		return nil, errors.New(errors.CodeInvalidProfile,
			fmt.Sprintf("invalid profile %q, choose from: %s", name, strings.Join(Names(), ", ")))
	}
	return profile, nil
}

// List returns all profiles sorted by name.
func List() []*Profile {
	names := Names()
	profiles := make([]*Profile, 0, len(names))
	for _, name := range names {
		profiles = append(profiles, registry[name])
	}
	return profiles
}

// Names returns the sorted profile names.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// targetPattern accepts hostnames, IPv4/IPv6 addresses, CIDR networks, and
// nmap octet ranges like 192.168.1.1-20. Anything that could reach a shell
// or smuggle extra tool flags is rejected.
var targetPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9.\-_:/]*$`)

// ValidateTarget checks that target is a plausible scan target specification.
func ValidateTarget(target string) error {
	target = strings.TrimSpace(target)
	if target == "" {
		return errors.New(errors.CodeTargetInvalid, "target must not be empty")
	}
	if !targetPattern.MatchString(target) {
		return errors.NewWithTarget(errors.CodeTargetInvalid,
			"target contains invalid characters", target)
	}
	return nil
}
