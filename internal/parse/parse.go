// Package parse extracts a semi-structured summary from the raw text output
// of the external scanning tool. This is best-effort line scraping, not a
// grammar: lines that match no known pattern are silently ignored.
package parse

import (
	"regexp"
	"strings"
)

// Scan status values derived from the tool output.
const (
	StatusUnknown          = "unknown"
	StatusNoOutput         = "no_output"
	StatusHostFound        = "host_found"
	StatusHostUp           = "host_up"
	StatusHostDown         = "host_down"
	StatusImpliedHostUp    = "implied_host_up"
	StatusCompleted        = "completed"
	StatusCompletedNoHosts = "completed_no_hosts"
	StatusTimeout          = "timeout"
)

// PortFinding is one open port reported by the tool.
type PortFinding struct {
	Port     string `json:"port"`
	Protocol string `json:"protocol"`
	State    string `json:"state"`
	Service  string `json:"service"`
	Version  string `json:"version,omitempty"`
}

// Summary holds the statistics scraped from a scan's raw output.
type Summary struct {
	HostsUp         int           `json:"hosts_up"`
	OpenPorts       []PortFinding `json:"open_ports"`
	Services        []string      `json:"services"`
	ScanStatus      string        `json:"scan_status"`
	Vulnerabilities []string      `json:"vulnerabilities"`
}

// EmptySummary returns a summary for runs that produced no parseable output,
// carrying the given status.
func EmptySummary(status string) *Summary {
	return &Summary{
		OpenPorts:       []PortFinding{},
		Services:        []string{},
		ScanStatus:      status,
		Vulnerabilities: []string{},
	}
}

// portLine matches open-port rows like "80/tcp open http" or
// "443/tcp  open  ssl/https  nginx 1.18.0". The trailing group captures
// version detail when the tool was run with service detection.
var portLine = regexp.MustCompile(`^(\d+)/(tcp|udp)\s+(\S+)(?:\s+(\S+))?(?:\s+(.+))?$`)

var vulnKeywords = []string{"vuln", "cve-", "vulnerability", "risk", "exploit"}

// Output scrapes the tool's stdout into a Summary. It never fails: an
// unrecognized or empty stream yields a summary with a degraded status.
func Output(raw string) *Summary {
	summary := EmptySummary(StatusUnknown)
	if strings.TrimSpace(raw) == "" {
		summary.ScanStatus = StatusNoOutput
		return summary
	}

	seenServices := make(map[string]bool)
	inPortSection := false

	for _, line := range strings.Split(raw, "\n") {
		lower := strings.ToLower(line)
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.Contains(lower, "nmap scan report for"):
			summary.HostsUp = 1
			summary.ScanStatus = StatusHostFound
		case strings.Contains(lower, "host is up"):
			summary.HostsUp = 1
			summary.ScanStatus = StatusHostUp
		case strings.Contains(lower, "0 hosts up"), strings.Contains(lower, "host seems down"):
			summary.HostsUp = 0
			summary.ScanStatus = StatusHostDown
		}

		// Column header marks the start of a port table.
		if strings.Contains(lower, "port") && strings.Contains(lower, "state") &&
			strings.Contains(lower, "service") {
			inPortSection = true
			continue
		}

		if inPortSection {
			if trimmed == "" || strings.HasPrefix(line, "Nmap") ||
				strings.Contains(lower, "read data files") {
				inPortSection = false
			} else if !strings.HasPrefix(trimmed, "|") {
				if finding, ok := parsePortLine(trimmed); ok {
					summary.OpenPorts = append(summary.OpenPorts, finding)
					if finding.Service != "" && !seenServices[finding.Service] {
						seenServices[finding.Service] = true
						summary.Services = append(summary.Services, finding.Service)
					}
				}
			}
		}

		if trimmed != "" && containsAny(lower, vulnKeywords) {
			summary.Vulnerabilities = append(summary.Vulnerabilities, trimmed)
		}
	}

	// Open ports without an explicit host line still mean something answered.
	if summary.HostsUp == 0 && len(summary.OpenPorts) > 0 {
		summary.HostsUp = 1
		summary.ScanStatus = StatusImpliedHostUp
	}

	if summary.ScanStatus == StatusUnknown {
		lower := strings.ToLower(raw)
		switch {
		case strings.Contains(lower, "scan report"):
			summary.ScanStatus = StatusCompleted
		case strings.Contains(lower, "nmap done"):
			summary.ScanStatus = StatusCompletedNoHosts
		}
	}

	return summary
}

// parsePortLine extracts a finding from one row of the port table.
// Only open ports are reported.
func parsePortLine(line string) (PortFinding, bool) {
	m := portLine.FindStringSubmatch(line)
	if m == nil {
		return PortFinding{}, false
	}
	if !strings.EqualFold(m[3], "open") {
		return PortFinding{}, false
	}

	finding := PortFinding{
		Port:     m[1],
		Protocol: m[2],
		State:    m[3],
		Service:  m[4],
		Version:  strings.TrimSpace(m[5]),
	}
	if finding.Service == "" {
		finding.Service = "unknown"
	}
	return finding, true
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
