package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/mrios/netrecon/internal/scanning"
)

const (
	maxPortsDisplayed   = 5
	maxVulnsDisplayed   = 3
	maxServiceDisplay   = 30
	maxVulnLineDisplay  = 60
	resultSectionHeader = "SCAN RESULTS"

	durationDisplayPrecision = 10 * time.Millisecond
)

// displayResult prints the console summary of a finished scan.
func displayResult(result *scanning.Result) {
	rule := strings.Repeat("=", bannerWidth)
	stats := result.Stats

	fmt.Println("\n" + rule)
	fmt.Println(resultSectionHeader)
	fmt.Println(rule)

	if stats.HostsUp > 0 {
		fmt.Printf("Hosts found: %d\n", stats.HostsUp)
		if len(stats.OpenPorts) > 0 {
			fmt.Printf("\nOpen ports (%d):\n", len(stats.OpenPorts))
			displayPortTable(result)
		} else {
			fmt.Println("No open ports found")
		}
	} else {
		fmt.Println("No hosts found")
	}

	if len(stats.Vulnerabilities) > 0 {
		fmt.Printf("\nPotential vulnerabilities found: %d\n", len(stats.Vulnerabilities))
		for _, vuln := range truncateList(stats.Vulnerabilities, maxVulnsDisplayed) {
			fmt.Printf("  - %s\n", truncate(vuln, maxVulnLineDisplay))
		}
		if extra := len(stats.Vulnerabilities) - maxVulnsDisplayed; extra > 0 {
			fmt.Printf("  ... and %d more\n", extra)
		}
	}

	fmt.Printf("\nScan status: %s\n", strings.ReplaceAll(stats.ScanStatus, "_", " "))
	fmt.Printf("Duration: %s\n", result.Duration.Round(durationDisplayPrecision))
	fmt.Println(rule)
}

func displayPortTable(result *scanning.Result) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Port", "Protocol", "State", "Service")

	ports := result.Stats.OpenPorts
	for i := range ports {
		if i >= maxPortsDisplayed {
			break
		}
		port := &ports[i]
		service := port.Service
		if port.Version != "" {
			service = service + " (" + port.Version + ")"
		}
		_ = table.Append([]string{
			port.Port,
			port.Protocol,
			port.State,
			truncate(service, maxServiceDisplay),
		})
	}

	_ = table.Render()

	if extra := len(ports) - maxPortsDisplayed; extra > 0 {
		fmt.Printf("  ... and %d more\n", extra)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func truncateList(items []string, max int) []string {
	if len(items) <= max {
		return items
	}
	return items[:max]
}
