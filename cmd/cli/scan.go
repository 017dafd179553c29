package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mrios/netrecon/internal/config"
	"github.com/mrios/netrecon/internal/profiles"
	"github.com/mrios/netrecon/internal/report"
	"github.com/mrios/netrecon/internal/scanning"
)

const bannerWidth = 60

var (
	scanProfile       string
	scanOutput        string
	scanTimeout       time.Duration
	scanSkipPreflight bool
)

// scanCmd represents the scan command.
var scanCmd = &cobra.Command{
	Use:   "scan <target>",
	Short: "Run a scan against a target and write reports",
	Long: `Run the external scanning tool against a target using a named profile,
then write the captured output as text, JSON, Markdown, and HTML reports.

The target may be an IP address, hostname, CIDR network, or an octet
range the external tool understands.`,
	Example: `  netrecon scan 192.168.1.0/24
  netrecon scan 192.168.1.1 --profile quick
  netrecon scan example.com --profile comprehensive --output ./reports
  netrecon scan 10.0.0.5 --profile vulnerability --timeout 30m`,
	Args: cobra.ExactArgs(1),
	Run:  runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	addScanFlags(scanCmd.Flags())
}

func addScanFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&scanProfile, "profile", "p", "discovery",
		"scan profile: "+strings.Join(profiles.Names(), ", "))
	flags.StringVarP(&scanOutput, "output", "o", "",
		"output directory for reports (default from config)")
	flags.DurationVar(&scanTimeout, "timeout", 0,
		"override the profile timeout (e.g. 30m)")
	flags.BoolVar(&scanSkipPreflight, "skip-preflight", false,
		"skip the external tool availability check")
}

func runScan(_ *cobra.Command, args []string) {
	target := args[0]

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	applyScanFlags(cfg)

	// Resolve early so profile and target problems fail before anything runs.
	profile, err := profiles.Resolve(scanProfile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := profiles.ValidateTarget(target); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	printScanBanner(cfg, profile, target)

	scanner := scanning.New(cfg)
	result, scanErr := scanner.Scan(context.Background(), target, scanProfile)
	if result == nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", scanErr)
		os.Exit(1)
	}

	// Failed runs (timeout, non-zero exit) still get their reports written.
	writer := report.NewWriter(cfg.Reports.Directory, cfg.Reports.Formats)
	written, writeErr := writer.WriteAll(result)
	if writeErr != nil {
		fmt.Fprintf(os.Stderr, "Error writing reports: %v\n", writeErr)
		os.Exit(1)
	}

	printWrittenReports(written)
	displayResult(result)

	if scanErr != nil {
		fmt.Fprintf(os.Stderr, "\nscan failed: %v\n", scanErr)
		os.Exit(1)
	}
}

// applyScanFlags overlays command-line flags onto the loaded configuration.
func applyScanFlags(cfg *config.Config) {
	if scanOutput != "" {
		cfg.Reports.Directory = scanOutput
	}
	if scanTimeout > 0 {
		cfg.Scanning.DefaultTimeout = scanTimeout
		cfg.Scanning.VulnTimeout = scanTimeout
	}
	if scanSkipPreflight {
		cfg.Scanning.SkipPreflight = true
	}
}

func printScanBanner(cfg *config.Config, profile *profiles.Profile, target string) {
	rule := strings.Repeat("=", bannerWidth)

	fmt.Println(rule)
	fmt.Printf("EXECUTING: %s SCAN\n", strings.ToUpper(profile.Name))
	fmt.Println(rule)
	fmt.Printf("Target: %s\n", target)
	fmt.Printf("Profile: %s\n", profile.Description)
	fmt.Printf("Estimated time: %s\n", profile.Estimated)
	fmt.Printf("Command: %s\n", profile.CommandLine(cfg.Scanning.Binary, target))
	fmt.Printf("Timeout: %s\n", cfg.TimeoutFor(profile))
	fmt.Println(rule)
}

func printWrittenReports(paths []string) {
	fmt.Println("\nReports saved:")
	for _, path := range paths {
		fmt.Printf("  %s\n", path)
	}
}
