// Package cli provides command-line interface commands for netrecon.
// This package implements the Cobra-based CLI structure with commands for
// running scans, inspecting profiles, and regenerating reports.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mrios/netrecon/internal/config"
	"github.com/mrios/netrecon/internal/logging"
)

const defaultConfigFile = "netrecon.yaml"

var (
	cfgFile string
	verbose bool
)

// Build information - these will be set by ldflags during build.
var (
	version   = "dev"
	commit    = "none"
	buildTime = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "netrecon",
	Short: "Network scan wrapper with multi-format reporting",
	Long: `Netrecon wraps an external network-scanning tool, captures its output,
and renders the results as raw text, JSON, Markdown, and HTML reports.
Scan depth is selected through a small set of named profiles.`,
	Version: getVersion(),
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is ./"+defaultConfigFile+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	if err := viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose")); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to bind verbose flag: %v\n", err)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("netrecon")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("NETRECON")
	// Maps nested keys to env names, e.g. scanning.binary to
	// NETRECON_SCANNING_BINARY.
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setConfigDefaults()

	if err := viper.ReadInConfig(); err == nil {
		if verbose {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}

	// Initialize structured logging after config is loaded
	initLogging()
}

// setConfigDefaults sets default values for configuration.
func setConfigDefaults() {
	defaults := config.Default()

	viper.SetDefault("scanning.binary", defaults.Scanning.Binary)
	viper.SetDefault("scanning.default_timeout", defaults.Scanning.DefaultTimeout)
	viper.SetDefault("scanning.vuln_timeout", defaults.Scanning.VulnTimeout)
	viper.SetDefault("scanning.skip_preflight", defaults.Scanning.SkipPreflight)

	viper.SetDefault("reports.directory", defaults.Reports.Directory)
	viper.SetDefault("reports.formats", defaults.Reports.Formats)

	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.format", defaults.Logging.Format)
	viper.SetDefault("logging.output", defaults.Logging.Output)
}

// loadConfig builds the effective configuration for a command invocation
// from viper: defaults, overridden by the config file, overridden by
// NETRECON_* environment variables.
func loadConfig() (*config.Config, error) {
	// Guarantees the keys exist even when cobra initialization did not run.
	setConfigDefaults()

	cfg := config.Default()
	cfg.Scanning.Binary = viper.GetString("scanning.binary")
	cfg.Scanning.DefaultTimeout = viper.GetDuration("scanning.default_timeout")
	cfg.Scanning.VulnTimeout = viper.GetDuration("scanning.vuln_timeout")
	cfg.Scanning.SkipPreflight = viper.GetBool("scanning.skip_preflight")
	cfg.Reports.Directory = viper.GetString("reports.directory")
	cfg.Reports.Formats = viper.GetStringSlice("reports.formats")
	cfg.Logging.Level = viper.GetString("logging.level")
	cfg.Logging.Format = viper.GetString("logging.format")
	cfg.Logging.Output = viper.GetString("logging.output")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// getVersion returns the version string.
func getVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime)
}

// SetVersion sets the version information (called from main).
func SetVersion(v, c, bt string) {
	version = v
	commit = c
	buildTime = bt
	rootCmd.Version = getVersion()
}

// initLogging initializes structured logging based on configuration.
func initLogging() {
	cfg, err := loadConfig()
	if err != nil {
		logging.SetDefault(logging.NewDefault())
		return
	}

	logConfig := logging.Config{
		Level:     logging.LogLevel(cfg.Logging.Level),
		Format:    logging.LogFormat(cfg.Logging.Format),
		Output:    cfg.Logging.Output,
		AddSource: cfg.Logging.Level == "debug",
	}
	if verbose && logConfig.Level != logging.LevelDebug {
		logConfig.Level = logging.LevelDebug
	}

	logger, err := logging.New(logConfig)
	if err != nil {
		logger = logging.NewDefault()
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	logging.SetDefault(logger)
}
