// Package scanning ties the scan pipeline together: profile resolution,
// external tool preflight and execution, and output parsing. Report writing
// is left to callers so that failed runs can still be reported.
package scanning

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mrios/netrecon/internal/config"
	"github.com/mrios/netrecon/internal/errors"
	"github.com/mrios/netrecon/internal/logging"
	"github.com/mrios/netrecon/internal/parse"
	"github.com/mrios/netrecon/internal/profiles"
	"github.com/mrios/netrecon/internal/runner"
)

// Result describes one scan invocation from start to finish. It is created
// once per run and never mutated afterwards.
type Result struct {
	ReportID   string
	Target     string
	Profile    string
	Timestamp  time.Time
	Command    string
	RawOutput  string
	RawErrors  string
	Success    bool
	ReturnCode int
	Duration   time.Duration
	Error      string
	Stats      *parse.Summary
}

// Scanner runs scans against a configured external tool.
type Scanner struct {
	cfg *config.Config
	run *runner.Runner
	log *logging.Logger
}

// New creates a scanner from configuration.
func New(cfg *config.Config) *Scanner {
	return &Scanner{
		cfg: cfg,
		run: runner.New(cfg.Scanning.Binary),
		log: logging.Default().WithComponent("scanning"),
	}
}

// Preflight verifies the external tool is available and logs its version.
// It must run before any report file is created.
func (s *Scanner) Preflight(ctx context.Context) error {
	if s.cfg.Scanning.SkipPreflight {
		return nil
	}
	if err := s.run.Preflight(); err != nil {
		return err
	}
	if version, err := s.run.Version(ctx); err == nil {
		s.log.Info("external tool detected", "version", version)
	}
	return nil
}

// Scan executes one scan of target using the named profile.
//
// A nil Result means nothing ran: bad profile, bad target, or missing
// binary. A non-nil Result with a non-nil error means the process ran but
// failed (timeout or non-zero exit); callers should still write reports
// for it, matching the tool's behavior of saving partial results.
func (s *Scanner) Scan(ctx context.Context, target, profileName string) (*Result, error) {
	profile, err := profiles.Resolve(profileName)
	if err != nil {
		return nil, err
	}

	args, err := profile.BuildArgs(target)
	if err != nil {
		return nil, err
	}

	if err := s.Preflight(ctx); err != nil {
		return nil, err
	}

	timeout := s.cfg.TimeoutFor(profile)
	result := &Result{
		ReportID:  uuid.New().String(),
		Target:    target,
		Profile:   profile.Name,
		Timestamp: time.Now(),
		Command:   profile.CommandLine(s.run.Binary(), target),
	}

	s.log.InfoScan("starting scan", target,
		"profile", profile.Name, "timeout", timeout.String())

	execution, runErr := s.run.Run(ctx, args, timeout)
	if execution == nil {
		// Process never started; nothing to report on.
		return nil, runErr
	}

	result.RawOutput = execution.Stdout
	result.RawErrors = execution.Stderr
	result.ReturnCode = execution.ExitCode
	result.Duration = execution.Duration
	result.Success = runErr == nil

	if execution.TimedOut {
		result.Error = "Timeout"
		result.Stats = parse.EmptySummary(parse.StatusTimeout)
		s.log.ErrorScan("scan timed out", target, runErr, "after", timeout.String())
		return result, runErr
	}

	result.Stats = parse.Output(result.RawOutput)

	if runErr != nil {
		result.Error = runErr.Error()
		s.log.ErrorScan("scan failed", target, runErr, "exit_code", result.ReturnCode)
		return result, runErr
	}

	s.log.InfoScan("scan completed", target,
		"hosts_up", result.Stats.HostsUp,
		"open_ports", len(result.Stats.OpenPorts),
		"duration", result.Duration.String())
	return result, nil
}

// ScanWithTimeout overrides the configured timeout for a single run.
func (s *Scanner) ScanWithTimeout(
	ctx context.Context, target, profileName string, timeout time.Duration,
) (*Result, error) {
	if timeout <= 0 {
		return nil, errors.New(errors.CodeConfiguration, "timeout must be positive")
	}
	cfg := *s.cfg
	cfg.Scanning.DefaultTimeout = timeout
	cfg.Scanning.VulnTimeout = timeout
	override := &Scanner{cfg: &cfg, run: s.run, log: s.log}
	return override.Scan(ctx, target, profileName)
}
