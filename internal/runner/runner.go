// Package runner executes the external scanning tool and captures its
// output. It owns the process lifecycle: preflight lookup, timeout
// enforcement, and exit status collection.
package runner

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/mrios/netrecon/internal/errors"
	"github.com/mrios/netrecon/internal/logging"
)

const (
	versionProbeTimeout = 10 * time.Second

	// pipeWaitDelay bounds how long Wait keeps draining the output pipes
	// after cancellation, in case a descendant process survives the kill
	// and still holds the write-ends.
	pipeWaitDelay = 5 * time.Second
)

// Execution captures everything observed from one run of the external tool.
type Execution struct {
	Command  string
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
	TimedOut bool
}

// Runner invokes a single external binary.
type Runner struct {
	binary string
	log    *logging.Logger
}

// New creates a runner for the given binary name or path.
func New(binary string) *Runner {
	return &Runner{
		binary: binary,
		log:    logging.Default().WithComponent("runner"),
	}
}

// Binary returns the configured binary name.
func (r *Runner) Binary() string {
	return r.binary
}

// Preflight verifies the binary is reachable on the execution path.
// It must be called before any output file is created.
func (r *Runner) Preflight() error {
	if _, err := exec.LookPath(r.binary); err != nil {
		return errors.Wrap(errors.CodeToolNotFound,
			fmt.Sprintf("%s not found on PATH, install it first", r.binary), err)
	}
	return nil
}

// Version runs the tool's --version flag and returns the first output line.
func (r *Runner) Version(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, versionProbeTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, r.binary, "--version").Output()
	if err != nil {
		return "", errors.Wrap(errors.CodeToolNotFound,
			fmt.Sprintf("failed to probe %s version", r.binary), err)
	}

	line, _, _ := strings.Cut(string(out), "\n")
	return strings.TrimSpace(line), nil
}

// Run executes the tool with args, bounded by timeout. The returned
// Execution is non-nil whenever a process actually ran, including timeout
// and non-zero exit cases, so callers can still report partial output.
func (r *Runner) Run(ctx context.Context, args []string, timeout time.Duration) (*Execution, error) {
	runCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, r.binary, args...)
	// Run the tool in its own process group and kill the whole group on
	// cancellation. The default cancel only signals the direct child,
	// leaving forked helpers alive and holding the output pipes open.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
	cmd.WaitDelay = pipeWaitDelay
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.log.Debug("starting external tool", "binary", r.binary, "args", strings.Join(args, " "))

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	execution := &Execution{
		Command:  r.binary + " " + strings.Join(args, " "),
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: elapsed,
	}

	if runCtx.Err() == context.DeadlineExceeded {
		execution.TimedOut = true
		execution.ExitCode = -1
		return execution, errors.Wrap(errors.CodeToolTimeout,
			fmt.Sprintf("scan exceeded %s and was terminated", timeout), runCtx.Err())
	}

	if err != nil {
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			execution.ExitCode = exitErr.ExitCode()
			return execution, errors.Wrap(errors.CodeToolExit,
				fmt.Sprintf("%s exited with code %d: %s",
					r.binary, execution.ExitCode, stderrTail(execution.Stderr)), err)
		}
		// Binary disappeared between preflight and run, or never existed.
		// No process ran, so there is nothing to report on.
		return nil, errors.Wrap(errors.CodeToolNotFound,
			fmt.Sprintf("failed to execute %s", r.binary), err)
	}

	execution.ExitCode = 0
	return execution, nil
}

// stderrTail returns the last non-empty stderr line for error messages.
func stderrTail(stderr string) string {
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return "no error output"
}
