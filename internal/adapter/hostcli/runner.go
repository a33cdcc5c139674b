// Package hostcli executes Git-hosting CLI commands (gh, glab) as child
// processes and reports their outcome as data.
package hostcli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Command describes a single CLI invocation. Arguments are always passed as
// discrete tokens so attacker-controlled text (PR titles, comment bodies)
// never reaches a shell.
type Command struct {
	// Executable is a pre-validated binary name, never built from input.
	Executable string

	// Args is the ordered argument list.
	Args []string

	// Env is appended to the inherited process environment. Adapters use it
	// to pass tokens (GH_TOKEN) without mutating the agent's own env.
	Env map[string]string
}

// Result is the outcome of one command execution. It is always populated
// when the process started, including on non-zero exit; the caller decides
// whether a non-zero exit is an error.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// NotFoundError indicates the executable could not be located.
type NotFoundError struct {
	Executable string
	Err        error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: executable not found (is the CLI installed?)", e.Executable)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// TimeoutError indicates the configured timeout elapsed before the command
// finished.
type TimeoutError struct {
	Executable string
	Timeout    time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s: command timed out after %s", e.Executable, e.Timeout)
}

// ExitError carries a non-zero exit outcome with the child's stderr verbatim.
// Adapters wrap it when they decide the exit is fatal for their operation.
type ExitError struct {
	Executable string
	ExitCode   int
	Stderr     string
}

func (e *ExitError) Error() string {
	stderr := strings.TrimSpace(e.Stderr)
	if stderr == "" {
		return fmt.Sprintf("%s exited with code %d", e.Executable, e.ExitCode)
	}
	return fmt.Sprintf("%s exited with code %d: %s", e.Executable, e.ExitCode, stderr)
}

// Runner executes host CLI commands.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// ExecRunner runs commands via os/exec with an optional per-command timeout.
type ExecRunner struct {
	timeout time.Duration
}

// NewExecRunner constructs a runner. A zero timeout leaves commands bounded
// only by the caller's context.
func NewExecRunner(timeout time.Duration) *ExecRunner {
	return &ExecRunner{timeout: timeout}
}

// Run executes the command and blocks until it exits. The returned Result is
// valid whenever the process started; a non-zero exit is reported in
// Result.ExitCode with a nil error so the caller can decide how to treat it.
// Errors are limited to NotFoundError, TimeoutError, and start failures.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (Result, error) {
	runCtx := ctx
	var cancel context.CancelFunc
	if r.timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	command := exec.CommandContext(runCtx, cmd.Executable, cmd.Args...)

	if len(cmd.Env) > 0 {
		env := os.Environ()
		for key, value := range cmd.Env {
			env = append(env, key+"="+value)
		}
		command.Env = env
	}

	var stdout, stderr bytes.Buffer
	command.Stdout = &stdout
	command.Stderr = &stderr

	err := command.Run()

	result := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		switch {
		case errors.As(err, &exitErr):
			if runCtx.Err() == context.DeadlineExceeded && ctx.Err() == nil {
				return result, &TimeoutError{Executable: cmd.Executable, Timeout: r.timeout}
			}
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		case errors.Is(err, exec.ErrNotFound):
			return result, &NotFoundError{Executable: cmd.Executable, Err: err}
		default:
			if runCtx.Err() == context.DeadlineExceeded && ctx.Err() == nil {
				return result, &TimeoutError{Executable: cmd.Executable, Timeout: r.timeout}
			}
			return result, fmt.Errorf("running %s: %w", cmd.Executable, err)
		}
	}

	return result, nil
}
