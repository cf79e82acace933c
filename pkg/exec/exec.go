package exec

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"time"

	e "bundlekit/pkg/errors"
	"bundlekit/pkg/logger"
)

// Commander provides an interface for command execution that can be mocked in tests.
type Commander interface {
	CommandContext(ctx context.Context, name string, args ...string) *exec.Cmd
}

// DefaultCommander implements Commander using the standard exec.CommandContext.
type DefaultCommander struct{}

// CommandContext creates a new exec.Cmd bound to ctx.
func (DefaultCommander) CommandContext(ctx context.Context, name string, args ...string) *exec.Cmd {
	return exec.CommandContext(ctx, name, args...)
}

// Default is the Commander used by executors that do not set one.
// Tests can override it to provide mock implementations.
var Default Commander = DefaultCommander{}

// waitDelay bounds how long Run waits for output pipes after the process
// has been killed.
const waitDelay = 2 * time.Second

// Result is the outcome of one process run.
type Result struct {
	Command  string
	Output   string
	ExitCode int
	Duration time.Duration
}

// Executor runs shell command lines.
type Executor struct {
	// Commander spawns processes; nil means Default.
	Commander Commander
	// Timeout bounds each run; zero means no limit beyond ctx.
	Timeout time.Duration
	// Stream, when set, receives output as it is produced in addition to
	// the captured copy in Result.Output.
	Stream io.Writer
	// Dir is the working directory; empty inherits the current one.
	Dir string
	// Secrets are masked wherever the command line is logged or reported.
	Secrets []string
}

// New returns an executor with the given timeout.
func New(timeout time.Duration) *Executor {
	return &Executor{Timeout: timeout}
}

// Execute runs command on a separate goroutine and calls exactly one of
// onSuccess or onFailure once it completes. It returns false without
// spawning anything when command is blank.
func (x *Executor) Execute(ctx context.Context, command string, onSuccess func(Result), onFailure func(error)) bool {
	if strings.TrimSpace(command) == "" {
		logger.Debug("skipping empty command")
		return false
	}
	go func() {
		res, err := x.Run(ctx, command)
		if err != nil {
			if onFailure != nil {
				onFailure(err)
			}
			return
		}
		if onSuccess != nil {
			onSuccess(res)
		}
	}()
	return true
}

// Run executes command through the host shell and waits for it. A non-zero
// exit, a failed spawn, or an expired deadline all return a coded
// *errors.Error; the Result still carries whatever output was captured.
func (x *Executor) Run(ctx context.Context, command string) (Result, error) {
	command = strings.TrimSpace(command)
	res := Result{Command: x.redact(command), ExitCode: -1}
	if command == "" {
		return res, e.New(e.ErrEmptyCommand, "Refusing to run an empty command")
	}

	if x.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, x.Timeout)
		defer cancel()
	}

	commander := x.Commander
	if commander == nil {
		commander = Default
	}
	name, args := shellCommand(command)
	cmd := commander.CommandContext(ctx, name, args...)
	cmd.Dir = x.Dir
	configureProcess(cmd, name, command)
	cmd.WaitDelay = waitDelay

	var captured bytes.Buffer
	var sink io.Writer = &captured
	if x.Stream != nil {
		sink = io.MultiWriter(&captured, x.Stream)
	}
	// One writer for both streams keeps writes ordered and single-threaded.
	cmd.Stdout = sink
	cmd.Stderr = sink

	logger.Verbosef("running: %s", res.Command)
	start := time.Now()
	err := cmd.Run()
	res.Duration = time.Since(start)
	res.Output = captured.String()
	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	}
	logger.Debugf("finished in %v with exit code %d", res.Duration, res.ExitCode)

	if err == nil {
		return res, nil
	}
	return res, classify(ctx, err, res)
}

func (x *Executor) redact(s string) string {
	for _, secret := range x.Secrets {
		if secret != "" {
			s = strings.ReplaceAll(s, secret, "****")
		}
	}
	return s
}

func classify(ctx context.Context, err error, res Result) error {
	switch {
	case stderrors.Is(ctx.Err(), context.DeadlineExceeded):
		return e.New(e.ErrTimeout, "Command timed out").
			WithCause(err).
			WithDetails(strings.TrimSpace(res.Output)).
			WithContext("command", res.Command)
	case stderrors.Is(ctx.Err(), context.Canceled):
		return e.New(e.ErrCancelled, "Command was cancelled").
			WithCause(err).
			WithContext("command", res.Command)
	}

	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if toolMissing(code) {
			return e.New(e.ErrToolNotFound, "Tool could not be started by the shell").
				WithDetails(strings.TrimSpace(res.Output)).
				WithContext("command", res.Command).
				WithContext("exit_code", strconv.Itoa(code))
		}
		return e.New(e.ErrProcessExit, "Command exited with status "+strconv.Itoa(code)).
			WithDetails(strings.TrimSpace(res.Output)).
			WithContext("command", res.Command).
			WithContext("exit_code", strconv.Itoa(code))
	}
	return e.Wrap(err, e.ErrProcessStart, "Failed to start process").
		WithContext("command", res.Command)
}
