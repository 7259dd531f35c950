package exec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	execpkg "os/exec"
	"path/filepath"
	"time"
)

const defaultWaitDelay = 5 * time.Second

// Runner defines the interface for executing commands.
type Runner interface {
	RunWith(ctx context.Context, options []Option, args ...string) (*RunResult, error)
}

// RunResult contains the captured output and exit status of a command.
type RunResult struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// RunConfig configures command execution.
type RunConfig struct {
	Dir           string
	OnStdout      func([]byte)
	OnStderr      func([]byte)
	CaptureOutput bool
	WaitDelay     time.Duration
}

// Option is a functional option for configuring RunConfig.
type Option func(*RunConfig)

// WithCapture keeps stdout and stderr in the returned RunResult.
func WithCapture() Option {
	return func(o *RunConfig) {
		o.CaptureOutput = true
	}
}

// WithCallbacks sets per-line handlers for stdout and stderr. Lines ending
// in a carriage return keep it so progress output can be told apart.
func WithCallbacks(onStdout, onStderr func([]byte)) Option {
	return func(o *RunConfig) {
		o.OnStdout = onStdout
		o.OnStderr = onStderr
	}
}

// WithDir sets the working directory of the command.
func WithDir(dir string) Option {
	return func(o *RunConfig) {
		o.Dir = dir
	}
}

// WithWaitDelay bounds how long a cancelled command may take to exit
// before it is killed.
func WithWaitDelay(d time.Duration) Option {
	return func(o *RunConfig) {
		o.WaitDelay = d
	}
}

// CommandRunner executes actual commands.
type CommandRunner struct {
	Path string
	Name string
}

// NewCommandRunner creates a new CommandRunner with binary path.
func NewCommandRunner(path string) *CommandRunner {
	return &CommandRunner{Path: path, Name: filepath.Base(path)}
}

// Available reports whether the binary can be found.
func (r *CommandRunner) Available() error {
	if _, err := execpkg.LookPath(r.Path); err != nil {
		return fmt.Errorf("%s not found: %w", r.Name, err)
	}
	return nil
}

// RunWith executes the command. When ctx is done the process receives an
// interrupt and is killed if it has not exited after the wait delay. A
// non-zero exit returns both the result and an error.
func (r *CommandRunner) RunWith(ctx context.Context, options []Option, args ...string) (*RunResult, error) {
	config := RunConfig{WaitDelay: defaultWaitDelay}
	for _, o := range options {
		o(&config)
	}

	stdout := newStreamWriter(config.CaptureOutput, config.OnStdout)
	stderr := newStreamWriter(config.CaptureOutput, config.OnStderr)

	cmd := execpkg.CommandContext(ctx, r.Path, args...) // #nosec: G204
	cmd.Dir = config.Dir
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.WaitDelay = config.WaitDelay
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}

	err := cmd.Run()
	stdout.flush()
	stderr.flush()

	result := &RunResult{
		Stdout:   stdout.captured(),
		Stderr:   stderr.captured(),
		ExitCode: -1,
	}
	if cmd.ProcessState != nil {
		result.ExitCode = cmd.ProcessState.ExitCode()
	}

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, fmt.Errorf("running %s: %w", r.Name, ctxErr)
		}
		var exitErr *execpkg.ExitError
		if errors.As(err, &exitErr) {
			return result, fmt.Errorf("%s exited with code %d: %w", r.Name, result.ExitCode, err)
		}
		return result, fmt.Errorf("running %s: %w", r.Name, err)
	}
	return result, nil
}

// streamWriter captures raw output and splits it into lines for a handler.
type streamWriter struct {
	buf     *bytes.Buffer
	handler func([]byte)
	pending []byte
}

func newStreamWriter(capture bool, handler func([]byte)) *streamWriter {
	w := &streamWriter{handler: handler}
	if capture {
		w.buf = &bytes.Buffer{}
	}
	return w
}

func (w *streamWriter) Write(p []byte) (int, error) {
	if w.buf != nil {
		w.buf.Write(p)
	}
	if w.handler == nil {
		return len(p), nil
	}
	for _, b := range p {
		switch b {
		case '\n':
			w.handler(w.pending)
			w.pending = w.pending[:0]
		case '\r':
			w.handler(append(w.pending, '\r'))
			w.pending = w.pending[:0]
		default:
			w.pending = append(w.pending, b)
		}
	}
	return len(p), nil
}

func (w *streamWriter) flush() {
	if w.handler != nil && len(w.pending) > 0 {
		w.handler(w.pending)
		w.pending = nil
	}
}

func (w *streamWriter) captured() []byte {
	if w.buf == nil {
		return nil
	}
	return w.buf.Bytes()
}
