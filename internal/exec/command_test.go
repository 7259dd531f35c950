package exec_test

import (
	"context"
	"errors"
	"runtime"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/Ghazanfar1991/youtube-app/internal/exec"
)

func shellRunner(t *testing.T) *exec.CommandRunner {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts require a POSIX shell")
	}
	return exec.NewCommandRunner("sh")
}

func TestCommandRunner_Capture(t *testing.T) {
	runner := shellRunner(t)

	result, err := runner.RunWith(context.Background(),
		[]exec.Option{exec.WithCapture()},
		"-c", `printf "out"; printf "err" >&2`,
	)
	if err != nil {
		t.Fatalf("RunWith() error = %v, want nil", err)
	}

	if diff := cmp.Diff("out", string(result.Stdout)); diff != "" {
		t.Errorf("stdout mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff("err", string(result.Stderr)); diff != "" {
		t.Errorf("stderr mismatch (-want +got):\n%s", diff)
	}
	if result.ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", result.ExitCode)
	}
}

func TestCommandRunner_NonZeroExit(t *testing.T) {
	runner := shellRunner(t)

	result, err := runner.RunWith(context.Background(),
		[]exec.Option{exec.WithCapture()},
		"-c", `echo "Sign in to confirm you're not a bot" >&2; exit 3`,
	)
	if err == nil {
		t.Fatal("RunWith() error = nil, want exit error")
	}
	if result == nil || result.ExitCode != 3 {
		t.Fatalf("RunWith() result = %+v, want exit code 3", result)
	}
	if diff := cmp.Diff("Sign in to confirm you're not a bot\n", string(result.Stderr)); diff != "" {
		t.Errorf("stderr mismatch (-want +got):\n%s", diff)
	}
}

func TestCommandRunner_Callbacks(t *testing.T) {
	runner := shellRunner(t)

	var stdoutLines, stderrLines []string
	_, err := runner.RunWith(context.Background(),
		[]exec.Option{exec.WithCallbacks(
			func(b []byte) { stdoutLines = append(stdoutLines, string(b)) },
			func(b []byte) { stderrLines = append(stderrLines, string(b)) },
		)},
		"-c", `printf "one\ntwo\r three"; printf "warn\n" >&2`,
	)
	if err != nil {
		t.Fatalf("RunWith() error = %v, want nil", err)
	}

	if diff := cmp.Diff([]string{"one", "two\r", " three"}, stdoutLines); diff != "" {
		t.Errorf("stdout lines mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"warn"}, stderrLines); diff != "" {
		t.Errorf("stderr lines mismatch (-want +got):\n%s", diff)
	}
}

func TestCommandRunner_ContextCancellation(t *testing.T) {
	runner := shellRunner(t)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := runner.RunWith(ctx,
		[]exec.Option{exec.WithWaitDelay(time.Second)},
		"-c", "sleep 30",
	)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("RunWith() error = %v, want deadline exceeded", err)
	}
	if elapsed := time.Since(start); elapsed > 10*time.Second {
		t.Errorf("RunWith() took %v after cancellation", elapsed)
	}
}

func TestCommandRunner_MissingBinary(t *testing.T) {
	runner := exec.NewCommandRunner("definitely-not-a-real-binary-xyz")
	if err := runner.Available(); err == nil {
		t.Error("Available() error = nil, want not found")
	}

	result, err := runner.RunWith(context.Background(), nil)
	if err == nil {
		t.Fatal("RunWith() error = nil, want start failure")
	}
	if result.ExitCode != -1 {
		t.Errorf("ExitCode = %d, want -1", result.ExitCode)
	}
}
