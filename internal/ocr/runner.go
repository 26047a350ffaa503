package ocr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"strings"
	"time"
)

// StatusTimeout is the status recorded for a run that was stopped because it
// exceeded its timeout. Real exit statuses are never negative.
const StatusTimeout = -1

// terminateGrace is how long a terminated engine gets to exit before it is killed.
const terminateGrace = time.Second

// RunResult is the outcome of one engine invocation.
type RunResult struct {
	Status int
	Stderr string
	Stdout []byte
}

// run executes argv and waits for it to finish.
//
// Stdin is empty, stderr is always captured, and stdout is captured only when
// captureStdout is set. A positive timeout bounds the run; on expiry the
// process is terminated, then killed after terminateGrace, and ErrTimeout is
// returned along with a result carrying StatusTimeout.
func run(ctx context.Context, argv []string, timeout time.Duration, captureStdout bool) (*RunResult, error) {
	if len(argv) == 0 || argv[0] == "" {
		return nil, fmt.Errorf("%w: empty command", ErrEngineNotFound)
	}

	runCtx, cancel := ctx, context.CancelFunc(func() {})
	if timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, timeout)
	}
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(runCtx, argv[0], argv[1:]...)
	cmd.Env = os.Environ()
	cmd.Stderr = &stderr
	if captureStdout {
		cmd.Stdout = &stdout
	}
	cmd.Cancel = func() error {
		return terminate(cmd.Process)
	}
	cmd.WaitDelay = terminateGrace
	configureProcess(cmd)

	if err := cmd.Start(); err != nil {
		// Start refuses to spawn once the context is done.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return &RunResult{Status: StatusTimeout}, ErrTimeout
		}
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrEngineNotFound, argv[0])
		}
		return nil, err
	}

	err := cmd.Wait()
	result := &RunResult{
		Stderr: joinLines(stderr.String()),
		Stdout: stdout.Bytes(),
	}
	if err == nil {
		return result, nil
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		result.Status = StatusTimeout
		return result, ErrTimeout
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.Status = exitErr.ExitCode()
		return result, &ExecutionError{Status: result.Status, Message: result.Stderr}
	}
	return nil, err
}

// joinLines collapses multi-line diagnostics into one line.
func joinLines(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	return strings.TrimSpace(strings.Join(lines, " "))
}

// runCombined executes argv with stdout and stderr merged, as the engine's
// informational commands print to either stream depending on the release.
// A non-zero exit is reported through the returned status, not an error.
func runCombined(ctx context.Context, argv []string) (int, []byte, error) {
	if len(argv) == 0 || argv[0] == "" {
		return 0, nil, fmt.Errorf("%w: empty command", ErrEngineNotFound)
	}

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Env = os.Environ()
	cmd.Stdout = &out
	cmd.Stderr = &out
	configureProcess(cmd)

	err := cmd.Run()
	if err == nil {
		return 0, out.Bytes(), nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && ctx.Err() == nil {
		return exitErr.ExitCode(), out.Bytes(), nil
	}
	if ctx.Err() != nil {
		return 0, nil, ctx.Err()
	}
	return 0, nil, fmt.Errorf("%w: %s: %v", ErrEngineNotFound, argv[0], err)
}
