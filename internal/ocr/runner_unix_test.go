//go:build !windows

package ocr

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestRun_CapturesOutput(t *testing.T) {
	result, err := run(context.Background(), []string{"sh", "-c", "echo out; echo err >&2"}, 0, true)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.Status != 0 {
		t.Errorf("Status: got %d, want 0", result.Status)
	}
	if string(result.Stdout) != "out\n" {
		t.Errorf("Stdout: got %q", result.Stdout)
	}
	if result.Stderr != "err" {
		t.Errorf("Stderr: got %q", result.Stderr)
	}
}

func TestRun_StdoutDiscarded(t *testing.T) {
	result, err := run(context.Background(), []string{"sh", "-c", "echo out"}, 0, false)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(result.Stdout) != 0 {
		t.Errorf("Stdout should not be captured, got %q", result.Stdout)
	}
}

func TestRun_ExecutionError(t *testing.T) {
	result, err := run(context.Background(), []string{"sh", "-c", "echo bad >&2; echo worse >&2; exit 3"}, 0, false)

	var execErr *ExecutionError
	if !errors.As(err, &execErr) {
		t.Fatalf("expected *ExecutionError, got %v", err)
	}
	if execErr.Status != 3 || result.Status != 3 {
		t.Errorf("Status: got %d/%d, want 3", execErr.Status, result.Status)
	}
	if execErr.Message != "bad worse" {
		t.Errorf("Message: got %q, want %q", execErr.Message, "bad worse")
	}
	if !strings.Contains(execErr.Error(), "status 3") {
		t.Errorf("Error(): got %q", execErr.Error())
	}
}

func TestRun_NotFound(t *testing.T) {
	tests := []struct {
		name string
		argv []string
	}{
		{"missing binary", []string{"tessbridge-no-such-engine"}},
		{"missing path", []string{"/nonexistent/dir/tesseract", "--version"}},
		{"empty command", []string{""}},
		{"empty argv", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(context.Background(), tt.argv, 0, false)
			if !errors.Is(err, ErrEngineNotFound) {
				t.Errorf("expected ErrEngineNotFound, got %v", err)
			}
		})
	}
}

func TestRun_Timeout(t *testing.T) {
	start := time.Now()
	result, err := run(context.Background(), []string{"sleep", "10"}, 200*time.Millisecond, false)
	elapsed := time.Since(start)

	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
	if result == nil || result.Status != StatusTimeout {
		t.Errorf("expected StatusTimeout result, got %+v", result)
	}
	if elapsed > 5*time.Second {
		t.Errorf("timeout took %s", elapsed)
	}
}

func TestRun_TimeoutIgnoresTerm(t *testing.T) {
	start := time.Now()
	_, err := run(context.Background(), []string{"sh", "-c", "trap '' TERM; sleep 10"}, 200*time.Millisecond, false)
	elapsed := time.Since(start)

	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
	if elapsed > 5*time.Second {
		t.Errorf("kill after grace period took %s", elapsed)
	}
}

func TestRun_ParentCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := run(ctx, []string{"sleep", "10"}, time.Second, false)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRunCombined(t *testing.T) {
	status, out, err := runCombined(context.Background(), []string{"sh", "-c", "echo a; echo b >&2; exit 1"})
	if err != nil {
		t.Fatalf("runCombined failed: %v", err)
	}
	if status != 1 {
		t.Errorf("status: got %d, want 1", status)
	}
	if !strings.Contains(string(out), "a") || !strings.Contains(string(out), "b") {
		t.Errorf("output should merge both streams, got %q", out)
	}

	if _, _, err := runCombined(context.Background(), []string{"tessbridge-no-such-engine"}); !errors.Is(err, ErrEngineNotFound) {
		t.Errorf("expected ErrEngineNotFound, got %v", err)
	}
}

func TestJoinLines(t *testing.T) {
	if got := joinLines("line one\r\nline two\n\n"); got != "line one line two" {
		t.Errorf("got %q", got)
	}
}
