package services_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"vidtext/internal/services"
)

func TestRunCommandCapturesStdout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs require a POSIX shell")
	}
	stub := filepath.Join(t.TempDir(), "tool")
	if err := os.WriteFile(stub, []byte("#!/bin/sh\necho \"hello $1\"\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	out, err := services.RunCommand(context.Background(), stub, "world")
	if err != nil {
		t.Fatalf("RunCommand returned error: %v", err)
	}
	if strings.TrimSpace(string(out)) != "hello world" {
		t.Fatalf("unexpected stdout %q", out)
	}
}

func TestRunCommandFoldsStderrIntoError(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs require a POSIX shell")
	}
	stub := filepath.Join(t.TempDir(), "tool")
	if err := os.WriteFile(stub, []byte("#!/bin/sh\necho 'no such stream' >&2\nexit 3\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	_, err := services.RunCommand(context.Background(), stub)
	if err == nil {
		t.Fatal("expected error for non-zero exit")
	}
	if !strings.Contains(err.Error(), "no such stream") {
		t.Fatalf("expected stderr in error, got %v", err)
	}
}

func TestRunCommandKeepsOnlyStderrTail(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs require a POSIX shell")
	}
	stub := filepath.Join(t.TempDir(), "tool")
	script := "#!/bin/sh\ni=0\nwhile [ $i -lt 2000 ]; do\n  echo \"progress $i\" >&2\n  i=$((i+1))\ndone\necho 'CUDA out of memory' >&2\nexit 1\n"
	if err := os.WriteFile(stub, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	_, err := services.RunCommand(context.Background(), stub)
	if err == nil {
		t.Fatal("expected error for non-zero exit")
	}
	msg := err.Error()
	if !strings.HasSuffix(msg, "CUDA out of memory") {
		t.Fatalf("expected last stderr line at end of error, got %q", msg)
	}
	if strings.Contains(msg, "progress 0\n") {
		t.Fatalf("expected early progress lines to be dropped, got %q", msg)
	}
	if len(msg) > 4096+len(stub)+64 {
		t.Fatalf("error message too long: %d bytes", len(msg))
	}
}

func TestRunCommandMissingBinary(t *testing.T) {
	_, err := services.RunCommand(context.Background(), filepath.Join(t.TempDir(), "missing-tool"))
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
}

func TestRunCommandWithEnvAddsUnsetVariables(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs require a POSIX shell")
	}
	t.Setenv("VIDTEXT_PRESET", "user")
	stub := filepath.Join(t.TempDir(), "tool")
	if err := os.WriteFile(stub, []byte("#!/bin/sh\necho \"$VIDTEXT_ADDED $VIDTEXT_PRESET\"\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	run := services.RunCommandWithEnv("VIDTEXT_ADDED=1", "VIDTEXT_PRESET=override")
	out, err := run(context.Background(), stub)
	if err != nil {
		t.Fatalf("runner returned error: %v", err)
	}
	if got := strings.TrimSpace(string(out)); got != "1 user" {
		t.Fatalf("unexpected environment %q", got)
	}
}
