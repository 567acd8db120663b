package services

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// stderrTailLimit bounds how much of a tool's standard error is kept for the
// returned error. WhisperX prints progress there for the whole run.
const stderrTailLimit = 4 << 10

// CommandRunner executes an external binary with an explicit argument list and
// returns its standard output. Implementations must not route arguments
// through a shell.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// RunCommand is the production CommandRunner. Standard error is folded into the
// returned error so callers can surface the tool's own diagnostic.
func RunCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	return runCommand(ctx, nil, name, args...)
}

// RunCommandWithEnv returns a CommandRunner that appends extra KEY=VALUE pairs
// to the inherited environment. Variables already set by the user win.
func RunCommandWithEnv(extra ...string) CommandRunner {
	return func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return runCommand(ctx, extra, name, args...)
	}
}

func runCommand(ctx context.Context, extraEnv []string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if env := mergeEnv(extraEnv); env != nil {
		cmd.Env = env
	}
	var stdout bytes.Buffer
	stderr := &tailBuffer{limit: stderrTailLimit}
	cmd.Stdout = &stdout
	cmd.Stderr = stderr
	if err := cmd.Run(); err != nil {
		if detail := strings.TrimSpace(stderr.String()); detail != "" {
			return stdout.Bytes(), fmt.Errorf("%s: %w: %s", name, err, detail)
		}
		return stdout.Bytes(), fmt.Errorf("%s: %w", name, err)
	}
	return stdout.Bytes(), nil
}

// tailBuffer keeps the last limit bytes written to it.
type tailBuffer struct {
	limit     int
	buf       []byte
	truncated bool
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	n := len(p)
	if n >= t.limit {
		t.buf = append(t.buf[:0], p[n-t.limit:]...)
		t.truncated = true
		return n, nil
	}
	if over := len(t.buf) + n - t.limit; over > 0 {
		t.buf = append(t.buf[:0], t.buf[over:]...)
		t.truncated = true
	}
	t.buf = append(t.buf, p...)
	return n, nil
}

// String returns the kept bytes. A truncated tail starts at the first full
// line and is prefixed with an ellipsis.
func (t *tailBuffer) String() string {
	if !t.truncated {
		return string(t.buf)
	}
	tail := t.buf
	if i := bytes.IndexByte(tail, '\n'); i >= 0 && i+1 < len(tail) {
		tail = tail[i+1:]
	}
	return "..." + string(tail)
}

func mergeEnv(extra []string) []string {
	var add []string
	for _, pair := range extra {
		key, _, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			continue
		}
		if _, set := os.LookupEnv(key); set {
			continue
		}
		add = append(add, pair)
	}
	if len(add) == 0 {
		return nil
	}
	return append(os.Environ(), add...)
}
