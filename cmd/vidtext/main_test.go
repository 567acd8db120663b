package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"vidtext/internal/services"
	"vidtext/internal/testsupport"
)

type cliTestEnv struct {
	dir        string
	configPath string
}

// setupCLITestEnv isolates HOME, writes a config file and replaces PATH with
// a directory holding the given stubs.
func setupCLITestEnv(t *testing.T, stubs map[string]string) *cliTestEnv {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs require a POSIX shell")
	}
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TMPDIR", t.TempDir())
	t.Setenv("NO_COLOR", "1")

	dir := t.TempDir()
	binDir := filepath.Join(dir, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatalf("mkdir bin: %v", err)
	}
	for name, body := range stubs {
		testsupport.WriteExecutable(t, binDir, name, body)
	}
	t.Setenv("PATH", binDir)

	configPath := filepath.Join(dir, "config.toml")
	content := "[transcription]\ndevice = \"cpu\"\n\n[logging]\nformat = \"console\"\nlevel = \"info\"\n"
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return &cliTestEnv{dir: dir, configPath: configPath}
}

func (e *cliTestEnv) video(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(e.dir, name)
	testsupport.WriteFile(t, path, 1024)
	return path
}

func runCLI(t *testing.T, args []string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected %q in output:\n%s", needle, haystack)
	}
}

func requireMissing(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected %s to be absent (stat err %v)", path, err)
	}
}

var talkTranscript = "[0.00s - 2.50s] Hello\n" +
	"[2.50s - 5.00s] world\n" +
	"[5.00s - 7.10s] goodbye\n"

func TestTranscribeTalkVideo(t *testing.T) {
	env := setupCLITestEnv(t, map[string]string{
		"ffmpeg": testsupport.FFmpegStub,
		"uvx":    testsupport.WhisperXStub,
	})
	input := env.video(t, "talk.mp4")

	stdout, stderr, err := runCLI(t, []string{"--config", env.configPath, "--input", input})
	if err != nil {
		t.Fatalf("transcribe: %v\nstderr:\n%s", err, stderr)
	}
	if stdout != talkTranscript {
		t.Fatalf("stdout = %q, want %q", stdout, talkTranscript)
	}

	data, err := os.ReadFile(filepath.Join(env.dir, "talk.txt"))
	if err != nil {
		t.Fatalf("read transcript: %v", err)
	}
	if string(data) != talkTranscript {
		t.Fatalf("transcript = %q, want %q", data, talkTranscript)
	}
	requireMissing(t, filepath.Join(env.dir, "talk_temp.wav"))

	for _, line := range []string{
		"audio extracted",
		"accelerator not available, using CPU",
		"loading model",
		"starting transcription",
		"transcription completed",
		"removed temporary audio file",
	} {
		requireContains(t, stderr, line)
	}
}

func TestTranscribeKeepAudioAndCustomOutput(t *testing.T) {
	env := setupCLITestEnv(t, map[string]string{
		"ffmpeg": testsupport.FFmpegStub,
		"uvx":    testsupport.WhisperXStub,
	})
	input := env.video(t, "Lecture.MKV")
	output := filepath.Join(env.dir, "notes.txt")

	_, stderr, err := runCLI(t, []string{"--config", env.configPath, "--input", input, "--output", output, "--language", "english", "--keep-audio"})
	if err != nil {
		t.Fatalf("transcribe: %v\nstderr:\n%s", err, stderr)
	}
	if _, err := os.Stat(output); err != nil {
		t.Fatalf("expected transcript at %s: %v", output, err)
	}
	if _, err := os.Stat(filepath.Join(env.dir, "Lecture_temp.wav")); err != nil {
		t.Fatalf("expected kept temp audio: %v", err)
	}
	if strings.Contains(stderr, "removed temporary audio file") {
		t.Fatalf("unexpected removal log:\n%s", stderr)
	}
	requireContains(t, stderr, "English")
}

func TestTranscribeRejectsNonVideo(t *testing.T) {
	env := setupCLITestEnv(t, nil)
	input := env.video(t, "clip.txt")

	stdout, _, err := runCLI(t, []string{"--config", env.configPath, "--input", input})
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	requireContains(t, err.Error(), "input file must be a video file (mp4, mkv, or avi)")
	if services.ExitCode(err) == 0 {
		t.Fatal("expected non-zero exit code")
	}
	if stdout != "" {
		t.Fatalf("expected no transcript output, got %q", stdout)
	}
	entries, _ := os.ReadDir(env.dir)
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".wav") || entry.Name() == "clip.txt.txt" {
			t.Fatalf("unexpected side effect %s", entry.Name())
		}
	}
}

func TestTranscribeMissingInput(t *testing.T) {
	env := setupCLITestEnv(t, nil)
	_, _, err := runCLI(t, []string{"--config", env.configPath, "--input", filepath.Join(env.dir, "nope.mp4")})
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	requireContains(t, err.Error(), "input file does not exist")
}

func TestTranscribeWithoutFfmpegLeavesNoTempFile(t *testing.T) {
	env := setupCLITestEnv(t, map[string]string{"uvx": testsupport.WhisperXStub})
	input := env.video(t, "talk.mp4")

	_, stderr, err := runCLI(t, []string{"--config", env.configPath, "--input", input})
	if !errors.Is(err, services.ErrExtraction) {
		t.Fatalf("expected extraction error, got %v", err)
	}
	if services.ExitCode(err) != 1 {
		t.Fatalf("exit code = %d, want 1", services.ExitCode(err))
	}
	requireContains(t, stderr, "failed to extract audio from video")
	requireMissing(t, filepath.Join(env.dir, "talk_temp.wav"))
	requireMissing(t, filepath.Join(env.dir, "talk.txt"))
}

func TestTranscribeVideoWithoutAudioStream(t *testing.T) {
	env := setupCLITestEnv(t, map[string]string{
		"ffmpeg": testsupport.FFmpegMissingStreamStub,
		"uvx":    testsupport.WhisperXStub,
	})
	input := env.video(t, "silent.avi")

	_, _, err := runCLI(t, []string{"--config", env.configPath, "--input", input})
	if !errors.Is(err, services.ErrExtraction) {
		t.Fatalf("expected extraction error, got %v", err)
	}
	requireContains(t, err.Error(), "does not contain any stream")
	requireMissing(t, filepath.Join(env.dir, "silent_temp.wav"))
}

func TestTranscribeEngineFailureCleansUp(t *testing.T) {
	env := setupCLITestEnv(t, map[string]string{
		"ffmpeg": testsupport.FFmpegStub,
		"uvx":    "echo 'RuntimeError: CUDA out of memory' >&2\nexit 1\n",
	})
	input := env.video(t, "talk.mp4")

	_, stderr, err := runCLI(t, []string{"--config", env.configPath, "--input", input})
	if !errors.Is(err, services.ErrTranscription) {
		t.Fatalf("expected transcription error, got %v", err)
	}
	requireContains(t, stderr, "removed temporary audio file")
	requireMissing(t, filepath.Join(env.dir, "talk_temp.wav"))
}

func TestInvalidConfigExitsWithConfigurationError(t *testing.T) {
	env := setupCLITestEnv(t, nil)
	if err := os.WriteFile(env.configPath, []byte("[transcription]\ndevice = \"tpu\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, _, err := runCLI(t, []string{"--config", env.configPath, "--input", env.video(t, "talk.mp4")})
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if services.ExitCode(err) != 2 {
		t.Fatalf("exit code = %d, want 2", services.ExitCode(err))
	}
}
