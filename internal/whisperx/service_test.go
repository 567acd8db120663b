package whisperx_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vidtext/internal/device"
	"vidtext/internal/logging"
	"vidtext/internal/services"
	"vidtext/internal/whisperx"
)

const talkJSON = `{
  "segments": [
    {"start": 0.0, "end": 2.5, "text": "Hello everyone.", "words": []},
    {"start": 2.5, "end": 5.0, "text": "Today we discuss Go."},
    {"start": 5.0, "end": 7.25, "text": "Let's begin."}
  ],
  "language": "en"
}`

type call struct {
	name string
	args []string
}

func argValue(args []string, flag string) string {
	for i, arg := range args {
		if arg == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func hasArg(args []string, flag string) bool {
	for _, arg := range args {
		if arg == flag {
			return true
		}
	}
	return false
}

// fakeWhisperX writes body as the JSON result WhisperX would produce.
func fakeWhisperX(body string, calls *[]call) services.CommandRunner {
	return func(_ context.Context, name string, args ...string) ([]byte, error) {
		*calls = append(*calls, call{name: name, args: append([]string(nil), args...)})
		outDir := argValue(args, "--output_dir")
		var source string
		for i, arg := range args {
			if arg == "whisperx" && i+1 < len(args) {
				source = args[i+1]
			}
		}
		stem := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
		if body == "" {
			return nil, nil
		}
		return nil, os.WriteFile(filepath.Join(outDir, stem+".json"), []byte(body), 0o644)
	}
}

func newService(t *testing.T, cfg whisperx.Config) (*whisperx.Service, *bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("logging.New: %v", err)
	}
	svc := whisperx.NewService(cfg, logger)
	scratch := t.TempDir()
	svc.WithScratchRoot(scratch)
	return svc, &buf, scratch
}

func TestTranscribeReturnsSegmentsInOrder(t *testing.T) {
	svc, logs, scratch := newService(t, whisperx.Config{})
	var calls []call
	svc.WithCommandRunner(fakeWhisperX(talkJSON, &calls))

	result, err := svc.Transcribe(context.Background(), "/videos/talk_temp.wav", device.Info{ID: device.CPUOnly}, "")
	if err != nil {
		t.Fatalf("Transcribe returned error: %v", err)
	}
	if len(result.Segments) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(result.Segments))
	}
	want := []string{"Hello everyone.", "Today we discuss Go.", "Let's begin."}
	for i, seg := range result.Segments {
		if seg.Text != want[i] {
			t.Fatalf("segment %d text = %q, want %q", i, seg.Text, want[i])
		}
	}
	if result.Segments[2].End != 7.25 {
		t.Fatalf("unexpected end %v", result.Segments[2].End)
	}
	if result.Language != "en" {
		t.Fatalf("language = %q", result.Language)
	}

	entries, err := os.ReadDir(scratch)
	if err != nil {
		t.Fatalf("read scratch root: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected scratch directory to be removed, found %d entries", len(entries))
	}

	out := logs.String()
	if !strings.Contains(out, "loading model") || !strings.Contains(out, "starting transcription") {
		t.Fatalf("expected status lines, got %q", out)
	}
	if !strings.Contains(out, "large-v3-turbo") {
		t.Fatalf("expected model name in logs, got %q", out)
	}
}

func TestTranscribeArgumentsForCPU(t *testing.T) {
	svc, _, _ := newService(t, whisperx.Config{BatchSize: 2})
	var calls []call
	svc.WithCommandRunner(fakeWhisperX(talkJSON, &calls))

	if _, err := svc.Transcribe(context.Background(), "/tmp/a_temp.wav", device.Info{ID: device.CPUOnly}, "English"); err != nil {
		t.Fatalf("Transcribe returned error: %v", err)
	}
	if len(calls) != 1 || calls[0].name != "uvx" {
		t.Fatalf("unexpected calls %+v", calls)
	}
	args := calls[0].args
	checks := map[string]string{
		"--index-url":     whisperx.PypiIndexURL,
		"--model":         "large-v3-turbo",
		"--batch_size":    "2",
		"--output_format": "json",
		"--device":        "cpu",
		"--compute_type":  "float32",
		"--language":      "en",
		"--vad_method":    "silero",
	}
	for flag, want := range checks {
		if got := argValue(args, flag); got != want {
			t.Fatalf("%s = %q, want %q (args %v)", flag, got, want, args)
		}
	}
	if hasArg(args, "--extra-index-url") || hasArg(args, "--hf_token") {
		t.Fatalf("unexpected flags in %v", args)
	}
}

func TestTranscribeArgumentsForAccelerator(t *testing.T) {
	svc, _, _ := newService(t, whisperx.Config{VADMethod: "pyannote", HFToken: "hf_x", CUDAIndexURL: "https://example.invalid/cu"})
	var calls []call
	svc.WithCommandRunner(fakeWhisperX(talkJSON, &calls))

	if _, err := svc.Transcribe(context.Background(), "/tmp/a_temp.wav", device.Info{ID: device.Accelerated, Name: "RTX"}, "auto"); err != nil {
		t.Fatalf("Transcribe returned error: %v", err)
	}
	args := calls[0].args
	if got := argValue(args, "--index-url"); got != "https://example.invalid/cu" {
		t.Fatalf("index url = %q", got)
	}
	if got := argValue(args, "--device"); got != "cuda" {
		t.Fatalf("device = %q", got)
	}
	if hasArg(args, "--compute_type") {
		t.Fatalf("compute type should not be forced on GPU: %v", args)
	}
	if hasArg(args, "--language") {
		t.Fatalf("auto language should not pass --language: %v", args)
	}
	if got := argValue(args, "--hf_token"); got != "hf_x" {
		t.Fatalf("hf token = %q", got)
	}
}

func TestTranscribeUnknownLanguagePassesThrough(t *testing.T) {
	svc, _, _ := newService(t, whisperx.Config{})
	var calls []call
	svc.WithCommandRunner(fakeWhisperX(talkJSON, &calls))
	if _, err := svc.Transcribe(context.Background(), "/tmp/a_temp.wav", device.Info{ID: device.CPUOnly}, "Klingon"); err != nil {
		t.Fatalf("Transcribe returned error: %v", err)
	}
	if got := argValue(calls[0].args, "--language"); got != "klingon" {
		t.Fatalf("language = %q", got)
	}
}

func TestTranscribeFailures(t *testing.T) {
	tests := []struct {
		name   string
		runner services.CommandRunner
	}{
		{"process fails", func(context.Context, string, ...string) ([]byte, error) {
			return nil, errors.New("uvx: exit status 1: CUDA out of memory")
		}},
		{"missing json", func(context.Context, string, ...string) ([]byte, error) { return nil, nil }},
		{"bad json", fakeWhisperX("{not json", &[]call{})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, scratch := newService(t, whisperx.Config{})
			svc.WithCommandRunner(tt.runner)
			_, err := svc.Transcribe(context.Background(), "/tmp/a_temp.wav", device.Info{ID: device.CPUOnly}, "")
			if !errors.Is(err, services.ErrTranscription) {
				t.Fatalf("expected transcription marker, got %v", err)
			}
			entries, _ := os.ReadDir(scratch)
			if len(entries) != 0 {
				t.Fatalf("expected scratch cleanup after failure, found %d entries", len(entries))
			}
		})
	}
}

func TestTranscribeRequiresAudioPath(t *testing.T) {
	svc, _, _ := newService(t, whisperx.Config{})
	if _, err := svc.Transcribe(context.Background(), " ", device.Info{ID: device.CPUOnly}, ""); !errors.Is(err, services.ErrTranscription) {
		t.Fatalf("expected transcription marker, got %v", err)
	}
}

func TestLoadResultEmptySegments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.json")
	if err := os.WriteFile(path, []byte(`{"segments": []}`), 0o644); err != nil {
		t.Fatalf("write json: %v", err)
	}
	result, err := whisperx.LoadResult(path)
	if err != nil {
		t.Fatalf("LoadResult returned error: %v", err)
	}
	if len(result.Segments) != 0 || result.Language != "" {
		t.Fatalf("unexpected result %+v", result)
	}
}
