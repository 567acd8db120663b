package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"vidtext/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a default config with HOME pointed at a per-test temp
// directory so no user config leaks in. It applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Transcription.Device = config.DeviceCPU

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithDevice overrides the transcription device preference.
func WithDevice(device string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Transcription.Device = device
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// makes them the only entries on PATH. Scripts maps a binary name to its
// shell body; names without a script exit 0.
func WithStubbedBinaries(scripts map[string]string) ConfigOption {
	return func(b *configBuilder) {
		binDir := filepath.Join(b.baseDir, "bin")
		for name, body := range scripts {
			WriteExecutable(b.t, binDir, name, body)
		}
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		setPath(b.t, binDir)
	}
}

func setPath(t testing.TB, dir string) {
	t.Helper()
	oldPath := os.Getenv("PATH")
	if err := os.Setenv("PATH", dir); err != nil {
		t.Fatalf("set PATH: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Setenv("PATH", oldPath)
	})
}
