package device

import (
	"context"
	"log/slog"
	"strings"

	"vidtext/internal/logging"
	"vidtext/internal/services"
)

// ID identifies the compute device class used for inference.
type ID string

const (
	Accelerated ID = "accelerated"
	CPUOnly     ID = "cpu-only"
)

// Preference values mirror transcription.device in the config file.
const (
	PreferAuto = "auto"
	PreferCPU  = "cpu"
)

const probeBinary = "nvidia-smi"

// Info describes the selected device. Name is only set for accelerators.
type Info struct {
	ID   ID
	Name string
}

// Accelerated reports whether inference should run on the GPU.
func (i Info) Accelerated() bool {
	return i.ID == Accelerated
}

// String returns a short human-readable description.
func (i Info) String() string {
	if i.Accelerated() && i.Name != "" {
		return string(i.ID) + " (" + i.Name + ")"
	}
	return string(i.ID)
}

// Selector decides between an NVIDIA accelerator and the CPU.
type Selector struct {
	preference string
	binary     string
	run        services.CommandRunner
	logger     *slog.Logger
}

// NewSelector builds a selector honouring the configured preference.
func NewSelector(preference string, logger *slog.Logger) *Selector {
	return &Selector{
		preference: strings.ToLower(strings.TrimSpace(preference)),
		binary:     probeBinary,
		run:        services.RunCommand,
		logger:     logging.NewComponentLogger(logger, "device"),
	}
}

// WithCommandRunner overrides process execution (for testing).
func (s *Selector) WithCommandRunner(run services.CommandRunner) {
	if run != nil {
		s.run = run
	}
}

// Select probes for an accelerator and logs exactly one status line. Any
// probe failure falls back to CPU; Select never fails.
func (s *Selector) Select(ctx context.Context) Info {
	logger := logging.WithContext(ctx, s.logger)
	if s.preference == PreferCPU {
		logger.Info("accelerator not available, using CPU", logging.String("reason", "cpu requested in config"))
		return Info{ID: CPUOnly}
	}

	name, err := s.probe(ctx)
	if err != nil || name == "" {
		attrs := []logging.Attr{}
		if err != nil {
			attrs = append(attrs, logging.String("reason", err.Error()))
		}
		logger.Info("accelerator not available, using CPU", logging.Args(attrs...)...)
		return Info{ID: CPUOnly}
	}

	logger.Info("accelerator available", logging.String(logging.FieldDeviceName, name))
	return Info{ID: Accelerated, Name: name}
}

func (s *Selector) probe(ctx context.Context) (string, error) {
	out, err := s.run(ctx, s.binary, "--query-gpu=name", "--format=csv,noheader")
	if err != nil {
		return "", err
	}
	for _, line := range strings.Split(string(out), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed, nil
		}
	}
	return "", nil
}
