package whisperx

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"vidtext/internal/device"
	"vidtext/internal/language"
	"vidtext/internal/logging"
	"vidtext/internal/services"
	"vidtext/internal/transcript"
)

// Torch 2.6 changed torch.load to weights_only=true by default, which breaks
// WhisperX and pyannote checkpoints. Force the legacy behaviour unless the
// user already chose.
const torchLegacyLoadEnv = "TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD=1"

// Service provides WhisperX transcription capabilities.
type Service struct {
	cfg         Config
	run         services.CommandRunner
	scratchRoot string
	logger      *slog.Logger
}

// NewService creates a WhisperX service with the given configuration.
func NewService(cfg Config, logger *slog.Logger) *Service {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.VADMethod == "" {
		cfg.VADMethod = VADMethodSilero
	}
	if cfg.CUDAIndexURL == "" {
		cfg.CUDAIndexURL = CUDAIndexURL
	}
	return &Service{
		cfg:    cfg,
		run:    services.RunCommandWithEnv(torchLegacyLoadEnv),
		logger: logging.NewComponentLogger(logger, "whisperx"),
	}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(run services.CommandRunner) {
	if run != nil {
		s.run = run
	}
}

// WithScratchRoot sets the parent directory for per-call scratch directories.
// Empty means the system temp directory.
func (s *Service) WithScratchRoot(dir string) {
	s.scratchRoot = dir
}

// Model returns the model name for logging.
func (s *Service) Model() string {
	return DefaultModel
}

// Transcribe runs WhisperX over audioPath and returns the segments in the
// order the engine emitted them. The model is loaded for every call.
func (s *Service) Transcribe(ctx context.Context, audioPath string, dev device.Info, lang string) (transcript.Result, error) {
	logger := logging.WithContext(ctx, s.logger)
	if strings.TrimSpace(audioPath) == "" {
		return transcript.Result{}, services.Wrap(services.ErrTranscription, "transcribe", "", "audio path required", nil)
	}

	scratch, err := os.MkdirTemp(s.scratchRoot, "vidtext-whisperx-")
	if err != nil {
		return transcript.Result{}, services.Wrap(services.ErrTranscription, "transcribe", "scratch dir", "", err)
	}
	defer func() {
		if err := os.RemoveAll(scratch); err != nil {
			logger.Warn("failed to remove whisperx scratch directory", logging.String("path", scratch), logging.Error(err))
		}
	}()

	code := language.Normalize(lang)
	logger.Info("loading model",
		logging.String(logging.FieldModel, DefaultModel),
		logging.String(logging.FieldDevice, dev.String()),
	)
	logger.Info("starting transcription",
		logging.String(logging.FieldAudioPath, audioPath),
		logging.String(logging.FieldLanguage, language.DisplayName(lang)),
	)

	started := time.Now()
	args := s.buildArgs(audioPath, scratch, code, dev)
	if _, err := s.run(ctx, UVXCommand, args...); err != nil {
		return transcript.Result{}, services.Wrap(services.ErrTranscription, "transcribe", "whisperx", "", err)
	}

	jsonPath := filepath.Join(scratch, strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))+".json")
	result, err := LoadResult(jsonPath)
	if err != nil {
		return transcript.Result{}, services.Wrap(services.ErrTranscription, "transcribe", "load result", "", err)
	}
	if result.Language == "" {
		result.Language = code
	}
	logger.Debug("whisperx finished",
		logging.Int(logging.FieldSegmentCount, len(result.Segments)),
		logging.Duration("duration", time.Since(started)),
	)
	return result, nil
}

// buildArgs constructs the uvx command arguments for WhisperX.
func (s *Service) buildArgs(source, outputDir, lang string, dev device.Info) []string {
	args := make([]string, 0, 32)

	if dev.Accelerated() {
		args = append(args,
			"--index-url", s.cfg.CUDAIndexURL,
			"--extra-index-url", PypiIndexURL,
		)
	} else {
		args = append(args, "--index-url", PypiIndexURL)
	}

	args = append(args,
		"whisperx",
		source,
		"--model", DefaultModel,
		"--batch_size", strconv.Itoa(s.cfg.BatchSize),
		"--output_dir", outputDir,
		"--output_format", OutputFormat,
		"--segment_resolution", SegmentResolution,
		"--chunk_size", ChunkSize,
		"--beam_size", BeamSize,
		"--temperature", Temperature,
		"--vad_method", s.cfg.VADMethod,
	)
	if s.cfg.VADMethod == VADMethodPyannote && s.cfg.HFToken != "" {
		args = append(args, "--hf_token", s.cfg.HFToken)
	}

	if lang != "" {
		args = append(args, "--language", lang)
	}

	if dev.Accelerated() {
		args = append(args, "--device", CUDADevice)
	} else {
		args = append(args, "--device", CPUDevice, "--compute_type", CPUComputeType)
	}

	return args
}

// payload is the JSON structure WhisperX writes.
type payload struct {
	Segments []transcript.Segment `json:"segments"`
	Language string               `json:"language"`
}

// LoadResult loads segments from a WhisperX JSON file.
func LoadResult(jsonPath string) (transcript.Result, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return transcript.Result{}, err
	}
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return transcript.Result{}, fmt.Errorf("parse whisperx json: %w", err)
	}
	return transcript.Result{Segments: p.Segments, Language: p.Language}, nil
}
