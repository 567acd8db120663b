package audio

import (
	"context"
	"log/slog"
	"time"

	"vidtext/internal/logging"
	"vidtext/internal/services"
)

// FFmpegCommand is the media tool used for extraction.
const FFmpegCommand = "ffmpeg"

// Extractor pulls the audio track out of a video as 16 kHz mono PCM WAV,
// the input format WhisperX expects.
type Extractor struct {
	binary string
	run    services.CommandRunner
	logger *slog.Logger
}

// NewExtractor returns an Extractor that invokes ffmpeg from PATH.
func NewExtractor(logger *slog.Logger) *Extractor {
	return &Extractor{
		binary: FFmpegCommand,
		run:    services.RunCommand,
		logger: logging.NewComponentLogger(logger, "audio"),
	}
}

// WithCommandRunner sets a custom command runner (for testing).
func (e *Extractor) WithCommandRunner(run services.CommandRunner) {
	if run != nil {
		e.run = run
	}
}

// WithBinary overrides the ffmpeg executable.
func (e *Extractor) WithBinary(binary string) {
	if binary != "" {
		e.binary = binary
	}
}

// Extract writes the best audio stream of videoPath to audioPath, replacing
// any existing file. On failure audioPath may be missing or partial.
func (e *Extractor) Extract(ctx context.Context, videoPath, audioPath string) error {
	logger := logging.WithContext(ctx, e.logger)
	started := time.Now()

	if _, err := e.run(ctx, e.binary, buildArgs(videoPath, audioPath)...); err != nil {
		logger.Error("failed to extract audio from video",
			logging.String(logging.FieldInputPath, videoPath),
			logging.Error(err),
		)
		return services.Wrap(services.ErrExtraction, "extract", "ffmpeg", "", err)
	}

	logger.Info("audio extracted",
		logging.String(logging.FieldAudioPath, audioPath),
		logging.Duration("duration", time.Since(started)),
	)
	return nil
}

func buildArgs(videoPath, audioPath string) []string {
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-nostdin",
		"-i", videoPath,
		"-vn",
		"-sn",
		"-dn",
		"-c:a", "pcm_s16le",
		"-ac", "1",
		"-ar", "16000",
		audioPath,
	}
}
