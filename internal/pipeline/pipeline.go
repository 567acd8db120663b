package pipeline

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"vidtext/internal/device"
	"vidtext/internal/logging"
	"vidtext/internal/services"
	"vidtext/internal/transcript"
)

// AudioExtractor writes the audio track of a video to a WAV file.
type AudioExtractor interface {
	Extract(ctx context.Context, videoPath, audioPath string) error
}

// DeviceSelector picks the compute device for inference.
type DeviceSelector interface {
	Select(ctx context.Context) device.Info
}

// Transcriber converts an audio file into ordered segments.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string, dev device.Info, language string) (transcript.Result, error)
}

// TranscriptWriter persists segments to the output file.
type TranscriptWriter interface {
	Write(segments []transcript.Segment, outputPath string) error
}

// Pipeline sequences extraction, device selection, transcription and output
// for a single job.
type Pipeline struct {
	extractor   AudioExtractor
	selector    DeviceSelector
	transcriber Transcriber
	writer      TranscriptWriter
	logger      *slog.Logger
}

// New wires the pipeline stages.
func New(extractor AudioExtractor, selector DeviceSelector, transcriber Transcriber, writer TranscriptWriter, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		extractor:   extractor,
		selector:    selector,
		transcriber: transcriber,
		writer:      writer,
		logger:      logging.NewComponentLogger(logger, "pipeline"),
	}
}

// Run executes the job. The temp audio file is removed on every exit path
// unless the job keeps it. A cleanup failure is returned only when the run
// otherwise succeeded.
func (p *Pipeline) Run(ctx context.Context, job Job) (err error) {
	ctx = services.WithJobID(ctx, job.ID)
	logger := logging.WithContext(ctx, p.logger)

	lock, err := acquireJobLock(job.AudioPath)
	if err != nil {
		return err
	}
	defer func() {
		if cleanupErr := p.cleanup(logger, job, lock); cleanupErr != nil {
			if err == nil {
				err = cleanupErr
				return
			}
			logger.Warn("cleanup failed after error", logging.Error(cleanupErr))
		}
	}()

	logger.Info("starting transcription job",
		logging.String(logging.FieldInputPath, job.InputPath),
		logging.String(logging.FieldOutputPath, job.OutputPath),
	)

	if err := p.extractor.Extract(services.WithStage(ctx, "extract"), job.InputPath, job.AudioPath); err != nil {
		return err
	}

	transcribeCtx := services.WithStage(ctx, "transcribe")
	dev := p.selector.Select(transcribeCtx)
	result, err := p.transcriber.Transcribe(transcribeCtx, job.AudioPath, dev, job.Language)
	if err != nil {
		return err
	}

	logger.Info("transcription completed",
		logging.String(logging.FieldOutputPath, job.OutputPath),
		logging.Int(logging.FieldSegmentCount, len(result.Segments)),
	)
	return p.writer.Write(result.Segments, job.OutputPath)
}

func (p *Pipeline) cleanup(logger *slog.Logger, job Job, lock *jobLock) error {
	var removeErr error
	if !job.KeepAudio {
		switch err := os.Remove(job.AudioPath); {
		case err == nil:
			logger.Info("removed temporary audio file", logging.String(logging.FieldAudioPath, job.AudioPath))
		case errors.Is(err, fs.ErrNotExist):
		default:
			removeErr = services.Wrap(services.ErrOutput, "cleanup", "remove temp audio", job.AudioPath, err)
		}
	}
	if err := lock.release(); err != nil {
		logger.Warn("failed to release job lock", logging.Error(err))
	}
	return removeErr
}
