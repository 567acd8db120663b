package pipeline

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"vidtext/internal/config"
	"vidtext/internal/services"
)

// Extensions accepted as video input, compared case-insensitively.
var videoExtensions = map[string]struct{}{
	".mp4": {},
	".mkv": {},
	".avi": {},
}

const (
	outputExtension = ".txt"
	tempAudioSuffix = "_temp.wav"
)

// Job describes one transcription run.
type Job struct {
	// ID correlates log lines for the run.
	ID         string
	InputPath  string
	OutputPath string
	// AudioPath is the intermediate WAV file owned by this job.
	AudioPath string
	// Language is the hint passed to the engine; empty means auto-detect.
	Language  string
	KeepAudio bool
}

// IsVideoFile reports whether path carries one of the accepted video
// extensions.
func IsVideoFile(path string) bool {
	_, ok := videoExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// NewJob validates the input and derives output and temp audio paths. An empty
// output selects the input path with its extension replaced by .txt.
func NewJob(input, output, language string, keepAudio bool) (Job, error) {
	if strings.TrimSpace(input) == "" {
		return Job{}, validationError("input file is required")
	}
	inputPath, err := config.ExpandPath(strings.TrimSpace(input))
	if err != nil {
		return Job{}, services.Wrap(services.ErrValidation, "validate", "input", "", err)
	}

	info, err := os.Stat(inputPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Job{}, validationError("input file does not exist")
		}
		return Job{}, services.Wrap(services.ErrValidation, "validate", "input", "", err)
	}
	if info.IsDir() {
		return Job{}, validationError("input path is a directory, not a video file")
	}
	if !IsVideoFile(inputPath) {
		return Job{}, validationError("input file must be a video file (mp4, mkv, or avi)")
	}

	stem := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
	job := Job{
		ID:        uuid.NewString(),
		InputPath: inputPath,
		AudioPath: stem + tempAudioSuffix,
		Language:  strings.TrimSpace(language),
		KeepAudio: keepAudio,
	}

	if strings.TrimSpace(output) == "" {
		job.OutputPath = stem + outputExtension
	} else {
		job.OutputPath, err = config.ExpandPath(strings.TrimSpace(output))
		if err != nil {
			return Job{}, services.Wrap(services.ErrValidation, "validate", "output", "", err)
		}
	}

	switch job.OutputPath {
	case job.InputPath:
		return Job{}, validationError("output file must differ from the input file")
	case job.AudioPath:
		return Job{}, validationError("output file must differ from the temporary audio file")
	}
	return job, nil
}

func validationError(message string) error {
	return services.Wrap(services.ErrValidation, "", "", message, nil)
}
