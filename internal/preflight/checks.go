package preflight

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"vidtext/internal/audio"
	"vidtext/internal/deps"
	"vidtext/internal/whisperx"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// SystemRequirements lists the external tools a transcription run uses.
func SystemRequirements() []deps.Requirement {
	return []deps.Requirement{
		{
			Name:        "FFmpeg",
			Command:     audio.FFmpegCommand,
			Description: "Required for audio extraction",
		},
		{
			Name:        "uvx",
			Command:     whisperx.UVXCommand,
			Description: "Required for WhisperX-driven transcription",
		},
		{
			Name:        "nvidia-smi",
			Command:     "nvidia-smi",
			Description: "Enables GPU acceleration when an NVIDIA card is present",
			Optional:    true,
		},
	}
}

// CheckSystemDeps evaluates all system-level dependencies.
func CheckSystemDeps() []deps.Status {
	return deps.CheckBinaries(SystemRequirements())
}
