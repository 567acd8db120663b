package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTranscription(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateTranscription() error {
	switch c.Transcription.Device {
	case DeviceAuto, DeviceCPU:
	default:
		return fmt.Errorf("transcription.device must be %q or %q, got %q", DeviceAuto, DeviceCPU, c.Transcription.Device)
	}
	if c.Transcription.BatchSize < 1 {
		return errors.New("transcription.batch_size must be positive")
	}
	switch c.Transcription.VADMethod {
	case VADMethodSilero:
	case VADMethodPyannote:
		if c.Transcription.HFToken == "" {
			return errors.New("transcription.hf_token (or HF_TOKEN) is required when transcription.vad_method is pyannote")
		}
	default:
		return fmt.Errorf("transcription.vad_method must be %q or %q, got %q", VADMethodSilero, VADMethodPyannote, c.Transcription.VADMethod)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
