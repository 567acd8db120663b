// Package services defines shared utilities consumed by the pipeline stages
// and their external tool integrations.
//
// Key responsibilities:
//   - Context helpers that stamp job IDs and stage names for logging.
//   - Structured error markers plus the Wrap helper that classify failures
//     (validation, extraction, transcription, output) and map them to process
//     exit codes.
//   - The CommandRunner abstraction that keeps ffmpeg, nvidia-smi and WhisperX
//     invocations testable without the real binaries.
//
// Use these helpers when wiring new stage logic so error handling and
// observability stay uniform across the pipeline.
package services
