// Package language normalizes the optional spoken-language hint passed to the
// transcription engine.
//
// Hints may be ISO 639-1 or 639-2 codes, English word forms, or BCP 47 tags;
// they are reduced to the two-letter code WhisperX accepts. An empty hint or
// "auto" means automatic detection.
package language
