// Package pipeline runs a video transcription job end to end.
//
// NewJob validates the input video and derives the transcript and temp audio
// paths. Pipeline.Run then extracts audio, selects a device, transcribes and
// writes the transcript. A single deferred cleanup owns the temp audio file,
// so it is removed on success, on failure and on cancellation alike unless
// the job asked to keep it. An advisory lock next to the temp file stops two
// runs on the same video from racing.
package pipeline
