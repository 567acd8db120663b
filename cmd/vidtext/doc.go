// Package main hosts the vidtext CLI entrypoint and command graph.
//
// The root command transcribes one video: it validates the input, builds the
// pipeline from configuration and runs it under a context that is cancelled
// on SIGINT or SIGTERM, so the temp audio file is cleaned up even when the
// user interrupts a long transcription. Transcript lines go to stdout and
// log lines to stderr.
//
// Subcommands cover configuration scaffolding (config init, config validate)
// and environment diagnostics (doctor).
package main
