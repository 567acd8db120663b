// Package logging assembles structured slog loggers and formatting helpers used
// across vidtext.
//
// It owns the console and JSON handlers, centralizes level and output plumbing,
// and exposes context-aware helpers so pipeline code can tag log lines with the
// job ID and stage. Loggers write to stderr by default; stdout is reserved for
// transcript lines.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits records with the same shape.
package logging
