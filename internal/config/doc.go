// Package config loads, normalizes, and validates vidtext configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads an optional TOML file, and honours environment fallbacks
// such as HF_TOKEN. A missing file is not an error; the CLI runs on defaults.
//
// Always obtain settings through this package so downstream code receives
// canonical values and clear validation errors.
package config
