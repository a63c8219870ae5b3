// Package config loads, normalizes, and validates autosub configuration data.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// an optional TOML file, and honours environment fallbacks such as HF_TOKEN.
// Command-line flags are applied on top of the loaded Config by the CLI, so
// every setting has one resolved value by the time the pipeline starts.
package config
