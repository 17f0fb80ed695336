// Package config loads, normalizes, and validates vendormatch configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files from the default location or an explicit
// path. The Config type centralizes every knob the CLI and library need, so
// data directories and matching thresholds are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
