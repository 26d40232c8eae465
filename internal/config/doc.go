// Package config loads, normalizes, and validates imgconv configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob the
// CLI needs: the default and last-used destination directories, encoder
// quality settings, the history journal location, and log output shape.
//
// Always obtain settings through this package so downstream code receives
// sanitized absolute paths and clear validation errors.
package config
