// Package config loads, normalizes, and validates reviewsense configuration.
//
// Settings start from repository defaults, are overlaid by an optional TOML
// file and finally by REVIEWSENSE_* environment variables (a .env file in the
// working directory is honoured). Always obtain settings through this package
// so the server and CLI see the same values and validation errors.
package config
