// Package config loads, normalizes, and validates notesum configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// GEMINI_API_KEY. A .env file in the working directory or next to the config
// file is read before environment lookups so API keys can live outside the
// TOML file. The Config type centralizes every knob the CLI and API server
// need.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
