// Package config handles configuration loading, parsing, and validation
// from environment variables, an optional config.yaml and an optional .env
// file. It provides type-safe access to the settings needed by the model
// adapters, the logger and the study sessions.
package config
