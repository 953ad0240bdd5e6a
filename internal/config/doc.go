// Package config handles configuration loading, parsing, and validation
// from environment variables (TASKSIFT_ prefix) and an optional YAML file.
// It provides type-safe access to server, remote completion and extraction
// settings while keeping configuration details separate from business logic.
package config
