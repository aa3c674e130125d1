// Package config loads and validates the application configuration from
// environment variables and an optional YAML file. Environment variables
// use the CARDBOX_ prefix and take precedence over file values.
package config
