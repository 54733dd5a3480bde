// Package config loads and validates TOML configuration and watches the
// config file for live reload.
package config
