// Package config loads coinsheet configuration.
//
// Configuration is read from an optional YAML file with ${VAR} expansion,
// then environment overrides are applied, then defaults fill the gaps, and
// finally the result is validated. Any failure is reported as *ConfigError.
package config
