// Package config reads the tabbatch TOML file and fills in defaults.
//
// Load looks for an explicit path, then ~/.config/tabbatch/config.toml, then
// ./tabbatch.toml. Paths are expanded to absolute form, zero or missing
// values are normalized to the built-in defaults, and Validate rejects URL
// templates without the "{}" placeholder or batch limits that cannot be met.
// TABBATCH_LOG_LEVEL overrides logging.level.
package config
