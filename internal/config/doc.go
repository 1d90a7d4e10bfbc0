// Package config loads the project manifest (busguard.toml) and the tool
// settings layered from defaults, a user config file, BUSGUARD_* environment
// variables and command-line flags.
package config
