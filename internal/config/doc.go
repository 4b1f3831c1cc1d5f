// Package config handles configuration loading and defaults for pmtypes.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.pmtypes/pmtypes.toml or OS-specific config directory)
// 3. Project config file (pmtypes.toml or .pmtypes.toml in the working directory)
// 4. Environment variables (PMTYPES_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.pmtypes/pmtypes.toml (preferred)
// - Windows: %APPDATA%\pmtypes\pmtypes.toml
// - macOS: ~/Library/Application Support/pmtypes/pmtypes.toml
// - Linux/BSD: $XDG_CONFIG_HOME/pmtypes/pmtypes.toml or ~/.config/pmtypes/pmtypes.toml
//
// Project-level config locations (overrides user config):
// - ./pmtypes.toml (preferred)
// - ./.pmtypes.toml
package config
