package config

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/charmbracelet/log"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource

	// Files lists the config files that were read, lowest priority first.
	Files []string
}

// Default values.
const (
	DefaultEngine    = "builtin"
	DefaultKind      = "project"
	DefaultJobs      = 4
	DefaultFormat    = "text"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Input kinds accepted by the validate command.
var validKinds = []string{"project", "item", "feature", "bug", "task"}

// Config holds the full configuration for pmtypes.
type Config struct {
	// Validation
	Engine           string `toml:"engine"`
	StrictProperties bool   `toml:"strict_properties"`
	SchemaFile       string `toml:"schema_file"`
	Kind             string `toml:"kind"`
	MinVersion       string `toml:"min_version"`

	// Execution
	Jobs int `toml:"jobs"`

	// Output
	Format string `toml:"format"`

	// Logging configuration
	LogDir        string `toml:"log_dir"`
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Project root (computed)
	ProjectRoot string `toml:"-"`
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Engine {
	case "builtin", "jsonschema":
	default:
		return fmt.Errorf("engine must be builtin or jsonschema, got %q", c.Engine)
	}
	if !isValidKind(c.Kind) {
		return fmt.Errorf("kind must be one of %s, got %q", strings.Join(validKinds, ", "), c.Kind)
	}
	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1, got %d", c.Jobs)
	}
	switch c.Format {
	case "text", "json":
	default:
		return fmt.Errorf("format must be text or json, got %q", c.Format)
	}
	if c.MinVersion != "" {
		if _, err := semver.NewVersion(c.MinVersion); err != nil {
			return fmt.Errorf("min_version %q: %w", c.MinVersion, err)
		}
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	switch c.LogFormat {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("log_format must be text, json or logfmt, got %q", c.LogFormat)
	}
	return nil
}

// MinSemVer returns the parsed minimum project version, or nil when none is
// configured.
func (c *Config) MinSemVer() (*semver.Version, error) {
	if c.MinVersion == "" {
		return nil, nil
	}
	return semver.NewVersion(c.MinVersion)
}

func isValidKind(kind string) bool {
	for _, k := range validKinds {
		if k == kind {
			return true
		}
	}
	return false
}
