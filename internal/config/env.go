package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// loadFromEnv overrides config from PMTYPES_* environment variables.
// If sources is non-nil, it tracks the source of each value.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) error {
	set := func(field string) {
		if sources != nil {
			sources[field] = SourceEnv
		}
	}

	if v := os.Getenv("PMTYPES_ENGINE"); v != "" {
		cfg.Engine = v
		set("engine")
	}
	if v := os.Getenv("PMTYPES_STRICT_PROPERTIES"); v != "" {
		cfg.StrictProperties = boolFromString(v)
		set("strict_properties")
	}
	if v := os.Getenv("PMTYPES_SCHEMA"); v != "" {
		cfg.SchemaFile = v
		set("schema_file")
	}
	if v := os.Getenv("PMTYPES_KIND"); v != "" {
		cfg.Kind = v
		set("kind")
	}
	if v := os.Getenv("PMTYPES_MIN_VERSION"); v != "" {
		cfg.MinVersion = v
		set("min_version")
	}
	if v := os.Getenv("PMTYPES_JOBS"); v != "" {
		i, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("PMTYPES_JOBS: %w", err)
		}
		cfg.Jobs = i
		set("jobs")
	}
	if v := os.Getenv("PMTYPES_FORMAT"); v != "" {
		cfg.Format = v
		set("format")
	}

	// Logging configuration
	if v := os.Getenv("PMTYPES_LOG_DIR"); v != "" {
		cfg.LogDir = v
		set("log_dir")
	}
	if v := os.Getenv("PMTYPES_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
		set("log_level")
	}
	if v := os.Getenv("PMTYPES_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
		set("log_format")
	}
	if v := os.Getenv("PMTYPES_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = boolFromString(v)
		set("log_timestamps")
	}
	if v := os.Getenv("PMTYPES_LOG_CALLER"); v != "" {
		cfg.LogCaller = boolFromString(v)
		set("log_caller")
	}
	return nil
}

// boolFromString parses a boolean from a string.
func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
