package config

import (
	"github.com/spf13/pflag"
)

// flagToField maps flag names to config field names.
var flagToField = map[string]string{
	"engine":         "engine",
	"strict":         "strict_properties",
	"schema":         "schema_file",
	"kind":           "kind",
	"min-version":    "min_version",
	"jobs":           "jobs",
	"format":         "format",
	"log-dir":        "log_dir",
	"log-level":      "log_level",
	"log-format":     "log_format",
	"log-timestamps": "log_timestamps",
	"log-caller":     "log_caller",
}

// RegisterFlags adds the configuration flags to fs. Defaults shown in help
// are the built-in ones; values from files and the environment apply only
// when the flag is not set.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("engine", DefaultEngine, "Validation engine (builtin, jsonschema)")
	fs.Bool("strict", false, "Reject fields that closed schemas do not declare")
	fs.String("schema", "", "Additional JSON Schema file every document must satisfy")
	fs.String("kind", DefaultKind, "Input kind (project, item, feature, bug, task)")
	fs.String("min-version", "", "Minimum metadata.version accepted for project files")
	fs.IntP("jobs", "j", DefaultJobs, "Number of files validated concurrently")
	fs.StringP("format", "o", DefaultFormat, "Output format (text, json)")

	fs.String("log-dir", "", "Directory for JSONL run logs (empty disables)")
	fs.String("log-level", DefaultLogLevel, "Log level (debug, info, warn, error)")
	fs.String("log-format", DefaultLogFormat, "Log format (text, json, logfmt)")
	fs.Bool("log-timestamps", false, "Show timestamps in logs")
	fs.Bool("log-caller", false, "Show caller location in logs")
}

// applyFlags copies explicitly set flags into cfg and updates source tracking.
func applyFlags(cfg *Config, fs *pflag.FlagSet, sources map[string]ConfigSource) error {
	if fs == nil {
		return nil
	}

	var err error
	fs.Visit(func(f *pflag.Flag) {
		field, ok := flagToField[f.Name]
		if !ok || err != nil {
			return
		}
		if err = applyFlag(cfg, fs, f.Name); err == nil && sources != nil {
			sources[field] = SourceFlag
		}
	})
	return err
}

func applyFlag(cfg *Config, fs *pflag.FlagSet, name string) error {
	var err error
	switch name {
	case "engine":
		cfg.Engine, err = fs.GetString(name)
	case "strict":
		cfg.StrictProperties, err = fs.GetBool(name)
	case "schema":
		cfg.SchemaFile, err = fs.GetString(name)
	case "kind":
		cfg.Kind, err = fs.GetString(name)
	case "min-version":
		cfg.MinVersion, err = fs.GetString(name)
	case "jobs":
		cfg.Jobs, err = fs.GetInt(name)
	case "format":
		cfg.Format, err = fs.GetString(name)
	case "log-dir":
		cfg.LogDir, err = fs.GetString(name)
	case "log-level":
		cfg.LogLevel, err = fs.GetString(name)
	case "log-format":
		cfg.LogFormat, err = fs.GetString(name)
	case "log-timestamps":
		cfg.LogTimestamps, err = fs.GetBool(name)
	case "log-caller":
		cfg.LogCaller, err = fs.GetBool(name)
	}
	return err
}
