package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# pmtypes configuration file
# Values can be overridden by PMTYPES_* environment variables or CLI flags

# Validation engine: builtin or jsonschema
engine = "builtin"

# Reject fields that closed object schemas do not declare (builtin engine)
strict_properties = false

# Extra JSON Schema file every document must also satisfy
# schema_file = "schemas/project.schema.json"

# Default input kind: project, item, feature, bug or task
kind = "project"

# Oldest metadata.version accepted for project files
# min_version = "1.0.0"

# Number of files validated concurrently
jobs = 4

# Report format: text or json
format = "text"

# Directory for JSONL run logs (supports ~ expansion; empty disables)
# log_dir = "~/.pmtypes/logs"

log_level = "info"
log_format = "text"
log_timestamps = false
log_caller = false
`
}
