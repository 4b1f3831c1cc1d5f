// Package config tests configuration loading.
package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

// isolate points the user and project config lookups at empty temp dirs and
// clears PMTYPES_* variables.
func isolate(t *testing.T) (home, project string) {
	t.Helper()
	home = t.TempDir()
	project = t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("APPDATA", filepath.Join(home, "AppData"))
	for _, kv := range os.Environ() {
		if name, _, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(name, "PMTYPES_") {
			t.Setenv(name, "")
		}
	}
	t.Chdir(project)
	return home, project
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func parsedFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return fs
}

func TestDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Engine != DefaultEngine {
		t.Errorf("Engine: got %q, want %q", cfg.Engine, DefaultEngine)
	}
	if cfg.Kind != DefaultKind {
		t.Errorf("Kind: got %q, want %q", cfg.Kind, DefaultKind)
	}
	if cfg.Jobs != DefaultJobs {
		t.Errorf("Jobs: got %d, want %d", cfg.Jobs, DefaultJobs)
	}
	if cfg.Format != DefaultFormat {
		t.Errorf("Format: got %q, want %q", cfg.Format, DefaultFormat)
	}
	if cfg.StrictProperties {
		t.Error("StrictProperties should default to false")
	}
	if cfg.LogDir != "" {
		t.Errorf("LogDir: got %q, want empty", cfg.LogDir)
	}
	if cfg.ProjectRoot == "" {
		t.Error("ProjectRoot should be computed")
	}
}

func TestLoadLayers(t *testing.T) {
	home, _ := isolate(t)

	writeFile(t, filepath.Join(home, ".pmtypes", "pmtypes.toml"), `
engine = "jsonschema"
jobs = 2
format = "json"
`)
	writeFile(t, "pmtypes.toml", `
jobs = 8
kind = "task"
`)
	t.Setenv("PMTYPES_KIND", "bug")
	t.Setenv("PMTYPES_STRICT_PROPERTIES", "yes")

	cws, err := LoadWithSources(parsedFlags(t, "--format", "text"))
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}
	cfg := cws.Config

	tests := []struct {
		field  string
		got    any
		want   any
		source ConfigSource
	}{
		{"engine", cfg.Engine, "jsonschema", SourceUserFile},
		{"jobs", cfg.Jobs, 8, SourceProjFile},
		{"kind", cfg.Kind, "bug", SourceEnv},
		{"strict_properties", cfg.StrictProperties, true, SourceEnv},
		{"format", cfg.Format, "text", SourceFlag},
		{"log_level", cfg.LogLevel, DefaultLogLevel, SourceDefault},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.field, tt.got, tt.want)
		}
		if cws.Sources[tt.field] != tt.source {
			t.Errorf("%s source: got %q, want %q", tt.field, cws.Sources[tt.field], tt.source)
		}
	}

	if len(cws.Files) != 2 {
		t.Fatalf("Files: got %v, want user and project file", cws.Files)
	}
	if got := cws.GetConfigFile(); got != "pmtypes.toml" {
		t.Errorf("GetConfigFile: got %q, want pmtypes.toml", got)
	}
}

func TestHiddenProjectFile(t *testing.T) {
	isolate(t)
	writeFile(t, ".pmtypes.toml", `min_version = "1.2.0"`)

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	v, err := cfg.MinSemVer()
	if err != nil || v == nil || v.String() != "1.2.0" {
		t.Errorf("MinSemVer: got %v, %v", v, err)
	}
}

func TestLoadConfigFileRejectsUnknownKeys(t *testing.T) {
	isolate(t)
	writeFile(t, "pmtypes.toml", `max_iterations = 10`)

	_, err := Load(nil)
	if err == nil || !strings.Contains(err.Error(), "max_iterations") {
		t.Errorf("expected unknown key error, got %v", err)
	}
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{"engine", []string{"--engine", "fast"}, nil},
		{"kind", []string{"--kind", "epic"}, nil},
		{"jobs", []string{"--jobs", "0"}, nil},
		{"format", []string{"-o", "xml"}, nil},
		{"min version", []string{"--min-version", "one"}, nil},
		{"log level", []string{"--log-level", "loud"}, nil},
		{"jobs env", nil, map[string]string{"PMTYPES_JOBS": "many"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(parsedFlags(t, tt.args...)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}

	tests := []struct {
		input string
		want  string
	}{
		{"~/logs", filepath.Join(home, "logs")},
		{"~", home},
		{"/absolute/path", "/absolute/path"},
		{"relative", "relative"},
		{"", ""},
	}
	if runtime.GOOS != "windows" {
		t.Setenv("PMTYPES_TEST_DIR", "/tmp/pm")
		tests = append(tests, struct {
			input string
			want  string
		}{"$PMTYPES_TEST_DIR/logs", "/tmp/pm/logs"})
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := expandPath(tt.input); got != tt.want {
				t.Errorf("expandPath(%q): got %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSchemaFileResolvedAgainstProjectRoot(t *testing.T) {
	_, project := isolate(t)

	cfg, err := Load(parsedFlags(t, "--schema", "schemas/project.json"))
	if err != nil {
		t.Fatal(err)
	}
	root, _ := filepath.EvalSymlinks(project)
	got, _ := filepath.EvalSymlinks(filepath.Dir(filepath.Dir(cfg.SchemaFile)))
	if got != root {
		t.Errorf("SchemaFile: got %q, want under %q", cfg.SchemaFile, project)
	}
}

func TestBoolFromString(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"1", true},
		{"true", true},
		{"TRUE", true},
		{"yes", true},
		{"on", true},
		{"0", false},
		{"false", false},
		{"no", false},
		{"off", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := boolFromString(tt.input); got != tt.want {
				t.Errorf("boolFromString(%q): got %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestExampleConfigDecodes(t *testing.T) {
	isolate(t)
	writeFile(t, "pmtypes.toml", ExampleConfig())

	cws, err := LoadWithSources(nil)
	if err != nil {
		t.Fatalf("example config does not load: %v", err)
	}
	if cws.Sources["engine"] != SourceProjFile {
		t.Errorf("engine source: got %q", cws.Sources["engine"])
	}
}

func TestResolvePath(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "work", "project")
	abs := filepath.Join(string(filepath.Separator), "etc", "schema.json")

	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"schemas/item.json", filepath.Join(root, "schemas", "item.json")},
		{abs, abs},
		{"./a/../b.json", filepath.Join(root, "b.json")},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := resolvePath(root, tt.input); got != tt.want {
				t.Errorf("resolvePath(%q): got %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
