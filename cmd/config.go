package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/vibeclasses/docstocode-types/internal/config"
)

type configEntry struct {
	Key    string              `json:"key"`
	Value  any                 `json:"value"`
	Source config.ConfigSource `json:"source"`
}

func newConfigCommand() *cobra.Command {
	var example bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Show every configuration value together with where it came from: a default,
the user file, the project file, the environment or a flag.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if example {
				_, err := io.WriteString(cmd.OutOrStdout(), config.ExampleConfig())
				return err
			}
			cws := appFrom(cmd).cfg
			entries := configEntries(cws)
			if cws.Config.Format == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{"files": cws.Files, "values": entries})
			}
			writeConfigTable(cmd.OutOrStdout(), cws, entries)
			return nil
		},
	}
	cmd.Flags().BoolVar(&example, "example", false, "Print an example configuration file")
	return cmd
}

func configEntries(cws *config.ConfigWithSources) []configEntry {
	cfg := cws.Config
	values := []struct {
		key   string
		value any
	}{
		{"engine", cfg.Engine},
		{"strict_properties", cfg.StrictProperties},
		{"schema_file", cfg.SchemaFile},
		{"kind", cfg.Kind},
		{"min_version", cfg.MinVersion},
		{"jobs", cfg.Jobs},
		{"format", cfg.Format},
		{"log_dir", cfg.LogDir},
		{"log_level", cfg.LogLevel},
		{"log_format", cfg.LogFormat},
		{"log_timestamps", cfg.LogTimestamps},
		{"log_caller", cfg.LogCaller},
	}

	entries := make([]configEntry, 0, len(values))
	for _, v := range values {
		source, ok := cws.Sources[v.key]
		if !ok {
			source = config.SourceDefault
		}
		entries = append(entries, configEntry{Key: v.key, Value: v.value, Source: source})
	}
	return entries
}

func writeConfigTable(w io.Writer, cws *config.ConfigWithSources, entries []configEntry) {
	if len(cws.Files) == 0 {
		fmt.Fprintln(w, "Config files: none")
	} else {
		fmt.Fprintln(w, "Config files:")
		for _, f := range cws.Files {
			fmt.Fprintf(w, "  %s\n", f)
		}
	}
	fmt.Fprintf(w, "Project root: %s\n\n", cws.Config.ProjectRoot)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Key", "Value", "Source"})
	for _, e := range entries {
		t.AppendRow(table.Row{e.Key, e.Value, e.Source})
	}
	t.Render()
}
