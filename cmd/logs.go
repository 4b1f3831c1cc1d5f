package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vibeclasses/docstocode-types/internal/logging"
)

func newLogsCommand() *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "logs [run-id]",
		Short: "Show a validation run log",
		Long: `Show the records of a validation run written under log_dir. Without a run id
the latest run of the current project is shown.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := appFrom(cmd).cfg.Config
			if cfg.LogDir == "" {
				return fmt.Errorf("log_dir is not configured")
			}
			logDir, err := logging.FindLogDir(cfg.LogDir, cfg.ProjectRoot)
			if err != nil {
				return fmt.Errorf("finding log directory: %w", err)
			}

			w := cmd.OutOrStdout()
			if list {
				runs, err := logging.FindLogRuns(logDir)
				if err != nil {
					return err
				}
				for _, run := range runs {
					fmt.Fprintf(w, "%s  %s\n", run.ModTime.Format("2006-01-02 15:04:05"), run.RunID)
				}
				return nil
			}

			var logPath string
			if len(args) == 1 {
				if _, err := uuid.Parse(args[0]); err != nil {
					return fmt.Errorf("invalid run id %q: %w", args[0], err)
				}
				logPath = filepath.Join(logDir, args[0]+".jsonl")
			} else {
				logPath, err = logging.FindLatestLog(logDir)
				if err != nil {
					return fmt.Errorf("finding latest log: %w", err)
				}
				if logPath == "" {
					fmt.Fprintln(w, "No log files found.")
					return nil
				}
			}

			records, err := logging.ReadRecords(logPath)
			if err != nil {
				return err
			}
			if cfg.Format == "json" {
				enc := json.NewEncoder(w)
				for _, rec := range records {
					if err := enc.Encode(rec); err != nil {
						return err
					}
				}
				return nil
			}

			fmt.Fprintf(w, "Run: %s\n\n", logPath)
			for _, rec := range records {
				mark := okStyle.Render("✓")
				if !rec.Valid {
					mark = failStyle.Render("✗")
				}
				fmt.Fprintf(w, "%s %s %s %s\n", mark, rec.Time.Format("15:04:05"), rec.File, dimStyle.Render("("+rec.Kind+")"))
				for _, e := range rec.Errors {
					fmt.Fprintf(w, "    %s\n", e)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&list, "list", "l", false, "List runs instead of showing one")
	return cmd
}
