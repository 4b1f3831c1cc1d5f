package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/cobra"

	"github.com/vibeclasses/docstocode-types/internal/config"
	"github.com/vibeclasses/docstocode-types/internal/loader"
	"github.com/vibeclasses/docstocode-types/internal/logging"
	"github.com/vibeclasses/docstocode-types/internal/parallel"
	"github.com/vibeclasses/docstocode-types/schema"
	"github.com/vibeclasses/docstocode-types/validate"
)

// fileReport is the outcome of validating one document.
type fileReport struct {
	File     string        `json:"file"`
	Kind     string        `json:"kind"`
	Valid    bool          `json:"valid"`
	Errors   []string      `json:"errors"`
	Duration time.Duration `json:"-"`
}

type validateReport struct {
	Valid   bool         `json:"valid"`
	RunID   string       `json:"run_id,omitempty"`
	Checked int          `json:"checked"`
	Invalid int          `json:"invalid"`
	Files   []fileReport `json:"files"`
}

// checker validates documents of one configured kind.
type checker struct {
	validator  *validate.Validator
	extra      *schema.Compiled
	minVersion *semver.Version
	kind       string
	stdin      io.Reader
}

func newValidateCommand() *cobra.Command {
	var failFast bool

	cmd := &cobra.Command{
		Use:   "validate [files...]",
		Short: "Validate project documents",
		Long: `Validate JSON or YAML documents against the entity schemas.

Directories are searched for .json, .yaml and .yml files. Use "-" to read
standard input. The --kind flag selects what each document holds: a whole
project (default), a single item dispatched on its "type" field, or a
feature, bug or task.`,
		Example: `  pmtypes validate project.yaml
  pmtypes validate --kind item items/
  cat bug.json | pmtypes validate --kind bug -`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args, failFast)
		},
	}
	cmd.Flags().BoolVar(&failFast, "fail-fast", false, "Stop at the first file that cannot be read")
	return cmd
}

func runValidate(cmd *cobra.Command, args []string, failFast bool) error {
	a := appFrom(cmd)
	cfg := a.cfg.Config

	c, err := newChecker(a, cmd.InOrStdin())
	if err != nil {
		return err
	}

	paths, err := loader.Expand(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no documents found in %v", args)
	}

	var runLog *logging.RunLogger
	if cfg.LogDir != "" {
		runLog, err = logging.NewRunLogger(cfg.LogDir, cfg.ProjectRoot)
		if err != nil {
			return fmt.Errorf("creating run log: %w", err)
		}
		defer runLog.Close()
		a.logger.Debug("writing run log", "path", runLog.LogPath)
	}

	report := c.checkAll(cmd.Context(), paths, cfg.Jobs, failFast)
	for _, f := range report.Files {
		a.logger.Debug("checked", "file", f.File, "kind", f.Kind, "valid", f.Valid, "errors", len(f.Errors), "duration", f.Duration)
		if runLog == nil {
			continue
		}
		rec := logging.Record{File: f.File, Kind: f.Kind, Valid: f.Valid, Errors: f.Errors}
		if err := runLog.Write(rec); err != nil {
			return fmt.Errorf("writing run log: %w", err)
		}
	}
	if runLog != nil {
		report.RunID = runLog.RunID
	}

	if err := writeValidateReport(cmd.OutOrStdout(), cfg.Format, report); err != nil {
		return err
	}
	if !report.Valid {
		return &ExitError{Code: 1}
	}
	return nil
}

func newChecker(a *app, stdin io.Reader) (*checker, error) {
	cfg := a.cfg.Config
	v, err := newValidator(a)
	if err != nil {
		return nil, err
	}

	c := &checker{validator: v, kind: cfg.Kind, stdin: stdin}
	if c.kind == "" {
		c.kind = config.DefaultKind
	}
	if cfg.SchemaFile != "" {
		c.extra, err = schema.CompileFile(cfg.SchemaFile)
		if err != nil {
			return nil, err
		}
	}
	c.minVersion, err = cfg.MinSemVer()
	if err != nil {
		return nil, fmt.Errorf("min_version: %w", err)
	}
	return c, nil
}

func (c *checker) checkAll(ctx context.Context, paths []string, jobs int, failFast bool) validateReport {
	pool := parallel.NewWorkerPool[fileReport](ctx, jobs, failFast)
	for _, path := range paths {
		pool.Submit(path, func(ctx context.Context) (fileReport, error) {
			return c.checkFile(path)
		})
	}
	results, _ := pool.Wait()

	report := validateReport{Valid: true, Files: make([]fileReport, 0, len(results))}
	for _, r := range results {
		f := r.Value
		if r.Error != nil {
			f = fileReport{File: r.ID, Kind: c.kind, Errors: []string{r.Error.Error()}}
		}
		f.Duration = r.Duration
		report.Files = append(report.Files, f)
		if !f.Valid {
			report.Invalid++
			report.Valid = false
		}
	}
	report.Checked = len(report.Files)
	if report.Checked < len(paths) {
		report.Valid = false
	}
	return report
}

// checkFile loads and validates one document. Only read and decode
// failures are returned as errors.
func (c *checker) checkFile(path string) (fileReport, error) {
	var data any
	var err error
	if path == loader.Stdin {
		data, err = loader.Read(c.stdin, loader.FormatAuto)
	} else {
		data, err = loader.Load(path)
	}
	if err != nil {
		return fileReport{}, err
	}

	kind, errs := c.check(data)
	return fileReport{File: path, Kind: kind, Valid: len(errs) == 0, Errors: errs}, nil
}

// check validates data as the configured kind and returns the resolved
// kind with every violation found.
func (c *checker) check(data any) (string, []string) {
	kind := c.kind
	var errs []string

	switch kind {
	case "project":
		res := c.validator.TryValidateProjectData(data)
		errs = res.Errors
		if res.Valid && c.minVersion != nil {
			errs = append(errs, checkMinVersion(res.Data.Metadata.Version, c.minVersion)...)
		}
	case "item":
		res := c.validator.TryValidateProjectItem(data)
		errs = res.Errors
		if res.Valid {
			kind = string((*res.Data).Kind())
		}
	case "feature":
		errs = c.validator.TryValidateFeature(data).Errors
	case "bug":
		errs = c.validator.TryValidateBug(data).Errors
	case "task":
		errs = c.validator.TryValidateTask(data).Errors
	default:
		errs = []string{fmt.Sprintf("unknown kind %q", kind)}
	}

	if c.extra != nil {
		errs = append(errs, c.extra.Validate(data).Errors...)
	}
	if errs == nil {
		errs = []string{}
	}
	return kind, errs
}

func checkMinVersion(version string, minimum *semver.Version) []string {
	v, err := semver.NewVersion(version)
	if err != nil {
		return []string{fmt.Sprintf("metadata.version: %v", err)}
	}
	if v.LessThan(minimum) {
		return []string{fmt.Sprintf("metadata.version: %s is older than the minimum %s", v, minimum)}
	}
	return nil
}

func writeValidateReport(w io.Writer, format string, report validateReport) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	for _, f := range report.Files {
		if f.Valid {
			fmt.Fprintf(w, "%s %s %s\n", okStyle.Render("✓"), f.File, dimStyle.Render("("+f.Kind+")"))
			continue
		}
		fmt.Fprintf(w, "%s %s %s\n", failStyle.Render("✗"), f.File, dimStyle.Render("("+f.Kind+")"))
		for _, e := range f.Errors {
			fmt.Fprintf(w, "    %s\n", e)
		}
	}

	summary := fmt.Sprintf("%d checked, %d invalid", report.Checked, report.Invalid)
	if report.Valid {
		fmt.Fprintln(w, okStyle.Render(summary))
	} else {
		fmt.Fprintln(w, failStyle.Render(summary))
	}
	if report.RunID != "" {
		fmt.Fprintln(w, dimStyle.Render("run "+report.RunID))
	}
	return nil
}
