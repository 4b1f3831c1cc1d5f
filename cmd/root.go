// Package cmd implements the CLI command structure for pmtypes.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vibeclasses/docstocode-types/internal/config"
	"github.com/vibeclasses/docstocode-types/internal/logging"
	"github.com/vibeclasses/docstocode-types/validate"
)

// Version is set via ldflags at build time.
var Version = "dev"

// ExitError ends the process with Code. The command has already reported
// the failure, so nothing more is printed.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// appKey stores the loaded application state in the command context.
type appKey struct{}

type app struct {
	cfg    *config.ConfigWithSources
	logger *log.Logger
}

// Run executes the pmtypes CLI.
func Run(ctx context.Context, args []string) error {
	root := NewRootCmd()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pmtypes",
		Short: "Validate project management data",
		Long: `pmtypes checks features, bugs and tasks against the project entity schemas,
answers status transition questions and exports the schemas as JSON Schema.`,
		Version:           Version,
		PersistentPreRunE: loadApp,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}
	root.SetVersionTemplate("pmtypes version {{.Version}}\n")

	config.RegisterFlags(root.PersistentFlags())
	_ = root.RegisterFlagCompletionFunc("kind", fixedCompletions("project", "item", "feature", "bug", "task"))
	_ = root.RegisterFlagCompletionFunc("engine", fixedCompletions(string(validate.EngineBuiltin), string(validate.EngineJSONSchema)))
	_ = root.RegisterFlagCompletionFunc("format", fixedCompletions("text", "json"))

	root.AddCommand(
		newValidateCommand(),
		newTransitionCommand(),
		newTransitionsCommand(),
		newSchemaCommand(),
		newBoardCommand(),
		newConfigCommand(),
		newLogsCommand(),
		newVersionCommand(),
	)
	return root
}

func fixedCompletions(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}

func loadApp(cmd *cobra.Command, _ []string) error {
	switch cmd.Name() {
	case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return nil
	}

	cws, err := config.LoadWithSources(cmd.Flags())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := cws.Config

	opts, err := logging.ParseConsoleOptions(cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)
	if err != nil {
		return err
	}
	logger := logging.NewConsole(cmd.ErrOrStderr(), opts)
	if file := cws.GetConfigFile(); file != "" {
		logger.Debug("loaded config", "file", file)
	}

	cmd.SetContext(context.WithValue(cmd.Context(), appKey{}, &app{cfg: cws, logger: logger}))
	return nil
}

// appFrom returns the state stored by loadApp. Commands executed without
// the root (as in tests) get defaults.
func appFrom(cmd *cobra.Command) *app {
	if a, ok := cmd.Context().Value(appKey{}).(*app); ok {
		return a
	}
	cws, err := config.LoadWithSources(nil)
	if err != nil {
		cws = &config.ConfigWithSources{Config: &config.Config{}, Sources: map[string]config.ConfigSource{}}
	}
	return &app{cfg: cws, logger: log.New(io.Discard)}
}

func newValidator(a *app) (*validate.Validator, error) {
	engine, err := validate.ParseEngine(a.cfg.Config.Engine)
	if err != nil {
		return nil, err
	}
	return validate.New(
		validate.WithEngine(engine),
		validate.WithStrictProperties(a.cfg.Config.StrictProperties),
		validate.WithLogger(a.logger),
	)
}

// ExitCode maps an error returned by Run to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}
