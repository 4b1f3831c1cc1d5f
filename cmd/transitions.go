package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/vibeclasses/docstocode-types/model"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

type transitionAnswer struct {
	Kind    model.Kind `json:"kind"`
	From    string     `json:"from"`
	To      string     `json:"to"`
	Allowed bool       `json:"allowed"`
	Next    []string   `json:"next"`
}

func newTransitionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "transition <kind> <from> <to>",
		Short: "Check whether a status change is allowed",
		Long: `Check a single status transition. The command exits with status 1 when the
transition is not allowed.`,
		Example: `  pmtypes transition feature planning in-progress
  pmtypes transition bug closed open`,
		Args:      cobra.ExactArgs(3),
		ValidArgs: kindNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKindArg(args[0])
			if err != nil {
				return err
			}
			from, to := args[1], args[2]
			for _, status := range []string{from, to} {
				if !slices.Contains(model.Statuses(kind), status) {
					return fmt.Errorf("unknown %s status %q (want one of %s)", kind, status, strings.Join(model.Statuses(kind), ", "))
				}
			}

			answer := transitionAnswer{
				Kind:    kind,
				From:    from,
				To:      to,
				Allowed: model.CanTransition(kind, from, to),
				Next:    model.NextStatuses(kind, from),
			}
			if err := writeTransitionAnswer(cmd.OutOrStdout(), appFrom(cmd).cfg.Config.Format, answer); err != nil {
				return err
			}
			if !answer.Allowed {
				return &ExitError{Code: 1}
			}
			return nil
		},
	}
}

func writeTransitionAnswer(w io.Writer, format string, a transitionAnswer) error {
	if format == "json" {
		return json.NewEncoder(w).Encode(a)
	}
	if a.Allowed {
		fmt.Fprintf(w, "%s %s: %s -> %s is allowed\n", okStyle.Render("✓"), a.Kind, a.From, a.To)
		return nil
	}
	fmt.Fprintf(w, "%s %s: %s -> %s is not allowed\n", failStyle.Render("✗"), a.Kind, a.From, a.To)
	if len(a.Next) == 0 {
		fmt.Fprintf(w, "  %s is terminal\n", a.From)
	} else {
		fmt.Fprintf(w, "  from %s: %s\n", a.From, strings.Join(a.Next, ", "))
	}
	return nil
}

func newTransitionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "transitions [kind]",
		Short:     "Print the status transition tables",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: kindNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := model.Kinds()
			if len(args) == 1 {
				kind, err := parseKindArg(args[0])
				if err != nil {
					return err
				}
				kinds = []model.Kind{kind}
			}

			if appFrom(cmd).cfg.Config.Format == "json" {
				return writeTransitionsJSON(cmd.OutOrStdout(), kinds)
			}
			writeTransitionsTable(cmd.OutOrStdout(), kinds)
			return nil
		},
	}
}

func writeTransitionsJSON(w io.Writer, kinds []model.Kind) error {
	tables := make(map[model.Kind]map[string][]string, len(kinds))
	for _, kind := range kinds {
		tables[kind] = make(map[string][]string)
		for _, status := range model.Statuses(kind) {
			tables[kind][status] = model.NextStatuses(kind, status)
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(tables)
}

func writeTransitionsTable(w io.Writer, kinds []model.Kind) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Kind", "Status", "Next", "Terminal"})
	for i, kind := range kinds {
		if i > 0 {
			t.AppendSeparator()
		}
		for _, status := range model.Statuses(kind) {
			next := model.NextStatuses(kind, status)
			terminal := ""
			if len(next) == 0 {
				terminal = "yes"
			}
			t.AppendRow(table.Row{kind, status, strings.Join(next, ", "), terminal})
		}
	}
	t.Render()
}

func parseKindArg(s string) (model.Kind, error) {
	kind, ok := model.ParseKind(s)
	if !ok {
		return "", fmt.Errorf("unknown kind %q (want %s)", s, strings.Join(kindNames(), ", "))
	}
	return kind, nil
}

func kindNames() []string {
	var names []string
	for _, kind := range model.Kinds() {
		names = append(names, string(kind))
	}
	return names
}
