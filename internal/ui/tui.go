// Package ui provides the interactive project board.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
	"golang.org/x/term"

	"github.com/vibeclasses/docstocode-types/internal/loader"
	"github.com/vibeclasses/docstocode-types/model"
	"github.com/vibeclasses/docstocode-types/validate"
)

// BoardOption configures the board.
type BoardOption func(*boardConfig)

type boardConfig struct {
	validator    *validate.Validator
	pollInterval time.Duration
}

// WithValidator sets the validator used on every reload.
func WithValidator(v *validate.Validator) BoardOption {
	return func(c *boardConfig) {
		if v != nil {
			c.validator = v
		}
	}
}

// WithPollInterval sets the reload interval used when file watching is
// unavailable.
func WithPollInterval(d time.Duration) BoardOption {
	return func(c *boardConfig) {
		if d > 0 {
			c.pollInterval = d
		}
	}
}

// RunBoard shows the project file at path and reloads it whenever it changes.
func RunBoard(ctx context.Context, path string, opts ...BoardOption) error {
	c := &boardConfig{
		validator:    validate.Default(),
		pollInterval: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}

	if !IsTTY(os.Stdout) {
		return fmt.Errorf("board requires a TTY")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	m := newBoardModel(abs, c.validator)
	watcher, err := watchFile(abs)
	if err == nil {
		defer watcher.Close()
		m.events = watcher.Events
		m.watchErrs = watcher.Errors
	} else {
		m.pollInterval = c.pollInterval
	}

	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = program.Run()
	return err
}

// watchFile watches the directory holding path, so editors that replace the
// file on save still trigger reloads.
func watchFile(path string) (*fsnotify.Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, err
	}
	return w, nil
}

type boardModel struct {
	path         string
	validator    *validate.Validator
	events       <-chan fsnotify.Event
	watchErrs    <-chan error
	pollInterval time.Duration

	loadErr    error
	errors     []string
	data       *boardData
	filter     model.Kind
	cursor     int
	showHelp   bool
	lastReload time.Time
	watchErr   error
}

type boardData struct {
	project model.ProjectData
	counts  map[model.Kind]map[string]int
	items   []model.ProjectItem
}

type tickMsg time.Time

type fileChangedMsg struct{}

type watchErrMsg struct{ err error }

func newBoardModel(path string, v *validate.Validator) *boardModel {
	return &boardModel{path: path, validator: v}
}

func (m *boardModel) Init() tea.Cmd {
	m.refresh()
	return m.waitCmd()
}

func (m *boardModel) waitCmd() tea.Cmd {
	if m.events != nil {
		return waitForChange(m.path, m.events, m.watchErrs)
	}
	if m.pollInterval > 0 {
		return tickCmd(m.pollInterval)
	}
	return nil
}

func (m *boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r", "f5":
			m.refresh()
		case "h", "?":
			m.showHelp = !m.showHelp
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.visible())-1 {
				m.cursor++
			}
		case "1":
			m.setFilter(model.KindFeature)
		case "2":
			m.setFilter(model.KindBug)
		case "3":
			m.setFilter(model.KindTask)
		case "0":
			m.setFilter("")
		}
		return m, nil
	case tickMsg:
		m.refresh()
		return m, tickCmd(m.pollInterval)
	case fileChangedMsg:
		m.refresh()
		return m, m.waitCmd()
	case watchErrMsg:
		m.watchErr = msg.err
		return m, m.waitCmd()
	}
	return m, nil
}

func (m *boardModel) setFilter(kind model.Kind) {
	m.filter = kind
	m.cursor = 0
}

func (m *boardModel) refresh() {
	m.lastReload = time.Now()
	raw, err := loader.Load(m.path)
	if err != nil {
		m.loadErr = err
		m.errors = nil
		m.data = nil
		return
	}
	m.loadErr = nil

	res := m.validator.TryValidateProjectData(raw)
	if !res.Valid {
		m.errors = res.Errors
		m.data = nil
		return
	}
	m.errors = nil
	m.data = buildBoardData(*res.Data)
	if n := len(m.visible()); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

// visible returns the items shown under the current filter.
func (m *boardModel) visible() []model.ProjectItem {
	if m.data == nil {
		return nil
	}
	if m.filter == "" {
		return m.data.items
	}
	var out []model.ProjectItem
	for _, item := range m.data.items {
		if item.Kind() == m.filter {
			out = append(out, item)
		}
	}
	return out
}

func buildBoardData(project model.ProjectData) *boardData {
	data := &boardData{
		project: project,
		counts:  make(map[model.Kind]map[string]int),
		items:   project.Items(),
	}
	for _, kind := range model.Kinds() {
		counts := make(map[string]int)
		for _, status := range model.Statuses(kind) {
			counts[status] = 0
		}
		data.counts[kind] = counts
	}
	for _, item := range data.items {
		data.counts[item.Kind()][item.StatusValue()]++
	}
	return data
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func waitForChange(path string, events <-chan fsnotify.Event, errs <-chan error) tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-events:
				if !ok {
					return nil
				}
				if filepath.Clean(ev.Name) != path {
					continue
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
					return fileChangedMsg{}
				}
			case err, ok := <-errs:
				if !ok {
					return nil
				}
				return watchErrMsg{err: err}
			}
		}
	}
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headerStyle  = lipgloss.NewStyle().Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	terminalMark = dimStyle.Render("(terminal)")
)

func (m *boardModel) View() string {
	var b strings.Builder
	writeTitle(&b, m.path)

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b, m)
		return b.String()
	}

	switch {
	case m.loadErr != nil:
		b.WriteString(errorStyle.Render("Error loading project file:") + "\n")
		b.WriteString("  " + m.loadErr.Error() + "\n\n")
	case m.errors != nil:
		writeErrors(&b, m.errors)
	case m.data == nil:
		b.WriteString("Loading...\n\n")
	default:
		writeMetadata(&b, m.data.project.Metadata)
		writeOverview(&b, m.data)
		writeItems(&b, m.visible(), m.cursor, m.filter)
		writeSelected(&b, m.visible(), m.cursor)
	}

	writeFooter(&b, m)
	return b.String()
}

func writeTitle(b *strings.Builder, path string) {
	b.WriteString(titleStyle.Render("Project Board") + "  " + dimStyle.Render(path) + "\n\n")
}

func writeMetadata(b *strings.Builder, meta model.Metadata) {
	b.WriteString(fmt.Sprintf("%s  v%s  updated %s\n\n",
		headerStyle.Render(meta.ProjectName), meta.Version, meta.LastUpdated.Format(time.RFC3339)))
}

func writeErrors(b *strings.Builder, errs []string) {
	b.WriteString(errorStyle.Render(fmt.Sprintf("Project data is invalid (%d errors)", len(errs))) + "\n\n")
	for i, e := range errs {
		if i == 20 {
			b.WriteString(fmt.Sprintf("  ... and %d more\n", len(errs)-i))
			break
		}
		b.WriteString("  - " + e + "\n")
	}
	b.WriteString("\n")
}

func writeOverview(b *strings.Builder, data *boardData) {
	b.WriteString(headerStyle.Render("Overview") + "\n\n")
	for _, kind := range model.Kinds() {
		var parts []string
		for _, status := range model.Statuses(kind) {
			parts = append(parts, fmt.Sprintf("%s: %d", status, data.counts[kind][status]))
		}
		b.WriteString(fmt.Sprintf("  %-8s %s\n", kindLabel(kind), strings.Join(parts, "  ")))
	}
	b.WriteString("\n")
}

func writeItems(b *strings.Builder, items []model.ProjectItem, cursor int, filter model.Kind) {
	label := "All Items"
	if filter != "" {
		label = kindLabel(filter)
	}
	b.WriteString(headerStyle.Render(label) + "\n\n")
	if len(items) == 0 {
		b.WriteString("  No items.\n\n")
		return
	}
	for i, item := range items {
		line := formatItem(item)
		if i == cursor {
			line = cursorStyle.Render(">") + line[1:]
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")
}

func writeSelected(b *strings.Builder, items []model.ProjectItem, cursor int) {
	if cursor < 0 || cursor >= len(items) {
		return
	}
	item := items[cursor]
	next := model.NextStatuses(item.Kind(), item.StatusValue())
	b.WriteString(headerStyle.Render("Transitions") + "\n\n")
	if len(next) == 0 {
		b.WriteString(fmt.Sprintf("  %s %s\n\n", item.StatusValue(), terminalMark))
		return
	}
	b.WriteString(fmt.Sprintf("  %s -> %s\n\n", item.StatusValue(), strings.Join(next, ", ")))
}

func writeHelp(b *strings.Builder) {
	b.WriteString(headerStyle.Render("Keyboard Shortcuts") + "\n\n")
	b.WriteString("  q, ctrl+c    Quit\n")
	b.WriteString("  r, F5        Reload file\n")
	b.WriteString("  up/k down/j  Move selection\n")
	b.WriteString("  h, ?         Toggle this help screen\n")
	b.WriteString("  1            Show features\n")
	b.WriteString("  2            Show bugs\n")
	b.WriteString("  3            Show tasks\n")
	b.WriteString("  0            Show all items\n\n")
}

func writeFooter(b *strings.Builder, m *boardModel) {
	mode := "watching for changes"
	if m.events == nil && m.pollInterval > 0 {
		mode = fmt.Sprintf("refreshing every %s", m.pollInterval)
	}
	b.WriteString(dimStyle.Render(fmt.Sprintf("Press h for help | q to quit | %s | reloaded %s",
		mode, m.lastReload.Format("15:04:05"))) + "\n")
	if m.watchErr != nil {
		b.WriteString(errorStyle.Render("watch error: "+m.watchErr.Error()) + "\n")
	}
}

func formatItem(item model.ProjectItem) string {
	base := item.Base()
	line := fmt.Sprintf("  [%s] %-12s %-11s %-8s %s", kindIcon(item.Kind()), base.ID, item.StatusValue(), base.Priority, base.Title)
	if base.Assignee != "" {
		line += dimStyle.Render(" @" + base.Assignee)
	}
	return line
}

func kindIcon(kind model.Kind) string {
	switch kind {
	case model.KindFeature:
		return "F"
	case model.KindBug:
		return "B"
	case model.KindTask:
		return "T"
	}
	return "?"
}

func kindLabel(kind model.Kind) string {
	switch kind {
	case model.KindFeature:
		return "Features"
	case model.KindBug:
		return "Bugs"
	case model.KindTask:
		return "Tasks"
	}
	return string(kind)
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
