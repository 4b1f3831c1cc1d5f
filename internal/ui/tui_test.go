package ui

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/vibeclasses/docstocode-types/model"
	"github.com/vibeclasses/docstocode-types/validate"
)

const boardProject = `
metadata:
  projectName: demo
  version: 1.2.0
  lastUpdated: "2024-03-01T09:30:00Z"
features:
  - type: feature
    id: FEAT-1
    title: Sign in
    description: ""
    status: planning
    priority: high
    tags: [auth]
    createdAt: "2024-03-01T09:30:00Z"
    updatedAt: "2024-03-01T09:30:00Z"
    acceptanceCriteria: [users can sign in]
bugs:
  - type: bug
    id: BUG-1
    title: Crash on start
    description: ""
    status: open
    priority: critical
    assignee: sam
    tags: []
    createdAt: "2024-03-01T09:30:00Z"
    updatedAt: "2024-03-01T09:30:00Z"
    severity: critical
    reproducible: true
    stepsToReproduce: [launch]
    environment: linux
tasks:
  - type: task
    id: TASK-1
    title: Write docs
    description: ""
    status: completed
    priority: low
    tags: []
    createdAt: "2024-03-01T09:30:00Z"
    updatedAt: "2024-03-01T09:30:00Z"
    subtasks: []
  - type: task
    id: TASK-2
    title: Review docs
    description: ""
    status: todo
    priority: low
    tags: []
    createdAt: "2024-03-01T09:30:00Z"
    updatedAt: "2024-03-01T09:30:00Z"
    subtasks: []
`

func writeProject(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "project.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func loadedModel(t *testing.T, content string) *boardModel {
	t.Helper()
	m := newBoardModel(writeProject(t, content), validate.Default())
	m.Init()
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBuildBoardData(t *testing.T) {
	m := loadedModel(t, boardProject)
	if m.loadErr != nil || m.errors != nil {
		t.Fatalf("unexpected failure: load=%v errors=%v", m.loadErr, m.errors)
	}

	counts := m.data.counts
	if counts[model.KindFeature]["planning"] != 1 || counts[model.KindFeature]["backlog"] != 0 {
		t.Errorf("feature counts: %v", counts[model.KindFeature])
	}
	if counts[model.KindBug]["open"] != 1 {
		t.Errorf("bug counts: %v", counts[model.KindBug])
	}
	if counts[model.KindTask]["completed"] != 1 || counts[model.KindTask]["todo"] != 1 {
		t.Errorf("task counts: %v", counts[model.KindTask])
	}
	if len(counts[model.KindTask]) != len(model.TaskStatuses()) {
		t.Errorf("expected every task status to be counted, got %v", counts[model.KindTask])
	}
	if len(m.data.items) != 4 {
		t.Errorf("expected 4 items, got %d", len(m.data.items))
	}
}

func TestBoardFilterAndCursor(t *testing.T) {
	m := loadedModel(t, boardProject)

	m.Update(key("3"))
	if got := len(m.visible()); got != 2 {
		t.Fatalf("task filter: expected 2 items, got %d", got)
	}

	m.Update(key("down"))
	m.Update(key("down"))
	if m.cursor != 1 {
		t.Errorf("cursor should stop at the last item, got %d", m.cursor)
	}
	view := m.View()
	if !strings.Contains(view, "todo -> in-progress") {
		t.Errorf("expected transitions for TASK-2 in view:\n%s", view)
	}

	m.Update(key("up"))
	if !strings.Contains(m.View(), "(terminal)") {
		t.Error("expected TASK-1 to be shown as terminal")
	}

	m.Update(key("2"))
	if m.cursor != 0 || len(m.visible()) != 1 {
		t.Errorf("bug filter: cursor=%d items=%d", m.cursor, len(m.visible()))
	}
	if view := m.View(); !strings.Contains(view, "BUG-1") || strings.Contains(view, "FEAT-1") {
		t.Errorf("bug filter view:\n%s", view)
	}

	m.Update(key("0"))
	if len(m.visible()) != 4 {
		t.Errorf("expected all items after reset, got %d", len(m.visible()))
	}
}

func TestBoardView(t *testing.T) {
	m := loadedModel(t, boardProject)
	view := m.View()
	for _, want := range []string{"demo", "v1.2.0", "Overview", "planning: 1", "Crash on start", "@sam", "planning -> in-progress, backlog"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	m.Update(key("h"))
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Error("expected help screen")
	}
}

func TestBoardInvalidProject(t *testing.T) {
	m := loadedModel(t, strings.Replace(boardProject, "status: planning", "status: shipped", 1))
	if m.data != nil || len(m.errors) == 0 {
		t.Fatalf("expected validation errors, got data=%v errors=%v", m.data, m.errors)
	}
	if view := m.View(); !strings.Contains(view, "Project data is invalid") || !strings.Contains(view, "status") {
		t.Errorf("view:\n%s", view)
	}
}

func TestBoardReload(t *testing.T) {
	m := loadedModel(t, boardProject)
	if err := os.WriteFile(m.path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	m.Update(fileChangedMsg{})
	if m.loadErr == nil {
		t.Fatal("expected load error after the file became unreadable")
	}
	if !strings.Contains(m.View(), "Error loading project file") {
		t.Error("expected load error in view")
	}

	if err := os.WriteFile(m.path, []byte(boardProject), 0644); err != nil {
		t.Fatal(err)
	}
	m.Update(key("r"))
	if m.loadErr != nil || m.data == nil {
		t.Errorf("expected successful reload, got %v", m.loadErr)
	}
}

func TestWaitForChangeFiltersByName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.yaml")
	events := make(chan fsnotify.Event, 3)
	events <- fsnotify.Event{Name: filepath.Join(filepath.Dir(path), "other.yaml"), Op: fsnotify.Write}
	events <- fsnotify.Event{Name: path, Op: fsnotify.Chmod}
	events <- fsnotify.Event{Name: path, Op: fsnotify.Create}

	msg := waitForChange(path, events, nil)()
	if _, ok := msg.(fileChangedMsg); !ok {
		t.Fatalf("expected fileChangedMsg, got %#v", msg)
	}
	if len(events) != 0 {
		t.Errorf("expected unrelated events to be skipped, %d left", len(events))
	}
}

func TestWatchFileSurvivesReplace(t *testing.T) {
	path := writeProject(t, boardProject)
	w, err := watchFile(path)
	if err != nil {
		t.Skipf("fsnotify unavailable: %v", err)
	}
	defer w.Close()

	tmp := path + ".tmp"
	for i := 0; i < 2; i++ {
		if err := os.WriteFile(tmp, []byte(boardProject), 0644); err != nil {
			t.Fatal(err)
		}
		if err := os.Rename(tmp, path); err != nil {
			t.Fatal(err)
		}

		done := make(chan tea.Msg, 1)
		go func() { done <- waitForChange(path, w.Events, w.Errors)() }()
		select {
		case msg := <-done:
			if _, ok := msg.(fileChangedMsg); !ok {
				t.Fatalf("save %d: expected fileChangedMsg, got %#v", i, msg)
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("save %d: no change event", i)
		}
	}
}

func TestQuit(t *testing.T) {
	m := loadedModel(t, boardProject)
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestIsTTY(t *testing.T) {
	if IsTTY(&bytes.Buffer{}) {
		t.Error("buffer is not a TTY")
	}
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if IsTTY(f) {
		t.Error("regular file is not a TTY")
	}
}
