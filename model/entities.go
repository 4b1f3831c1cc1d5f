package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/semver/v3"
)

// BaseItem holds the fields shared by every project item. The ID never
// changes once an item has been created.
type BaseItem struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description" yaml:"description"`
	Priority    Priority  `json:"priority" yaml:"priority"`
	Assignee    string    `json:"assignee,omitempty" yaml:"assignee,omitempty"`
	Tags        []string  `json:"tags" yaml:"tags"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// ProjectItem is one of Feature, Bug or Task. The set is closed: only types
// in this package implement it.
type ProjectItem interface {
	// Kind returns the discriminator written to the "type" field.
	Kind() Kind
	// Base returns the shared fields.
	Base() BaseItem
	// StatusValue returns the kind-specific status as a plain string.
	StatusValue() string

	isProjectItem()
}

// Feature is a unit of user-facing functionality.
type Feature struct {
	BaseItem           `yaml:",inline"`
	Status             FeatureStatus `json:"status" yaml:"status"`
	Epic               string        `json:"epic,omitempty" yaml:"epic,omitempty"`
	StoryPoints        *StoryPoints  `json:"storyPoints,omitempty" yaml:"storyPoints,omitempty"`
	AcceptanceCriteria []string      `json:"acceptanceCriteria" yaml:"acceptanceCriteria"`
}

func (Feature) Kind() Kind            { return KindFeature }
func (f Feature) Base() BaseItem      { return f.BaseItem }
func (f Feature) StatusValue() string { return string(f.Status) }
func (Feature) isProjectItem()        {}

// MarshalJSON writes the feature with its "type" tag.
func (f Feature) MarshalJSON() ([]byte, error) {
	type alias Feature
	f.Tags = nonNil(f.Tags)
	f.AcceptanceCriteria = nonNil(f.AcceptanceCriteria)
	return json.Marshal(struct {
		Type Kind `json:"type"`
		alias
	}{KindFeature, alias(f)})
}

// Bug is a defect report.
type Bug struct {
	BaseItem         `yaml:",inline"`
	Status           BugStatus `json:"status" yaml:"status"`
	Severity         Severity  `json:"severity" yaml:"severity"`
	Reproducible     bool      `json:"reproducible" yaml:"reproducible"`
	StepsToReproduce []string  `json:"stepsToReproduce" yaml:"stepsToReproduce"`
	Environment      string    `json:"environment" yaml:"environment"`
	Resolution       string    `json:"resolution,omitempty" yaml:"resolution,omitempty"`
}

func (Bug) Kind() Kind            { return KindBug }
func (b Bug) Base() BaseItem      { return b.BaseItem }
func (b Bug) StatusValue() string { return string(b.Status) }
func (Bug) isProjectItem()        {}

// MarshalJSON writes the bug with its "type" tag.
func (b Bug) MarshalJSON() ([]byte, error) {
	type alias Bug
	b.Tags = nonNil(b.Tags)
	b.StepsToReproduce = nonNil(b.StepsToReproduce)
	return json.Marshal(struct {
		Type Kind `json:"type"`
		alias
	}{KindBug, alias(b)})
}

// Task is a unit of engineering work.
type Task struct {
	BaseItem       `yaml:",inline"`
	Status         TaskStatus `json:"status" yaml:"status"`
	DueDate        *time.Time `json:"dueDate,omitempty" yaml:"dueDate,omitempty"`
	EstimatedHours *Hours     `json:"estimatedHours,omitempty" yaml:"estimatedHours,omitempty"`
	ActualHours    *Hours     `json:"actualHours,omitempty" yaml:"actualHours,omitempty"`
	Subtasks       []string   `json:"subtasks" yaml:"subtasks"`
}

func (Task) Kind() Kind            { return KindTask }
func (t Task) Base() BaseItem      { return t.BaseItem }
func (t Task) StatusValue() string { return string(t.Status) }
func (Task) isProjectItem()        {}

// MarshalJSON writes the task with its "type" tag.
func (t Task) MarshalJSON() ([]byte, error) {
	type alias Task
	t.Tags = nonNil(t.Tags)
	t.Subtasks = nonNil(t.Subtasks)
	return json.Marshal(struct {
		Type Kind `json:"type"`
		alias
	}{KindTask, alias(t)})
}

// IsFeature reports whether item is a Feature.
func IsFeature(item ProjectItem) bool {
	_, ok := item.(Feature)
	return ok
}

// IsBug reports whether item is a Bug.
func IsBug(item ProjectItem) bool {
	_, ok := item.(Bug)
	return ok
}

// IsTask reports whether item is a Task.
func IsTask(item ProjectItem) bool {
	_, ok := item.(Task)
	return ok
}

// Metadata describes a project snapshot.
type Metadata struct {
	ProjectName string    `json:"projectName" yaml:"projectName"`
	Version     string    `json:"version" yaml:"version"`
	LastUpdated time.Time `json:"lastUpdated" yaml:"lastUpdated"`
}

// SemVer parses Version as a semantic version.
func (m Metadata) SemVer() (*semver.Version, error) {
	v, err := semver.StrictNewVersion(m.Version)
	if err != nil {
		return nil, fmt.Errorf("parse project version %q: %w", m.Version, err)
	}
	return v, nil
}

// ProjectData is the aggregate document holding every item of a project.
type ProjectData struct {
	Features []Feature `json:"features" yaml:"features"`
	Bugs     []Bug     `json:"bugs" yaml:"bugs"`
	Tasks    []Task    `json:"tasks" yaml:"tasks"`
	Metadata Metadata  `json:"metadata" yaml:"metadata"`
}

// MarshalJSON writes empty sequences instead of null.
func (p ProjectData) MarshalJSON() ([]byte, error) {
	type alias ProjectData
	p.Features = nonNil(p.Features)
	p.Bugs = nonNil(p.Bugs)
	p.Tasks = nonNil(p.Tasks)
	return json.Marshal(alias(p))
}

// Items returns features, then bugs, then tasks as ProjectItems.
func (p ProjectData) Items() []ProjectItem {
	items := make([]ProjectItem, 0, len(p.Features)+len(p.Bugs)+len(p.Tasks))
	for _, f := range p.Features {
		items = append(items, f)
	}
	for _, b := range p.Bugs {
		items = append(items, b)
	}
	for _, t := range p.Tasks {
		items = append(items, t)
	}
	return items
}

// FindItem returns the item with the given ID, or nil if none matches.
func (p ProjectData) FindItem(id string) ProjectItem {
	for _, item := range p.Items() {
		if item.Base().ID == id {
			return item
		}
	}
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
