package model

// Kind is the discriminator carried in the "type" field of every project item.
type Kind string

const (
	KindFeature Kind = "feature"
	KindBug     Kind = "bug"
	KindTask    Kind = "task"
)

// Kinds returns every entity kind in declaration order.
func Kinds() []Kind {
	return []Kind{KindFeature, KindBug, KindTask}
}

// IsValid reports whether k is a known entity kind.
func (k Kind) IsValid() bool {
	switch k {
	case KindFeature, KindBug, KindTask:
		return true
	default:
		return false
	}
}

// ParseKind parses a kind tag. Plural forms ("features") are accepted.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "feature", "features":
		return KindFeature, true
	case "bug", "bugs":
		return KindBug, true
	case "task", "tasks":
		return KindTask, true
	}
	return "", false
}

// Priority is shared by all entity kinds.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Priorities returns the allowed priority values.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}
}

// Severity classifies bugs.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Severities returns the allowed severity values.
func Severities() []Severity {
	return []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}
}

// FeatureStatus is the lifecycle state of a feature.
type FeatureStatus string

const (
	FeatureBacklog    FeatureStatus = "backlog"
	FeaturePlanning   FeatureStatus = "planning"
	FeatureInProgress FeatureStatus = "in-progress"
	FeatureTesting    FeatureStatus = "testing"
	FeatureCompleted  FeatureStatus = "completed"
)

// FeatureStatuses returns the feature statuses in lifecycle order.
func FeatureStatuses() []FeatureStatus {
	return []FeatureStatus{FeatureBacklog, FeaturePlanning, FeatureInProgress, FeatureTesting, FeatureCompleted}
}

// BugStatus is the lifecycle state of a bug.
type BugStatus string

const (
	BugOpen       BugStatus = "open"
	BugInProgress BugStatus = "in-progress"
	BugResolved   BugStatus = "resolved"
	BugClosed     BugStatus = "closed"
	BugWontFix    BugStatus = "wont-fix"
)

// BugStatuses returns the bug statuses in lifecycle order.
func BugStatuses() []BugStatus {
	return []BugStatus{BugOpen, BugInProgress, BugResolved, BugClosed, BugWontFix}
}

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in-progress"
	TaskBlocked    TaskStatus = "blocked"
	TaskCompleted  TaskStatus = "completed"
)

// TaskStatuses returns the task statuses in lifecycle order.
func TaskStatuses() []TaskStatus {
	return []TaskStatus{TaskTodo, TaskInProgress, TaskBlocked, TaskCompleted}
}

// Statuses returns the status values of kind as plain strings, or nil for an
// unknown kind.
func Statuses(kind Kind) []string {
	switch kind {
	case KindFeature:
		return toStrings(FeatureStatuses())
	case KindBug:
		return toStrings(BugStatuses())
	case KindTask:
		return toStrings(TaskStatuses())
	}
	return nil
}

func toStrings[S ~string](values []S) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
