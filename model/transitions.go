package model

import "slices"

// Transition tables map each status to the statuses reachable from it in one
// step. An empty entry marks a terminal status. The tables are never
// modified after package initialization.
var (
	featureTransitions = map[FeatureStatus][]FeatureStatus{
		FeatureBacklog:    {FeaturePlanning},
		FeaturePlanning:   {FeatureInProgress, FeatureBacklog},
		FeatureInProgress: {FeatureTesting, FeaturePlanning},
		FeatureTesting:    {FeatureCompleted, FeatureInProgress},
		FeatureCompleted:  {},
	}

	bugTransitions = map[BugStatus][]BugStatus{
		BugOpen:       {BugInProgress, BugWontFix},
		BugInProgress: {BugResolved, BugOpen},
		BugResolved:   {BugClosed, BugOpen},
		BugClosed:     {BugOpen},
		BugWontFix:    {BugOpen},
	}

	taskTransitions = map[TaskStatus][]TaskStatus{
		TaskTodo:       {TaskInProgress},
		TaskInProgress: {TaskBlocked, TaskCompleted, TaskTodo},
		TaskBlocked:    {TaskInProgress, TaskTodo},
		TaskCompleted:  {},
	}
)

// CanTransitionFeatureStatus reports whether a feature may move from one
// status to another in a single step.
func CanTransitionFeatureStatus(from, to FeatureStatus) bool {
	return slices.Contains(featureTransitions[from], to)
}

// CanTransitionBugStatus reports whether a bug may move from one status to
// another in a single step.
func CanTransitionBugStatus(from, to BugStatus) bool {
	return slices.Contains(bugTransitions[from], to)
}

// CanTransitionTaskStatus reports whether a task may move from one status to
// another in a single step.
func CanTransitionTaskStatus(from, to TaskStatus) bool {
	return slices.Contains(taskTransitions[from], to)
}

// CanTransitionStatus checks newStatus against the table of item's kind. It
// returns false for a nil item.
func CanTransitionStatus(item ProjectItem, newStatus string) bool {
	switch it := item.(type) {
	case Feature:
		return CanTransitionFeatureStatus(it.Status, FeatureStatus(newStatus))
	case Bug:
		return CanTransitionBugStatus(it.Status, BugStatus(newStatus))
	case Task:
		return CanTransitionTaskStatus(it.Status, TaskStatus(newStatus))
	default:
		return false
	}
}

// CanTransition is the untyped form of the per-kind checks. Unknown kinds
// are never allowed to transition.
func CanTransition(kind Kind, from, to string) bool {
	switch kind {
	case KindFeature:
		return CanTransitionFeatureStatus(FeatureStatus(from), FeatureStatus(to))
	case KindBug:
		return CanTransitionBugStatus(BugStatus(from), BugStatus(to))
	case KindTask:
		return CanTransitionTaskStatus(TaskStatus(from), TaskStatus(to))
	default:
		return false
	}
}

// NextStatuses returns a copy of the statuses reachable from status for the
// given kind. It returns nil for an unknown kind or status and an empty
// slice for a terminal status.
func NextStatuses(kind Kind, status string) []string {
	switch kind {
	case KindFeature:
		next, ok := featureTransitions[FeatureStatus(status)]
		if !ok {
			return nil
		}
		return toStrings(next)
	case KindBug:
		next, ok := bugTransitions[BugStatus(status)]
		if !ok {
			return nil
		}
		return toStrings(next)
	case KindTask:
		next, ok := taskTransitions[TaskStatus(status)]
		if !ok {
			return nil
		}
		return toStrings(next)
	}
	return nil
}

// IsTerminal reports whether status has no outgoing transitions.
func IsTerminal(kind Kind, status string) bool {
	next := NextStatuses(kind, status)
	return next != nil && len(next) == 0
}
