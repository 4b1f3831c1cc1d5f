package validate

import "github.com/vibeclasses/docstocode-types/model"

const testTime = "2024-03-01T09:30:00Z"

func baseFields(id string) map[string]any {
	return map[string]any{
		"id":          id,
		"title":       "Item " + id,
		"description": "",
		"priority":    "medium",
		"tags":        []any{"core"},
		"createdAt":   testTime,
		"updatedAt":   testTime,
	}
}

func validFeature() map[string]any {
	m := baseFields("FEAT-1")
	m["type"] = "feature"
	m["status"] = "planning"
	m["acceptanceCriteria"] = []any{"users can sign in"}
	m["storyPoints"] = 8
	m["epic"] = "auth"
	return m
}

func validBug() map[string]any {
	m := baseFields("BUG-1")
	m["type"] = "bug"
	m["status"] = "open"
	m["severity"] = "high"
	m["reproducible"] = true
	m["stepsToReproduce"] = []any{"open the app", "click sign in"}
	m["environment"] = "linux/amd64"
	m["resolution"] = nil
	return m
}

func validTask() map[string]any {
	m := baseFields("TASK-1")
	m["type"] = "task"
	m["status"] = "in-progress"
	m["subtasks"] = []any{"TASK-2", "TASK-3"}
	m["dueDate"] = "2024-04-01T00:00:00+02:00"
	m["estimatedHours"] = 4.5
	m["actualHours"] = 0
	return m
}

func validProject() map[string]any {
	return map[string]any{
		"features": []any{validFeature()},
		"bugs":     []any{validBug()},
		"tasks":    []any{validTask()},
		"metadata": map[string]any{
			"projectName": "demo",
			"version":     "1.2.0",
			"lastUpdated": testTime,
		},
	}
}

func without(m map[string]any, key string) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if k != key {
			out[k] = v
		}
	}
	return out
}

func with(m map[string]any, key string, value any) map[string]any {
	out := without(m, key)
	out[key] = value
	return out
}

var fixtures = []struct {
	kind     model.Kind
	data     func() map[string]any
	validate func(any) error
}{
	{model.KindFeature, validFeature, func(d any) error { _, err := ValidateFeature(d); return err }},
	{model.KindBug, validBug, func(d any) error { _, err := ValidateBug(d); return err }},
	{model.KindTask, validTask, func(d any) error { _, err := ValidateTask(d); return err }},
}
