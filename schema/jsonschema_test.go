package schema

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func validFeatureData() map[string]any {
	return map[string]any{
		"type":               "feature",
		"id":                 "FEAT-1",
		"title":              "Login",
		"description":        "",
		"status":             "backlog",
		"priority":           "high",
		"tags":               []any{"auth"},
		"createdAt":          "2024-01-01T00:00:00Z",
		"updatedAt":          "2024-01-01T00:00:00Z",
		"acceptanceCriteria": []any{"user can log in"},
		"storyPoints":        5,
	}
}

func TestMarshalJSON(t *testing.T) {
	data, err := json.Marshal(FeatureSchema)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if doc["type"] != "object" || doc["additionalProperties"] != false {
		t.Errorf("unexpected top-level keywords: %v", doc)
	}
	props := doc["properties"].(map[string]any)
	status := props["status"].(map[string]any)
	if len(status["enum"].([]any)) != 5 {
		t.Errorf("status enum not exported: %v", status)
	}
	assignee := props["assignee"].(map[string]any)
	if types, ok := assignee["type"].([]any); !ok || len(types) != 2 {
		t.Errorf("nullable type should export as a list: %v", assignee["type"])
	}
	typ := props["type"].(map[string]any)
	if typ["const"] != "feature" {
		t.Errorf("const not exported: %v", typ)
	}
}

func TestDocument(t *testing.T) {
	doc, err := Document(TaskSchema, "https://example.com/task.json")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(doc), `"$schema": "`+DraftURI+`"`) {
		t.Errorf("missing $schema in %s", doc)
	}
	if !strings.HasSuffix(string(doc), "}\n") {
		t.Error("document should end with a newline")
	}
}

func TestCompiledAgreesWithEngine(t *testing.T) {
	compiled, err := Compile(FeatureSchema, "feature")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	valid := validFeatureData()
	if res := compiled.Validate(valid); !res.Valid {
		t.Errorf("compliant validator rejected a valid feature: %q", res.Errors)
	}
	if res := Validate(valid, FeatureSchema); !res.Valid {
		t.Errorf("engine rejected a valid feature: %q", res.Errors)
	}

	invalid := validFeatureData()
	invalid["acceptanceCriteria"] = []any{}
	invalid["storyPoints"] = 40
	res := compiled.Validate(invalid)
	if res.Valid {
		t.Fatal("compliant validator accepted an invalid feature")
	}
	for _, field := range []string{"acceptanceCriteria", "storyPoints"} {
		if !slices.ContainsFunc(res.Errors, func(e string) bool { return strings.HasPrefix(e, field+": ") }) {
			t.Errorf("no error for %s in %q", field, res.Errors)
		}
	}
}

func TestCompiledEnforcesAdditionalProperties(t *testing.T) {
	compiled, err := Compile(FeatureSchema, "feature")
	if err != nil {
		t.Fatal(err)
	}
	data := validFeatureData()
	data["unexpected"] = true

	if res := Validate(data, FeatureSchema); !res.Valid {
		t.Errorf("engine should ignore undeclared fields: %q", res.Errors)
	}
	if res := compiled.Validate(data); res.Valid {
		t.Error("compliant validator should reject undeclared fields")
	}
}

func TestCompileFile(t *testing.T) {
	doc, err := Document(MetadataSchema, "")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "metadata.schema.json")
	if err := os.WriteFile(path, doc, 0644); err != nil {
		t.Fatal(err)
	}

	compiled, err := CompileFile(path)
	if err != nil {
		t.Fatalf("CompileFile: %v", err)
	}
	res := compiled.Validate(map[string]any{"projectName": "demo", "version": "1.0", "lastUpdated": "2024-01-01T00:00:00Z"})
	if res.Valid || len(res.Errors) == 0 || !strings.HasPrefix(res.Errors[0], "version: ") {
		t.Errorf("expected a version error, got %+v", res)
	}

	if _, err := CompileFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing schema file")
	}
}
