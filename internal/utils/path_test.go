package utils

import "testing"

func TestJSONPointerToPath(t *testing.T) {
	tests := []struct {
		ptr  string
		want string
	}{
		{"", ""},
		{"/", ""},
		{"#", ""},
		{"/status", "status"},
		{"#/features/0/status", "features[0].status"},
		{"/tasks/12/subtasks/3", "tasks[12].subtasks[3]"},
		{"/metadata/projectName", "metadata.projectName"},
		{"/a~1b/c~0d", "a/b.c~d"},
		{"/tags/-1", "tags.-1"},
	}
	for _, tt := range tests {
		t.Run(tt.ptr, func(t *testing.T) {
			if got := JSONPointerToPath(tt.ptr); got != tt.want {
				t.Errorf("JSONPointerToPath(%q) = %q, want %q", tt.ptr, got, tt.want)
			}
		})
	}
}

func TestPathHelpers(t *testing.T) {
	if got := FieldPath("", "id"); got != "id" {
		t.Errorf("FieldPath root: got %q", got)
	}
	if got := FieldPath("features[0]", "id"); got != "features[0].id" {
		t.Errorf("FieldPath nested: got %q", got)
	}
	if got := IndexPath("tags", 2); got != "tags[2]" {
		t.Errorf("IndexPath: got %q", got)
	}
}
