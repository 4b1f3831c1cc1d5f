// Package utils provides helpers shared by the validation engines.
package utils

import (
	"strconv"
	"strings"
)

// FieldPath appends a field name to a dotted path.
func FieldPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

// IndexPath appends an array index to a path: "tags" becomes "tags[2]".
func IndexPath(parent string, i int) string {
	return parent + "[" + strconv.Itoa(i) + "]"
}

// JSONPointerToPath converts a JSON Pointer (RFC 6901) to the dotted path
// form used in validation messages. For example, "/features/0/status"
// becomes "features[0].status". A leading "#" is ignored.
func JSONPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	path := ""
	for _, token := range strings.Split(ptr, "/") {
		// ~1 is "/" and ~0 is "~"; order matters.
		token = strings.ReplaceAll(token, "~1", "/")
		token = strings.ReplaceAll(token, "~0", "~")
		if token == "" {
			continue
		}
		if idx, err := strconv.Atoi(token); err == nil && idx >= 0 {
			path = IndexPath(path, idx)
			continue
		}
		path = FieldPath(path, token)
	}
	return path
}
