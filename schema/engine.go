package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/vibeclasses/docstocode-types/internal/utils"
)

// Result is the outcome of validating a value against a schema. Errors is
// never nil and is empty exactly when Valid is true.
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// rootLabel names the value when a non-object schema is used at the top
// level.
const rootLabel = "value"

// Validate checks data against s and collects every violation. Fields that
// the schema does not describe are ignored even when the schema declares
// additionalProperties false; see ValidateStrict.
//
// Errors are ordered by required fields first, then by the declaration order
// of the properties present in data. The order is always the schema's: data
// arrives as an unordered map, so field order in the source document is not
// kept. Nested object errors are prefixed with
// "<field>." and array element errors use "<field>[<index>]".
func Validate(data any, s *Schema) Result {
	return engine{}.run(data, s)
}

// ValidateStrict is Validate with additionalProperties enforced: every field
// of a closed object that its schema does not list produces
// "Unexpected field: <name>".
func ValidateStrict(data any, s *Schema) Result {
	return engine{strict: true}.run(data, s)
}

type engine struct {
	strict bool
}

func (e engine) run(data any, s *Schema) Result {
	value, err := Normalize(data)
	if err != nil {
		return Result{Valid: false, Errors: []string{err.Error()}}
	}

	var errs []string
	if s.PrimaryType() == TypeObject {
		errs = e.object(value, s)
	} else {
		errs = e.field(value, s, rootLabel)
	}
	if errs == nil {
		errs = []string{}
	}
	return Result{Valid: len(errs) == 0, Errors: errs}
}

func (e engine) object(value any, s *Schema) []string {
	record, ok := value.(map[string]any)
	if !ok {
		if value == nil && s.AllowsNull() {
			return nil
		}
		if t := s.PrimaryType(); t != "" {
			return []string{fmt.Sprintf("Expected %s, got %s", t, TypeOf(value))}
		}
		return nil
	}

	var errs []string
	for _, name := range s.Required {
		if _, ok := record[name]; !ok {
			errs = append(errs, "Missing required field: "+name)
		}
	}

	for _, p := range s.Properties {
		v, ok := record[p.Name]
		if !ok {
			continue
		}
		errs = append(errs, e.field(v, p.Schema, p.Name)...)
	}

	if e.strict && s.AdditionalProperties != nil && !*s.AdditionalProperties {
		var extra []string
		for name := range record {
			if s.Property(name) == nil {
				extra = append(extra, name)
			}
		}
		sort.Strings(extra)
		for _, name := range extra {
			errs = append(errs, "Unexpected field: "+name)
		}
	}

	return errs
}

func (e engine) field(value any, s *Schema, label string) []string {
	if value == nil && s.AllowsNull() {
		return nil
	}

	expected := s.PrimaryType()
	if expected != "" && !matchesType(value, expected) {
		return []string{fmt.Sprintf("%s: Expected %s, got %s", label, expected, TypeOf(value))}
	}

	var errs []string

	switch v := value.(type) {
	case string:
		n := utf8.RuneCountInString(v)
		if s.MinLength != nil && n < *s.MinLength {
			errs = append(errs, fmt.Sprintf("%s: String must be at least %d characters", label, *s.MinLength))
		}
		if s.MaxLength != nil && n > *s.MaxLength {
			errs = append(errs, fmt.Sprintf("%s: String must be at most %d characters", label, *s.MaxLength))
		}
		if s.pattern != nil && !s.pattern.MatchString(v) {
			errs = append(errs, fmt.Sprintf("%s: String does not match pattern %s", label, s.Pattern))
		} else if s.Format == "date-time" && !isDateTime(v) {
			errs = append(errs, fmt.Sprintf("%s: String is not a valid date-time", label))
		}
	case float64:
		if s.Minimum != nil && v < *s.Minimum {
			errs = append(errs, fmt.Sprintf("%s: Number must be at least %s", label, formatNumber(*s.Minimum)))
		}
		if s.Maximum != nil && v > *s.Maximum {
			errs = append(errs, fmt.Sprintf("%s: Number must be at most %s", label, formatNumber(*s.Maximum)))
		}
	}

	if len(s.Enum) > 0 && !slices.ContainsFunc(s.Enum, func(allowed any) bool { return equal(allowed, value) }) {
		errs = append(errs, fmt.Sprintf("%s: Value must be one of: %s", label, formatLiterals(s.Enum)))
	}

	if s.HasConst && !equal(s.Const, value) {
		errs = append(errs, fmt.Sprintf("%s: Value must be %s", label, formatLiteral(s.Const)))
	}

	if items, ok := value.([]any); ok && expected == TypeArray {
		if s.MinItems != nil && len(items) < *s.MinItems {
			errs = append(errs, fmt.Sprintf("%s: Array must contain at least %d items", label, *s.MinItems))
		}
		if s.MaxItems != nil && len(items) > *s.MaxItems {
			errs = append(errs, fmt.Sprintf("%s: Array must contain at most %d items", label, *s.MaxItems))
		}
		if s.UniqueItems && hasDuplicates(items) {
			errs = append(errs, fmt.Sprintf("%s: Array items must be unique", label))
		}
		if s.Items != nil {
			for i, item := range items {
				errs = append(errs, e.field(item, s.Items, utils.IndexPath(label, i))...)
			}
		}
	}

	if _, ok := value.(map[string]any); ok && expected == TypeObject {
		for _, nested := range e.object(value, s) {
			errs = append(errs, utils.FieldPath(label, nested))
		}
	}

	return errs
}

func matchesType(value any, t Type) bool {
	switch t {
	case TypeObject:
		_, ok := value.(map[string]any)
		return ok
	case TypeArray:
		_, ok := value.([]any)
		return ok
	case TypeString:
		_, ok := value.(string)
		return ok
	case TypeNumber:
		_, ok := value.(float64)
		return ok
	case TypeInteger:
		f, ok := value.(float64)
		return ok && f == math.Trunc(f) && !math.IsInf(f, 0)
	case TypeBoolean:
		_, ok := value.(bool)
		return ok
	case TypeNull:
		return value == nil
	}
	return true
}

// TypeOf names the JSON type of a normalized value.
func TypeOf(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	return fmt.Sprintf("%T", value)
}

// equal compares normalized JSON values structurally.
func equal(a, b any) bool {
	return canonical(a) == canonical(b)
}

func hasDuplicates(items []any) bool {
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		key := canonical(item)
		if _, ok := seen[key]; ok {
			return true
		}
		seen[key] = struct{}{}
	}
	return false
}

// canonical encodes a normalized value. encoding/json sorts map keys, so
// structurally equal values encode identically. Negative zero is folded into
// zero first since the two compare equal as JSON numbers.
func canonical(v any) string {
	data, err := json.Marshal(foldZero(v))
	if err != nil {
		return fmt.Sprintf("%#v", v)
	}
	return string(data)
}

func foldZero(v any) any {
	switch t := v.(type) {
	case float64:
		if t == 0 {
			return 0.0
		}
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = foldZero(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = foldZero(e)
		}
		return out
	}
	return v
}

// isDateTime reports whether v is an RFC 3339 timestamp naming a real
// instant, using the same parser that decodes time.Time fields.
func isDateTime(v string) bool {
	var ts time.Time
	return ts.UnmarshalText([]byte(v)) == nil
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatLiteral(v any) string {
	if f, ok := v.(float64); ok {
		return formatNumber(f)
	}
	return fmt.Sprint(v)
}

func formatLiterals(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = formatLiteral(v)
	}
	return strings.Join(parts, ", ")
}
