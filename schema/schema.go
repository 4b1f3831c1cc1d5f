package schema

import (
	"fmt"
	"regexp"
	"slices"
)

// Type is a JSON primitive type name.
type Type string

const (
	TypeObject  Type = "object"
	TypeArray   Type = "array"
	TypeString  Type = "string"
	TypeNumber  Type = "number"
	TypeInteger Type = "integer"
	TypeBoolean Type = "boolean"
	TypeNull    Type = "null"
)

// Property is a named child of an object schema.
type Property struct {
	Name   string
	Schema *Schema
}

// Schema is a node of a declarative schema tree. Nodes are built with the
// constructors in this package and must be treated as immutable afterwards:
// Extend copies a node rather than changing it.
type Schema struct {
	Types       []Type
	Description string

	// Object keywords. Properties keep their declaration order.
	Required             []string
	Properties           []Property
	AdditionalProperties *bool

	// Array keywords.
	Items       *Schema
	MinItems    *int
	MaxItems    *int
	UniqueItems bool

	// String keywords. The built-in engine checks only the "date-time"
	// format; other formats are exported as annotations.
	MinLength *int
	MaxLength *int
	Pattern   string
	Format    string

	// Number keywords.
	Minimum *float64
	Maximum *float64

	Enum     []any
	Const    any
	HasConst bool

	pattern *regexp.Regexp
}

// Option configures a schema node.
type Option func(*Schema)

// New returns a node of the given types.
func New(types []Type, opts ...Option) *Schema {
	s := &Schema{Types: slices.Clone(types)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Object returns an object schema.
func Object(opts ...Option) *Schema {
	return New([]Type{TypeObject}, opts...)
}

// Array returns an array schema whose elements match items.
func Array(items *Schema, opts ...Option) *Schema {
	s := New([]Type{TypeArray}, opts...)
	s.Items = items
	return s
}

// String returns a string schema.
func String(opts ...Option) *Schema {
	return New([]Type{TypeString}, opts...)
}

// Number returns a number schema.
func Number(opts ...Option) *Schema {
	return New([]Type{TypeNumber}, opts...)
}

// Integer returns a schema for whole numbers.
func Integer(opts ...Option) *Schema {
	return New([]Type{TypeInteger}, opts...)
}

// Boolean returns a boolean schema.
func Boolean(opts ...Option) *Schema {
	return New([]Type{TypeBoolean}, opts...)
}

// Literal returns a string schema that only accepts value.
func Literal(value string) *Schema {
	return String(Const(value))
}

// Extend returns a copy of base with opts applied. Required names are
// appended to the base list and properties replace base properties of the
// same name in place, or are appended after them. base is left unchanged.
func Extend(base *Schema, opts ...Option) *Schema {
	s := base.clone()
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Required adds names to the required list, skipping duplicates.
func Required(names ...string) Option {
	return func(s *Schema) {
		for _, name := range names {
			if !slices.Contains(s.Required, name) {
				s.Required = append(s.Required, name)
			}
		}
	}
}

// Prop pairs a property name with its schema.
func Prop(name string, schema *Schema) Property {
	return Property{Name: name, Schema: schema}
}

// Props adds or overrides properties.
func Props(props ...Property) Option {
	return func(s *Schema) {
		for _, p := range props {
			i := slices.IndexFunc(s.Properties, func(existing Property) bool {
				return existing.Name == p.Name
			})
			if i >= 0 {
				s.Properties[i] = p
				continue
			}
			s.Properties = append(s.Properties, p)
		}
	}
}

// NoAdditionalProperties declares that unlisted fields are not allowed.
func NoAdditionalProperties() Option {
	return func(s *Schema) {
		f := false
		s.AdditionalProperties = &f
	}
}

// Nullable additionally allows null.
func Nullable() Option {
	return func(s *Schema) {
		if !slices.Contains(s.Types, TypeNull) {
			s.Types = append(s.Types, TypeNull)
		}
	}
}

// Describe sets the description.
func Describe(text string) Option {
	return func(s *Schema) { s.Description = text }
}

// MinItems sets the minimum array length.
func MinItems(n int) Option {
	return func(s *Schema) { s.MinItems = &n }
}

// MaxItems sets the maximum array length.
func MaxItems(n int) Option {
	return func(s *Schema) { s.MaxItems = &n }
}

// UniqueItems requires array elements to be pairwise distinct.
func UniqueItems() Option {
	return func(s *Schema) { s.UniqueItems = true }
}

// MinLength sets the minimum string length in characters.
func MinLength(n int) Option {
	return func(s *Schema) { s.MinLength = &n }
}

// MaxLength sets the maximum string length in characters.
func MaxLength(n int) Option {
	return func(s *Schema) { s.MaxLength = &n }
}

// Pattern sets a regular expression strings must match. It panics if expr
// does not compile, so it is meant for static schema definitions.
func Pattern(expr string) Option {
	re := regexp.MustCompile(expr)
	return func(s *Schema) {
		s.Pattern = expr
		s.pattern = re
	}
}

// Format sets a format annotation such as "date-time".
func Format(name string) Option {
	return func(s *Schema) { s.Format = name }
}

// Minimum sets the inclusive lower bound of a number.
func Minimum(v float64) Option {
	return func(s *Schema) { s.Minimum = &v }
}

// Maximum sets the inclusive upper bound of a number.
func Maximum(v float64) Option {
	return func(s *Schema) { s.Maximum = &v }
}

// Enum restricts values to the given literals.
func Enum(values ...any) Option {
	normalized := make([]any, len(values))
	for i, v := range values {
		normalized[i] = mustNormalize(v)
	}
	return func(s *Schema) { s.Enum = normalized }
}

// EnumOf restricts values to a set of string-typed constants.
func EnumOf[S ~string](values ...S) Option {
	literals := make([]any, len(values))
	for i, v := range values {
		literals[i] = string(v)
	}
	return Enum(literals...)
}

// Const restricts values to a single literal.
func Const(value any) Option {
	normalized := mustNormalize(value)
	return func(s *Schema) {
		s.Const = normalized
		s.HasConst = true
	}
}

// PrimaryType returns the first non-null declared type, or "" when the
// node declares none.
func (s *Schema) PrimaryType() Type {
	for _, t := range s.Types {
		if t != TypeNull {
			return t
		}
	}
	return ""
}

// AllowsNull reports whether null is among the declared types.
func (s *Schema) AllowsNull() bool {
	return slices.Contains(s.Types, TypeNull)
}

// Property returns the schema of the named property, or nil.
func (s *Schema) Property(name string) *Schema {
	for _, p := range s.Properties {
		if p.Name == name {
			return p.Schema
		}
	}
	return nil
}

// PropertyNames returns property names in declaration order.
func (s *Schema) PropertyNames() []string {
	names := make([]string, len(s.Properties))
	for i, p := range s.Properties {
		names[i] = p.Name
	}
	return names
}

// clone copies every slice and pointer keyword of s. Child schemas are
// shared since they are never modified.
func (s *Schema) clone() *Schema {
	c := *s
	c.Types = slices.Clone(s.Types)
	c.Required = slices.Clone(s.Required)
	c.Properties = slices.Clone(s.Properties)
	c.Enum = slices.Clone(s.Enum)
	if s.AdditionalProperties != nil {
		v := *s.AdditionalProperties
		c.AdditionalProperties = &v
	}
	return &c
}

func mustNormalize(v any) any {
	n, err := Normalize(v)
	if err != nil {
		panic(fmt.Sprintf("schema: literal %v is not JSON data: %v", v, err))
	}
	return n
}
