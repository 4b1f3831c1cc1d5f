// Package schema describes project items as declarative schema trees and
// checks untyped data against them.
//
// # Schema nodes
//
// A Schema is plain data: object nodes list required fields and ordered
// properties, array nodes carry an item schema, string and number nodes carry
// their bounds, and any node may restrict values with Enum or Const or allow
// null with Nullable. Entity schemas are derived from BaseItemSchema with
// Extend, which never modifies its input:
//
//	FeatureSchema = Extend(BaseItemSchema,
//	    Required("type", "acceptanceCriteria"),
//	    Props(Prop("status", String(EnumOf(model.FeatureStatuses()...)))),
//	)
//
// # Built-in engine
//
// Validate walks a schema and a value depth-first and returns every
// violation as a field-qualified message:
//
//	Missing required field: title
//	priority: Value must be one of: low, medium, high, critical
//	metadata.version: String does not match pattern ^\d+\.\d+\.\d+(-[a-zA-Z0-9]+)?$
//	features[0].acceptanceCriteria: Array must contain at least 1 items
//
// The engine supports a JSON Schema subset: type, required, properties,
// items, minItems, maxItems, uniqueItems, minLength, maxLength, pattern,
// minimum, maximum, enum and const. Undeclared fields are ignored unless
// ValidateStrict is used.
//
// # Compliant validation
//
// MarshalJSON and Document export any node as draft 2020-12 JSON Schema.
// Compile hands the export to github.com/santhosh-tekuri/jsonschema/v5 for
// callers that need full keyword coverage.
package schema
