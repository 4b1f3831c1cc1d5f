package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/vibeclasses/docstocode-types/model"
	"github.com/vibeclasses/docstocode-types/schema"
)

// Engine selects how values are checked.
type Engine string

const (
	// EngineBuiltin uses schema.Validate (or schema.ValidateStrict).
	EngineBuiltin Engine = "builtin"
	// EngineJSONSchema compiles the exported schemas with a compliant JSON
	// Schema validator.
	EngineJSONSchema Engine = "jsonschema"
)

// ParseEngine parses an engine name.
func ParseEngine(s string) (Engine, error) {
	switch Engine(s) {
	case EngineBuiltin, EngineJSONSchema:
		return Engine(s), nil
	case "":
		return EngineBuiltin, nil
	}
	return "", fmt.Errorf("unknown validation engine %q (want %s or %s)", s, EngineBuiltin, EngineJSONSchema)
}

// Validator checks untyped data against the entity schemas. A Validator is
// immutable after New and safe for concurrent use.
type Validator struct {
	engine Engine
	strict bool
	logger *log.Logger

	compiled map[string]*schema.Compiled
}

// Option configures a Validator.
type Option func(*Validator)

// WithEngine selects the validation engine.
func WithEngine(engine Engine) Option {
	return func(v *Validator) { v.engine = engine }
}

// WithStrictProperties makes the built-in engine reject fields that closed
// object schemas do not list.
func WithStrictProperties(strict bool) Option {
	return func(v *Validator) { v.strict = strict }
}

// WithLogger sets the logger used for per-validation debug output.
func WithLogger(logger *log.Logger) Option {
	return func(v *Validator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// New returns a Validator. With EngineJSONSchema every entity schema is
// compiled up front, so schema errors surface here.
func New(opts ...Option) (*Validator, error) {
	v := &Validator{
		engine: EngineBuiltin,
		logger: discardLogger(),
	}
	for _, opt := range opts {
		opt(v)
	}

	switch v.engine {
	case EngineBuiltin:
	case EngineJSONSchema:
		v.compiled = make(map[string]*schema.Compiled)
		for name, s := range namedSchemas {
			c, err := schema.Compile(s, name)
			if err != nil {
				return nil, err
			}
			v.compiled[name] = c
		}
	default:
		return nil, fmt.Errorf("unknown validation engine %q", v.engine)
	}

	return v, nil
}

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}

// SchemaProject names the project data schema in Check.
const SchemaProject = "project"

var namedSchemas = map[string]*schema.Schema{
	string(model.KindFeature): schema.FeatureSchema,
	string(model.KindBug):     schema.BugSchema,
	string(model.KindTask):    schema.TaskSchema,
	SchemaProject:             schema.ProjectDataSchema,
}

// Engine returns the configured engine.
func (v *Validator) Engine() Engine {
	return v.engine
}

// Check runs the configured engine against the named schema ("feature",
// "bug", "task" or "project") without decoding the result.
func (v *Validator) Check(name string, data any) (schema.Result, error) {
	s, ok := namedSchemas[name]
	if !ok {
		return schema.Result{}, fmt.Errorf("unknown schema %q", name)
	}
	value, err := schema.Normalize(data)
	if err != nil {
		return schema.Result{}, err
	}
	return v.check(name, s, value), nil
}

func (v *Validator) check(name string, s *schema.Schema, value any) schema.Result {
	var res schema.Result
	switch {
	case v.engine == EngineJSONSchema:
		res = v.compiled[name].Validate(value)
	case v.strict:
		res = schema.ValidateStrict(value, s)
	default:
		res = schema.Validate(value, s)
	}
	v.logger.Debug("validated", "schema", name, "engine", v.engine, "valid", res.Valid, "errors", len(res.Errors))
	return res
}

// ValidateFeature checks data against the feature schema and returns it as
// a model.Feature.
func (v *Validator) ValidateFeature(data any) (model.Feature, error) {
	return validateAs[model.Feature](v, string(model.KindFeature), "Feature", data)
}

// ValidateBug checks data against the bug schema and returns it as a
// model.Bug.
func (v *Validator) ValidateBug(data any) (model.Bug, error) {
	return validateAs[model.Bug](v, string(model.KindBug), "Bug", data)
}

// ValidateTask checks data against the task schema and returns it as a
// model.Task.
func (v *Validator) ValidateTask(data any) (model.Task, error) {
	return validateAs[model.Task](v, string(model.KindTask), "Task", data)
}

// ValidateProjectData checks a whole project document.
func (v *Validator) ValidateProjectData(data any) (model.ProjectData, error) {
	return validateAs[model.ProjectData](v, SchemaProject, "Project data", data)
}

// ValidateProjectItem requires data to be a record and validates it as the
// kind named by its "type" field.
func (v *Validator) ValidateProjectItem(data any) (model.ProjectItem, error) {
	value, err := schema.Normalize(data)
	if err != nil {
		return nil, fmt.Errorf("normalize project item: %w", err)
	}

	record, ok := value.(map[string]any)
	if !ok {
		return nil, newValidationError("Invalid project item",
			fmt.Sprintf("Expected object, got %s", schema.TypeOf(value)))
	}

	tag, _ := record["type"].(string)
	switch model.Kind(tag) {
	case model.KindFeature:
		return asItem(v.ValidateFeature(value))
	case model.KindBug:
		return asItem(v.ValidateBug(value))
	case model.KindTask:
		return asItem(v.ValidateTask(value))
	}

	return nil, newValidationError("Invalid project item", "Invalid project item type: "+describeTag(record))
}

func asItem[T model.ProjectItem](item T, err error) (model.ProjectItem, error) {
	if err != nil {
		return nil, err
	}
	return item, nil
}

func describeTag(record map[string]any) string {
	tag, ok := record["type"]
	if !ok {
		return "missing"
	}
	if s, isString := tag.(string); isString {
		return s
	}
	return fmt.Sprintf("%v (%s)", tag, schema.TypeOf(tag))
}

func validateAs[T any](v *Validator, name, label string, data any) (T, error) {
	var zero T

	value, err := schema.Normalize(data)
	if err != nil {
		return zero, fmt.Errorf("normalize %s: %w", name, err)
	}

	res := v.check(name, namedSchemas[name], value)
	if !res.Valid {
		return zero, newValidationError(label+" validation failed", res.Errors...)
	}

	if typed, ok := data.(T); ok {
		return typed, nil
	}
	out, err := decode[T](value)
	if err != nil {
		return zero, newValidationError(label+" validation failed", err.Error())
	}
	return out, nil
}

// decode converts a validated JSON value into its typed form.
func decode[T any](value any) (T, error) {
	var out T
	data, err := json.Marshal(value)
	if err != nil {
		return out, fmt.Errorf("marshal %T: %w", out, err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("decode %T: %w", out, err)
	}
	return out, nil
}

// TryValidateFeature is the non-failing form of ValidateFeature.
func (v *Validator) TryValidateFeature(data any) Result[model.Feature] {
	return toResult(v.ValidateFeature(data))
}

// TryValidateBug is the non-failing form of ValidateBug.
func (v *Validator) TryValidateBug(data any) Result[model.Bug] {
	return toResult(v.ValidateBug(data))
}

// TryValidateTask is the non-failing form of ValidateTask.
func (v *Validator) TryValidateTask(data any) Result[model.Task] {
	return toResult(v.ValidateTask(data))
}

// TryValidateProjectData is the non-failing form of ValidateProjectData.
func (v *Validator) TryValidateProjectData(data any) Result[model.ProjectData] {
	return toResult(v.ValidateProjectData(data))
}

// TryValidateProjectItem is the non-failing form of ValidateProjectItem.
func (v *Validator) TryValidateProjectItem(data any) Result[model.ProjectItem] {
	return toResult(v.ValidateProjectItem(data))
}

func toResult[T any](data T, err error) Result[T] {
	if err == nil {
		return Result[T]{Valid: true, Errors: []string{}, Data: &data}
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		if len(ve.Errors) == 0 {
			return Result[T]{Valid: false, Errors: []string{ve.Message}}
		}
		return Result[T]{Valid: false, Errors: slices.Clone(ve.Errors)}
	}
	return Result[T]{Valid: false, Errors: []string{err.Error()}}
}
