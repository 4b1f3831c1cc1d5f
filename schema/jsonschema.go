package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/vibeclasses/docstocode-types/internal/utils"
)

// DraftURI is the $schema written by Document.
const DraftURI = "https://json-schema.org/draft/2020-12/schema"

// MarshalJSON renders the node as a JSON Schema object. The result can be
// fed to any compliant JSON Schema validator.
func (s *Schema) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.jsonObject())
}

func (s *Schema) jsonObject() map[string]any {
	out := make(map[string]any)
	switch len(s.Types) {
	case 0:
	case 1:
		out["type"] = s.Types[0]
	default:
		out["type"] = s.Types
	}
	if s.Description != "" {
		out["description"] = s.Description
	}
	if len(s.Required) > 0 {
		out["required"] = s.Required
	}
	if len(s.Properties) > 0 {
		props := make(map[string]any, len(s.Properties))
		for _, p := range s.Properties {
			props[p.Name] = p.Schema.jsonObject()
		}
		out["properties"] = props
	}
	if s.AdditionalProperties != nil {
		out["additionalProperties"] = *s.AdditionalProperties
	}
	if s.Items != nil {
		out["items"] = s.Items.jsonObject()
	}
	if s.MinItems != nil {
		out["minItems"] = *s.MinItems
	}
	if s.MaxItems != nil {
		out["maxItems"] = *s.MaxItems
	}
	if s.UniqueItems {
		out["uniqueItems"] = true
	}
	if s.MinLength != nil {
		out["minLength"] = *s.MinLength
	}
	if s.MaxLength != nil {
		out["maxLength"] = *s.MaxLength
	}
	if s.Pattern != "" {
		out["pattern"] = s.Pattern
	}
	if s.Format != "" {
		out["format"] = s.Format
	}
	if s.Minimum != nil {
		out["minimum"] = *s.Minimum
	}
	if s.Maximum != nil {
		out["maximum"] = *s.Maximum
	}
	if len(s.Enum) > 0 {
		out["enum"] = s.Enum
	}
	if s.HasConst {
		out["const"] = s.Const
	}
	return out
}

// Document returns s as a standalone, indented JSON Schema document with
// $schema and $id set.
func Document(s *Schema, id string) ([]byte, error) {
	doc := s.jsonObject()
	doc["$schema"] = DraftURI
	if id != "" {
		doc["$id"] = id
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema document: %w", err)
	}
	return append(data, '\n'), nil
}

// Compiled is a schema prepared by the compliant JSON Schema validator. It
// enforces every exported keyword, including additionalProperties and
// formats. A Compiled value is safe for concurrent use.
type Compiled struct {
	schema *jsonschema.Schema
}

// Compile exports s and compiles it under the given resource name.
func Compile(s *Schema, name string) (*Compiled, error) {
	url := name + ".json"
	doc, err := Document(s, "")
	if err != nil {
		return nil, err
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	compiler.AssertFormat = true
	if err := compiler.AddResource(url, bytes.NewReader(doc)); err != nil {
		return nil, fmt.Errorf("add schema resource %s: %w", url, err)
	}

	compiled, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}
	return &Compiled{schema: compiled}, nil
}

// CompileFile compiles a JSON Schema document from disk.
func CompileFile(path string) (*Compiled, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid schema path: %w", err)
	}
	if _, err := os.Stat(absPath); err != nil {
		return nil, fmt.Errorf("read schema file: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	compiled, err := compiler.Compile(absPath)
	if err != nil {
		return nil, fmt.Errorf("compile schema file %s: %w", absPath, err)
	}
	return &Compiled{schema: compiled}, nil
}

// Validate checks data and flattens the validator's error tree into
// "<path>: <message>" strings, one per failing leaf.
func (c *Compiled) Validate(data any) Result {
	value, err := Normalize(data)
	if err != nil {
		return Result{Valid: false, Errors: []string{err.Error()}}
	}

	errs := []string{}
	if err := c.schema.Validate(value); err != nil {
		errs = appendSchemaErrors(errs, err)
	}
	return Result{Valid: len(errs) == 0, Errors: errs}
}

func appendSchemaErrors(errs []string, err error) []string {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return append(errs, err.Error())
	}
	return collectSchemaErrors(errs, ve)
}

func collectSchemaErrors(errs []string, err *jsonschema.ValidationError) []string {
	if len(err.Causes) == 0 {
		path := utils.JSONPointerToPath(err.InstanceLocation)
		if path == "" {
			return append(errs, err.Message)
		}
		return append(errs, path+": "+err.Message)
	}
	for _, cause := range err.Causes {
		errs = collectSchemaErrors(errs, cause)
	}
	return errs
}
