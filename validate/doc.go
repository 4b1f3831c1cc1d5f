// Package validate checks untyped input against the entity schemas and
// converts it to the typed values of package model.
//
// Each kind has a failing and a non-failing form:
//
//	feature, err := validate.ValidateFeature(data)
//	var verr *validate.ValidationError
//	if errors.As(err, &verr) {
//	    for _, msg := range verr.Errors {
//	        fmt.Println(msg)
//	    }
//	}
//
//	res := validate.TryValidateTask(data)
//	if res.Valid {
//	    fmt.Println(res.Data.ID)
//	}
//
// ValidateProjectItem picks the schema from the "type" field of a record.
// Input may be a map decoded from JSON or YAML, or a typed model value.
//
// The package-level functions use the built-in engine and ignore fields
// that schemas do not list. Build a Validator with New to enforce closed
// objects (WithStrictProperties) or to use the compliant JSON Schema engine
// (WithEngine(EngineJSONSchema)).
package validate
