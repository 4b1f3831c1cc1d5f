package validate

import "github.com/vibeclasses/docstocode-types/model"

// defaultValidator backs the package-level functions: built-in engine,
// undeclared fields ignored, no logging.
var defaultValidator = &Validator{engine: EngineBuiltin, logger: discardLogger()}

// Default returns the Validator used by the package-level functions.
func Default() *Validator {
	return defaultValidator
}

// ValidateFeature checks data against the feature schema. On failure the
// error is a *ValidationError listing every violation.
func ValidateFeature(data any) (model.Feature, error) {
	return defaultValidator.ValidateFeature(data)
}

// ValidateBug checks data against the bug schema.
func ValidateBug(data any) (model.Bug, error) {
	return defaultValidator.ValidateBug(data)
}

// ValidateTask checks data against the task schema.
func ValidateTask(data any) (model.Task, error) {
	return defaultValidator.ValidateTask(data)
}

// ValidateProjectData checks a whole project document.
func ValidateProjectData(data any) (model.ProjectData, error) {
	return defaultValidator.ValidateProjectData(data)
}

// ValidateProjectItem dispatches on the "type" field of data. Records with a
// missing or unknown type fail with a *ValidationError naming the tag.
func ValidateProjectItem(data any) (model.ProjectItem, error) {
	return defaultValidator.ValidateProjectItem(data)
}

// TryValidateFeature reports the outcome of ValidateFeature as a Result.
func TryValidateFeature(data any) Result[model.Feature] {
	return defaultValidator.TryValidateFeature(data)
}

// TryValidateBug reports the outcome of ValidateBug as a Result.
func TryValidateBug(data any) Result[model.Bug] {
	return defaultValidator.TryValidateBug(data)
}

// TryValidateTask reports the outcome of ValidateTask as a Result.
func TryValidateTask(data any) Result[model.Task] {
	return defaultValidator.TryValidateTask(data)
}

// TryValidateProjectData reports the outcome of ValidateProjectData as a Result.
func TryValidateProjectData(data any) Result[model.ProjectData] {
	return defaultValidator.TryValidateProjectData(data)
}

// TryValidateProjectItem reports the outcome of ValidateProjectItem as a Result.
func TryValidateProjectItem(data any) Result[model.ProjectItem] {
	return defaultValidator.TryValidateProjectItem(data)
}
