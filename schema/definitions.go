package schema

import "github.com/vibeclasses/docstocode-types/model"

// Patterns shared by the entity schemas.
const (
	IDPattern        = `^[a-zA-Z0-9_-]+$`
	TimestampPattern = `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:\d{2})$`
	VersionPattern   = `^\d+\.\d+\.\d+(-[a-zA-Z0-9]+)?$`
)

// The schemas below are built once at package initialization and are
// read-only. Use Extend to derive variants.
var (
	// BaseItemSchema describes the fields shared by every project item.
	BaseItemSchema = Object(
		Required("id", "title", "description", "status", "priority", "tags", "createdAt", "updatedAt"),
		Props(
			Prop("id", ID()),
			Prop("title", String(MinLength(1), MaxLength(200))),
			Prop("description", String(MaxLength(2000))),
			Prop("status", String()),
			Prop("priority", String(EnumOf(model.Priorities()...))),
			Prop("assignee", String(Nullable())),
			Prop("tags", Array(String())),
			Prop("createdAt", Timestamp()),
			Prop("updatedAt", Timestamp()),
		),
	)

	// FeatureSchema describes a model.Feature.
	FeatureSchema = Extend(BaseItemSchema,
		Required("type", "acceptanceCriteria"),
		Props(
			Prop("type", Literal(string(model.KindFeature))),
			Prop("status", String(EnumOf(model.FeatureStatuses()...))),
			Prop("epic", String(Nullable())),
			Prop("storyPoints", Integer(Minimum(model.MinStoryPoints), Maximum(model.MaxStoryPoints))),
			Prop("acceptanceCriteria", Array(String(MinLength(1)), MinItems(1))),
		),
		NoAdditionalProperties(),
	)

	// BugSchema describes a model.Bug.
	BugSchema = Extend(BaseItemSchema,
		Required("type", "severity", "reproducible", "stepsToReproduce", "environment"),
		Props(
			Prop("type", Literal(string(model.KindBug))),
			Prop("status", String(EnumOf(model.BugStatuses()...))),
			Prop("severity", String(EnumOf(model.Severities()...))),
			Prop("reproducible", Boolean()),
			Prop("stepsToReproduce", Array(String(MinLength(1)), MinItems(1))),
			Prop("environment", String(MinLength(1))),
			Prop("resolution", String(Nullable())),
		),
		NoAdditionalProperties(),
	)

	// TaskSchema describes a model.Task.
	TaskSchema = Extend(BaseItemSchema,
		Required("type", "subtasks"),
		Props(
			Prop("type", Literal(string(model.KindTask))),
			Prop("status", String(EnumOf(model.TaskStatuses()...))),
			Prop("dueDate", Timestamp(Nullable())),
			Prop("estimatedHours", Number(Minimum(0))),
			Prop("actualHours", Number(Minimum(0))),
			Prop("subtasks", Array(ID(), UniqueItems())),
		),
		NoAdditionalProperties(),
	)

	// MetadataSchema describes model.Metadata.
	MetadataSchema = Object(
		Required("projectName", "version", "lastUpdated"),
		Props(
			Prop("projectName", String(MinLength(1), MaxLength(100))),
			Prop("version", String(Pattern(VersionPattern))),
			Prop("lastUpdated", Timestamp()),
		),
		NoAdditionalProperties(),
	)

	// ProjectDataSchema describes the model.ProjectData aggregate.
	ProjectDataSchema = Object(
		Required("features", "bugs", "tasks", "metadata"),
		Props(
			Prop("features", Array(FeatureSchema)),
			Prop("bugs", Array(BugSchema)),
			Prop("tasks", Array(TaskSchema)),
			Prop("metadata", MetadataSchema),
		),
		NoAdditionalProperties(),
	)
)

// ID returns a schema for item identifiers.
func ID(opts ...Option) *Schema {
	return String(append([]Option{MinLength(1), Pattern(IDPattern)}, opts...)...)
}

// Timestamp returns a schema for ISO-8601 date-time strings.
func Timestamp(opts ...Option) *Schema {
	return String(append([]Option{Pattern(TimestampPattern), Format("date-time")}, opts...)...)
}

// ForKind returns the schema of an entity kind, or nil for an unknown kind.
func ForKind(kind model.Kind) *Schema {
	switch kind {
	case model.KindFeature:
		return FeatureSchema
	case model.KindBug:
		return BugSchema
	case model.KindTask:
		return TaskSchema
	}
	return nil
}
