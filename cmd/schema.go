package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vibeclasses/docstocode-types/schema"
)

var exportedSchemas = map[string]*schema.Schema{
	"base":    schema.BaseItemSchema,
	"feature": schema.FeatureSchema,
	"bug":     schema.BugSchema,
	"task":    schema.TaskSchema,
	"project": schema.ProjectDataSchema,
}

func schemaNames() []string {
	names := make([]string, 0, len(exportedSchemas))
	for name := range exportedSchemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func newSchemaCommand() *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "schema <name>",
		Short: "Print an entity schema as JSON Schema",
		Long: `Print one of the entity schemas (base, feature, bug, task, project) as a
draft 2020-12 JSON Schema document.`,
		Example:   `  pmtypes schema feature > feature.schema.json`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: schemaNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, ok := exportedSchemas[args[0]]
			if !ok {
				return fmt.Errorf("unknown schema %q (want %s)", args[0], strings.Join(schemaNames(), ", "))
			}
			doc, err := schema.Document(s, id)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(doc)
			return err
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Value for the document's $id")
	return cmd
}
