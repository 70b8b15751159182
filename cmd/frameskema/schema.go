package main

import (
	"fmt"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/reoring/frameskema/jsonschema"
	"github.com/reoring/frameskema/schemayaml"
)

var schemaFlags struct {
	schema     string
	schemaName string
	format     string
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print a schema document in another format",
	Long: `Schema loads a schema document, checks it and prints it back out,
either as normalized YAML or as the JSON Schema of the batches it
accepts. Useful for seeing what a bundle actually declares and for
feeding editors and API tooling.`,
	RunE: runSchema,
}

func init() {
	rootCmd.AddCommand(schemaCmd)

	schemaCmd.Flags().StringVarP(&schemaFlags.schema, "schema", "s", "", "schema document (YAML)")
	schemaCmd.Flags().StringVar(&schemaFlags.schemaName, "schema-name", "", "schema to pick from a multi-document bundle")
	schemaCmd.Flags().StringVar(&schemaFlags.format, "format", "yaml", "output format: yaml or jsonschema")
	schemaCmd.MarkFlagRequired("schema")
}

func runSchema(cmd *cobra.Command, args []string) error {
	s, err := loadSchema(schemaFlags.schema, schemaFlags.schemaName)
	if err != nil {
		return err
	}

	switch schemaFlags.format {
	case "yaml":
		name := schemaFlags.schemaName
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(schemaFlags.schema), filepath.Ext(schemaFlags.schema))
		}
		out, err := schemayaml.Marshal(name, s)
		if err != nil {
			return err
		}
		fmt.Print(string(out))
	case "jsonschema":
		out, err := json.MarshalIndent(jsonschema.FromSchema(s), "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	default:
		return fmt.Errorf("unknown format %q: want yaml or jsonschema", schemaFlags.format)
	}
	return nil
}
