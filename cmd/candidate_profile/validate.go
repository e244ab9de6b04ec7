package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jonathan/candidate-profile/internal/observability"
	"github.com/jonathan/candidate-profile/internal/schemas"
	embedded "github.com/jonathan/candidate-profile/schemas"
	"github.com/spf13/cobra"
)

var (
	validateKind   string
	validateSchema string
)

var validateCmd = &cobra.Command{
	Use:   "validate <file.json>",
	Short: "Validate a JSON document against a schema",
	Long:  "Validates a ParsedResume or CandidateFormData document against the embedded JSON Schemas, or against a schema file given with --schema.",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateKind, "kind", "k", "candidate", "Document kind: candidate or resume")
	validateCmd.Flags().StringVarP(&validateSchema, "schema", "s", "", "Path to a JSON Schema file (overrides --kind)")
	rootCmd.AddCommand(validateCmd)
}

func schemaForKind(kind string) (string, error) {
	switch kind {
	case "candidate", "form":
		return embedded.CandidateForm, nil
	case "resume", "parsed":
		return embedded.ParsedResume, nil
	default:
		return "", fmt.Errorf("unknown kind %q (expected candidate or resume)", kind)
	}
}

func runValidate(_ *cobra.Command, args []string) error {
	path := args[0]

	var err error
	if validateSchema != "" {
		err = schemas.ValidateJSON(validateSchema, path)
	} else {
		name, kindErr := schemaForKind(validateKind)
		if kindErr != nil {
			return kindErr
		}
		document, readErr := os.ReadFile(path)
		if readErr != nil {
			return fmt.Errorf("failed to read JSON file: %w", readErr)
		}
		err = schemas.ValidateDocument(name, document)
	}

	if err != nil {
		var ve *schemas.ValidationError
		if errors.As(err, &ve) && verbose {
			observability.NewPrinter(os.Stderr).PrintFieldErrors(ve.Fields())
		}
		return err
	}

	fmt.Printf("%s is valid\n", path)
	return nil
}
