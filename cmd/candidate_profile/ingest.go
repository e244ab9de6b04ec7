package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jonathan/candidate-profile/internal/ingestion"
	"github.com/jonathan/candidate-profile/internal/observability"
	"github.com/jonathan/candidate-profile/internal/schemas"
	"github.com/spf13/cobra"
)

var (
	ingestOutput string
	ingestMode   string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <resume.pdf>",
	Short: "Ingest a resume into a ParsedResume",
	Long:  "Runs the configured ingester over a PDF resume and writes the ParsedResume as JSON.",
	Args:  cobra.ExactArgs(1),
	RunE:  runIngest,
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestOutput, "out", "o", "", "Path to output JSON file (default stdout)")
	ingestCmd.Flags().StringVar(&ingestMode, "mode", "", "Ingestion mode: fixture or generative")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(configPath, os.Getenv)
	if err != nil {
		return err
	}
	if ingestMode != "" {
		cfg.IngestMode = ingestMode
	}

	inner, err := ingestion.NewIngester(ingestion.Mode(cfg.IngestMode), cfg.Delay())
	if err != nil {
		return err
	}

	upload, file, err := ingestion.UploadFromFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to open resume: %w", err)
	}
	defer func() { _ = file.Close() }()

	parsed, err := ingestion.Safe(inner).Ingest(cmd.Context(), upload)
	if err != nil {
		return err
	}

	jsonBytes, err := json.MarshalIndent(parsed, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal resume: %w", err)
	}
	if err := schemas.ValidateParsedResume(jsonBytes); err != nil {
		return fmt.Errorf("ingested resume failed schema validation: %w", err)
	}

	if cfg.Verbose {
		metadata, err := ingestion.NewMetadata(upload, time.Now()).ToJSON()
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "%s\n", metadata)
		observability.NewPrinter(os.Stderr).PrintParsedResume(parsed)
	}
	return writeOutput(ingestOutput, append(jsonBytes, '\n'))
}
