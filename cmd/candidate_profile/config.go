package main

import (
	"fmt"
	"os"

	"github.com/jonathan/candidate-profile/internal/config"
	"github.com/jonathan/candidate-profile/internal/rendering"
)

// loadConfig resolves the effective configuration: file, then defaults,
// then environment. Flag overrides are applied by each command.
func loadConfig(path string, getenv func(string) string) (*config.Config, error) {
	cfg := &config.Config{}
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	merged := cfg.MergeWithDefaults(config.Defaults())
	if err := merged.ApplyEnv(getenv); err != nil {
		return nil, err
	}
	if verbose {
		merged.Verbose = true
	}
	if err := merged.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &merged, nil
}

// newPDFRenderer builds the headless Chrome backend from cfg.
func newPDFRenderer(cfg *config.Config) *rendering.ChromedpRenderer {
	pdf := rendering.NewChromedpRenderer(cfg.ChromePath, cfg.RenderTimeout.Std())
	pdf.Verbose = cfg.Verbose
	return pdf
}

// writeOutput writes data to path, or to stdout when path is empty or "-".
func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
