package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/candidate-profile/internal/form"
	"github.com/jonathan/candidate-profile/internal/observability"
	"github.com/jonathan/candidate-profile/internal/profile"
	"github.com/jonathan/candidate-profile/internal/rendering"
	"github.com/jonathan/candidate-profile/internal/schemas"
	"github.com/jonathan/candidate-profile/internal/types"
	"github.com/spf13/cobra"
)

// Output formats for the render command
const (
	formatPDF   = "pdf"
	formatHTML  = "html"
	formatLaTeX = "tex"
)

var (
	renderInput      string
	renderOutput     string
	renderFormat     string
	renderChromePath string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a candidate profile",
	Long:  "Renders a CandidateFormData JSON file as a PDF, an HTML document or LaTeX source.",
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderInput, "in", "i", "", "Path to CandidateFormData JSON file (required)")
	renderCmd.Flags().StringVarP(&renderOutput, "out", "o", "", "Path to output file (default <Full_Name>_Resume.<format>)")
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", formatPDF, "Output format: pdf, html or tex")
	renderCmd.Flags().StringVar(&renderChromePath, "chrome-path", "", "Path to the Chrome executable used for PDF export")

	if err := renderCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark flag as required: %v", err))
	}

	rootCmd.AddCommand(renderCmd)
}

// readCandidate loads a CandidateFormData file, checking the schema and the
// form rules before decoding.
func readCandidate(path string) (*types.CandidateFormData, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read candidate file: %w", err)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("candidate file %s is not valid JSON", path)
	}
	if err := schemas.ValidateCandidateForm(body); err != nil {
		return nil, err
	}

	var data types.CandidateFormData
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("failed to decode candidate file: %w", err)
	}
	if errs := form.ValidateRecord(&data); len(errs) > 0 {
		if verbose {
			observability.NewPrinter(os.Stderr).PrintFieldErrors(errs)
		}
		return nil, errs
	}
	return &data, nil
}

func runRender(cmd *cobra.Command, _ []string) error {
	format := strings.ToLower(strings.TrimPrefix(renderFormat, "."))
	if format != formatPDF && format != formatHTML && format != formatLaTeX {
		return fmt.Errorf("unknown format %q (expected pdf, html or tex)", renderFormat)
	}

	cfg, err := loadConfig(configPath, os.Getenv)
	if err != nil {
		return err
	}
	if renderChromePath != "" {
		cfg.ChromePath = renderChromePath
	}

	data, err := readCandidate(renderInput)
	if err != nil {
		return err
	}

	var artifact *rendering.Artifact
	switch format {
	case formatHTML:
		html, err := rendering.RenderDocumentHTML(profile.Build(data))
		if err != nil {
			return err
		}
		artifact = &rendering.Artifact{
			Filename:    profile.ArtifactName(data.FullName, ".html"),
			ContentType: "text/html; charset=utf-8",
			Bytes:       []byte(html),
		}
	case formatLaTeX:
		documents := rendering.NewDocumentRenderer(nil)
		if artifact, err = documents.RenderLaTeX(data); err != nil {
			return err
		}
	default:
		if artifact, err = rendering.NewDocumentRenderer(newPDFRenderer(cfg)).RenderPDF(cmd.Context(), data); err != nil {
			return err
		}
	}

	if cfg.Verbose {
		printer := observability.NewPrinter(os.Stderr)
		printer.PrintCandidate(data)
		printer.PrintArtifact(artifact.Filename, artifact.ContentType, len(artifact.Bytes), artifact.Pages)
	}

	out := renderOutput
	if out == "" {
		out = artifact.Filename
	}
	if err := writeOutput(out, artifact.Bytes); err != nil {
		return err
	}
	if out != "-" {
		fmt.Fprintf(os.Stderr, "Wrote %s\n", out)
	}
	return nil
}
