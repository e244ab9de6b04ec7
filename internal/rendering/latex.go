package rendering

import (
	"strings"

	"github.com/jonathan/candidate-profile/internal/profile"
)

// RenderLaTeX renders p as a standalone LaTeX document. All user text is
// escaped with EscapeLaTeX.
func RenderLaTeX(p *profile.Profile) (string, error) {
	tmpl, err := latexTemplate()
	if err != nil {
		return "", err
	}

	var result strings.Builder
	if err := tmpl.Execute(&result, p); err != nil {
		return "", &TemplateError{Template: "profile.tex", Message: "failed to execute template", Cause: err}
	}
	return result.String(), nil
}
