package rendering

import (
	"bytes"
	"io"

	"github.com/jonathan/candidate-profile/internal/profile"
)

// RenderPreviewHTML writes the on-screen preview fragment for p.
func RenderPreviewHTML(w io.Writer, p *profile.Profile) error {
	tmpl, err := htmlTemplates()
	if err != nil {
		return err
	}
	if err := tmpl.ExecuteTemplate(w, "preview", p); err != nil {
		return &TemplateError{Template: "preview", Message: "failed to execute template", Cause: err}
	}
	return nil
}

// RenderDocumentHTML returns the printable A4 document for p. The output is
// a pure function of p.
func RenderDocumentHTML(p *profile.Profile) (string, error) {
	tmpl, err := htmlTemplates()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "document", p); err != nil {
		return "", &TemplateError{Template: "document", Message: "failed to execute template", Cause: err}
	}
	return buf.String(), nil
}
