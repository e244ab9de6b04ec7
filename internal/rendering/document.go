package rendering

import (
	"context"
	"log"

	"github.com/jonathan/candidate-profile/internal/profile"
	"github.com/jonathan/candidate-profile/internal/types"
)

// Artifact content types
const (
	ContentTypePDF   = "application/pdf"
	ContentTypeLaTeX = "application/x-tex"
)

// Artifact is a downloadable rendered document.
type Artifact struct {
	Filename    string
	ContentType string
	Bytes       []byte
	Pages       int
}

// DocumentRenderer produces downloadable artifacts from a form record.
type DocumentRenderer struct {
	PDF PDFRenderer
}

// NewDocumentRenderer creates a DocumentRenderer over a PDF backend.
func NewDocumentRenderer(pdf PDFRenderer) *DocumentRenderer {
	return &DocumentRenderer{PDF: pdf}
}

// RenderPDF renders data as a PDF. No bytes are returned unless the whole
// document was produced and verified.
func (d *DocumentRenderer) RenderPDF(ctx context.Context, data *types.CandidateFormData) (*Artifact, error) {
	if d.PDF == nil {
		return nil, &RenderError{Message: "no PDF backend configured"}
	}

	p := profile.Build(data)
	html, err := RenderDocumentHTML(p)
	if err != nil {
		return nil, err
	}

	b, err := d.PDF.RenderHTMLToPDF(ctx, html)
	if err != nil {
		return nil, &RenderError{Message: "failed to print PDF", Cause: err}
	}

	pages, err := CountPDFPages(b)
	if err != nil {
		return nil, err
	}
	if pages > 1 {
		log.Printf("[render] Warning: profile for %q spans %d pages", p.Name, pages)
	}

	return &Artifact{
		Filename:    profile.ArtifactName(data.FullName, ".pdf"),
		ContentType: ContentTypePDF,
		Bytes:       b,
		Pages:       pages,
	}, nil
}

// RenderLaTeX renders data as LaTeX source.
func (d *DocumentRenderer) RenderLaTeX(data *types.CandidateFormData) (*Artifact, error) {
	source, err := RenderLaTeX(profile.Build(data))
	if err != nil {
		return nil, err
	}
	return &Artifact{
		Filename:    profile.ArtifactName(data.FullName, ".tex"),
		ContentType: ContentTypeLaTeX,
		Bytes:       []byte(source),
	}, nil
}
