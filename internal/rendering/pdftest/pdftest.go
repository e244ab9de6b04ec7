// Package pdftest provides in-memory PDF fixtures and a fake PDF backend
// for tests that must not depend on a Chrome installation.
package pdftest

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
)

// Build returns a minimal well-formed PDF with the given number of empty
// A4 pages.
func Build(pages int) []byte {
	var buf bytes.Buffer
	var offsets []int

	writeObj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString("%PDF-1.4\n")

	kids := make([]string, pages)
	for i := range kids {
		kids[i] = fmt.Sprintf("%d 0 R", i+3)
	}
	writeObj("<< /Type /Catalog /Pages 2 0 R >>")
	writeObj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), pages))
	for i := 0; i < pages; i++ {
		writeObj("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << >> >>")
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)
	return buf.Bytes()
}

// Renderer is a fake rendering.PDFRenderer. It records the HTML it was
// given and returns Output, or Err when set.
type Renderer struct {
	Output []byte
	Err    error

	mu    sync.Mutex
	calls []string
}

// NewRenderer returns a Renderer producing a single-page PDF.
func NewRenderer() *Renderer {
	return &Renderer{Output: Build(1)}
}

// RenderHTMLToPDF implements rendering.PDFRenderer.
func (r *Renderer) RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error) {
	r.mu.Lock()
	r.calls = append(r.calls, html)
	r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.Err != nil {
		return nil, r.Err
	}
	return append([]byte(nil), r.Output...), nil
}

// Calls returns the HTML documents rendered so far.
func (r *Renderer) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}
