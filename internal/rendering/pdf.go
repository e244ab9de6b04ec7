package rendering

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/ledongthuc/pdf"
)

// A4 paper size in inches
const (
	a4WidthInches  = 8.27
	a4HeightInches = 11.69
)

// DefaultPDFTimeout bounds a single headless Chrome print.
const DefaultPDFTimeout = 60 * time.Second

// PDFRenderer turns an HTML document into PDF bytes.
type PDFRenderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

// ChromedpRenderer prints HTML to PDF with headless Chrome.
// Requires Chrome/Chromium to be installed on the system.
type ChromedpRenderer struct {
	// ExecPath overrides the Chrome binary. Empty uses chromedp's lookup.
	ExecPath string
	Timeout  time.Duration
	Verbose  bool
}

// NewChromedpRenderer creates a renderer for the given Chrome binary.
func NewChromedpRenderer(execPath string, timeout time.Duration) *ChromedpRenderer {
	if timeout <= 0 {
		timeout = DefaultPDFTimeout
	}
	return &ChromedpRenderer{ExecPath: execPath, Timeout: timeout}
}

// RenderHTMLToPDF loads html from a temporary file and prints it on A4.
func (r *ChromedpRenderer) RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(r.ExecPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultPDFTimeout
	}
	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	tmpDir, err := os.MkdirTemp("", "candidate-profile-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write HTML: %w", err)
	}

	if r.Verbose {
		log.Printf("[render] Printing %s with headless Chrome", htmlPath)
	}

	var pdfBuf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(a4WidthInches).
				WithPaperHeight(a4HeightInches).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("browser printing failed: %w", err)
	}

	if r.Verbose {
		log.Printf("[render] Printed PDF: %d bytes", len(pdfBuf))
	}
	return pdfBuf, nil
}

// CountPDFPages checks that b is a readable PDF and returns its page count.
func CountPDFPages(b []byte) (pages int, err error) {
	// the reader panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			pages = 0
			err = &RenderError{Message: "failed to read PDF", Cause: fmt.Errorf("%v", r)}
		}
	}()

	if !bytes.HasPrefix(b, []byte("%PDF")) {
		return 0, &RenderError{Message: "output is not a PDF"}
	}

	reader, err := pdf.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return 0, &RenderError{Message: "failed to read PDF", Cause: err}
	}

	pages = reader.NumPage()
	if pages < 1 {
		return 0, &RenderError{Message: "PDF has no pages"}
	}
	return pages, nil
}
