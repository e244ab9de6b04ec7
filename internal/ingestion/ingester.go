// Package ingestion turns an uploaded resume into a ParsedResume.
//
// Real PDF text extraction is not performed. Two stub strategies are
// provided: a fixed fixture and a filename-keyed generator.
package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jonathan/candidate-profile/internal/types"
)

// Ingester produces a ParsedResume from an upload.
type Ingester interface {
	Ingest(ctx context.Context, upload *Upload) (*types.ParsedResume, error)
}

// Mode selects an Ingester implementation.
type Mode string

// Supported ingestion modes
const (
	ModeFixture    Mode = "fixture"
	ModeGenerative Mode = "generative"
)

// NewIngester returns the Ingester for mode. delay only applies to the
// generative mode.
func NewIngester(mode Mode, delay time.Duration) (Ingester, error) {
	switch mode {
	case ModeFixture:
		return FixtureIngester{}, nil
	case ModeGenerative, "":
		return NewGenerativeIngester(nil, delay), nil
	default:
		return nil, fmt.Errorf("unknown ingest mode: %q (expected %q or %q)", mode, ModeFixture, ModeGenerative)
	}
}

// Safe wraps an Ingester so that panics and unexpected errors surface as
// *IngestionError. ErrNoFileProvided, *InvalidFileTypeError and context
// cancellation pass through unchanged.
func Safe(inner Ingester) Ingester {
	return safeIngester{inner: inner}
}

type safeIngester struct {
	inner Ingester
}

func (s safeIngester) Ingest(ctx context.Context, upload *Upload) (parsed *types.ParsedResume, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ingest] recovered from panic: %v", r)
			parsed = nil
			err = &IngestionError{Message: "ingester panicked", Cause: fmt.Errorf("%v", r)}
		}
	}()

	parsed, err = s.inner.Ingest(ctx, upload)
	if err == nil {
		if parsed == nil {
			return nil, &IngestionError{Message: "ingester returned no resume"}
		}
		return parsed, nil
	}

	var typeErr *InvalidFileTypeError
	var ingestErr *IngestionError
	switch {
	case errors.Is(err, ErrNoFileProvided),
		errors.As(err, &typeErr),
		errors.As(err, &ingestErr),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return nil, err
	}
	return nil, &IngestionError{Message: "failed to ingest resume", Cause: err}
}
