package ingestion

import (
	"errors"
	"fmt"
)

// ErrNoFileProvided is returned when an upload carries no file.
var ErrNoFileProvided = errors.New("no resume file provided")

// InvalidFileTypeError is returned when the declared media type is not a PDF
type InvalidFileTypeError struct {
	MediaType string
}

func (e *InvalidFileTypeError) Error() string {
	if e.MediaType == "" {
		return "invalid file type: missing media type, expected application/pdf"
	}
	return fmt.Sprintf("invalid file type: %s, expected application/pdf", e.MediaType)
}

// IngestionError represents an unexpected failure while producing a ParsedResume
type IngestionError struct {
	Message string
	Cause   error
}

func (e *IngestionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("ingestion error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("ingestion error: %s", e.Message)
}

func (e *IngestionError) Unwrap() error {
	return e.Cause
}
