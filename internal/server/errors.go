package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/candidate-profile/internal/form"
	"github.com/jonathan/candidate-profile/internal/ingestion"
	"github.com/jonathan/candidate-profile/internal/rendering"
	"github.com/jonathan/candidate-profile/internal/schemas"
	"github.com/jonathan/candidate-profile/internal/workflow"
)

// User-facing messages
const (
	msgNoFile          = "No resume file provided"
	msgSelectFile      = "Please select a file first"
	msgInvalidFileType = "Please upload a PDF file"
	msgIngestFailed    = "An error occurred while processing the resume"
	msgRenderFailed    = "Failed to generate PDF"
	msgInvalidBody     = "Invalid request body"
	msgInternal        = "Failed to process request"
)

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		typeErr       *ingestion.InvalidFileTypeError
		fieldErrs     form.FieldErrors
		transitionErr *workflow.TransitionError
		schemaErr     *schemas.ValidationError
	)

	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ingestion.ErrNoFileProvided), errors.Is(err, errInvalidBody):
		return http.StatusBadRequest
	case errors.As(err, &typeErr):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &fieldErrs):
		return http.StatusUnprocessableEntity
	case errors.As(err, &schemaErr):
		return http.StatusBadRequest
	case errors.As(err, &transitionErr):
		return http.StatusConflict
	case errors.Is(err, workflow.ErrSessionNotFound):
		return http.StatusNotFound
	default:
		// IngestionError, RenderError, TemplateError and anything unexpected
		return http.StatusInternalServerError
	}
}

// UserMessage returns the message shown to the user for an error. Internal
// details never leak into it.
func UserMessage(err error) string {
	var (
		typeErr       *ingestion.InvalidFileTypeError
		ingestErr     *ingestion.IngestionError
		renderErr     *rendering.RenderError
		templateErr   *rendering.TemplateError
		transitionErr *workflow.TransitionError
		schemaErr     *schemas.ValidationError
	)

	switch {
	case errors.Is(err, ingestion.ErrNoFileProvided):
		return msgNoFile
	case errors.Is(err, errInvalidBody):
		return msgInvalidBody
	case errors.As(err, &typeErr):
		return msgInvalidFileType
	case errors.As(err, &ingestErr):
		return msgIngestFailed
	case errors.As(err, &renderErr), errors.As(err, &templateErr):
		return msgRenderFailed
	case errors.As(err, &transitionErr):
		return "That action is not available right now"
	case errors.As(err, &schemaErr):
		return "Request does not match the candidate profile schema"
	default:
		return msgInternal
	}
}
