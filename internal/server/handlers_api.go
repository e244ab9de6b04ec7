package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"strconv"

	"github.com/jonathan/candidate-profile/internal/form"
	"github.com/jonathan/candidate-profile/internal/ingestion"
	"github.com/jonathan/candidate-profile/internal/profile"
	"github.com/jonathan/candidate-profile/internal/rendering"
	"github.com/jonathan/candidate-profile/internal/schemas"
	"github.com/jonathan/candidate-profile/internal/types"
)

const (
	maxUploadBytes = 10 << 20
	maxJSONBytes   = 1 << 20
)

// Status messages shown while a resume is ingested
const (
	statusProcessing = "Processing resume..."
	statusProcessed  = "Resume processed successfully!"
)

var errInvalidBody = errors.New("invalid request body")

// readUpload extracts the multipart "file" field. The returned closer must be
// closed once the upload has been consumed.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (*ingestion.Upload, io.Closer, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, nil, ingestion.ErrNoFileProvided
		}
		return nil, nil, fmt.Errorf("failed to parse multipart form: %w", err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil, ingestion.ErrNoFileProvided
		}
		return nil, nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	return &ingestion.Upload{
		Filename:  header.Filename,
		MediaType: header.Header.Get("Content-Type"),
		Size:      header.Size,
		Content:   file,
	}, file, nil
}

// writeError maps err to its status and user message and writes it as JSON.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[api] Request failed: %v", err)
	}

	body := map[string]any{"error": UserMessage(err)}
	var schemaErr *schemas.ValidationError
	if errors.As(err, &schemaErr) {
		body["errors"] = schemaErr.Fields()
	}
	s.jsonResponse(w, status, body)
}

// handleParseResume acknowledges an upload without reading it.
func (s *Server) handleParseResume(w http.ResponseWriter, r *http.Request) {
	upload, closer, err := s.readUpload(w, r)
	if err != nil {
		if errors.Is(err, ingestion.ErrNoFileProvided) {
			s.errorResponse(w, http.StatusBadRequest, msgNoFile)
			return
		}
		log.Printf("[parse-resume] Failed to process request: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, msgInternal)
		return
	}
	defer closer.Close()

	log.Printf("[parse-resume] Received %s", ingestion.NewMetadata(upload, s.now()))
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "File received successfully",
	})
}

// handleIngest turns an uploaded PDF into a ParsedResume.
func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	upload, closer, err := s.readUpload(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	defer closer.Close()

	parsed, err := s.ingester.Ingest(r.Context(), upload)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, parsed)
}

// handleIngestStream ingests an upload and reports progress via SSE.
func (s *Server) handleIngestStream(w http.ResponseWriter, r *http.Request) {
	upload, closer, err := s.readUpload(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	defer closer.Close()

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	if err := sse.WriteStatus(statusProcessing); err != nil {
		log.Printf("Error writing SSE event: %v", err)
		return
	}

	parsed, err := s.ingester.Ingest(r.Context(), upload)
	if err != nil {
		log.Printf("[ingest] Streaming ingest failed: %v", err)
		sse.WriteError(HTTPStatus(err), UserMessage(err))
		return
	}

	if err := sse.WriteStatus(statusProcessed); err != nil {
		log.Printf("Error writing SSE event: %v", err)
		return
	}
	if err := sse.WriteEvent(eventResult, parsed); err != nil {
		log.Printf("Error writing SSE event: %v", err)
	}
}

// decodeCandidate reads a CandidateFormData body, checking it against the
// embedded schema before decoding.
func (s *Server) decodeCandidate(w http.ResponseWriter, r *http.Request) (*types.CandidateFormData, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxJSONBytes))
	if err != nil || !json.Valid(body) {
		return nil, errInvalidBody
	}
	if err := schemas.ValidateCandidateForm(body); err != nil {
		return nil, err
	}

	var data types.CandidateFormData
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, errInvalidBody
	}
	return &data, nil
}

// decodeValidCandidate is decodeCandidate plus the form rule table. On
// failure the response has already been written.
func (s *Server) decodeValidCandidate(w http.ResponseWriter, r *http.Request) (*types.CandidateFormData, bool) {
	data, err := s.decodeCandidate(w, r)
	if err != nil {
		s.writeError(w, err)
		return nil, false
	}
	if errs := form.ValidateRecord(data); len(errs) > 0 {
		s.jsonResponse(w, http.StatusUnprocessableEntity, map[string]any{
			"valid":  false,
			"errors": errs,
		})
		return nil, false
	}
	return data, true
}

// handleValidateProfile checks a record against the schema and the form rules.
func (s *Server) handleValidateProfile(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.decodeValidCandidate(w, r); !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]bool{"valid": true})
}

// handlePreviewProfile renders the HTML preview fragment of a record.
func (s *Server) handlePreviewProfile(w http.ResponseWriter, r *http.Request) {
	data, ok := s.decodeValidCandidate(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := rendering.RenderPreviewHTML(&buf, profile.Build(data)); err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes()) //nolint:errcheck
}

// handleProfilePDF renders a record to a PDF attachment.
func (s *Server) handleProfilePDF(w http.ResponseWriter, r *http.Request) {
	data, ok := s.decodeValidCandidate(w, r)
	if !ok {
		return
	}

	artifact, err := s.documents.RenderPDF(r.Context(), data)
	if err != nil {
		log.Printf("[render] PDF generation failed: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, msgRenderFailed)
		return
	}
	writeArtifact(w, artifact)
}

// handleProfileLaTeX renders a record to a LaTeX attachment.
func (s *Server) handleProfileLaTeX(w http.ResponseWriter, r *http.Request) {
	data, ok := s.decodeValidCandidate(w, r)
	if !ok {
		return
	}

	artifact, err := s.documents.RenderLaTeX(data)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeArtifact(w, artifact)
}

// writeArtifact sends a rendered document as a download.
func writeArtifact(w http.ResponseWriter, artifact *rendering.Artifact) {
	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": artifact.Filename})
	w.Header().Set("Content-Type", artifact.ContentType)
	w.Header().Set("Content-Disposition", disposition)
	w.Header().Set("Content-Length", strconv.Itoa(len(artifact.Bytes)))
	w.WriteHeader(http.StatusOK)
	w.Write(artifact.Bytes) //nolint:errcheck
}
