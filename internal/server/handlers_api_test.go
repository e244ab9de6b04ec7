package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/candidate-profile/internal/ingestion"
	"github.com/jonathan/candidate-profile/internal/rendering/pdftest"
	"github.com/jonathan/candidate-profile/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingIngester struct{ err error }

func (f failingIngester) Ingest(context.Context, *ingestion.Upload) (*types.ParsedResume, error) {
	return nil, f.err
}

type panickingIngester struct{}

func (panickingIngester) Ingest(context.Context, *ingestion.Upload) (*types.ParsedResume, error) {
	panic("extractor exploded")
}

func serve(s *Server, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func TestParseResume(t *testing.T) {
	s, _ := newTestServer(t, nil, nil)

	t.Run("acknowledges a file", func(t *testing.T) {
		body, ct := multipartFile(t, "resume.pdf", "application/pdf", pdftest.Build(1))
		w := serve(s, http.MethodPost, "/api/parse-resume", body, ct)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeBody(t, w)
		assert.Equal(t, true, resp["success"])
		assert.Equal(t, "File received successfully", resp["message"])
	})

	t.Run("any file type is acknowledged", func(t *testing.T) {
		body, ct := multipartFile(t, "notes.txt", "text/plain", []byte("hello"))
		w := serve(s, http.MethodPost, "/api/parse-resume", body, ct)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing file", func(t *testing.T) {
		body, ct := multipartWithoutFile(t)
		w := serve(s, http.MethodPost, "/api/parse-resume", body, ct)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "No resume file provided", decodeBody(t, w)["error"])
	})

	t.Run("not multipart", func(t *testing.T) {
		w := serve(s, http.MethodPost, "/api/parse-resume", strings.NewReader("{}"), "application/json")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unreadable multipart body", func(t *testing.T) {
		w := serve(s, http.MethodPost, "/api/parse-resume", strings.NewReader("garbage"), "multipart/form-data; boundary=xyz")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Failed to process request", decodeBody(t, w)["error"])
	})
}

func TestIngest(t *testing.T) {
	t.Run("pdf upload", func(t *testing.T) {
		s, _ := newTestServer(t, nil, nil)
		body, ct := multipartFile(t, "john_doe_resume.pdf", "application/pdf", pdftest.Build(1))
		w := serve(s, http.MethodPost, "/api/ingest", body, ct)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var parsed types.ParsedResume
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
		assert.Equal(t, "John Doe", parsed.PersonalInfo.Name)
		assert.NotEmpty(t, parsed.Experience)
	})

	t.Run("generative ingester derives the name from the file", func(t *testing.T) {
		ingester, err := ingestion.NewIngester(ingestion.ModeGenerative, 0)
		require.NoError(t, err)
		s, _ := newTestServer(t, ingester, nil)

		body, ct := multipartFile(t, "jane_doe_resume.pdf", "application/pdf", pdftest.Build(1))
		w := serve(s, http.MethodPost, "/api/ingest", body, ct)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var parsed types.ParsedResume
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
		assert.Equal(t, "Jane Doe", parsed.PersonalInfo.Name)
		assert.GreaterOrEqual(t, len(parsed.Experience), 1)
	})

	tests := []struct {
		name     string
		ingester ingestion.Ingester
		body     func(t *testing.T) (*bytes.Buffer, string)
		status   int
		message  string
	}{
		{
			name: "non-pdf rejected",
			body: func(t *testing.T) (*bytes.Buffer, string) {
				return multipartFile(t, "resume.docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", []byte("PK"))
			},
			status:  http.StatusUnsupportedMediaType,
			message: "Please upload a PDF file",
		},
		{
			name:    "missing file",
			body:    multipartWithoutFile,
			status:  http.StatusBadRequest,
			message: "No resume file provided",
		},
		{
			name:     "unexpected ingester error",
			ingester: failingIngester{err: errors.New("disk on fire")},
			body: func(t *testing.T) (*bytes.Buffer, string) {
				return multipartFile(t, "resume.pdf", "application/pdf", pdftest.Build(1))
			},
			status:  http.StatusInternalServerError,
			message: "An error occurred while processing the resume",
		},
		{
			name:     "ingester panic",
			ingester: panickingIngester{},
			body: func(t *testing.T) (*bytes.Buffer, string) {
				return multipartFile(t, "resume.pdf", "application/pdf", pdftest.Build(1))
			},
			status:  http.StatusInternalServerError,
			message: "An error occurred while processing the resume",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestServer(t, tt.ingester, nil)
			body, ct := tt.body(t)
			w := serve(s, http.MethodPost, "/api/ingest", body, ct)

			assert.Equal(t, tt.status, w.Code)
			resp := decodeBody(t, w)
			assert.Equal(t, tt.message, resp["error"])
			assert.NotContains(t, w.Body.String(), "disk on fire")
		})
	}
}

func TestIngestStream(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		s, _ := newTestServer(t, nil, nil)
		body, ct := multipartFile(t, "resume.pdf", "application/pdf", pdftest.Build(1))
		w := serve(s, http.MethodPost, "/api/ingest/stream", body, ct)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))

		stream := w.Body.String()
		processing := strings.Index(stream, "Processing resume...")
		processed := strings.Index(stream, "Resume processed successfully!")
		result := strings.Index(stream, "event: result")
		require.NotEqual(t, -1, processing)
		require.NotEqual(t, -1, processed)
		require.NotEqual(t, -1, result)
		assert.Less(t, processing, processed)
		assert.Less(t, processed, result)
		assert.Contains(t, stream, `"name":"John Doe"`)
	})

	t.Run("invalid type streams an error", func(t *testing.T) {
		s, _ := newTestServer(t, nil, nil)
		body, ct := multipartFile(t, "photo.png", "image/png", []byte{0x89, 'P', 'N', 'G'})
		w := serve(s, http.MethodPost, "/api/ingest/stream", body, ct)

		stream := w.Body.String()
		assert.Contains(t, stream, "event: error")
		assert.Contains(t, stream, "Please upload a PDF file")
		assert.NotContains(t, stream, "event: result")
	})

	t.Run("missing file is a plain JSON error", func(t *testing.T) {
		s, _ := newTestServer(t, nil, nil)
		body, ct := multipartWithoutFile(t)
		w := serve(s, http.MethodPost, "/api/ingest/stream", body, ct)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "No resume file provided", decodeBody(t, w)["error"])
	})
}

func TestValidateProfile(t *testing.T) {
	s, _ := newTestServer(t, nil, nil)

	t.Run("valid record", func(t *testing.T) {
		w := serve(s, http.MethodPost, "/api/profile/validate", candidateJSON(t, validCandidate()), "application/json")
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, true, decodeBody(t, w)["valid"])
	})

	t.Run("zero years of experience is accepted", func(t *testing.T) {
		data := validCandidate()
		data.YearsOfExperience = 0
		w := serve(s, http.MethodPost, "/api/profile/validate", candidateJSON(t, data), "application/json")
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	t.Run("rule failures", func(t *testing.T) {
		data := validCandidate()
		data.PositionName = ""
		data.YearsOfExperience = -1
		data.Fit5.Curiosity = 6
		data.LinkedinURL = "not a url"

		w := serve(s, http.MethodPost, "/api/profile/validate", candidateJSON(t, data), "application/json")
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

		resp := decodeBody(t, w)
		assert.Equal(t, false, resp["valid"])
		errs, ok := resp["errors"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Position name is required", errs["positionName"])
		assert.Equal(t, "Must be a positive number", errs["yearsOfExperience"])
		assert.Equal(t, "Score must be between 7 and 10", errs["fit5.curiosity"])
		assert.Equal(t, "Must be a valid URL", errs["linkedinUrl"])
	})

	t.Run("malformed JSON", func(t *testing.T) {
		w := serve(s, http.MethodPost, "/api/profile/validate", strings.NewReader("{not json"), "application/json")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid request body", decodeBody(t, w)["error"])
	})

	t.Run("legacy culturalFit shape is rejected by schema", func(t *testing.T) {
		legacy := `{
			"fullName": "Jane Doe",
			"positionName": "Engineer",
			"countryOfResidence": "Canada",
			"yearsOfExperience": 3,
			"englishLevel": "Fluent",
			"culturalFit": {"ownership": 4},
			"interviewNotes": "ok",
			"experience": []
		}`
		w := serve(s, http.MethodPost, "/api/profile/validate", strings.NewReader(legacy), "application/json")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeBody(t, w), "errors")
	})
}

func TestPreviewProfile(t *testing.T) {
	s, _ := newTestServer(t, nil, nil)

	w := serve(s, http.MethodPost, "/api/profile/preview", candidateJSON(t, validCandidate()), "application/json")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")

	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)
	assert.Equal(t, "John Doe", doc.Find(".profile-name").Text())
	assert.Equal(t, 2, doc.Find(".experience-entry").Length())
	assert.Zero(t, doc.Find(".profile-link").Length(), "no links were entered")
	assert.NotContains(t, doc.Text(), "LinkedIn")
}

func TestProfilePDF(t *testing.T) {
	t.Run("attachment", func(t *testing.T) {
		s, pdf := newTestServer(t, nil, nil)
		w := serve(s, http.MethodPost, "/api/profile/pdf", candidateJSON(t, validCandidate()), "application/json")

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename=John_Doe_Resume.pdf`, w.Header().Get("Content-Disposition"))
		assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))

		calls := pdf.Calls()
		require.Len(t, calls, 1)
		assert.Contains(t, calls[0], "John Doe")
	})

	t.Run("render failure", func(t *testing.T) {
		s, pdf := newTestServer(t, nil, nil)
		pdf.Err = errors.New("chrome not found")

		w := serve(s, http.MethodPost, "/api/profile/pdf", candidateJSON(t, validCandidate()), "application/json")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Failed to generate PDF", decodeBody(t, w)["error"])
	})

	t.Run("corrupt output", func(t *testing.T) {
		s, pdf := newTestServer(t, nil, nil)
		pdf.Output = []byte("<html>not a pdf</html>")

		w := serve(s, http.MethodPost, "/api/profile/pdf", candidateJSON(t, validCandidate()), "application/json")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Failed to generate PDF", decodeBody(t, w)["error"])
	})

	t.Run("invalid record is not rendered", func(t *testing.T) {
		s, pdf := newTestServer(t, nil, nil)
		data := validCandidate()
		data.FullName = ""

		w := serve(s, http.MethodPost, "/api/profile/pdf", candidateJSON(t, data), "application/json")
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Empty(t, pdf.Calls())
	})
}

func TestProfileLaTeX(t *testing.T) {
	s, _ := newTestServer(t, nil, nil)
	data := validCandidate()
	data.FullName = "Ana  María Ruiz"

	w := serve(s, http.MethodPost, "/api/profile/latex", candidateJSON(t, data), "application/json")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/x-tex", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "Ana_Mar")
	assert.Contains(t, w.Body.String(), `\documentclass`)
	assert.Contains(t, w.Body.String(), "Staff Engineer")
}
