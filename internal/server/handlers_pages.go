package server

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"log"
	"net/http"
	"sync"

	"github.com/jonathan/candidate-profile/internal/form"
	"github.com/jonathan/candidate-profile/internal/ingestion"
	"github.com/jonathan/candidate-profile/internal/profile"
	"github.com/jonathan/candidate-profile/internal/rendering"
	"github.com/jonathan/candidate-profile/internal/workflow"
)

// sessionCookie carries the workflow session ID.
const sessionCookie = "cp_session"

var errNothingToExport = errors.New("no candidate profile to export")

//go:embed templates/*.tmpl
var pageFS embed.FS

var (
	pageOnce sync.Once
	pageTmpl *template.Template
	pageErr  error
)

// inputField is what the "input" partial renders.
type inputField struct {
	Name  string
	Label string
	Value string
	Error string
}

func pageTemplate() (*template.Template, error) {
	pageOnce.Do(func() {
		pageTmpl, pageErr = template.New("pages").Funcs(template.FuncMap{
			"expField":  form.ExperienceField,
			"eduField":  form.EducationField,
			"fit5Field": form.Fit5Field,
			"field": func(v *form.View, name, label string) inputField {
				return inputField{Name: name, Label: label, Value: v.Get(name), Error: v.Error(name)}
			},
		}).ParseFS(pageFS, "templates/*.tmpl")
		if pageErr != nil {
			pageErr = &rendering.TemplateError{Template: "page", Message: "failed to parse template", Cause: pageErr}
		}
	})
	return pageTmpl, pageErr
}

// pageData is the workflow page model.
type pageData struct {
	State       string
	View        workflow.View
	Status      string
	UploadError string
	Form        *form.View
	Preview     template.HTML
	Filename    string
}

// session returns the caller's workflow session, starting a new one and
// setting the cookie when there is none.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *workflow.Session {
	var id string
	if c, err := r.Cookie(sessionCookie); err == nil {
		id = c.Value
	}

	sess, created := s.sessions.GetOrCreate(id)
	if created {
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    sess.ID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return sess
}

// renderPage renders the workflow page for sess. Sections not supplied in
// data are derived from the session.
func (s *Server) renderPage(w http.ResponseWriter, status int, sess *workflow.Session, data *pageData) {
	data.State = sess.State.String()
	data.View = sess.View()

	if data.View.ShowForm && data.Form == nil {
		data.Form = form.NewView(form.Defaults(sess.Parsed, sess.Form))
		if sess.Form == nil {
			data.Status = statusProcessed
		}
	}

	if data.View.ShowPreview && sess.Form != nil {
		var buf bytes.Buffer
		if err := rendering.RenderPreviewHTML(&buf, profile.Build(sess.Form)); err != nil {
			s.pageError(w, err)
			return
		}
		data.Preview = template.HTML(buf.String()) //nolint:gosec // produced by html/template
		data.Filename = profile.ArtifactName(sess.Form.FullName, ".pdf")
	}

	tmpl, err := pageTemplate()
	if err != nil {
		s.pageError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "page", data); err != nil {
		s.pageError(w, &rendering.TemplateError{Template: "page", Message: "failed to execute template", Cause: err})
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes()) //nolint:errcheck
}

// pageError writes a plain-text error for browser routes.
func (s *Server) pageError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	message := UserMessage(err)
	if errors.Is(err, errNothingToExport) {
		status, message = http.StatusConflict, "There is no candidate profile to export yet"
	}
	if status >= http.StatusInternalServerError {
		log.Printf("[workflow] Request failed: %v", err)
	}
	http.Error(w, message, status)
}

// redirectHome finishes a successful POST (post/redirect/get).
func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleHome renders the page for the current workflow state.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, http.StatusOK, s.session(w, r), &pageData{})
}

// handleUpload ingests a resume into the session. Failures are shown inline
// on the uploader.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)

	upload, closer, err := s.readUpload(w, r)
	if err != nil {
		s.renderUploadError(w, sess, err)
		return
	}
	defer closer.Close()

	parsed, err := s.ingester.Ingest(r.Context(), upload)
	if err != nil {
		s.renderUploadError(w, sess, err)
		return
	}

	if _, err := s.sessions.Update(sess.ID, func(x *workflow.Session) error {
		return x.Ingested(parsed)
	}); err != nil {
		s.pageError(w, err)
		return
	}
	log.Printf("[workflow] Session %s ingested %q", sess.ID, upload.Filename)
	redirectHome(w, r)
}

func (s *Server) renderUploadError(w http.ResponseWriter, sess *workflow.Session, err error) {
	message := UserMessage(err)
	if errors.Is(err, ingestion.ErrNoFileProvided) {
		message = msgSelectFile
	}
	if HTTPStatus(err) >= http.StatusInternalServerError {
		log.Printf("[workflow] Upload failed: %v", err)
	}
	s.renderPage(w, HTTPStatus(err), sess, &pageData{UploadError: message})
}

// handleSubmitForm validates the candidate form and moves to the preview.
// Invalid submissions re-render the form with the submitted values.
func (s *Server) handleSubmitForm(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if _, err := workflow.Next(sess.State, workflow.EventSubmitted); err != nil {
		s.pageError(w, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		s.pageError(w, errInvalidBody)
		return
	}

	base := form.Defaults(sess.Parsed, sess.Form)
	data, errs := form.Decode(r.PostForm, base)
	if len(errs) > 0 {
		s.renderPage(w, http.StatusUnprocessableEntity, sess, &pageData{
			Form: form.NewInvalidView(r.PostForm, errs, base),
		})
		return
	}

	if _, err := s.sessions.Update(sess.ID, func(x *workflow.Session) error {
		return x.Submitted(data)
	}); err != nil {
		s.pageError(w, err)
		return
	}
	redirectHome(w, r)
}

// handleEdit returns to the form with the current record.
func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, (*workflow.Session).Edit)
}

// handleGenerate moves to the export step.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, (*workflow.Session).GeneratePDF)
}

// handleRestart discards the session data and returns to the uploader.
func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, func(x *workflow.Session) error {
		x.Restart()
		return nil
	})
}

func (s *Server) transition(w http.ResponseWriter, r *http.Request, fn func(*workflow.Session) error) {
	sess := s.session(w, r)
	if _, err := s.sessions.Update(sess.ID, fn); err != nil {
		s.pageError(w, err)
		return
	}
	redirectHome(w, r)
}

// exportable reports whether the session has a previewed record. Nothing is
// exportable while the record is being edited.
func exportable(sess *workflow.Session) bool {
	return sess.Form != nil && sess.View().ShowPreview
}

// handleDownloadPDF renders the session's record as a PDF.
func (s *Server) handleDownloadPDF(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if !exportable(sess) {
		s.pageError(w, errNothingToExport)
		return
	}

	artifact, err := s.documents.RenderPDF(r.Context(), sess.Form)
	if err != nil {
		log.Printf("[render] PDF generation failed: %v", err)
		http.Error(w, msgRenderFailed, http.StatusInternalServerError)
		return
	}
	writeArtifact(w, artifact)
}

// handleDownloadLaTeX renders the session's record as LaTeX source.
func (s *Server) handleDownloadLaTeX(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if !exportable(sess) {
		s.pageError(w, errNothingToExport)
		return
	}

	artifact, err := s.documents.RenderLaTeX(sess.Form)
	if err != nil {
		s.pageError(w, err)
		return
	}
	writeArtifact(w, artifact)
}
