// Package workflow models the recruiter's path through a candidate
// profile: upload, form, preview and export.
package workflow

import (
	"fmt"
	"time"

	"github.com/jonathan/candidate-profile/internal/types"
)

// State is a step of the workflow.
type State int

// Workflow states
const (
	Uploading State = iota
	Forming
	Previewing
	Exporting
)

func (s State) String() string {
	switch s {
	case Uploading:
		return "uploading"
	case Forming:
		return "forming"
	case Previewing:
		return "previewing"
	case Exporting:
		return "exporting"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Event triggers a transition.
type Event string

// Workflow events
const (
	EventIngested    Event = "ingested"
	EventSubmitted   Event = "submitted"
	EventGeneratePDF Event = "generate_pdf"
	EventEdit        Event = "edit"
	EventRestart     Event = "restart"
)

var transitions = map[Event]map[State]State{
	EventIngested: {
		Uploading:  Forming,
		Forming:    Forming,
		Previewing: Forming,
		Exporting:  Forming,
	},
	EventSubmitted: {
		Forming: Previewing,
	},
	EventGeneratePDF: {
		Previewing: Exporting,
		Exporting:  Exporting,
	},
	EventEdit: {
		Previewing: Forming,
		Exporting:  Forming,
	},
	EventRestart: {
		Uploading:  Uploading,
		Forming:    Uploading,
		Previewing: Uploading,
		Exporting:  Uploading,
	},
}

// TransitionError is returned when an event is not valid in the current state.
type TransitionError struct {
	From  State
	Event Event
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid transition: %s while %s", e.Event, e.From)
}

// Next returns the state reached from s on event.
func Next(s State, event Event) (State, error) {
	to, ok := transitions[event][s]
	if !ok {
		return s, &TransitionError{From: s, Event: event}
	}
	return to, nil
}

// Session is one recruiter's in-progress workflow. Nothing in it is persisted.
type Session struct {
	ID        string
	State     State
	Parsed    *types.ParsedResume
	Form      *types.CandidateFormData
	UpdatedAt time.Time
}

func (s *Session) apply(event Event) error {
	to, err := Next(s.State, event)
	if err != nil {
		return err
	}
	s.State = to
	return nil
}

// Ingested stores a freshly parsed resume. Any earlier resume and form
// data are discarded.
func (s *Session) Ingested(parsed *types.ParsedResume) error {
	if err := s.apply(EventIngested); err != nil {
		return err
	}
	s.Parsed = parsed
	s.Form = nil
	return nil
}

// Submitted stores a validated form record and moves to the preview.
func (s *Session) Submitted(data *types.CandidateFormData) error {
	if err := s.apply(EventSubmitted); err != nil {
		return err
	}
	s.Form = data
	return nil
}

// GeneratePDF marks the document as exported. The preview stays visible.
func (s *Session) GeneratePDF() error {
	return s.apply(EventGeneratePDF)
}

// Edit returns to the form. The current record is kept so the form can
// be pre-filled from it.
func (s *Session) Edit() error {
	return s.apply(EventEdit)
}

// Restart discards all data and returns to the uploader.
func (s *Session) Restart() {
	_ = s.apply(EventRestart)
	s.Parsed = nil
	s.Form = nil
}

// View describes which parts of the workflow page are visible.
type View struct {
	ShowUploader bool
	ShowForm     bool
	ShowPreview  bool
	ShowDownload bool
}

// View returns the visible sections for the current state.
func (s *Session) View() View {
	return View{
		ShowUploader: s.State == Uploading,
		ShowForm:     s.State == Forming,
		ShowPreview:  s.State == Previewing || s.State == Exporting,
		ShowDownload: s.State == Exporting,
	}
}

// Clone returns a deep copy of the session.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := *s
	out.Parsed = s.Parsed.Clone()
	out.Form = s.Form.Clone()
	return &out
}
