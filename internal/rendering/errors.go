package rendering

import "fmt"

// TemplateError represents an error parsing or executing a profile template
type TemplateError struct {
	Template string
	Message  string
	Cause    error
}

func (e *TemplateError) Error() string {
	name := e.Template
	if name == "" {
		name = "template"
	}
	if e.Cause != nil {
		return fmt.Sprintf("template error (%s): %s: %v", name, e.Message, e.Cause)
	}
	return fmt.Sprintf("template error (%s): %s", name, e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// RenderError represents a failure producing a document artifact
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("render error: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
