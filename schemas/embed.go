// Package schemas embeds the JSON Schema contracts for ParsedResume and
// CandidateFormData.
package schemas

import "embed"

// Schema file names
const (
	ParsedResume  = "parsed_resume.schema.json"
	CandidateForm = "candidate_form.schema.json"
)

//go:embed *.schema.json
var files embed.FS

// Read returns the content of an embedded schema file.
func Read(name string) ([]byte, error) {
	return files.ReadFile(name)
}

// Names lists the embedded schema files.
func Names() []string {
	return []string{ParsedResume, CandidateForm}
}
