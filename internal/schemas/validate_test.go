package schemas

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/candidate-profile/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const simpleSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["name"],
	"properties": {
		"name": {"type": "string"}
	}
}`

func validCandidate() *types.CandidateFormData {
	return &types.CandidateFormData{
		SchemaVersion:      types.SchemaVersion,
		FullName:           "Jane Doe",
		PositionName:       "Backend Developer",
		CountryOfResidence: "Portugal",
		YearsOfExperience:  4,
		EnglishLevel:       types.EnglishAdvanced,
		Fit5:               types.DefaultFit5(),
		InterviewNotes:     "Solid.",
		Experience: []types.Experience{
			{Title: "Developer", Company: "Acme", DateRange: "2021 - Present", Description: "APIs."},
		},
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValidateJSON_ValidJSON(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "schema.json", simpleSchema)
	jsonPath := writeFile(t, dir, "doc.json", `{"name": "test"}`)

	assert.NoError(t, ValidateJSON(schemaPath, jsonPath))
}

func TestValidateJSON_InvalidJSON_MissingField(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "schema.json", simpleSchema)
	jsonPath := writeFile(t, dir, "doc.json", `{"age": 30}`)

	err := ValidateJSON(schemaPath, jsonPath)
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateJSON_NonExistentFiles(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "schema.json", simpleSchema)
	jsonPath := writeFile(t, dir, "doc.json", `{"name": "test"}`)

	err := ValidateJSON(filepath.Join(dir, "nope.json"), jsonPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	err = ValidateJSON(schemaPath, filepath.Join(dir, "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSON_WrongType(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "schema.json", simpleSchema)
	jsonPath := writeFile(t, dir, "doc.json", `{"name": 5}`)

	err := ValidateJSON(schemaPath, jsonPath)
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "name", validationErr.Errors[0].Field)
}

func TestValidateJSON_RootField(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "schema.json", simpleSchema)
	jsonPath := writeFile(t, dir, "doc.json", `{}`)

	err := ValidateJSON(schemaPath, jsonPath)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields(), "(root)")
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "name", Message: "is required"},
			{Field: "age", Message: "must be a number"},
		},
	}

	errorMsg := err.Error()
	assert.Contains(t, errorMsg, "validation failed")
	assert.Contains(t, errorMsg, "1. name: is required")
	assert.Contains(t, errorMsg, "2. age: must be a number")
}

func TestSchemaLoadError_Unwrap(t *testing.T) {
	cause := errors.New("bad")
	err := &SchemaLoadError{Path: "x.json", Message: "broken", Cause: cause}

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to load schema x.json: broken: bad", err.Error())
}

func TestValidateCandidateForm(t *testing.T) {
	doc, err := json.Marshal(validCandidate())
	require.NoError(t, err)
	assert.NoError(t, ValidateCandidateForm(doc))
}

func TestValidateCandidateForm_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m map[string]any)
	}{
		{"missing schema version", func(m map[string]any) { delete(m, "schemaVersion") }},
		{"wrong schema version", func(m map[string]any) { m["schemaVersion"] = "cultural-fit/v0" }},
		{"years as string", func(m map[string]any) { m["yearsOfExperience"] = "four" }},
		{"missing fit5", func(m map[string]any) { delete(m, "fit5") }},
		{"legacy cultural fit", func(m map[string]any) {
			m["culturalFit"] = map[string]any{"teamwork": 4}
		}},
		{"unknown trait", func(m map[string]any) {
			m["fit5"].(map[string]any)["leadership"] = 9
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := json.Marshal(validCandidate())
			require.NoError(t, err)

			var m map[string]any
			require.NoError(t, json.Unmarshal(raw, &m))
			tt.mutate(m)

			doc, err := json.Marshal(m)
			require.NoError(t, err)

			var validationErr *ValidationError
			assert.ErrorAs(t, ValidateCandidateForm(doc), &validationErr)
		})
	}
}

func TestValidateCandidateForm_MalformedJSON(t *testing.T) {
	err := ValidateCandidateForm([]byte(`{not json`))
	require.Error(t, err)

	var validationErr *ValidationError
	assert.False(t, errors.As(err, &validationErr))
}

func TestValidateParsedResume(t *testing.T) {
	years := 3
	resume := &types.ParsedResume{
		PersonalInfo: types.PersonalInfo{Name: "John Doe"},
		Experience: []types.Experience{
			{Title: "Developer", Company: "Startup LLC", DateRange: "2017 - 2020", Description: "Features."},
		},
		Education:         []types.Education{},
		Skills:            []string{"Go"},
		YearsOfExperience: &years,
	}
	doc, err := json.Marshal(resume)
	require.NoError(t, err)
	assert.NoError(t, ValidateParsedResume(doc))

	err = ValidateParsedResume([]byte(`{"personalInfo": {}, "experience": [], "education": [], "skills": []}`))
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)

	err = ValidateParsedResume([]byte(`{"personalInfo": {"name": "A"}, "experience": [], "education": [], "skills": [], "yearsOfExperience": -1}`))
	assert.ErrorAs(t, err, &validationErr)
}

func TestValidateDocument_UnknownSchema(t *testing.T) {
	err := ValidateDocument("missing.schema.json", []byte(`{}`))
	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}
