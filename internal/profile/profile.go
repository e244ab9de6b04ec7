// Package profile builds the section model shared by every candidate
// profile renderer (screen preview, print document, LaTeX source).
package profile

import (
	"fmt"
	"strings"

	"github.com/jonathan/candidate-profile/internal/types"
)

// Profile is the renderer-neutral layout of a candidate profile.
// Optional values that are empty never appear: their items are skipped
// and a section with no items is left nil.
type Profile struct {
	Name       string
	Contact    []string
	Links      []Link
	Assessment []Row
	Fit5       []Score
	Notes      string
	Experience []types.Experience
	Education  []types.Education
}

// Link is a labelled external URL.
type Link struct {
	Label string
	URL   string
}

// Row is a label/value line in the assessment section.
type Row struct {
	Label string
	Value string
}

// Score is a FIT 5 trait score out of types.Fit5Max.
type Score struct {
	Trait string
	Value int
	Max   int
}

// Section headings shared by all renderers.
const (
	HeadingAssessment = "Candidate Assessment"
	HeadingFit5       = "FIT 5 Assessment"
	HeadingNotes      = "Interview Notes"
	HeadingExperience = "Work Experience"
	HeadingEducation  = "Education"
)

// Build projects a form record onto the profile layout. data is not modified.
// Text values are carried verbatim; link URLs are trimmed.
func Build(data *types.CandidateFormData) *Profile {
	p := &Profile{
		Name:  data.FullName,
		Notes: data.InterviewNotes,
	}

	p.Contact = nonEmpty(data.CountryOfResidence, data.Email, data.Phone)

	for _, link := range []Link{
		{Label: "LinkedIn", URL: data.LinkedinURL},
		{Label: "GitHub", URL: data.GithubURL},
		{Label: "Portfolio", URL: data.PortfolioURL},
	} {
		link.URL = strings.TrimSpace(link.URL)
		if link.URL != "" {
			p.Links = append(p.Links, link)
		}
	}

	p.Assessment = []Row{
		{Label: "Position", Value: data.PositionName},
		{Label: "Experience", Value: YearsLabel(data.YearsOfExperience)},
		{Label: "Country", Value: data.CountryOfResidence},
		{Label: "English Level", Value: string(data.EnglishLevel)},
	}

	for _, trait := range types.Fit5Traits {
		p.Fit5 = append(p.Fit5, Score{
			Trait: trait.Label(),
			Value: data.Fit5.Score(trait),
			Max:   types.Fit5Max,
		})
	}

	if len(data.Experience) > 0 {
		p.Experience = append([]types.Experience(nil), data.Experience...)
	}
	if len(data.Education) > 0 {
		p.Education = append([]types.Education(nil), data.Education...)
	}
	return p
}

// YearsLabel renders a year count as shown on the profile, e.g. "5 years".
func YearsLabel(years int) string {
	return fmt.Sprintf("%d years", years)
}

// ArtifactName returns the download file name for a candidate, replacing
// whitespace runs in the name with underscores.
func ArtifactName(fullName, extension string) string {
	base := strings.Join(strings.Fields(fullName), "_")
	if base == "" {
		base = "Candidate"
	}
	return base + "_Resume" + extension
}

func nonEmpty(values ...string) []string {
	var out []string
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
