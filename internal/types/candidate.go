package types

import "slices"

// SchemaVersion tags every CandidateFormData record. Only the FIT 5 rubric
// revision is accepted; the older culturalFit (1-5) shape is rejected.
const SchemaVersion = "fit5/v1"

// EnglishLevel is the self-reported English proficiency of a candidate.
type EnglishLevel string

// Supported English levels, most to least proficient.
const (
	EnglishNative       EnglishLevel = "Native"
	EnglishFluent       EnglishLevel = "Fluent"
	EnglishAdvanced     EnglishLevel = "Advanced"
	EnglishIntermediate EnglishLevel = "Intermediate"
	EnglishBasic        EnglishLevel = "Basic"
)

// EnglishLevels lists every accepted level in display order.
var EnglishLevels = []EnglishLevel{
	EnglishNative,
	EnglishFluent,
	EnglishAdvanced,
	EnglishIntermediate,
	EnglishBasic,
}

// Valid reports whether l is one of EnglishLevels.
func (l EnglishLevel) Valid() bool {
	for _, level := range EnglishLevels {
		if l == level {
			return true
		}
	}
	return false
}

// FIT 5 score bounds
const (
	Fit5Min     = 7
	Fit5Max     = 10
	Fit5Default = 8
)

// Fit5Trait names one dimension of the FIT 5 rubric.
type Fit5Trait string

// The five traits, in display order.
const (
	TraitOwnership     Fit5Trait = "ownership"
	TraitCollaboration Fit5Trait = "collaboration"
	TraitImpact        Fit5Trait = "impact"
	TraitTenacity      Fit5Trait = "tenacity"
	TraitCuriosity     Fit5Trait = "curiosity"
)

// Fit5Traits lists the rubric traits in display order.
var Fit5Traits = []Fit5Trait{
	TraitOwnership,
	TraitCollaboration,
	TraitImpact,
	TraitTenacity,
	TraitCuriosity,
}

// Label returns the display label of the trait.
func (t Fit5Trait) Label() string {
	switch t {
	case TraitOwnership:
		return "Ownership"
	case TraitCollaboration:
		return "Collaboration"
	case TraitImpact:
		return "Impact"
	case TraitTenacity:
		return "Tenacity"
	case TraitCuriosity:
		return "Curiosity"
	}
	return string(t)
}

// Fit5Scores holds one score per trait, each in [Fit5Min, Fit5Max].
type Fit5Scores struct {
	Ownership     int `json:"ownership"`
	Collaboration int `json:"collaboration"`
	Impact        int `json:"impact"`
	Tenacity      int `json:"tenacity"`
	Curiosity     int `json:"curiosity"`
}

// DefaultFit5 returns scores with every trait at Fit5Default.
func DefaultFit5() Fit5Scores {
	return Fit5Scores{
		Ownership:     Fit5Default,
		Collaboration: Fit5Default,
		Impact:        Fit5Default,
		Tenacity:      Fit5Default,
		Curiosity:     Fit5Default,
	}
}

// Score returns the score for a trait, or 0 for an unknown trait.
func (s Fit5Scores) Score(t Fit5Trait) int {
	switch t {
	case TraitOwnership:
		return s.Ownership
	case TraitCollaboration:
		return s.Collaboration
	case TraitImpact:
		return s.Impact
	case TraitTenacity:
		return s.Tenacity
	case TraitCuriosity:
		return s.Curiosity
	}
	return 0
}

// SetScore assigns the score for a trait. Unknown traits are ignored.
func (s *Fit5Scores) SetScore(t Fit5Trait, score int) {
	switch t {
	case TraitOwnership:
		s.Ownership = score
	case TraitCollaboration:
		s.Collaboration = score
	case TraitImpact:
		s.Impact = score
	case TraitTenacity:
		s.Tenacity = score
	case TraitCuriosity:
		s.Curiosity = score
	}
}

// CandidateFormData is the recruiter-completed assessment record.
// Experience and Education keep the length and order they had at ingestion.
type CandidateFormData struct {
	SchemaVersion string `json:"schemaVersion"`

	FullName           string `json:"fullName"`
	Email              string `json:"email,omitempty"`
	Phone              string `json:"phone,omitempty"`
	Location           string `json:"location,omitempty"`
	PositionName       string `json:"positionName"`
	CountryOfResidence string `json:"countryOfResidence"`
	YearsOfExperience  int    `json:"yearsOfExperience"`

	EnglishLevel   EnglishLevel `json:"englishLevel"`
	Fit5           Fit5Scores   `json:"fit5"`
	InterviewNotes string       `json:"interviewNotes"`

	Experience []Experience `json:"experience"`
	Education  []Education  `json:"education,omitempty"`

	PortfolioURL string `json:"portfolioUrl,omitempty"`
	LinkedinURL  string `json:"linkedinUrl,omitempty"`
	GithubURL    string `json:"githubUrl,omitempty"`
}

// Clone returns a deep copy of the record.
func (d *CandidateFormData) Clone() *CandidateFormData {
	if d == nil {
		return nil
	}
	out := *d
	out.Experience = slices.Clone(d.Experience)
	out.Education = slices.Clone(d.Education)
	return &out
}
