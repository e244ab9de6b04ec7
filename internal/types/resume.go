// Package types provides type definitions for structured data used throughout the candidate-profile system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "slices"

// ParsedResume is the structured record produced by resume ingestion.
type ParsedResume struct {
	PersonalInfo      PersonalInfo `json:"personalInfo"`
	Experience        []Experience `json:"experience"`
	Education         []Education  `json:"education"`
	Skills            []string     `json:"skills"`
	YearsOfExperience *int         `json:"yearsOfExperience,omitempty"`
}

// PersonalInfo holds free-text contact details. Any field may be empty.
type PersonalInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

// Experience is a single work history entry.
// DateRange is free text such as "2020 - Present".
type Experience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	DateRange   string `json:"dateRange"`
	Description string `json:"description"`
}

// Education is a single education entry
type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	DateRange   string `json:"dateRange"`
}

// Clone returns a deep copy of the resume.
func (r *ParsedResume) Clone() *ParsedResume {
	if r == nil {
		return nil
	}
	out := *r
	out.Experience = slices.Clone(r.Experience)
	out.Education = slices.Clone(r.Education)
	out.Skills = slices.Clone(r.Skills)
	if r.YearsOfExperience != nil {
		years := *r.YearsOfExperience
		out.YearsOfExperience = &years
	}
	return &out
}
