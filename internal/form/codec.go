package form

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/jonathan/candidate-profile/internal/types"
)

// Defaults returns the initial form record. When existing is non-nil it
// wins wholesale (the edit-return path) so prior edits, including edits
// to experience entries, survive. Otherwise carried-over fields come from
// parsed and recruiter-entered fields get fixed defaults.
func Defaults(parsed *types.ParsedResume, existing *types.CandidateFormData) *types.CandidateFormData {
	if existing != nil {
		data := existing.Clone()
		data.SchemaVersion = types.SchemaVersion
		return data
	}

	data := &types.CandidateFormData{
		SchemaVersion: types.SchemaVersion,
		Fit5:          types.DefaultFit5(),
		Experience:    []types.Experience{},
	}
	if parsed == nil {
		return data
	}

	data.FullName = parsed.PersonalInfo.Name
	data.Email = parsed.PersonalInfo.Email
	data.Phone = parsed.PersonalInfo.Phone
	data.Location = parsed.PersonalInfo.Location
	if parsed.Experience != nil {
		data.Experience = append([]types.Experience{}, parsed.Experience...)
	}
	if len(parsed.Education) > 0 {
		data.Education = append([]types.Education{}, parsed.Education...)
	}
	if parsed.YearsOfExperience != nil {
		data.YearsOfExperience = *parsed.YearsOfExperience
	}
	return data
}

// ExperienceField returns the form field name of an experience attribute.
func ExperienceField(i int, attr string) string {
	return fmt.Sprintf("experience.%d.%s", i, attr)
}

// EducationField returns the form field name of an education attribute.
func EducationField(i int, attr string) string {
	return fmt.Sprintf("education.%d.%s", i, attr)
}

// Encode flattens data into form values. It is the inverse of Decode.
func Encode(data *types.CandidateFormData) url.Values {
	values := url.Values{}
	values.Set("fullName", data.FullName)
	values.Set("email", data.Email)
	values.Set("phone", data.Phone)
	values.Set("location", data.Location)
	values.Set("positionName", data.PositionName)
	values.Set("countryOfResidence", data.CountryOfResidence)
	values.Set("yearsOfExperience", strconv.Itoa(data.YearsOfExperience))
	values.Set("englishLevel", string(data.EnglishLevel))
	for _, trait := range types.Fit5Traits {
		values.Set(Fit5Field(trait), strconv.Itoa(data.Fit5.Score(trait)))
	}
	values.Set("interviewNotes", data.InterviewNotes)

	for i, exp := range data.Experience {
		values.Set(ExperienceField(i, "title"), exp.Title)
		values.Set(ExperienceField(i, "company"), exp.Company)
		values.Set(ExperienceField(i, "dateRange"), exp.DateRange)
		values.Set(ExperienceField(i, "description"), exp.Description)
	}
	for i, edu := range data.Education {
		values.Set(EducationField(i, "degree"), edu.Degree)
		values.Set(EducationField(i, "institution"), edu.Institution)
		values.Set(EducationField(i, "dateRange"), edu.DateRange)
	}

	values.Set("portfolioUrl", data.PortfolioURL)
	values.Set("linkedinUrl", data.LinkedinURL)
	values.Set("githubUrl", data.GithubURL)
	return values
}

// Decode converts submitted form values into a record and validates them.
// base fixes the number of experience and education entries: indexed
// values beyond its lengths are ignored and missing ones decode as empty.
// The record is returned even when validation fails.
func Decode(values url.Values, base *types.CandidateFormData) (*types.CandidateFormData, FieldErrors) {
	errs := Validate(values)

	data := &types.CandidateFormData{
		SchemaVersion:      types.SchemaVersion,
		FullName:           values.Get("fullName"),
		Email:              values.Get("email"),
		Phone:              values.Get("phone"),
		Location:           values.Get("location"),
		PositionName:       values.Get("positionName"),
		CountryOfResidence: values.Get("countryOfResidence"),
		YearsOfExperience:  atoi(values.Get("yearsOfExperience")),
		EnglishLevel:       types.EnglishLevel(values.Get("englishLevel")),
		InterviewNotes:     values.Get("interviewNotes"),
		PortfolioURL:       strings.TrimSpace(values.Get("portfolioUrl")),
		LinkedinURL:        strings.TrimSpace(values.Get("linkedinUrl")),
		GithubURL:          strings.TrimSpace(values.Get("githubUrl")),
	}
	for _, trait := range types.Fit5Traits {
		data.Fit5.SetScore(trait, atoi(values.Get(Fit5Field(trait))))
	}

	if base != nil && base.Experience != nil {
		data.Experience = make([]types.Experience, len(base.Experience))
		for i := range data.Experience {
			data.Experience[i] = types.Experience{
				Title:       values.Get(ExperienceField(i, "title")),
				Company:     values.Get(ExperienceField(i, "company")),
				DateRange:   values.Get(ExperienceField(i, "dateRange")),
				Description: values.Get(ExperienceField(i, "description")),
			}
		}
	}
	if base != nil && base.Education != nil {
		data.Education = make([]types.Education, len(base.Education))
		for i := range data.Education {
			data.Education[i] = types.Education{
				Degree:      values.Get(EducationField(i, "degree")),
				Institution: values.Get(EducationField(i, "institution")),
				DateRange:   values.Get(EducationField(i, "dateRange")),
			}
		}
	}

	return data, errs
}

// ValidateRecord runs the rule table against a typed record, as submitted
// through the JSON API.
func ValidateRecord(data *types.CandidateFormData) FieldErrors {
	if data == nil {
		return FieldErrors{"(root)": "record is required"}
	}
	return Validate(Encode(data))
}

func atoi(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}
