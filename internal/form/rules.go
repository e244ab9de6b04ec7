// Package form holds the candidate assessment form: defaults, the
// declarative validation rules, and conversion between HTML form values
// and CandidateFormData.
package form

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/candidate-profile/internal/types"
)

// Kind is the value type a rule checks.
type Kind int

// Rule value kinds
const (
	KindString Kind = iota
	KindInt
)

// Rule declares how one form field is validated. Tag is a
// go-playground/validator tag applied to the typed value after the
// required check; Messages maps a failing tag to the message shown.
type Rule struct {
	Field           string
	Label           string
	Kind            Kind
	Required        bool
	RequiredMessage string
	Tag             string
	Messages        map[string]string
}

const (
	msgNotNumber = "Must be a whole number"
	msgBadURL    = "Must be a valid URL"
	msgFit5Range = "Score must be between 7 and 10"
)

// Rules is the declarative rule table for the candidate form.
var Rules = buildRules()

func buildRules() []Rule {
	englishTag := "oneof="
	for i, level := range types.EnglishLevels {
		if i > 0 {
			englishTag += " "
		}
		englishTag += string(level)
	}

	rules := []Rule{
		{Field: "fullName", Label: "Full Name", Kind: KindString, Required: true, RequiredMessage: "Name is required"},
		{Field: "email", Label: "Email", Kind: KindString},
		{Field: "phone", Label: "Phone", Kind: KindString},
		{Field: "location", Label: "Location", Kind: KindString},
		{Field: "positionName", Label: "Position Name", Kind: KindString, Required: true, RequiredMessage: "Position name is required"},
		{Field: "countryOfResidence", Label: "Country of Residence", Kind: KindString, Required: true, RequiredMessage: "Country is required"},
		{
			Field: "yearsOfExperience", Label: "Years of Experience", Kind: KindInt,
			Required: true, RequiredMessage: "Years of experience is required",
			Tag: "min=0", Messages: map[string]string{"min": "Must be a positive number"},
		},
		{
			Field: "englishLevel", Label: "English Level", Kind: KindString,
			Required: true, RequiredMessage: "English level is required",
			Tag: englishTag, Messages: map[string]string{"oneof": "Select a valid English level"},
		},
	}

	for _, trait := range types.Fit5Traits {
		rules = append(rules, Rule{
			Field:           Fit5Field(trait),
			Label:           trait.Label(),
			Kind:            KindInt,
			Required:        true,
			RequiredMessage: trait.Label() + " score is required",
			Tag:             fmt.Sprintf("min=%d,max=%d", types.Fit5Min, types.Fit5Max),
			Messages:        map[string]string{"min": msgFit5Range, "max": msgFit5Range},
		})
	}

	rules = append(rules,
		Rule{Field: "interviewNotes", Label: "Interview Notes", Kind: KindString, Required: true, RequiredMessage: "Interview notes are required"},
		Rule{Field: "portfolioUrl", Label: "Portfolio URL", Kind: KindString, Tag: "url", Messages: map[string]string{"url": msgBadURL}},
		Rule{Field: "linkedinUrl", Label: "LinkedIn URL", Kind: KindString, Tag: "url", Messages: map[string]string{"url": msgBadURL}},
		Rule{Field: "githubUrl", Label: "GitHub URL", Kind: KindString, Tag: "url", Messages: map[string]string{"url": msgBadURL}},
	)
	return rules
}

// Fit5Field returns the form field name of a FIT 5 trait.
func Fit5Field(trait types.Fit5Trait) string {
	return "fit5." + string(trait)
}

// FieldErrors maps a form field name to its error message.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for field := range fe {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var sb strings.Builder
	sb.WriteString("form validation failed:")
	for _, field := range fields {
		sb.WriteString(fmt.Sprintf(" %s: %s;", field, fe[field]))
	}
	return strings.TrimSuffix(sb.String(), ";")
}

// Err returns fe as an error, or nil when there are no field errors.
func (fe FieldErrors) Err() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

var validate = validator.New()

// Validate runs every rule against values. Every field is checked; one
// failing field never hides another.
func Validate(values url.Values) FieldErrors {
	errs := FieldErrors{}
	for _, rule := range Rules {
		if msg := rule.check(values.Get(rule.Field)); msg != "" {
			errs[rule.Field] = msg
		}
	}
	return errs
}

// check returns the error message for raw, or "" when it passes.
func (r Rule) check(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		if r.Required {
			return r.RequiredMessage
		}
		return ""
	}

	var value any = raw
	if r.Kind == KindInt {
		n, err := strconv.Atoi(trimmed)
		if err != nil {
			return msgNotNumber
		}
		value = n
	}

	if r.Tag == "" {
		return ""
	}
	if err := validate.Var(value, r.Tag); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) && len(ve) > 0 {
			if msg, ok := r.Messages[ve[0].Tag()]; ok {
				return msg
			}
			return fmt.Sprintf("%s failed %s validation", r.Label, ve[0].Tag())
		}
		return fmt.Sprintf("%s is invalid", r.Label)
	}
	return ""
}
