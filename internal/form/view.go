package form

import (
	"net/url"
	"strconv"

	"github.com/jonathan/candidate-profile/internal/types"
)

// View carries what the form template needs to render: the current raw
// values (possibly invalid) and any field errors.
type View struct {
	Values         url.Values
	Errors         FieldErrors
	ExperienceRows []int
	EducationRows  []int
}

// NewView builds a view over data with no errors.
func NewView(data *types.CandidateFormData) *View {
	return &View{
		Values:         Encode(data),
		Errors:         FieldErrors{},
		ExperienceRows: indexes(len(data.Experience)),
		EducationRows:  indexes(len(data.Education)),
	}
}

// NewInvalidView re-renders submitted values alongside their errors.
func NewInvalidView(values url.Values, errs FieldErrors, base *types.CandidateFormData) *View {
	v := &View{Values: values, Errors: errs}
	if base != nil {
		v.ExperienceRows = indexes(len(base.Experience))
		v.EducationRows = indexes(len(base.Education))
	}
	return v
}

// Get returns the current value of a field.
func (v *View) Get(field string) string {
	return v.Values.Get(field)
}

// Error returns the error message of a field, or "".
func (v *View) Error(field string) string {
	return v.Errors[field]
}

// Checked reports whether a radio or select option is the current value.
func (v *View) Checked(field string, option any) bool {
	switch o := option.(type) {
	case int:
		return v.Values.Get(field) == strconv.Itoa(o)
	case types.EnglishLevel:
		return v.Values.Get(field) == string(o)
	case string:
		return v.Values.Get(field) == o
	}
	return false
}

// EnglishLevels lists the English level options.
func (v *View) EnglishLevels() []types.EnglishLevel {
	return types.EnglishLevels
}

// Fit5Traits lists the rubric traits in display order.
func (v *View) Fit5Traits() []types.Fit5Trait {
	return types.Fit5Traits
}

// Fit5Scale lists the selectable scores.
func (v *View) Fit5Scale() []int {
	scale := make([]int, 0, types.Fit5Max-types.Fit5Min+1)
	for s := types.Fit5Min; s <= types.Fit5Max; s++ {
		scale = append(scale, s)
	}
	return scale
}

func indexes(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
