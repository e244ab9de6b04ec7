package form

import (
	"testing"

	"github.com/jonathan/candidate-profile/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestNewView(t *testing.T) {
	view := NewView(validRecord())

	assert.Equal(t, "Jane Doe", view.Get("fullName"))
	assert.Equal(t, []int{0, 1}, view.ExperienceRows)
	assert.Equal(t, []int{0}, view.EducationRows)
	assert.Empty(t, view.Error("fullName"))
	assert.True(t, view.Checked("fit5.impact", 10))
	assert.False(t, view.Checked("fit5.impact", 8))
	assert.True(t, view.Checked("englishLevel", types.EnglishFluent))
	assert.Equal(t, []int{7, 8, 9, 10}, view.Fit5Scale())
	assert.Len(t, view.Fit5Traits(), 5)
	assert.Len(t, view.EnglishLevels(), 5)
}

func TestNewInvalidView(t *testing.T) {
	values := Encode(validRecord())
	values.Set("yearsOfExperience", "abc")
	errs := Validate(values)

	view := NewInvalidView(values, errs, validRecord())

	assert.Equal(t, "abc", view.Get("yearsOfExperience"))
	assert.Equal(t, msgNotNumber, view.Error("yearsOfExperience"))
	assert.Equal(t, []int{0, 1}, view.ExperienceRows)
}
