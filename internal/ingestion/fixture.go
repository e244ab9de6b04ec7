package ingestion

import (
	"context"

	"github.com/jonathan/candidate-profile/internal/types"
)

// FixtureIngester returns the same sample resume for every upload.
type FixtureIngester struct{}

// Ingest validates the upload and returns the fixture record.
func (FixtureIngester) Ingest(ctx context.Context, upload *Upload) (*types.ParsedResume, error) {
	if err := CheckMediaType(upload); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return FixtureResume(), nil
}

// FixtureResume returns a fresh copy of the sample resume.
func FixtureResume() *types.ParsedResume {
	return &types.ParsedResume{
		PersonalInfo: types.PersonalInfo{
			Name:     "John Doe",
			Email:    "john.doe@example.com",
			Phone:    "+1 (555) 123-4567",
			Location: "San Francisco, CA",
		},
		Experience: []types.Experience{
			{
				Title:       "Senior Developer",
				Company:     "Tech Company Inc.",
				DateRange:   "2020 - Present",
				Description: "Led development of key features for company's main product.",
			},
			{
				Title:       "Developer",
				Company:     "Startup LLC",
				DateRange:   "2017 - 2020",
				Description: "Worked on frontend and backend features for web applications.",
			},
		},
		Education: []types.Education{
			{
				Degree:      "Bachelor of Science in Computer Science",
				Institution: "University of Technology",
				DateRange:   "2013 - 2017",
			},
		},
		Skills: []string{"JavaScript", "React", "Node.js", "TypeScript"},
	}
}
