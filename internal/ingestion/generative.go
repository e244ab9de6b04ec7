package ingestion

import (
	"context"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/jonathan/candidate-profile/internal/types"
)

// DefaultDelay is the artificial processing latency of the generative ingester.
const DefaultDelay = 1500 * time.Millisecond

// DefaultCandidateName is used when the filename yields no name.
const DefaultCandidateName = "Candidate"

const generatedEntries = 2

var filenameNamePattern = regexp.MustCompile(`([A-Za-z]+)[\s_-]([A-Za-z]+)`)

var jobTitles = []string{
	"Software Engineer",
	"Frontend Developer",
	"Backend Developer",
	"Full Stack Developer",
	"Product Manager",
	"UX Designer",
	"Data Scientist",
	"DevOps Engineer",
	"Project Manager",
}

var companies = []string{
	"Tech Innovations",
	"Digital Solutions",
	"Software Labs",
	"Cloud Systems",
	"Data Insights",
	"Web Dynamics",
	"App Factory",
	"Code Crafters",
	"Tech Giants",
}

// %s is the company name
var descriptionTemplates = []string{
	"Led development of key features for %s's main product.",
	"Collaborated with cross-functional teams to deliver high-quality software solutions.",
	"Implemented new features and optimized existing code for better performance.",
	"Worked on frontend and backend components for web applications.",
	"Managed project timelines and coordinated with stakeholders to ensure on-time delivery.",
}

type titleSkills struct {
	Title  string
	Skills []string
}

// Ordered: the first matching title wins.
var skillTable = []titleSkills{
	{"Software Engineer", []string{"Java", "Python", "C++", "Algorithms", "System Design"}},
	{"Frontend Developer", []string{"JavaScript", "React", "HTML", "CSS", "TypeScript"}},
	{"Backend Developer", []string{"Node.js", "Express", "SQL", "NoSQL", "API Design"}},
	{"Full Stack Developer", []string{"JavaScript", "React", "Node.js", "MongoDB", "AWS"}},
	{"Product Manager", []string{"Product Strategy", "Roadmapping", "User Research", "A/B Testing"}},
	{"UX Designer", []string{"Figma", "Adobe XD", "User Research", "Wireframing", "Prototyping"}},
	{"Data Scientist", []string{"Python", "R", "Machine Learning", "SQL", "Data Visualization"}},
	{"DevOps Engineer", []string{"Docker", "Kubernetes", "CI/CD", "AWS", "Infrastructure as Code"}},
	{"Project Manager", []string{"Project Planning", "Risk Management", "Stakeholder Communication"}},
}

const defaultSkillTitle = "Full Stack Developer"

var commonSkills = []string{"Git", "JIRA", "Agile", "Communication"}

const maxSkills = 8

// GenerativeIngester fabricates a plausible resume keyed on the upload's
// filename. File content is never read.
type GenerativeIngester struct {
	Delay time.Duration
	Now   func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerativeIngester creates a generative ingester. A nil rng is seeded
// from the clock.
func NewGenerativeIngester(rng *rand.Rand, delay time.Duration) *GenerativeIngester {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	return &GenerativeIngester{
		Delay: delay,
		Now:   time.Now,
		rng:   rng,
	}
}

// Ingest validates the upload, waits for Delay, then returns a generated resume.
func (g *GenerativeIngester) Ingest(ctx context.Context, upload *Upload) (*types.ParsedResume, error) {
	if err := CheckMediaType(upload); err != nil {
		return nil, err
	}

	if g.Delay > 0 {
		timer := time.NewTimer(g.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return g.Generate(upload.Filename), nil
}

// Generate builds a resume for filename.
func (g *GenerativeIngester) Generate(filename string) *types.ParsedResume {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now()
	if g.Now != nil {
		now = g.Now()
	}

	name := NameFromFilename(filename)
	experience := g.generateExperience(now.Year())
	firstTitle := experience[0].Title
	years := YearsOfExperience(experience, now)

	return &types.ParsedResume{
		PersonalInfo: types.PersonalInfo{
			Name:     name,
			Email:    strings.Replace(strings.ToLower(name), " ", ".", 1) + "@example.com",
			Phone:    fmt.Sprintf("+1 (555) %d-%d", g.rng.IntN(900)+100, g.rng.IntN(9000)+1000),
			Location: "United States",
		},
		Experience: experience,
		Education: []types.Education{
			{
				Degree:      "Bachelor's in " + degreeField(firstTitle),
				Institution: "University of Technology",
				DateRange:   "2014 - 2018",
			},
		},
		Skills:            SkillsForTitle(firstTitle),
		YearsOfExperience: &years,
	}
}

// generateExperience picks distinct titles and chains the date ranges so each
// entry ends in the year the previous one started.
func (g *GenerativeIngester) generateExperience(currentYear int) []types.Experience {
	titles := make([]string, len(jobTitles))
	copy(titles, jobTitles)
	g.rng.Shuffle(len(titles), func(i, j int) { titles[i], titles[j] = titles[j], titles[i] })

	experience := make([]types.Experience, 0, generatedEntries)
	endYear := currentYear
	for i := 0; i < generatedEntries; i++ {
		company := companies[g.rng.IntN(len(companies))]
		startYear := endYear - g.rng.IntN(3) - 1

		dateRange := fmt.Sprintf("%d - %d", startYear, endYear)
		if i == 0 {
			dateRange = fmt.Sprintf("%d - Present", startYear)
		}

		description := descriptionTemplates[g.rng.IntN(len(descriptionTemplates))]
		if strings.Contains(description, "%s") {
			description = fmt.Sprintf(description, company)
		}

		experience = append(experience, types.Experience{
			Title:       titles[i%len(titles)],
			Company:     company,
			DateRange:   dateRange,
			Description: description,
		})
		endYear = startYear
	}
	return experience
}

// NameFromFilename returns the first two alphabetic runs of filename joined
// by a space and title-cased, or DefaultCandidateName.
func NameFromFilename(filename string) string {
	match := filenameNamePattern.FindStringSubmatch(filename)
	if match == nil {
		return DefaultCandidateName
	}
	return titleCase(match[1]) + " " + titleCase(match[2])
}

func titleCase(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
}

// SkillsForTitle looks up skills for a job title, matching by substring in
// either direction, then appends the common skills and caps the list.
func SkillsForTitle(title string) []string {
	skills := lookupSkills(defaultSkillTitle)
	for _, entry := range skillTable {
		if strings.Contains(title, entry.Title) || strings.Contains(entry.Title, title) {
			skills = entry.Skills
			break
		}
	}

	result := make([]string, 0, len(skills)+len(commonSkills))
	result = append(result, skills...)
	result = append(result, commonSkills...)
	if len(result) > maxSkills {
		result = result[:maxSkills]
	}
	return result
}

func lookupSkills(title string) []string {
	for _, entry := range skillTable {
		if entry.Title == title {
			return entry.Skills
		}
	}
	return nil
}

func degreeField(title string) string {
	switch {
	case strings.Contains(title, "Data"):
		return "Data Science"
	case strings.Contains(title, "Design"):
		return "Design"
	default:
		return "Computer Science"
	}
}
