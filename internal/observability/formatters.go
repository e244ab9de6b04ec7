// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/candidate-profile/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, inner), inner))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad right-pads s with spaces to n runes.
func pad(s string, n int) string {
	if count := utf8.RuneCountInString(s); count < n {
		return s + strings.Repeat(" ", n-count)
	}
	return s
}

// PrintParsedResume outputs a human-readable summary of an ingested resume.
func (p *Printer) PrintParsedResume(resume *types.ParsedResume) {
	if resume == nil {
		return
	}

	var sb strings.Builder
	info := resume.PersonalInfo
	sb.WriteString(fmt.Sprintf("Name:      %s\n", info.Name))
	if info.Email != "" {
		sb.WriteString(fmt.Sprintf("Email:     %s\n", info.Email))
	}
	if info.Phone != "" {
		sb.WriteString(fmt.Sprintf("Phone:     %s\n", info.Phone))
	}
	if info.Location != "" {
		sb.WriteString(fmt.Sprintf("Location:  %s\n", info.Location))
	}
	if resume.YearsOfExperience != nil {
		sb.WriteString(fmt.Sprintf("Years:     %d\n", *resume.YearsOfExperience))
	}
	sb.WriteString("\n")

	if len(resume.Experience) > 0 {
		sb.WriteString("Experience:\n")
		count := min(len(resume.Experience), maxItemsToShow)
		for i := 0; i < count; i++ {
			exp := resume.Experience[i]
			sb.WriteString(fmt.Sprintf("  • %s, %s\n", exp.Title, exp.Company))
			sb.WriteString(fmt.Sprintf("    %s\n", exp.DateRange))
		}
		if len(resume.Experience) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(resume.Experience)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(resume.Education) > 0 {
		sb.WriteString("Education:\n")
		count := min(len(resume.Education), 3)
		for i := 0; i < count; i++ {
			edu := resume.Education[i]
			sb.WriteString(fmt.Sprintf("  • %s (%s)\n", edu.Degree, edu.DateRange))
		}
		if len(resume.Education) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(resume.Education)-3))
		}
		sb.WriteString("\n")
	}

	if len(resume.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("Skills: %s\n", strings.Join(resume.Skills, ", ")))
	}

	p.printBox("PARSED RESUME", strings.TrimSuffix(strings.TrimSuffix(sb.String(), "\n"), "\n"))
}

// PrintCandidate outputs the recruiter assessment of a candidate.
func (p *Printer) PrintCandidate(data *types.CandidateFormData) {
	if data == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Candidate: %s\n", data.FullName))
	sb.WriteString(fmt.Sprintf("Position:  %s\n", data.PositionName))
	sb.WriteString(fmt.Sprintf("Country:   %s\n", data.CountryOfResidence))
	sb.WriteString(fmt.Sprintf("Years:     %d\n", data.YearsOfExperience))
	sb.WriteString(fmt.Sprintf("English:   %s\n", data.EnglishLevel))
	sb.WriteString("\n")

	sb.WriteString("FIT 5:\n")
	for _, trait := range types.Fit5Traits {
		score := data.Fit5.Score(trait)
		bar := strings.Repeat("█", max(0, score-types.Fit5Min+1))
		sb.WriteString(fmt.Sprintf("  %-14s %2d/%d %s\n", trait.Label(), score, types.Fit5Max, bar))
	}

	if notes := strings.TrimSpace(data.InterviewNotes); notes != "" {
		sb.WriteString("\nNotes:\n")
		sb.WriteString(fmt.Sprintf("  %s\n", strings.ReplaceAll(notes, "\n", " ")))
	}

	p.printBox("CANDIDATE ASSESSMENT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFieldErrors outputs validation failures, one per field, sorted by field.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintFieldErrors(errs map[string]string) {
	if len(errs) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %s │\n", pad("✅ VALID", boxWidth-4))
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d problems:\n\n", len(errs)))
	for i, field := range fields {
		sb.WriteString(fmt.Sprintf("⚠ %s\n", field))
		sb.WriteString(fmt.Sprintf("  %s\n", errs[field]))
		if i < len(fields)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("VALIDATION ERRORS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintArtifact outputs a summary of a rendered document.
func (p *Printer) PrintArtifact(filename, contentType string, size, pages int) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("File:  %s\n", filename))
	sb.WriteString(fmt.Sprintf("Type:  %s\n", contentType))
	sb.WriteString(fmt.Sprintf("Size:  %d bytes", size))
	if pages > 0 {
		sb.WriteString(fmt.Sprintf("\nPages: %d", pages))
		if pages > 1 {
			sb.WriteString(" ⚠ exceeds one page")
		}
	}
	p.printBox("RENDERED DOCUMENT", sb.String())
}
