package ingestion

import (
	"regexp"
	"strconv"
	"time"

	"github.com/jonathan/candidate-profile/internal/types"
)

// DefaultEntryYears is credited for an entry whose date range cannot be parsed.
const DefaultEntryYears = 2

var dateRangePattern = regexp.MustCompile(`(\d{4})\s*-\s*(\d{4}|Present)`)

// YearsOfExperience sums the span of every experience entry. "Present"
// resolves to the year of now. Entries without a recognizable
// "YYYY - YYYY" or "YYYY - Present" range contribute DefaultEntryYears.
func YearsOfExperience(experience []types.Experience, now time.Time) int {
	total := 0
	for _, exp := range experience {
		match := dateRangePattern.FindStringSubmatch(exp.DateRange)
		if match == nil {
			total += DefaultEntryYears
			continue
		}

		start, _ := strconv.Atoi(match[1])
		end := now.Year()
		if match[2] != "Present" {
			end, _ = strconv.Atoi(match[2])
		}
		total += end - start
	}
	return total
}
