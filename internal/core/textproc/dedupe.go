package textproc

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// DefaultSimilarityThreshold is the ratio above which two lines are treated
// as near-duplicates.
const DefaultSimilarityThreshold = 0.85

// similarity returns the SequenceMatcher ratio between two strings,
// computed character by character. Range is 0 to 1.
func similarity(a, b string) float64 {
	m := difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, ""))
	return m.Ratio()
}

// DeduplicateLines drops blank lines and lines that are near-duplicates of a
// line already kept, comparing case-insensitively. Order is preserved.
// Quadratic in the kept-line count, which is fine for per-page line counts.
func DeduplicateLines(lines []string, threshold float64) []string {
	unique := make([]string, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		duplicate := false
		for _, kept := range unique {
			if similarity(strings.ToLower(line), strings.ToLower(kept)) >= threshold {
				duplicate = true
				break
			}
		}
		if !duplicate {
			unique = append(unique, line)
		}
	}

	return unique
}
