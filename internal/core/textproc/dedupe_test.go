package textproc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeduplicateLinesDropsNearDuplicates(t *testing.T) {
	lines := []string{"Python Developer", "Python Develop3r"}

	got := DeduplicateLines(lines, DefaultSimilarityThreshold)

	assert.Equal(t, []string{"Python Developer"}, got)
}

func TestDeduplicateLinesKeepsDistinctLines(t *testing.T) {
	lines := []string{"Python Developer", "Senior Data Engineer", "Bangalore, India"}

	got := DeduplicateLines(lines, DefaultSimilarityThreshold)

	assert.Equal(t, lines, got)
}

func TestDeduplicateLinesDropsBlankLines(t *testing.T) {
	lines := []string{"", "   ", "John Doe", "\t", "john@example.com"}

	got := DeduplicateLines(lines, DefaultSimilarityThreshold)

	assert.Equal(t, []string{"John Doe", "john@example.com"}, got)
}

func TestDeduplicateLinesIsCaseInsensitive(t *testing.T) {
	got := DeduplicateLines([]string{"SKILLS", "skills"}, DefaultSimilarityThreshold)

	assert.Equal(t, []string{"SKILLS"}, got)
}

func TestDeduplicateLinesIdempotent(t *testing.T) {
	lines := []string{
		"John Doe",
		"john@gmail.com",
		"Python Developer",
		"Python Develop3r",
		"Worked on billing systems",
	}

	once := DeduplicateLines(lines, DefaultSimilarityThreshold)
	twice := DeduplicateLines(once, DefaultSimilarityThreshold)

	assert.Equal(t, once, twice)
}

func TestDeduplicateLinesPreservesOrder(t *testing.T) {
	lines := []string{"c line", "a line", "b line"}

	got := DeduplicateLines(lines, 0.99)

	assert.Equal(t, lines, got)
}

func TestSimilarityRatio(t *testing.T) {
	// 15 of 16 characters match: 2*15/32 = 0.9375
	assert.InDelta(t, 0.9375, similarity("python developer", "python develop3r"), 0.001)
	assert.Equal(t, 1.0, similarity("same", "same"))
}
