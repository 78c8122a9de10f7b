package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/markdave123-py/Resumely/internal/models"
)

func TestNormalizeSkill(t *testing.T) {
	assert.Equal(t, "nodejs", normalizeSkill("Node.js"))
	assert.Equal(t, "nodejs", normalizeSkill("node js"))
	assert.Equal(t, "machinelearning", normalizeSkill("  Machine Learning "))
	assert.Equal(t, "", normalizeSkill("   "))
}

func TestRankSuggestionsPrefixFirst(t *testing.T) {
	skills := []string{"JavaScript", "Java", "TypeScript", "Scala"}

	got := rankSuggestions(skills, "ja")

	assert.Equal(t, []string{"Java", "JavaScript"}, got)
}

func TestRankSuggestionsContainsAfterPrefix(t *testing.T) {
	skills := []string{"React", "Preact", "Redux"}

	got := rankSuggestions(skills, "re")

	// prefix matches sort first, substring matches follow
	assert.Equal(t, []string{"React", "Redux", "Preact"}, got)
}

func TestRankSuggestionsDeduplicatesAndCaps(t *testing.T) {
	var skills []string
	for _, s := range []string{"Go", "go", "GO"} {
		skills = append(skills, s)
	}
	assert.Len(t, rankSuggestions(skills, "go"), 1)

	skills = nil
	for i := 0; i < 30; i++ {
		skills = append(skills, "golang-"+string(rune('a'+i)))
	}
	assert.Len(t, rankSuggestions(skills, "golang"), maxSuggestions)
}

func TestRankSuggestionsEmptyQuery(t *testing.T) {
	assert.Equal(t, []string{}, rankSuggestions([]string{"Go"}, ""))
	assert.Equal(t, []string{}, rankSuggestions([]string{"Go"}, "zzz"))
}

func resumeWithSkills(skills ...string) *models.Resume {
	return &models.Resume{Skills: skills}
}

func TestMatchesSkillFiltersMandatoryAll(t *testing.T) {
	r := resumeWithSkills("Python", "Django", "PostgreSQL")

	assert.True(t, matchesSkillFilters(r, []string{"python", "django"}, nil))
	assert.False(t, matchesSkillFilters(r, []string{"python", "kubernetes"}, nil))
}

func TestMatchesSkillFiltersMandatoryOverridesOptional(t *testing.T) {
	r := resumeWithSkills("Python")

	// optional skills are ignored once a mandatory list is present
	assert.True(t, matchesSkillFilters(r, []string{"python"}, []string{"rust"}))
	assert.False(t, matchesSkillFilters(r, []string{"rust"}, []string{"python"}))
}

func TestMatchesSkillFiltersOptionalAny(t *testing.T) {
	r := resumeWithSkills("Python", "Django")

	assert.True(t, matchesSkillFilters(r, nil, []string{"rust", "django"}))
	assert.False(t, matchesSkillFilters(r, nil, []string{"rust", "kubernetes"}))
}

func TestMatchesSkillFiltersNoFilters(t *testing.T) {
	assert.True(t, matchesSkillFilters(resumeWithSkills("Python"), nil, nil))
}

func TestMatchesSkillFiltersNormalization(t *testing.T) {
	r := resumeWithSkills("Node.js")

	assert.True(t, matchesSkillFilters(r, []string{"nodejs"}, nil))
	assert.True(t, matchesSkillFilters(r, []string{"Node JS"}, nil))
}
