package handlers

import (
	"sort"
	"strings"

	"github.com/markdave123-py/Resumely/internal/models"
)

const maxSuggestions = 10

// normalizeSkill canonicalizes a skill for comparison: lowercased, spaces and
// dots removed, so "Node.js", "node js" and "nodejs" all match.
func normalizeSkill(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ".", "")
	return s
}

// rankSuggestions returns up to maxSuggestions skills matching the query,
// prefix matches before substring matches, alphabetical within each group.
func rankSuggestions(skills []string, query string) []string {
	q := normalizeSkill(query)
	if q == "" {
		return []string{}
	}

	seen := make(map[string]bool)
	var prefix, contains []string
	for _, s := range skills {
		n := normalizeSkill(s)
		if n == "" || seen[n] {
			continue
		}
		switch {
		case strings.HasPrefix(n, q):
			seen[n] = true
			prefix = append(prefix, s)
		case strings.Contains(n, q):
			seen[n] = true
			contains = append(contains, s)
		}
	}

	sort.Strings(prefix)
	sort.Strings(contains)

	out := append(prefix, contains...)
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	if out == nil {
		out = []string{}
	}
	return out
}

// matchesSkillFilters applies the filter semantics: every mandatory skill must
// be present; optional skills only apply when no mandatory skills are given,
// in which case at least one must match.
func matchesSkillFilters(resume *models.Resume, mandatory, optional []string) bool {
	have := make(map[string]bool, len(resume.Skills))
	for _, s := range resume.Skills {
		have[normalizeSkill(s)] = true
	}

	if len(mandatory) > 0 {
		for _, m := range mandatory {
			if !have[normalizeSkill(m)] {
				return false
			}
		}
		return true
	}

	if len(optional) == 0 {
		return true
	}
	for _, o := range optional {
		if have[normalizeSkill(o)] {
			return true
		}
	}
	return false
}
