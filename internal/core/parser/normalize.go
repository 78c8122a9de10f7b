package parser

import (
	"encoding/json"
	"log"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/markdave123-py/Resumely/internal/core/textproc"
	"github.com/markdave123-py/Resumely/internal/models"
)

// parseResponse turns the raw model response into a Record. It tolerates a
// surrounding code fence, extra prose, unknown keys and wrong-typed values;
// only a body with no parseable JSON object fails.
func parseResponse(raw string) (*Record, bool) {
	cleaned := stripCodeFence(raw)

	var parsed map[string]any
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		log.Printf("parser: response is not valid JSON: %v", err)
		return nil, false
	}

	rec := emptyRecord()
	rec.Name = asString(parsed["name"])
	rec.Email = textproc.ValidateEmail(asString(parsed["email"]))
	rec.Phone = textproc.ValidatePhone(asString(parsed["phone"]))
	rec.Linkedin = asString(parsed["linkedin"])
	rec.Github = asString(parsed["github"])
	rec.Skills = asStringSlice(parsed["skills"])
	rec.TotalExperienceYears = normalizeExperience(parsed["total_experience_years"])
	rec.WorkExperience = asWorkExperience(parsed["work_experience"])
	rec.UGDegree, rec.UGCollege, rec.UGYear = educationFields(parsed["ug_education"])
	rec.PGDegree, rec.PGCollege, rec.PGYear = educationFields(parsed["pg_education"])

	return rec, true
}

// stripCodeFence removes an optional ```json / ``` wrapper and slices down
// to the outermost JSON object, dropping any surrounding prose.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)

	if idx := strings.Index(s, "```json"); idx != -1 {
		s = s[idx+len("```json"):]
	} else if idx := strings.Index(s, "```"); idx != -1 {
		s = s[idx+len("```"):]
	}
	if idx := strings.Index(s, "```"); idx != -1 {
		s = s[:idx]
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start != -1 && end > start {
		s = s[start : end+1]
	}

	return strings.TrimSpace(s)
}

// educationFields pulls degree/college/year out of one education sub-object.
// Diploma and polytechnic entries null out all three fields together, never
// partially.
func educationFields(v any) (degree, college string, year *int) {
	entry, ok := v.(map[string]any)
	if !ok {
		return "", "", nil
	}

	degree = asString(entry["degree"])
	college = asString(entry["college"])
	year = asIntPtr(entry["year"])

	if isDiplomaEntry(degree, college) {
		log.Printf("parser: filtering diploma entry: %q at %q", degree, college)
		return "", "", nil
	}
	return degree, college, year
}

func isDiplomaEntry(degree, college string) bool {
	d := strings.ToLower(degree)
	c := strings.ToLower(college)
	if d == "" && c == "" {
		return false
	}
	return strings.Contains(d, "diploma") || strings.Contains(c, "diploma") || strings.Contains(c, "polytechnic")
}

var (
	plusPattern        = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*\+`)
	yearsMonthsPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*years?\s*(\d+)\s*months?`)
	monthsPattern      = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*months?`)
	yearsPattern       = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*years?`)
	numberPattern      = regexp.MustCompile(`^(\d+(?:\.\d+)?)$`)
)

// normalizeExperience converts the many shapes the model produces for total
// experience into one canonical string. Unparseable input becomes "".
func normalizeExperience(v any) string {
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case float64:
		s = strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}

	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "null" || s == "none" {
		return ""
	}

	// "4+" stays "4+": the open-ended signal is preserved.
	if strings.Contains(s, "+") {
		if m := plusPattern.FindStringSubmatch(s); m != nil {
			return m[1] + "+"
		}
		return ""
	}

	if m := yearsMonthsPattern.FindStringSubmatch(s); m != nil {
		years, _ := strconv.ParseFloat(m[1], 64)
		months, _ := strconv.ParseFloat(m[2], 64)
		return formatYears(years + roundTo1(months/12))
	}

	if m := monthsPattern.FindStringSubmatch(s); m != nil {
		months, _ := strconv.ParseFloat(m[1], 64)
		return formatYears(roundTo1(months / 12))
	}

	if m := yearsPattern.FindStringSubmatch(s); m != nil {
		years, _ := strconv.ParseFloat(m[1], 64)
		// Whole years carry one decimal ("5.0"); fractional years keep their
		// precision ("2.25").
		if years == math.Trunc(years) {
			return strconv.FormatFloat(years, 'f', 1, 64)
		}
		return strconv.FormatFloat(years, 'f', -1, 64)
	}

	if m := numberPattern.FindStringSubmatch(s); m != nil {
		n, _ := strconv.ParseFloat(m[1], 64)
		if n == math.Trunc(n) {
			return strconv.Itoa(int(n))
		}
		return strconv.FormatFloat(n, 'f', -1, 64)
	}

	return ""
}

func roundTo1(f float64) float64 {
	return math.Round(f*10) / 10
}

func formatYears(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asStringSlice(v any) []string {
	out := []string{}
	items, ok := v.([]any)
	if !ok {
		return out
	}
	for _, item := range items {
		if s := asString(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func asIntPtr(v any) *int {
	switch t := v.(type) {
	case float64:
		n := int(t)
		return &n
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return &n
		}
	}
	return nil
}

func asWorkExperience(v any) []models.WorkExperience {
	out := []models.WorkExperience{}
	items, ok := v.([]any)
	if !ok {
		return out
	}
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		we := models.WorkExperience{
			Title:   asString(entry["title"]),
			Company: asString(entry["company"]),
			EndYear: asIntPtr(entry["end_year"]),
		}
		if start := asIntPtr(entry["start_year"]); start != nil {
			we.StartYear = *start
		}
		out = append(out, we)
	}
	return out
}
