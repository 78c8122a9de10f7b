package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeExperience(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{"4+", "4+"},
		{"2 years 6 months", "2.5"},
		{"18 months", "1.5"},
		{"6", "6"},
		{"4.5", "4.5"},
		{"5 years", "5.0"},
		{"2.25 years", "2.25"},
		{"4.5 years", "4.5"},
		{6.0, "6"},
		{0.0, "0"},
		{"", ""},
		{nil, ""},
		{"none", ""},
		{"null", ""},
		{"abc", ""},
		{[]any{"6"}, ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, normalizeExperience(tc.in), "input %v", tc.in)
	}
}

func TestIsDiplomaEntry(t *testing.T) {
	assert.True(t, isDiplomaEntry("Diploma in Engineering", "Some College"))
	assert.True(t, isDiplomaEntry("B.Tech", "Government Polytechnic"))
	assert.True(t, isDiplomaEntry("", "Diploma College of Arts"))
	assert.False(t, isDiplomaEntry("B.Tech", "IIT Madras"))
	assert.False(t, isDiplomaEntry("", ""))
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripCodeFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence(`Sure, here you go: {"a":1} hope that helps`))
	assert.Equal(t, `{"a":1}`, stripCodeFence(`{"a":1}`))
}

func TestParseResponseTolerant(t *testing.T) {
	raw := "```json\n" + `{
		"name": "Jane Smith",
		"email": "JANE@EXAMPLE.COM",
		"phone": "+1 (555) 123-4567",
		"linkedin": "https://linkedin.com/in/janesmith",
		"skills": ["Go", "PostgreSQL"],
		"total_experience_years": "2 years 6 months",
		"unexpected_key": {"what": "ever"},
		"work_experience": [
			{"title": "Engineer", "company": "Acme", "start_year": 2020, "end_year": null}
		]
	}` + "\n```"

	rec, ok := parseResponse(raw)
	require.True(t, ok)

	assert.Equal(t, "Jane Smith", rec.Name)
	assert.Equal(t, "jane@example.com", rec.Email)
	assert.Equal(t, "+1 (555) 123-4567", rec.Phone)
	assert.Equal(t, "", rec.Github, "missing key stays absent")
	assert.Equal(t, []string{"Go", "PostgreSQL"}, rec.Skills)
	assert.Equal(t, "2.5", rec.TotalExperienceYears)
	require.Len(t, rec.WorkExperience, 1)
	assert.Equal(t, "Engineer", rec.WorkExperience[0].Title)
	assert.Equal(t, 2020, rec.WorkExperience[0].StartYear)
	assert.Nil(t, rec.WorkExperience[0].EndYear)
}

func TestParseResponseWrongTypesBecomeAbsent(t *testing.T) {
	raw := `{
		"name": 42,
		"email": ["x"],
		"skills": "Go",
		"ug_education": "not an object",
		"work_experience": {"title": "Engineer"}
	}`

	rec, ok := parseResponse(raw)
	require.True(t, ok)

	assert.Equal(t, "", rec.Name)
	assert.Equal(t, "", rec.Email)
	assert.Empty(t, rec.Skills)
	assert.Equal(t, "", rec.UGDegree)
	assert.Nil(t, rec.UGYear)
	assert.Empty(t, rec.WorkExperience)
}

func TestParseResponseDiplomaFiltering(t *testing.T) {
	raw := `{
		"ug_education": {"degree": "Diploma in Engineering", "college": "City College", "year": 2015},
		"pg_education": {"degree": "M.Tech", "college": "IIT Delhi", "year": 2021}
	}`

	rec, ok := parseResponse(raw)
	require.True(t, ok)

	assert.Equal(t, "", rec.UGDegree)
	assert.Equal(t, "", rec.UGCollege)
	assert.Nil(t, rec.UGYear)

	assert.Equal(t, "M.Tech", rec.PGDegree)
	assert.Equal(t, "IIT Delhi", rec.PGCollege)
	require.NotNil(t, rec.PGYear)
	assert.Equal(t, 2021, *rec.PGYear)
}

func TestParseResponseInvalidEmailDowngradesField(t *testing.T) {
	raw := `{"name": "Jane", "email": "not-an-email", "phone": "12345"}`

	rec, ok := parseResponse(raw)
	require.True(t, ok)

	assert.Equal(t, "Jane", rec.Name)
	assert.Equal(t, "", rec.Email)
	assert.Equal(t, "", rec.Phone)
}

func TestParseResponseNotJSON(t *testing.T) {
	_, ok := parseResponse("I could not find any resume content.")
	assert.False(t, ok)
}
