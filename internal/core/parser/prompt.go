package parser

// parsingPrompt instructs the model to answer with a single JSON object.
// The normalizer still tolerates fenced or prose-wrapped responses.
const parsingPrompt = `You are a specialized resume parsing AI. Your task is to extract structured data from resume text.

CRITICAL RULES:
1. Return ONLY valid JSON - no markdown, no code blocks, no explanations
2. Use null for missing fields, empty arrays [] for missing lists
3. Extract all available information accurately
4. For total_experience_years, CALCULATE from work_experience job durations, NOT profile summaries

EXACT JSON FORMAT REQUIRED:
{
  "name": "full name",
  "email": "email address",
  "phone": "phone number",
  "linkedin": "LinkedIn URL",
  "github": "GitHub URL",
  "skills": ["skill1", "skill2", ...],
  "ug_education": {
    "degree": "Bachelor's degree name",
    "college": "college/university name",
    "year": graduation year as number
  },
  "pg_education": {
    "degree": "Master's/PhD degree name",
    "college": "college/university name",
    "year": graduation year as number
  },
  "total_experience_years": "CALCULATE by summing ALL job durations from work_experience: For each job (end_year - start_year). If end_year is null (current), use the current year. Round to 1 decimal. Return as string like '4.5', '6.0'. If no work history, return null.",
  "work_experience": [
    {
      "title": "job title",
      "company": "company name",
      "start_year": start year as number,
      "end_year": end year as number or null if current
    }
  ]
}

Resume content between delimiters:
<<<resume>>> {text} <<<end>>>

REMINDER: Output ONLY the JSON object. Nothing else.`
