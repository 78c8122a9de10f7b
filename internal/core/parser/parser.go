package parser

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/markdave123-py/Resumely/internal/core"
	"github.com/markdave123-py/Resumely/internal/core/keypool"
	"github.com/markdave123-py/Resumely/internal/models"
)

// Extracted text shorter than this (trimmed) is treated as "nothing useful".
const minTextChars = 10

// TextExtractor is the format-dispatching extraction layer.
type TextExtractor interface {
	Text(ctx context.Context, data []byte, filename string) (string, error)
}

// Record is the normalized output of the pipeline for one document.
// Empty strings and nil pointers mean "absent"; Skills and WorkExperience
// are never nil.
type Record struct {
	Name                 string                  `json:"name,omitempty"`
	Email                string                  `json:"email,omitempty"`
	Phone                string                  `json:"phone,omitempty"`
	Linkedin             string                  `json:"linkedin,omitempty"`
	Github               string                  `json:"github,omitempty"`
	Skills               []string                `json:"skills"`
	UGDegree             string                  `json:"ug_degree,omitempty"`
	UGCollege            string                  `json:"ug_college,omitempty"`
	UGYear               *int                    `json:"ug_year,omitempty"`
	PGDegree             string                  `json:"pg_degree,omitempty"`
	PGCollege            string                  `json:"pg_college,omitempty"`
	PGYear               *int                    `json:"pg_year,omitempty"`
	TotalExperienceYears string                  `json:"total_experience_years,omitempty"`
	WorkExperience       []models.WorkExperience `json:"work_experience"`
}

func emptyRecord() *Record {
	return &Record{
		Skills:         []string{},
		WorkExperience: []models.WorkExperience{},
	}
}

// Result is the outcome of processing one document. Every code path fills
// all fields; a failed Result carries no Record.
type Result struct {
	Filename string  `json:"filename"`
	Success  bool    `json:"success"`
	Record   *Record `json:"data,omitempty"`
	Err      string  `json:"error,omitempty"`
}

// Parser runs the full pipeline: text extraction, prompt assembly, the
// rate-limited Gemini call and response normalization.
type Parser struct {
	extractor TextExtractor
	pool      *keypool.Pool
	llm       core.LLMProvider
}

func New(extractor TextExtractor, pool *keypool.Pool, llm core.LLMProvider) *Parser {
	return &Parser{extractor: extractor, pool: pool, llm: llm}
}

// ProcessResume processes a single resume end to end. Failures never
// propagate past this boundary; they land in the Result so one bad file
// cannot abort a batch.
func (p *Parser) ProcessResume(ctx context.Context, data []byte, filename string) Result {
	res := Result{Filename: filename}

	text, err := p.extractor.Text(ctx, data, filename)
	if err != nil {
		res.Err = err.Error()
		return res
	}
	if len(strings.TrimSpace(text)) < minTextChars {
		res.Err = "no meaningful text extracted"
		return res
	}

	if p.pool.Empty() {
		// Text-only mode: succeed with an empty record so the caller can
		// still store the raw document.
		res.Record = emptyRecord()
		res.Success = true
		res.Err = "no API key configured - text extracted but not parsed"
		return res
	}

	rec, err := p.parseWithGemini(ctx, text)
	if err != nil {
		log.Printf("parser: %s: %v", filename, err)
		res.Err = err.Error()
		return res
	}

	res.Record = rec
	res.Success = true
	return res
}

func (p *Parser) parseWithGemini(ctx context.Context, text string) (*Record, error) {
	prompt := strings.Replace(parsingPrompt, "{text}", text, 1)
	estimated := keypool.EstimateTokens(prompt)

	key, ok := p.pool.WaitForAvailableKey(ctx, estimated, keypool.DefaultMaxWait)
	if !ok {
		return nil, errors.New("no API key available: all keys at rate limit")
	}

	raw, err := p.llm.Generate(ctx, key, prompt)
	if err != nil {
		return nil, fmt.Errorf("gemini request: %w", err)
	}

	rec, ok := parseResponse(raw)
	if !ok {
		return nil, errors.New("failed to parse model response")
	}
	return rec, nil
}
