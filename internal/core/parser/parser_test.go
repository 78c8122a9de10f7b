package parser

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markdave123-py/Resumely/internal/core/keypool"
)

type stubExtractor struct {
	text string
	err  error
}

func (s stubExtractor) Text(_ context.Context, _ []byte, _ string) (string, error) {
	return s.text, s.err
}

type stubLLM struct {
	response string
	err      error
	calls    int
}

func (s *stubLLM) Generate(_ context.Context, _, _ string) (string, error) {
	s.calls++
	return s.response, s.err
}

const sampleText = "Jane Smith\njane@example.com\nSenior Backend Engineer at Acme"

func TestProcessResumeSuccess(t *testing.T) {
	llm := &stubLLM{response: "```json\n{\"name\": \"Jane Smith\", \"github\": \"https://github.com/jane\"}\n```"}
	p := New(stubExtractor{text: sampleText}, keypool.New([]string{"key-alpha"}), llm)

	res := p.ProcessResume(context.Background(), []byte("raw"), "jane.pdf")

	assert.True(t, res.Success)
	assert.Equal(t, "jane.pdf", res.Filename)
	assert.Empty(t, res.Err)
	require.NotNil(t, res.Record)
	assert.Equal(t, "Jane Smith", res.Record.Name)
	assert.Equal(t, "https://github.com/jane", res.Record.Github)
	assert.Equal(t, 1, llm.calls)
}

func TestProcessResumeTooLittleText(t *testing.T) {
	llm := &stubLLM{}
	p := New(stubExtractor{text: "   hi   "}, keypool.New([]string{"key-alpha"}), llm)

	res := p.ProcessResume(context.Background(), []byte("raw"), "empty.pdf")

	assert.False(t, res.Success)
	assert.Nil(t, res.Record)
	assert.Contains(t, res.Err, "no meaningful text")
	assert.Equal(t, 0, llm.calls, "service must not be called without text")
}

func TestProcessResumeExtractorError(t *testing.T) {
	p := New(stubExtractor{err: errors.New("unsupported file format: \".xyz\"")}, keypool.New(nil), &stubLLM{})

	res := p.ProcessResume(context.Background(), []byte("raw"), "resume.xyz")

	assert.False(t, res.Success)
	assert.Contains(t, res.Err, "unsupported file format")
}

func TestProcessResumeTextOnlyMode(t *testing.T) {
	llm := &stubLLM{}
	p := New(stubExtractor{text: sampleText}, keypool.New(nil), llm)

	res := p.ProcessResume(context.Background(), []byte("raw"), "jane.pdf")

	assert.True(t, res.Success)
	require.NotNil(t, res.Record)
	assert.Empty(t, res.Record.Name)
	assert.Equal(t, []string{}, res.Record.Skills)
	assert.Contains(t, res.Err, "not parsed")
	assert.Equal(t, 0, llm.calls)
}

func TestProcessResumeServiceFailure(t *testing.T) {
	llm := &stubLLM{err: errors.New("connection reset")}
	p := New(stubExtractor{text: sampleText}, keypool.New([]string{"key-alpha"}), llm)

	res := p.ProcessResume(context.Background(), []byte("raw"), "jane.pdf")

	assert.False(t, res.Success)
	assert.Nil(t, res.Record)
	assert.Contains(t, res.Err, "gemini request")
}

func TestProcessResumeMalformedResponse(t *testing.T) {
	llm := &stubLLM{response: "sorry, no JSON here"}
	p := New(stubExtractor{text: sampleText}, keypool.New([]string{"key-alpha"}), llm)

	res := p.ProcessResume(context.Background(), []byte("raw"), "jane.pdf")

	assert.False(t, res.Success)
	assert.Contains(t, res.Err, "failed to parse model response")
}
