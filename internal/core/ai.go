package core

import "context"

// LLMProvider is the text-completion call behind the extraction pipeline.
// The API key comes from the credential pool per request, so it is an
// argument rather than client state.
type LLMProvider interface {
	Generate(ctx context.Context, apiKey, prompt string) (string, error)
}
