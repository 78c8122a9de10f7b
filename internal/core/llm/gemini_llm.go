package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/markdave123-py/Resumely/internal/core"
)

// GeminiLLM calls the Gemini API with whichever key the credential pool
// handed out. Clients are cached per key.
type GeminiLLM struct {
	mu        sync.Mutex
	clients   map[string]*genai.Client
	modelName string
}

func NewGeminiLLM(modelName string) *GeminiLLM {
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}
	return &GeminiLLM{
		clients:   make(map[string]*genai.Client),
		modelName: modelName,
	}
}

func (g *GeminiLLM) clientFor(ctx context.Context, apiKey string) (*genai.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if cl, ok := g.clients[apiKey]; ok {
		return cl, nil
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	g.clients[apiKey] = cl
	return cl, nil
}

func (g *GeminiLLM) Generate(ctx context.Context, apiKey, prompt string) (string, error) {
	cl, err := g.clientFor(ctx, apiKey)
	if err != nil {
		return "", fmt.Errorf("gemini client: %w", err)
	}

	m := cl.GenerativeModel(g.modelName)
	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", nil
	}

	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if t, ok := p.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return b.String(), nil
}

func (g *GeminiLLM) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	var firstErr error
	for _, cl := range g.clients {
		if err := cl.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	g.clients = make(map[string]*genai.Client)
	return firstErr
}

var _ core.LLMProvider = (*GeminiLLM)(nil)
