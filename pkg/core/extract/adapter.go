// Package extract turns normalized filing text into typed bond records by way
// of an LLM collaborator, a defensive JSON parse, and field-level coercion.
package extract

import (
	"context"

	"github.com/hrseymour/bond-extractor/pkg/core/llm"
)

// AIProvider is the text-generation seam the extractor depends on. Tests
// substitute a canned implementation; production wraps llm.Provider.
type AIProvider interface {
	Generate(ctx context.Context, systemPrompt string, userPrompt string) (string, error)
}

// LLMAdapter bridges llm.Provider interface to extract.AIProvider interface
type LLMAdapter struct {
	provider llm.Provider
	options  map[string]interface{}
}

// NewLLMAdapter creates a new adapter wrapping an llm.Provider
func NewLLMAdapter(provider llm.Provider, options map[string]interface{}) *LLMAdapter {
	return &LLMAdapter{provider: provider, options: options}
}

// Generate implements extract.AIProvider interface
func (a *LLMAdapter) Generate(ctx context.Context, systemPrompt string, userPrompt string) (string, error) {
	// llm.Provider.GenerateResponse has (prompt, systemPrompt) order
	// extract.AIProvider.Generate has (systemPrompt, userPrompt) order
	return a.provider.GenerateResponse(ctx, userPrompt, systemPrompt, a.options)
}
