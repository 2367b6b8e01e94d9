// Package llm wraps the text-generation collaborators behind one interface.
package llm

import (
	"context"
)

// Provider is the interface for all LLM providers.
// Options recognized by implementations: "model" (string), "api_key" (string),
// "max_output_tokens" (int), "response_format" ({"type": "json_object"}).
type Provider interface {
	GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
}
