package core

import "context"

// Options controls model behavior; fields are optional per provider.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int
	SystemPrompt        string
}

// Client is a provider-agnostic interface for the single text-completion
// contract the agent needs: structured prompt in, JSON-parseable text out.
type Client interface {
	Complete(ctx context.Context, prompt string, opts Options) (string, error)
}
