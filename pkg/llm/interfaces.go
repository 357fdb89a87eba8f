// Package llm provides the OpenAI-compatible completion client used for
// SQL generation and result narration.
package llm

import "context"

// CompletionClient is the text-completion surface the pipeline depends
// on. Use this interface for dependency injection to enable mocking in
// tests. Completions are untrusted input; callers must validate whatever
// comes back.
type CompletionClient interface {
	// Complete sends one prompt and returns the raw completion text.
	Complete(ctx context.Context, prompt string, systemMessage string) (string, error)

	// GetModel returns the configured model name.
	GetModel() string
}

// Ensure Client implements CompletionClient at compile time.
var _ CompletionClient = (*Client)(nil)
