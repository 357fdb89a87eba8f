package llm

import "context"

// MockCompletionClient is a configurable mock for testing completion
// consumers. Set the function fields to control behavior in tests.
type MockCompletionClient struct {
	// CompleteFunc is called when Complete is invoked.
	// If nil, returns empty result and nil error.
	CompleteFunc func(ctx context.Context, prompt string, systemMessage string) (string, error)

	// Model is returned by GetModel. Defaults to "mock-model".
	Model string

	// Call tracking for verification
	CompleteCalls int
	// LastPrompt records the prompt of the most recent Complete call.
	LastPrompt string
}

// NewMockCompletionClient creates a new mock with sensible defaults.
func NewMockCompletionClient() *MockCompletionClient {
	return &MockCompletionClient{Model: "mock-model"}
}

// Complete implements CompletionClient.
func (m *MockCompletionClient) Complete(ctx context.Context, prompt string, systemMessage string) (string, error) {
	m.CompleteCalls++
	m.LastPrompt = prompt
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, prompt, systemMessage)
	}
	return "", nil
}

// GetModel implements CompletionClient.
func (m *MockCompletionClient) GetModel() string {
	return m.Model
}

// Ensure MockCompletionClient implements CompletionClient at compile time.
var _ CompletionClient = (*MockCompletionClient)(nil)
