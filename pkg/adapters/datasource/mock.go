package datasource

import "context"

// MockSQLExecutor is a configurable mock for testing query consumers.
// Set the function fields to control behavior in tests.
type MockSQLExecutor struct {
	// ExecuteFunc is called when Execute is invoked.
	// If nil, returns an empty result and nil error.
	ExecuteFunc func(ctx context.Context, query string) (QueryResult, error)

	// Call tracking for verification
	ExecuteCalls int
	// LastQuery records the query of the most recent Execute call.
	LastQuery string
}

// Execute implements SQLExecutor.
func (m *MockSQLExecutor) Execute(ctx context.Context, query string) (QueryResult, error) {
	m.ExecuteCalls++
	m.LastQuery = query
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, query)
	}
	return QueryResult{}, nil
}

// Close implements SQLExecutor.
func (m *MockSQLExecutor) Close() error {
	return nil
}

// Ensure MockSQLExecutor implements SQLExecutor at compile time.
var _ SQLExecutor = (*MockSQLExecutor)(nil)
