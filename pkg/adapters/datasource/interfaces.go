// Package datasource provides read-only access to the trip database.
package datasource

import "context"

// QueryResult is the column/row shape every executor returns.
type QueryResult struct {
	Columns []string
	Rows    [][]any
}

// Empty reports whether the result carries no rows.
func (r QueryResult) Empty() bool {
	return len(r.Rows) == 0
}

// SQLExecutor runs validated SELECT statements. Implementations only
// ever receive queries that passed the post-processing gate.
type SQLExecutor interface {
	Execute(ctx context.Context, query string) (QueryResult, error)
	Close() error
}
