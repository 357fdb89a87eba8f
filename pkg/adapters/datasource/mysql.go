package datasource

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/plantops/tripchat-engine/pkg/logging"
)

// MySQLExecutor executes queries against the trip-info MySQL database.
type MySQLExecutor struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMySQLExecutor opens a connection pool and verifies connectivity.
// The DSN must enable parseTime so stage timestamps scan as time.Time.
func NewMySQLExecutor(dsn string, logger *zap.Logger) (*MySQLExecutor, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping mysql at %s: %w", logging.SanitizeDSN(dsn), err)
	}

	return &MySQLExecutor{db: db, logger: logger.Named("datasource")}, nil
}

// Execute implements SQLExecutor.
func (e *MySQLExecutor) Execute(ctx context.Context, query string) (QueryResult, error) {
	start := time.Now()

	rows, err := e.db.QueryContext(ctx, query)
	if err != nil {
		e.logger.Error("query failed",
			zap.String("query", logging.SanitizeQuery(query)),
			zap.Error(err))
		return QueryResult{}, fmt.Errorf("execute query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return QueryResult{}, fmt.Errorf("read columns: %w", err)
	}

	result := QueryResult{Columns: columns}
	for rows.Next() {
		values := make([]any, len(columns))
		valuePtrs := make([]any, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}
		if err := rows.Scan(valuePtrs...); err != nil {
			return QueryResult{}, fmt.Errorf("scan row: %w", err)
		}
		// Text columns arrive as []byte from the driver.
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		result.Rows = append(result.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return QueryResult{}, fmt.Errorf("iterate rows: %w", err)
	}

	e.logger.Debug("query executed",
		zap.Int("rows", len(result.Rows)),
		zap.Duration("elapsed", time.Since(start)))

	return result, nil
}

// Close releases the connection pool.
func (e *MySQLExecutor) Close() error {
	return e.db.Close()
}

// Ensure MySQLExecutor implements SQLExecutor at compile time.
var _ SQLExecutor = (*MySQLExecutor)(nil)
