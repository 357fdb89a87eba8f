// Package audit appends structured records of every conversation turn to
// a JSONL sink. Write-only; nothing in the engine reads these back.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Record kinds.
const (
	KindTurn       = "turn"
	KindFeedback   = "feedback"
	KindSessionEnd = "session_end"
)

// Record is one audit line.
type Record struct {
	Timestamp time.Time `json:"timestamp"`
	Kind      string    `json:"kind"`
	SessionID string    `json:"session_id,omitempty"`
	PlantCode string    `json:"plant_code,omitempty"`
	Utterance string    `json:"user_query,omitempty"`
	SQL       string    `json:"sql_query,omitempty"`
	Response  string    `json:"bot_response,omitempty"`
	Error     string    `json:"error,omitempty"`
	Feedback  string    `json:"feedback,omitempty"`
}

// Recorder is the audit sink surface. Implementations must be safe for
// concurrent use.
type Recorder interface {
	Record(rec Record)
	Close() error
}

// FileRecorder appends JSONL records to a single file.
type FileRecorder struct {
	mu     sync.Mutex
	file   *os.File
	logger *zap.Logger
}

// NewFileRecorder opens (or creates) the audit log for appending.
func NewFileRecorder(path string, logger *zap.Logger) (*FileRecorder, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open audit log: %w", err)
	}
	return &FileRecorder{file: f, logger: logger.Named("audit")}, nil
}

// Record implements Recorder. Failures are logged, never propagated;
// auditing must not take down a user-facing request.
func (r *FileRecorder) Record(rec Record) {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}

	line, err := json.Marshal(rec)
	if err != nil {
		r.logger.Error("marshal audit record", zap.Error(err))
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := r.file.Write(append(line, '\n')); err != nil {
		r.logger.Error("write audit record", zap.Error(err))
	}
}

// Close implements Recorder.
func (r *FileRecorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.file.Close()
}

// Ensure FileRecorder implements Recorder at compile time.
var _ Recorder = (*FileRecorder)(nil)

// NopRecorder discards every record. Used in tests.
type NopRecorder struct{}

func (NopRecorder) Record(Record) {}
func (NopRecorder) Close() error  { return nil }

var _ Recorder = NopRecorder{}
