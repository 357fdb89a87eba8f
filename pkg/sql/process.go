package sql

import (
	"go.uber.org/zap"
)

// Candidate is the outcome of post-processing one generated query. It is
// either execution-ready (Valid) or carries the rejection reason.
type Candidate struct {
	SQL    string
	Valid  bool
	Reason string
}

// PostProcessor runs the repair, tenant-enforcement, count-rewrite, and
// validation stages in order.
type PostProcessor struct {
	logger *zap.Logger
}

func NewPostProcessor(logger *zap.Logger) *PostProcessor {
	return &PostProcessor{logger: logger.Named("sqlgate")}
}

// Process turns a raw completion into an execution-ready candidate.
// countQuestion comes from the normalizer and triggers the
// DISTINCT-to-COUNT rewrite. Returns ErrMissingTenantScope when no
// authorized plant code is available; every other failure is reported as
// an invalid candidate, never as a fixed-up query.
func (p *PostProcessor) Process(raw, plantCode string, countQuestion bool) (Candidate, error) {
	query := Repair(raw)
	if countQuestion {
		query = RewriteCount(query)
	}

	query, err := EnforceTenant(query, plantCode)
	if err != nil {
		return Candidate{}, err
	}

	if ok, reason := Validate(query); !ok {
		p.logger.Warn("rejected generated query",
			zap.String("reason", reason))
		return Candidate{SQL: query, Valid: false, Reason: reason}, nil
	}

	p.logger.Debug("accepted generated query", zap.Int("query_len", len(query)))
	return Candidate{SQL: query, Valid: true}, nil
}
