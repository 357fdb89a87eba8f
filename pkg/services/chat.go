// Package services wires the per-turn pipeline together: context store,
// extraction, normalization, prompt compilation, generation,
// post-processing, execution, and response formatting.
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/plantops/tripchat-engine/pkg/adapters/datasource"
	"github.com/plantops/tripchat-engine/pkg/apperrors"
	"github.com/plantops/tripchat-engine/pkg/audit"
	"github.com/plantops/tripchat-engine/pkg/llm"
	"github.com/plantops/tripchat-engine/pkg/logging"
	"github.com/plantops/tripchat-engine/pkg/nlg"
	"github.com/plantops/tripchat-engine/pkg/nlu"
	"github.com/plantops/tripchat-engine/pkg/prompts"
	"github.com/plantops/tripchat-engine/pkg/schema"
	"github.com/plantops/tripchat-engine/pkg/session"
	sqlpost "github.com/plantops/tripchat-engine/pkg/sql"
)

// UnauthorizedPlantResponse is returned when an utterance names a plant
// the session is not scoped to. Deliberately vague about which plants
// exist.
const UnauthorizedPlantResponse = "Oops! It looks like you're trying to access information from a plant you're not authorized to. Please check the plant you're trying to query or contact support if you think there's a mistake."

// TurnResult is the outcome of one successful conversation turn.
type TurnResult struct {
	Response    string
	Suggestions []string
	SQL         string
}

// ChatService handles conversation turns end to end.
type ChatService interface {
	// HandleTurn runs the full pipeline for one utterance. plantCode, if
	// non-empty, (re)binds the session's tenant scope.
	HandleTurn(ctx context.Context, sessionID, utterance, plantCode string) (*TurnResult, error)

	// ClearHistory flushes the session's conversation to the audit sink
	// and discards its context.
	ClearHistory(ctx context.Context, sessionID string) error

	// RecordFeedback stores a good/bad verdict on a previous response.
	RecordFeedback(ctx context.Context, sessionID, utterance, response, verdict string) error
}

// Config carries the collaborators for NewChatService. Narrative is
// optional; when nil the deterministic formatter is always used.
type Config struct {
	Store      *session.Store
	Extractor  *nlu.Extractor
	Post       *sqlpost.PostProcessor
	SQLGen     llm.CompletionClient
	Executor   datasource.SQLExecutor
	Narrative  *nlg.NarrativeGenerator
	Recorder   audit.Recorder
	LLMTimeout time.Duration
}

type chatService struct {
	cfg    Config
	logger *zap.Logger
}

func NewChatService(cfg Config, logger *zap.Logger) ChatService {
	return &chatService{cfg: cfg, logger: logger.Named("chat")}
}

func (s *chatService) HandleTurn(ctx context.Context, sessionID, utterance, plantCode string) (*TurnResult, error) {
	utterance = strings.TrimSpace(utterance)
	if utterance == "" {
		return nil, apperrors.ErrGibberishInput
	}

	// Resolve the tenant scope before anything else. Without one the
	// turn fails closed; generation is never reached.
	if plantCode != "" {
		s.cfg.Store.SetPlantCode(sessionID, plantCode)
	} else {
		plantCode = s.cfg.Store.Get(sessionID).PlantCode
	}
	if plantCode == "" {
		return nil, apperrors.ErrMissingTenantScope
	}

	if reply, ok := nlg.PredefinedResponse(utterance); ok {
		_ = s.cfg.Store.WithSession(sessionID, func(c *session.Context) error {
			c.AppendTurn(utterance, reply)
			return nil
		})
		s.record(sessionID, plantCode, utterance, "", reply, nil)
		return &TurnResult{Response: reply}, nil
	}

	// An utterance naming some other plant is answered without touching
	// the pipeline; the enforced predicate would silently return the
	// wrong tenant's empty view otherwise.
	if code, _ := schema.FindPlantMention(utterance); code != "" && code != plantCode {
		s.record(sessionID, plantCode, utterance, "", UnauthorizedPlantResponse, nil)
		return &TurnResult{Response: UnauthorizedPlantResponse}, nil
	}

	var result TurnResult
	err := s.cfg.Store.WithSession(sessionID, func(c *session.Context) error {
		resolved := s.cfg.Extractor.Process(c, utterance)
		analysis := nlu.Analyze(resolved)
		if analysis.Gibberish {
			return apperrors.ErrGibberishInput
		}
		normalized := nlu.RewriteDates(resolved)

		prompt := prompts.BuildSQLGeneration(prompts.Request{
			Utterance: normalized,
			Entities:  c.Entities,
			History:   c.History,
			PlantCode: plantCode,
			Boolean:   analysis.Boolean,
		})

		llmCtx, cancel := context.WithTimeout(ctx, s.cfg.LLMTimeout)
		defer cancel()
		completion, err := s.cfg.SQLGen.Complete(llmCtx, prompt, "")
		if err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrGenerationFailure, err)
		}

		candidate, err := s.cfg.Post.Process(llm.ExtractSQL(completion), plantCode, analysis.Count)
		if err != nil {
			return err
		}
		if !candidate.Valid {
			return fmt.Errorf("%w: %s", apperrors.ErrInvalidGeneratedSQL, candidate.Reason)
		}
		result.SQL = candidate.SQL

		queryResult, err := s.cfg.Executor.Execute(ctx, candidate.SQL)
		if err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrExecutionFailure, err)
		}

		result.Response = s.render(ctx, normalized, queryResult)
		result.Suggestions = nlg.Suggestions(utterance)

		c.AppendTurn(utterance, result.Response)
		return nil
	})

	s.record(sessionID, plantCode, utterance, result.SQL, result.Response, err)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// render prefers the narrative layer when configured and falls back to
// the deterministic formatter on any trouble.
func (s *chatService) render(ctx context.Context, utterance string, queryResult datasource.QueryResult) string {
	if queryResult.Empty() || s.cfg.Narrative == nil {
		return nlg.Format(queryResult, utterance)
	}

	narrativeCtx, cancel := context.WithTimeout(ctx, s.cfg.LLMTimeout)
	defer cancel()
	text, err := s.cfg.Narrative.Generate(narrativeCtx, utterance, queryResult)
	if err != nil {
		s.logger.Warn("narrative generation failed, using formatter", zap.Error(err))
		return nlg.Format(queryResult, utterance)
	}
	return text
}

func (s *chatService) ClearHistory(ctx context.Context, sessionID string) error {
	snapshot := s.cfg.Store.Get(sessionID)
	if len(snapshot.History) > 0 {
		s.cfg.Recorder.Record(audit.Record{
			Kind:      audit.KindSessionEnd,
			SessionID: sessionID,
			PlantCode: snapshot.PlantCode,
			Response:  prompts.HistoryContext(snapshot.History),
		})
	}
	s.cfg.Store.Clear(sessionID)
	s.logger.Info("conversation history cleared", zap.String("session_id", sessionID))
	return nil
}

func (s *chatService) RecordFeedback(ctx context.Context, sessionID, utterance, response, verdict string) error {
	if verdict != "good" && verdict != "bad" {
		return fmt.Errorf("invalid feedback verdict %q", verdict)
	}
	s.cfg.Recorder.Record(audit.Record{
		Kind:      audit.KindFeedback,
		SessionID: sessionID,
		Utterance: utterance,
		Response:  response,
		Feedback:  verdict,
	})
	return nil
}

func (s *chatService) record(sessionID, plantCode, utterance, sql, response string, err error) {
	rec := audit.Record{
		Kind:      audit.KindTurn,
		SessionID: sessionID,
		PlantCode: plantCode,
		Utterance: utterance,
		SQL:       sql,
		Response:  response,
	}
	if err != nil {
		rec.Error = err.Error()
	}
	s.cfg.Recorder.Record(rec)

	s.logger.Info("turn handled",
		zap.String("session_id", sessionID),
		zap.String("plant_code", plantCode),
		zap.String("query", logging.SanitizeQuery(sql)),
		zap.Bool("failed", err != nil))
}
