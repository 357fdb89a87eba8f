package nlg

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/plantops/tripchat-engine/pkg/adapters/datasource"
	"github.com/plantops/tripchat-engine/pkg/llm"
	"github.com/plantops/tripchat-engine/pkg/prompts"
)

const narrativeSystemMessage = "You are a helpful assistant that answers clearly and concisely based on database query results. Do not include meta-commentary or markdown formatting explanations."

// unhelpfulReplies are completions that carry no information; the caller
// falls back to the deterministic formatter when one comes back.
var unhelpfulReplies = map[string]bool{
	"n/a": true, "null": true, "none": true,
	"i don't know": true, "no data": true, "no response": true,
}

// NarrativeGenerator summarizes query results with a completion model.
// It is an optional layer on top of Format, never a replacement for it.
type NarrativeGenerator struct {
	client llm.CompletionClient
	logger *zap.Logger
}

func NewNarrativeGenerator(client llm.CompletionClient, logger *zap.Logger) *NarrativeGenerator {
	return &NarrativeGenerator{client: client, logger: logger.Named("nlg")}
}

// Generate produces a narrative summary of the result. An error means
// the caller should use the deterministic formatter instead.
func (g *NarrativeGenerator) Generate(ctx context.Context, utterance string, result datasource.QueryResult) (string, error) {
	data, err := renderRows(result)
	if err != nil {
		return "", fmt.Errorf("render rows: %w", err)
	}

	prompt := prompts.BuildNarrative(utterance, result.Columns, data)
	reply, err := g.client.Complete(ctx, prompt, narrativeSystemMessage)
	if err != nil {
		return "", fmt.Errorf("narrative completion: %w", err)
	}

	reply = strings.TrimSpace(reply)
	if reply == "" || unhelpfulReplies[strings.ToLower(reply)] {
		g.logger.Warn("unhelpful narrative completion", zap.String("reply", reply))
		return "", fmt.Errorf("unhelpful narrative completion")
	}
	return reply, nil
}

// renderRows produces one JSON object per row, keyed by column name,
// with timestamps rendered as strings.
func renderRows(result datasource.QueryResult) (string, error) {
	var b strings.Builder
	for _, row := range result.Rows {
		obj := make(map[string]any, len(result.Columns))
		for i, col := range result.Columns {
			if i >= len(row) {
				break
			}
			if ts, ok := row[i].(time.Time); ok {
				obj[col] = ts.Format("2006-01-02 15:04:05")
			} else {
				obj[col] = row[i]
			}
		}
		line, err := json.Marshal(obj)
		if err != nil {
			return "", err
		}
		b.Write(line)
		b.WriteString("\n")
	}
	return b.String(), nil
}
