package rerank

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aproctor/stitch/internal/toolrun"
)

// Scorer assigns a relevance score to every document for a query. Higher
// means more relevant. Implementations must return one score per document.
type Scorer interface {
	Score(ctx context.Context, query string, documents []string) ([]float64, error)
}

// ProcessScorer delegates scoring to an external inference command. The
// request is written to the command's stdin as JSON and the command must
// print a JSON array of scores, one per document, on stdout.
type ProcessScorer struct {
	Tool toolrun.Tool
}

type processScorerRequest struct {
	Query     string   `json:"query"`
	Documents []string `json:"documents"`
}

func (p *ProcessScorer) Score(ctx context.Context, query string, documents []string) ([]float64, error) {
	if len(documents) == 0 {
		return nil, nil
	}
	payload, err := json.Marshal(processScorerRequest{Query: query, Documents: documents})
	if err != nil {
		return nil, err
	}
	res, err := toolrun.Run(ctx, p.Tool, string(payload))
	if err != nil {
		return nil, fmt.Errorf("scorer: %w", err)
	}
	if res.ExitCode != 0 {
		return nil, fmt.Errorf("scorer exited %d: %s", res.ExitCode, res.Stderr)
	}
	var scores []float64
	if err := json.Unmarshal([]byte(res.Stdout), &scores); err != nil {
		return nil, fmt.Errorf("scorer output: %w", err)
	}
	if len(scores) != len(documents) {
		return nil, fmt.Errorf("scorer returned %d scores for %d documents", len(scores), len(documents))
	}
	return scores, nil
}
