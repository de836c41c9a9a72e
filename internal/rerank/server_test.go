package rerank

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aproctor/stitch/internal/toolrun"
)

// overlapScorer scores each document by naive term overlap with the query.
// Deterministic and dependency-free, which is all the handler tests need.
type overlapScorer struct{}

func (overlapScorer) Score(_ context.Context, query string, documents []string) ([]float64, error) {
	terms := strings.Fields(strings.ToLower(query))
	scores := make([]float64, len(documents))
	for i, doc := range documents {
		lower := strings.ToLower(doc)
		for _, term := range terms {
			if strings.Contains(lower, term) {
				scores[i]++
			}
		}
	}
	return scores, nil
}

type failingScorer struct{}

func (failingScorer) Score(context.Context, string, []string) ([]float64, error) {
	return nil, fmt.Errorf("model exploded")
}

func newTestService(t *testing.T, scorer Scorer, ready bool) (*Service, *Client) {
	t.Helper()
	svc := New(Config{Addr: ":0", ModelName: "test-overlap"}, scorer)
	if ready {
		svc.SetReady()
	}
	srv := httptest.NewServer(svc.Handler())
	t.Cleanup(srv.Close)
	return svc, NewHTTPClient(srv.URL)
}

func TestHealth_ReportsReadiness(t *testing.T) {
	svc, client := newTestService(t, overlapScorer{}, false)

	h, err := client.Health(context.Background())
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	if h.Status != "ok" || h.ModelLoaded {
		t.Fatalf("before warmup: %+v", h)
	}

	svc.SetReady()
	h, err = client.Health(context.Background())
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	if !h.ModelLoaded {
		t.Fatalf("after warmup: %+v", h)
	}
}

func TestRerank_UnavailableBeforeWarmup(t *testing.T) {
	_, client := newTestService(t, overlapScorer{}, false)

	_, err := client.Rerank(context.Background(), Request{Query: "q", Documents: []string{"d"}})
	if err == nil || !strings.Contains(err.Error(), "503") {
		t.Fatalf("expected 503 before warmup, got %v", err)
	}
}

func TestRerank_OrdersByScoreAndKeepsOriginalIndex(t *testing.T) {
	_, client := newTestService(t, overlapScorer{}, true)

	resp, err := client.Rerank(context.Background(), Request{
		Query: "user authentication flow",
		Documents: []string{
			"dashboard rendering",
			"authentication for every user flow",
			"user settings page",
		},
	})
	if err != nil {
		t.Fatalf("rerank: %v", err)
	}
	if len(resp.RankedDocuments) != 3 {
		t.Fatalf("got %d documents", len(resp.RankedDocuments))
	}
	top := resp.RankedDocuments[0]
	if top.Index != 1 {
		t.Fatalf("top document: %+v", top)
	}
	for i := 1; i < len(resp.RankedDocuments); i++ {
		if resp.RankedDocuments[i-1].Score < resp.RankedDocuments[i].Score {
			t.Fatalf("not sorted descending: %+v", resp.RankedDocuments)
		}
	}
}

func TestRerank_TruncatesToTopK(t *testing.T) {
	_, client := newTestService(t, overlapScorer{}, true)

	docs := make([]string, 8)
	for i := range docs {
		docs[i] = fmt.Sprintf("document %d", i)
	}
	resp, err := client.Rerank(context.Background(), Request{Query: "document", Documents: docs, TopK: 2})
	if err != nil {
		t.Fatalf("rerank: %v", err)
	}
	if len(resp.RankedDocuments) != 2 {
		t.Fatalf("top_k not applied: %d", len(resp.RankedDocuments))
	}
}

func TestRerank_DefaultTopK(t *testing.T) {
	_, client := newTestService(t, overlapScorer{}, true)

	docs := make([]string, 9)
	for i := range docs {
		docs[i] = fmt.Sprintf("document %d", i)
	}
	resp, err := client.Rerank(context.Background(), Request{Query: "document", Documents: docs})
	if err != nil {
		t.Fatalf("rerank: %v", err)
	}
	if len(resp.RankedDocuments) != DefaultTopK {
		t.Fatalf("got %d want %d", len(resp.RankedDocuments), DefaultTopK)
	}
}

func TestRerank_EmptyDocumentsYieldEmptyResult(t *testing.T) {
	_, client := newTestService(t, overlapScorer{}, true)

	resp, err := client.Rerank(context.Background(), Request{Query: "q"})
	if err != nil {
		t.Fatalf("rerank: %v", err)
	}
	if len(resp.RankedDocuments) != 0 {
		t.Fatalf("got %+v want empty", resp.RankedDocuments)
	}
}

func TestRerank_ScorerFailureIsAServerError(t *testing.T) {
	_, client := newTestService(t, failingScorer{}, true)

	_, err := client.Rerank(context.Background(), Request{Query: "q", Documents: []string{"d"}})
	if err == nil || !strings.Contains(err.Error(), "scoring failed") {
		t.Fatalf("expected scoring failure, got %v", err)
	}
}

func TestWarmup_FlipsReadiness(t *testing.T) {
	svc := New(Config{ModelName: "m"}, overlapScorer{})
	if svc.Ready() {
		t.Fatalf("ready before warmup")
	}
	if err := svc.Warmup(context.Background()); err != nil {
		t.Fatalf("warmup: %v", err)
	}
	if !svc.Ready() {
		t.Fatalf("not ready after warmup")
	}
}

func TestProcessScorer_RoundTrip(t *testing.T) {
	// The fake inference command ignores its input and emits fixed scores.
	p := &ProcessScorer{Tool: toolrun.Tool{Command: []string{"sh", "-c", `cat >/dev/null; echo "[0.25, 0.75]"`}}}
	scores, err := p.Score(context.Background(), "q", []string{"a", "b"})
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if len(scores) != 2 || scores[1] != 0.75 {
		t.Fatalf("scores: %v", scores)
	}
}

func TestProcessScorer_ScoreCountMismatchRejected(t *testing.T) {
	p := &ProcessScorer{Tool: toolrun.Tool{Command: []string{"sh", "-c", `cat >/dev/null; echo "[1.0]"`}}}
	if _, err := p.Score(context.Background(), "q", []string{"a", "b"}); err == nil {
		t.Fatalf("expected mismatch error")
	}
}

func TestProcessScorer_NonZeroExitRejected(t *testing.T) {
	p := &ProcessScorer{Tool: toolrun.Tool{Command: []string{"sh", "-c", `cat >/dev/null; echo broken >&2; exit 2`}}}
	if _, err := p.Score(context.Background(), "q", []string{"a"}); err == nil {
		t.Fatalf("expected exit failure")
	}
}
