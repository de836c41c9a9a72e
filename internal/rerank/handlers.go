package rerank

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
)

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:      "ok",
		ModelLoaded: s.Ready(),
	})
}

func (s *Service) handleInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, InfoResponse{
		Service: "stitch reranker",
		Model:   s.config.ModelName,
		Endpoints: map[string]string{
			"health": "/health",
			"rerank": "/rerank (POST)",
		},
	})
}

func (s *Service) handleRerank(w http.ResponseWriter, r *http.Request) {
	if !s.Ready() {
		writeError(w, http.StatusServiceUnavailable, "model not loaded")
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if len(req.Documents) == 0 {
		writeJSON(w, http.StatusOK, Response{RankedDocuments: []RankedDocument{}})
		return
	}
	topK := req.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}

	scores, err := s.scorer.Score(r.Context(), req.Query, req.Documents)
	if err != nil {
		s.logger.Printf("rerank failed: %v", err)
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("scoring failed: %v", err))
		return
	}

	ranked := make([]RankedDocument, len(req.Documents))
	for i, doc := range req.Documents {
		ranked[i] = RankedDocument{Text: doc, Score: scores[i], Index: i}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	if len(ranked) > topK {
		ranked = ranked[:topK]
	}

	writeJSON(w, http.StatusOK, Response{RankedDocuments: ranked})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
