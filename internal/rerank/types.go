package rerank

// Request is the POST /rerank request body.
type Request struct {
	Query     string   `json:"query"`
	Documents []string `json:"documents"`

	// TopK limits the number of returned documents. Zero means the
	// default of 5.
	TopK int `json:"top_k,omitempty"`
}

// RankedDocument is one scored document in a rerank response.
type RankedDocument struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
	Index int     `json:"index"`
}

// Response is the POST /rerank response body.
type Response struct {
	RankedDocuments []RankedDocument `json:"ranked_documents"`
}

// HealthResponse is the GET /health response body.
type HealthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
}

// InfoResponse is the GET / response body.
type InfoResponse struct {
	Service   string            `json:"service"`
	Model     string            `json:"model"`
	Endpoints map[string]string `json:"endpoints"`
}

// ErrorResponse is the error body for all endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}
