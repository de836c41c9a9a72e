package llm

import (
	"context"
	"os"
	"strings"
)

// Client routes completion requests to a configured adapter.
type Client struct {
	adapter *Adapter
}

func NewClient(adapter *Adapter) *Client {
	return &Client{adapter: adapter}
}

// NewFromEnv constructs a client from OPENAI_API_KEY and, optionally,
// OPENAI_BASE_URL.
func NewFromEnv() (*Client, error) {
	key := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if key == "" {
		return nil, &ConfigurationError{Message: "OPENAI_API_KEY is not set"}
	}
	base := strings.TrimSpace(os.Getenv("OPENAI_BASE_URL"))
	if base == "" {
		base = "https://api.openai.com"
	}
	return NewClient(NewAdapter(AdapterConfig{APIKey: key, BaseURL: base})), nil
}

// Complete validates the request and sends it through the adapter.
func (c *Client) Complete(ctx context.Context, req Request) (Response, error) {
	if err := req.Validate(); err != nil {
		return Response{}, err
	}
	if c == nil || c.adapter == nil {
		return Response{}, &ConfigurationError{Message: "no provider adapter configured"}
	}
	return c.adapter.Complete(ctx, req)
}
