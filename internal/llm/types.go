// Package llm is a minimal client for chat-completion providers speaking
// the OpenAI-compatible HTTP protocol.
package llm

import "strings"

// Message is one turn of a chat conversation.
type Message struct {
	Role    string
	Content string
}

// Request is a single blocking completion request.
type Request struct {
	Model       string
	System      string
	Messages    []Message
	Temperature *float64
	MaxTokens   *int
}

// Validate checks that the request can be sent.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Model) == "" {
		return &ConfigurationError{Message: "model is required"}
	}
	if len(r.Messages) == 0 {
		return &ConfigurationError{Message: "at least one message is required"}
	}
	return nil
}

// Usage holds token counts reported by the provider.
type Usage struct {
	InputTokens  int64
	OutputTokens int64
}

// Response is the provider's completed answer.
type Response struct {
	Text  string
	Model string
	Usage Usage
}
