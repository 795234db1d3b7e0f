package llm

import (
	"context"
	"encoding/json"
)

// Provider is a text generation backend. Callers either ask for structured
// JSON (Request.Schema set) or free text (Schema nil).
type Provider interface {
	// Generate runs one request. With a Schema, Response.Content is JSON that
	// validated against it. Without one, Response.Texts holds the generated
	// candidates and Content is the first candidate encoded as a JSON string.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the configured model identifier.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	System   string
	Messages []Message

	// Schema requests structured output. Nil means free text.
	Schema *Schema

	MaxTokens int

	// Temperature controls randomness. Zero means the provider default for
	// greedy decoding.
	Temperature float64

	// Candidates is how many alternative completions to return for free-text
	// requests. Zero or one means a single completion. Providers that cannot
	// sample several completions return one.
	Candidates int
}

// Message is one conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is the JSON Schema a structured response must satisfy.
type Schema struct {
	// Name is a kebab-case identifier, used as the tool or schema name by
	// providers and as the validation cache key.
	Name        string
	Description string
	Definition  map[string]any
}

// Response holds the model's output.
type Response struct {
	Content json.RawMessage
	Texts   []string
	Usage   Usage
	Model   string

	// StopReason is normalized to "end", "max_tokens" or "error".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// textResponse fills Content from the first text candidate.
func textResponse(texts []string) (json.RawMessage, error) {
	if len(texts) == 0 {
		return nil, &ErrInvalidResponse{Err: errNoCandidates}
	}
	return json.Marshal(texts[0])
}

func candidateCount(req Request) int {
	if req.Schema != nil || req.Candidates < 1 {
		return 1
	}
	return req.Candidates
}
