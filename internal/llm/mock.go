package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is a canned response for MockProvider. Set Content for
// structured requests or Texts for free-text requests.
type MockResponse struct {
	Content json.RawMessage
	Texts   []string
	Usage   Usage
	Err     error
}

// MockText is a convenience for a free-text response.
func MockText(texts ...string) MockResponse {
	return MockResponse{Texts: texts}
}

// MockProvider returns canned responses in FIFO order and records every
// request.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request
}

func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// Generate returns the next canned response, or ErrProviderUnavailable once
// the queue is empty.
func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)
	if len(m.responses) == 0 {
		return nil, &ErrProviderUnavailable{}
	}
	next := m.responses[0]
	m.responses = m.responses[1:]
	if next.Err != nil {
		return nil, next.Err
	}

	resp := &Response{
		Content:    next.Content,
		Texts:      next.Texts,
		Usage:      next.Usage,
		Model:      "mock",
		StopReason: "end",
	}
	if resp.Content == nil && len(next.Texts) > 0 {
		resp.Content, _ = json.Marshal(next.Texts[0])
	}
	return resp, nil
}

func (m *MockProvider) ModelID() string {
	return "mock"
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
