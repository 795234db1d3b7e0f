package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/abhisek/learnbot/internal/logger"
	"github.com/abhisek/learnbot/internal/store"
)

func TestMockProvider_FIFO(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10}},
		MockText("first", "second"),
	)

	resp, err := mock.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"a":1}` || resp.Usage.InputTokens != 10 {
		t.Fatalf("unexpected first response: %+v", resp)
	}

	resp, err = mock.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Texts) != 2 || resp.Texts[1] != "second" {
		t.Fatalf("unexpected texts: %v", resp.Texts)
	}
	if string(resp.Content) != `"first"` {
		t.Fatalf("expected first text as JSON string, got %s", resp.Content)
	}

	_, err = mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable after queue drained, got %v", err)
	}
	if mock.CallCount() != 3 {
		t.Fatalf("expected 3 calls, got %d", mock.CallCount())
	}
}

func TestMockProvider_ReturnsConfiguredError(t *testing.T) {
	want := &ErrRateLimit{RetryAfter: time.Second}
	mock := NewMockProvider(MockResponse{Err: want})
	_, err := mock.Generate(context.Background(), Request{})
	if !errors.Is(err, want) {
		t.Fatalf("expected configured error, got %v", err)
	}
}

func TestPurposeContext(t *testing.T) {
	if got := PurposeFrom(context.Background()); got != "unknown" {
		t.Errorf("default purpose = %q", got)
	}
	if got := PurposeFrom(WithPurpose(context.Background(), "chat")); got != "chat" {
		t.Errorf("purpose = %q", got)
	}
}

type recordingRepo struct {
	mu     sync.Mutex
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, data)
	return r.err
}

func TestLoggingProvider_RecordsEvents(t *testing.T) {
	repo := &recordingRepo{}
	mock := NewMockProvider(
		MockText("Binary search halves the range."),
		MockResponse{Err: &ErrProviderUnavailable{}},
	)
	p := WithLogging(mock, "mock", repo, logger.Nop())
	ctx := WithPurpose(context.Background(), "chat")
	req := Request{System: "sys", Messages: []Message{{Role: RoleUser, Content: "hello"}}}

	if _, err := p.Generate(ctx, req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := p.Generate(ctx, req); err == nil {
		t.Fatal("expected error")
	}

	if len(repo.events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(repo.events))
	}
	ok, failed := repo.events[0], repo.events[1]
	if !ok.Success || ok.Purpose != "chat" || ok.Provider != "mock" {
		t.Errorf("unexpected success event: %+v", ok)
	}
	if !strings.Contains(ok.RequestBody, "[system]\nsys") || !strings.Contains(ok.RequestBody, "[user]\nhello") {
		t.Errorf("unexpected request body: %q", ok.RequestBody)
	}
	if ok.ResponseBody != `"Binary search halves the range."` {
		t.Errorf("unexpected response body: %q", ok.ResponseBody)
	}
	if failed.Success || failed.ErrorMessage == "" {
		t.Errorf("unexpected failure event: %+v", failed)
	}
}

func TestLoggingProvider_RepoFailureDoesNotFailRequest(t *testing.T) {
	repo := &recordingRepo{err: errors.New("disk full")}
	p := WithLogging(NewMockProvider(MockText("ok")), "mock", repo, nil)
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoggingProvider_NilRepo(t *testing.T) {
	p := WithLogging(NewMockProvider(MockText("ok")), "mock", nil, nil)
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

type blockingProvider struct{}

func (blockingProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (blockingProvider) ModelID() string { return "blocking" }

func TestTimeoutProvider(t *testing.T) {
	p := WithTimeout(blockingProvider{}, 10*time.Millisecond)
	_, err := p.Generate(context.Background(), Request{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if p.ModelID() != "blocking" {
		t.Errorf("ModelID = %q", p.ModelID())
	}
	if WithTimeout(blockingProvider{}, 0) != (blockingProvider{}) {
		t.Error("zero timeout should return the provider unchanged")
	}
}

func TestBuildResponse(t *testing.T) {
	schema := &Schema{
		Name: "test-build-response",
		Definition: map[string]any{
			"type":       "object",
			"properties": map[string]any{"n": map[string]any{"type": "integer"}},
			"required":   []any{"n"},
		},
	}

	resp, err := buildResponse(Request{Schema: schema}, []string{`{"n":1}`}, Usage{}, "m", "end")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"n":1}` || resp.Texts != nil {
		t.Errorf("unexpected structured response: %+v", resp)
	}

	_, err = buildResponse(Request{Schema: schema}, []string{`{"n":`}, Usage{}, "m", "max_tokens")
	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Errorf("expected ErrMaxTokensExceeded, got %v", err)
	}

	_, err = buildResponse(Request{}, nil, Usage{}, "m", "end")
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Errorf("expected ErrInvalidResponse for no candidates, got %v", err)
	}

	resp, err = buildResponse(Request{}, []string{"a", "b"}, Usage{}, "m", "max_tokens")
	if err != nil {
		t.Fatalf("text responses may be truncated: %v", err)
	}
	if len(resp.Texts) != 2 || string(resp.Content) != `"a"` {
		t.Errorf("unexpected text response: %+v", resp)
	}
}

func TestCandidateCount(t *testing.T) {
	tests := []struct {
		req  Request
		want int
	}{
		{Request{}, 1},
		{Request{Candidates: 3}, 3},
		{Request{Candidates: 3, Schema: &Schema{}}, 1},
		{Request{Candidates: -2}, 1},
	}
	for _, tt := range tests {
		if got := candidateCount(tt.req); got != tt.want {
			t.Errorf("candidateCount(%+v) = %d, want %d", tt.req, got, tt.want)
		}
	}
}
