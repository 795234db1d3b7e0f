package questionbank

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/abhisek/learnbot/internal/curriculum"
	"github.com/abhisek/learnbot/internal/llm"
)

func mockItems(t *testing.T, items ...Item) llm.MockResponse {
	t.Helper()
	raw, err := json.Marshal(itemsOutput{Items: items})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return llm.MockResponse{Content: raw}
}

func TestLLMGenerator_FiltersInvalidAndDuplicates(t *testing.T) {
	mock := llm.NewMockProvider(mockItems(t,
		Item{Question: "What is a B+ tree?", Options: []string{"a", "b", "c", "d"}, Answer: 2},
		Item{Question: "what is  a b+ tree?", Options: []string{"a", "b", "c", "d"}, Answer: 1},
		Item{Question: "Bad", Options: []string{"only"}, Answer: 0},
		Item{Question: "What is an index?", Options: []string{"a", "b", "c", "d"}, Answer: 0},
		Item{Question: "What is normalization?", Options: []string{"a", "b", "c", "d"}, Answer: 3},
	))
	g := NewLLMGenerator(mock, DefaultGeneratorConfig())

	items, err := g.Generate(context.Background(), GenerateInput{
		Module:     curriculum.DBMS,
		Difficulty: curriculum.Medium,
		Count:      5,
		Existing:   []string{"What is an index?"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d: %+v", len(items), items)
	}
	if items[0].Question != "What is a B+ tree?" || items[1].Question != "What is normalization?" {
		t.Errorf("unexpected items: %+v", items)
	}

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	req := mock.Calls[0]
	if req.Schema != ItemSchema {
		t.Error("expected item schema on request")
	}
	if !strings.Contains(req.Messages[0].Content, "Module: Dbms") ||
		!strings.Contains(req.Messages[0].Content, "1. What is an index?") {
		t.Errorf("unexpected prompt:\n%s", req.Messages[0].Content)
	}
}

func TestLLMGenerator_RespectsCount(t *testing.T) {
	mock := llm.NewMockProvider(mockItems(t,
		Item{Question: "Q1?", Options: []string{"a", "b"}, Answer: 0},
		Item{Question: "Q2?", Options: []string{"a", "b"}, Answer: 1},
	))
	items, err := NewLLMGenerator(mock, DefaultGeneratorConfig()).Generate(context.Background(),
		GenerateInput{Module: curriculum.Algorithms, Difficulty: curriculum.Easy, Count: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
}

func TestLLMGenerator_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider()
	_, err := NewLLMGenerator(mock, DefaultGeneratorConfig()).Generate(context.Background(),
		GenerateInput{Module: curriculum.Algorithms, Difficulty: curriculum.Easy, Count: 1})
	if err == nil {
		t.Fatal("expected error from empty mock")
	}
}
