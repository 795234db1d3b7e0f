package store

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()
	db.SetMaxOpenConns(1)

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		if err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got); err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestWALModeOnFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "learnbot.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()
	s.DB().SetMaxOpenConns(1)

	var mode string
	if err := s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "learnbot.db")
	for i := 0; i < 2; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("open #%d: %v", i, err)
		}
		s.Close()
	}
}

func TestLLMEvents_AppendQueryGet(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "mock", Model: "mock", Purpose: "chat", InputTokens: 10, OutputTokens: 5, LatencyMs: 100, Success: true, RequestBody: "[user]\nhi"},
		{Provider: "mock", Model: "mock", Purpose: "bank-gen", InputTokens: 20, OutputTokens: 30, LatencyMs: 300, Success: true},
		{Provider: "mock", Model: "gpt-4o-mini", Purpose: "chat", LatencyMs: 200, Success: false, ErrorMessage: "boom"},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 events, got %d", len(all))
	}
	if all[0].ErrorMessage != "boom" || all[0].Success {
		t.Errorf("expected newest event first, got %+v", all[0])
	}

	chat, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "chat", Limit: 1})
	if err != nil {
		t.Fatalf("query chat: %v", err)
	}
	if len(chat) != 1 || chat[0].Purpose != "chat" {
		t.Fatalf("unexpected filtered result: %+v", chat)
	}

	got, err := repo.GetLLMEvent(ctx, all[2].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.RequestBody != "[user]\nhi" {
		t.Fatalf("unexpected event: %+v", got)
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Fatal("expected nil for missing event")
	}
}

func TestLLMUsageAggregates(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, e := range []LLMRequestEventData{
		{Model: "a", Purpose: "chat", InputTokens: 10, OutputTokens: 1, LatencyMs: 100, Success: true},
		{Model: "a", Purpose: "chat", InputTokens: 20, OutputTokens: 2, LatencyMs: 300, Success: true},
		{Model: "b", Purpose: "bank-gen", InputTokens: 5, OutputTokens: 5, LatencyMs: 50, Success: true},
	} {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("expected 2 purposes, got %d", len(byPurpose))
	}
	if p := byPurpose[0]; p.Purpose != "chat" || p.Calls != 2 || p.InputTokens != 30 || p.AvgLatencyMs != 200 {
		t.Errorf("unexpected chat usage: %+v", p)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("by model: %v", err)
	}
	if len(byModel) != 2 || byModel[0].Model != "a" || byModel[0].OutputTokens != 3 {
		t.Errorf("unexpected model usage: %+v", byModel)
	}
}

func TestLearners_UpsertListDelete(t *testing.T) {
	s := openTestStore(t)
	repo := s.LearnerRepo()
	ctx := context.Background()

	row := LearnerRow{ID: 2, Language: "hi", Scores: map[string]int{"dbms": 80, "algorithms": 68}}
	if err := repo.UpsertLearner(ctx, row); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := repo.UpsertLearner(ctx, LearnerRow{ID: 1, Language: "ta", Scores: map[string]int{"dbms": 75}}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	// Replacing scores drops modules not in the new set.
	row.Scores = map[string]int{"dbms": 90}
	row.Language = "te"
	if err := repo.UpsertLearner(ctx, row); err != nil {
		t.Fatalf("re-upsert: %v", err)
	}

	list, err := repo.ListLearners(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 learners, got %d", len(list))
	}
	if list[0].ID != 1 || list[1].ID != 2 {
		t.Fatalf("expected id order, got %d, %d", list[0].ID, list[1].ID)
	}
	if list[1].Language != "te" || len(list[1].Scores) != 1 || list[1].Scores["dbms"] != 90 {
		t.Errorf("unexpected learner 2: %+v", list[1])
	}

	if err := repo.DeleteLearner(ctx, 1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	list, err = repo.ListLearners(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != 2 {
		t.Errorf("unexpected list after delete: %+v", list)
	}
}

func TestLearners_RejectsOutOfRangeScore(t *testing.T) {
	s := openTestStore(t)
	err := s.LearnerRepo().UpsertLearner(context.Background(),
		LearnerRow{ID: 1, Scores: map[string]int{"dbms": 101}})
	if err == nil {
		t.Fatal("expected CHECK constraint failure")
	}
}
