package roster

import (
	"context"
	"fmt"

	"github.com/abhisek/learnbot/internal/store"
)

// FromStore builds a Roster from persisted learners.
func FromStore(ctx context.Context, repo store.LearnerRepo) (*Roster, error) {
	rows, err := repo.ListLearners(ctx)
	if err != nil {
		return nil, fmt.Errorf("list learners: %w", err)
	}
	records := make([]LearnerRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := fromStrings(row.ID, row.Language, row.Scores)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return New(records...)
}

// SaveTo writes every learner in r to repo, replacing existing rows with
// the same ids.
func SaveTo(ctx context.Context, repo store.LearnerRepo, r *Roster) error {
	for _, id := range r.IDs() {
		rec := r.records[id]
		row := store.LearnerRow{ID: rec.ID, Language: string(rec.Language), Scores: map[string]int{}}
		for m, s := range rec.Scores {
			row.Scores[string(m)] = s
		}
		if err := repo.UpsertLearner(ctx, row); err != nil {
			return err
		}
	}
	return nil
}

// Source describes where a roster comes from. The first non-empty option
// wins: File, then Store (if it holds any learners), then the built-in
// reference roster.
type Source struct {
	File  string
	Store store.LearnerRepo
}

// Load resolves the roster from src.
func Load(ctx context.Context, src Source) (*Roster, error) {
	if src.File != "" {
		return LoadFile(src.File)
	}
	if src.Store != nil {
		r, err := FromStore(ctx, src.Store)
		if err != nil {
			return nil, err
		}
		if r.Len() > 0 {
			return r, nil
		}
	}
	return Default(), nil
}
