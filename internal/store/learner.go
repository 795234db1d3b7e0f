package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SQLLearnerRepo implements LearnerRepo on the learners and learner_scores
// tables.
type SQLLearnerRepo struct {
	db *sql.DB
}

// UpsertLearner replaces the learner's language and full score set.
func (r *SQLLearnerRepo) UpsertLearner(ctx context.Context, row LearnerRow) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `INSERT INTO learners (id, language, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET language = excluded.language, updated_at = excluded.updated_at`,
		row.ID, row.Language, time.Now().UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("upsert learner %d: %w", row.ID, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM learner_scores WHERE learner_id = ?`, row.ID); err != nil {
		return fmt.Errorf("clear scores for learner %d: %w", row.ID, err)
	}
	for module, score := range row.Scores {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO learner_scores (learner_id, module, score) VALUES (?, ?, ?)`,
			row.ID, module, score)
		if err != nil {
			return fmt.Errorf("insert score %s for learner %d: %w", module, row.ID, err)
		}
	}

	return tx.Commit()
}

// ListLearners returns every learner ordered by id.
func (r *SQLLearnerRepo) ListLearners(ctx context.Context) ([]LearnerRow, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT l.id, l.language, s.module, s.score
		FROM learners l LEFT JOIN learner_scores s ON s.learner_id = l.id
		ORDER BY l.id, s.module`)
	if err != nil {
		return nil, fmt.Errorf("query learners: %w", err)
	}
	defer rows.Close()

	var out []LearnerRow
	for rows.Next() {
		var (
			id       int
			language string
			module   sql.NullString
			score    sql.NullInt64
		)
		if err := rows.Scan(&id, &language, &module, &score); err != nil {
			return nil, fmt.Errorf("scan learner: %w", err)
		}
		if len(out) == 0 || out[len(out)-1].ID != id {
			out = append(out, LearnerRow{ID: id, Language: language, Scores: map[string]int{}})
		}
		if module.Valid {
			out[len(out)-1].Scores[module.String] = int(score.Int64)
		}
	}
	return out, rows.Err()
}

// DeleteLearner removes a learner and their scores.
func (r *SQLLearnerRepo) DeleteLearner(ctx context.Context, id int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	// foreign_keys is per connection, so scores are removed explicitly.
	if _, err := tx.ExecContext(ctx, `DELETE FROM learner_scores WHERE learner_id = ?`, id); err != nil {
		return fmt.Errorf("delete scores for learner %d: %w", id, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM learners WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete learner %d: %w", id, err)
	}
	return tx.Commit()
}
