// Package roster holds the learner records the engine evaluates. A Roster is
// an immutable value built once from a source (the built-in reference set, a
// YAML file or the SQLite store) and passed to whatever needs it.
package roster

import (
	"fmt"
	"sort"

	"github.com/abhisek/learnbot/internal/curriculum"
	"github.com/abhisek/learnbot/internal/i18n"
)

// LearnerRecord is one learner's per-module scores and preferred language.
type LearnerRecord struct {
	ID       int
	Scores   map[curriculum.Module]int
	Language i18n.Language
}

// UnknownLearnerError is returned when a learner id is not in the roster.
type UnknownLearnerError struct {
	ID int
}

func (e *UnknownLearnerError) Error() string {
	return fmt.Sprintf("unknown learner %d", e.ID)
}

// InvalidRecordError describes a record rejected at roster construction.
type InvalidRecordError struct {
	ID     int
	Reason string
}

func (e *InvalidRecordError) Error() string {
	return fmt.Sprintf("invalid learner record %d: %s", e.ID, e.Reason)
}

// Roster is a read-only set of learner records keyed by id.
type Roster struct {
	records map[int]LearnerRecord
}

// New validates the records and builds a Roster. Every record must carry a
// score in [0,100] for each canonical module and nothing else; ids must be
// unique.
func New(records ...LearnerRecord) (*Roster, error) {
	r := &Roster{records: make(map[int]LearnerRecord, len(records))}
	for _, rec := range records {
		if _, dup := r.records[rec.ID]; dup {
			return nil, &InvalidRecordError{ID: rec.ID, Reason: "duplicate id"}
		}
		if err := validate(rec); err != nil {
			return nil, err
		}
		r.records[rec.ID] = clone(rec)
	}
	return r, nil
}

func validate(rec LearnerRecord) error {
	for _, m := range curriculum.AllModules() {
		score, ok := rec.Scores[m]
		if !ok {
			return &InvalidRecordError{ID: rec.ID, Reason: fmt.Sprintf("missing score for %s", m)}
		}
		if score < 0 || score > 100 {
			return &InvalidRecordError{ID: rec.ID, Reason: fmt.Sprintf("score %d for %s out of range [0,100]", score, m)}
		}
	}
	for m := range rec.Scores {
		if !m.Valid() {
			return &InvalidRecordError{ID: rec.ID, Reason: fmt.Sprintf("unknown module %q", m)}
		}
	}
	return nil
}

func clone(rec LearnerRecord) LearnerRecord {
	scores := make(map[curriculum.Module]int, len(rec.Scores))
	for k, v := range rec.Scores {
		scores[k] = v
	}
	rec.Scores = scores
	return rec
}

// Lookup returns a copy of the learner's record.
func (r *Roster) Lookup(id int) (LearnerRecord, error) {
	rec, ok := r.records[id]
	if !ok {
		return LearnerRecord{}, &UnknownLearnerError{ID: id}
	}
	return clone(rec), nil
}

// IDs returns all learner ids in ascending order.
func (r *Roster) IDs() []int {
	ids := make([]int, 0, len(r.records))
	for id := range r.records {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Len returns the number of learners.
func (r *Roster) Len() int {
	return len(r.records)
}

// Default returns the built-in reference roster.
func Default() *Roster {
	r, err := New(
		LearnerRecord{
			ID: 1,
			Scores: map[curriculum.Module]int{
				curriculum.DataStructures:   85,
				curriculum.Algorithms:       78,
				curriculum.OperatingSystems: 92,
				curriculum.DBMS:             75,
				curriculum.ComputerNetworks: 82,
			},
			Language: i18n.Tamil,
		},
		LearnerRecord{
			ID: 2,
			Scores: map[curriculum.Module]int{
				curriculum.DataStructures:   72,
				curriculum.Algorithms:       68,
				curriculum.OperatingSystems: 88,
				curriculum.DBMS:             80,
				curriculum.ComputerNetworks: 67,
			},
			Language: i18n.Hindi,
		},
		LearnerRecord{
			ID: 3,
			Scores: map[curriculum.Module]int{
				curriculum.DataStructures:   90,
				curriculum.Algorithms:       65,
				curriculum.OperatingSystems: 80,
				curriculum.DBMS:             70,
				curriculum.ComputerNetworks: 88,
			},
			Language: i18n.Telugu,
		},
	)
	if err != nil {
		panic(fmt.Sprintf("reference roster is invalid: %v", err))
	}
	return r
}
