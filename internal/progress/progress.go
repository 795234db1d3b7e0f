// Package progress derives read-only views of a learner's proficiency and
// the difficulty policy that follows from it.
package progress

import (
	"github.com/samber/lo"

	"github.com/abhisek/learnbot/internal/curriculum"
	"github.com/abhisek/learnbot/internal/roster"
)

// Snapshot is a learner's scores at the time of evaluation.
type Snapshot struct {
	LearnerID int
	Scores    map[curriculum.Module]int
}

// Score returns the score for m.
func (s Snapshot) Score(m curriculum.Module) int {
	return s.Scores[m]
}

// Modules returns the snapshot's modules in canonical order.
func (s Snapshot) Modules() []curriculum.Module {
	return curriculum.AllModules()
}

// Evaluator produces snapshots from a roster.
type Evaluator struct {
	roster *roster.Roster
}

func NewEvaluator(r *roster.Roster) *Evaluator {
	return &Evaluator{roster: r}
}

// Snapshot returns the learner's recorded scores. Unknown ids fail with
// *roster.UnknownLearnerError; scores are never defaulted.
func (e *Evaluator) Snapshot(learnerID int) (Snapshot, error) {
	rec, err := e.roster.Lookup(learnerID)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{LearnerID: rec.ID, Scores: rec.Scores}, nil
}

// WeakestModule returns the module with the lowest score. Ties go to the
// module that comes first in canonical order.
func WeakestModule(s Snapshot) curriculum.Module {
	return lo.MinBy(s.Modules(), func(a, b curriculum.Module) bool {
		return s.Scores[a] < s.Scores[b]
	})
}

// Difficulty thresholds.
const (
	foundationThreshold = 70 // data_structures below this keeps questions easy
	advancedThreshold   = 85 // algorithms above this unlocks hard questions
)

// DifficultyTier picks the question tier for a learner. Data structures
// decides between easy and medium; strong algorithms overrides to hard.
func DifficultyTier(s Snapshot) curriculum.Difficulty {
	d := curriculum.Medium
	if s.Scores[curriculum.DataStructures] < foundationThreshold {
		d = curriculum.Easy
	}
	if s.Scores[curriculum.Algorithms] > advancedThreshold {
		d = curriculum.Hard
	}
	return d
}
