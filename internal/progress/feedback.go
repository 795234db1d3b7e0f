package progress

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/samber/lo"

	"github.com/abhisek/learnbot/internal/curriculum"
)

// Tier is a qualitative band for a single module score.
type Tier int

const (
	NeedsImprovement Tier = iota // below 70
	GoodProgress                 // 70 to 79
	Excellent                    // 80 and above
)

// QualitativeTier bands a score: <70, [70,80), >=80.
func QualitativeTier(score int) Tier {
	switch {
	case score < 70:
		return NeedsImprovement
	case score < 80:
		return GoodProgress
	default:
		return Excellent
	}
}

// Phrase renders the tier for one module.
func (t Tier) Phrase(m curriculum.Module) string {
	name := curriculum.DisplayName(m)
	switch t {
	case NeedsImprovement:
		return "Need improvement in " + name
	case GoodProgress:
		return "Good progress in " + name
	default:
		return "Excellent in " + name
	}
}

func (t Tier) String() string {
	switch t {
	case NeedsImprovement:
		return "needs-improvement"
	case GoodProgress:
		return "good-progress"
	default:
		return "excellent"
	}
}

// Feedback returns one phrase per module in canonical order, separated by
// a single space.
func Feedback(s Snapshot) string {
	phrases := lo.Map(s.Modules(), func(m curriculum.Module, _ int) string {
		return QualitativeTier(s.Scores[m]).Phrase(m)
	})
	return strings.Join(phrases, " ")
}

// AdaptiveQuestion builds a question prompt at the learner's difficulty tier
// about a uniformly chosen module.
func AdaptiveQuestion(s Snapshot, r *rand.Rand) string {
	mods := s.Modules()
	m := mods[r.IntN(len(mods))]
	return fmt.Sprintf("Question difficulty: %s. Question: What is the advanced concept in %s?",
		DifficultyTier(s), m)
}
