// Package recommend turns a progress snapshot into a content suggestion.
package recommend

import (
	"fmt"
	"strings"

	"github.com/abhisek/learnbot/internal/curriculum"
	"github.com/abhisek/learnbot/internal/progress"
)

// Suggest names the learner's weakest module and points them at its basics.
func Suggest(s progress.Snapshot) string {
	m := progress.WeakestModule(s)
	return fmt.Sprintf("Suggested content for %s: Learn basic concepts of %s.",
		curriculum.DisplayName(m), strings.ToLower(m.Spaced()))
}
