package questionbank

import (
	"fmt"
	"strings"

	"github.com/abhisek/learnbot/internal/curriculum"
)

// Item is a single multiple-choice question.
type Item struct {
	Question string   `yaml:"question" json:"question"`
	Options  []string `yaml:"options" json:"options"`
	Answer   int      `yaml:"answer" json:"answer"`
}

// Correct reports whether choice is the answer index.
func (it Item) Correct(choice int) bool {
	return choice == it.Answer
}

// AnswerText returns the text of the correct option.
func (it Item) AnswerText() string {
	return it.Options[it.Answer]
}

// InvalidItemError describes a catalog item that breaks the item rules.
type InvalidItemError struct {
	Module     curriculum.Module
	Difficulty curriculum.Difficulty
	Index      int
	Message    string
}

func (e *InvalidItemError) Error() string {
	return fmt.Sprintf("invalid item %s/%s[%d]: %s", e.Module, e.Difficulty, e.Index, e.Message)
}

// check returns a description of the first rule the item breaks, or "".
func (it Item) check() string {
	if strings.TrimSpace(it.Question) == "" {
		return "empty question"
	}
	if len(it.Options) < 2 {
		return fmt.Sprintf("need at least 2 options, got %d", len(it.Options))
	}
	seen := make(map[string]bool, len(it.Options))
	for i, o := range it.Options {
		if strings.TrimSpace(o) == "" {
			return fmt.Sprintf("option %d is empty", i)
		}
		if seen[o] {
			return fmt.Sprintf("duplicate option %q", o)
		}
		seen[o] = true
	}
	if it.Answer < 0 || it.Answer >= len(it.Options) {
		return fmt.Sprintf("answer index %d out of range [0,%d)", it.Answer, len(it.Options))
	}
	return ""
}
