package questionbank

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/learnbot/internal/curriculum"
	"github.com/abhisek/learnbot/internal/llm"
)

// ItemSchema is the structured output contract for generated items.
var ItemSchema = &llm.Schema{
	Name:        "quiz-items",
	Description: "A batch of multiple-choice computer science quiz questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"items": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question shown to the learner",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Exactly 4 distinct answer options",
						},
						"answer": map[string]any{
							"type":        "integer",
							"minimum":     0,
							"maximum":     3,
							"description": "Zero-based index of the correct option",
						},
					},
					"required":             []any{"question", "options", "answer"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"items"},
		"additionalProperties": false,
	},
}

const generatorSystemPrompt = `You write multiple-choice quiz questions for an undergraduate computer science course.
Each question has exactly 4 options and exactly one correct answer.
Questions must be self-contained, unambiguous and in plain ASCII text.`

// GeneratorConfig controls LLMGenerator.
type GeneratorConfig struct {
	MaxTokens   int
	Temperature float64
}

func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{MaxTokens: 1024, Temperature: 0.7}
}

// LLMGenerator asks an LLM provider for new items for one catalog key.
type LLMGenerator struct {
	provider llm.Provider
	config   GeneratorConfig
}

func NewLLMGenerator(p llm.Provider, cfg GeneratorConfig) *LLMGenerator {
	return &LLMGenerator{provider: p, config: cfg}
}

// GenerateInput describes the items wanted.
type GenerateInput struct {
	Module     curriculum.Module
	Difficulty curriculum.Difficulty
	Count      int
	// Existing question texts the model should not repeat.
	Existing []string
}

type itemsOutput struct {
	Items []Item `json:"items"`
}

// Generate returns count validated items. Items that break the item rules
// or repeat an existing question are dropped, so fewer than Count may be
// returned.
func (g *LLMGenerator) Generate(ctx context.Context, in GenerateInput) ([]Item, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeBankGen)

	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      generatorSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildGeneratePrompt(in)}},
		Schema:      ItemSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("generate items for %s/%s: %w", in.Module, in.Difficulty, err)
	}

	var out itemsOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse generated items: %w", err)
	}

	seen := make(map[string]bool, len(in.Existing))
	for _, q := range in.Existing {
		seen[normalizeQuestion(q)] = true
	}

	var items []Item
	for _, it := range out.Items {
		key := normalizeQuestion(it.Question)
		if it.check() != "" || seen[key] {
			continue
		}
		seen[key] = true
		items = append(items, it)
		if len(items) == in.Count {
			break
		}
	}
	return items, nil
}

func buildGeneratePrompt(in GenerateInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Module: %s\n", curriculum.DisplayName(in.Module))
	fmt.Fprintf(&b, "Difficulty: %s\n", in.Difficulty)
	fmt.Fprintf(&b, "Write %d new questions.\n", in.Count)
	if len(in.Existing) > 0 {
		b.WriteString("\nDo not repeat these questions:\n")
		for i, q := range in.Existing {
			fmt.Fprintf(&b, "%d. %s\n", i+1, q)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func normalizeQuestion(q string) string {
	return strings.ToLower(strings.Join(strings.Fields(q), " "))
}
