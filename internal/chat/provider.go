package chat

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/learnbot/internal/llm"
)

// ProviderGenerator adapts an llm.Provider to Generator. The prompt is sent
// as the single user message; MaxLength becomes the token budget.
// PadTokenID has no equivalent in hosted APIs and is ignored.
type ProviderGenerator struct {
	provider llm.Provider
}

func NewProviderGenerator(p llm.Provider) *ProviderGenerator {
	return &ProviderGenerator{provider: p}
}

func (g *ProviderGenerator) Generate(ctx context.Context, prompt string, opts GenerateOptions) ([]string, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeChat)

	temperature := opts.Temperature
	if !opts.DoSample {
		temperature = 0
	}
	resp, err := g.provider.Generate(ctx, llm.Request{
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		MaxTokens:   opts.MaxLength,
		Temperature: temperature,
		Candidates:  opts.NumReturnSequences,
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Texts) > 0 {
		return resp.Texts, nil
	}
	// Providers that only fill Content encode text as a JSON string.
	var text string
	if err := json.Unmarshal(resp.Content, &text); err != nil {
		return nil, fmt.Errorf("decode text response: %w", err)
	}
	return []string{text}, nil
}
