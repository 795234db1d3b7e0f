package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config holds LLM provider configuration.
type Config struct {
	Provider string

	Anthropic  ProviderConfig
	OpenAI     ProviderConfig
	Gemini     ProviderConfig
	OpenRouter ProviderConfig
	Retry      RetryConfig

	// Timeout bounds a single Generate call including retries.
	Timeout time.Duration
}

// ProviderConfig is the per-backend part of Config. BaseURL is honored by
// the OpenAI-compatible backends only.
type ProviderConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

func DefaultConfig() Config {
	return Config{
		Provider:   ProviderAnthropic,
		Anthropic:  ProviderConfig{Model: "claude-haiku"},
		OpenAI:     ProviderConfig{Model: "gpt-4o-mini"},
		Gemini:     ProviderConfig{Model: "gemini-flash"},
		OpenRouter: ProviderConfig{Model: "google/gemini-2.0-flash-exp", BaseURL: defaultOpenRouterBaseURL},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     5 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 20 * time.Second,
	}
}

// backend returns the ProviderConfig for name.
func (c *Config) backend(name string) *ProviderConfig {
	switch name {
	case ProviderAnthropic:
		return &c.Anthropic
	case ProviderOpenAI:
		return &c.OpenAI
	case ProviderGemini:
		return &c.Gemini
	case ProviderOpenRouter:
		return &c.OpenRouter
	}
	return nil
}

var backendEnvPrefix = map[string]string{
	ProviderAnthropic:  "LEARNBOT_ANTHROPIC",
	ProviderOpenAI:     "LEARNBOT_OPENAI",
	ProviderGemini:     "LEARNBOT_GEMINI",
	ProviderOpenRouter: "LEARNBOT_OPENROUTER",
}

// ConfigFromEnv overlays LEARNBOT_* variables on DefaultConfig:
// LEARNBOT_LLM_PROVIDER selects the backend and
// LEARNBOT_<BACKEND>_{API_KEY,MODEL,BASE_URL} configure each one.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if p := os.Getenv("LEARNBOT_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}
	for name, prefix := range backendEnvPrefix {
		b := cfg.backend(name)
		if v := os.Getenv(prefix + "_API_KEY"); v != "" {
			b.APIKey = v
		}
		if v := os.Getenv(prefix + "_MODEL"); v != "" {
			b.Model = v
		}
		if v := os.Getenv(prefix + "_BASE_URL"); v != "" {
			b.BaseURL = v
		}
	}
	return cfg
}

// discoveryOrder lists the vendor-standard key variables probed by
// DiscoverConfig, first match wins.
var discoveryOrder = []struct {
	env      string
	provider string
}{
	{"GEMINI_API_KEY", ProviderGemini},
	{"OPENAI_API_KEY", ProviderOpenAI},
	{"ANTHROPIC_API_KEY", ProviderAnthropic},
	{"OPENROUTER_API_KEY", ProviderOpenRouter},
}

// DiscoverConfig returns a Config for the first vendor-standard API key
// found in the environment.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	for _, d := range discoveryOrder {
		if k := os.Getenv(d.env); k != "" {
			cfg.Provider = d.provider
			cfg.backend(d.provider).APIKey = k
			return cfg, true
		}
	}
	return Config{}, false
}

// Validate checks that the selected provider has its API key.
func (c Config) Validate() error {
	if c.Provider == ProviderMock {
		return nil
	}
	b := c.backend(c.Provider)
	if b == nil {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if b.APIKey == "" {
		return fmt.Errorf("%s_API_KEY is required for the %s provider", backendEnvPrefix[c.Provider], c.Provider)
	}
	return nil
}
