// internal/llm/factory.go
package llm

import (
	"context"
	"fmt"

	"github.com/tahcohcat/voicegen/config"
	"github.com/tahcohcat/voicegen/internal/llm/anthropic"
	"github.com/tahcohcat/voicegen/internal/llm/gemini"
	"github.com/tahcohcat/voicegen/internal/llm/ollama"
	"github.com/tahcohcat/voicegen/internal/llm/openai"
)

type Provider string

const (
	ProviderGemini    Provider = "gemini"
	ProviderOllama    Provider = "ollama"
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
)

// NewLLMClient creates a new LLM client based on the configuration
func NewLLMClient(ctx context.Context, cfg *config.Config) (LLM, error) {
	switch Provider(cfg.LLM.Provider) {
	case ProviderGemini:
		return gemini.NewClient(ctx, &cfg.Gemini)
	case ProviderOllama:
		return ollama.NewClient(&cfg.Ollama)
	case ProviderOpenAI:
		return openai.NewClient(&cfg.OpenAI)
	case ProviderAnthropic:
		return anthropic.NewClient(&cfg.Anthropic)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.LLM.Provider)
	}
}
