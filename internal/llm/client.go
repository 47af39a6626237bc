package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/muhammadbalawal/MenuPlus-sub000/internal/config"
)

var (
	ErrEmptyPrompt   = errors.New("empty prompt")
	ErrEmptyResponse = errors.New("empty model response")
)

// Client sends one prompt to a text-generation model and returns its text answer.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
	// Name identifies provider and model, e.g. "gemini:gemini-2.5-flash".
	Name() string
}

// New builds the client for cfg.Provider.
func New(ctx context.Context, cfg config.LLMConfig) (Client, error) {
	switch cfg.Provider {
	case "gemini", "":
		return NewGeminiClient(ctx, cfg)
	case "openai":
		return NewOpenAIClient(cfg)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
