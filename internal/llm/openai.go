package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/muhammadbalawal/MenuPlus-sub000/internal/config"

	"github.com/sashabaranov/go-openai"
)

const systemPrompt = "You are MenuPlus AI, a careful food safety assistant. Follow the requested output format exactly."

// OpenAIClient talks to OpenAI or any OpenAI-compatible endpoint (BaseURL), such as
// a hosted LLaMA deployment.
type OpenAIClient struct {
	client          *openai.Client
	model           string
	temperature     float32
	maxOutputTokens int
}

func NewOpenAIClient(cfg config.LLMConfig) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("missing OPENAI_API_KEY")
	}
	if cfg.Model == "" {
		return nil, errors.New("missing LLM_MODEL")
	}

	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}

	return &OpenAIClient{
		client:          openai.NewClientWithConfig(oc),
		model:           cfg.Model,
		temperature:     cfg.Temperature,
		maxOutputTokens: int(cfg.MaxOutputTokens),
	}, nil
}

func (o *OpenAIClient) Name() string {
	return "openai:" + o.model
}

func (o *OpenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", ErrEmptyPrompt
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Temperature: o.temperature,
		MaxTokens:   o.maxOutputTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	text := resp.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
