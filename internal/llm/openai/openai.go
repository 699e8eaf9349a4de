// internal/llm/openai/openai.go
package openai

import (
	"context"
	"fmt"

	goopenai "github.com/sashabaranov/go-openai"
	"github.com/tahcohcat/voicegen/config"
	"github.com/tahcohcat/voicegen/internal/logger"
)

type Client struct {
	client *goopenai.Client
	config *config.OpenAIConfig
	logger *logger.Log
}

func NewClient(cfg *config.OpenAIConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientCfg := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Client{
		client: goopenai.NewClientWithConfig(clientCfg),
		config: cfg,
		logger: logger.Named("openai"),
	}, nil
}

func (c *Client) GenerateResponse(ctx context.Context, prompt string) (string, error) {
	req := goopenai.ChatCompletionRequest{
		Model: c.config.Model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   c.config.MaxTokens,
	}

	c.logger.Debug(fmt.Sprintf("Generating response with OpenAI model %s", c.config.Model))

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		c.logger.WithError(err).Error("Failed to make OpenAI request")
		return "", fmt.Errorf("openai request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in OpenAI response")
	}

	c.logger.Debug(fmt.Sprintf("Generated response: %d tokens used", resp.Usage.TotalTokens))
	return resp.Choices[0].Message.Content, nil
}

func (c *Client) IsModelAvailable(ctx context.Context) error {
	models, err := c.client.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}

	var available []string
	for _, model := range models.Models {
		if model.ID == c.config.Model {
			return nil
		}
		available = append(available, model.ID)
	}

	return fmt.Errorf("model %s not found. Available models: %v", c.config.Model, available)
}
