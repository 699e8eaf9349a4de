package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/tahcohcat/voicegen/config"
	"github.com/tahcohcat/voicegen/internal/logger"
	"google.golang.org/genai"
)

type Client struct {
	client *genai.Client
	config *config.GeminiConfig
	logger *logger.Log
}

func NewClient(ctx context.Context, cfg *config.GeminiConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = cfg.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Client{
		client: client,
		config: cfg,
		logger: logger.Named("gemini"),
	}, nil
}

func (c *Client) GenerateResponse(ctx context.Context, prompt string) (string, error) {
	c.logger.Debug(fmt.Sprintf("Generating response with Gemini model %s", c.config.Model))

	resp, err := c.client.Models.GenerateContent(ctx, c.config.Model, []*genai.Content{
		{Role: "user", Parts: []*genai.Part{{Text: prompt}}},
	}, nil)
	if err != nil {
		c.logger.WithError(err).Error("Failed to generate content")
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}

	var sb strings.Builder
	if resp != nil && len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			sb.WriteString(part.Text)
		}
	}
	return sb.String(), nil
}

func (c *Client) IsModelAvailable(ctx context.Context) error {
	if _, err := c.client.Models.Get(ctx, c.config.Model, nil); err != nil {
		return fmt.Errorf("model %s not available: %w", c.config.Model, err)
	}
	return nil
}
