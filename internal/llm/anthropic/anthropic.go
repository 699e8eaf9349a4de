package anthropic

import (
	"context"
	"fmt"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/tahcohcat/voicegen/config"
	"github.com/tahcohcat/voicegen/internal/logger"
)

type Client struct {
	client sdk.Client
	config *config.AnthropicConfig
	logger *logger.Log
}

func NewClient(cfg *config.AnthropicConfig, opts ...option.RequestOption) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required")
	}

	opts = append([]option.RequestOption{option.WithAPIKey(cfg.APIKey)}, opts...)
	return &Client{
		client: sdk.NewClient(opts...),
		config: cfg,
		logger: logger.Named("anthropic"),
	}, nil
}

func (c *Client) GenerateResponse(ctx context.Context, prompt string) (string, error) {
	maxTokens := int64(c.config.MaxTokens)
	if maxTokens == 0 {
		maxTokens = 200
	}

	c.logger.Debug(fmt.Sprintf("Generating response with Anthropic model %s", c.config.Model))

	resp, err := c.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:       sdk.Model(c.config.Model),
		MaxTokens:   maxTokens,
		Temperature: sdk.Float(0.7),
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		c.logger.WithError(err).Error("Failed to make Anthropic request")
		return "", fmt.Errorf("anthropic request failed: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String(), nil
}

func (c *Client) IsModelAvailable(ctx context.Context) error {
	if _, err := c.client.Models.Get(ctx, c.config.Model, sdk.ModelGetParams{}); err != nil {
		return fmt.Errorf("model %s not available: %w", c.config.Model, err)
	}
	return nil
}
