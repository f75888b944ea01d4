// Package llm wraps a chat model behind a small completion gateway. Every
// call is a single round trip; there are no retries and no timeout beyond
// what the caller's context imposes.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// Config holds the connection settings for the completion endpoint. Any
// OpenAI-compatible API works; BaseURL selects the provider.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
}

// Client is the completion gateway used by the analysis pipelines.
type Client struct {
	chatModel model.ChatModel
}

// New creates a gateway backed by an OpenAI-compatible chat model.
func New(ctx context.Context, cfg Config) (*Client, error) {
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("init chat model: %w", err)
	}
	return &Client{chatModel: chatModel}, nil
}

// NewWithChatModel creates a gateway around an existing chat model.
func NewWithChatModel(chatModel model.ChatModel) *Client {
	return &Client{chatModel: chatModel}
}

// CompleteText sends a prompt and returns the trimmed text reply.
func (c *Client) CompleteText(ctx context.Context, prompt string, temperature float32) (string, error) {
	messages := []*schema.Message{
		{Role: schema.User, Content: prompt},
	}
	resp, err := c.chatModel.Generate(ctx, messages, model.WithTemperature(temperature))
	if err != nil {
		return "", fmt.Errorf("generate completion: %w", err)
	}
	return strings.TrimSpace(resp.Content), nil
}

// CompleteJSON sends a prompt in JSON mode and decodes the reply. When the
// model returns something that is not valid JSON, the raw text is wrapped in
// {"raw": ...} so a malformed step degrades instead of failing the pipeline.
func (c *Client) CompleteJSON(ctx context.Context, prompt string, temperature float32) (any, error) {
	messages := []*schema.Message{
		{Role: schema.System, Content: "You are a JSON generator. Respond with a single JSON value and nothing else."},
		{Role: schema.User, Content: prompt},
	}
	resp, err := c.chatModel.Generate(ctx, messages, model.WithTemperature(temperature))
	if err != nil {
		return nil, fmt.Errorf("generate completion: %w", err)
	}

	clean := stripFences(resp.Content)
	var value any
	if err := json.Unmarshal([]byte(clean), &value); err != nil {
		return map[string]any{"raw": clean}, nil
	}
	return value, nil
}

func stripFences(content string) string {
	clean := strings.TrimSpace(content)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}
