// Package aimo holds the client setup and chat calls shared by the AiMo
// Network examples. Requests go through the go-openai SDK pointed at the
// AiMo OpenAI-compatible endpoint.
package aimo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/sashabaranov/go-openai"
)

// Client issues chat completions against an AiMo Network endpoint.
type Client struct {
	api       *openai.Client
	baseURL   string
	model     string
	maxTokens int
	logger    *slog.Logger
}

// NewClient builds a Client from cfg. Zero fields take the package defaults.
// It never fails: a missing API key is only logged, and the service decides
// what an unauthenticated call gets.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.APIKey == "" {
		logger.Warn("AIMO_API_KEY is not set, requests are sent without a credential")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}

	config := openai.DefaultConfig(cfg.APIKey)
	config.BaseURL = cfg.BaseURL

	return &Client{
		api:       openai.NewClientWithConfig(config),
		baseURL:   cfg.BaseURL,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		logger:    logger,
	}
}

// Chat sends prompt as a single user message and returns the text of the
// first choice. An empty model selects the client default. Absent content,
// or a response without choices, yields "".
func (c *Client) Chat(ctx context.Context, prompt, model string) (string, error) {
	req := c.request(prompt, model)
	c.logger.Debug("chat completion", "model", req.Model, "base_url", c.baseURL)

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

// ChatStream requests the same completion as Chat in streaming mode and writes
// every non-empty fragment to w as soon as it is received. After the stream
// ends a single newline is written.
func (c *Client) ChatStream(ctx context.Context, w io.Writer, prompt, model string) error {
	req := c.request(prompt, model)
	req.Stream = true
	c.logger.Debug("chat completion stream", "model", req.Model, "base_url", c.baseURL)

	stream, err := c.api.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return fmt.Errorf("chat completion stream: %w", err)
	}
	defer stream.Close()

	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("receive stream chunk: %w", err)
		}

		// Usage-only chunks carry no choices.
		if len(chunk.Choices) == 0 {
			continue
		}
		delta := chunk.Choices[0].Delta.Content
		if delta == "" {
			continue
		}
		if _, err := io.WriteString(w, delta); err != nil {
			return err
		}
	}

	_, err = io.WriteString(w, "\n")
	return err
}

// ChatWithTools sends prompt with the given tool definitions and returns the
// first choice's message, or nil when the response has no choices.
func (c *Client) ChatWithTools(ctx context.Context, prompt, model string, tools []openai.Tool) (*openai.ChatCompletionMessage, error) {
	req := c.request(prompt, model)
	req.Tools = tools
	c.logger.Debug("chat completion with tools", "model", req.Model, "tools", len(tools))

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, nil
	}
	msg := resp.Choices[0].Message
	return &msg, nil
}

func (c *Client) request(prompt, model string) openai.ChatCompletionRequest {
	if model == "" {
		model = c.model
	}
	return openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens: c.maxTokens,
	}
}
