// Package oracle implements the reconciliation oracle port against the
// Anthropic Messages API.
package oracle

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/costlens-dev/costlens/internal/model"
	"github.com/costlens-dev/costlens/internal/reconcile"
)

const (
	// DefaultModel is used when the config names none.
	DefaultModel = "claude-sonnet-4-5"
	// DefaultMaxTokens bounds the response; recovery lists can be long.
	DefaultMaxTokens = 4096
)

// Client is a live reconciliation oracle backed by Anthropic.
type Client struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

// New creates an oracle client. Empty model or non-positive maxTokens fall
// back to the defaults.
func New(apiKey, model string, maxTokens int64) *Client {
	if model == "" {
		model = DefaultModel
	}
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return &Client{
		client:    anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:     model,
		maxTokens: maxTokens,
	}
}

// ProposeMissingItems submits one reconciliation request and returns the
// candidate items the model found. The call is synchronous and performs no
// retries; callers that need backoff wrap it.
func (c *Client) ProposeMissingItems(ctx context.Context, req reconcile.Request) ([]model.LineItem, error) {
	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(buildPrompt(req))),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic request: %w", err)
	}

	for _, block := range message.Content {
		if block.Type == "text" {
			return parseResponse(block.Text)
		}
	}
	return nil, fmt.Errorf("no text content in anthropic response")
}
