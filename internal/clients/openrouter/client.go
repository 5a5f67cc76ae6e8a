// Package openrouter wraps the OpenRouter chat-completion API, which is
// OpenAI-compatible, behind the single call shape the rest of the system
// uses: a user prompt plus an optional grounding context.
package openrouter

import (
	"context"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

// DefaultBaseURL is the OpenRouter API root.
const DefaultBaseURL = "https://openrouter.ai/api/v1"

// Client calls OpenRouter chat completions with a fixed model.
type Client struct {
	client *openai.Client
	model  string
	log    *logrus.Entry
}

// NewClient creates an OpenRouter client for the given model.
func NewClient(apiKey, model string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = DefaultBaseURL

	return &Client{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		log:    logrus.WithField("component", "openrouter"),
	}
}

// Complete generates a response for prompt. When systemContext is non-empty
// it is injected as the system message wrapped in the standard instruction
// preamble. Single attempt, no retries; callers decide how to degrade.
func (c *Client) Complete(ctx context.Context, prompt, systemContext string) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if systemContext != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: "Используй следующую информацию для ответа на вопрос пользователя: " + systemContext,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
	})
	if err != nil {
		c.log.WithError(err).Error("completion request failed")
		return "", fmt.Errorf("openrouter completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openrouter completion: empty response")
	}

	c.log.WithField("latency_ms", time.Since(start).Milliseconds()).Debug("completion done")
	return resp.Choices[0].Message.Content, nil
}
