package gemini

import (
	"context"

	"google.golang.org/genai"

	"careerprep/interview/internal/llm"
)

// Client is a Gemini-backed text-completion provider.
type Client struct {
	client *genai.Client
	config *Config
}

func NewClient(config *Config) (*Client, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeAPIKey,
			Message:  "Failed to create Gemini client",
			Err:      err,
		}
	}

	return &Client{
		client: client,
		config: config,
	}, nil
}

func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	result, err := c.client.Models.GenerateContent(
		ctx,
		c.config.Model,
		genai.Text(prompt),
		nil,
	)
	if err != nil {
		return "", &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeServiceDown,
			Message:  "Failed to generate completion",
			Err:      err,
		}
	}

	if result == nil {
		return "", &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeInvalidInput,
			Message:  "No response generated",
		}
	}

	text, err := result.Text()
	if err != nil {
		return "", &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeInvalidInput,
			Message:  "Failed to extract response text",
			Err:      err,
		}
	}
	if text == "" {
		return "", &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeInvalidInput,
			Message:  "Empty response generated",
		}
	}

	return text, nil
}

func (c *Client) CompleteStream(ctx context.Context, prompt string, fn func(chunk string) error) error {
	stream := c.client.Models.GenerateContentStream(
		ctx,
		c.config.Model,
		genai.Text(prompt),
		nil,
	)

	for resp, err := range stream {
		if err != nil {
			return &llm.ProviderError{
				Provider: "gemini",
				Code:     llm.ErrCodeServiceDown,
				Message:  "Stream failed",
				Err:      err,
			}
		}
		text, err := resp.Text()
		if err != nil || text == "" {
			continue
		}
		// fn returning an error means the consumer is gone; stop producing.
		if err := fn(text); err != nil {
			return err
		}
	}

	return nil
}

func (c *Client) GetProviderName() string {
	return "gemini"
}
