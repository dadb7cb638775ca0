package gemini

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

// NewClient creates a genai client authenticated with the given API key.
func NewClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return client, nil
}

// TextClient generates marketing copy with the Gemini text models.
type TextClient struct {
	client *genai.Client
	model  string
}

// NewTextClient wraps a genai client for text generation. The model is
// resolved from GEMINI_MODEL with a stable default.
func NewTextClient(client *genai.Client) *TextClient {
	return &TextClient{
		client: client,
		model:  ContentModelName(),
	}
}

// Model returns the resolved text model ID.
func (c *TextClient) Model() string {
	return c.model
}

// GenerateText sends a prompt with a system instruction to Gemini and
// returns the raw response text. Callers parse the structured payload out
// of the response themselves.
func (c *TextClient) GenerateText(ctx context.Context, systemInstruction, prompt string) (string, error) {
	// The server starts without a genai client when no API key is
	// configured; calls fail here instead of at startup.
	if c.client == nil {
		return "", errors.New("text service not configured: missing API key")
	}

	log.Debug().
		Str("model", c.model).
		Int("prompt_length", len(prompt)).
		Msg("Starting Gemini text generation")

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		},
	}

	contents := []*genai.Content{
		{Role: "user", Parts: []*genai.Part{{Text: prompt}}},
	}

	callStart := time.Now()
	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, config)
	duration := time.Since(callStart)
	if err != nil {
		log.Error().Err(err).Dur("duration", duration).Msg("Gemini text generation failed")
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("received empty response from Gemini API")
	}

	responseText := resp.Text()
	log.Debug().
		Int("response_length", len(responseText)).
		Dur("duration", duration).
		Msg("Gemini text generation complete")

	return responseText, nil
}
