package gemini

// imagen.go provides a REST API client for Imagen image generation via the
// Gemini API :predict endpoint. Direct HTTP calls are used instead of the Go
// SDK because the SDK does not expose the Imagen prediction surface.

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// geminiBaseURL is the Gemini REST API base URL.
const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// SafetyRejectionError indicates the prompt or output was blocked by the
// content safety filter rather than failing for transport reasons.
type SafetyRejectionError struct {
	Reason string
}

func (e *SafetyRejectionError) Error() string {
	return "image generation blocked by safety filter: " + e.Reason
}

// ImagenClient calls the Imagen models via the Gemini REST API.
type ImagenClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewImagenClient creates a new client for Imagen image generation.
func NewImagenClient(apiKey string) *ImagenClient {
	return &ImagenClient{
		apiKey:  apiKey,
		baseURL: geminiBaseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// WithBaseURL overrides the API base URL. Used in tests.
func (c *ImagenClient) WithBaseURL(url string) *ImagenClient {
	c.baseURL = url
	return c
}

// --- Imagen request/response types ---

type imagenRequest struct {
	Instances  []imagenInstance `json:"instances"`
	Parameters imagenParameters `json:"parameters"`
}

type imagenInstance struct {
	Prompt string `json:"prompt"`
}

type imagenParameters struct {
	SampleCount      int    `json:"sampleCount"`
	AspectRatio      string `json:"aspectRatio,omitempty"`
	PersonGeneration string `json:"personGeneration,omitempty"`
}

type imagenResponse struct {
	Predictions []imagenPrediction `json:"predictions"`
	Error       *imagenError       `json:"error,omitempty"`
}

type imagenPrediction struct {
	BytesBase64Encoded string `json:"bytesBase64Encoded"`
	MimeType           string `json:"mimeType"`
	RaiFilteredReason  string `json:"raiFilteredReason,omitempty"`
}

type imagenError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ImageResult holds a generated image.
type ImageResult struct {
	ImageData []byte
	MIMEType  string
}

// GenerateImage generates a single image from a text prompt.
//
// Parameters:
//   - model: API model ID (see ImageModelID)
//   - prompt: the image description
//   - aspectRatio: one of "1:1", "3:4", "4:3", "9:16", "16:9"
func (c *ImagenClient) GenerateImage(ctx context.Context, model, prompt, aspectRatio string) (*ImageResult, error) {
	log.Debug().
		Str("model", model).
		Str("aspect_ratio", aspectRatio).
		Str("prompt", truncateString(prompt, 100)).
		Msg("GenerateImage: Starting Imagen API call")

	startTime := time.Now()

	req := imagenRequest{
		Instances: []imagenInstance{
			{Prompt: prompt},
		},
		Parameters: imagenParameters{
			SampleCount:      1,
			AspectRatio:      aspectRatio,
			PersonGeneration: "allow_adult",
		},
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:predict?key=%s", c.baseURL, model, c.apiKey)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	httpDuration := time.Since(startTime)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	log.Debug().
		Int("status_code", resp.StatusCode).
		Dur("duration", httpDuration).
		Msg("GenerateImage: HTTP call completed")

	if resp.StatusCode != http.StatusOK {
		log.Error().
			Int("status", resp.StatusCode).
			Str("body", truncateString(string(respBody), 500)).
			Msg("Imagen API returned error")
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, truncateString(string(respBody), 200))
	}

	var imagenResp imagenResponse
	if err := json.Unmarshal(respBody, &imagenResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if imagenResp.Error != nil {
		return nil, fmt.Errorf("API error: %s (code: %d)", imagenResp.Error.Message, imagenResp.Error.Code)
	}

	if len(imagenResp.Predictions) == 0 {
		return nil, fmt.Errorf("no predictions returned from Imagen")
	}

	pred := imagenResp.Predictions[0]
	if pred.RaiFilteredReason != "" {
		log.Warn().
			Str("reason", pred.RaiFilteredReason).
			Msg("Imagen output filtered by safety policy")
		return nil, &SafetyRejectionError{Reason: pred.RaiFilteredReason}
	}

	decoded, err := base64.StdEncoding.DecodeString(pred.BytesBase64Encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode response image: %w", err)
	}

	log.Debug().
		Int("output_bytes", len(decoded)).
		Dur("duration", time.Since(startTime)).
		Msg("GenerateImage: Imagen API call completed successfully")

	return &ImageResult{
		ImageData: decoded,
		MIMEType:  pred.MimeType,
	}, nil
}

// truncateString truncates a string to maxLen, appending "..." if truncated.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
