package gemini

// veo.go provides a REST API client for Veo video generation. Veo runs as a
// long-running operation: the client starts the generation, then polls the
// operation until it completes or the context expires.

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// Video generation constraints.
const (
	// veoPollInterval is how often the operation status is polled.
	veoPollInterval = 5 * time.Second
)

// VideoConfigError indicates an unsupported duration/resolution combination.
type VideoConfigError struct {
	Message string
}

func (e *VideoConfigError) Error() string {
	return "invalid video configuration: " + e.Message
}

// ValidateVideoConfig checks a requested duration and resolution against
// what Veo supports: 4, 6, or 8 second clips, and 1080p only at 8 seconds.
func ValidateVideoConfig(durationSeconds int, resolution string) error {
	switch durationSeconds {
	case 4, 6, 8:
	default:
		return &VideoConfigError{Message: fmt.Sprintf("duration must be 4, 6, or 8 seconds, got %d", durationSeconds)}
	}
	switch resolution {
	case "720p", "1080p":
	default:
		return &VideoConfigError{Message: fmt.Sprintf("resolution must be 720p or 1080p, got %q", resolution)}
	}
	if resolution == "1080p" && durationSeconds != 8 {
		return &VideoConfigError{Message: "1080p output requires an 8 second duration"}
	}
	return nil
}

// VeoClient calls the Veo models via the Gemini REST API.
type VeoClient struct {
	apiKey       string
	baseURL      string
	httpClient   *http.Client
	pollInterval time.Duration
}

// NewVeoClient creates a new client for Veo video generation.
func NewVeoClient(apiKey string) *VeoClient {
	return &VeoClient{
		apiKey:  apiKey,
		baseURL: geminiBaseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		pollInterval: veoPollInterval,
	}
}

// WithBaseURL overrides the API base URL. Used in tests.
func (c *VeoClient) WithBaseURL(url string) *VeoClient {
	c.baseURL = url
	return c
}

// WithPollInterval overrides the operation poll interval. Used in tests.
func (c *VeoClient) WithPollInterval(d time.Duration) *VeoClient {
	c.pollInterval = d
	return c
}

// --- Veo request/response types ---

type veoRequest struct {
	Instances  []veoInstance `json:"instances"`
	Parameters veoParameters `json:"parameters"`
}

type veoInstance struct {
	Prompt string `json:"prompt"`
}

type veoParameters struct {
	AspectRatio     string `json:"aspectRatio,omitempty"`
	Resolution      string `json:"resolution,omitempty"`
	DurationSeconds int    `json:"durationSeconds,omitempty"`
	NegativePrompt  string `json:"negativePrompt,omitempty"`
}

type veoOperation struct {
	Name     string            `json:"name"`
	Done     bool              `json:"done"`
	Error    *veoError         `json:"error,omitempty"`
	Response *veoOperationBody `json:"response,omitempty"`
}

type veoError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type veoOperationBody struct {
	GenerateVideoResponse *veoVideoResponse `json:"generateVideoResponse,omitempty"`
}

type veoVideoResponse struct {
	GeneratedSamples      []veoSample `json:"generatedSamples"`
	RaiMediaFilteredCount int         `json:"raiMediaFilteredCount,omitempty"`
}

type veoSample struct {
	Video veoVideo `json:"video"`
}

type veoVideo struct {
	URI string `json:"uri"`
}

// VideoResult holds a completed video generation.
type VideoResult struct {
	// VideoURI is the download URI for the generated video file.
	VideoURI string
	// DurationSeconds is the requested clip length.
	DurationSeconds int
	// Resolution is the requested output resolution.
	Resolution string
	// GenerationTime is how long the operation took end to end.
	GenerationTime time.Duration
}

// VideoOptions configures a Veo generation request.
type VideoOptions struct {
	DurationSeconds int
	Resolution      string
	AspectRatio     string
	NegativePrompt  string
}

// GenerateVideo generates a video clip from a text prompt and waits for the
// long-running operation to complete. The context bounds the total wait.
func (c *VeoClient) GenerateVideo(ctx context.Context, model, prompt string, opts VideoOptions) (*VideoResult, error) {
	if err := ValidateVideoConfig(opts.DurationSeconds, opts.Resolution); err != nil {
		return nil, err
	}

	log.Info().
		Str("model", model).
		Int("duration_seconds", opts.DurationSeconds).
		Str("resolution", opts.Resolution).
		Str("prompt", truncateString(prompt, 100)).
		Msg("Starting Veo video generation")

	startTime := time.Now()

	op, err := c.startOperation(ctx, model, prompt, opts)
	if err != nil {
		return nil, err
	}

	for !op.Done {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("video generation cancelled: %w", ctx.Err())
		case <-time.After(c.pollInterval):
		}

		op, err = c.pollOperation(ctx, op.Name)
		if err != nil {
			return nil, err
		}
		log.Debug().
			Str("operation", op.Name).
			Bool("done", op.Done).
			Dur("elapsed", time.Since(startTime)).
			Msg("Polled Veo operation")
	}

	if op.Error != nil {
		return nil, fmt.Errorf("video generation failed: %s (code: %d)", op.Error.Message, op.Error.Code)
	}
	if op.Response == nil || op.Response.GenerateVideoResponse == nil {
		return nil, fmt.Errorf("operation completed without a video response")
	}

	videoResp := op.Response.GenerateVideoResponse
	if len(videoResp.GeneratedSamples) == 0 {
		if videoResp.RaiMediaFilteredCount > 0 {
			return nil, &SafetyRejectionError{Reason: "video output filtered by safety policy"}
		}
		return nil, fmt.Errorf("no video samples returned")
	}

	result := &VideoResult{
		VideoURI:        videoResp.GeneratedSamples[0].Video.URI,
		DurationSeconds: opts.DurationSeconds,
		Resolution:      opts.Resolution,
		GenerationTime:  time.Since(startTime),
	}

	log.Info().
		Str("video_uri", result.VideoURI).
		Dur("generation_time", result.GenerationTime).
		Msg("Veo video generation complete")

	return result, nil
}

// startOperation submits the generation request and returns the pending operation.
func (c *VeoClient) startOperation(ctx context.Context, model, prompt string, opts VideoOptions) (*veoOperation, error) {
	req := veoRequest{
		Instances: []veoInstance{
			{Prompt: prompt},
		},
		Parameters: veoParameters{
			AspectRatio:     opts.AspectRatio,
			Resolution:      opts.Resolution,
			DurationSeconds: opts.DurationSeconds,
			NegativePrompt:  opts.NegativePrompt,
		},
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:predictLongRunning?key=%s", c.baseURL, model, c.apiKey)
	op, err := c.doOperationRequest(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, err
	}
	if op.Name == "" {
		return nil, fmt.Errorf("API did not return an operation name")
	}
	return op, nil
}

// pollOperation fetches the current state of a long-running operation.
func (c *VeoClient) pollOperation(ctx context.Context, name string) (*veoOperation, error) {
	url := fmt.Sprintf("%s/%s?key=%s", c.baseURL, name, c.apiKey)
	return c.doOperationRequest(ctx, http.MethodGet, url, nil)
}

func (c *VeoClient) doOperationRequest(ctx context.Context, method, url string, body []byte) (*veoOperation, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Error().
			Int("status", resp.StatusCode).
			Str("body", truncateString(string(respBody), 500)).
			Msg("Veo API returned error")
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, truncateString(string(respBody), 200))
	}

	var op veoOperation
	if err := json.Unmarshal(respBody, &op); err != nil {
		return nil, fmt.Errorf("failed to parse operation: %w", err)
	}
	return &op, nil
}
