package campaign

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/fpang/marketing-campaign-mcp/internal/gemini"
	"github.com/fpang/marketing-campaign-mcp/internal/generate"
	"github.com/fpang/marketing-campaign-mcp/internal/platform"
)

// stubText returns one canned JSON response for every platform, with an
// optional per-call delay to exercise concurrent scheduling.
type stubText struct {
	response string
	err      error
	delay    time.Duration
}

func (s *stubText) GenerateText(ctx context.Context, systemInstruction, prompt string) (string, error) {
	if s.delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(s.delay):
		}
	}
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

// stubImages serves a decodable PNG, failing for platforms listed in failFor.
type stubImages struct {
	failFor map[string]error
}

func (s *stubImages) GenerateImage(ctx context.Context, model, prompt, aspectRatio string) (*gemini.ImageResult, error) {
	for id, err := range s.failFor {
		if strings.Contains(prompt, id) {
			return nil, err
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 64, 64))); err != nil {
		return nil, err
	}
	return &gemini.ImageResult{ImageData: buf.Bytes(), MIMEType: "image/png"}, nil
}

const validResponse = `{"content": "Join our launch event!", "hashtags": ["launch", "tech"], "cta": "Register now"}`

func newTestOrchestrator(text generate.TextService, images generate.ImageService) *Orchestrator {
	return NewOrchestrator(
		platform.NewRegistry(),
		generate.NewContentGenerator(text),
		generate.NewImageGenerator(images),
	)
}

func TestRunPreservesPlatformOrder(t *testing.T) {
	platforms := []string{"twitter_post", "linkedin_post", "instagram_feed"}
	orch := newTestOrchestrator(
		&stubText{response: validResponse, delay: 5 * time.Millisecond},
		&stubImages{},
	).WithConcurrency(3)

	result := orch.Run(context.Background(), Brief{
		CampaignBrief: "Product launch",
		Platforms:     platforms,
	})

	if len(result.Results) != len(platforms) {
		t.Fatalf("expected %d results, got %d", len(platforms), len(result.Results))
	}
	for i, want := range platforms {
		if result.Results[i].Platform != want {
			t.Errorf("results[%d].Platform = %q, want %q", i, result.Results[i].Platform, want)
		}
	}
	if !result.AllReady {
		t.Error("expected all platforms ready")
	}
	if result.CampaignID == "" {
		t.Error("expected campaign id")
	}
}

func TestRunIsolatesUnknownPlatform(t *testing.T) {
	orch := newTestOrchestrator(&stubText{response: validResponse}, &stubImages{})

	result := orch.Run(context.Background(), Brief{
		CampaignBrief: "Hiring push",
		Platforms:     []string{"twitter_post", "snapchat_story", "linkedin_post"},
	})

	unknown := result.Results[1]
	if unknown.Platform != "snapchat_story" {
		t.Fatalf("slot 1 = %q", unknown.Platform)
	}
	if unknown.ErrorKind != ErrUnknownPlatform {
		t.Errorf("error_kind = %q, want %q", unknown.ErrorKind, ErrUnknownPlatform)
	}
	if unknown.Content != nil || unknown.Image != nil {
		t.Error("unknown platform slot must not carry artifacts")
	}

	for _, i := range []int{0, 2} {
		if !result.Results[i].ReadyForPosting {
			t.Errorf("results[%d] should be unaffected by the unknown platform", i)
		}
	}
	if result.AllReady {
		t.Error("all_ready must be false with a failed slot")
	}
	if result.PlatformsGenerated != 2 {
		t.Errorf("platforms_generated = %d, want 2", result.PlatformsGenerated)
	}
	if result.ReadyCount != 2 {
		t.Errorf("ready_count = %d, want 2", result.ReadyCount)
	}
}

func TestRunOneFailedImageOthersReady(t *testing.T) {
	orch := newTestOrchestrator(
		&stubText{response: validResponse},
		&stubImages{failFor: map[string]error{
			"pinterest_pin": &gemini.SafetyRejectionError{Reason: "policy"},
		}},
	)

	result := orch.Run(context.Background(), Brief{
		CampaignBrief: "Showcase",
		Platforms:     []string{"twitter_post", "pinterest_pin", "linkedin_post"},
	})

	failed := result.Results[1]
	if failed.Image == nil || failed.Image.Success {
		t.Fatal("expected failed image artifact for pinterest_pin")
	}
	if failed.Image.FailureKind != string(generate.KindImageSafety) {
		t.Errorf("failure_kind = %q", failed.Image.FailureKind)
	}
	if failed.ReadyForPosting {
		t.Error("platform with failed image must not be ready")
	}
	if failed.Content == nil {
		t.Error("content should still be present when only the image failed")
	}

	for _, i := range []int{0, 2} {
		if !result.Results[i].ReadyForPosting {
			t.Errorf("results[%d] should be ready", i)
		}
	}
	if result.AllReady {
		t.Error("all_ready must be false")
	}
	if result.ReadyCount != 2 {
		t.Errorf("ready_count = %d, want 2", result.ReadyCount)
	}
}

func TestRunContentFailureSkipsImage(t *testing.T) {
	orch := newTestOrchestrator(
		&stubText{err: errors.New("connection refused")},
		&stubImages{},
	)

	result := orch.Run(context.Background(), Brief{
		CampaignBrief: "b",
		Platforms:     []string{"twitter_post"},
	})

	slot := result.Results[0]
	if slot.Error == "" {
		t.Fatal("expected error on slot")
	}
	if slot.ErrorKind != string(generate.KindExternalService) {
		t.Errorf("error_kind = %q", slot.ErrorKind)
	}
	if slot.Image != nil {
		t.Error("no image may be attempted after content failure")
	}
	if result.PlatformsGenerated != 0 {
		t.Errorf("platforms_generated = %d, want 0", result.PlatformsGenerated)
	}
	if result.EstimatedCostUsd != 0 {
		t.Errorf("nothing produced, cost = %v", result.EstimatedCostUsd)
	}
}

func TestRunContentOnlySkipsImages(t *testing.T) {
	orch := newTestOrchestrator(&stubText{response: validResponse}, &stubImages{})

	result := orch.RunContentOnly(context.Background(), Brief{
		CampaignBrief: "b",
		Platforms:     []string{"twitter_post", "linkedin_post"},
	})

	for i, r := range result.Results {
		if r.Image != nil {
			t.Errorf("results[%d] should have no image", i)
		}
		if !r.ReadyForPosting {
			t.Errorf("results[%d] should be ready on content alone", i)
		}
	}
}

func TestRunBillsOnlyProducedArtifacts(t *testing.T) {
	orch := newTestOrchestrator(
		&stubText{response: validResponse},
		&stubImages{failFor: map[string]error{
			"pinterest_pin": errors.New("unavailable"),
		}},
	)

	result := orch.Run(context.Background(), Brief{
		CampaignBrief: "b",
		Platforms:     []string{"instagram_feed", "pinterest_pin"},
	})

	// Two content pieces at $0.000375 each, one successful instagram_feed
	// image at the 2K tier ($0.04); the failed pinterest image bills nothing.
	want := 2*0.000375 + 0.04
	if math.Abs(result.EstimatedCostUsd-want) > 1e-9 {
		t.Errorf("estimated_cost_usd = %v, want %v", result.EstimatedCostUsd, want)
	}
}

func TestRunEmptyPlatformList(t *testing.T) {
	orch := newTestOrchestrator(&stubText{response: validResponse}, &stubImages{})

	result := orch.Run(context.Background(), Brief{CampaignBrief: "b"})
	if len(result.Results) != 0 {
		t.Errorf("expected no results, got %d", len(result.Results))
	}
	if result.AllReady {
		t.Error("empty campaign must not report all_ready")
	}
}
