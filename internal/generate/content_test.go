package generate

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fpang/marketing-campaign-mcp/internal/platform"
)

// fakeTextService returns a canned response or error.
type fakeTextService struct {
	response string
	err      error
	delay    time.Duration

	lastSystem string
	lastPrompt string
}

func (f *fakeTextService) GenerateText(ctx context.Context, systemInstruction, prompt string) (string, error) {
	f.lastSystem = systemInstruction
	f.lastPrompt = prompt
	if f.delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(f.delay):
		}
	}
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func twitterSpec(t *testing.T) platform.Spec {
	t.Helper()
	spec, err := platform.NewRegistry().Lookup("twitter_post")
	if err != nil {
		t.Fatalf("lookup twitter_post: %v", err)
	}
	return spec
}

func TestGenerateContentSuccess(t *testing.T) {
	fake := &fakeTextService{
		response: `{"content": "We are hiring a Go engineer in Singapore!", "hashtags": ["hiring", "golang"], "cta": "Apply today"}`,
	}
	gen := NewContentGenerator(fake)

	piece, err := gen.Generate(context.Background(), ContentRequest{
		Brief:      "Hiring campaign for a fintech startup",
		Platform:   twitterSpec(t),
		Style:      "professional",
		IncludeCTA: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if piece.Platform != "twitter_post" {
		t.Errorf("platform = %q", piece.Platform)
	}
	if piece.CallToAction != "Apply today" {
		t.Errorf("cta = %q", piece.CallToAction)
	}
	if piece.HashtagString != "#hiring #golang" {
		t.Errorf("hashtag_string = %q", piece.HashtagString)
	}
	if !piece.AllValid {
		t.Error("expected piece to be valid")
	}
	if piece.CharacterLimit != 280 {
		t.Errorf("character_limit = %d", piece.CharacterLimit)
	}
	if piece.HashtagLimit != 2 {
		t.Errorf("hashtag_limit = %d", piece.HashtagLimit)
	}
	if !strings.Contains(fake.lastPrompt, "twitter_post") {
		t.Error("prompt should name the platform")
	}
	if !strings.Contains(fake.lastPrompt, "280") {
		t.Error("prompt should embed the character limit")
	}
}

func TestGenerateContentNormalizesHashtags(t *testing.T) {
	fake := &fakeTextService{
		response: `{"content": "Launch day!", "hashtags": ["#Launch", "launch", "  #new  ", ""], "cta": ""}`,
	}
	gen := NewContentGenerator(fake)

	piece, err := gen.Generate(context.Background(), ContentRequest{
		Brief:    "Product launch",
		Platform: twitterSpec(t),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"Launch", "new"}
	if len(piece.Hashtags) != len(want) {
		t.Fatalf("hashtags = %v, want %v", piece.Hashtags, want)
	}
	for i := range want {
		if piece.Hashtags[i] != want[i] {
			t.Errorf("hashtags[%d] = %q, want %q", i, piece.Hashtags[i], want[i])
		}
	}
}

func TestGenerateContentOverLimitSurfacedNotTruncated(t *testing.T) {
	long := strings.Repeat("a", 300)
	fake := &fakeTextService{
		response: `{"content": "` + long + `", "hashtags": [], "cta": ""}`,
	}
	gen := NewContentGenerator(fake)

	piece, err := gen.Generate(context.Background(), ContentRequest{
		Brief:    "brief",
		Platform: twitterSpec(t),
	})
	if err != nil {
		t.Fatalf("over-limit output must not be an error: %v", err)
	}
	if piece.AllValid {
		t.Error("expected AllValid=false for over-limit content")
	}
	if piece.WithinCharacterLimit {
		t.Error("expected WithinCharacterLimit=false")
	}
	if len(piece.Content) != 300 {
		t.Errorf("content must not be truncated, len = %d", len(piece.Content))
	}
}

func TestGenerateContentTimeout(t *testing.T) {
	fake := &fakeTextService{
		response: `{"content": "late", "hashtags": [], "cta": ""}`,
		delay:    100 * time.Millisecond,
	}
	gen := NewContentGenerator(fake).WithTimeout(5 * time.Millisecond)

	_, err := gen.Generate(context.Background(), ContentRequest{
		Brief:    "brief",
		Platform: twitterSpec(t),
	})
	if err == nil {
		t.Fatal("expected timeout error")
	}

	var genErr *Error
	if !errors.As(err, &genErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if genErr.Kind != KindTextTimeout {
		t.Errorf("kind = %q, want %q", genErr.Kind, KindTextTimeout)
	}
}

func TestGenerateContentRejectedOnGarbage(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"not json", "I cannot help with that request."},
		{"empty content", `{"content": "", "hashtags": [], "cta": ""}`},
		{"whitespace content", `{"content": "   ", "hashtags": [], "cta": ""}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := NewContentGenerator(&fakeTextService{response: tt.response})
			_, err := gen.Generate(context.Background(), ContentRequest{
				Brief:    "brief",
				Platform: twitterSpec(t),
			})
			if err == nil {
				t.Fatal("expected error")
			}
			var genErr *Error
			if !errors.As(err, &genErr) {
				t.Fatalf("expected *Error, got %T", err)
			}
			if genErr.Kind != KindTextRejected {
				t.Errorf("kind = %q, want %q", genErr.Kind, KindTextRejected)
			}
		})
	}
}

func TestGenerateContentExternalServiceError(t *testing.T) {
	gen := NewContentGenerator(&fakeTextService{err: errors.New("connection refused")})

	_, err := gen.Generate(context.Background(), ContentRequest{
		Brief:    "brief",
		Platform: twitterSpec(t),
	})
	if err == nil {
		t.Fatal("expected error")
	}

	var genErr *Error
	if !errors.As(err, &genErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if genErr.Kind != KindExternalService {
		t.Errorf("kind = %q, want %q", genErr.Kind, KindExternalService)
	}
}

func TestBuildContentPromptHashtagStrategies(t *testing.T) {
	spec := twitterSpec(t)
	defaultPrompt := BuildContentPrompt(ContentRequest{Brief: "b", Platform: spec})

	// Each named strategy must show up in the prompt, not collapse into
	// the default platform-maximum instruction.
	for _, strategy := range []string{"industry-specific", "trending", "branded", "niche"} {
		prompt := BuildContentPrompt(ContentRequest{Brief: "b", Platform: spec, HashtagStrategy: strategy})
		if prompt == defaultPrompt {
			t.Errorf("strategy %q produced the default prompt", strategy)
		}
		if !strings.Contains(prompt, strategy) {
			t.Errorf("strategy %q is not embedded in the prompt", strategy)
		}
	}

	none := BuildContentPrompt(ContentRequest{Brief: "b", Platform: spec, HashtagStrategy: "none"})
	if !strings.Contains(none, "Do not include any hashtags") {
		t.Error("strategy none should forbid hashtags")
	}

	if !strings.Contains(defaultPrompt, "platform maximum of 2") {
		t.Error("empty strategy should fall back to the platform maximum")
	}
}
