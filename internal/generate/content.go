package generate

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/fpang/marketing-campaign-mcp/internal/jsonutil"
	"github.com/fpang/marketing-campaign-mcp/internal/platform"
	"github.com/fpang/marketing-campaign-mcp/internal/validate"
)

// DefaultContentTimeout bounds a single text generation call.
const DefaultContentTimeout = 8 * time.Second

// TextService generates raw model text from a prompt. Implemented by
// gemini.TextClient; tests substitute fakes.
type TextService interface {
	GenerateText(ctx context.Context, systemInstruction, prompt string) (string, error)
}

// ContentRequest describes one platform's content generation.
type ContentRequest struct {
	Brief           string
	Platform        platform.Spec
	Style           string
	HashtagStrategy string
	TargetAudience  string
	IncludeCTA      bool
}

// ContentPiece is one platform's generated marketing copy with its
// validation state. Over-limit output is surfaced as-is with AllValid=false;
// the caller decides whether to regenerate or edit.
type ContentPiece struct {
	Platform             string   `json:"platform"`
	Content              string   `json:"content"`
	Hashtags             []string `json:"hashtags"`
	HashtagString        string   `json:"hashtag_string"`
	CallToAction         string   `json:"call_to_action,omitempty"`
	CharacterCount       int      `json:"character_count"`
	CharacterLimit       int      `json:"character_limit,omitempty"` // 0 means no limit
	WithinCharacterLimit bool     `json:"within_character_limit"`
	HashtagCount         int      `json:"hashtag_count"`
	HashtagLimit         int      `json:"hashtag_limit"`
	AllValid             bool     `json:"all_valid"`
}

// contentResponse is the JSON contract the model must follow.
type contentResponse struct {
	Content  string   `json:"content"`
	Hashtags []string `json:"hashtags"`
	CTA      string   `json:"cta"`
}

// ContentGenerator produces validated content pieces via a TextService.
type ContentGenerator struct {
	text    TextService
	timeout time.Duration
}

// NewContentGenerator creates a ContentGenerator with the default timeout.
func NewContentGenerator(text TextService) *ContentGenerator {
	return &ContentGenerator{
		text:    text,
		timeout: DefaultContentTimeout,
	}
}

// WithTimeout overrides the per-call timeout. Used in tests.
func (g *ContentGenerator) WithTimeout(d time.Duration) *ContentGenerator {
	g.timeout = d
	return g
}

// Generate produces one platform's content piece. It delegates exactly once
// to the TextService and never retries: a piece that exceeds the platform
// ceilings is returned with AllValid=false rather than truncated.
func (g *ContentGenerator) Generate(ctx context.Context, req ContentRequest) (*ContentPiece, error) {
	log.Debug().
		Str("platform", req.Platform.ID).
		Str("style", req.Style).
		Msg("Generating content piece")

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	raw, err := g.text.GenerateText(callCtx, ContentSystemPrompt, BuildContentPrompt(req))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &Error{
				Kind:    KindTextTimeout,
				Message: "text generation timed out for " + req.Platform.ID,
				Err:     err,
			}
		}
		return nil, &Error{
			Kind:    KindExternalService,
			Message: "text generation failed for " + req.Platform.ID,
			Err:     err,
		}
	}

	parsed, err := jsonutil.ParseJSON[contentResponse](raw)
	if err != nil {
		log.Warn().Err(err).Str("platform", req.Platform.ID).Msg("Model response did not parse")
		return nil, &Error{
			Kind:    KindTextRejected,
			Message: "model returned unparsable content for " + req.Platform.ID,
			Err:     err,
		}
	}
	if strings.TrimSpace(parsed.Content) == "" {
		return nil, &Error{
			Kind:    KindTextRejected,
			Message: "model returned empty content for " + req.Platform.ID,
		}
	}

	hashtags := normalizeHashtags(parsed.Hashtags)
	result := validate.Validate(parsed.Content, hashtags, req.Platform)

	piece := &ContentPiece{
		Platform:             req.Platform.ID,
		Content:              parsed.Content,
		Hashtags:             hashtags,
		HashtagString:        validate.HashtagString(hashtags),
		CallToAction:         strings.TrimSpace(parsed.CTA),
		CharacterCount:       result.CharacterCount,
		WithinCharacterLimit: result.WithinCharacterLimit,
		HashtagCount:         result.HashtagCount,
		HashtagLimit:         req.Platform.MaxHashtags,
		AllValid:             result.AllValid,
	}
	if req.Platform.HasTextLimit() {
		piece.CharacterLimit = req.Platform.MaxCharacters
	}

	log.Debug().
		Str("platform", piece.Platform).
		Int("character_count", piece.CharacterCount).
		Int("hashtag_count", piece.HashtagCount).
		Bool("all_valid", piece.AllValid).
		Msg("Content piece generated")

	return piece, nil
}

// normalizeHashtags strips leading # prefixes, trims whitespace, drops
// empties, and de-duplicates case-insensitively while preserving order.
func normalizeHashtags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(tag), "#"))
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, tag)
	}
	return out
}
