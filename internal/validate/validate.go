// Package validate checks generated content against a platform's publishing
// constraints. Validation is pure and deterministic: over-limit content is
// reported, never rejected — the caller decides whether to accept,
// regenerate, or surface the result.
package validate

import (
	"strings"
	"unicode/utf8"

	"github.com/fpang/marketing-campaign-mcp/internal/platform"
)

// Result reports how a content piece measures against a platform spec.
type Result struct {
	CharacterCount       int  `json:"character_count"`
	WithinCharacterLimit bool `json:"within_character_limit"`
	HashtagCount         int  `json:"hashtag_count"`
	WithinHashtagLimit   bool `json:"within_hashtag_limit"`
	AllValid             bool `json:"all_valid"`
}

// Validate measures content and hashtags against the spec. The character
// count is computed over the full published post — content, a separating
// space, and the hashtags formatted with leading '#' — so the count matches
// what the platform would actually receive. Counts are in runes, not bytes.
func Validate(content string, hashtags []string, spec platform.Spec) Result {
	published := PublishedText(content, hashtags)

	count := utf8.RuneCountInString(published)
	withinChars := count <= spec.MaxCharacters

	withinTags := len(hashtags) <= spec.MaxHashtags
	for _, tag := range hashtags {
		if utf8.RuneCountInString(tag) > spec.MaxHashtagLength {
			withinTags = false
			break
		}
	}

	return Result{
		CharacterCount:       count,
		WithinCharacterLimit: withinChars,
		HashtagCount:         len(hashtags),
		WithinHashtagLimit:   withinTags,
		AllValid:             withinChars && withinTags,
	}
}

// PublishedText renders the final post string: content plus hashtags with
// '#' prefixes, space-separated. Hashtags are assumed to be bare tokens
// (no leading '#').
func PublishedText(content string, hashtags []string) string {
	if len(hashtags) == 0 {
		return content
	}
	var sb strings.Builder
	sb.WriteString(content)
	for _, tag := range hashtags {
		sb.WriteString(" #")
		sb.WriteString(tag)
	}
	return sb.String()
}

// HashtagString renders just the hashtag portion, e.g. "#a #b #c".
func HashtagString(hashtags []string) string {
	if len(hashtags) == 0 {
		return ""
	}
	parts := make([]string, len(hashtags))
	for i, tag := range hashtags {
		parts[i] = "#" + tag
	}
	return strings.Join(parts, " ")
}
