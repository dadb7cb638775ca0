// Package platform defines the static per-platform publishing constraints
// used across the campaign pipeline: character and hashtag ceilings, target
// image dimensions, and the caption style each destination expects.
//
// The table is process-wide immutable configuration: built once, looked up
// by identifier, never mutated. Nothing here performs I/O.
package platform

import (
	"fmt"
	"math"
	"sort"
)

// CaptionStyle describes the register a platform's caption should be
// written in. It is passed through to the content prompt builder.
type CaptionStyle string

const (
	// StyleShortEmoji is punchy, emoji-friendly copy (Instagram, TikTok).
	StyleShortEmoji CaptionStyle = "short-emoji"
	// StyleProfessionalDetailed is long-form professional copy (LinkedIn, blogs).
	StyleProfessionalDetailed CaptionStyle = "professional-detailed"
	// StyleConciseInline is tight copy with inline hashtags (Twitter/X, Pinterest).
	StyleConciseInline CaptionStyle = "concise-inline"
	// StyleMinimal is little or no caption text (stories, thumbnails, heroes).
	StyleMinimal CaptionStyle = "minimal"
)

// UnlimitedCharacters marks platforms with no practical text limit
// (email headers, website heroes, blog features). It still satisfies
// the MaxCharacters > 0 invariant.
const UnlimitedCharacters = math.MaxInt

// Spec holds the publishing constraints for one destination platform.
// Specs are value types; callers receive copies and cannot corrupt the table.
type Spec struct {
	// ID is the platform identifier, e.g. "instagram_feed".
	ID string `json:"id"`
	// MaxCharacters is the ceiling for the full published post
	// (caption + hashtags). UnlimitedCharacters when the platform has
	// no text limit.
	MaxCharacters int `json:"max_characters"`
	// MaxHashtags is the ceiling on distinct hashtags. Zero for
	// platforms where hashtags are not used.
	MaxHashtags int `json:"max_hashtags"`
	// MaxHashtagLength is the ceiling for a single hashtag token,
	// without the leading '#'.
	MaxHashtagLength int `json:"max_hashtag_length"`
	// ImageWidth and ImageHeight are the target pixel dimensions for
	// generated media on this platform.
	ImageWidth  int `json:"image_width"`
	ImageHeight int `json:"image_height"`
	// CaptionStyle is the register the caption should be written in.
	CaptionStyle CaptionStyle `json:"caption_style"`
}

// HasTextLimit reports whether the platform enforces a character ceiling.
func (s Spec) HasTextLimit() bool {
	return s.MaxCharacters != UnlimitedCharacters
}

// UnknownPlatformError is returned by Lookup for identifiers not in the table.
type UnknownPlatformError struct {
	ID string
}

func (e *UnknownPlatformError) Error() string {
	return fmt.Sprintf("unknown platform: %s", e.ID)
}

// Registry is an immutable lookup table of platform specs.
type Registry struct {
	specs map[string]Spec
}

// NewRegistry builds the default registry. The limits below follow each
// platform's documented publishing constraints:
//
//	instagram_feed     2200 chars, 30 hashtags, 1080x1080
//	instagram_story    2200 chars, 10 hashtags, 1080x1920
//	instagram_reel     2200 chars, 30 hashtags, 1080x1920
//	facebook_post      63206 chars, 10 hashtags, 1200x630
//	twitter_post       280 chars, 2 hashtags, 1600x900
//	linkedin_post      3000 chars, 5 hashtags, 1200x627
//	pinterest_pin      500 chars, 8 hashtags, 1000x1500
//	youtube_thumbnail  100 chars (overlay title), no hashtags, 1280x720
//	tiktok             2200 chars, 20 hashtags, 1080x1920
//	email_header       no text limit, no hashtags, 600x200
//	website_hero       no text limit, no hashtags, 1920x1080
//	blog_featured      no text limit, no hashtags, 1200x628
func NewRegistry() *Registry {
	specs := []Spec{
		{ID: "instagram_feed", MaxCharacters: 2200, MaxHashtags: 30, MaxHashtagLength: 30, ImageWidth: 1080, ImageHeight: 1080, CaptionStyle: StyleShortEmoji},
		{ID: "instagram_story", MaxCharacters: 2200, MaxHashtags: 10, MaxHashtagLength: 30, ImageWidth: 1080, ImageHeight: 1920, CaptionStyle: StyleMinimal},
		{ID: "instagram_reel", MaxCharacters: 2200, MaxHashtags: 30, MaxHashtagLength: 30, ImageWidth: 1080, ImageHeight: 1920, CaptionStyle: StyleShortEmoji},
		{ID: "facebook_post", MaxCharacters: 63206, MaxHashtags: 10, MaxHashtagLength: 50, ImageWidth: 1200, ImageHeight: 630, CaptionStyle: StyleProfessionalDetailed},
		{ID: "twitter_post", MaxCharacters: 280, MaxHashtags: 2, MaxHashtagLength: 20, ImageWidth: 1600, ImageHeight: 900, CaptionStyle: StyleConciseInline},
		{ID: "linkedin_post", MaxCharacters: 3000, MaxHashtags: 5, MaxHashtagLength: 50, ImageWidth: 1200, ImageHeight: 627, CaptionStyle: StyleProfessionalDetailed},
		{ID: "pinterest_pin", MaxCharacters: 500, MaxHashtags: 8, MaxHashtagLength: 30, ImageWidth: 1000, ImageHeight: 1500, CaptionStyle: StyleConciseInline},
		{ID: "youtube_thumbnail", MaxCharacters: 100, MaxHashtags: 0, MaxHashtagLength: 30, ImageWidth: 1280, ImageHeight: 720, CaptionStyle: StyleMinimal},
		{ID: "tiktok", MaxCharacters: 2200, MaxHashtags: 20, MaxHashtagLength: 30, ImageWidth: 1080, ImageHeight: 1920, CaptionStyle: StyleShortEmoji},
		{ID: "email_header", MaxCharacters: UnlimitedCharacters, MaxHashtags: 0, MaxHashtagLength: 30, ImageWidth: 600, ImageHeight: 200, CaptionStyle: StyleMinimal},
		{ID: "website_hero", MaxCharacters: UnlimitedCharacters, MaxHashtags: 0, MaxHashtagLength: 30, ImageWidth: 1920, ImageHeight: 1080, CaptionStyle: StyleMinimal},
		{ID: "blog_featured", MaxCharacters: UnlimitedCharacters, MaxHashtags: 0, MaxHashtagLength: 30, ImageWidth: 1200, ImageHeight: 628, CaptionStyle: StyleProfessionalDetailed},
	}

	table := make(map[string]Spec, len(specs))
	for _, s := range specs {
		table[s.ID] = s
	}
	return &Registry{specs: table}
}

// Lookup returns the spec for the given platform identifier, or an
// *UnknownPlatformError if the identifier is not in the table.
func (r *Registry) Lookup(id string) (Spec, error) {
	spec, ok := r.specs[id]
	if !ok {
		return Spec{}, &UnknownPlatformError{ID: id}
	}
	return spec, nil
}

// IDs returns all registered platform identifiers, sorted.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.specs))
	for id := range r.specs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// All returns copies of every registered spec, sorted by identifier.
func (r *Registry) All() []Spec {
	all := make([]Spec, 0, len(r.specs))
	for _, id := range r.IDs() {
		all = append(all, r.specs[id])
	}
	return all
}
