// Package campaign composes per-platform generation into campaign results:
// one brief in, one ordered set of platform results out, with partial-failure
// isolation and cost aggregation.
package campaign

// Brief is the input to a campaign run.
type Brief struct {
	// CampaignBrief describes the campaign in natural language.
	CampaignBrief string
	// Platforms is the ordered list of platform IDs to generate for.
	// Result slots preserve this order.
	Platforms []string
	// Style is the requested copy tone (e.g. "professional", "casual").
	Style string
	// HashtagStrategy is one of industry-specific, trending, branded,
	// niche, or "none" to disable hashtags; empty uses the platform
	// maximum.
	HashtagStrategy string
	// TargetAudience narrows who the copy speaks to.
	TargetAudience string
	// IncludeCTA requests an explicit call-to-action line.
	IncludeCTA bool
	// ImageStyle guides the visual style of generated images.
	ImageStyle string
	// ImageModel selects the image model family; empty uses the default.
	ImageModel string
}
