package campaign

import (
	"time"

	"github.com/fpang/marketing-campaign-mcp/internal/generate"
)

// ErrUnknownPlatform is the error kind recorded for platform IDs the
// registry does not know. Generation failure kinds come from the generate
// package unchanged.
const ErrUnknownPlatform = "unknown_platform"

// PlatformResult is one platform's slot in a campaign result. Exactly one
// of (Content set) or (Error set) holds: a platform either produced a
// content piece or failed as a unit.
type PlatformResult struct {
	Platform        string                  `json:"platform"`
	Content         *generate.ContentPiece  `json:"content,omitempty"`
	Image           *generate.ImageArtifact `json:"image,omitempty"`
	ReadyForPosting bool                    `json:"ready_for_posting"`
	Error           string                  `json:"error,omitempty"`
	ErrorKind       string                  `json:"error_kind,omitempty"`
}

// Result is a completed campaign run.
type Result struct {
	CampaignID         string           `json:"campaign_id"`
	CampaignBrief      string           `json:"campaign_brief"`
	GeneratedAt        time.Time        `json:"generated_at"`
	Results            []PlatformResult `json:"results"`
	PlatformsRequested int              `json:"platforms_requested"`
	PlatformsGenerated int              `json:"platforms_generated"`
	ReadyCount         int              `json:"ready_count"`
	AllReady           bool             `json:"all_ready"`
	EstimatedCostUsd   float64          `json:"estimated_cost_usd"`
}
