package campaign

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/fpang/marketing-campaign-mcp/internal/generate"
	"github.com/fpang/marketing-campaign-mcp/internal/metrics"
	"github.com/fpang/marketing-campaign-mcp/internal/platform"
	"github.com/fpang/marketing-campaign-mcp/internal/pricing"
)

// DefaultConcurrency bounds how many platform pipelines run at once.
const DefaultConcurrency = 4

// Orchestrator fans a campaign brief out across platforms.
type Orchestrator struct {
	registry    *platform.Registry
	content     *generate.ContentGenerator
	images      *generate.ImageGenerator
	concurrency int
}

// NewOrchestrator wires the orchestrator with its collaborators.
func NewOrchestrator(registry *platform.Registry, content *generate.ContentGenerator, images *generate.ImageGenerator) *Orchestrator {
	return &Orchestrator{
		registry:    registry,
		content:     content,
		images:      images,
		concurrency: DefaultConcurrency,
	}
}

// WithConcurrency overrides the fan-out bound. Values < 1 keep the default.
func (o *Orchestrator) WithConcurrency(n int) *Orchestrator {
	if n >= 1 {
		o.concurrency = n
	}
	return o
}

// Run generates content and images for every requested platform.
func (o *Orchestrator) Run(ctx context.Context, brief Brief) *Result {
	return o.run(ctx, brief, true)
}

// RunContentOnly generates content pieces without images.
func (o *Orchestrator) RunContentOnly(ctx context.Context, brief Brief) *Result {
	return o.run(ctx, brief, false)
}

func (o *Orchestrator) run(ctx context.Context, brief Brief, withImages bool) *Result {
	campaignID := uuid.NewString()

	log.Info().
		Str("campaign_id", campaignID).
		Int("platforms", len(brief.Platforms)).
		Bool("with_images", withImages).
		Int("concurrency", o.concurrency).
		Msg("Starting campaign run")

	startTime := time.Now()
	results := make([]PlatformResult, len(brief.Platforms))

	// Bounded fan-out: one goroutine per platform, gated by a semaphore
	// channel. Indexed writes preserve the requested platform order.
	var wg sync.WaitGroup
	sem := make(chan struct{}, o.concurrency)

	for i, platformID := range brief.Platforms {
		wg.Add(1)
		go func(i int, platformID string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results[i] = o.runPlatform(ctx, brief, platformID, withImages)
		}(i, platformID)
	}
	wg.Wait()

	result := &Result{
		CampaignID:         campaignID,
		CampaignBrief:      brief.CampaignBrief,
		GeneratedAt:        time.Now().UTC(),
		Results:            results,
		PlatformsRequested: len(brief.Platforms),
	}
	aggregate(result)

	mode := "full"
	if !withImages {
		mode = "content_only"
	}
	metrics.New("campaign_generation").
		Dimension("mode", mode).
		Metric("duration", float64(time.Since(startTime).Milliseconds()), metrics.UnitMilliseconds).
		Metric("platforms_requested", float64(result.PlatformsRequested), metrics.UnitCount).
		Metric("platforms_generated", float64(result.PlatformsGenerated), metrics.UnitCount).
		Metric("ready", float64(result.ReadyCount), metrics.UnitCount).
		Metric("estimated_cost", result.EstimatedCostUsd, metrics.UnitUSD).
		Property("campaign_id", campaignID).
		Flush()

	log.Info().
		Str("campaign_id", campaignID).
		Int("generated", result.PlatformsGenerated).
		Int("ready", result.ReadyCount).
		Bool("all_ready", result.AllReady).
		Msg("Campaign run complete")

	return result
}

// runPlatform executes one platform's pipeline. Failures never escape:
// every outcome is a PlatformResult occupying the platform's slot.
func (o *Orchestrator) runPlatform(ctx context.Context, brief Brief, platformID string, withImages bool) PlatformResult {
	spec, err := o.registry.Lookup(platformID)
	if err != nil {
		log.Warn().Str("platform", platformID).Msg("Unknown platform requested")
		return PlatformResult{
			Platform:  platformID,
			Error:     err.Error(),
			ErrorKind: ErrUnknownPlatform,
		}
	}

	piece, err := o.content.Generate(ctx, generate.ContentRequest{
		Brief:           brief.CampaignBrief,
		Platform:        spec,
		Style:           brief.Style,
		HashtagStrategy: brief.HashtagStrategy,
		TargetAudience:  brief.TargetAudience,
		IncludeCTA:      brief.IncludeCTA,
	})
	if err != nil {
		// Content failure fails the platform as a unit; no image is attempted.
		result := PlatformResult{
			Platform: platformID,
			Error:    err.Error(),
		}
		var genErr *generate.Error
		if errors.As(err, &genErr) {
			result.ErrorKind = string(genErr.Kind)
		} else {
			result.ErrorKind = string(generate.KindExternalService)
		}
		return result
	}

	result := PlatformResult{
		Platform: platformID,
		Content:  piece,
	}

	if withImages {
		result.Image = o.images.Generate(ctx, generate.ImageRequest{
			Brief:      brief.CampaignBrief,
			Platform:   spec,
			ImageStyle: brief.ImageStyle,
			Model:      brief.ImageModel,
		})
	}

	result.ReadyForPosting = piece.AllValid && (!withImages || result.Image.Success)
	return result
}

// aggregate fills the campaign-level counters. Only artifacts actually
// produced are billed.
func aggregate(result *Result) {
	var cost float64
	for i := range result.Results {
		r := &result.Results[i]
		if r.Content != nil {
			result.PlatformsGenerated++
			cost += pricing.ContentPieceCost()
		}
		if r.Image != nil && r.Image.Success {
			cost += r.Image.CostUsd
		}
		if r.ReadyForPosting {
			result.ReadyCount++
		}
	}
	result.AllReady = len(result.Results) > 0 && result.ReadyCount == len(result.Results)
	result.EstimatedCostUsd = pricing.Round6(cost)
}
