package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"

	"github.com/fpang/marketing-campaign-mcp/internal/campaign"
	"github.com/fpang/marketing-campaign-mcp/internal/gemini"
	"github.com/fpang/marketing-campaign-mcp/internal/pricing"
)

// videoGenerationCap bounds how long a Veo operation may be polled.
const videoGenerationCap = 6 * time.Minute

// registerTools registers all MCP tools.
func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer,
		&mcp.Tool{
			Name:        "generate_campaign_content",
			Description: "Generate platform-optimized marketing copy (text, hashtags, CTA) for each requested platform. No images.",
		},
		func(ctx context.Context, req *mcp.CallToolRequest, args CampaignContentInput) (*mcp.CallToolResult, any, error) {
			return s.handleGenerateCampaignContent(ctx, args)
		},
	)

	mcp.AddTool(s.mcpServer,
		&mcp.Tool{
			Name:        "batch_generate_campaign",
			Description: "Generate a full campaign: marketing copy plus a platform-dimensioned image for every requested platform.",
		},
		func(ctx context.Context, req *mcp.CallToolRequest, args BatchCampaignInput) (*mcp.CallToolResult, any, error) {
			return s.handleBatchGenerateCampaign(ctx, args)
		},
	)

	mcp.AddTool(s.mcpServer,
		&mcp.Tool{
			Name:        "calculate_cost_estimate",
			Description: "Estimate generation cost before committing: images by resolution tier, video by the second, content by the piece.",
		},
		func(ctx context.Context, req *mcp.CallToolRequest, args CostEstimateInput) (*mcp.CallToolResult, any, error) {
			return s.handleCostEstimate(ctx, args)
		},
	)

	mcp.AddTool(s.mcpServer,
		&mcp.Tool{
			Name:        "generate_promo_video",
			Description: "Generate a promotional video clip with Veo. Durations of 4, 6, or 8 seconds; 1080p requires 8 seconds.",
		},
		func(ctx context.Context, req *mcp.CallToolRequest, args PromoVideoInput) (*mcp.CallToolResult, any, error) {
			return s.handleGeneratePromoVideo(ctx, args)
		},
	)

	mcp.AddTool(s.mcpServer,
		&mcp.Tool{
			Name:        "get_campaign_template",
			Description: "Get the playbook for a campaign type: recommended platforms, posting cadence, hashtag strategy, and CTA patterns.",
		},
		func(ctx context.Context, req *mcp.CallToolRequest, args CampaignTemplateInput) (*mcp.CallToolResult, any, error) {
			return s.handleGetCampaignTemplate(ctx, args)
		},
	)

	mcp.AddTool(s.mcpServer,
		&mcp.Tool{
			Name:        "health_check",
			Description: "Report server health: credential configuration, configured models, and output directory writability.",
		},
		func(ctx context.Context, req *mcp.CallToolRequest, args struct{}) (*mcp.CallToolResult, any, error) {
			return s.handleHealthCheck(ctx)
		},
	)
}

// CampaignContentInput is the input for generate_campaign_content.
type CampaignContentInput struct {
	CampaignBrief   string   `json:"campaign_brief" jsonschema:"required" jsonschema_description:"Natural-language description of the campaign"`
	Platforms       []string `json:"platforms" jsonschema:"required" jsonschema_description:"Platform IDs to generate for (e.g. twitter_post, linkedin_post)"`
	Style           string   `json:"style,omitempty" jsonschema_description:"Copy tone, e.g. professional or casual"`
	HashtagStrategy string   `json:"hashtag_strategy,omitempty" jsonschema_description:"One of: industry-specific, trending, branded, niche; none disables hashtags; empty uses the platform maximum"`
	TargetAudience  string   `json:"target_audience,omitempty" jsonschema_description:"Who the copy speaks to"`
	IncludeCTA      bool     `json:"include_cta,omitempty" jsonschema_description:"Request an explicit call-to-action line"`
}

// BatchCampaignInput is the input for batch_generate_campaign.
type BatchCampaignInput struct {
	CampaignBrief   string   `json:"campaign_brief" jsonschema:"required" jsonschema_description:"Natural-language description of the campaign"`
	Platforms       []string `json:"platforms" jsonschema:"required" jsonschema_description:"Platform IDs to generate for"`
	Style           string   `json:"style,omitempty" jsonschema_description:"Copy tone, e.g. professional or casual"`
	HashtagStrategy string   `json:"hashtag_strategy,omitempty" jsonschema_description:"One of: industry-specific, trending, branded, niche; none disables hashtags; empty uses the platform maximum"`
	TargetAudience  string   `json:"target_audience,omitempty" jsonschema_description:"Who the copy speaks to"`
	IncludeCTA      bool     `json:"include_cta,omitempty" jsonschema_description:"Request an explicit call-to-action line"`
	ImageStyle      string   `json:"image_style,omitempty" jsonschema_description:"Visual style for generated images"`
	ImageModel      string   `json:"image_model,omitempty" jsonschema_description:"imagen-3.0 (default) or imagen-4.0"`
	IncludeBase64   bool     `json:"include_base64,omitempty" jsonschema_description:"Include base64 image payloads in the response (large)"`
}

// CostEstimateInput is the input for calculate_cost_estimate.
type CostEstimateInput struct {
	Images1K      int    `json:"images_1k,omitempty" jsonschema_description:"Number of 1K-resolution images"`
	Images2K      int    `json:"images_2k,omitempty" jsonschema_description:"Number of 2K-resolution images"`
	VideoSeconds  int    `json:"video_seconds,omitempty" jsonschema_description:"Total seconds of video"`
	ContentPieces int    `json:"content_pieces,omitempty" jsonschema_description:"Number of content pieces"`
	ImageModel    string `json:"image_model,omitempty" jsonschema_description:"imagen-3.0 (default) or imagen-4.0"`
	VideoModel    string `json:"video_model,omitempty" jsonschema_description:"veo2, veo3 (default), or veo3_fast"`
}

// PromoVideoInput is the input for generate_promo_video.
type PromoVideoInput struct {
	Prompt          string `json:"prompt" jsonschema:"required" jsonschema_description:"Description of the video to generate"`
	DurationSeconds int    `json:"duration_seconds,omitempty" jsonschema_description:"Clip length: 4, 6, or 8 seconds (default 8)"`
	Resolution      string `json:"resolution,omitempty" jsonschema_description:"720p (default) or 1080p; 1080p requires 8 seconds"`
	AspectRatio     string `json:"aspect_ratio,omitempty" jsonschema_description:"16:9 (default) or 9:16"`
	NegativePrompt  string `json:"negative_prompt,omitempty" jsonschema_description:"What the video should avoid"`
	VideoModel      string `json:"video_model,omitempty" jsonschema_description:"veo2, veo3 (default), or veo3_fast"`
}

// CampaignTemplateInput is the input for get_campaign_template.
type CampaignTemplateInput struct {
	CampaignType string `json:"campaign_type" jsonschema:"required" jsonschema_description:"One of: job_recruitment, product_launch, event_promotion, service_marketing, content_marketing, recruitment_agency"`
}

// PromoVideoResult is the generate_promo_video response payload.
type PromoVideoResult struct {
	VideoURI          string  `json:"video_uri"`
	Model             string  `json:"model"`
	DurationSeconds   int     `json:"duration_seconds"`
	Resolution        string  `json:"resolution"`
	AspectRatio       string  `json:"aspect_ratio"`
	CostUsd           float64 `json:"cost_usd"`
	GenerationSeconds float64 `json:"generation_seconds"`
}

// HealthStatus is the health_check response payload.
type HealthStatus struct {
	Status            string              `json:"status"`
	APIKeyConfigured  bool                `json:"api_key_configured"`
	Services          ServiceAvailability `json:"service_availability"`
	ContentModel      string              `json:"content_model"`
	ImageModel        string              `json:"image_model"`
	VideoModel        string              `json:"video_model"`
	OutputDir         string              `json:"output_dir,omitempty"`
	OutputDirWritable bool                `json:"output_dir_writable"`
	PlatformCount     int                 `json:"platform_count"`
	PriceTableVersion string              `json:"price_table_version"`
}

func (s *Server) handleGenerateCampaignContent(ctx context.Context, args CampaignContentInput) (*mcp.CallToolResult, any, error) {
	if args.CampaignBrief == "" {
		return toolError("campaign_brief is required")
	}
	if len(args.Platforms) == 0 {
		return toolError("platforms must list at least one platform ID")
	}

	result := s.cfg.Orchestrator.RunContentOnly(ctx, campaign.Brief{
		CampaignBrief:   args.CampaignBrief,
		Platforms:       args.Platforms,
		Style:           args.Style,
		HashtagStrategy: args.HashtagStrategy,
		TargetAudience:  args.TargetAudience,
		IncludeCTA:      args.IncludeCTA,
	})

	return toolJSON(result)
}

func (s *Server) handleBatchGenerateCampaign(ctx context.Context, args BatchCampaignInput) (*mcp.CallToolResult, any, error) {
	if args.CampaignBrief == "" {
		return toolError("campaign_brief is required")
	}
	if len(args.Platforms) == 0 {
		return toolError("platforms must list at least one platform ID")
	}

	result := s.cfg.Orchestrator.Run(ctx, campaign.Brief{
		CampaignBrief:   args.CampaignBrief,
		Platforms:       args.Platforms,
		Style:           args.Style,
		HashtagStrategy: args.HashtagStrategy,
		TargetAudience:  args.TargetAudience,
		IncludeCTA:      args.IncludeCTA,
		ImageStyle:      args.ImageStyle,
		ImageModel:      args.ImageModel,
	})

	// Base64 payloads dominate the response size; strip them unless the
	// caller asked for them. File paths remain when OUTPUT_DIR is set.
	if !args.IncludeBase64 {
		for i := range result.Results {
			if result.Results[i].Image != nil {
				result.Results[i].Image.Base64Data = ""
			}
		}
	}

	return toolJSON(result)
}

func (s *Server) handleCostEstimate(ctx context.Context, args CostEstimateInput) (*mcp.CallToolResult, any, error) {
	breakdown, err := pricing.Estimate(pricing.Input{
		Images1K:      args.Images1K,
		Images2K:      args.Images2K,
		VideoSeconds:  args.VideoSeconds,
		ContentPieces: args.ContentPieces,
		ImageModel:    args.ImageModel,
		VideoModel:    args.VideoModel,
	})
	if err != nil {
		return toolError(err.Error())
	}
	return toolJSON(breakdown)
}

func (s *Server) handleGeneratePromoVideo(ctx context.Context, args PromoVideoInput) (*mcp.CallToolResult, any, error) {
	if args.Prompt == "" {
		return toolError("prompt is required")
	}
	if args.DurationSeconds == 0 {
		args.DurationSeconds = 8
	}
	if args.Resolution == "" {
		args.Resolution = "720p"
	}
	if args.AspectRatio == "" {
		args.AspectRatio = "16:9"
	}

	perSecond, videoModel := pricing.VideoPrice(args.VideoModel)
	modelID := gemini.VideoModelID(videoModel)

	callCtx, cancel := context.WithTimeout(ctx, videoGenerationCap)
	defer cancel()

	result, err := s.cfg.Video.GenerateVideo(callCtx, modelID, args.Prompt, gemini.VideoOptions{
		DurationSeconds: args.DurationSeconds,
		Resolution:      args.Resolution,
		AspectRatio:     args.AspectRatio,
		NegativePrompt:  args.NegativePrompt,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Promo video generation failed")
		return toolError(fmt.Sprintf("video generation failed: %v", err))
	}

	return toolJSON(PromoVideoResult{
		VideoURI:          result.VideoURI,
		Model:             modelID,
		DurationSeconds:   result.DurationSeconds,
		Resolution:        result.Resolution,
		AspectRatio:       args.AspectRatio,
		CostUsd:           pricing.Round4(perSecond * float64(args.DurationSeconds)),
		GenerationSeconds: result.GenerationTime.Seconds(),
	})
}

func (s *Server) handleGetCampaignTemplate(ctx context.Context, args CampaignTemplateInput) (*mcp.CallToolResult, any, error) {
	tpl, err := campaign.LookupTemplate(args.CampaignType)
	if err != nil {
		return toolError(err.Error())
	}
	return toolJSON(tpl)
}

func (s *Server) handleHealthCheck(ctx context.Context) (*mcp.CallToolResult, any, error) {
	status := HealthStatus{
		Status:            "ok",
		APIKeyConfigured:  s.cfg.APIKeyConfigured,
		Services:          s.cfg.Services,
		ContentModel:      s.cfg.ContentModel,
		ImageModel:        pricing.DefaultImageModel,
		VideoModel:        pricing.DefaultVideoModel,
		OutputDir:         s.cfg.OutputDir,
		OutputDirWritable: s.outputDirWritable(),
		PlatformCount:     len(s.cfg.Registry.IDs()),
		PriceTableVersion: pricing.PriceTableVersion,
	}
	if !status.APIKeyConfigured || !status.Services.All() {
		status.Status = "degraded"
	}
	return toolJSON(status)
}

// toolError returns an error result for a tool call.
func toolError(message string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: message},
		},
		IsError: true,
	}, nil, nil
}

// toolJSON returns a tool result with the payload serialized as indented JSON.
func toolJSON(result any) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(data)},
		},
	}, result, nil
}
