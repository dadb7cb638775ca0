package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/fpang/marketing-campaign-mcp/internal/campaign"
)

// registerPrompts registers all MCP prompts.
func (s *Server) registerPrompts() {
	s.mcpServer.AddPrompt(&mcp.Prompt{
		Name:        "campaign_planner",
		Description: "Plan a comprehensive marketing campaign: objectives, content mix, channels, and budget.",
		Arguments: []*mcp.PromptArgument{
			{Name: "campaign_type", Description: "Campaign type for tailored guidance (e.g. job_recruitment)", Required: false},
		},
	}, func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		campaignType := ""
		if req.Params != nil && req.Params.Arguments != nil {
			campaignType = req.Params.Arguments["campaign_type"]
		}
		return handleCampaignPlannerPrompt(campaignType)
	})

	s.mcpServer.AddPrompt(&mcp.Prompt{
		Name:        "image_prompt_enhancer",
		Description: "Improve image generation prompts: subject, style, mood, composition, and quality terms.",
	}, func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		return handleImagePromptEnhancerPrompt()
	})
}

func handleCampaignPlannerPrompt(campaignType string) (*mcp.GetPromptResult, error) {
	var sb strings.Builder

	sb.WriteString(`You are a marketing campaign strategist. Help plan a comprehensive marketing campaign.

Please provide:
1. Campaign objective and target audience
2. Key messages and value propositions
3. Content mix (images, videos, copy)
4. Channel strategy (social, email, ads)
5. Timeline and milestones

I'll help you:
- Generate cost estimates with calculate_cost_estimate
- Create per-platform copy with generate_campaign_content
- Produce full campaigns (copy + images) with batch_generate_campaign
- Generate promo clips with generate_promo_video
`)

	if campaignType != "" {
		if tpl, err := campaign.LookupTemplate(campaignType); err == nil {
			sb.WriteString(fmt.Sprintf(`
Playbook for %s campaigns:
- Recommended platforms: %s
- Content style: %s
- Posting frequency: %s
- Optimal times: %s
- Hashtag strategy: %s
- CTA patterns: %s
`,
				tpl.CampaignType,
				strings.Join(tpl.RecommendedPlatforms, ", "),
				tpl.ContentStyle,
				tpl.PostingFrequency,
				strings.Join(tpl.OptimalTimes, ", "),
				tpl.HashtagStrategy,
				tpl.CTAPattern,
			))
		}
	}

	sb.WriteString("\nWhat campaign would you like to plan?")

	return &mcp.GetPromptResult{
		Messages: []*mcp.PromptMessage{{
			Role:    "user",
			Content: &mcp.TextContent{Text: sb.String()},
		}},
	}, nil
}

func handleImagePromptEnhancerPrompt() (*mcp.GetPromptResult, error) {
	text := `I'll help you create better prompts for image generation.

For best results, include:
- **Subject**: What is the main focus?
- **Style**: Photography, illustration, 3D render, etc.
- **Mood**: Professional, playful, luxurious, etc.
- **Composition**: Layout, framing, perspective
- **Details**: Colors, lighting, background, textures
- **Quality terms**: High detail, sharp focus, professional lighting

Example: "Professional product photography of a smartphone, centered composition,
white background, soft studio lighting, high detail, commercial quality, modern and clean aesthetic"

What image do you want to create?`

	return &mcp.GetPromptResult{
		Messages: []*mcp.PromptMessage{{
			Role:    "user",
			Content: &mcp.TextContent{Text: text},
		}},
	}, nil
}
