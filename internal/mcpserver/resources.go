package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/fpang/marketing-campaign-mcp/internal/gemini"
	"github.com/fpang/marketing-campaign-mcp/internal/pricing"
)

// registerResources registers all MCP resources.
func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "config://pricing",
		Name:        "Pricing",
		Description: "Current per-unit pricing for image, video, and content generation.",
		MIMEType:    "application/json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return resourceJSON("config://pricing", pricingInfo())
	})

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "config://platforms",
		Name:        "Platforms",
		Description: "Supported platforms with their character, hashtag, and image dimension constraints.",
		MIMEType:    "application/json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return resourceJSON("config://platforms", map[string]any{
			"platforms": s.cfg.Registry.All(),
		})
	})

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "config://models",
		Name:        "Models",
		Description: "Available generation models and their capabilities.",
		MIMEType:    "application/json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return resourceJSON("config://models", s.modelInfo())
	})
}

// pricingInfo serializes the price table.
func pricingInfo() map[string]any {
	return map[string]any{
		"pricing": map[string]any{
			"imagen-3.0": map[string]float64{
				"1k_resolution": pricing.Imagen3Price1K,
				"2k_resolution": pricing.Imagen3Price2K,
			},
			"imagen-4.0": map[string]float64{
				"1k_resolution": pricing.Imagen4Price1K,
				"2k_resolution": pricing.Imagen4Price2K,
			},
			"veo2":      map[string]float64{"per_second": pricing.Veo2PricePerSecond},
			"veo3":      map[string]float64{"per_second": pricing.Veo3PricePerSecond},
			"veo3_fast": map[string]float64{"per_second": pricing.Veo3FastPricePerSecond},
			"content": map[string]any{
				"per_1k_tokens":    pricing.GeminiFlashPricePer1K,
				"tokens_per_piece": pricing.ContentTokensPerPiece,
				"per_piece":        pricing.ContentPieceCost(),
			},
		},
		"currency":     "USD",
		"last_updated": pricing.PriceTableVersion,
		"notes":        "Official pricing from the Gemini API documentation",
		"details": map[string]string{
			"imagen":  "Per image - 1K or 2K resolution tier",
			"veo":     "Per second of video - 24fps with audio",
			"content": "Per generated content piece",
		},
	}
}

// modelInfo describes the available models and their constraints.
func (s *Server) modelInfo() map[string]any {
	return map[string]any{
		"content_generation": map[string]any{
			"model":   s.cfg.ContentModel,
			"default": gemini.DefaultContentModel,
		},
		"image_generation": map[string]any{
			"imagen-3.0": map[string]any{
				"api_model":     gemini.ModelImagen3,
				"resolutions":   []string{"1K", "2K"},
				"aspect_ratios": []string{"1:1", "3:4", "4:3", "9:16", "16:9"},
			},
			"imagen-4.0": map[string]any{
				"api_model":     gemini.ModelImagen4,
				"resolutions":   []string{"1K", "2K"},
				"aspect_ratios": []string{"1:1", "3:4", "4:3", "9:16", "16:9"},
			},
		},
		"video_generation": map[string]any{
			"veo2": map[string]any{
				"api_model":   gemini.ModelVeo2,
				"durations":   []int{4, 6, 8},
				"resolutions": []string{"720p", "1080p"},
			},
			"veo3": map[string]any{
				"api_model":     gemini.ModelVeo3,
				"durations":     []int{4, 6, 8},
				"resolutions":   []string{"720p", "1080p"},
				"aspect_ratios": []string{"16:9", "9:16"},
				"fps":           24,
				"features":      []string{"Native audio generation", "SynthID watermarking"},
			},
			"veo3_fast": map[string]any{
				"api_model":   gemini.ModelVeo3Fast,
				"durations":   []int{4, 6, 8},
				"resolutions": []string{"720p", "1080p"},
			},
		},
	}
}

// resourceJSON serializes a payload as a JSON resource result.
func resourceJSON(uri string, payload any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resource %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
