// Package pricing estimates USD costs for campaign generation. The price
// table is fixed and versioned against the published Gemini API pricing;
// estimation is a pure computation with no I/O.
package pricing

import (
	"fmt"
	"math"
	"strings"
)

// Price table, USD per unit. Imagen prices are per image at the given
// resolution tier; Veo prices are per second of video; content prices are
// per 1K tokens.
const (
	Imagen3Price1K = 0.02
	Imagen3Price2K = 0.04
	Imagen4Price1K = 0.04
	Imagen4Price2K = 0.08

	Veo2PricePerSecond     = 0.40
	Veo3PricePerSecond     = 0.75
	Veo3FastPricePerSecond = 0.40

	// GeminiFlashPricePer1K is the content-generation price per 1K tokens.
	GeminiFlashPricePer1K = 0.0005

	// ContentTokensPerPiece is the budgeted token count for one content
	// piece (prompt + completion), so one piece costs $0.000375.
	ContentTokensPerPiece = 750
)

// PriceTableVersion identifies the pricing snapshot this package encodes.
const PriceTableVersion = "2025-11-09"

// Default model identifiers used when the caller does not specify one.
const (
	DefaultImageModel = "imagen-3.0"
	DefaultVideoModel = "veo3"
	ContentModel      = "gemini-2.5-flash"
)

// CostError reports malformed numeric input to the estimator.
type CostError struct {
	Field string
	Value int
}

func (e *CostError) Error() string {
	return fmt.Sprintf("invalid cost input: %s = %d (must be >= 0)", e.Field, e.Value)
}

// Input describes the resources to price.
type Input struct {
	Images1K      int
	Images2K      int
	VideoSeconds  int
	ContentPieces int
	// ImageModel selects the Imagen pricing tier: "imagen-3.0" (default)
	// or "imagen-4.0".
	ImageModel string
	// VideoModel selects the Veo pricing tier: "veo2", "veo3" (default),
	// or "veo3_fast".
	VideoModel string
}

// ImageTierCost itemizes one image resolution tier.
type ImageTierCost struct {
	Count        int     `json:"count"`
	CostPerImage float64 `json:"cost_per_image"`
	CostUsd      float64 `json:"cost_usd"`
}

// ImageCost itemizes all image generation costs.
type ImageCost struct {
	Resolution1K ImageTierCost `json:"1k_resolution"`
	Resolution2K ImageTierCost `json:"2k_resolution"`
	TotalCostUsd float64       `json:"total_cost_usd"`
	Model        string        `json:"model"`
}

// VideoCost itemizes video generation costs.
type VideoCost struct {
	Seconds       int     `json:"seconds"`
	Model         string  `json:"model"`
	CostPerSecond float64 `json:"cost_per_second"`
	CostUsd       float64 `json:"cost_usd"`
}

// ContentCost itemizes text generation costs.
type ContentCost struct {
	Pieces    int     `json:"pieces"`
	AvgTokens int     `json:"avg_tokens"`
	Model     string  `json:"model"`
	CostUsd   float64 `json:"cost_usd"`
}

// Breakdown is the full itemized estimate.
type Breakdown struct {
	Images       ImageCost   `json:"images"`
	Video        VideoCost   `json:"video"`
	Content      ContentCost `json:"content"`
	TotalCostUsd float64     `json:"total_cost_usd"`
}

// ImagePrices returns the per-image 1K and 2K prices for the given model.
// Unrecognized models fall back to imagen-3.0 pricing.
func ImagePrices(imageModel string) (cost1K, cost2K float64, model string) {
	if strings.Contains(imageModel, "4") {
		return Imagen4Price1K, Imagen4Price2K, "imagen-4.0"
	}
	return Imagen3Price1K, Imagen3Price2K, DefaultImageModel
}

// VideoPrice returns the per-second price for the given video model.
// Unrecognized models fall back to veo3 pricing.
func VideoPrice(videoModel string) (perSecond float64, model string) {
	switch strings.ToLower(videoModel) {
	case "veo2":
		return Veo2PricePerSecond, "veo2"
	case "veo3_fast":
		return Veo3FastPricePerSecond, "veo3_fast"
	default:
		return Veo3PricePerSecond, DefaultVideoModel
	}
}

// ContentPieceCost is the estimated cost of generating one content piece.
func ContentPieceCost() float64 {
	return float64(ContentTokensPerPiece) / 1000 * GeminiFlashPricePer1K
}

// Estimate prices the given resource counts. Counts must be non-negative;
// a negative count produces a *CostError. Sums are computed in full float64
// precision; only the reported fields are display-rounded.
func Estimate(in Input) (*Breakdown, error) {
	if in.Images1K < 0 {
		return nil, &CostError{Field: "images_1k", Value: in.Images1K}
	}
	if in.Images2K < 0 {
		return nil, &CostError{Field: "images_2k", Value: in.Images2K}
	}
	if in.VideoSeconds < 0 {
		return nil, &CostError{Field: "video_seconds", Value: in.VideoSeconds}
	}
	if in.ContentPieces < 0 {
		return nil, &CostError{Field: "content_pieces", Value: in.ContentPieces}
	}

	cost1K, cost2K, imageModel := ImagePrices(in.ImageModel)
	image1KCost := float64(in.Images1K) * cost1K
	image2KCost := float64(in.Images2K) * cost2K
	totalImageCost := image1KCost + image2KCost

	perSecond, videoModel := VideoPrice(in.VideoModel)
	videoCost := float64(in.VideoSeconds) * perSecond

	contentCost := float64(in.ContentPieces) * ContentPieceCost()

	total := totalImageCost + videoCost + contentCost

	return &Breakdown{
		Images: ImageCost{
			Resolution1K: ImageTierCost{Count: in.Images1K, CostPerImage: cost1K, CostUsd: Round4(image1KCost)},
			Resolution2K: ImageTierCost{Count: in.Images2K, CostPerImage: cost2K, CostUsd: Round4(image2KCost)},
			TotalCostUsd: Round4(totalImageCost),
			Model:        imageModel,
		},
		Video: VideoCost{
			Seconds:       in.VideoSeconds,
			Model:         videoModel,
			CostPerSecond: perSecond,
			CostUsd:       Round4(videoCost),
		},
		Content: ContentCost{
			Pieces:    in.ContentPieces,
			AvgTokens: ContentTokensPerPiece,
			Model:     ContentModel,
			CostUsd:   Round6(contentCost),
		},
		TotalCostUsd: Round4(total),
	}, nil
}

// Round4 rounds to 4 decimal places for display.
func Round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}

// Round6 rounds to 6 decimal places, used for sub-cent content costs.
func Round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
