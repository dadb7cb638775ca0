package generate

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // decode model output in either format
	"image/png"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/image/draw"

	"github.com/fpang/marketing-campaign-mcp/internal/gemini"
	"github.com/fpang/marketing-campaign-mcp/internal/platform"
	"github.com/fpang/marketing-campaign-mcp/internal/pricing"
)

// DefaultImageTimeout bounds a single image generation call.
const DefaultImageTimeout = 15 * time.Second

// ImageService generates a raw image from a prompt. Implemented by
// gemini.ImagenClient; tests substitute fakes.
type ImageService interface {
	GenerateImage(ctx context.Context, model, prompt, aspectRatio string) (*gemini.ImageResult, error)
}

// ImageRequest describes one platform's image generation.
type ImageRequest struct {
	Brief      string
	Platform   platform.Spec
	ImageStyle string
	// Model is the image model family ("imagen-3.0", "imagen-4.0") or a
	// full model ID. Empty selects the default.
	Model string
}

// ImageArtifact is one platform's image generation outcome. Failed
// generations are artifacts with Success=false, never errors.
type ImageArtifact struct {
	Platform      string  `json:"platform"`
	Success       bool    `json:"success"`
	Dimensions    string  `json:"dimensions"`
	Model         string  `json:"model,omitempty"`
	AspectRatio   string  `json:"aspect_ratio,omitempty"`
	Base64Data    string  `json:"base64_data,omitempty"`
	MIMEType      string  `json:"mime_type,omitempty"`
	CostUsd       float64 `json:"cost_usd"`
	FilePath      string  `json:"file_path,omitempty"`
	FailureReason string  `json:"failure_reason,omitempty"`
	FailureKind   string  `json:"failure_kind,omitempty"`
}

// ImageGenerator produces platform-dimensioned images via an ImageService.
type ImageGenerator struct {
	images    ImageService
	timeout   time.Duration
	outputDir string
}

// NewImageGenerator creates an ImageGenerator with the default timeout.
func NewImageGenerator(images ImageService) *ImageGenerator {
	return &ImageGenerator{
		images:  images,
		timeout: DefaultImageTimeout,
	}
}

// WithTimeout overrides the per-call timeout. Used in tests.
func (g *ImageGenerator) WithTimeout(d time.Duration) *ImageGenerator {
	g.timeout = d
	return g
}

// WithOutputDir enables writing generated images to dir with timestamped
// filenames. An empty dir disables file output.
func (g *ImageGenerator) WithOutputDir(dir string) *ImageGenerator {
	g.outputDir = dir
	return g
}

// Generate produces one platform's image artifact. Safety rejections and
// transport failures both degrade to Success=false artifacts so a single
// bad image never aborts the rest of a campaign.
func (g *ImageGenerator) Generate(ctx context.Context, req ImageRequest) *ImageArtifact {
	spec := req.Platform
	modelID := gemini.ImageModelID(req.Model)
	aspectRatio := NearestAspectRatio(spec.ImageWidth, spec.ImageHeight)

	artifact := &ImageArtifact{
		Platform:    spec.ID,
		Dimensions:  fmt.Sprintf("%dx%d", spec.ImageWidth, spec.ImageHeight),
		Model:       modelID,
		AspectRatio: aspectRatio,
	}

	log.Debug().
		Str("platform", spec.ID).
		Str("model", modelID).
		Str("aspect_ratio", aspectRatio).
		Msg("Generating campaign image")

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	result, err := g.images.GenerateImage(callCtx, modelID, BuildImagePrompt(req), aspectRatio)
	if err != nil {
		return g.failed(artifact, err)
	}

	data, err := g.fitToPlatform(result.ImageData, spec)
	if err != nil {
		return g.failed(artifact, err)
	}

	artifact.Success = true
	artifact.Base64Data = base64.StdEncoding.EncodeToString(data)
	artifact.MIMEType = "image/png"
	artifact.CostUsd = imageCost(modelID, spec)

	if g.outputDir != "" {
		if path, err := g.writeFile(spec.ID, data); err != nil {
			log.Warn().Err(err).Str("platform", spec.ID).Msg("Failed to write image file")
		} else {
			artifact.FilePath = path
		}
	}

	log.Debug().
		Str("platform", spec.ID).
		Int("bytes", len(data)).
		Float64("cost_usd", artifact.CostUsd).
		Msg("Campaign image generated")

	return artifact
}

// failed records a generation failure on the artifact, classifying safety
// rejections separately from transport and timeout failures.
func (g *ImageGenerator) failed(artifact *ImageArtifact, err error) *ImageArtifact {
	artifact.Success = false
	artifact.FailureReason = err.Error()

	var safetyErr *gemini.SafetyRejectionError
	if errors.As(err, &safetyErr) {
		artifact.FailureKind = string(KindImageSafety)
	} else {
		artifact.FailureKind = string(KindExternalService)
	}

	log.Warn().
		Err(err).
		Str("platform", artifact.Platform).
		Str("failure_kind", artifact.FailureKind).
		Msg("Image generation failed")

	return artifact
}

// fitToPlatform decodes the model output and resizes it to the exact
// platform dimensions, re-encoding as PNG.
func (g *ImageGenerator) fitToPlatform(data []byte, spec platform.Spec) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode generated image: %w", err)
	}

	bounds := src.Bounds()
	if bounds.Dx() != spec.ImageWidth || bounds.Dy() != spec.ImageHeight {
		dst := image.NewRGBA(image.Rect(0, 0, spec.ImageWidth, spec.ImageHeight))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		src = dst
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// writeFile persists the image under the output directory with a
// timestamped filename and returns the full path.
func (g *ImageGenerator) writeFile(platformID string, data []byte) (string, error) {
	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	name := fmt.Sprintf("%s_%s.png", platformID, time.Now().UTC().Format("20060102T150405"))
	path := filepath.Join(g.outputDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	return path, nil
}

// imageCost returns the per-image price for the platform's resolution tier.
// Platforms whose longest side exceeds 1024 bill at the 2K tier.
func imageCost(model string, spec platform.Spec) float64 {
	cost1K, cost2K, _ := pricing.ImagePrices(model)
	if spec.ImageWidth > 1024 || spec.ImageHeight > 1024 {
		return cost2K
	}
	return cost1K
}

// supportedAspectRatios are the ratios the image API accepts.
var supportedAspectRatios = []struct {
	name  string
	value float64
}{
	{"1:1", 1.0},
	{"3:4", 3.0 / 4.0},
	{"4:3", 4.0 / 3.0},
	{"9:16", 9.0 / 16.0},
	{"16:9", 16.0 / 9.0},
}

// NearestAspectRatio picks the supported aspect ratio closest to the
// platform's width:height ratio.
func NearestAspectRatio(width, height int) string {
	target := float64(width) / float64(height)
	best := supportedAspectRatios[0].name
	bestDiff := math.Inf(1)
	for _, r := range supportedAspectRatios {
		diff := math.Abs(math.Log(target / r.value))
		if diff < bestDiff {
			bestDiff = diff
			best = r.name
		}
	}
	return best
}
