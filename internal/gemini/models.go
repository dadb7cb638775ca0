// Package gemini wraps the Google generative AI services used by the
// campaign pipeline: Gemini text generation via the official Go SDK, and
// Imagen / Veo media generation via the REST API.
package gemini

import "os"

// Gemini Model IDs
//
// | Model Name             | API Model ID                | Use Case                     |
// |------------------------|-----------------------------|------------------------------|
// | Gemini 2.5 Flash       | gemini-2.5-flash            | Marketing copy (default)     |
// | Gemini 2.5 Pro         | gemini-2.5-pro              | High-reasoning copywriting   |
// | Imagen 3               | imagen-3.0-generate-002     | Campaign images (default)    |
// | Imagen 4               | imagen-4.0-generate-001     | Higher-fidelity images       |
// | Veo 2                  | veo-2.0-generate-001        | Promo video, lower cost      |
// | Veo 3                  | veo-3.0-generate-001        | Promo video (default)        |
// | Veo 3 Fast             | veo-3.0-fast-generate-001   | Promo video, faster/cheaper  |
const (
	// ModelGemini25Flash is the default content generation model.
	ModelGemini25Flash = "gemini-2.5-flash"

	// ModelGemini25Pro is for high-reasoning copywriting tasks.
	ModelGemini25Pro = "gemini-2.5-pro"

	// ModelImagen3 is the default image generation model.
	ModelImagen3 = "imagen-3.0-generate-002"

	// ModelImagen4 is the higher-fidelity image generation model.
	ModelImagen4 = "imagen-4.0-generate-001"

	// ModelVeo2 is the lower-cost video generation model.
	ModelVeo2 = "veo-2.0-generate-001"

	// ModelVeo3 is the default video generation model.
	ModelVeo3 = "veo-3.0-generate-001"

	// ModelVeo3Fast is the faster, cheaper Veo 3 variant.
	ModelVeo3Fast = "veo-3.0-fast-generate-001"
)

// DefaultContentModel is the Gemini model used for campaign copy.
// Can be overridden via the GEMINI_MODEL environment variable.
const DefaultContentModel = ModelGemini25Flash

// ContentModelName returns the Gemini model to use for text generation,
// resolved from the GEMINI_MODEL environment variable with a stable default.
func ContentModelName() string {
	if env := os.Getenv("GEMINI_MODEL"); env != "" {
		return env
	}
	return DefaultContentModel
}

// ImageModelID maps a short image model family name ("imagen-3.0",
// "imagen-4.0") to the API model ID. Full model IDs pass through unchanged.
func ImageModelID(family string) string {
	switch family {
	case "", "imagen3", "imagen-3.0":
		return ModelImagen3
	case "imagen4", "imagen-4.0":
		return ModelImagen4
	default:
		return family
	}
}

// VideoModelID maps a short video model name ("veo2", "veo3", "veo3_fast")
// to the API model ID. Full model IDs pass through unchanged.
func VideoModelID(name string) string {
	switch name {
	case "veo2":
		return ModelVeo2
	case "", "veo3":
		return ModelVeo3
	case "veo3_fast":
		return ModelVeo3Fast
	default:
		return name
	}
}
