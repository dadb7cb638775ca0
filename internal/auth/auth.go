// Package auth handles Gemini API key retrieval and validation.
package auth

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
)

// GetAPIKey retrieves the Gemini API key from the GEMINI_API_KEY
// environment variable. The key is required for every generation path,
// so callers should fail fast at startup when it is missing.
func GetAPIKey() (string, error) {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		log.Debug().Msg("Using API key from environment variable")
		return key, nil
	}

	log.Error().Msg("GEMINI_API_KEY is not set")
	return "", fmt.Errorf("API key not found: set the GEMINI_API_KEY environment variable")
}
