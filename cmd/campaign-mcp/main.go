package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"google.golang.org/genai"

	"github.com/fpang/marketing-campaign-mcp/internal/auth"
	"github.com/fpang/marketing-campaign-mcp/internal/campaign"
	"github.com/fpang/marketing-campaign-mcp/internal/gemini"
	"github.com/fpang/marketing-campaign-mcp/internal/generate"
	"github.com/fpang/marketing-campaign-mcp/internal/logging"
	"github.com/fpang/marketing-campaign-mcp/internal/mcpserver"
	"github.com/fpang/marketing-campaign-mcp/internal/platform"
)

// CLI flags
var (
	httpFlag         bool
	addrFlag         string
	outputDirFlag    string
	concurrencyFlag  int
	skipValidateFlag bool
)

// rootCmd is the main Cobra command for the server.
var rootCmd = &cobra.Command{
	Use:   "campaign-mcp",
	Short: "MCP server for AI marketing campaign generation",
	Long: `Campaign MCP generates complete marketing campaigns across twelve social
and web platforms: platform-optimized copy with hashtags and CTAs, images
sized to each platform's dimensions, promo video clips, and cost estimates.

The server speaks the Model Context Protocol over stdio by default, which
is how MCP clients such as IDE assistants launch it. Pass --http to serve
the streamable HTTP transport instead.

Examples:
  campaign-mcp                       # stdio transport for MCP clients
  campaign-mcp --http --addr :8080   # streamable HTTP transport
  campaign-mcp --output-dir ./out    # also write generated images to disk`,
	Run: runServer,
}

func init() {
	rootCmd.Flags().BoolVar(&httpFlag, "http", false, "Serve MCP over streamable HTTP instead of stdio")
	rootCmd.Flags().StringVar(&addrFlag, "addr", ":8080", "Listen address for --http mode")
	rootCmd.Flags().StringVarP(&outputDirFlag, "output-dir", "o", "", "Directory for generated images (defaults to OUTPUT_DIR env)")
	rootCmd.Flags().IntVar(&concurrencyFlag, "concurrency", campaign.DefaultConcurrency, "Maximum platforms generated in parallel")
	rootCmd.Flags().BoolVar(&skipValidateFlag, "skip-validate", false, "Skip the startup API key validation call")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// runServer wires the generation pipeline and serves MCP.
func runServer(cmd *cobra.Command, args []string) {
	logging.Init()
	start := time.Now()

	outputDir := outputDirFlag
	if outputDir == "" {
		outputDir = os.Getenv("OUTPUT_DIR")
	}

	ctx := context.Background()

	// A missing or invalid key degrades the server instead of aborting
	// it: cost estimates, templates, and resources keep working, and
	// health_check reports which collaborators are unavailable.
	apiKey, err := auth.GetAPIKey()
	apiKeyConfigured := err == nil
	if !apiKeyConfigured {
		log.Warn().Err(err).Msg("No API key configured; generation tools will fail until GEMINI_API_KEY is set")
	}

	var client *genai.Client
	if apiKeyConfigured {
		client, err = gemini.NewClient(ctx, apiKey)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create Gemini client")
		}

		if skipValidateFlag {
			log.Warn().Msg("Skipping API key validation")
		} else if err := auth.ValidateAPIKey(ctx, client); err != nil {
			apiKeyConfigured = false
			logValidationError(err)
		}
	}

	textClient := gemini.NewTextClient(client)
	registry := platform.NewRegistry()

	imageGen := generate.NewImageGenerator(gemini.NewImagenClient(apiKey))
	if outputDir != "" {
		imageGen = imageGen.WithOutputDir(outputDir)
	}

	orchestrator := campaign.NewOrchestrator(
		registry,
		generate.NewContentGenerator(textClient),
		imageGen,
	).WithConcurrency(concurrencyFlag)

	server := mcpserver.NewServer(mcpserver.Config{
		Orchestrator:     orchestrator,
		Registry:         registry,
		Video:            gemini.NewVeoClient(apiKey),
		ContentModel:     textClient.Model(),
		OutputDir:        outputDir,
		APIKeyConfigured: apiKeyConfigured,
		// All three generation services ride the same Gemini credential.
		Services: mcpserver.ServiceAvailability{
			TextService:  apiKeyConfigured,
			ImageService: apiKeyConfigured,
			VideoService: apiKeyConfigured,
		},
	})

	transport := "stdio"
	if httpFlag {
		transport = "http"
	}

	logging.NewStartupLogger(mcpserver.ServerName).
		Version(mcpserver.ServerVersion).
		Model("content", textClient.Model()).
		Model("image", gemini.ImageModelID("")).
		Model("video", gemini.VideoModelID("")).
		Feature("http", httpFlag).
		Feature("api_key_validated", apiKeyConfigured).
		Config("transport", transport).
		Config("output_dir", outputDir).
		Config("concurrency", strconv.Itoa(concurrencyFlag)).
		InitDuration(time.Since(start)).
		Log()

	if httpFlag {
		log.Info().Str("addr", addrFlag).Msg("Serving MCP over streamable HTTP")
		if err := http.ListenAndServe(addrFlag, server.HTTPHandler()); err != nil {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
		return
	}

	if err := server.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("MCP server exited with error")
	}
}

// logValidationError logs a startup validation failure with actionable
// messaging, without terminating the server.
func logValidationError(err error) {
	var validationErr *auth.ValidationError
	if errors.As(err, &validationErr) {
		switch validationErr.Type {
		case auth.ErrTypeNoKey:
			log.Warn().Msg("No API key configured. Set the GEMINI_API_KEY environment variable")
		case auth.ErrTypeInvalidKey:
			log.Warn().Err(err).Msg("Invalid API key. Generation tools will fail until it is fixed")
		case auth.ErrTypeNetworkError:
			log.Warn().Err(err).Msg("Network error during key validation. Check your internet connection")
		case auth.ErrTypeQuotaExceeded:
			log.Warn().Err(err).Msg("API quota exceeded. Generation may fail until quota resets")
		default:
			log.Warn().Err(err).Msg("API key validation failed")
		}
		return
	}
	log.Warn().Err(err).Msg("unexpected error during API key validation")
}
