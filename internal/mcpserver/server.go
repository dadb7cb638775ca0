// Package mcpserver exposes the campaign pipeline over the Model Context
// Protocol: tools for generation and estimation, resources for configuration
// discovery, and prompts for guided planning.
package mcpserver

import (
	"context"
	"net/http"
	"os"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"

	"github.com/fpang/marketing-campaign-mcp/internal/campaign"
	"github.com/fpang/marketing-campaign-mcp/internal/gemini"
	"github.com/fpang/marketing-campaign-mcp/internal/platform"
)

// ServerName identifies this MCP server to clients.
const ServerName = "marketing-campaign-mcp"

// ServerVersion is reported in the MCP handshake.
const ServerVersion = "1.0.0"

// VideoService generates promo video clips. Implemented by gemini.VeoClient.
type VideoService interface {
	GenerateVideo(ctx context.Context, model, prompt string, opts gemini.VideoOptions) (*gemini.VideoResult, error)
}

// ServiceAvailability reports whether each external generation collaborator
// was reachable at startup. Reported by health_check.
type ServiceAvailability struct {
	TextService  bool `json:"text_service"`
	ImageService bool `json:"image_service"`
	VideoService bool `json:"video_service"`
}

// All reports whether every collaborator is available.
func (a ServiceAvailability) All() bool {
	return a.TextService && a.ImageService && a.VideoService
}

// Config wires the server's collaborators.
type Config struct {
	Orchestrator *campaign.Orchestrator
	Registry     *platform.Registry
	Video        VideoService
	// ContentModel is the resolved text model ID, reported by resources
	// and health checks.
	ContentModel string
	// OutputDir is where generated media is written; empty disables
	// file output.
	OutputDir string
	// APIKeyConfigured reports whether startup credential checks passed.
	APIKeyConfigured bool
	// Services is the per-collaborator availability determined at startup.
	Services ServiceAvailability
}

// Server wraps the MCP server with the campaign pipeline wiring.
type Server struct {
	mcpServer *mcp.Server
	cfg       Config
}

// NewServer creates an MCP server with all tools, resources, and prompts
// registered.
func NewServer(cfg Config) *Server {
	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: ServerVersion,
	}, nil)

	s := &Server{
		mcpServer: mcpServer,
		cfg:       cfg,
	}

	s.registerTools()
	s.registerResources()
	s.registerPrompts()

	return s
}

// Run serves MCP over stdio until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	log.Info().Str("transport", "stdio").Msg("Serving MCP")
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

// HTTPHandler returns a streamable HTTP handler for the MCP server.
func (s *Server) HTTPHandler() http.Handler {
	return mcp.NewStreamableHTTPHandler(
		func(r *http.Request) *mcp.Server {
			return s.mcpServer
		},
		nil,
	)
}

// outputDirWritable probes whether the configured output directory can be
// created and written to.
func (s *Server) outputDirWritable() bool {
	if s.cfg.OutputDir == "" {
		return false
	}
	if err := os.MkdirAll(s.cfg.OutputDir, 0o755); err != nil {
		return false
	}
	probe := filepath.Join(s.cfg.OutputDir, ".writecheck")
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		return false
	}
	os.Remove(probe)
	return true
}
