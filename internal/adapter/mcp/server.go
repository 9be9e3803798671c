package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/guillermoBallester/hzmeta/internal/core/service"
)

const serverName = "hzmeta"

// NewServer creates an MCPServer exposing the metadata tools with logging hooks.
func NewServer(version string, metadata *service.MetadataService, logger *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer(
		serverName,
		version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithHooks(toolCallHooks(logger)),
	)

	RegisterTools(s, metadata)

	return s
}
