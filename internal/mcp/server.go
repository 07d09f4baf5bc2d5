// ABOUTME: MCP server initialization and configuration
// ABOUTME: Sets up server with shopping list tools and resources for AI agents

package mcp

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/harper/shoplist/internal/locale"
	"github.com/harper/shoplist/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps MCP server with the shopping list repository.
type Server struct {
	mcp    *mcp.Server
	repo   storage.Repository
	format *locale.Format
	logger *slog.Logger
}

// NewServer creates MCP server with all capabilities.
// A nil format falls back to locale.Default and a nil logger to slog.Default.
func NewServer(repo storage.Repository, format *locale.Format, logger *slog.Logger) (*Server, error) {
	if repo == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if format == nil {
		format = locale.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "shoplist",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcp:    mcpServer,
		repo:   repo,
		format: format,
		logger: logger,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server in stdio mode.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Debug("serving mcp over stdio")
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}
