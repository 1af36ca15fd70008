// ABOUTME: MCP server initialization and configuration
// ABOUTME: Sets up server with trace tools and resources for AI agents

package mcp

import (
	"context"
	"fmt"

	"github.com/harper/trailbook/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with the trace library.
type Server struct {
	mcp  *mcp.Server
	repo storage.Repository
}

// NewServer creates MCP server with all capabilities.
func NewServer(repo storage.Repository, version string) (*Server, error) {
	if repo == nil {
		return nil, fmt.Errorf("repository is required")
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "trailbook",
			Version: version,
		},
		nil,
	)

	s := &Server{
		mcp:  mcpServer,
		repo: repo,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server in stdio mode.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}
