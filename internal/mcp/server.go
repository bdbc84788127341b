// ABOUTME: MCP server setup for the patient measurement store.
// ABOUTME: Wraps the MCP server with a storage.Repository.
package mcp

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/harperreed/healthmetrics/internal/logging"
	"github.com/harperreed/healthmetrics/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with storage access.
type Server struct {
	mcpServer *mcp.Server
	store     storage.Repository
	log       *log.Logger
}

// NewServer creates a new MCP server over the given store.
func NewServer(store storage.Repository, version string) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "healthmetrics",
			Version: version,
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		store:     store,
		log:       logging.Logger(logging.SourceMCP).With("store", store.Path()),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	s.log.Info("serving on stdio")
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
