// Package mcpserver exposes the citation engine as MCP tools over stdio,
// so document agents can register citations and request bibliographies
// without shelling out to the CLI.
package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/matsen/citeline/internal/engine"
	"github.com/matsen/citeline/internal/storage"
)

// Version is the MCP server version.
const Version = "0.1.0"

// Server is the MCP server for citeline.
type Server struct {
	eng     *engine.Engine
	dataDir string
	server  *mcp.Server
}

// NewServer creates a new MCP server backed by the given engine. Mutating
// tools persist to dataDir after each call; pass an empty dataDir to run
// in-memory only.
func NewServer(eng *engine.Engine, dataDir string) (*Server, error) {
	if eng == nil {
		return nil, fmt.Errorf("engine must not be nil")
	}

	impl := &mcp.Implementation{
		Name:    "citeline",
		Version: Version,
	}

	s := &Server{
		eng:     eng,
		dataDir: dataDir,
		server:  mcp.NewServer(impl, nil),
	}

	s.registerTools()

	return s, nil
}

// Run starts the MCP server over stdio.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// persist writes the engine state back to the data directory.
func (s *Server) persist() error {
	if s.dataDir == "" {
		return nil
	}
	if err := storage.SaveSnapshot(s.dataDir, s.eng.Snapshot()); err != nil {
		return fmt.Errorf("persisting snapshot: %w", err)
	}
	return nil
}
