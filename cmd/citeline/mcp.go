package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/matsen/citeline/internal/config"
	"github.com/matsen/citeline/internal/engine"
	"github.com/matsen/citeline/internal/mcpserver"
	"github.com/matsen/citeline/internal/storage"
)

func init() {
	rootCmd.AddCommand(mcpCmd)
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP server over stdio",
	Long: `Run the MCP server over stdio.

Exposes the citation engine as MCP tools so agents can add citations,
track usages, and generate bibliographies directly. Mutations are
persisted to the repository after each tool call.`,
	RunE: runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	repoRoot := findRepo()
	dir := config.DataPath(repoRoot)

	// Stdout carries the protocol; log to stderr only.
	logCfg := zap.NewProductionConfig()
	logCfg.OutputPaths = []string{"stderr"}
	logger, err := logCfg.Build()
	if err != nil {
		exitWithError(ExitError, "building logger: %v", err)
	}
	defer logger.Sync()

	snap, err := storage.LoadSnapshot(dir)
	if err != nil {
		exitWithError(ExitDataError, "loading citation data: %v", err)
	}

	eng := engine.New(logger)
	if err := eng.Restore(snap); err != nil {
		exitWithError(ExitDataError, "restoring citation data: %v", err)
	}

	srv, err := mcpserver.NewServer(eng, dir)
	if err != nil {
		exitWithError(ExitError, "creating MCP server: %v", err)
	}

	if err := srv.Run(cmd.Context()); err != nil {
		exitWithError(ExitError, "running MCP server: %v", err)
	}

	return nil
}
