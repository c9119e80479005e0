// Package main provides the citeline CLI entry point.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

// verbose enables engine debug logging on stderr
var verbose bool

func main() {
	// Optional .env for CITELINE_ROOT and friends; absence is fine.
	godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "citeline",
	Short: "Agent-first citation tracker and bibliography engine",
	Long: `citeline tracks citations across a document and renders bibliographies.

Citations are deduplicated by title and year at ingestion, every usage is
recorded with its context and confidence, and bibliographies can be rendered
in APA, IEEE, Nature, or MLA style. State lives in git-versionable JSONL
files with an ephemeral SQLite mirror for fast queries. All commands output
JSON by default for easy integration with AI agents and other tools.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Log engine activity to stderr")
	rootCmd.Version = Version
}

// getRepoRoot returns the starting directory for repository discovery.
func getRepoRoot() (string, int) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", outputError(ExitError, "getting current directory: %v", err)
	}

	// Check CITELINE_ROOT environment variable first
	if root := os.Getenv("CITELINE_ROOT"); root != "" {
		cwd = root
	}

	return cwd, 0
}
