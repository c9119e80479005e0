package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/citeline/internal/config"
	"github.com/matsen/citeline/internal/storage"
)

func init() {
	rootCmd.AddCommand(rebuildCmd)
}

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the SQLite mirror from the JSONL files",
	Long: `Rebuild the ephemeral SQLite mirror from the JSONL source of truth.

The mirror only serves queries; the JSONL files always win.`,
	RunE: runRebuild,
}

// RebuildResponse is the JSON response for the rebuild command.
type RebuildResponse struct {
	Status    string `json:"status"`
	Citations int    `json:"citations"`
}

func runRebuild(cmd *cobra.Command, args []string) error {
	repoRoot := findRepo()

	dir := config.DataPath(repoRoot)
	snap, err := storage.LoadSnapshot(dir)
	if err != nil {
		exitWithError(ExitDataError, "loading citation data: %v", err)
	}

	db, err := storage.OpenDB(storage.DBPath(dir))
	if err != nil {
		exitWithError(ExitError, "opening database: %v", err)
	}
	defer db.Close()

	n, err := db.RebuildFromSnapshot(snap)
	if err != nil {
		exitWithError(ExitError, "rebuilding database: %v", err)
	}

	if humanOutput {
		fmt.Printf("Rebuilt database with %d citations\n", n)
	} else {
		outputJSON(RebuildResponse{Status: "rebuilt", Citations: n})
	}

	return nil
}
