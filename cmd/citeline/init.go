package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matsen/citeline/internal/config"
	"github.com/matsen/citeline/internal/storage"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new citeline repository",
	Long: `Initialize a new citeline repository in the current directory.

Creates:
  .citeline/
  ├── citations.jsonl  # Empty file
  ├── usages.jsonl     # Empty file
  └── config.json      # Default config`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	root, exitCode := getRepoRoot()
	if exitCode != 0 {
		os.Exit(exitCode)
	}

	if config.IsRepository(root) {
		exitWithError(ExitError, "directory already contains a citeline repository")
	}

	dir := config.CitelinePath(root)
	if err := os.MkdirAll(dir, 0755); err != nil {
		exitWithError(ExitError, "creating .citeline directory: %v", err)
	}

	for _, name := range []string{storage.CitationsFile, storage.UsagesFile} {
		f, err := os.Create(filepath.Join(dir, name))
		if err != nil {
			exitWithError(ExitError, "creating %s: %v", name, err)
		}
		f.Close()
	}

	if err := config.Default().Save(root); err != nil {
		exitWithError(ExitError, "creating config.json: %v", err)
	}

	if humanOutput {
		fmt.Printf("Initialized citeline repository in %s\n", root)
	} else {
		outputJSON(StatusResponse{
			Status: "initialized",
			Path:   root,
		})
	}

	return nil
}
