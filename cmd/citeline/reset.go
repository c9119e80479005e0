package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetForce bool

func init() {
	resetCmd.Flags().BoolVar(&resetForce, "force", false, "Skip the confirmation requirement")
	rootCmd.AddCommand(resetCmd)
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear all citations and usage records",
	Long: `Clear all citations and usage records from the repository.

Individual citations are never deleted; this whole-store reset is the only
way state is discarded. Requires --force.`,
	RunE: runReset,
}

func runReset(cmd *cobra.Command, args []string) error {
	if !resetForce {
		exitWithError(ExitError, "refusing to clear the store without --force")
	}

	repoRoot := findRepo()
	eng := loadEngine(repoRoot)

	eng.Reset()
	saveEngine(repoRoot, eng)

	if humanOutput {
		fmt.Println("Cleared all citations and usage records")
	} else {
		outputJSON(StatusResponse{Status: "reset", Path: repoRoot})
	}

	return nil
}
