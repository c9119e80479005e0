package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	trackContext    string
	trackSection    string
	trackConfidence float64
)

func init() {
	trackCmd.Flags().StringVar(&trackContext, "context", "", "Text surrounding the citation")
	trackCmd.Flags().StringVar(&trackSection, "section", "", "Document section containing the citation")
	trackCmd.Flags().Float64Var(&trackConfidence, "confidence", 1.0, "Extraction confidence between 0.0 and 1.0")
	rootCmd.AddCommand(trackCmd)
}

var trackCmd = &cobra.Command{
	Use:   "track <key>",
	Short: "Record a usage of a citation",
	Long: `Record a usage of a citation at a location in the document.

The first usage freezes the citation's ordinal for numbered styles.

Example:
  citeline track vaswani2017 --section introduction --confidence 0.95`,
	Args: cobra.ExactArgs(1),
	RunE: runTrack,
}

// TrackResponse is the JSON response for the track command.
type TrackResponse struct {
	UsageID    string `json:"usage_id"`
	Key        string `json:"key"`
	Ordinal    int    `json:"ordinal"`
	UsageCount int    `json:"usage_count"`
}

func runTrack(cmd *cobra.Command, args []string) error {
	repoRoot := findRepo()
	eng := loadEngine(repoRoot)

	key := args[0]
	rec, err := eng.TrackCitation(key, trackContext, trackSection, trackConfidence)
	if err != nil {
		exitWithError(exitCodeFor(err), "tracking citation: %v", err)
	}

	saveEngine(repoRoot, eng)

	c, err := eng.GetCitation(key)
	if err != nil {
		exitWithError(ExitError, "getting citation: %v", err)
	}
	count, err := eng.UsageCount(key)
	if err != nil {
		exitWithError(ExitError, "counting usages: %v", err)
	}

	if humanOutput {
		fmt.Printf("Tracked usage of %s (usage %d, ordinal %d)\n", key, count, c.Ordinal)
	} else {
		outputJSON(TrackResponse{
			UsageID:    rec.ID,
			Key:        key,
			Ordinal:    c.Ordinal,
			UsageCount: count,
		})
	}

	return nil
}
