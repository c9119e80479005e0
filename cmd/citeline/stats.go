package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/citeline/internal/stats"
)

var statsTopN int

func init() {
	statsCmd.Flags().IntVar(&statsTopN, "top", 0, "Ranking size for most-cited entries (default from config)")
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Report citation usage statistics",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	repoRoot := findRepo()
	cfg := repoConfig(repoRoot)
	eng := loadEngine(repoRoot)

	topN := statsTopN
	if topN <= 0 {
		topN = cfg.TopN
	}

	report := stats.Report(eng, topN)

	if humanOutput {
		fmt.Printf("Citations: %d (%d used, %d unused)\n",
			report.TotalCitations, report.UsedCitations, report.UnusedCitations)
		fmt.Printf("Usages:    %d\n", report.TotalUsages)
		if report.TotalUsages > 0 {
			fmt.Printf("Avg conf:  %.4f\n", report.AverageConfidenceOverall)
		}
		if len(report.CitationsByUsageCount) > 0 {
			fmt.Println()
			fmt.Println("Most cited:")
			for i, e := range report.CitationsByUsageCount {
				fmt.Printf("  %d. %s (%d usages, avg conf %.2f)\n", i+1, e.Key, e.UsageCount, e.AvgConfidence)
			}
		}
	} else {
		outputJSON(report)
	}

	return nil
}
