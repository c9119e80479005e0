package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/citeline/internal/bibliography"
	"github.com/matsen/citeline/internal/citation"
)

var (
	bibStyle  string
	bibSortBy string
	bibAll    bool
)

func init() {
	bibCmd.Flags().StringVar(&bibStyle, "style", "", "Bibliography style: apa, ieee, nature, mla (default from config)")
	bibCmd.Flags().StringVar(&bibSortBy, "sort", "", "Sort key: author, year, title (default from config)")
	bibCmd.Flags().BoolVar(&bibAll, "all", false, "Include citations that have never been used")
	rootCmd.AddCommand(bibCmd)
}

var bibCmd = &cobra.Command{
	Use:   "bib",
	Short: "Generate a formatted bibliography",
	Long: `Generate a formatted bibliography for the repository.

Numbered styles (ieee, nature) keep the ordinal frozen at first use
regardless of sort order.

Examples:
  citeline bib --style apa
  citeline bib --style ieee --sort year
  citeline bib --style mla --all --human`,
	RunE: runBib,
}

// BibResponse is the JSON response for the bib command.
type BibResponse struct {
	Style   string                        `json:"style"`
	SortBy  string                        `json:"sort_by"`
	Entries []citation.FormattedReference `json:"entries"`
	Count   int                           `json:"count"`
}

func runBib(cmd *cobra.Command, args []string) error {
	repoRoot := findRepo()
	cfg := repoConfig(repoRoot)
	eng := loadEngine(repoRoot)

	styleName := bibStyle
	if styleName == "" {
		styleName = cfg.DefaultStyle
	}
	style, err := citation.ParseStyle(styleName)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	sortName := bibSortBy
	if sortName == "" {
		sortName = cfg.DefaultSortBy
	}
	sortBy, err := citation.ParseSortKey(sortName)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	opts := bibliography.Options{UsedOnly: !bibAll, SortBy: sortBy}
	entries, err := bibliography.Generate(eng, style, opts)
	if err != nil {
		exitWithError(exitCodeFor(err), "generating bibliography: %v", err)
	}

	if humanOutput {
		for _, e := range entries {
			fmt.Println(e.FullText)
		}
	} else {
		outputJSON(BibResponse{
			Style:   string(style),
			SortBy:  string(sortBy),
			Entries: entries,
			Count:   len(entries),
		})
	}

	return nil
}
