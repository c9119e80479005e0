package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/citeline/internal/citation"
	"github.com/matsen/citeline/internal/config"
	"github.com/matsen/citeline/internal/storage"
)

func init() {
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search citation titles",
	Long: `Search citation titles using the SQLite mirror.

Run 'citeline rebuild' first if the mirror is missing or stale.

Example:
  citeline search attention`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

// SearchResponse is the JSON response for the search command.
type SearchResponse struct {
	Query   string              `json:"query"`
	Results []citation.Citation `json:"results"`
	Count   int                 `json:"count"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	repoRoot := findRepo()

	db, err := storage.OpenDB(storage.DBPath(config.DataPath(repoRoot)))
	if err != nil {
		exitWithError(ExitError, "opening database: %v", err)
	}
	defer db.Close()

	query := args[0]
	results, err := db.SearchTitle(query)
	if err != nil {
		exitWithError(ExitError, "searching titles: %v", err)
	}

	if humanOutput {
		for _, c := range results {
			fmt.Printf("%-20s %s\n", c.Key, truncateString(c.Title, ListTitleMaxLen))
		}
		fmt.Printf("\n%d results\n", len(results))
	} else {
		outputJSON(SearchResponse{Query: query, Results: results, Count: len(results)})
	}

	return nil
}
