package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/citeline/internal/citation"
)

var listUsedOnly bool

func init() {
	listCmd.Flags().BoolVar(&listUsedOnly, "used", false, "List only citations that have been used")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List citations in insertion order",
	RunE:  runList,
}

// ListResponse is the JSON response for the list command.
type ListResponse struct {
	Citations []citation.Citation `json:"citations"`
	Count     int                 `json:"count"`
}

func runList(cmd *cobra.Command, args []string) error {
	repoRoot := findRepo()
	eng := loadEngine(repoRoot)

	cites := eng.ListCitations(listUsedOnly)

	if humanOutput {
		for _, c := range cites {
			year := "n.d."
			if c.Year > 0 {
				year = fmt.Sprintf("%d", c.Year)
			}
			fmt.Printf("%-20s %s\n", c.Key, truncateString(c.Title, ListTitleMaxLen))
			fmt.Printf("%-20s %s (%s)\n", "", formatAuthorsShort(c.Authors, 3), year)
		}
		fmt.Printf("\n%d citations\n", len(cites))
	} else {
		outputJSON(ListResponse{Citations: cites, Count: len(cites)})
	}

	return nil
}
