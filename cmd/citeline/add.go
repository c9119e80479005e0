package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matsen/citeline/internal/engine"
)

var (
	addAuthors  string
	addYear     int
	addJournal  string
	addVolume   string
	addPages    string
	addDOI      string
	addEntities string
)

func init() {
	addCmd.Flags().StringVar(&addAuthors, "authors", "", "Author names, semicolon-separated (required)")
	addCmd.Flags().IntVar(&addYear, "year", 0, "Publication year (0 if unknown)")
	addCmd.Flags().StringVar(&addJournal, "journal", "", "Journal or venue name")
	addCmd.Flags().StringVar(&addVolume, "volume", "", "Volume identifier")
	addCmd.Flags().StringVar(&addPages, "pages", "", "Page range")
	addCmd.Flags().StringVar(&addDOI, "doi", "", "Digital object identifier")
	addCmd.Flags().StringVar(&addEntities, "entities", "", "Linked entity IDs, comma-separated")
	addCmd.MarkFlagRequired("authors")
	rootCmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a citation, deduplicating by title and year",
	Long: `Add a citation to the repository.

If a citation with the same normalized title and year already exists the
two are merged and the existing key is returned.

Example:
  citeline add "Attention Is All You Need" --authors "Vaswani, Ashish; Shazeer, Noam" --year 2017`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

// AddResponse is the JSON response for the add command.
type AddResponse struct {
	Key    string `json:"key"`
	Merged bool   `json:"merged"`
}

func runAdd(cmd *cobra.Command, args []string) error {
	repoRoot := findRepo()
	eng := loadEngine(repoRoot)

	in := engine.AddInput{
		Title:   args[0],
		Authors: splitList(addAuthors, ";"),
		Year:    addYear,
		Journal: addJournal,
		Volume:  addVolume,
		Pages:   addPages,
		DOI:     addDOI,
	}
	if addEntities != "" {
		in.LinkedEntities = splitList(addEntities, ",")
	}

	before := len(eng.ListCitations(false))
	key, err := eng.AddCitation(in)
	if err != nil {
		exitWithError(exitCodeFor(err), "adding citation: %v", err)
	}
	merged := len(eng.ListCitations(false)) == before

	saveEngine(repoRoot, eng)

	if humanOutput {
		if merged {
			fmt.Printf("Merged into existing citation %s\n", key)
		} else {
			fmt.Printf("Added citation %s\n", key)
		}
	} else {
		outputJSON(AddResponse{Key: key, Merged: merged})
	}

	return nil
}

// splitList splits a separator-delimited flag value, trimming whitespace
// and dropping empty items.
func splitList(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
