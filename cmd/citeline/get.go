package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matsen/citeline/internal/citation"
)

var getUsages bool

func init() {
	getCmd.Flags().BoolVar(&getUsages, "usages", false, "Include usage records in the output")
	rootCmd.AddCommand(getCmd)
}

var getCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a single citation by key",
	Long: `Get a single citation by its key.

Example:
  citeline get vaswani2017`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

// GetResponse is the JSON response for the get command.
type GetResponse struct {
	Citation citation.Citation      `json:"citation"`
	Usages   []citation.UsageRecord `json:"usages,omitempty"`
}

func runGet(cmd *cobra.Command, args []string) error {
	repoRoot := findRepo()
	eng := loadEngine(repoRoot)

	key := args[0]
	c, err := eng.GetCitation(key)
	if err != nil {
		exitWithError(exitCodeFor(err), "getting citation: %v", err)
	}

	resp := GetResponse{Citation: c}
	if getUsages {
		usages, err := eng.GetUsage(key)
		if err != nil {
			exitWithError(ExitError, "getting usages: %v", err)
		}
		resp.Usages = usages
	}

	if humanOutput {
		printCitationDetail(c, resp.Usages)
	} else {
		outputJSON(resp)
	}

	return nil
}

func printCitationDetail(c citation.Citation, usages []citation.UsageRecord) {
	fmt.Println(c.Key)
	fmt.Println(strings.Repeat("═", 70))
	fmt.Println()

	fmt.Printf("Title:    %s\n", wrapText(c.Title, TextWrapWidth, "          "))
	if len(c.Authors) > 0 {
		var names []string
		for _, a := range c.Authors {
			if a.First != "" {
				names = append(names, a.First+" "+a.Last)
			} else {
				names = append(names, a.Last)
			}
		}
		fmt.Printf("Authors:  %s\n", wrapText(strings.Join(names, ", "), TextWrapWidth, "          "))
	}
	if c.Year > 0 {
		fmt.Printf("Year:     %d\n", c.Year)
	}
	if c.Journal != "" {
		fmt.Printf("Journal:  %s\n", c.Journal)
	}
	if c.Volume != "" {
		fmt.Printf("Volume:   %s\n", c.Volume)
	}
	if c.Pages != "" {
		fmt.Printf("Pages:    %s\n", c.Pages)
	}
	if c.DOI != "" {
		fmt.Printf("DOI:      %s\n", c.DOI)
	}
	if c.Ordinal > 0 {
		fmt.Printf("Ordinal:  %d\n", c.Ordinal)
	}
	if len(c.LinkedEntities) > 0 {
		fmt.Printf("Entities: %s\n", strings.Join(c.LinkedEntities, ", "))
	}

	if len(usages) > 0 {
		fmt.Println()
		fmt.Println("Usages:")
		for i, u := range usages {
			fmt.Printf("  [%d] %s (%.2f)", i+1, u.Section, u.Confidence)
			if u.ContextText != "" {
				fmt.Printf(" %s", truncateString(u.ContextText, ListTitleMaxLen))
			}
			fmt.Println()
		}
	}
}
