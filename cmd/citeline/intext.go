package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/citeline/internal/bibliography"
	"github.com/matsen/citeline/internal/citation"
)

var intextStyle string

func init() {
	intextCmd.Flags().StringVar(&intextStyle, "style", "", "Citation style: apa, ieee, nature, mla (default from config)")
	rootCmd.AddCommand(intextCmd)
}

var intextCmd = &cobra.Command{
	Use:   "intext <key>",
	Short: "Produce the in-text citation marker for a citation",
	Long: `Produce the in-text citation marker for a citation.

Numbered styles require the citation to have been used at least once,
since the marker embeds the frozen ordinal.

Example:
  citeline intext vaswani2017 --style apa`,
	Args: cobra.ExactArgs(1),
	RunE: runInText,
}

// InTextResponse is the JSON response for the intext command.
type InTextResponse struct {
	Key    string `json:"key"`
	Style  string `json:"style"`
	Marker string `json:"marker"`
}

func runInText(cmd *cobra.Command, args []string) error {
	repoRoot := findRepo()
	cfg := repoConfig(repoRoot)
	eng := loadEngine(repoRoot)

	styleName := intextStyle
	if styleName == "" {
		styleName = cfg.DefaultStyle
	}
	style, err := citation.ParseStyle(styleName)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	key := args[0]
	marker, err := bibliography.InText(eng, key, style)
	if err != nil {
		exitWithError(exitCodeFor(err), "formatting in-text citation: %v", err)
	}

	if humanOutput {
		fmt.Println(marker)
	} else {
		outputJSON(InTextResponse{Key: key, Style: string(style), Marker: marker})
	}

	return nil
}
