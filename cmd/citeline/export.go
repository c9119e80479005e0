package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matsen/citeline/internal/citation"
	"github.com/matsen/citeline/internal/export"
)

var (
	exportFormat string
	exportKeys   string
)

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "bibtex", "Export format: bibtex, json, csv")
	exportCmd.Flags().StringVar(&exportKeys, "keys", "", "Export only specified keys (comma-separated, bibtex only)")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export citations to BibTeX, JSON, or CSV",
	Long: `Export citations to BibTeX, JSON, or CSV format.

Examples:
  citeline export --format bibtex > refs.bib
  citeline export --format bibtex --keys vaswani2017,devlin2019
  citeline export --format csv > citations.csv`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	repoRoot := findRepo()
	eng := loadEngine(repoRoot)

	switch exportFormat {
	case "bibtex":
		cites := eng.ListCitations(false)
		if exportKeys != "" {
			cites = filterByKeys(cites, splitList(exportKeys, ","))
		}
		fmt.Print(export.ToBibTeXList(cites))

	case "json":
		data, err := export.ToJSON(eng.Snapshot())
		if err != nil {
			exitWithError(ExitError, "encoding JSON export: %v", err)
		}
		os.Stdout.Write(data)

	case "csv":
		data, err := export.ToCSV(eng.Snapshot())
		if err != nil {
			exitWithError(ExitError, "encoding CSV export: %v", err)
		}
		os.Stdout.Write(data)

	default:
		exitWithError(ExitError, "unknown export format: %s (valid: bibtex, json, csv)", exportFormat)
	}

	return nil
}

func filterByKeys(cites []citation.Citation, keys []string) []citation.Citation {
	want := make(map[string]bool, len(keys))
	for _, k := range keys {
		want[strings.TrimSpace(k)] = true
	}

	var out []citation.Citation
	for _, c := range cites {
		if want[c.Key] {
			out = append(out, c)
		}
	}
	return out
}
