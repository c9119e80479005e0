package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matsen/citeline/internal/config"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set configuration values",
	Long: `Get or set configuration values.

Usage:
  citeline config                 # Show all config
  citeline config style           # Get specific value
  citeline config style ieee      # Set default style
  citeline config sort year       # Set default sort key
  citeline config top-n 20        # Set most-cited ranking size

Keys:
  style   Default bibliography style (apa, ieee, nature, mla)
  sort    Default sort key (author, year, title)
  top-n   Entries in the most-cited ranking`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

// ConfigResponse is the response for config get commands.
type ConfigResponse struct {
	DefaultStyle  string `json:"default_style"`
	DefaultSortBy string `json:"default_sort_by"`
	TopN          int    `json:"top_n"`
}

// UpdateResponse is the response for config set commands.
type UpdateResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	repoRoot := findRepo()

	cfg, err := config.Load(repoRoot)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	// No args: show all config
	if len(args) == 0 {
		eff := config.Effective(cfg)
		if humanOutput {
			fmt.Printf("style:  %s\n", eff.DefaultStyle)
			fmt.Printf("sort:   %s\n", eff.DefaultSortBy)
			fmt.Printf("top-n:  %d\n", eff.TopN)
		} else {
			outputJSON(ConfigResponse{
				DefaultStyle:  eff.DefaultStyle,
				DefaultSortBy: eff.DefaultSortBy,
				TopN:          eff.TopN,
			})
		}
		return nil
	}

	key := args[0]

	// One arg: get value
	if len(args) == 1 {
		eff := config.Effective(cfg)
		var value string
		switch key {
		case "style":
			value = eff.DefaultStyle
		case "sort":
			value = eff.DefaultSortBy
		case "top-n":
			value = strconv.Itoa(eff.TopN)
		default:
			exitWithError(ExitError, "unknown config key: %s (valid: style, sort, top-n)", key)
		}

		if humanOutput {
			fmt.Println(value)
		} else {
			outputJSON(map[string]string{key: value})
		}
		return nil
	}

	// Two args: set value
	value := args[1]
	switch key {
	case "style":
		cfg.DefaultStyle = value
	case "sort":
		cfg.DefaultSortBy = value
	case "top-n":
		n, err := strconv.Atoi(value)
		if err != nil {
			exitWithError(ExitDataError, "top-n must be an integer: %s", value)
		}
		cfg.TopN = n
	default:
		exitWithError(ExitError, "unknown config key: %s (valid: style, sort, top-n)", key)
	}

	if err := cfg.Validate(); err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	if err := cfg.Save(repoRoot); err != nil {
		exitWithError(ExitError, "saving config: %v", err)
	}

	if humanOutput {
		fmt.Printf("Set %s to %s\n", key, value)
	} else {
		outputJSON(UpdateResponse{Status: "updated", Key: key, Value: value})
	}

	return nil
}
