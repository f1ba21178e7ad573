package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ucvm/facnet/internal/config"
)

func init() {
	rootCmd.AddCommand(rebuildCmd)
}

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the query cache from the source CSVs",
	Long: `Rebuild the SQLite query cache from the configured CSV tables.

Use this after refreshing the source data (facnet fetch) or if the
cache becomes corrupted.`,
	RunE: runRebuild,
}

// RebuildResult is the response for the rebuild command.
type RebuildResult struct {
	Status   string `json:"status"`
	Roster   int    `json:"roster"`
	Works    int    `json:"works"`
	Strategy string `json:"graph_strategy"`
}

func runRebuild(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	tables := mustLoadTables(repoRoot, cfg)

	if err := os.MkdirAll(config.CachePath(repoRoot), 0755); err != nil {
		exitWithError(ExitError, "creating cache directory: %v", err)
	}

	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	nRoster, nWorks, err := db.Rebuild(tables)
	if err != nil {
		exitWithError(ExitDataError, "rebuilding cache: %v", err)
	}

	if humanOutput {
		fmt.Printf("Rebuilt cache with %d roster entries and %d works (%s graph strategy)\n",
			nRoster, nWorks, tables.Strategy)
	} else {
		outputJSON(RebuildResult{
			Status:   "rebuilt",
			Roster:   nRoster,
			Works:    nWorks,
			Strategy: tables.Strategy.String(),
		})
	}

	return nil
}
