package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the cached tables",
	Long: `Print row counts and per-dimension breakdowns from the SQLite
cache. Run facnet rebuild first.`,
	RunE: runStats,
}

// StatsResult is the response for the stats command.
type StatsResult struct {
	Roster        int            `json:"roster"`
	Works         int            `json:"works"`
	Authorships   int            `json:"authorships"`
	WorksByType   map[string]int `json:"works_by_type"`
	WorksByYear   map[string]int `json:"works_by_year"`
	RosterByLevel map[string]int `json:"roster_by_level"`
}

func runStats(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	result := StatsResult{}
	var err error

	if result.Roster, err = db.CountRoster(); err != nil {
		exitWithError(ExitError, "counting roster: %v", err)
	}
	if result.Works, err = db.CountWorks(); err != nil {
		exitWithError(ExitError, "counting works: %v", err)
	}
	if result.Authorships, err = db.CountAuthorships(); err != nil {
		exitWithError(ExitError, "counting authorships: %v", err)
	}
	if result.WorksByType, err = db.CountBy("type"); err != nil {
		exitWithError(ExitError, "grouping works by type: %v", err)
	}
	if result.WorksByYear, err = db.CountBy("pub_year"); err != nil {
		exitWithError(ExitError, "grouping works by year: %v", err)
	}
	if result.RosterByLevel, err = db.CountRosterByLevel(); err != nil {
		exitWithError(ExitError, "grouping roster by level: %v", err)
	}

	if humanOutput {
		fmt.Printf("%d roster entries, %d works, %d authorship rows\n",
			result.Roster, result.Works, result.Authorships)
		printBreakdown("Works by year", result.WorksByYear)
		printBreakdown("Works by type", result.WorksByType)
		printBreakdown("Roster by level", result.RosterByLevel)
	} else {
		outputJSON(result)
	}

	return nil
}

func printBreakdown(title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Printf("\n%s:\n", title)
	for _, k := range keys {
		label := k
		if label == "" {
			label = "(unknown)"
		}
		fmt.Printf("  %-24s %d\n", label, counts[k])
	}
}
