package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ucvm/facnet/internal/publication"
	"github.com/ucvm/facnet/internal/roster"
	"github.com/ucvm/facnet/internal/storage"
)

var (
	listLimit    int
	listLevel    string
	listType     string
	listAuthor   string
	listYearFrom int
	listYearTo   int
)

func init() {
	listCmd.PersistentFlags().IntVar(&listLimit, "limit", 0, "Maximum results to return (0 = all)")

	listRosterCmd.Flags().StringVar(&listLevel, "level", "", "Restrict to one faculty level")

	listWorksCmd.Flags().StringVar(&listType, "type", "", "Restrict to one work type")
	listWorksCmd.Flags().StringVar(&listAuthor, "author", "", "Restrict to works by one author ID")
	listWorksCmd.Flags().IntVar(&listYearFrom, "year-from", 0, "Earliest publication year")
	listWorksCmd.Flags().IntVar(&listYearTo, "year-to", 0, "Latest publication year")

	listCmd.AddCommand(listRosterCmd)
	listCmd.AddCommand(listWorksCmd)
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached roster entries or works",
	Long: `List rows from the SQLite cache. Run facnet rebuild first.

Examples:
  facnet list roster --level Professor
  facnet list works --year-from 2023 --type article --limit 20`,
}

var listRosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "List cached roster entries",
	RunE:  runListRoster,
}

var listWorksCmd = &cobra.Command{
	Use:   "works",
	Short: "List cached works, newest first",
	RunE:  runListWorks,
}

func runListRoster(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	entries, err := db.ListRoster(listLevel, listLimit)
	if err != nil {
		exitWithError(ExitError, "listing roster: %v", err)
	}

	if humanOutput {
		if len(entries) == 0 {
			fmt.Println("No roster entries in cache")
			return nil
		}
		for _, e := range entries {
			fmt.Printf("  %-14s %-30s %-22s h=%d\n",
				e.OpenAlexID, truncateString(e.Name, 30), e.Level, e.HIndex)
		}
	} else {
		if entries == nil {
			entries = []roster.Entry{}
		}
		outputJSON(entries)
	}

	return nil
}

func runListWorks(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	pubs, err := db.ListWorks(storage.WorkFilters{
		YearFrom: listYearFrom,
		YearTo:   listYearTo,
		Type:     listType,
		AuthorID: listAuthor,
	}, listLimit)
	if err != nil {
		exitWithError(ExitError, "listing works: %v", err)
	}

	if humanOutput {
		if len(pubs) == 0 {
			fmt.Println("No works match")
			return nil
		}
		for _, p := range pubs {
			fmt.Printf("  %-14s %d  %s\n", p.WorkID, p.Year, truncateString(p.Title, 60))
		}
	} else {
		if pubs == nil {
			pubs = []publication.Publication{}
		}
		outputJSON(pubs)
	}

	return nil
}
