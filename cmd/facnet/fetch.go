package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ucvm/facnet/internal/config"
	"github.com/ucvm/facnet/internal/dataset"
	"github.com/ucvm/facnet/internal/normalize"
	"github.com/ucvm/facnet/internal/openalex"
	"github.com/ucvm/facnet/internal/roster"
)

var (
	fetchWorks   bool
	fetchMetrics bool
	fetchMailto  string
)

func init() {
	// Load .env file if present (for OPENALEX_MAILTO)
	_ = godotenv.Load()

	fetchCmd.Flags().BoolVar(&fetchWorks, "works", false, "Refresh the publication and authorship tables")
	fetchCmd.Flags().BoolVar(&fetchMetrics, "metrics", false, "Refresh roster citation metrics")
	fetchCmd.Flags().StringVar(&fetchMailto, "mailto", "", "Contact address for the OpenAlex polite pool (default: OPENALEX_MAILTO)")
	rootCmd.AddCommand(fetchCmd)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Refresh source tables from the OpenAlex API",
	Long: `Fetch publications and author metrics from OpenAlex for every
roster member and rewrite the configured source CSVs.

Requires at least one of --works or --metrics. Set OPENALEX_MAILTO (or
--mailto) to be routed into the OpenAlex polite pool.

Examples:
  facnet fetch --works
  facnet fetch --metrics --mailto lab@ucvm.ca`,
	RunE: runFetch,
}

// FetchResult is the response for the fetch command.
type FetchResult struct {
	Status  string `json:"status"`
	Authors int    `json:"authors"`
	Works   int    `json:"works,omitempty"`
	Metrics int    `json:"metrics,omitempty"`
}

func runFetch(cmd *cobra.Command, args []string) error {
	if !fetchWorks && !fetchMetrics {
		exitWithError(ExitError, "nothing to fetch: pass --works and/or --metrics")
	}

	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)

	entries, err := dataset.LoadRoster(config.ResolvePath(repoRoot, cfg.RosterCSV))
	if err != nil {
		exitWithError(ExitDataError, "loading roster: %v", err)
	}
	if len(entries) == 0 {
		exitWithError(ExitDataError, "roster is empty, nothing to fetch")
	}

	var opts []openalex.ClientOption
	if fetchMailto != "" {
		opts = append(opts, openalex.WithMailto(fetchMailto))
	}
	client := openalex.NewClient(opts...)
	ctx := context.Background()

	result := FetchResult{Status: "fetched", Authors: len(entries)}

	if fetchWorks {
		n, err := refreshWorks(ctx, client, repoRoot, cfg, entries)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		result.Works = n
	}

	if fetchMetrics {
		n, err := refreshMetrics(ctx, client, repoRoot, cfg, entries)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		result.Metrics = n
	}

	if humanOutput {
		fmt.Printf("Fetched for %d roster members", result.Authors)
		if fetchWorks {
			fmt.Printf(": %d unique works", result.Works)
		}
		if fetchMetrics {
			fmt.Printf(", %d metric updates", result.Metrics)
		}
		fmt.Println()
	} else {
		outputJSON(result)
	}

	return nil
}

// refreshWorks fetches every member's works within the configured
// window and rewrites the publication and authorship tables.
func refreshWorks(ctx context.Context, client *openalex.Client, repoRoot string, cfg *config.Config, entries []roster.Entry) (int, error) {
	w := normalize.Window{Start: cfg.YearStart, End: cfg.YearEnd}

	var all []openalex.Work
	for i, e := range entries {
		if e.OpenAlexID == "" {
			continue
		}
		fmt.Fprintf(os.Stderr, "[%d/%d] fetching works for %s (%s)\n", i+1, len(entries), e.Name, e.OpenAlexID)
		works, err := client.FetchWorks(ctx, e.OpenAlexID, w)
		if err != nil {
			return 0, fmt.Errorf("fetching works for %s: %w", e.OpenAlexID, err)
		}
		all = append(all, works...)
	}
	deduped := openalex.Dedup(all)

	worksPath := config.ResolvePath(repoRoot, cfg.WorksCSV)
	if err := writeCSVFile(worksPath, func(f *os.File) error {
		return openalex.WriteWorksCSV(f, deduped)
	}); err != nil {
		return 0, err
	}

	if cfg.AuthorshipCSV != "" {
		authPath := config.ResolvePath(repoRoot, cfg.AuthorshipCSV)
		if err := writeCSVFile(authPath, func(f *os.File) error {
			return openalex.WriteAuthorshipsCSV(f, deduped)
		}); err != nil {
			return 0, err
		}
	}

	return len(deduped), nil
}

// refreshMetrics fetches per-author citation metrics and folds them
// back into the roster entries, then rewrites the roster table.
func refreshMetrics(ctx context.Context, client *openalex.Client, repoRoot string, cfg *config.Config, entries []roster.Entry) (int, error) {
	updated := 0
	for i := range entries {
		e := &entries[i]
		if e.OpenAlexID == "" {
			continue
		}
		fmt.Fprintf(os.Stderr, "[%d/%d] fetching metrics for %s (%s)\n", i+1, len(entries), e.Name, e.OpenAlexID)
		m, err := client.FetchAuthorMetrics(ctx, e.OpenAlexID)
		if err != nil {
			if openalex.IsNotFound(err) {
				fmt.Fprintf(os.Stderr, "  skipping %s: %v\n", e.OpenAlexID, err)
				continue
			}
			return 0, fmt.Errorf("fetching metrics for %s: %w", e.OpenAlexID, err)
		}
		e.HIndex = m.HIndex
		e.I10Index = m.I10Index
		e.WorksCount = m.WorksCount
		e.TotalCitations = m.TotalCitations
		updated++
	}

	rosterPath := config.ResolvePath(repoRoot, cfg.RosterCSV)
	if err := writeCSVFile(rosterPath, func(f *os.File) error {
		return writeRosterSource(f, entries)
	}); err != nil {
		return 0, err
	}
	return updated, nil
}

// writeRosterSource writes roster entries back in the source-table
// column layout the loader reads.
func writeRosterSource(f *os.File, entries []roster.Entry) error {
	cw := csv.NewWriter(f)

	header := []string{
		"Name", "OpenAlexID", "Level", "Category", "Appointment",
		"RG1", "RG2", "RG3", "RG4",
		"H_index", "I10_index", "Works_count", "Total_citations",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, e := range entries {
		groups := make([]string, roster.MaxGroups)
		copy(groups, e.Groups)
		row := []string{
			e.Name, e.OpenAlexID, e.Level, e.Category, e.Appointment,
			groups[0], groups[1], groups[2], groups[3],
			strconv.Itoa(e.HIndex), strconv.Itoa(e.I10Index),
			strconv.Itoa(e.WorksCount), strconv.Itoa(e.TotalCitations),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing entry %s: %w", e.OpenAlexID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// writeCSVFile writes through a temp file and renames into place so a
// failed fetch never truncates an existing table.
func writeCSVFile(path string, write func(*os.File) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".fetch-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
