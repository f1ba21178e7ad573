package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ucvm/facnet/internal/export"
	"github.com/ucvm/facnet/internal/pipeline"
)

var (
	exportFilters    filterFlags
	exportPubsPath   string
	exportEdgesPath  string
	exportRosterPath string
)

func init() {
	exportFilters.register(exportCmd)
	exportCmd.Flags().StringVar(&exportPubsPath, "pubs", "", "Write selected publications CSV to this path")
	exportCmd.Flags().StringVar(&exportEdgesPath, "edges", "", "Write co-authorship edge CSV to this path")
	exportCmd.Flags().StringVar(&exportRosterPath, "roster", "", "Write contributing roster CSV to this path")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export filtered results to CSV files",
	Long: `Run the filter pipeline and export its results to CSV.

At least one of --pubs, --edges, or --roster is required; each writes
one file.

Examples:
  facnet export --group "One Health" --pubs onehealth_pubs.csv
  facnet export --year-from 2023 --edges edges.csv --roster roster.csv`,
	RunE: runExport,
}

// ExportResult is the response for the export command.
type ExportResult struct {
	Status string   `json:"status"`
	Files  []string `json:"files"`
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportPubsPath == "" && exportEdgesPath == "" && exportRosterPath == "" {
		exitWithError(ExitError, "nothing to export: pass --pubs, --edges, and/or --roster")
	}

	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	tables := mustLoadTables(repoRoot, cfg)

	out := pipeline.Compute(tables, exportFilters.state(cfg))

	var files []string
	if exportPubsPath != "" {
		if err := writeExport(exportPubsPath, func(f *os.File) error {
			return export.WritePublicationsCSV(f, out.SelectedPublications)
		}); err != nil {
			exitWithError(ExitError, "%v", err)
		}
		files = append(files, exportPubsPath)
	}
	if exportEdgesPath != "" {
		if err := writeExport(exportEdgesPath, func(f *os.File) error {
			return export.WriteEdgesCSV(f, out.Graph)
		}); err != nil {
			exitWithError(ExitError, "%v", err)
		}
		files = append(files, exportEdgesPath)
	}
	if exportRosterPath != "" {
		if err := writeExport(exportRosterPath, func(f *os.File) error {
			return export.WriteRosterCSV(f, out.ContributingRoster)
		}); err != nil {
			exitWithError(ExitError, "%v", err)
		}
		files = append(files, exportRosterPath)
	}

	if humanOutput {
		fmt.Printf("Exported %d publications, %d edges, %d members\n",
			len(out.SelectedPublications), len(out.Graph.Edges), len(out.ContributingRoster))
		for _, f := range files {
			fmt.Printf("  %s\n", f)
		}
	} else {
		outputJSON(ExportResult{Status: "exported", Files: files})
	}

	return nil
}

func writeExport(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
