package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ucvm/facnet/internal/pipeline"
)

var computeFilters filterFlags

func init() {
	computeFilters.register(computeCmd)
	rootCmd.AddCommand(computeCmd)
}

var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Run the filter pipeline and print the full result",
	Long: `Run the filter pipeline over the source tables and print the
contributing roster, selected publications, and co-authorship graph.

Examples:
  facnet compute --level Professor --year-from 2022
  facnet compute --group "One Health" --topic "antimicrobial resistance"
  facnet compute --focus A5017898742`,
	RunE: runCompute,
}

func runCompute(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	tables := mustLoadTables(repoRoot, cfg)

	out := pipeline.Compute(tables, computeFilters.state(cfg))

	if humanOutput {
		printComputeHuman(out)
	} else {
		outputJSON(out)
	}

	return nil
}

func printComputeHuman(out pipeline.Output) {
	fmt.Printf("%d contributing members, %d publications, %d co-authorship edges\n\n",
		len(out.ContributingRoster), len(out.SelectedPublications), len(out.Graph.Edges))

	for _, e := range out.ContributingRoster {
		fmt.Printf("  %-14s %s\n", e.OpenAlexID, e.Name)
	}
	if len(out.SelectedPublications) > 0 {
		fmt.Println()
	}
	for _, p := range out.SelectedPublications {
		fmt.Printf("  %d  %s\n", p.Year, truncateString(p.Title, 70))
	}
}
