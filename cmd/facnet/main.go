// Package main provides the facnet CLI entry point.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ucvm/facnet/internal/config"
	"github.com/ucvm/facnet/internal/dataset"
	"github.com/ucvm/facnet/internal/normalize"
	"github.com/ucvm/facnet/internal/storage"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "facnet",
	Short: "Faculty research analytics and co-authorship networks",
	Long: `facnet computes filtered publication analytics and co-authorship
networks for a faculty roster, from OpenAlex-derived CSV tables.

Source tables live as CSVs in the repository; an ephemeral SQLite
cache backs the list and stats commands. All commands output JSON by
default for easy integration with agents and other tools.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}

// getStartingDirectory returns where repository discovery begins, or exits.
func getStartingDirectory() (string, int) {
	if root := os.Getenv("FACNET_ROOT"); root != "" {
		return root, 0
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", outputError(ExitError, "getting current directory: %v", err)
	}
	return cwd, 0
}

// mustFindRepository locates the repository root, exits on error.
func mustFindRepository() string {
	start, exitCode := getStartingDirectory()
	if exitCode != 0 {
		os.Exit(exitCode)
	}

	repoRoot, err := config.FindRepository(start)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	return repoRoot
}

// mustLoadConfig loads configuration, exits on error.
func mustLoadConfig(repoRoot string) *config.Config {
	cfg, err := config.Load(repoRoot)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// mustOpenDatabase opens the SQLite cache, exits on error.
// The caller is responsible for calling Close() on the returned DB.
func mustOpenDatabase(repoRoot string) *storage.DB {
	db, err := storage.OpenDB(config.DBPath(repoRoot))
	if err != nil {
		exitWithError(ExitError, "opening database: %v", err)
	}
	return db
}

// mustLoadTables loads the source CSVs per the repository config, exits on error.
func mustLoadTables(repoRoot string, cfg *config.Config) *dataset.Tables {
	w := normalize.Window{Start: cfg.YearStart, End: cfg.YearEnd}
	tables, err := dataset.Load(
		config.ResolvePath(repoRoot, cfg.RosterCSV),
		config.ResolvePath(repoRoot, cfg.WorksCSV),
		config.ResolvePath(repoRoot, cfg.AuthorshipCSV),
		w,
	)
	if err != nil {
		exitWithError(ExitDataError, "loading source tables: %v", err)
	}
	return tables
}
