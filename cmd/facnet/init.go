package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ucvm/facnet/internal/config"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new facnet repository",
	Long: `Initialize a new facnet repository in the current directory.

Creates:
  .facnet/
  ├── config.yaml     # Default config (data paths, year window)
  └── cache/          # Empty directory (gitignored)`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	root, exitCode := getStartingDirectory()
	if exitCode != 0 {
		os.Exit(exitCode)
	}

	if config.IsRepository(root) {
		exitWithError(ExitError, "directory already contains a facnet repository")
	}

	if err := os.MkdirAll(config.FacnetPath(root), 0755); err != nil {
		exitWithError(ExitError, "creating .facnet directory: %v", err)
	}
	if err := os.MkdirAll(config.CachePath(root), 0755); err != nil {
		exitWithError(ExitError, "creating cache directory: %v", err)
	}

	if err := config.Default().Save(root); err != nil {
		exitWithError(ExitError, "creating config.yaml: %v", err)
	}

	if humanOutput {
		fmt.Printf("Initialized facnet repository in %s\n", root)
	} else {
		outputJSON(StatusResponse{
			Status: "initialized",
			Path:   root,
		})
	}

	return nil
}
