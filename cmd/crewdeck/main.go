package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/crewdeck/internal/cli"
	"github.com/example/crewdeck/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "crewdeck",
		Short:   "crewdeck - engineering organization management",
		Version: version.String(),
		Long: `crewdeck tracks projects, rosters and team structure.
Team arrangements are versioned drafts of who reports into which sub-team;
activating a draft replaces the live structure atomically.`,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.ProjectCmd())
	rootCmd.AddCommand(cli.RosterCmd())
	rootCmd.AddCommand(cli.ArrangementCmd())
	rootCmd.AddCommand(cli.TeamCmd())
	rootCmd.AddCommand(cli.MigrateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
