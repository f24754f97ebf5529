package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/crewdeck/internal/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := db.RunMigrations(); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		fmt.Println("✓ Database is up to date")
		return nil
	},
}

// MigrateCmd returns the migrate command
func MigrateCmd() *cobra.Command {
	return migrateCmd
}
