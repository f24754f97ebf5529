package db

import (
	"database/sql"
	"fmt"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.DB) error
}

// migrations is the list of all migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "add_left_at_to_live_memberships",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "add_one_active_arrangement_index",
		Up:      migrationV2,
	},
}

// RunMigrations executes all pending migrations
func RunMigrations() error {
	db, err := GetDB()
	if err != nil {
		return fmt.Errorf("failed to get database: %w", err)
	}

	// Create schema_version table if it doesn't exist
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	// Get current schema version
	var currentVersion int
	err = db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	// Run pending migrations
	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		fmt.Printf("Running migration %d: %s\n", migration.Version, migration.Name)

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(db); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, err)
		}

		_, err = tx.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}

		fmt.Printf("✓ Migration %d completed\n", migration.Version)
	}

	return nil
}

// migrationV1 adds the left_at soft-delete marker to live memberships so
// roll-offs preserve historical membership stats instead of deleting rows.
func migrationV1(db *sql.DB) error {
	var count int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM pragma_table_info('live_memberships') WHERE name = 'left_at'
	`).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to inspect live_memberships: %w", err)
	}
	if count > 0 {
		return nil
	}

	_, err = db.Exec(`ALTER TABLE live_memberships ADD COLUMN left_at DATETIME`)
	if err != nil {
		return fmt.Errorf("failed to add left_at column: %w", err)
	}

	return nil
}

// migrationV2 backfills the partial unique index that enforces at most one
// active arrangement per project. Existing databases with duplicate active
// rows keep only the most recently updated one.
func migrationV2(db *sql.DB) error {
	_, err := db.Exec(`
		UPDATE arrangements SET is_active = 0
		WHERE is_active = 1
		  AND id NOT IN (
			SELECT id FROM arrangements a
			WHERE a.is_active = 1
			GROUP BY a.project_id
			HAVING MAX(a.updated_at)
		  )
	`)
	if err != nil {
		return fmt.Errorf("failed to clear duplicate active arrangements: %w", err)
	}

	_, err = db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_arrangements_one_active
		ON arrangements(project_id) WHERE is_active = 1
	`)
	if err != nil {
		return fmt.Errorf("failed to create one-active index: %w", err)
	}

	return nil
}
