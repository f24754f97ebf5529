// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for
// tests. All test setup uses db.GetSchemaSQL() so tests run against the
// authoritative schema, preventing drift between test and production.
//
// DO NOT hardcode CREATE TABLE statements in test files. Use setupTestDB()
// and the seed* helpers instead.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/crewdeck/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
// This is the single shared test database setup function for all repository
// tests.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if _, err := testDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedProject inserts a test project and returns its ID.
func seedProject(t *testing.T, db *sql.DB, id, name string) string {
	t.Helper()
	if id == "" {
		id = "PROJ-001"
	}
	if name == "" {
		name = "Test Project"
	}
	_, err := db.Exec("INSERT INTO projects (id, name) VALUES (?, ?)", id, name)
	if err != nil {
		t.Fatalf("failed to seed project: %v", err)
	}
	return id
}

// seedRosterMember inserts a test roster member and returns its ID.
func seedRosterMember(t *testing.T, db *sql.DB, id, projectID, personID string) string {
	t.Helper()
	if id == "" {
		id = "RM-001"
	}
	if projectID == "" {
		projectID = "PROJ-001"
	}
	if personID == "" {
		personID = "person-1"
	}
	_, err := db.Exec(
		"INSERT INTO roster_members (id, project_id, person_id, role, title) VALUES (?, ?, ?, 'engineer', 'Engineer')",
		id, projectID, personID,
	)
	if err != nil {
		t.Fatalf("failed to seed roster member: %v", err)
	}
	return id
}

// seedLiveTeam inserts a test live team and returns its ID.
func seedLiveTeam(t *testing.T, db *sql.DB, id, projectID, name string) string {
	t.Helper()
	if id == "" {
		id = "LT-001"
	}
	if projectID == "" {
		projectID = "PROJ-001"
	}
	if name == "" {
		name = "Test Team"
	}
	_, err := db.Exec("INSERT INTO live_teams (id, project_id, name) VALUES (?, ?, ?)", id, projectID, name)
	if err != nil {
		t.Fatalf("failed to seed live team: %v", err)
	}
	return id
}

// seedLiveMembership inserts a test live membership and returns its ID.
func seedLiveMembership(t *testing.T, db *sql.DB, id, teamID, memberID string) string {
	t.Helper()
	if id == "" {
		id = "LM-001"
	}
	_, err := db.Exec(
		"INSERT INTO live_memberships (id, team_id, roster_member_id) VALUES (?, ?, ?)",
		id, teamID, memberID,
	)
	if err != nil {
		t.Fatalf("failed to seed live membership: %v", err)
	}
	return id
}

// seedArrangement inserts a test arrangement and returns its ID.
func seedArrangement(t *testing.T, db *sql.DB, id, projectID, name string, active bool) string {
	t.Helper()
	if id == "" {
		id = "ARR-001"
	}
	if projectID == "" {
		projectID = "PROJ-001"
	}
	if name == "" {
		name = "Test Arrangement"
	}
	isActive := 0
	if active {
		isActive = 1
	}
	_, err := db.Exec(
		"INSERT INTO arrangements (id, project_id, name, is_active) VALUES (?, ?, ?, ?)",
		id, projectID, name, isActive,
	)
	if err != nil {
		t.Fatalf("failed to seed arrangement: %v", err)
	}
	return id
}

// seedTeam inserts a test arrangement team and returns its ID.
func seedTeam(t *testing.T, db *sql.DB, id, arrangementID, name string, sortOrder int) string {
	t.Helper()
	if id == "" {
		id = "TEAM-001"
	}
	if arrangementID == "" {
		arrangementID = "ARR-001"
	}
	if name == "" {
		name = "Test Team"
	}
	_, err := db.Exec(
		"INSERT INTO arrangement_teams (id, arrangement_id, name, sort_order) VALUES (?, ?, ?, ?)",
		id, arrangementID, name, sortOrder,
	)
	if err != nil {
		t.Fatalf("failed to seed team: %v", err)
	}
	return id
}

// seedAssignment inserts a test assignment and returns its ID.
func seedAssignment(t *testing.T, db *sql.DB, id, teamID, memberID string) string {
	t.Helper()
	if id == "" {
		id = "ASGN-001"
	}
	_, err := db.Exec(
		"INSERT INTO arrangement_assignments (id, arrangement_team_id, roster_member_id) VALUES (?, ?, ?)",
		id, teamID, memberID,
	)
	if err != nil {
		t.Fatalf("failed to seed assignment: %v", err)
	}
	return id
}

// countRows counts rows matching a query. The query must be a SELECT COUNT(*).
func countRows(t *testing.T, db *sql.DB, query string, args ...any) int {
	t.Helper()
	var count int
	if err := db.QueryRow(query, args...).Scan(&count); err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	return count
}
