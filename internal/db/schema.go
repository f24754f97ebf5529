package db

// SchemaSQL is the complete schema for fresh crewdeck installs.
// This schema reflects the current state after all migrations.
//
// # Schema Drift Protection
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. All tests use
// this schema via GetSchemaSQL(): if repository code references a column that
// doesn't exist here, tests fail immediately with "no such column".
//
// When adding new columns or tables:
//  1. Add a migration in internal/db/migrations.go
//  2. Update SchemaSQL here
//
// Note: child rows (arrangement teams, assignments, live memberships) carry a
// foreign key to their owner and are removed by explicit bulk deletes in the
// repositories, not by ON DELETE CASCADE. Keep it that way - the cascade
// behavior must stay visible in code and portable across storage engines.
const SchemaSQL = `
-- Projects (host application tracks of work)
CREATE TABLE IF NOT EXISTS projects (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	status TEXT NOT NULL CHECK(status IN ('active', 'archived')) DEFAULT 'active',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Roster members (a person's participation in a project, independent of team)
CREATE TABLE IF NOT EXISTS roster_members (
	id TEXT PRIMARY KEY,
	project_id TEXT NOT NULL,
	person_id TEXT NOT NULL,
	role TEXT,
	title TEXT,
	department TEXT,
	left_at DATETIME,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (project_id) REFERENCES projects(id)
);

-- Live teams (canonical, unversioned structure every other feature reads)
CREATE TABLE IF NOT EXISTS live_teams (
	id TEXT PRIMARY KEY,
	project_id TEXT NOT NULL,
	name TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (project_id) REFERENCES projects(id)
);

-- Live memberships (soft-deleted on roll-off to preserve historical stats)
CREATE TABLE IF NOT EXISTS live_memberships (
	id TEXT PRIMARY KEY,
	team_id TEXT NOT NULL,
	roster_member_id TEXT NOT NULL,
	left_at DATETIME,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (team_id) REFERENCES live_teams(id),
	FOREIGN KEY (roster_member_id) REFERENCES roster_members(id)
);

-- Arrangements (versioned drafts; at most one active per project)
CREATE TABLE IF NOT EXISTS arrangements (
	id TEXT PRIMARY KEY,
	project_id TEXT NOT NULL,
	name TEXT NOT NULL,
	is_active INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (project_id) REFERENCES projects(id)
);

-- Backs the single-active invariant under concurrent activation
CREATE UNIQUE INDEX IF NOT EXISTS idx_arrangements_one_active
	ON arrangements(project_id) WHERE is_active = 1;

-- Arrangement teams (live_team_id is set only while the owning arrangement
-- is active and a corresponding live team exists)
CREATE TABLE IF NOT EXISTS arrangement_teams (
	id TEXT PRIMARY KEY,
	arrangement_id TEXT NOT NULL,
	name TEXT NOT NULL,
	sort_order INTEGER NOT NULL DEFAULT 0,
	live_team_id TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (arrangement_id) REFERENCES arrangements(id)
);

-- Arrangement assignments (one row per team/member pairing in one arrangement)
CREATE TABLE IF NOT EXISTS arrangement_assignments (
	id TEXT PRIMARY KEY,
	arrangement_team_id TEXT NOT NULL,
	roster_member_id TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (arrangement_team_id) REFERENCES arrangement_teams(id),
	FOREIGN KEY (roster_member_id) REFERENCES roster_members(id),
	UNIQUE(arrangement_team_id, roster_member_id)
);

CREATE INDEX IF NOT EXISTS idx_arrangement_teams_arrangement
	ON arrangement_teams(arrangement_id);
CREATE INDEX IF NOT EXISTS idx_arrangement_assignments_team
	ON arrangement_assignments(arrangement_team_id);
CREATE INDEX IF NOT EXISTS idx_arrangement_assignments_member
	ON arrangement_assignments(roster_member_id);
CREATE INDEX IF NOT EXISTS idx_live_teams_project
	ON live_teams(project_id);
CREATE INDEX IF NOT EXISTS idx_live_memberships_team
	ON live_memberships(team_id);
CREATE INDEX IF NOT EXISTS idx_roster_members_project
	ON roster_members(project_id);
`

// GetSchemaSQL returns the authoritative schema for tests and fresh installs.
func GetSchemaSQL() string {
	return SchemaSQL
}

// InitSchema applies the full schema to the shared connection.
// All statements are IF NOT EXISTS, so this is safe on existing databases.
func InitSchema() error {
	database, err := GetDB()
	if err != nil {
		return err
	}

	if _, err := database.Exec(SchemaSQL); err != nil {
		return err
	}

	return nil
}
