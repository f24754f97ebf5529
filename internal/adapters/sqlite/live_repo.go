package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/crewdeck/internal/ports/secondary"
)

// LiveRepository implements secondary.LiveRepository with SQLite.
type LiveRepository struct {
	db *sql.DB
}

// NewLiveRepository creates a new SQLite live structure repository.
func NewLiveRepository(db *sql.DB) *LiveRepository {
	return &LiveRepository{db: db}
}

// ListTeams retrieves the project's live teams in creation order.
func (r *LiveRepository) ListTeams(ctx context.Context, projectID string) ([]*secondary.LiveTeamRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, project_id, name, created_at FROM live_teams WHERE project_id = ? ORDER BY created_at ASC, id ASC",
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list live teams: %w", err)
	}
	defer rows.Close()

	var teams []*secondary.LiveTeamRecord
	for rows.Next() {
		var createdAt time.Time
		record := &secondary.LiveTeamRecord{}
		if err := rows.Scan(&record.ID, &record.ProjectID, &record.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan live team: %w", err)
		}
		record.CreatedAt = createdAt.Format(time.RFC3339)
		teams = append(teams, record)
	}

	return teams, nil
}

// GetTeam retrieves a live team by its ID.
func (r *LiveRepository) GetTeam(ctx context.Context, id string) (*secondary.LiveTeamRecord, error) {
	var createdAt time.Time
	record := &secondary.LiveTeamRecord{}
	err := r.db.QueryRowContext(ctx,
		"SELECT id, project_id, name, created_at FROM live_teams WHERE id = ?",
		id,
	).Scan(&record.ID, &record.ProjectID, &record.Name, &createdAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("live team %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get live team: %w", err)
	}

	record.CreatedAt = createdAt.Format(time.RFC3339)
	return record, nil
}

// ListMemberships retrieves the team's current (non-departed) memberships.
func (r *LiveRepository) ListMemberships(ctx context.Context, teamID string) ([]*secondary.LiveMembershipRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, team_id, roster_member_id, left_at, created_at FROM live_memberships WHERE team_id = ? AND left_at IS NULL ORDER BY created_at ASC, id ASC",
		teamID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list live memberships: %w", err)
	}
	defer rows.Close()

	var memberships []*secondary.LiveMembershipRecord
	for rows.Next() {
		var (
			leftAt    sql.NullTime
			createdAt time.Time
		)
		record := &secondary.LiveMembershipRecord{}
		if err := rows.Scan(&record.ID, &record.TeamID, &record.RosterMemberID, &leftAt, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan live membership: %w", err)
		}
		if leftAt.Valid {
			record.LeftAt = leftAt.Time.Format(time.RFC3339)
		}
		record.CreatedAt = createdAt.Format(time.RFC3339)
		memberships = append(memberships, record)
	}

	return memberships, nil
}

// HasTeams reports whether the project has any live teams.
func (r *LiveRepository) HasTeams(ctx context.Context, projectID string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM live_teams WHERE project_id = ?", projectID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to count live teams: %w", err)
	}
	return count > 0, nil
}

// EndMemberships soft-deletes all of the member's current memberships within
// the project. Idempotent: a member with no current membership is a no-op.
func (r *LiveRepository) EndMemberships(ctx context.Context, projectID, rosterMemberID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE live_memberships SET left_at = CURRENT_TIMESTAMP
		 WHERE roster_member_id = ? AND left_at IS NULL
		   AND team_id IN (SELECT id FROM live_teams WHERE project_id = ?)`,
		rosterMemberID, projectID,
	)
	if err != nil {
		return fmt.Errorf("failed to end live memberships: %w", err)
	}
	return nil
}

// ReassignMembership moves a member to another live team in one transaction.
func (r *LiveRepository) ReassignMembership(ctx context.Context, projectID, rosterMemberID, toTeamID string) error {
	// Destination must be a live team of the same project
	var teamProject string
	err := r.db.QueryRowContext(ctx,
		"SELECT project_id FROM live_teams WHERE id = ?", toTeamID,
	).Scan(&teamProject)
	if err == sql.ErrNoRows {
		return fmt.Errorf("live team %s: %w", toTeamID, secondary.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to verify live team: %w", err)
	}
	if teamProject != projectID {
		return fmt.Errorf("live team %s belongs to project %s, not %s: %w", toTeamID, teamProject, projectID, secondary.ErrConflict)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin reassign transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`UPDATE live_memberships SET left_at = CURRENT_TIMESTAMP
		 WHERE roster_member_id = ? AND left_at IS NULL
		   AND team_id IN (SELECT id FROM live_teams WHERE project_id = ?)`,
		rosterMemberID, projectID,
	)
	if err != nil {
		return fmt.Errorf("failed to end current membership: %w", err)
	}

	id, err := nextID(ctx, tx, "live_memberships", "LM-")
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO live_memberships (id, team_id, roster_member_id) VALUES (?, ?, ?)",
		id, toTeamID, rosterMemberID,
	)
	if err != nil {
		return fmt.Errorf("failed to create live membership: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reassign transaction: %w", err)
	}

	return nil
}

// Ensure LiveRepository implements the interface
var _ secondary.LiveRepository = (*LiveRepository)(nil)
