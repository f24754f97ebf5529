package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/crewdeck/internal/ports/secondary"
)

// AssignmentRepository implements secondary.AssignmentRepository with SQLite.
type AssignmentRepository struct {
	db *sql.DB
}

// NewAssignmentRepository creates a new SQLite assignment repository.
func NewAssignmentRepository(db *sql.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// Create persists a new assignment.
func (r *AssignmentRepository) Create(ctx context.Context, assignment *secondary.AssignmentRecord) error {
	// Verify team exists
	var exists int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM arrangement_teams WHERE id = ?", assignment.ArrangementTeamID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to verify team: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("team %s: %w", assignment.ArrangementTeamID, secondary.ErrNotFound)
	}

	id, err := nextID(ctx, r.db, "arrangement_assignments", "ASGN-")
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		"INSERT INTO arrangement_assignments (id, arrangement_team_id, roster_member_id) VALUES (?, ?, ?)",
		id, assignment.ArrangementTeamID, assignment.RosterMemberID,
	)
	if err != nil {
		return fmt.Errorf("failed to create assignment: %w", err)
	}

	assignment.ID = id
	return nil
}

// FindByMember returns the member's assignment anywhere within the arrangement.
func (r *AssignmentRepository) FindByMember(ctx context.Context, arrangementID, rosterMemberID string) (*secondary.AssignmentRecord, error) {
	record, err := scanAssignment(r.db.QueryRowContext(ctx,
		`SELECT a.id, a.arrangement_team_id, a.roster_member_id, a.created_at
		 FROM arrangement_assignments a
		 JOIN arrangement_teams t ON t.id = a.arrangement_team_id
		 WHERE t.arrangement_id = ? AND a.roster_member_id = ?`,
		arrangementID, rosterMemberID,
	))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("assignment of %s in arrangement %s: %w", rosterMemberID, arrangementID, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find assignment: %w", err)
	}
	return record, nil
}

// ListByTeam retrieves all assignments for a team.
func (r *AssignmentRepository) ListByTeam(ctx context.Context, teamID string) ([]*secondary.AssignmentRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, arrangement_team_id, roster_member_id, created_at FROM arrangement_assignments WHERE arrangement_team_id = ? ORDER BY created_at ASC, id ASC",
		teamID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	defer rows.Close()

	var assignments []*secondary.AssignmentRecord
	for rows.Next() {
		record, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, record)
	}

	return assignments, nil
}

// Delete removes the matching assignment. Idempotent.
func (r *AssignmentRepository) Delete(ctx context.Context, teamID, rosterMemberID string) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM arrangement_assignments WHERE arrangement_team_id = ? AND roster_member_id = ?",
		teamID, rosterMemberID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}
	return nil
}

// Move atomically relocates a member between two teams. The delete half is
// idempotent: a stale source just means nothing to remove. The member never
// ends up in neither or both teams.
func (r *AssignmentRepository) Move(ctx context.Context, rosterMemberID, fromTeamID, toTeamID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin move transaction: %w", err)
	}
	defer tx.Rollback()

	// Destination must exist; a missing source assignment is tolerated
	var exists int
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM arrangement_teams WHERE id = ?", toTeamID,
	).Scan(&exists); err != nil {
		return fmt.Errorf("failed to verify destination team: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("team %s: %w", toTeamID, secondary.ErrNotFound)
	}

	_, err = tx.ExecContext(ctx,
		"DELETE FROM arrangement_assignments WHERE arrangement_team_id = ? AND roster_member_id = ?",
		fromTeamID, rosterMemberID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove source assignment: %w", err)
	}

	// Skip the insert when the member already sits in the destination
	var already int
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM arrangement_assignments WHERE arrangement_team_id = ? AND roster_member_id = ?",
		toTeamID, rosterMemberID,
	).Scan(&already); err != nil {
		return fmt.Errorf("failed to check destination assignment: %w", err)
	}

	if already == 0 {
		id, err := nextID(ctx, tx, "arrangement_assignments", "ASGN-")
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO arrangement_assignments (id, arrangement_team_id, roster_member_id) VALUES (?, ?, ?)",
			id, toTeamID, rosterMemberID,
		)
		if err != nil {
			return fmt.Errorf("failed to create destination assignment: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit move transaction: %w", err)
	}

	return nil
}

// DeleteByMemberInArrangement removes the member's assignment, if any, from
// the given arrangement. Idempotent.
func (r *AssignmentRepository) DeleteByMemberInArrangement(ctx context.Context, arrangementID, rosterMemberID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM arrangement_assignments
		 WHERE roster_member_id = ?
		   AND arrangement_team_id IN (SELECT id FROM arrangement_teams WHERE arrangement_id = ?)`,
		rosterMemberID, arrangementID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}
	return nil
}

func scanAssignment(s scanner) (*secondary.AssignmentRecord, error) {
	var createdAt time.Time

	record := &secondary.AssignmentRecord{}
	err := s.Scan(&record.ID, &record.ArrangementTeamID, &record.RosterMemberID, &createdAt)
	if err != nil {
		return nil, err
	}

	record.CreatedAt = createdAt.Format(time.RFC3339)
	return record, nil
}

// Ensure AssignmentRepository implements the interface
var _ secondary.AssignmentRepository = (*AssignmentRepository)(nil)
