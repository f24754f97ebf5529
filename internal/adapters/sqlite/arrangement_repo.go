package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/example/crewdeck/internal/ports/secondary"
)

// ArrangementRepository implements secondary.ArrangementRepository with SQLite.
//
// Clone, ImportLive, Activate and EnsureActive are the subsystem's multi-table
// writes; each runs in a single transaction so a mid-way failure leaves both
// the draft tables and the live structure exactly as they were.
type ArrangementRepository struct {
	db *sql.DB
}

// NewArrangementRepository creates a new SQLite arrangement repository.
func NewArrangementRepository(db *sql.DB) *ArrangementRepository {
	return &ArrangementRepository{db: db}
}

// Create persists a new arrangement. Never active on creation.
func (r *ArrangementRepository) Create(ctx context.Context, arrangement *secondary.ArrangementRecord) error {
	// Verify project exists
	var exists int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM projects WHERE id = ?", arrangement.ProjectID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to verify project: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("project %s: %w", arrangement.ProjectID, secondary.ErrNotFound)
	}

	id, err := nextID(ctx, r.db, "arrangements", "ARR-")
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		"INSERT INTO arrangements (id, project_id, name, is_active) VALUES (?, ?, ?, 0)",
		id, arrangement.ProjectID, arrangement.Name,
	)
	if err != nil {
		return fmt.Errorf("failed to create arrangement: %w", err)
	}

	arrangement.ID = id
	arrangement.IsActive = false
	return nil
}

// GetByID retrieves an arrangement by its ID.
func (r *ArrangementRepository) GetByID(ctx context.Context, id string) (*secondary.ArrangementRecord, error) {
	record, err := scanArrangement(r.db.QueryRowContext(ctx,
		"SELECT id, project_id, name, is_active, created_at, updated_at FROM arrangements WHERE id = ?",
		id,
	))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("arrangement %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get arrangement: %w", err)
	}
	return record, nil
}

// ListByProject retrieves all arrangements for a project, active first.
func (r *ArrangementRepository) ListByProject(ctx context.Context, projectID string) ([]*secondary.ArrangementRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, project_id, name, is_active, created_at, updated_at FROM arrangements WHERE project_id = ? ORDER BY is_active DESC, created_at ASC, id ASC",
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list arrangements: %w", err)
	}
	defer rows.Close()

	var arrangements []*secondary.ArrangementRecord
	for rows.Next() {
		record, err := scanArrangement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan arrangement: %w", err)
		}
		arrangements = append(arrangements, record)
	}

	return arrangements, nil
}

// FindActive returns the active arrangement for a project.
func (r *ArrangementRepository) FindActive(ctx context.Context, projectID string) (*secondary.ArrangementRecord, error) {
	record, err := scanArrangement(r.db.QueryRowContext(ctx,
		"SELECT id, project_id, name, is_active, created_at, updated_at FROM arrangements WHERE project_id = ? AND is_active = 1",
		projectID,
	))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("project %s: %w", projectID, secondary.ErrNoActiveArrangement)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find active arrangement: %w", err)
	}
	return record, nil
}

// Delete removes an arrangement and cascades its teams and assignments.
// Explicit bulk deletes keyed on the owner FK, child tables first.
func (r *ArrangementRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin delete transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM arrangements WHERE id = ?", id,
	).Scan(&exists); err != nil {
		return fmt.Errorf("failed to verify arrangement: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("arrangement %s: %w", id, secondary.ErrNotFound)
	}

	_, err = tx.ExecContext(ctx,
		"DELETE FROM arrangement_assignments WHERE arrangement_team_id IN (SELECT id FROM arrangement_teams WHERE arrangement_id = ?)",
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete assignments: %w", err)
	}

	_, err = tx.ExecContext(ctx, "DELETE FROM arrangement_teams WHERE arrangement_id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete teams: %w", err)
	}

	_, err = tx.ExecContext(ctx, "DELETE FROM arrangements WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete arrangement: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete transaction: %w", err)
	}

	return nil
}

// Clone deep-copies teams and assignments from the source arrangement into a
// new one. New ids, same names and ordering; live team links are not copied.
func (r *ArrangementRepository) Clone(ctx context.Context, sourceID string, clone *secondary.ArrangementRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin clone transaction: %w", err)
	}
	defer tx.Rollback()

	var projectID string
	err = tx.QueryRowContext(ctx,
		"SELECT project_id FROM arrangements WHERE id = ?", sourceID,
	).Scan(&projectID)
	if err == sql.ErrNoRows {
		return fmt.Errorf("arrangement %s: %w", sourceID, secondary.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to get source arrangement: %w", err)
	}

	newID, err := nextID(ctx, tx, "arrangements", "ARR-")
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO arrangements (id, project_id, name, is_active) VALUES (?, ?, ?, 0)",
		newID, projectID, clone.Name,
	)
	if err != nil {
		return fmt.Errorf("failed to create clone: %w", err)
	}

	// Copy teams, collecting old->new id mapping
	type teamCopy struct {
		oldID     string
		name      string
		sortOrder int
	}
	rows, err := tx.QueryContext(ctx,
		"SELECT id, name, sort_order FROM arrangement_teams WHERE arrangement_id = ? ORDER BY sort_order ASC, id ASC",
		sourceID,
	)
	if err != nil {
		return fmt.Errorf("failed to read source teams: %w", err)
	}
	var teams []teamCopy
	for rows.Next() {
		var tc teamCopy
		if err := rows.Scan(&tc.oldID, &tc.name, &tc.sortOrder); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan source team: %w", err)
		}
		teams = append(teams, tc)
	}
	rows.Close()

	teamSeq, err := nextSeq(ctx, tx, "arrangement_teams", "TEAM-")
	if err != nil {
		return err
	}

	teamIDMap := make(map[string]string, len(teams))
	for _, tc := range teams {
		teamSeq++
		teamID := fmt.Sprintf("TEAM-%03d", teamSeq)
		_, err = tx.ExecContext(ctx,
			"INSERT INTO arrangement_teams (id, arrangement_id, name, sort_order) VALUES (?, ?, ?, ?)",
			teamID, newID, tc.name, tc.sortOrder,
		)
		if err != nil {
			return fmt.Errorf("failed to copy team %s: %w", tc.oldID, err)
		}
		teamIDMap[tc.oldID] = teamID
	}

	// Copy assignments remapped to the new team ids
	type assignmentCopy struct {
		oldTeamID string
		memberID  string
	}
	rows, err = tx.QueryContext(ctx,
		`SELECT a.arrangement_team_id, a.roster_member_id
		 FROM arrangement_assignments a
		 JOIN arrangement_teams t ON t.id = a.arrangement_team_id
		 WHERE t.arrangement_id = ?
		 ORDER BY a.created_at ASC, a.id ASC`,
		sourceID,
	)
	if err != nil {
		return fmt.Errorf("failed to read source assignments: %w", err)
	}
	var assignments []assignmentCopy
	for rows.Next() {
		var ac assignmentCopy
		if err := rows.Scan(&ac.oldTeamID, &ac.memberID); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan source assignment: %w", err)
		}
		assignments = append(assignments, ac)
	}
	rows.Close()

	asgnSeq, err := nextSeq(ctx, tx, "arrangement_assignments", "ASGN-")
	if err != nil {
		return err
	}
	for _, ac := range assignments {
		asgnSeq++
		_, err = tx.ExecContext(ctx,
			"INSERT INTO arrangement_assignments (id, arrangement_team_id, roster_member_id) VALUES (?, ?, ?)",
			fmt.Sprintf("ASGN-%03d", asgnSeq), teamIDMap[ac.oldTeamID], ac.memberID,
		)
		if err != nil {
			return fmt.Errorf("failed to copy assignment for %s: %w", ac.memberID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit clone transaction: %w", err)
	}

	clone.ID = newID
	clone.ProjectID = projectID
	clone.IsActive = false
	return nil
}

// ImportLive materializes the project's live structure into a new arrangement.
// Only current members appear: departed roster members and ended memberships
// are filtered out.
func (r *ArrangementRepository) ImportLive(ctx context.Context, projectID string, clone *secondary.ArrangementRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin import transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM projects WHERE id = ?", projectID,
	).Scan(&exists); err != nil {
		return fmt.Errorf("failed to verify project: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("project %s: %w", projectID, secondary.ErrNotFound)
	}

	newID, err := nextID(ctx, tx, "arrangements", "ARR-")
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO arrangements (id, project_id, name, is_active) VALUES (?, ?, ?, 0)",
		newID, projectID, clone.Name,
	)
	if err != nil {
		return fmt.Errorf("failed to create arrangement: %w", err)
	}

	if err := importLiveTx(ctx, tx, projectID, newID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import transaction: %w", err)
	}

	clone.ID = newID
	clone.ProjectID = projectID
	clone.IsActive = false
	return nil
}

// Activate promotes the arrangement to the live structure in one transaction.
func (r *ArrangementRepository) Activate(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin activation transaction: %w", err)
	}
	defer tx.Rollback()

	var projectID string
	err = tx.QueryRowContext(ctx,
		"SELECT project_id FROM arrangements WHERE id = ?", id,
	).Scan(&projectID)
	if err == sql.ErrNoRows {
		return fmt.Errorf("arrangement %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to get arrangement: %w", err)
	}

	if err := promoteTx(ctx, tx, id, projectID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit activation transaction: %w", err)
	}

	return nil
}

// EnsureActive guarantees the project has an active arrangement if it has any
// live teams. The "no active arrangement" precondition is re-checked inside
// the transaction, so concurrent callers resolve to exactly one active row.
func (r *ArrangementRepository) EnsureActive(ctx context.Context, projectID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin ensure-active transaction: %w", err)
	}
	defer tx.Rollback()

	var activeCount int
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM arrangements WHERE project_id = ? AND is_active = 1", projectID,
	).Scan(&activeCount); err != nil {
		return fmt.Errorf("failed to check active arrangement: %w", err)
	}
	if activeCount > 0 {
		return nil
	}

	var teamCount int
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM live_teams WHERE project_id = ?", projectID,
	).Scan(&teamCount); err != nil {
		return fmt.Errorf("failed to count live teams: %w", err)
	}
	if teamCount == 0 {
		// Nothing to mirror; a project without live structure has no
		// active arrangement until one is promoted.
		return nil
	}

	newID, err := nextID(ctx, tx, "arrangements", "ARR-")
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO arrangements (id, project_id, name, is_active) VALUES (?, ?, 'Current structure', 0)",
		newID, projectID,
	)
	if err != nil {
		return fmt.Errorf("failed to create arrangement: %w", err)
	}

	if err := importLiveTx(ctx, tx, projectID, newID); err != nil {
		return err
	}

	if err := promoteTx(ctx, tx, newID, projectID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit ensure-active transaction: %w", err)
	}

	return nil
}

// GetNextID returns the next available arrangement ID.
func (r *ArrangementRepository) GetNextID(ctx context.Context) (string, error) {
	return nextID(ctx, r.db, "arrangements", "ARR-")
}

// importLiveTx copies the project's live teams and current memberships into
// the given (empty) arrangement. Part of a caller-owned transaction.
func importLiveTx(ctx context.Context, tx *sql.Tx, projectID, arrangementID string) error {
	type liveTeam struct {
		id   string
		name string
	}
	rows, err := tx.QueryContext(ctx,
		"SELECT id, name FROM live_teams WHERE project_id = ? ORDER BY created_at ASC, id ASC",
		projectID,
	)
	if err != nil {
		return fmt.Errorf("failed to read live teams: %w", err)
	}
	var liveTeams []liveTeam
	for rows.Next() {
		var lt liveTeam
		if err := rows.Scan(&lt.id, &lt.name); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan live team: %w", err)
		}
		liveTeams = append(liveTeams, lt)
	}
	rows.Close()

	teamSeq, err := nextSeq(ctx, tx, "arrangement_teams", "TEAM-")
	if err != nil {
		return err
	}
	asgnSeq, err := nextSeq(ctx, tx, "arrangement_assignments", "ASGN-")
	if err != nil {
		return err
	}

	for i, lt := range liveTeams {
		teamSeq++
		teamID := fmt.Sprintf("TEAM-%03d", teamSeq)
		_, err = tx.ExecContext(ctx,
			"INSERT INTO arrangement_teams (id, arrangement_id, name, sort_order) VALUES (?, ?, ?, ?)",
			teamID, arrangementID, lt.name, i+1,
		)
		if err != nil {
			return fmt.Errorf("failed to import live team %s: %w", lt.id, err)
		}

		memberRows, err := tx.QueryContext(ctx,
			`SELECT lm.roster_member_id
			 FROM live_memberships lm
			 JOIN roster_members rm ON rm.id = lm.roster_member_id
			 WHERE lm.team_id = ? AND lm.left_at IS NULL AND rm.left_at IS NULL
			 ORDER BY lm.created_at ASC, lm.id ASC`,
			lt.id,
		)
		if err != nil {
			return fmt.Errorf("failed to read live memberships: %w", err)
		}
		var memberIDs []string
		for memberRows.Next() {
			var memberID string
			if err := memberRows.Scan(&memberID); err != nil {
				memberRows.Close()
				return fmt.Errorf("failed to scan live membership: %w", err)
			}
			memberIDs = append(memberIDs, memberID)
		}
		memberRows.Close()

		for _, memberID := range memberIDs {
			asgnSeq++
			_, err = tx.ExecContext(ctx,
				"INSERT INTO arrangement_assignments (id, arrangement_team_id, roster_member_id) VALUES (?, ?, ?)",
				fmt.Sprintf("ASGN-%03d", asgnSeq), teamID, memberID,
			)
			if err != nil {
				return fmt.Errorf("failed to import assignment for %s: %w", memberID, err)
			}
		}
	}

	return nil
}

// promoteTx performs the promotion steps for one arrangement inside a
// caller-owned transaction:
//
//  1. deactivate every arrangement of the project
//  2. clear live_team_id project-wide (skipped when none are set)
//  3. flag the target active
//  4. replace the project's live teams and memberships from the target's
//     teams in sort order, writing the new live team ids back
//
// Empty teams produce a live team and no membership insert at all.
func promoteTx(ctx context.Context, tx *sql.Tx, arrangementID, projectID string) error {
	_, err := tx.ExecContext(ctx,
		"UPDATE arrangements SET is_active = 0, updated_at = CURRENT_TIMESTAMP WHERE project_id = ? AND is_active = 1",
		projectID,
	)
	if err != nil {
		return fmt.Errorf("failed to deactivate arrangements: %w", err)
	}

	var linked int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM arrangement_teams t
		 JOIN arrangements a ON a.id = t.arrangement_id
		 WHERE a.project_id = ? AND t.live_team_id IS NOT NULL`,
		projectID,
	).Scan(&linked)
	if err != nil {
		return fmt.Errorf("failed to count live team links: %w", err)
	}
	if linked > 0 {
		_, err = tx.ExecContext(ctx,
			`UPDATE arrangement_teams SET live_team_id = NULL, updated_at = CURRENT_TIMESTAMP
			 WHERE live_team_id IS NOT NULL
			   AND arrangement_id IN (SELECT id FROM arrangements WHERE project_id = ?)`,
			projectID,
		)
		if err != nil {
			return fmt.Errorf("failed to clear live team links: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE arrangements SET is_active = 1, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		arrangementID,
	)
	if err != nil {
		return fmt.Errorf("failed to activate arrangement: %w", err)
	}

	// Replace the live structure: memberships first, then teams
	_, err = tx.ExecContext(ctx,
		"DELETE FROM live_memberships WHERE team_id IN (SELECT id FROM live_teams WHERE project_id = ?)",
		projectID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete live memberships: %w", err)
	}
	_, err = tx.ExecContext(ctx, "DELETE FROM live_teams WHERE project_id = ?", projectID)
	if err != nil {
		return fmt.Errorf("failed to delete live teams: %w", err)
	}

	type draftTeam struct {
		id   string
		name string
	}
	rows, err := tx.QueryContext(ctx,
		"SELECT id, name FROM arrangement_teams WHERE arrangement_id = ? ORDER BY sort_order ASC, id ASC",
		arrangementID,
	)
	if err != nil {
		return fmt.Errorf("failed to read arrangement teams: %w", err)
	}
	var teams []draftTeam
	for rows.Next() {
		var dt draftTeam
		if err := rows.Scan(&dt.id, &dt.name); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan arrangement team: %w", err)
		}
		teams = append(teams, dt)
	}
	rows.Close()

	liveSeq, err := nextSeq(ctx, tx, "live_teams", "LT-")
	if err != nil {
		return err
	}
	memberSeq, err := nextSeq(ctx, tx, "live_memberships", "LM-")
	if err != nil {
		return err
	}

	for _, dt := range teams {
		liveSeq++
		liveTeamID := fmt.Sprintf("LT-%03d", liveSeq)
		_, err = tx.ExecContext(ctx,
			"INSERT INTO live_teams (id, project_id, name) VALUES (?, ?, ?)",
			liveTeamID, projectID, dt.name,
		)
		if err != nil {
			return fmt.Errorf("failed to create live team for %s: %w", dt.id, err)
		}

		_, err = tx.ExecContext(ctx,
			"UPDATE arrangement_teams SET live_team_id = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
			liveTeamID, dt.id,
		)
		if err != nil {
			return fmt.Errorf("failed to link live team: %w", err)
		}

		memberRows, err := tx.QueryContext(ctx,
			"SELECT roster_member_id FROM arrangement_assignments WHERE arrangement_team_id = ? ORDER BY created_at ASC, id ASC",
			dt.id,
		)
		if err != nil {
			return fmt.Errorf("failed to read assignments: %w", err)
		}
		var memberIDs []string
		for memberRows.Next() {
			var memberID string
			if err := memberRows.Scan(&memberID); err != nil {
				memberRows.Close()
				return fmt.Errorf("failed to scan assignment: %w", err)
			}
			memberIDs = append(memberIDs, memberID)
		}
		memberRows.Close()

		// Empty teams get no membership write at all
		if len(memberIDs) == 0 {
			continue
		}

		placeholders := make([]string, 0, len(memberIDs))
		args := make([]any, 0, len(memberIDs)*3)
		for _, memberID := range memberIDs {
			memberSeq++
			placeholders = append(placeholders, "(?, ?, ?)")
			args = append(args, fmt.Sprintf("LM-%03d", memberSeq), liveTeamID, memberID)
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO live_memberships (id, team_id, roster_member_id) VALUES "+strings.Join(placeholders, ", "),
			args...,
		)
		if err != nil {
			return fmt.Errorf("failed to create live memberships: %w", err)
		}
	}

	return nil
}

func scanArrangement(s scanner) (*secondary.ArrangementRecord, error) {
	var (
		isActive  int
		createdAt time.Time
		updatedAt time.Time
	)

	record := &secondary.ArrangementRecord{}
	err := s.Scan(&record.ID, &record.ProjectID, &record.Name, &isActive, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	record.IsActive = isActive == 1
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)
	return record, nil
}

// Ensure ArrangementRepository implements the interface
var _ secondary.ArrangementRepository = (*ArrangementRepository)(nil)
