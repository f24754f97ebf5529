package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/crewdeck/internal/ports/secondary"
)

// TeamRepository implements secondary.TeamRepository with SQLite.
type TeamRepository struct {
	db *sql.DB
}

// NewTeamRepository creates a new SQLite arrangement team repository.
func NewTeamRepository(db *sql.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

// Create persists a new team at the end of its arrangement's ordering.
func (r *TeamRepository) Create(ctx context.Context, team *secondary.TeamRecord) error {
	// Verify arrangement exists
	var exists int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM arrangements WHERE id = ?", team.ArrangementID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to verify arrangement: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("arrangement %s: %w", team.ArrangementID, secondary.ErrNotFound)
	}

	id, err := nextID(ctx, r.db, "arrangement_teams", "TEAM-")
	if err != nil {
		return err
	}

	// Append at max(sort_order)+1 within the arrangement
	err = r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(sort_order), 0) + 1 FROM arrangement_teams WHERE arrangement_id = ?",
		team.ArrangementID,
	).Scan(&team.SortOrder)
	if err != nil {
		return fmt.Errorf("failed to compute sort order: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		"INSERT INTO arrangement_teams (id, arrangement_id, name, sort_order) VALUES (?, ?, ?, ?)",
		id, team.ArrangementID, team.Name, team.SortOrder,
	)
	if err != nil {
		return fmt.Errorf("failed to create team: %w", err)
	}

	team.ID = id
	return nil
}

// GetByID retrieves a team by its ID.
func (r *TeamRepository) GetByID(ctx context.Context, id string) (*secondary.TeamRecord, error) {
	record, err := scanTeam(r.db.QueryRowContext(ctx,
		"SELECT id, arrangement_id, name, sort_order, live_team_id, created_at, updated_at FROM arrangement_teams WHERE id = ?",
		id,
	))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("team %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return record, nil
}

// ListByArrangement retrieves the arrangement's teams in sort order.
func (r *TeamRepository) ListByArrangement(ctx context.Context, arrangementID string) ([]*secondary.TeamRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, arrangement_id, name, sort_order, live_team_id, created_at, updated_at FROM arrangement_teams WHERE arrangement_id = ? ORDER BY sort_order ASC, id ASC",
		arrangementID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	var teams []*secondary.TeamRecord
	for rows.Next() {
		record, err := scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, record)
	}

	return teams, nil
}

// Rename updates the name of a team.
func (r *TeamRepository) Rename(ctx context.Context, id, newName string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE arrangement_teams SET name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		newName, id,
	)
	if err != nil {
		return fmt.Errorf("failed to rename team: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("team %s: %w", id, secondary.ErrNotFound)
	}

	return nil
}

// Delete removes a team and cascades its assignments. Sibling sort orders are
// untouched; gaps are acceptable.
func (r *TeamRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin delete transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM arrangement_teams WHERE id = ?", id,
	).Scan(&exists); err != nil {
		return fmt.Errorf("failed to verify team: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("team %s: %w", id, secondary.ErrNotFound)
	}

	_, err = tx.ExecContext(ctx, "DELETE FROM arrangement_assignments WHERE arrangement_team_id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete assignments: %w", err)
	}

	_, err = tx.ExecContext(ctx, "DELETE FROM arrangement_teams WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete transaction: %w", err)
	}

	return nil
}

func scanTeam(s scanner) (*secondary.TeamRecord, error) {
	var (
		liveTeamID sql.NullString
		createdAt  time.Time
		updatedAt  time.Time
	)

	record := &secondary.TeamRecord{}
	err := s.Scan(&record.ID, &record.ArrangementID, &record.Name, &record.SortOrder, &liveTeamID, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	record.LiveTeamID = liveTeamID.String
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)
	return record, nil
}

// Ensure TeamRepository implements the interface
var _ secondary.TeamRepository = (*TeamRepository)(nil)
