package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/crewdeck/internal/ports/secondary"
)

// RosterRepository implements secondary.RosterRepository with SQLite.
type RosterRepository struct {
	db *sql.DB
}

// NewRosterRepository creates a new SQLite roster repository.
func NewRosterRepository(db *sql.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

// Create persists a new roster member.
func (r *RosterRepository) Create(ctx context.Context, member *secondary.RosterMemberRecord) error {
	// Verify project exists
	var exists int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM projects WHERE id = ?", member.ProjectID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to verify project: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("project %s: %w", member.ProjectID, secondary.ErrNotFound)
	}

	id, err := nextID(ctx, r.db, "roster_members", "RM-")
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		"INSERT INTO roster_members (id, project_id, person_id, role, title, department) VALUES (?, ?, ?, ?, ?, ?)",
		id, member.ProjectID, member.PersonID,
		nullable(member.Role), nullable(member.Title), nullable(member.Department),
	)
	if err != nil {
		return fmt.Errorf("failed to create roster member: %w", err)
	}

	member.ID = id
	return nil
}

// GetByID retrieves a roster member by its ID.
func (r *RosterRepository) GetByID(ctx context.Context, id string) (*secondary.RosterMemberRecord, error) {
	record, err := scanRosterMember(r.db.QueryRowContext(ctx,
		"SELECT id, project_id, person_id, role, title, department, left_at, created_at, updated_at FROM roster_members WHERE id = ?",
		id,
	))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("roster member %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get roster member: %w", err)
	}
	return record, nil
}

// ListByProject retrieves the project's roster members.
func (r *RosterRepository) ListByProject(ctx context.Context, projectID string, includeLeft bool) ([]*secondary.RosterMemberRecord, error) {
	query := "SELECT id, project_id, person_id, role, title, department, left_at, created_at, updated_at FROM roster_members WHERE project_id = ?"
	if !includeLeft {
		query += " AND left_at IS NULL"
	}
	query += " ORDER BY created_at ASC, id ASC"

	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list roster members: %w", err)
	}
	defer rows.Close()

	var members []*secondary.RosterMemberRecord
	for rows.Next() {
		record, err := scanRosterMember(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan roster member: %w", err)
		}
		members = append(members, record)
	}

	return members, nil
}

// MarkLeft soft-deletes a roster member by stamping left_at.
func (r *RosterRepository) MarkLeft(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE roster_members SET left_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND left_at IS NULL",
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to mark roster member as left: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		// Either unknown or already left - distinguish for the caller
		var exists int
		if err := r.db.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM roster_members WHERE id = ?", id,
		).Scan(&exists); err != nil {
			return fmt.Errorf("failed to verify roster member: %w", err)
		}
		if exists == 0 {
			return fmt.Errorf("roster member %s: %w", id, secondary.ErrNotFound)
		}
	}

	return nil
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRosterMember(s scanner) (*secondary.RosterMemberRecord, error) {
	var (
		role       sql.NullString
		title      sql.NullString
		department sql.NullString
		leftAt     sql.NullTime
		createdAt  time.Time
		updatedAt  time.Time
	)

	record := &secondary.RosterMemberRecord{}
	err := s.Scan(&record.ID, &record.ProjectID, &record.PersonID,
		&role, &title, &department, &leftAt, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	record.Role = role.String
	record.Title = title.String
	record.Department = department.String
	if leftAt.Valid {
		record.LeftAt = leftAt.Time.Format(time.RFC3339)
	}
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)
	return record, nil
}

func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// Ensure RosterRepository implements the interface
var _ secondary.RosterRepository = (*RosterRepository)(nil)
