// Package secondary defines the secondary ports (driven adapters) for the
// application. These are the interfaces through which the application drives
// external systems.
package secondary

import "context"

// ArrangementRepository defines the secondary port for arrangement persistence.
// The multi-table writes (Clone, ImportLive, Activate, EnsureActive) are single
// transactions inside the adapter: partial application of a promotion is the
// one failure mode this subsystem must never exhibit.
type ArrangementRepository interface {
	// Create persists a new arrangement. Never active on creation.
	Create(ctx context.Context, arrangement *ArrangementRecord) error

	// GetByID retrieves an arrangement by its ID.
	GetByID(ctx context.Context, id string) (*ArrangementRecord, error)

	// ListByProject retrieves all arrangements for a project, active first.
	ListByProject(ctx context.Context, projectID string) ([]*ArrangementRecord, error)

	// FindActive returns the active arrangement for a project, or
	// ErrNoActiveArrangement if none is flagged.
	FindActive(ctx context.Context, projectID string) (*ArrangementRecord, error)

	// Delete removes an arrangement and cascades its teams and assignments.
	Delete(ctx context.Context, id string) error

	// Clone deep-copies teams and assignments from the source arrangement
	// into a new one described by clone. New ids, same names and ordering.
	Clone(ctx context.Context, sourceID string, clone *ArrangementRecord) error

	// ImportLive materializes the project's live structure (non-departed
	// members only) into a new arrangement described by clone.
	ImportLive(ctx context.Context, projectID string, clone *ArrangementRecord) error

	// Activate promotes the arrangement to the live structure in one
	// transaction: deactivates siblings, clears stale live team links,
	// replaces the project's live teams and memberships.
	Activate(ctx context.Context, id string) error

	// EnsureActive guarantees the project has an active arrangement if it
	// has any live teams, synthesizing one from the live structure when
	// needed. Safe under concurrent invocation; no-op otherwise.
	EnsureActive(ctx context.Context, projectID string) error

	// GetNextID returns the next available arrangement ID.
	GetNextID(ctx context.Context) (string, error)
}

// ArrangementRecord represents an arrangement as stored in persistence.
type ArrangementRecord struct {
	ID        string
	ProjectID string
	Name      string
	IsActive  bool
	CreatedAt string
	UpdatedAt string
}

// TeamRepository defines the secondary port for arrangement team persistence.
type TeamRepository interface {
	// Create persists a new team, appending it at max(sort_order)+1 within
	// its arrangement.
	Create(ctx context.Context, team *TeamRecord) error

	// GetByID retrieves a team by its ID.
	GetByID(ctx context.Context, id string) (*TeamRecord, error)

	// ListByArrangement retrieves the arrangement's teams in sort order.
	ListByArrangement(ctx context.Context, arrangementID string) ([]*TeamRecord, error)

	// Rename updates the name of a team.
	Rename(ctx context.Context, id, newName string) error

	// Delete removes a team and cascades its assignments. Sort orders of
	// sibling teams are left untouched; gaps are acceptable.
	Delete(ctx context.Context, id string) error
}

// TeamRecord represents an arrangement team as stored in persistence.
type TeamRecord struct {
	ID            string
	ArrangementID string
	Name          string
	SortOrder     int
	LiveTeamID    string // empty unless the owning arrangement is active
	CreatedAt     string
	UpdatedAt     string
}

// AssignmentRepository defines the secondary port for assignment persistence.
type AssignmentRepository interface {
	// Create persists a new assignment of a member to a team.
	Create(ctx context.Context, assignment *AssignmentRecord) error

	// FindByMember returns the member's assignment anywhere within the
	// arrangement, or ErrNotFound if the member is unassigned there.
	FindByMember(ctx context.Context, arrangementID, rosterMemberID string) (*AssignmentRecord, error)

	// ListByTeam retrieves all assignments for a team.
	ListByTeam(ctx context.Context, teamID string) ([]*AssignmentRecord, error)

	// Delete removes the matching assignment. Idempotent: deleting a row
	// that does not exist is a no-op, not an error.
	Delete(ctx context.Context, teamID, rosterMemberID string) error

	// Move atomically relocates a member between two teams of the same
	// arrangement. The delete half is idempotent; the member never ends up
	// in neither or both teams.
	Move(ctx context.Context, rosterMemberID, fromTeamID, toTeamID string) error

	// DeleteByMemberInArrangement removes the member's assignment, if any,
	// from the given arrangement. Idempotent.
	DeleteByMemberInArrangement(ctx context.Context, arrangementID, rosterMemberID string) error
}

// AssignmentRecord represents a team/member pairing inside one arrangement.
type AssignmentRecord struct {
	ID                string
	ArrangementTeamID string
	RosterMemberID    string
	CreatedAt         string
}
