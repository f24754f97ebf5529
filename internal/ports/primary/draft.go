package primary

import "context"

// DraftService defines the primary port for draft mutations: the operations
// the drag-and-drop board performs against one arrangement. None of these
// touch the live structure, even when the arrangement happens to be active;
// only activation writes live tables.
type DraftService interface {
	// AddTeam creates a team at the end of the arrangement's ordering.
	AddTeam(ctx context.Context, req AddTeamRequest) (*Team, error)

	// UpdateTeam renames a team.
	UpdateTeam(ctx context.Context, teamID, name string) error

	// DeleteTeam removes a team and its assignments.
	DeleteTeam(ctx context.Context, teamID string) error

	// AssignMember places a member into a team. Rejected if the member is
	// already assigned to another team in the same arrangement; MoveMember
	// is the sanctioned path for relocation.
	AssignMember(ctx context.Context, teamID, rosterMemberID string) error

	// UnassignMember removes a member from a team. Idempotent.
	UnassignMember(ctx context.Context, teamID, rosterMemberID string) error

	// MoveMember atomically relocates a member between two teams.
	MoveMember(ctx context.Context, req MoveMemberRequest) error
}

// AddTeamRequest contains parameters for creating a team.
type AddTeamRequest struct {
	ArrangementID string
	Name          string
}

// MoveMemberRequest contains parameters for moving a member between teams.
type MoveMemberRequest struct {
	RosterMemberID string
	FromTeamID     string
	ToTeamID       string
}

// Team represents an arrangement team at the port boundary.
type Team struct {
	ID            string
	ArrangementID string
	Name          string
	SortOrder     int
	LiveTeamID    string
	CreatedAt     string
}
