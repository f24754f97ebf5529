package secondary

import "context"

// LiveRepository defines the secondary port for the canonical live structure.
// The arrangement engine only reads it here; the one writer is the activation
// transaction inside ArrangementRepository, plus the roster-driven membership
// updates below.
type LiveRepository interface {
	// ListTeams retrieves the project's live teams in creation order.
	ListTeams(ctx context.Context, projectID string) ([]*LiveTeamRecord, error)

	// GetTeam retrieves a live team by its ID.
	GetTeam(ctx context.Context, id string) (*LiveTeamRecord, error)

	// ListMemberships retrieves the team's current (non-departed) memberships.
	ListMemberships(ctx context.Context, teamID string) ([]*LiveMembershipRecord, error)

	// HasTeams reports whether the project has any live teams.
	HasTeams(ctx context.Context, projectID string) (bool, error)

	// EndMemberships soft-deletes all of the member's current memberships
	// within the project by stamping left_at. Idempotent.
	EndMemberships(ctx context.Context, projectID, rosterMemberID string) error

	// ReassignMembership moves a member to another live team: ends current
	// memberships and creates a new one under toTeamID, in one transaction.
	ReassignMembership(ctx context.Context, projectID, rosterMemberID, toTeamID string) error
}

// LiveTeamRecord represents a canonical live team.
type LiveTeamRecord struct {
	ID        string
	ProjectID string
	Name      string
	CreatedAt string
}

// LiveMembershipRecord represents a member's placement in a live team.
type LiveMembershipRecord struct {
	ID             string
	TeamID         string
	RosterMemberID string
	LeftAt         string // empty while the membership is current
	CreatedAt      string
}
