package primary

import "context"

// RosterService defines the primary port for roster mutations. Owned by the
// people feature; included here because its mutations drive the sync bridge
// synchronously - a caller who removes a member observes a consistent active
// arrangement as soon as the call returns.
type RosterService interface {
	// AddMember adds a person to the project's roster.
	AddMember(ctx context.Context, req AddMemberRequest) (*RosterMember, error)

	// RemoveMember rolls a member off the project (soft delete) and ends
	// their live membership.
	RemoveMember(ctx context.Context, rosterMemberID string) error

	// ReassignMember moves a member to another live team through the
	// ordinary (non-arrangement) UI path.
	ReassignMember(ctx context.Context, rosterMemberID, liveTeamID string) error

	// ListMembers lists the project's roster, optionally including members
	// who have left.
	ListMembers(ctx context.Context, projectID string, includeLeft bool) ([]*RosterMember, error)
}

// AddMemberRequest contains parameters for adding a roster member.
type AddMemberRequest struct {
	ProjectID  string
	PersonID   string
	Role       string
	Title      string
	Department string
}

// RosterMember represents a roster member at the port boundary.
type RosterMember struct {
	ID         string
	ProjectID  string
	PersonID   string
	Role       string
	Title      string
	Department string
	LeftAt     string
	CreatedAt  string
}
