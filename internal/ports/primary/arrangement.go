// Package primary defines the primary ports (driving adapters) for the
// application. The host application's request handlers and the CLI consume
// the arrangement engine exclusively through these interfaces.
package primary

import "context"

// ArrangementService defines the primary port for arrangement lifecycle
// operations: the clone engine and the read paths.
type ArrangementService interface {
	// GetByProjectID lists a project's arrangements with their teams and
	// assignment counts.
	GetByProjectID(ctx context.Context, projectID string) ([]*ArrangementSummary, error)

	// GetByID retrieves one arrangement with full teams, assignments and
	// assigned roster member details.
	GetByID(ctx context.Context, arrangementID string) (*ArrangementDetail, error)

	// Create creates an empty arrangement.
	Create(ctx context.Context, req CreateArrangementRequest) (*Arrangement, error)

	// Clone creates an arrangement by deep-copying an existing one.
	Clone(ctx context.Context, req CloneArrangementRequest) (*Arrangement, error)

	// CloneFromLive creates an arrangement mirroring the project's current
	// live structure.
	CloneFromLive(ctx context.Context, req CloneFromLiveRequest) (*Arrangement, error)

	// Delete removes an arrangement and everything it owns. Deleting the
	// active arrangement is permitted and leaves the project without one.
	Delete(ctx context.Context, arrangementID string) error
}

// CreateArrangementRequest contains parameters for creating an empty arrangement.
type CreateArrangementRequest struct {
	ProjectID string
	Name      string
}

// CloneArrangementRequest contains parameters for forking an arrangement.
type CloneArrangementRequest struct {
	SourceArrangementID string
	Name                string
}

// CloneFromLiveRequest contains parameters for importing the live structure.
type CloneFromLiveRequest struct {
	ProjectID string
	Name      string
}

// Arrangement represents an arrangement at the port boundary.
type Arrangement struct {
	ID        string
	ProjectID string
	Name      string
	IsActive  bool
	CreatedAt string
	UpdatedAt string
}

// ArrangementSummary is the list-view shape: teams with assignment counts.
type ArrangementSummary struct {
	Arrangement
	Teams []*TeamSummary
}

// TeamSummary represents a team in the list view.
type TeamSummary struct {
	ID              string
	Name            string
	SortOrder       int
	LiveTeamID      string
	AssignmentCount int
}

// ArrangementDetail is the editor-view shape: full teams and members.
type ArrangementDetail struct {
	Arrangement
	Teams []*TeamDetail
}

// TeamDetail represents a team with its assigned members.
type TeamDetail struct {
	ID         string
	Name       string
	SortOrder  int
	LiveTeamID string
	Members    []*AssignedMember
}

// AssignedMember joins an assignment with the roster member it points at.
// Departed is set when the member has left the project but the assignment
// survives in a non-active arrangement.
type AssignedMember struct {
	AssignmentID   string
	RosterMemberID string
	PersonID       string
	Role           string
	Title          string
	Department     string
	Departed       bool
}
