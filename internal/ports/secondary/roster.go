package secondary

import "context"

// RosterRepository defines the secondary port for roster member persistence.
// Roster rows are owned by the people feature; the arrangement engine reads
// them and reacts to the mutations that the roster service performs here.
type RosterRepository interface {
	// Create persists a new roster member.
	Create(ctx context.Context, member *RosterMemberRecord) error

	// GetByID retrieves a roster member by its ID.
	GetByID(ctx context.Context, id string) (*RosterMemberRecord, error)

	// ListByProject retrieves the project's roster members. Departed members
	// are included only when includeLeft is set.
	ListByProject(ctx context.Context, projectID string, includeLeft bool) ([]*RosterMemberRecord, error)

	// MarkLeft soft-deletes a roster member by stamping left_at.
	MarkLeft(ctx context.Context, id string) error
}

// RosterMemberRecord represents a person's participation in a project.
type RosterMemberRecord struct {
	ID         string
	ProjectID  string
	PersonID   string
	Role       string
	Title      string
	Department string
	LeftAt     string // empty while the member is on the project
	CreatedAt  string
	UpdatedAt  string
}

// ProjectRepository defines the secondary port for project persistence.
type ProjectRepository interface {
	// Create persists a new project.
	Create(ctx context.Context, project *ProjectRecord) error

	// GetByID retrieves a project by its ID.
	GetByID(ctx context.Context, id string) (*ProjectRecord, error)

	// List retrieves all projects ordered by creation time.
	List(ctx context.Context) ([]*ProjectRecord, error)
}

// ProjectRecord represents a project as stored in persistence.
type ProjectRecord struct {
	ID        string
	Name      string
	Status    string
	CreatedAt string
	UpdatedAt string
}
