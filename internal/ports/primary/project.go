package primary

import "context"

// ProjectService defines the primary port for project operations.
type ProjectService interface {
	// CreateProject creates a new project.
	CreateProject(ctx context.Context, name string) (*Project, error)

	// GetProject retrieves a project by ID.
	GetProject(ctx context.Context, projectID string) (*Project, error)

	// ListProjects retrieves all projects.
	ListProjects(ctx context.Context) ([]*Project, error)
}

// Project represents a project at the port boundary.
type Project struct {
	ID        string
	Name      string
	Status    string
	CreatedAt string
}
