package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/crewdeck/internal/ports/primary"
	"github.com/example/crewdeck/internal/ports/secondary"
)

// ProjectServiceImpl implements the ProjectService interface.
type ProjectServiceImpl struct {
	projectRepo secondary.ProjectRepository
}

// NewProjectService creates a new ProjectService with injected dependencies.
func NewProjectService(projectRepo secondary.ProjectRepository) *ProjectServiceImpl {
	return &ProjectServiceImpl{projectRepo: projectRepo}
}

// CreateProject creates a new project.
func (s *ProjectServiceImpl) CreateProject(ctx context.Context, name string) (*primary.Project, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("project name must not be empty")
	}

	record := &secondary.ProjectRecord{Name: name}
	if err := s.projectRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return recordToProject(record), nil
}

// GetProject retrieves a project by ID.
func (s *ProjectServiceImpl) GetProject(ctx context.Context, projectID string) (*primary.Project, error) {
	record, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return recordToProject(record), nil
}

// ListProjects retrieves all projects.
func (s *ProjectServiceImpl) ListProjects(ctx context.Context) ([]*primary.Project, error) {
	records, err := s.projectRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	projects := make([]*primary.Project, len(records))
	for i, r := range records {
		projects[i] = recordToProject(r)
	}
	return projects, nil
}

func recordToProject(r *secondary.ProjectRecord) *primary.Project {
	return &primary.Project{
		ID:        r.ID,
		Name:      r.Name,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
	}
}

// Ensure ProjectServiceImpl implements the interface
var _ primary.ProjectService = (*ProjectServiceImpl)(nil)
