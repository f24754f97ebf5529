package app

import (
	"context"
	"fmt"

	corearrangement "github.com/example/crewdeck/internal/core/arrangement"
	"github.com/example/crewdeck/internal/ports/primary"
	"github.com/example/crewdeck/internal/ports/secondary"
)

// ArrangementServiceImpl implements the ArrangementService interface: the
// clone engine plus the list/editor read paths.
type ArrangementServiceImpl struct {
	arrangementRepo secondary.ArrangementRepository
	teamRepo        secondary.TeamRepository
	assignmentRepo  secondary.AssignmentRepository
	rosterRepo      secondary.RosterRepository
}

// NewArrangementService creates a new ArrangementService with injected dependencies.
func NewArrangementService(
	arrangementRepo secondary.ArrangementRepository,
	teamRepo secondary.TeamRepository,
	assignmentRepo secondary.AssignmentRepository,
	rosterRepo secondary.RosterRepository,
) *ArrangementServiceImpl {
	return &ArrangementServiceImpl{
		arrangementRepo: arrangementRepo,
		teamRepo:        teamRepo,
		assignmentRepo:  assignmentRepo,
		rosterRepo:      rosterRepo,
	}
}

// GetByProjectID lists a project's arrangements with teams and assignment counts.
func (s *ArrangementServiceImpl) GetByProjectID(ctx context.Context, projectID string) ([]*primary.ArrangementSummary, error) {
	records, err := s.arrangementRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list arrangements: %w", err)
	}

	summaries := make([]*primary.ArrangementSummary, 0, len(records))
	for _, record := range records {
		teams, err := s.teamRepo.ListByArrangement(ctx, record.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list teams for %s: %w", record.ID, err)
		}

		summary := &primary.ArrangementSummary{Arrangement: *recordToArrangement(record)}
		for _, team := range teams {
			assignments, err := s.assignmentRepo.ListByTeam(ctx, team.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to list assignments for %s: %w", team.ID, err)
			}
			summary.Teams = append(summary.Teams, &primary.TeamSummary{
				ID:              team.ID,
				Name:            team.Name,
				SortOrder:       team.SortOrder,
				LiveTeamID:      team.LiveTeamID,
				AssignmentCount: len(assignments),
			})
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}

// GetByID retrieves one arrangement with full teams, assignments and roster details.
func (s *ArrangementServiceImpl) GetByID(ctx context.Context, arrangementID string) (*primary.ArrangementDetail, error) {
	record, err := s.arrangementRepo.GetByID(ctx, arrangementID)
	if err != nil {
		return nil, err
	}

	teams, err := s.teamRepo.ListByArrangement(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}

	detail := &primary.ArrangementDetail{Arrangement: *recordToArrangement(record)}
	for _, team := range teams {
		teamDetail := &primary.TeamDetail{
			ID:         team.ID,
			Name:       team.Name,
			SortOrder:  team.SortOrder,
			LiveTeamID: team.LiveTeamID,
		}

		assignments, err := s.assignmentRepo.ListByTeam(ctx, team.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list assignments: %w", err)
		}
		for _, assignment := range assignments {
			member, err := s.rosterRepo.GetByID(ctx, assignment.RosterMemberID)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve roster member %s: %w", assignment.RosterMemberID, err)
			}
			teamDetail.Members = append(teamDetail.Members, &primary.AssignedMember{
				AssignmentID:   assignment.ID,
				RosterMemberID: member.ID,
				PersonID:       member.PersonID,
				Role:           member.Role,
				Title:          member.Title,
				Department:     member.Department,
				Departed:       member.LeftAt != "",
			})
		}

		detail.Teams = append(detail.Teams, teamDetail)
	}

	return detail, nil
}

// Create creates an empty arrangement.
func (s *ArrangementServiceImpl) Create(ctx context.Context, req primary.CreateArrangementRequest) (*primary.Arrangement, error) {
	if result := corearrangement.CanCreateArrangement(req.Name); !result.Allowed {
		return nil, result.Error()
	}

	record := &secondary.ArrangementRecord{
		ProjectID: req.ProjectID,
		Name:      req.Name,
	}
	if err := s.arrangementRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create arrangement: %w", err)
	}

	return recordToArrangement(record), nil
}

// Clone creates an arrangement by deep-copying an existing one. The clone is
// never active on creation, regardless of the source's state.
func (s *ArrangementServiceImpl) Clone(ctx context.Context, req primary.CloneArrangementRequest) (*primary.Arrangement, error) {
	if result := corearrangement.CanCreateArrangement(req.Name); !result.Allowed {
		return nil, result.Error()
	}

	record := &secondary.ArrangementRecord{Name: req.Name}
	if err := s.arrangementRepo.Clone(ctx, req.SourceArrangementID, record); err != nil {
		return nil, fmt.Errorf("failed to clone arrangement: %w", err)
	}

	return recordToArrangement(record), nil
}

// CloneFromLive creates an arrangement mirroring the current live structure.
func (s *ArrangementServiceImpl) CloneFromLive(ctx context.Context, req primary.CloneFromLiveRequest) (*primary.Arrangement, error) {
	if result := corearrangement.CanCreateArrangement(req.Name); !result.Allowed {
		return nil, result.Error()
	}

	record := &secondary.ArrangementRecord{Name: req.Name}
	if err := s.arrangementRepo.ImportLive(ctx, req.ProjectID, record); err != nil {
		return nil, fmt.Errorf("failed to import live structure: %w", err)
	}

	return recordToArrangement(record), nil
}

// Delete removes an arrangement and everything it owns. Deleting the active
// arrangement leaves the project with no active arrangement until one is
// promoted or lazily recreated.
func (s *ArrangementServiceImpl) Delete(ctx context.Context, arrangementID string) error {
	return s.arrangementRepo.Delete(ctx, arrangementID)
}

func recordToArrangement(r *secondary.ArrangementRecord) *primary.Arrangement {
	return &primary.Arrangement{
		ID:        r.ID,
		ProjectID: r.ProjectID,
		Name:      r.Name,
		IsActive:  r.IsActive,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// Ensure ArrangementServiceImpl implements the interface
var _ primary.ArrangementService = (*ArrangementServiceImpl)(nil)
