package app

import (
	"context"
	"errors"
	"fmt"

	corearrangement "github.com/example/crewdeck/internal/core/arrangement"
	"github.com/example/crewdeck/internal/ports/primary"
	"github.com/example/crewdeck/internal/ports/secondary"
)

// DraftServiceImpl implements the DraftService interface: team and assignment
// mutations scoped to one arrangement. Pure draft operations - the live
// structure is written by activation only.
type DraftServiceImpl struct {
	teamRepo       secondary.TeamRepository
	assignmentRepo secondary.AssignmentRepository
	rosterRepo     secondary.RosterRepository
}

// NewDraftService creates a new DraftService with injected dependencies.
func NewDraftService(
	teamRepo secondary.TeamRepository,
	assignmentRepo secondary.AssignmentRepository,
	rosterRepo secondary.RosterRepository,
) *DraftServiceImpl {
	return &DraftServiceImpl{
		teamRepo:       teamRepo,
		assignmentRepo: assignmentRepo,
		rosterRepo:     rosterRepo,
	}
}

// AddTeam creates a team at the end of the arrangement's ordering.
func (s *DraftServiceImpl) AddTeam(ctx context.Context, req primary.AddTeamRequest) (*primary.Team, error) {
	if result := corearrangement.CanAddTeam(req.Name); !result.Allowed {
		return nil, result.Error()
	}

	record := &secondary.TeamRecord{
		ArrangementID: req.ArrangementID,
		Name:          req.Name,
	}
	if err := s.teamRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to add team: %w", err)
	}

	return &primary.Team{
		ID:            record.ID,
		ArrangementID: record.ArrangementID,
		Name:          record.Name,
		SortOrder:     record.SortOrder,
		LiveTeamID:    record.LiveTeamID,
		CreatedAt:     record.CreatedAt,
	}, nil
}

// UpdateTeam renames a team.
func (s *DraftServiceImpl) UpdateTeam(ctx context.Context, teamID, name string) error {
	if result := corearrangement.CanRenameTeam(name); !result.Allowed {
		return result.Error()
	}

	return s.teamRepo.Rename(ctx, teamID, name)
}

// DeleteTeam removes a team and its assignments.
func (s *DraftServiceImpl) DeleteTeam(ctx context.Context, teamID string) error {
	return s.teamRepo.Delete(ctx, teamID)
}

// AssignMember places a member into a team. A member already assigned
// elsewhere in the same arrangement is rejected with a conflict; MoveMember
// is the sanctioned path for relocation.
func (s *DraftServiceImpl) AssignMember(ctx context.Context, teamID, rosterMemberID string) error {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return err
	}

	if _, err := s.rosterRepo.GetByID(ctx, rosterMemberID); err != nil {
		return err
	}

	currentTeamID := ""
	existing, err := s.assignmentRepo.FindByMember(ctx, team.ArrangementID, rosterMemberID)
	if err != nil && !errors.Is(err, secondary.ErrNotFound) {
		return err
	}
	if existing != nil {
		currentTeamID = existing.ArrangementTeamID
	}

	guardCtx := corearrangement.AssignMemberContext{
		RosterMemberID: rosterMemberID,
		TargetTeamID:   teamID,
		CurrentTeamID:  currentTeamID,
	}
	if result := corearrangement.CanAssignMember(guardCtx); !result.Allowed {
		return fmt.Errorf("%s: %w", result.Reason, secondary.ErrConflict)
	}

	assignment := &secondary.AssignmentRecord{
		ArrangementTeamID: teamID,
		RosterMemberID:    rosterMemberID,
	}
	if err := s.assignmentRepo.Create(ctx, assignment); err != nil {
		return fmt.Errorf("failed to assign member: %w", err)
	}

	return nil
}

// UnassignMember removes a member from a team. Idempotent: removing a member
// who is not assigned is a no-op, not an error.
func (s *DraftServiceImpl) UnassignMember(ctx context.Context, teamID, rosterMemberID string) error {
	return s.assignmentRepo.Delete(ctx, teamID, rosterMemberID)
}

// MoveMember atomically relocates a member between two teams of the same
// arrangement. A stale source (no assignment under fromTeamID) does not fail
// the move; the destination assignment is still created.
func (s *DraftServiceImpl) MoveMember(ctx context.Context, req primary.MoveMemberRequest) error {
	fromTeam, err := s.teamRepo.GetByID(ctx, req.FromTeamID)
	if err != nil {
		return err
	}
	toTeam, err := s.teamRepo.GetByID(ctx, req.ToTeamID)
	if err != nil {
		return err
	}

	guardCtx := corearrangement.MoveMemberContext{
		RosterMemberID:  req.RosterMemberID,
		FromTeamID:      req.FromTeamID,
		ToTeamID:        req.ToTeamID,
		SameArrangement: fromTeam.ArrangementID == toTeam.ArrangementID,
	}
	if result := corearrangement.CanMoveMember(guardCtx); !result.Allowed {
		return result.Error()
	}

	if err := s.assignmentRepo.Move(ctx, req.RosterMemberID, req.FromTeamID, req.ToTeamID); err != nil {
		return fmt.Errorf("failed to move member: %w", err)
	}

	return nil
}

// Ensure DraftServiceImpl implements the interface
var _ primary.DraftService = (*DraftServiceImpl)(nil)
