package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/crewdeck/internal/ports/primary"
	"github.com/example/crewdeck/internal/ports/secondary"
)

// SyncBridgeImpl implements the SyncBridge interface: it reflects roster
// mutations into the active arrangement, and only the active one. Non-active
// arrangements are frozen proposals and are never touched here.
type SyncBridgeImpl struct {
	arrangementRepo secondary.ArrangementRepository
	teamRepo        secondary.TeamRepository
	assignmentRepo  secondary.AssignmentRepository
}

// NewSyncBridge creates a new SyncBridge with injected dependencies.
func NewSyncBridge(
	arrangementRepo secondary.ArrangementRepository,
	teamRepo secondary.TeamRepository,
	assignmentRepo secondary.AssignmentRepository,
) *SyncBridgeImpl {
	return &SyncBridgeImpl{
		arrangementRepo: arrangementRepo,
		teamRepo:        teamRepo,
		assignmentRepo:  assignmentRepo,
	}
}

// OnMemberAdded clears anything stale pointing at the member in the active
// arrangement. New members start unassigned; the bridge never pre-places them.
func (s *SyncBridgeImpl) OnMemberAdded(ctx context.Context, projectID, rosterMemberID string) error {
	active, err := s.resolveActive(ctx, projectID)
	if err != nil || active == nil {
		return err
	}

	return s.assignmentRepo.DeleteByMemberInArrangement(ctx, active.ID, rosterMemberID)
}

// OnMemberRemoved removes the member's assignment from the active
// arrangement, if any. Assignments in non-active arrangements survive - they
// are historical proposals and may reference departed members.
func (s *SyncBridgeImpl) OnMemberRemoved(ctx context.Context, projectID, rosterMemberID string) error {
	active, err := s.resolveActive(ctx, projectID)
	if err != nil || active == nil {
		return err
	}

	return s.assignmentRepo.DeleteByMemberInArrangement(ctx, active.ID, rosterMemberID)
}

// OnMemberReassigned relocates the member's assignment to the arrangement
// team mirroring the new live team. If the active arrangement has no team
// linked to liveTeamID, the stale assignment is removed instead and the
// member becomes unassigned there.
func (s *SyncBridgeImpl) OnMemberReassigned(ctx context.Context, projectID, rosterMemberID, liveTeamID string) error {
	active, err := s.resolveActive(ctx, projectID)
	if err != nil || active == nil {
		return err
	}

	teams, err := s.teamRepo.ListByArrangement(ctx, active.ID)
	if err != nil {
		return fmt.Errorf("failed to list arrangement teams: %w", err)
	}

	var target *secondary.TeamRecord
	for _, team := range teams {
		if team.LiveTeamID == liveTeamID {
			target = team
			break
		}
	}

	if target == nil {
		return s.assignmentRepo.DeleteByMemberInArrangement(ctx, active.ID, rosterMemberID)
	}

	fromTeamID := ""
	existing, err := s.assignmentRepo.FindByMember(ctx, active.ID, rosterMemberID)
	if err != nil && !errors.Is(err, secondary.ErrNotFound) {
		return err
	}
	if existing != nil {
		if existing.ArrangementTeamID == target.ID {
			return nil
		}
		fromTeamID = existing.ArrangementTeamID
	}

	if err := s.assignmentRepo.Move(ctx, rosterMemberID, fromTeamID, target.ID); err != nil {
		return fmt.Errorf("failed to relocate assignment: %w", err)
	}

	return nil
}

// resolveActive returns the project's active arrangement, or nil when there
// is none. No active arrangement is normal for new projects; every hook is a
// silent no-op then.
func (s *SyncBridgeImpl) resolveActive(ctx context.Context, projectID string) (*secondary.ArrangementRecord, error) {
	active, err := s.arrangementRepo.FindActive(ctx, projectID)
	if err != nil {
		if errors.Is(err, secondary.ErrNoActiveArrangement) {
			return nil, nil
		}
		return nil, err
	}
	return active, nil
}

// Ensure SyncBridgeImpl implements the interface
var _ primary.SyncBridge = (*SyncBridgeImpl)(nil)
