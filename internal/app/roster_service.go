package app

import (
	"context"
	"fmt"

	"github.com/example/crewdeck/internal/ports/primary"
	"github.com/example/crewdeck/internal/ports/secondary"
)

// RosterServiceImpl implements the RosterService interface. Every mutation
// drives the sync bridge synchronously, so callers observe a consistent
// active arrangement as soon as the call returns.
type RosterServiceImpl struct {
	rosterRepo secondary.RosterRepository
	liveRepo   secondary.LiveRepository
	bridge     primary.SyncBridge
}

// NewRosterService creates a new RosterService with injected dependencies.
func NewRosterService(
	rosterRepo secondary.RosterRepository,
	liveRepo secondary.LiveRepository,
	bridge primary.SyncBridge,
) *RosterServiceImpl {
	return &RosterServiceImpl{
		rosterRepo: rosterRepo,
		liveRepo:   liveRepo,
		bridge:     bridge,
	}
}

// AddMember adds a person to the project's roster. The member starts in the
// unassigned pool of both the live view and the active arrangement.
func (s *RosterServiceImpl) AddMember(ctx context.Context, req primary.AddMemberRequest) (*primary.RosterMember, error) {
	record := &secondary.RosterMemberRecord{
		ProjectID:  req.ProjectID,
		PersonID:   req.PersonID,
		Role:       req.Role,
		Title:      req.Title,
		Department: req.Department,
	}
	if err := s.rosterRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to add roster member: %w", err)
	}

	if err := s.bridge.OnMemberAdded(ctx, req.ProjectID, record.ID); err != nil {
		return nil, fmt.Errorf("failed to sync member addition: %w", err)
	}

	return recordToRosterMember(record), nil
}

// RemoveMember rolls a member off the project: soft-deletes the roster row,
// ends their live membership, and removes their assignment from the active
// arrangement via the bridge.
func (s *RosterServiceImpl) RemoveMember(ctx context.Context, rosterMemberID string) error {
	member, err := s.rosterRepo.GetByID(ctx, rosterMemberID)
	if err != nil {
		return err
	}

	if err := s.rosterRepo.MarkLeft(ctx, rosterMemberID); err != nil {
		return fmt.Errorf("failed to remove roster member: %w", err)
	}

	if err := s.liveRepo.EndMemberships(ctx, member.ProjectID, rosterMemberID); err != nil {
		return fmt.Errorf("failed to end live membership: %w", err)
	}

	if err := s.bridge.OnMemberRemoved(ctx, member.ProjectID, rosterMemberID); err != nil {
		return fmt.Errorf("failed to sync member removal: %w", err)
	}

	return nil
}

// ReassignMember moves a member to another live team through the ordinary
// (non-arrangement) UI path. The bridge mirrors the move into the active
// arrangement.
func (s *RosterServiceImpl) ReassignMember(ctx context.Context, rosterMemberID, liveTeamID string) error {
	member, err := s.rosterRepo.GetByID(ctx, rosterMemberID)
	if err != nil {
		return err
	}

	if err := s.liveRepo.ReassignMembership(ctx, member.ProjectID, rosterMemberID, liveTeamID); err != nil {
		return fmt.Errorf("failed to reassign live membership: %w", err)
	}

	if err := s.bridge.OnMemberReassigned(ctx, member.ProjectID, rosterMemberID, liveTeamID); err != nil {
		return fmt.Errorf("failed to sync member reassignment: %w", err)
	}

	return nil
}

// ListMembers lists the project's roster.
func (s *RosterServiceImpl) ListMembers(ctx context.Context, projectID string, includeLeft bool) ([]*primary.RosterMember, error) {
	records, err := s.rosterRepo.ListByProject(ctx, projectID, includeLeft)
	if err != nil {
		return nil, fmt.Errorf("failed to list roster members: %w", err)
	}

	members := make([]*primary.RosterMember, len(records))
	for i, r := range records {
		members[i] = recordToRosterMember(r)
	}
	return members, nil
}

func recordToRosterMember(r *secondary.RosterMemberRecord) *primary.RosterMember {
	return &primary.RosterMember{
		ID:         r.ID,
		ProjectID:  r.ProjectID,
		PersonID:   r.PersonID,
		Role:       r.Role,
		Title:      r.Title,
		Department: r.Department,
		LeftAt:     r.LeftAt,
		CreatedAt:  r.CreatedAt,
	}
}

// Ensure RosterServiceImpl implements the interface
var _ primary.RosterService = (*RosterServiceImpl)(nil)
