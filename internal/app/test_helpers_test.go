package app

import (
	"context"
	"fmt"
	"sort"

	"github.com/example/crewdeck/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockArrangementRepository implements secondary.ArrangementRepository for testing.
type mockArrangementRepository struct {
	arrangements map[string]*secondary.ArrangementRecord
	createErr    error
	activateErr  error
	activated    []string
	ensured      []string
}

func newMockArrangementRepository() *mockArrangementRepository {
	return &mockArrangementRepository{
		arrangements: make(map[string]*secondary.ArrangementRecord),
	}
}

func (m *mockArrangementRepository) Create(ctx context.Context, arrangement *secondary.ArrangementRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	if arrangement.ID == "" {
		arrangement.ID = fmt.Sprintf("ARR-%03d", len(m.arrangements)+1)
	}
	m.arrangements[arrangement.ID] = arrangement
	return nil
}

func (m *mockArrangementRepository) GetByID(ctx context.Context, id string) (*secondary.ArrangementRecord, error) {
	if record, ok := m.arrangements[id]; ok {
		return record, nil
	}
	return nil, fmt.Errorf("arrangement %s: %w", id, secondary.ErrNotFound)
}

func (m *mockArrangementRepository) ListByProject(ctx context.Context, projectID string) ([]*secondary.ArrangementRecord, error) {
	var result []*secondary.ArrangementRecord
	for _, record := range m.arrangements {
		if record.ProjectID == projectID {
			result = append(result, record)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].IsActive != result[j].IsActive {
			return result[i].IsActive
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (m *mockArrangementRepository) FindActive(ctx context.Context, projectID string) (*secondary.ArrangementRecord, error) {
	for _, record := range m.arrangements {
		if record.ProjectID == projectID && record.IsActive {
			return record, nil
		}
	}
	return nil, fmt.Errorf("project %s: %w", projectID, secondary.ErrNoActiveArrangement)
}

func (m *mockArrangementRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.arrangements[id]; !ok {
		return fmt.Errorf("arrangement %s: %w", id, secondary.ErrNotFound)
	}
	delete(m.arrangements, id)
	return nil
}

func (m *mockArrangementRepository) Clone(ctx context.Context, sourceID string, clone *secondary.ArrangementRecord) error {
	source, ok := m.arrangements[sourceID]
	if !ok {
		return fmt.Errorf("arrangement %s: %w", sourceID, secondary.ErrNotFound)
	}
	clone.ID = fmt.Sprintf("ARR-%03d", len(m.arrangements)+1)
	clone.ProjectID = source.ProjectID
	clone.IsActive = false
	m.arrangements[clone.ID] = clone
	return nil
}

func (m *mockArrangementRepository) ImportLive(ctx context.Context, projectID string, clone *secondary.ArrangementRecord) error {
	clone.ID = fmt.Sprintf("ARR-%03d", len(m.arrangements)+1)
	clone.ProjectID = projectID
	clone.IsActive = false
	m.arrangements[clone.ID] = clone
	return nil
}

func (m *mockArrangementRepository) Activate(ctx context.Context, id string) error {
	if m.activateErr != nil {
		return m.activateErr
	}
	target, ok := m.arrangements[id]
	if !ok {
		return fmt.Errorf("arrangement %s: %w", id, secondary.ErrNotFound)
	}
	for _, record := range m.arrangements {
		if record.ProjectID == target.ProjectID {
			record.IsActive = false
		}
	}
	target.IsActive = true
	m.activated = append(m.activated, id)
	return nil
}

func (m *mockArrangementRepository) EnsureActive(ctx context.Context, projectID string) error {
	m.ensured = append(m.ensured, projectID)
	return nil
}

func (m *mockArrangementRepository) GetNextID(ctx context.Context) (string, error) {
	return fmt.Sprintf("ARR-%03d", len(m.arrangements)+1), nil
}

// mockTeamRepository implements secondary.TeamRepository for testing.
type mockTeamRepository struct {
	teams     map[string]*secondary.TeamRecord
	createErr error
}

func newMockTeamRepository() *mockTeamRepository {
	return &mockTeamRepository{teams: make(map[string]*secondary.TeamRecord)}
}

func (m *mockTeamRepository) Create(ctx context.Context, team *secondary.TeamRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	if team.ID == "" {
		team.ID = fmt.Sprintf("TEAM-%03d", len(m.teams)+1)
	}
	maxOrder := 0
	for _, existing := range m.teams {
		if existing.ArrangementID == team.ArrangementID && existing.SortOrder > maxOrder {
			maxOrder = existing.SortOrder
		}
	}
	team.SortOrder = maxOrder + 1
	m.teams[team.ID] = team
	return nil
}

func (m *mockTeamRepository) GetByID(ctx context.Context, id string) (*secondary.TeamRecord, error) {
	if team, ok := m.teams[id]; ok {
		return team, nil
	}
	return nil, fmt.Errorf("team %s: %w", id, secondary.ErrNotFound)
}

func (m *mockTeamRepository) ListByArrangement(ctx context.Context, arrangementID string) ([]*secondary.TeamRecord, error) {
	var result []*secondary.TeamRecord
	for _, team := range m.teams {
		if team.ArrangementID == arrangementID {
			result = append(result, team)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].SortOrder != result[j].SortOrder {
			return result[i].SortOrder < result[j].SortOrder
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (m *mockTeamRepository) Rename(ctx context.Context, id, newName string) error {
	team, ok := m.teams[id]
	if !ok {
		return fmt.Errorf("team %s: %w", id, secondary.ErrNotFound)
	}
	team.Name = newName
	return nil
}

func (m *mockTeamRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.teams[id]; !ok {
		return fmt.Errorf("team %s: %w", id, secondary.ErrNotFound)
	}
	delete(m.teams, id)
	return nil
}

// mockAssignmentRepository implements secondary.AssignmentRepository for
// testing. It borrows the team mock to resolve team -> arrangement.
type mockAssignmentRepository struct {
	teams       *mockTeamRepository
	assignments []*secondary.AssignmentRecord
	moves       []string // "member:from->to"
	bulkDeletes []string // "arrangement:member"
}

func newMockAssignmentRepository(teams *mockTeamRepository) *mockAssignmentRepository {
	return &mockAssignmentRepository{teams: teams}
}

func (m *mockAssignmentRepository) Create(ctx context.Context, assignment *secondary.AssignmentRecord) error {
	if assignment.ID == "" {
		assignment.ID = fmt.Sprintf("ASGN-%03d", len(m.assignments)+1)
	}
	m.assignments = append(m.assignments, assignment)
	return nil
}

func (m *mockAssignmentRepository) FindByMember(ctx context.Context, arrangementID, rosterMemberID string) (*secondary.AssignmentRecord, error) {
	for _, assignment := range m.assignments {
		if assignment.RosterMemberID != rosterMemberID {
			continue
		}
		team, ok := m.teams.teams[assignment.ArrangementTeamID]
		if ok && team.ArrangementID == arrangementID {
			return assignment, nil
		}
	}
	return nil, fmt.Errorf("assignment of %s: %w", rosterMemberID, secondary.ErrNotFound)
}

func (m *mockAssignmentRepository) ListByTeam(ctx context.Context, teamID string) ([]*secondary.AssignmentRecord, error) {
	var result []*secondary.AssignmentRecord
	for _, assignment := range m.assignments {
		if assignment.ArrangementTeamID == teamID {
			result = append(result, assignment)
		}
	}
	return result, nil
}

func (m *mockAssignmentRepository) Delete(ctx context.Context, teamID, rosterMemberID string) error {
	kept := m.assignments[:0]
	for _, assignment := range m.assignments {
		if assignment.ArrangementTeamID == teamID && assignment.RosterMemberID == rosterMemberID {
			continue
		}
		kept = append(kept, assignment)
	}
	m.assignments = kept
	return nil
}

func (m *mockAssignmentRepository) Move(ctx context.Context, rosterMemberID, fromTeamID, toTeamID string) error {
	if _, ok := m.teams.teams[toTeamID]; !ok {
		return fmt.Errorf("team %s: %w", toTeamID, secondary.ErrNotFound)
	}
	if err := m.Delete(ctx, fromTeamID, rosterMemberID); err != nil {
		return err
	}
	m.moves = append(m.moves, rosterMemberID+":"+fromTeamID+"->"+toTeamID)
	return m.Create(ctx, &secondary.AssignmentRecord{
		ArrangementTeamID: toTeamID,
		RosterMemberID:    rosterMemberID,
	})
}

func (m *mockAssignmentRepository) DeleteByMemberInArrangement(ctx context.Context, arrangementID, rosterMemberID string) error {
	m.bulkDeletes = append(m.bulkDeletes, arrangementID+":"+rosterMemberID)
	kept := m.assignments[:0]
	for _, assignment := range m.assignments {
		team, ok := m.teams.teams[assignment.ArrangementTeamID]
		if ok && team.ArrangementID == arrangementID && assignment.RosterMemberID == rosterMemberID {
			continue
		}
		kept = append(kept, assignment)
	}
	m.assignments = kept
	return nil
}

// mockRosterRepository implements secondary.RosterRepository for testing.
type mockRosterRepository struct {
	members   map[string]*secondary.RosterMemberRecord
	createErr error
}

func newMockRosterRepository() *mockRosterRepository {
	return &mockRosterRepository{members: make(map[string]*secondary.RosterMemberRecord)}
}

func (m *mockRosterRepository) Create(ctx context.Context, member *secondary.RosterMemberRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	if member.ID == "" {
		member.ID = fmt.Sprintf("RM-%03d", len(m.members)+1)
	}
	m.members[member.ID] = member
	return nil
}

func (m *mockRosterRepository) GetByID(ctx context.Context, id string) (*secondary.RosterMemberRecord, error) {
	if member, ok := m.members[id]; ok {
		return member, nil
	}
	return nil, fmt.Errorf("roster member %s: %w", id, secondary.ErrNotFound)
}

func (m *mockRosterRepository) ListByProject(ctx context.Context, projectID string, includeLeft bool) ([]*secondary.RosterMemberRecord, error) {
	var result []*secondary.RosterMemberRecord
	for _, member := range m.members {
		if member.ProjectID != projectID {
			continue
		}
		if member.LeftAt != "" && !includeLeft {
			continue
		}
		result = append(result, member)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockRosterRepository) MarkLeft(ctx context.Context, id string) error {
	member, ok := m.members[id]
	if !ok {
		return fmt.Errorf("roster member %s: %w", id, secondary.ErrNotFound)
	}
	member.LeftAt = "2025-01-01T00:00:00Z"
	return nil
}

// mockLiveRepository implements secondary.LiveRepository for testing.
type mockLiveRepository struct {
	teams      map[string]*secondary.LiveTeamRecord
	ended      []string // "project:member"
	reassigned []string // "member->team"
}

func newMockLiveRepository() *mockLiveRepository {
	return &mockLiveRepository{teams: make(map[string]*secondary.LiveTeamRecord)}
}

func (m *mockLiveRepository) ListTeams(ctx context.Context, projectID string) ([]*secondary.LiveTeamRecord, error) {
	var result []*secondary.LiveTeamRecord
	for _, team := range m.teams {
		if team.ProjectID == projectID {
			result = append(result, team)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockLiveRepository) GetTeam(ctx context.Context, id string) (*secondary.LiveTeamRecord, error) {
	if team, ok := m.teams[id]; ok {
		return team, nil
	}
	return nil, fmt.Errorf("live team %s: %w", id, secondary.ErrNotFound)
}

func (m *mockLiveRepository) ListMemberships(ctx context.Context, teamID string) ([]*secondary.LiveMembershipRecord, error) {
	return nil, nil
}

func (m *mockLiveRepository) HasTeams(ctx context.Context, projectID string) (bool, error) {
	for _, team := range m.teams {
		if team.ProjectID == projectID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockLiveRepository) EndMemberships(ctx context.Context, projectID, rosterMemberID string) error {
	m.ended = append(m.ended, projectID+":"+rosterMemberID)
	return nil
}

func (m *mockLiveRepository) ReassignMembership(ctx context.Context, projectID, rosterMemberID, toTeamID string) error {
	if _, ok := m.teams[toTeamID]; !ok {
		return fmt.Errorf("live team %s: %w", toTeamID, secondary.ErrNotFound)
	}
	m.reassigned = append(m.reassigned, rosterMemberID+"->"+toTeamID)
	return nil
}

// mockSyncBridge records bridge notifications for testing the roster service.
type mockSyncBridge struct {
	events []string
	err    error
}

func (m *mockSyncBridge) OnMemberAdded(ctx context.Context, projectID, rosterMemberID string) error {
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, "added:"+projectID+":"+rosterMemberID)
	return nil
}

func (m *mockSyncBridge) OnMemberRemoved(ctx context.Context, projectID, rosterMemberID string) error {
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, "removed:"+projectID+":"+rosterMemberID)
	return nil
}

func (m *mockSyncBridge) OnMemberReassigned(ctx context.Context, projectID, rosterMemberID, liveTeamID string) error {
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, "reassigned:"+projectID+":"+rosterMemberID+":"+liveTeamID)
	return nil
}
