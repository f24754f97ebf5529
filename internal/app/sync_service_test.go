package app

import (
	"context"
	"testing"

	"github.com/example/crewdeck/internal/ports/secondary"
)

func newSyncFixture() (*SyncBridgeImpl, *mockArrangementRepository, *mockTeamRepository, *mockAssignmentRepository) {
	arrangements := newMockArrangementRepository()
	teams := newMockTeamRepository()
	assignments := newMockAssignmentRepository(teams)
	bridge := NewSyncBridge(arrangements, teams, assignments)
	return bridge, arrangements, teams, assignments
}

// seedActiveAndDraft builds an active arrangement and a draft, each with one
// team holding RM-001.
func seedActiveAndDraft(arrangements *mockArrangementRepository, teams *mockTeamRepository, assignments *mockAssignmentRepository) {
	arrangements.arrangements["ARR-001"] = &secondary.ArrangementRecord{
		ID: "ARR-001", ProjectID: "PROJ-001", Name: "Current", IsActive: true,
	}
	arrangements.arrangements["ARR-002"] = &secondary.ArrangementRecord{
		ID: "ARR-002", ProjectID: "PROJ-001", Name: "Draft", IsActive: false,
	}
	teams.teams["TEAM-001"] = &secondary.TeamRecord{
		ID: "TEAM-001", ArrangementID: "ARR-001", Name: "Alpha", LiveTeamID: "LT-001",
	}
	teams.teams["TEAM-002"] = &secondary.TeamRecord{
		ID: "TEAM-002", ArrangementID: "ARR-002", Name: "Alpha",
	}
	assignments.assignments = append(assignments.assignments,
		&secondary.AssignmentRecord{ID: "ASGN-001", ArrangementTeamID: "TEAM-001", RosterMemberID: "RM-001"},
		&secondary.AssignmentRecord{ID: "ASGN-002", ArrangementTeamID: "TEAM-002", RosterMemberID: "RM-001"},
	)
}

func TestSyncBridge_NoActiveArrangement_SilentNoOp(t *testing.T) {
	bridge, _, _, assignments := newSyncFixture()
	ctx := context.Background()

	if err := bridge.OnMemberAdded(ctx, "PROJ-001", "RM-001"); err != nil {
		t.Errorf("OnMemberAdded without active arrangement should be a no-op, got %v", err)
	}
	if err := bridge.OnMemberRemoved(ctx, "PROJ-001", "RM-001"); err != nil {
		t.Errorf("OnMemberRemoved without active arrangement should be a no-op, got %v", err)
	}
	if err := bridge.OnMemberReassigned(ctx, "PROJ-001", "RM-001", "LT-001"); err != nil {
		t.Errorf("OnMemberReassigned without active arrangement should be a no-op, got %v", err)
	}
	if len(assignments.bulkDeletes) != 0 || len(assignments.moves) != 0 {
		t.Error("bridge must not touch assignments without an active arrangement")
	}
}

func TestSyncBridge_OnMemberRemoved_ActiveOnly(t *testing.T) {
	bridge, arrangements, teams, assignments := newSyncFixture()
	seedActiveAndDraft(arrangements, teams, assignments)

	if err := bridge.OnMemberRemoved(context.Background(), "PROJ-001", "RM-001"); err != nil {
		t.Fatalf("OnMemberRemoved failed: %v", err)
	}

	if len(assignments.bulkDeletes) != 1 || assignments.bulkDeletes[0] != "ARR-001:RM-001" {
		t.Fatalf("expected one delete scoped to the active arrangement, got %v", assignments.bulkDeletes)
	}

	// The draft assignment survives
	remaining, _ := assignments.ListByTeam(context.Background(), "TEAM-002")
	if len(remaining) != 1 {
		t.Errorf("draft assignment must survive member removal, got %d", len(remaining))
	}
	removed, _ := assignments.ListByTeam(context.Background(), "TEAM-001")
	if len(removed) != 0 {
		t.Errorf("active assignment must be removed, got %d", len(removed))
	}
}

func TestSyncBridge_OnMemberReassigned_MovesToLinkedTeam(t *testing.T) {
	bridge, arrangements, teams, assignments := newSyncFixture()
	seedActiveAndDraft(arrangements, teams, assignments)

	// A second team in the active arrangement mirrors live team LT-002
	teams.teams["TEAM-003"] = &secondary.TeamRecord{
		ID: "TEAM-003", ArrangementID: "ARR-001", Name: "Beta", SortOrder: 2, LiveTeamID: "LT-002",
	}

	if err := bridge.OnMemberReassigned(context.Background(), "PROJ-001", "RM-001", "LT-002"); err != nil {
		t.Fatalf("OnMemberReassigned failed: %v", err)
	}

	if len(assignments.moves) != 1 || assignments.moves[0] != "RM-001:TEAM-001->TEAM-003" {
		t.Fatalf("expected move into the linked team, got %v", assignments.moves)
	}

	// The draft arrangement did not move
	draft, _ := assignments.ListByTeam(context.Background(), "TEAM-002")
	if len(draft) != 1 {
		t.Errorf("draft assignment must be untouched by reassignment, got %d", len(draft))
	}
}

func TestSyncBridge_OnMemberReassigned_AlreadyInPlace(t *testing.T) {
	bridge, arrangements, teams, assignments := newSyncFixture()
	seedActiveAndDraft(arrangements, teams, assignments)

	// Reassigned to the live team the member's current team already mirrors
	if err := bridge.OnMemberReassigned(context.Background(), "PROJ-001", "RM-001", "LT-001"); err != nil {
		t.Fatalf("OnMemberReassigned failed: %v", err)
	}
	if len(assignments.moves) != 0 {
		t.Errorf("expected no move when already in place, got %v", assignments.moves)
	}
}

func TestSyncBridge_OnMemberReassigned_NoLinkedTeam_Unassigns(t *testing.T) {
	bridge, arrangements, teams, assignments := newSyncFixture()
	seedActiveAndDraft(arrangements, teams, assignments)

	// No team in the active arrangement mirrors LT-999: the member becomes
	// unassigned there rather than landing somewhere arbitrary
	if err := bridge.OnMemberReassigned(context.Background(), "PROJ-001", "RM-001", "LT-999"); err != nil {
		t.Fatalf("OnMemberReassigned failed: %v", err)
	}

	active, _ := assignments.ListByTeam(context.Background(), "TEAM-001")
	if len(active) != 0 {
		t.Error("expected stale assignment removed from the active arrangement")
	}
	draft, _ := assignments.ListByTeam(context.Background(), "TEAM-002")
	if len(draft) != 1 {
		t.Error("draft assignment must survive")
	}
}

func TestSyncBridge_OnMemberAdded_StartsUnassigned(t *testing.T) {
	bridge, arrangements, teams, assignments := newSyncFixture()
	seedActiveAndDraft(arrangements, teams, assignments)

	if err := bridge.OnMemberAdded(context.Background(), "PROJ-001", "RM-002"); err != nil {
		t.Fatalf("OnMemberAdded failed: %v", err)
	}

	// Nothing created anywhere for the new member
	for _, assignment := range assignments.assignments {
		if assignment.RosterMemberID == "RM-002" {
			t.Error("new member must not be auto-assigned")
		}
	}
}
