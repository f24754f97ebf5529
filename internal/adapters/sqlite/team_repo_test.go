package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/example/crewdeck/internal/adapters/sqlite"
	"github.com/example/crewdeck/internal/ports/secondary"
)

func TestTeamRepository_Create_AppendsAtEnd(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlite.NewTeamRepository(database)
	ctx := context.Background()

	seedProject(t, database, "PROJ-001", "")
	seedArrangement(t, database, "ARR-001", "PROJ-001", "", false)
	seedTeam(t, database, "TEAM-001", "ARR-001", "Platform", 3)

	record := &secondary.TeamRecord{ArrangementID: "ARR-001", Name: "Product"}
	if err := repo.Create(ctx, record); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if record.ID != "TEAM-002" {
		t.Errorf("expected ID TEAM-002, got %s", record.ID)
	}
	if record.SortOrder != 4 {
		t.Errorf("expected sort order 4 (after existing max 3), got %d", record.SortOrder)
	}
}

func TestTeamRepository_Create_ArrangementNotFound(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlite.NewTeamRepository(database)

	record := &secondary.TeamRecord{ArrangementID: "ARR-999", Name: "Ghost"}
	err := repo.Create(context.Background(), record)
	if !errors.Is(err, secondary.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestTeamRepository_GetByID(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlite.NewTeamRepository(database)
	ctx := context.Background()

	seedProject(t, database, "PROJ-001", "")
	seedArrangement(t, database, "ARR-001", "PROJ-001", "", false)
	seedTeam(t, database, "TEAM-001", "ARR-001", "Platform", 1)

	record, err := repo.GetByID(ctx, "TEAM-001")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if record.Name != "Platform" {
		t.Errorf("expected name Platform, got %s", record.Name)
	}
	if record.LiveTeamID != "" {
		t.Errorf("expected unlinked team, got live team %s", record.LiveTeamID)
	}

	_, err = repo.GetByID(ctx, "TEAM-999")
	if !errors.Is(err, secondary.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestTeamRepository_ListByArrangement_SortOrder(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlite.NewTeamRepository(database)

	seedProject(t, database, "PROJ-001", "")
	seedArrangement(t, database, "ARR-001", "PROJ-001", "", false)
	seedArrangement(t, database, "ARR-002", "PROJ-001", "", false)
	seedTeam(t, database, "TEAM-001", "ARR-001", "Second", 2)
	seedTeam(t, database, "TEAM-002", "ARR-001", "First", 1)
	seedTeam(t, database, "TEAM-003", "ARR-002", "Other", 1)

	teams, err := repo.ListByArrangement(context.Background(), "ARR-001")
	if err != nil {
		t.Fatalf("ListByArrangement failed: %v", err)
	}

	if len(teams) != 2 {
		t.Fatalf("expected 2 teams, got %d", len(teams))
	}
	if teams[0].Name != "First" || teams[1].Name != "Second" {
		t.Errorf("teams not in sort order: %s, %s", teams[0].Name, teams[1].Name)
	}
}

func TestTeamRepository_Rename(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlite.NewTeamRepository(database)
	ctx := context.Background()

	seedProject(t, database, "PROJ-001", "")
	seedArrangement(t, database, "ARR-001", "PROJ-001", "", false)
	seedTeam(t, database, "TEAM-001", "ARR-001", "Platform", 1)

	if err := repo.Rename(ctx, "TEAM-001", "Infra"); err != nil {
		t.Fatalf("Rename failed: %v", err)
	}

	record, err := repo.GetByID(ctx, "TEAM-001")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if record.Name != "Infra" {
		t.Errorf("expected renamed team Infra, got %s", record.Name)
	}

	err = repo.Rename(ctx, "TEAM-999", "Ghost")
	if !errors.Is(err, secondary.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestTeamRepository_Delete_CascadesAssignments(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlite.NewTeamRepository(database)
	ctx := context.Background()

	seedProject(t, database, "PROJ-001", "")
	seedRosterMember(t, database, "RM-001", "PROJ-001", "alice")
	seedArrangement(t, database, "ARR-001", "PROJ-001", "", false)
	seedTeam(t, database, "TEAM-001", "ARR-001", "Platform", 1)
	seedTeam(t, database, "TEAM-002", "ARR-001", "Product", 2)
	seedAssignment(t, database, "ASGN-001", "TEAM-001", "RM-001")

	if err := repo.Delete(ctx, "TEAM-001"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if n := countRows(t, database, "SELECT COUNT(*) FROM arrangement_teams"); n != 1 {
		t.Errorf("expected 1 surviving team, got %d", n)
	}
	if n := countRows(t, database, "SELECT COUNT(*) FROM arrangement_assignments"); n != 0 {
		t.Errorf("expected assignments cascaded, got %d rows", n)
	}

	err := repo.Delete(ctx, "TEAM-999")
	if !errors.Is(err, secondary.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
