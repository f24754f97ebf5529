// Package wire provides dependency injection for the crewdeck application.
// It creates singleton services with lazy initialization.
package wire

import (
	"log"
	"sync"

	"github.com/example/crewdeck/internal/adapters/sqlite"
	"github.com/example/crewdeck/internal/app"
	"github.com/example/crewdeck/internal/db"
	"github.com/example/crewdeck/internal/ports/primary"
)

var (
	projectService     primary.ProjectService
	arrangementService primary.ArrangementService
	draftService       primary.DraftService
	activationService  primary.ActivationService
	rosterService      primary.RosterService
	once               sync.Once
)

// ProjectService returns the singleton ProjectService instance.
func ProjectService() primary.ProjectService {
	once.Do(initServices)
	return projectService
}

// ArrangementService returns the singleton ArrangementService instance.
func ArrangementService() primary.ArrangementService {
	once.Do(initServices)
	return arrangementService
}

// DraftService returns the singleton DraftService instance.
func DraftService() primary.DraftService {
	once.Do(initServices)
	return draftService
}

// ActivationService returns the singleton ActivationService instance.
func ActivationService() primary.ActivationService {
	once.Do(initServices)
	return activationService
}

// RosterService returns the singleton RosterService instance.
func RosterService() primary.RosterService {
	once.Do(initServices)
	return rosterService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Repository adapters (secondary ports) with injected DB
	projectRepo := sqlite.NewProjectRepository(database)
	rosterRepo := sqlite.NewRosterRepository(database)
	liveRepo := sqlite.NewLiveRepository(database)
	arrangementRepo := sqlite.NewArrangementRepository(database)
	teamRepo := sqlite.NewTeamRepository(database)
	assignmentRepo := sqlite.NewAssignmentRepository(database)

	// Services (primary ports implementation). The sync bridge hooks into
	// roster mutations synchronously.
	bridge := app.NewSyncBridge(arrangementRepo, teamRepo, assignmentRepo)

	projectService = app.NewProjectService(projectRepo)
	arrangementService = app.NewArrangementService(arrangementRepo, teamRepo, assignmentRepo, rosterRepo)
	draftService = app.NewDraftService(teamRepo, assignmentRepo, rosterRepo)
	activationService = app.NewActivationService(arrangementRepo)
	rosterService = app.NewRosterService(rosterRepo, liveRepo, bridge)
}
