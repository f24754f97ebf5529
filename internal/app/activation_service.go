package app

import (
	"context"
	"fmt"

	"github.com/example/crewdeck/internal/ports/primary"
	"github.com/example/crewdeck/internal/ports/secondary"
)

// ActivationServiceImpl implements the ActivationService interface. The
// promotion itself lives in the repository as one transaction; this layer
// keeps the port surface and the error contract.
type ActivationServiceImpl struct {
	arrangementRepo secondary.ArrangementRepository
}

// NewActivationService creates a new ActivationService with injected dependencies.
func NewActivationService(arrangementRepo secondary.ArrangementRepository) *ActivationServiceImpl {
	return &ActivationServiceImpl{arrangementRepo: arrangementRepo}
}

// Activate promotes the arrangement to the live structure. All-or-nothing:
// a failure mid-way rolls the whole promotion back, including the flag flips.
func (s *ActivationServiceImpl) Activate(ctx context.Context, arrangementID string) error {
	if err := s.arrangementRepo.Activate(ctx, arrangementID); err != nil {
		return fmt.Errorf("failed to activate arrangement: %w", err)
	}
	return nil
}

// EnsureActiveArrangement guarantees a project with live teams has exactly
// one active arrangement. A true no-op once any arrangement is active; drift
// between the live structure and the active arrangement is corrected
// incrementally by the sync bridge, not by refreshing here.
func (s *ActivationServiceImpl) EnsureActiveArrangement(ctx context.Context, projectID string) error {
	if err := s.arrangementRepo.EnsureActive(ctx, projectID); err != nil {
		return fmt.Errorf("failed to ensure active arrangement: %w", err)
	}
	return nil
}

// Ensure ActivationServiceImpl implements the interface
var _ primary.ActivationService = (*ActivationServiceImpl)(nil)
