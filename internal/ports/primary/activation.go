package primary

import "context"

// ActivationService defines the primary port for promotion: turning a draft
// arrangement into the canonical live structure.
type ActivationService interface {
	// Activate promotes the arrangement. All-or-nothing: on failure the
	// live structure and every arrangement flag are left untouched.
	Activate(ctx context.Context, arrangementID string) error

	// EnsureActiveArrangement guarantees a project with live teams has
	// exactly one active arrangement, synthesizing one from the live
	// structure when none exists. Idempotent under concurrent invocation.
	EnsureActiveArrangement(ctx context.Context, projectID string) error
}
