package primary

import "context"

// SyncBridge defines the primary port through which roster mutations are
// reflected into the active arrangement. The bridge resolves which
// arrangement is active itself; callers never pass an arrangement id.
//
// The bridge is advisory consistency, not a source of truth: when the project
// has no active arrangement every hook is a silent no-op. Non-active
// arrangements are never touched - they are frozen what-if snapshots and may
// keep referencing departed members.
type SyncBridge interface {
	// OnMemberAdded runs after a member joins the project's roster. The
	// member starts unassigned; the bridge only clears anything stale that
	// still points at them in the active arrangement.
	OnMemberAdded(ctx context.Context, projectID, rosterMemberID string) error

	// OnMemberRemoved runs after a member rolls off the project. Removes
	// the member's assignment from the active arrangement, if any.
	OnMemberRemoved(ctx context.Context, projectID, rosterMemberID string) error

	// OnMemberReassigned runs after a member is moved between live teams
	// through the ordinary roster UI. Relocates the member's assignment to
	// the arrangement team mirroring liveTeamID; if the active arrangement
	// has no such team, the stale assignment is removed instead.
	OnMemberReassigned(ctx context.Context, projectID, rosterMemberID, liveTeamID string) error
}
