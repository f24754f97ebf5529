package secondary

import "errors"

// Sentinel errors shared by all repository implementations. Repositories wrap
// these with context (entity kind and id) so callers can classify with
// errors.Is while still seeing a useful message.
var (
	// ErrNotFound indicates the requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a write was rejected by a consistency rule,
	// e.g. assigning a member already placed in another team.
	ErrConflict = errors.New("conflict")

	// ErrNoActiveArrangement indicates a project currently has no active
	// arrangement. Normal for new projects; callers decide whether it matters.
	ErrNoActiveArrangement = errors.New("no active arrangement")
)
