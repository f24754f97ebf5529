// Package arrangement contains the pure business logic for arrangement
// operations. Guards are pure functions that evaluate preconditions without
// side effects.
package arrangement

import (
	"fmt"
	"strings"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// CanCreateArrangement evaluates whether an arrangement can be created.
// Rules:
// - Name must be non-empty
func CanCreateArrangement(name string) GuardResult {
	if strings.TrimSpace(name) == "" {
		return GuardResult{
			Allowed: false,
			Reason:  "arrangement name must not be empty",
		}
	}
	return GuardResult{Allowed: true}
}

// CanAddTeam evaluates whether a team can be added to an arrangement.
// Rules:
// - Team name must be non-empty
func CanAddTeam(name string) GuardResult {
	if strings.TrimSpace(name) == "" {
		return GuardResult{
			Allowed: false,
			Reason:  "team name must not be empty",
		}
	}
	return GuardResult{Allowed: true}
}

// CanRenameTeam evaluates whether a team can be renamed.
// Same rule as CanAddTeam; kept separate so the two operations can diverge.
func CanRenameTeam(name string) GuardResult {
	if strings.TrimSpace(name) == "" {
		return GuardResult{
			Allowed: false,
			Reason:  "team name must not be empty",
		}
	}
	return GuardResult{Allowed: true}
}

// AssignMemberContext provides context for assignment guards.
type AssignMemberContext struct {
	RosterMemberID string
	TargetTeamID   string
	// CurrentTeamID is the team the member is already assigned to within
	// the same arrangement, empty if unassigned.
	CurrentTeamID string
}

// CanAssignMember evaluates whether a member can be assigned to a team.
// Rules:
//   - A member appears in at most one team per arrangement. Assigning a member
//     who is already placed elsewhere is rejected; moving is the sanctioned
//     path. Re-assigning to the same team is rejected too, so the caller gets
//     an explicit signal rather than a silent duplicate.
func CanAssignMember(ctx AssignMemberContext) GuardResult {
	if ctx.CurrentTeamID == "" {
		return GuardResult{Allowed: true}
	}

	if ctx.CurrentTeamID == ctx.TargetTeamID {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("member %s is already assigned to team %s", ctx.RosterMemberID, ctx.TargetTeamID),
		}
	}

	return GuardResult{
		Allowed: false,
		Reason:  fmt.Sprintf("member %s is already assigned to team %s in this arrangement - use move instead", ctx.RosterMemberID, ctx.CurrentTeamID),
	}
}

// MoveMemberContext provides context for move guards.
type MoveMemberContext struct {
	RosterMemberID  string
	FromTeamID      string
	ToTeamID        string
	SameArrangement bool
}

// CanMoveMember evaluates whether a member can be moved between teams.
// Rules:
// - Source and destination must differ
// - Both teams must belong to the same arrangement
func CanMoveMember(ctx MoveMemberContext) GuardResult {
	if ctx.FromTeamID == ctx.ToTeamID {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("cannot move member %s: source and destination team are the same", ctx.RosterMemberID),
		}
	}

	if !ctx.SameArrangement {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("cannot move member %s: teams %s and %s belong to different arrangements", ctx.RosterMemberID, ctx.FromTeamID, ctx.ToTeamID),
		}
	}

	return GuardResult{Allowed: true}
}
