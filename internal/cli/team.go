package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/crewdeck/internal/ports/primary"
	"github.com/example/crewdeck/internal/wire"
)

var teamCmd = &cobra.Command{
	Use:   "team",
	Short: "Manage teams and member assignments within a draft arrangement",
	Long: `Draft mutations: add, rename and delete teams, and assign, unassign
or move members. These never touch the live structure - promote the
arrangement with 'crewdeck arrangement activate' to make it live.`,
}

var teamAddCmd = &cobra.Command{
	Use:   "add [arrangement-id] [name]",
	Short: "Add a team to an arrangement",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		team, err := wire.DraftService().AddTeam(ctx, primary.AddTeamRequest{
			ArrangementID: args[0],
			Name:          args[1],
		})
		if err != nil {
			return fmt.Errorf("failed to add team: %w", err)
		}

		fmt.Printf("✓ Added team %s: %s (position %d)\n", team.ID, team.Name, team.SortOrder)
		return nil
	},
}

var teamRenameCmd = &cobra.Command{
	Use:   "rename [team-id] [name]",
	Short: "Rename a team",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if err := wire.DraftService().UpdateTeam(ctx, args[0], args[1]); err != nil {
			return fmt.Errorf("failed to rename team: %w", err)
		}

		fmt.Printf("✓ Renamed team %s to %s\n", args[0], args[1])
		return nil
	},
}

var teamDeleteCmd = &cobra.Command{
	Use:   "delete [team-id]",
	Short: "Delete a team and its assignments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if err := wire.DraftService().DeleteTeam(ctx, args[0]); err != nil {
			return fmt.Errorf("failed to delete team: %w", err)
		}

		fmt.Printf("✓ Deleted team %s\n", args[0])
		return nil
	},
}

var teamAssignCmd = &cobra.Command{
	Use:   "assign [team-id] [roster-member-id]",
	Short: "Assign a roster member to a team",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if err := wire.DraftService().AssignMember(ctx, args[0], args[1]); err != nil {
			return fmt.Errorf("failed to assign member: %w", err)
		}

		fmt.Printf("✓ Assigned %s to team %s\n", args[1], args[0])
		return nil
	},
}

var teamUnassignCmd = &cobra.Command{
	Use:   "unassign [team-id] [roster-member-id]",
	Short: "Remove a roster member from a team",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if err := wire.DraftService().UnassignMember(ctx, args[0], args[1]); err != nil {
			return fmt.Errorf("failed to unassign member: %w", err)
		}

		fmt.Printf("✓ Unassigned %s from team %s\n", args[1], args[0])
		return nil
	},
}

var teamMoveCmd = &cobra.Command{
	Use:   "move [roster-member-id] [from-team-id] [to-team-id]",
	Short: "Move a member between two teams of the same arrangement",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		err := wire.DraftService().MoveMember(ctx, primary.MoveMemberRequest{
			RosterMemberID: args[0],
			FromTeamID:     args[1],
			ToTeamID:       args[2],
		})
		if err != nil {
			return fmt.Errorf("failed to move member: %w", err)
		}

		fmt.Printf("✓ Moved %s from %s to %s\n", args[0], args[1], args[2])
		return nil
	},
}

func init() {
	teamCmd.AddCommand(teamAddCmd)
	teamCmd.AddCommand(teamRenameCmd)
	teamCmd.AddCommand(teamDeleteCmd)
	teamCmd.AddCommand(teamAssignCmd)
	teamCmd.AddCommand(teamUnassignCmd)
	teamCmd.AddCommand(teamMoveCmd)
}

// TeamCmd returns the team command
func TeamCmd() *cobra.Command {
	return teamCmd
}
