package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/crewdeck/internal/ports/primary"
	"github.com/example/crewdeck/internal/wire"
)

var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "Manage a project's roster (who is on the project)",
	Long: `Roster mutations go through the ordinary people flow. Removing or
reassigning a member updates the live structure and the active arrangement
in the same call; draft arrangements are never touched.`,
}

var rosterAddCmd = &cobra.Command{
	Use:   "add [project-id] [person-id]",
	Short: "Add a person to the project's roster",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		role, _ := cmd.Flags().GetString("role")
		title, _ := cmd.Flags().GetString("title")
		department, _ := cmd.Flags().GetString("department")

		member, err := wire.RosterService().AddMember(ctx, primary.AddMemberRequest{
			ProjectID:  args[0],
			PersonID:   args[1],
			Role:       role,
			Title:      title,
			Department: department,
		})
		if err != nil {
			return fmt.Errorf("failed to add roster member: %w", err)
		}

		fmt.Printf("✓ Added %s to project %s as %s\n", member.PersonID, member.ProjectID, member.ID)
		return nil
	},
}

var rosterRemoveCmd = &cobra.Command{
	Use:   "remove [roster-member-id]",
	Short: "Roll a member off the project (soft delete)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if err := wire.RosterService().RemoveMember(ctx, args[0]); err != nil {
			return fmt.Errorf("failed to remove roster member: %w", err)
		}

		fmt.Printf("✓ Removed %s from the roster\n", args[0])
		return nil
	},
}

var rosterReassignCmd = &cobra.Command{
	Use:   "reassign [roster-member-id] [live-team-id]",
	Short: "Move a member to another live team",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if err := wire.RosterService().ReassignMember(ctx, args[0], args[1]); err != nil {
			return fmt.Errorf("failed to reassign roster member: %w", err)
		}

		fmt.Printf("✓ Reassigned %s to live team %s\n", args[0], args[1])
		return nil
	},
}

var rosterListCmd = &cobra.Command{
	Use:   "list [project-id]",
	Short: "List the project's roster",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		includeLeft, _ := cmd.Flags().GetBool("all")

		members, err := wire.RosterService().ListMembers(ctx, args[0], includeLeft)
		if err != nil {
			return fmt.Errorf("failed to list roster members: %w", err)
		}

		if len(members) == 0 {
			fmt.Println("No roster members found")
			return nil
		}

		fmt.Printf("Found %d member(s):\n\n", len(members))
		for _, member := range members {
			line := fmt.Sprintf("%-10s %s", member.ID, member.PersonID)
			if member.Title != "" {
				line += fmt.Sprintf(" - %s", member.Title)
			}
			if member.LeftAt != "" {
				line += " " + color.New(color.FgYellow).Sprintf("(left %s)", member.LeftAt)
			}
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	rosterAddCmd.Flags().StringP("role", "r", "", "Member role")
	rosterAddCmd.Flags().StringP("title", "t", "", "Member title")
	rosterAddCmd.Flags().StringP("department", "d", "", "Member department")
	rosterListCmd.Flags().BoolP("all", "a", false, "Include members who have left")

	rosterCmd.AddCommand(rosterAddCmd)
	rosterCmd.AddCommand(rosterRemoveCmd)
	rosterCmd.AddCommand(rosterReassignCmd)
	rosterCmd.AddCommand(rosterListCmd)
}

// RosterCmd returns the roster command
func RosterCmd() *cobra.Command {
	return rosterCmd
}
