package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/crewdeck/internal/ports/primary"
	"github.com/example/crewdeck/internal/wire"
)

var arrangementCmd = &cobra.Command{
	Use:     "arrangement",
	Aliases: []string{"arr"},
	Short:   "Manage team arrangements (drafts of a project's team structure)",
	Long: `Arrangements are versioned drafts of a project's team structure.
Exactly one arrangement per project can be active: the one mirroring the
live structure. Activating a draft replaces the live structure atomically.`,
}

var arrangementListCmd = &cobra.Command{
	Use:   "list [project-id]",
	Short: "List a project's arrangements with teams and member counts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		summaries, err := wire.ArrangementService().GetByProjectID(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to list arrangements: %w", err)
		}

		if len(summaries) == 0 {
			fmt.Println("No arrangements found")
			return nil
		}

		fmt.Printf("Found %d arrangement(s):\n\n", len(summaries))
		for _, summary := range summaries {
			marker := " "
			if summary.IsActive {
				marker = color.New(color.FgGreen).Sprint("●")
			}
			fmt.Printf("%s %-10s %s (%d team(s))\n", marker, summary.ID, summary.Name, len(summary.Teams))
			for _, team := range summary.Teams {
				fmt.Printf("    %-10s %-20s %d member(s)\n", team.ID, team.Name, team.AssignmentCount)
			}
		}
		return nil
	},
}

var arrangementShowCmd = &cobra.Command{
	Use:   "show [arrangement-id]",
	Short: "Show an arrangement with full teams and members",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		detail, err := wire.ArrangementService().GetByID(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to get arrangement: %w", err)
		}

		status := "draft"
		if detail.IsActive {
			status = color.New(color.FgGreen).Sprint("active")
		}
		fmt.Printf("Arrangement: %s (%s) [%s]\n", detail.Name, detail.ID, status)
		fmt.Printf("Project: %s\n", detail.ProjectID)

		for _, team := range detail.Teams {
			fmt.Printf("\n  %s (%s)", team.Name, team.ID)
			if team.LiveTeamID != "" {
				fmt.Printf(" -> %s", team.LiveTeamID)
			}
			fmt.Println()
			if len(team.Members) == 0 {
				fmt.Println("    (empty)")
				continue
			}
			for _, member := range team.Members {
				line := fmt.Sprintf("    %-10s %s", member.RosterMemberID, member.PersonID)
				if member.Title != "" {
					line += fmt.Sprintf(" - %s", member.Title)
				}
				if member.Departed {
					line += " " + color.New(color.FgYellow).Sprint("(departed)")
				}
				fmt.Println(line)
			}
		}
		return nil
	},
}

var arrangementCreateCmd = &cobra.Command{
	Use:   "create [project-id] [name]",
	Short: "Create an empty arrangement",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		arrangement, err := wire.ArrangementService().Create(ctx, primary.CreateArrangementRequest{
			ProjectID: args[0],
			Name:      args[1],
		})
		if err != nil {
			return fmt.Errorf("failed to create arrangement: %w", err)
		}

		fmt.Printf("✓ Created arrangement %s: %s\n", arrangement.ID, arrangement.Name)
		return nil
	},
}

var arrangementCloneCmd = &cobra.Command{
	Use:   "clone [source-arrangement-id] [name]",
	Short: "Create an arrangement by deep-copying an existing one",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		arrangement, err := wire.ArrangementService().Clone(ctx, primary.CloneArrangementRequest{
			SourceArrangementID: args[0],
			Name:                args[1],
		})
		if err != nil {
			return fmt.Errorf("failed to clone arrangement: %w", err)
		}

		fmt.Printf("✓ Cloned %s into %s: %s\n", args[0], arrangement.ID, arrangement.Name)
		return nil
	},
}

var arrangementImportCmd = &cobra.Command{
	Use:   "import [project-id] [name]",
	Short: "Create an arrangement from the project's current live structure",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		arrangement, err := wire.ArrangementService().CloneFromLive(ctx, primary.CloneFromLiveRequest{
			ProjectID: args[0],
			Name:      args[1],
		})
		if err != nil {
			return fmt.Errorf("failed to import live structure: %w", err)
		}

		fmt.Printf("✓ Imported live structure into %s: %s\n", arrangement.ID, arrangement.Name)
		return nil
	},
}

var arrangementActivateCmd = &cobra.Command{
	Use:   "activate [arrangement-id]",
	Short: "Promote an arrangement to the live structure",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if err := wire.ActivationService().Activate(ctx, args[0]); err != nil {
			return fmt.Errorf("failed to activate arrangement: %w", err)
		}

		fmt.Printf("✓ Activated arrangement %s - live structure replaced\n", args[0])
		return nil
	},
}

var arrangementEnsureCmd = &cobra.Command{
	Use:   "ensure-active [project-id]",
	Short: "Ensure a project with live teams has an active arrangement",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if err := wire.ActivationService().EnsureActiveArrangement(ctx, args[0]); err != nil {
			return fmt.Errorf("failed to ensure active arrangement: %w", err)
		}

		fmt.Printf("✓ Project %s has an active arrangement (if it has live teams)\n", args[0])
		return nil
	},
}

var arrangementDeleteCmd = &cobra.Command{
	Use:   "delete [arrangement-id]",
	Short: "Delete an arrangement and everything it owns",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if err := wire.ArrangementService().Delete(ctx, args[0]); err != nil {
			return fmt.Errorf("failed to delete arrangement: %w", err)
		}

		fmt.Printf("✓ Deleted arrangement %s\n", args[0])
		return nil
	},
}

func init() {
	arrangementCmd.AddCommand(arrangementListCmd)
	arrangementCmd.AddCommand(arrangementShowCmd)
	arrangementCmd.AddCommand(arrangementCreateCmd)
	arrangementCmd.AddCommand(arrangementCloneCmd)
	arrangementCmd.AddCommand(arrangementImportCmd)
	arrangementCmd.AddCommand(arrangementActivateCmd)
	arrangementCmd.AddCommand(arrangementEnsureCmd)
	arrangementCmd.AddCommand(arrangementDeleteCmd)
}

// ArrangementCmd returns the arrangement command
func ArrangementCmd() *cobra.Command {
	return arrangementCmd
}
