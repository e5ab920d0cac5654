package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/avelise/scopeflow/internal/api"
	"github.com/avelise/scopeflow/internal/cli/formatter"
	"github.com/avelise/scopeflow/internal/domain"
	"github.com/avelise/scopeflow/internal/service"
	"github.com/spf13/cobra"
)

// loadMilestone resolves a milestone reference inside a project and adopts
// it into the milestone manager. The reference is an ID, an ID prefix or a
// 1-based position.
func loadMilestone(ctx context.Context, app *App, projectRef, ref string) (*domain.Milestone, error) {
	projectID, err := resolveProjectID(ctx, app, projectRef)
	if err != nil {
		return nil, err
	}
	p, err := app.Projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	var id string
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(p.Milestones) {
		id = p.Milestones[n-1].ID
	} else {
		for _, m := range p.Milestones {
			if m.ID == ref || (len(ref) >= 4 && len(m.ID) >= len(ref) && m.ID[:len(ref)] == ref) {
				if id != "" {
					return nil, fmt.Errorf("milestone reference %q is ambiguous", ref)
				}
				id = m.ID
			}
		}
	}
	if id == "" {
		return nil, fmt.Errorf("milestone not found: %q", ref)
	}

	return app.Milestones.Load(ctx, id)
}

func newMilestonesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "milestones",
		Short: "Work with a project's milestones",
	}

	cmd.AddCommand(
		newMilestonesListCmd(app),
		newMilestonesShowCmd(app),
		newMilestonesAddCmd(app),
		newMilestonesStatusCmd(app),
		newMilestonesProgressCmd(app),
		newMilestonesAssignCmd(app),
		newMilestonesRenameCmd(app),
		newMilestonesReorderCmd(app),
		newMilestonesDeleteCmd(app),
	)

	return cmd
}

func newMilestonesListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list PROJECT",
		Short: "List a project's milestones in order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Projects.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if len(p.Milestones) == 0 {
				fmt.Println("No milestones.")
				return nil
			}
			fmt.Println(formatter.FormatMilestoneRows(p.Milestones, p.TeamMembers))
			return nil
		},
	}
}

func newMilestonesShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show PROJECT MILESTONE",
		Short: "Show one milestone with stories and updates",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadMilestone(context.Background(), app, args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatMilestone(m))
			return nil
		},
	}
}

func newMilestonesAddCmd(app *App) *cobra.Command {
	var name, due, description string

	cmd := &cobra.Command{
		Use:   "add PROJECT",
		Short: "Add a milestone to a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := validateDate(due); err != nil {
				return fmt.Errorf("invalid due date %q: %w", due, err)
			}
			m, err := app.Projects.CreateMilestone(ctx, id, api.CreateMilestoneInput{
				Name: name, DueDate: due, Description: description,
			})
			if err != nil {
				return err
			}
			if m != nil {
				fmt.Printf("Added milestone %s at position %d\n", m.Name, m.OrderIndex+1)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Milestone name")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&description, "description", "", "Milestone description")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("due")

	return cmd
}

func newMilestonesStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status PROJECT MILESTONE STATUS",
		Short: "Change a milestone's status (not_started|in_progress|completed|blocked)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := loadMilestone(ctx, app, args[0], args[1]); err != nil {
				return err
			}
			if err := app.Milestones.SetStatus(ctx, domain.MilestoneStatus(args[2])); err != nil {
				return err
			}
			m := app.Milestones.Milestone()
			fmt.Printf("%s → %s\n", m.Name, m.Status)
			return nil
		},
	}
}

func newMilestonesProgressCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "progress PROJECT MILESTONE PERCENT",
		Short: "Set a milestone's progress (0-100)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			percent, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid percent %q", args[2])
			}
			if _, err := loadMilestone(ctx, app, args[0], args[1]); err != nil {
				return err
			}
			if err := app.Milestones.SetProgress(ctx, percent); err != nil {
				return err
			}
			m := app.Milestones.Milestone()
			fmt.Printf("%s %s\n", m.Name, formatter.RenderProgress(m.ProgressPercent, 12))
			return nil
		},
	}
}

func newMilestonesAssignCmd(app *App) *cobra.Command {
	var clear bool

	cmd := &cobra.Command{
		Use:   "assign PROJECT MILESTONE [MEMBER_ID]",
		Short: "Assign a milestone to a team member",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := loadMilestone(ctx, app, args[0], args[1]); err != nil {
				return err
			}
			memberID := ""
			if len(args) == 3 {
				memberID = args[2]
			}
			if memberID == "" && !clear {
				return fmt.Errorf("pass a member ID, or --clear to unassign")
			}
			if err := app.Milestones.SetAssignee(ctx, memberID); err != nil {
				return err
			}
			if memberID == "" {
				fmt.Println("Unassigned.")
			} else {
				fmt.Println("Assigned.")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&clear, "clear", false, "Remove the current assignee")

	return cmd
}

func newMilestonesRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename PROJECT MILESTONE NAME",
		Short: "Rename a milestone",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := loadMilestone(ctx, app, args[0], args[1]); err != nil {
				return err
			}
			if err := app.Milestones.Rename(ctx, args[2]); err != nil {
				return err
			}
			fmt.Printf("Renamed to %s\n", app.Milestones.Milestone().Name)
			return nil
		},
	}
}

func newMilestonesReorderCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reorder PROJECT FROM TO",
		Short: "Move a milestone from one position to another (1-based)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Projects.GetByID(ctx, id)
			if err != nil {
				return err
			}
			src, err1 := strconv.Atoi(args[1])
			dst, err2 := strconv.Atoi(args[2])
			if err1 != nil || err2 != nil {
				return fmt.Errorf("positions must be numbers")
			}
			done, ok := service.ReorderMilestones(app.Reorder, app.Client, app.Cache, p, src-1, dst-1)
			if !ok {
				return fmt.Errorf("positions out of range (1-%d)", len(p.Milestones))
			}
			<-done
			fmt.Println(formatter.FormatMilestoneRows(p.Milestones, p.TeamMembers))
			return nil
		},
	}
}

func newMilestonesDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete PROJECT MILESTONE",
		Short: "Delete a milestone and its updates",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			m, err := loadMilestone(ctx, app, args[0], args[1])
			if err != nil {
				return err
			}
			confirmed, err := confirmDestructive(app, yes,
				fmt.Sprintf("Delete milestone %q? Its updates go with it.", m.Name))
			if err != nil {
				return err
			}
			if !confirmed {
				fmt.Println("Aborted.")
				return nil
			}
			if err := app.Milestones.Delete(ctx, true); err != nil {
				return err
			}
			fmt.Printf("Deleted milestone %s\n", m.Name)
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")

	return cmd
}
