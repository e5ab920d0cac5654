package cli

import (
	"context"
	"fmt"

	"github.com/avelise/scopeflow/internal/api"
	"github.com/avelise/scopeflow/internal/cli/formatter"
	"github.com/avelise/scopeflow/internal/domain"
	"github.com/spf13/cobra"
)

func newTeamCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Manage a project's team members",
	}

	cmd.AddCommand(
		newTeamListCmd(app),
		newTeamAddCmd(app),
		newTeamRenameCmd(app),
		newTeamRemoveCmd(app),
	)

	return cmd
}

func newTeamListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list PROJECT",
		Short: "List a project's team members",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			members, err := app.Team.List(ctx, id)
			if err != nil {
				return err
			}
			if len(members) == 0 {
				fmt.Println("No team members.")
				return nil
			}
			rows := make([][]string, 0, len(members))
			for _, m := range members {
				rows = append(rows, []string{
					formatter.AvatarSwatch(domain.MemberAvatar{ID: m.ID, Name: m.Name, AvatarColor: m.AvatarColor}),
					m.Name,
					formatter.Dim(m.Role),
					formatter.TruncID(m.ID),
				})
			}
			fmt.Println(formatter.RenderTable([]string{"", "Name", "Role", "ID"}, rows))
			return nil
		},
	}
}

func newTeamAddCmd(app *App) *cobra.Command {
	var role, color string

	cmd := &cobra.Command{
		Use:   "add PROJECT NAME",
		Short: "Add a team member",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			m := app.Team.Add(ctx, id, api.TeamMemberInput{
				Name: args[1], Role: role, AvatarColor: color,
			})
			if m == nil {
				return fmt.Errorf("could not add %q", args[1])
			}
			fmt.Printf("Added %s %s\n",
				formatter.AvatarSwatch(domain.MemberAvatar{ID: m.ID, Name: m.Name, AvatarColor: m.AvatarColor}), m.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", "", "Member role (e.g. engineer, designer)")
	cmd.Flags().StringVar(&color, "color", "", "Avatar hex color; picked from a palette when empty")
	_ = cmd.MarkFlagRequired("role")

	return cmd
}

func newTeamRenameCmd(app *App) *cobra.Command {
	var name, role string

	cmd := &cobra.Command{
		Use:   "rename MEMBER_ID",
		Short: "Change a member's name or role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" && role == "" {
				return fmt.Errorf("pass --name or --role")
			}
			m := app.Team.Rename(context.Background(), args[0], name, role)
			if m == nil {
				return fmt.Errorf("could not update member %s", args[0])
			}
			fmt.Printf("%s · %s\n", m.Name, formatter.Dim(m.Role))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&role, "role", "", "New role")

	return cmd
}

func newTeamRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove MEMBER_ID",
		Short: "Remove a team member and unassign their milestones",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			confirmed, err := confirmDestructive(app, yes,
				fmt.Sprintf("Remove member %s? Their milestones become unassigned.", args[0]))
			if err != nil {
				return err
			}
			if !confirmed {
				fmt.Println("Aborted.")
				return nil
			}
			if err := app.Team.Remove(context.Background(), args[0], true); err != nil {
				return err
			}
			fmt.Println("Removed.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")

	return cmd
}
