package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/avelise/scopeflow/internal/api"
	"github.com/avelise/scopeflow/internal/cli/formatter"
	"github.com/avelise/scopeflow/internal/domain"
	"github.com/spf13/cobra"
)

// resolveProjectID matches exact IDs first, then unambiguous prefixes.
func resolveProjectID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("project ID is required")
	}

	cards, err := app.Projects.List(ctx)
	if err != nil {
		return "", err
	}

	for _, c := range cards {
		if c.ID == input {
			return c.ID, nil
		}
	}

	var matches []string
	for _, c := range cards {
		if strings.HasPrefix(c.ID, input) {
			matches = append(matches, c.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("project not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("project ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

func newProjectsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Manage tracked projects",
	}

	cmd.AddCommand(
		newProjectsListCmd(app),
		newProjectsShowCmd(app),
		newProjectsStatusCmd(app),
		newProjectsDeleteCmd(app),
	)

	return cmd
}

func newProjectsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects with rollup progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			cards, err := app.Projects.List(ctx)
			if errors.Is(err, api.ErrUnavailable) {
				stale, fetchedAt, snapErr := app.Cache.LastKnownProjects(ctx)
				if snapErr != nil {
					return err
				}
				fmt.Println(formatter.Dim(fmt.Sprintf("Server unreachable. Showing data from %s.",
					fetchedAt.Local().Format("2006-01-02 15:04"))))
				cards = stale
			} else if err != nil {
				return err
			}
			if len(cards) == 0 {
				fmt.Println("No projects yet. Convert a scope with 'scopeflow scopes convert'.")
				return nil
			}
			fmt.Println(formatter.FormatProjectCards(cards))
			return nil
		},
	}
}

func newProjectsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a project with its milestones and team",
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
			fmt.Println(formatter.FormatProject(p))
			return nil
		},
	}
}

func newProjectsStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status ID STATUS",
		Short: "Change a project's status (active|on_hold|completed|archived)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			status := domain.ProjectStatus(args[1])
			if !domain.ValidProjectStatuses[status] {
				return fmt.Errorf("unknown status %q", args[1])
			}
			if p := app.Projects.SetStatus(ctx, id, status); p != nil {
				fmt.Printf("Project %s is now %s\n", p.Name, p.Status)
			}
			return nil
		},
	}
}

func newProjectsDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a project and everything under it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			confirmed, err := confirmDestructive(app, yes,
				"Delete this project and all its milestones? This cannot be undone.")
			if err != nil {
				return err
			}
			if !confirmed {
				fmt.Println("Aborted.")
				return nil
			}
			if err := app.Projects.Delete(ctx, id, true); err != nil {
				return err
			}
			fmt.Printf("Deleted project %s\n", id[:8])
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")

	return cmd
}
