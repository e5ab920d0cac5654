package cli

import (
	"context"
	"fmt"

	"github.com/avelise/scopeflow/internal/cli/formatter"
	"github.com/avelise/scopeflow/internal/domain"
	"github.com/spf13/cobra"
)

func newUpdatesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "updates",
		Short: "Log and browse milestone updates",
	}

	cmd.AddCommand(
		newUpdatesLogCmd(app),
		newUpdatesListCmd(app),
	)

	return cmd
}

func newUpdatesLogCmd(app *App) *cobra.Command {
	typ := newEnumFlag("note", "progress", "blocker", "completed", "note")

	cmd := &cobra.Command{
		Use:   "log PROJECT MILESTONE CONTENT",
		Short: "Log an update against a milestone",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := loadMilestone(ctx, app, args[0], args[1]); err != nil {
				return err
			}
			upd, err := app.Milestones.LogUpdate(ctx, domain.UpdateType(typ.String()), args[2])
			if err != nil {
				return err
			}
			if upd != nil {
				fmt.Printf("%s %s\n", formatter.UpdateTypeBadge(upd.UpdateType), upd.Content)
			}
			return nil
		},
	}

	cmd.Flags().Var(typ, "type", "Update type (progress|blocker|completed|note)")

	return cmd
}

func newUpdatesListCmd(app *App) *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "list PROJECT",
		Short: "Show a project's activity feed, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			feed, err := app.Projects.Updates(ctx, id, page)
			if err != nil {
				return err
			}
			if len(feed.Updates) == 0 {
				fmt.Println("No updates.")
				return nil
			}
			fmt.Print(formatter.FormatUpdates(feed.Updates))
			if feed.Total > len(feed.Updates) {
				fmt.Println(formatter.Dim(fmt.Sprintf("%d of %d updates", len(feed.Updates), feed.Total)))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Feed page")

	return cmd
}
