package cli

import (
	"context"
	"fmt"

	"github.com/avelise/scopeflow/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newNotificationsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "notifications PROJECT",
		Short: "Show overdue, due-soon and blocker alerts for a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			ns, err := app.Projects.Notifications(ctx, id)
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatNotifications(ns))
			return nil
		},
	}
}
