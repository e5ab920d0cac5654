package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/avelise/scopeflow/internal/cli/formatter"
	"github.com/avelise/scopeflow/internal/service"
	"github.com/spf13/cobra"
)

func newSearchCmd(app *App) *cobra.Command {
	var recent int

	cmd := &cobra.Command{
		Use:   "search [QUERY]",
		Short: "Search projects, milestones and updates",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if len(args) == 0 {
				entries, err := app.Search.Recent(ctx, recent)
				if err != nil {
					return err
				}
				if len(entries) == 0 {
					fmt.Println("No recent searches.")
					return nil
				}
				rows := make([][]string, 0, len(entries))
				for _, e := range entries {
					rows = append(rows, []string{
						e.Query,
						strconv.Itoa(e.ResultCount),
						formatter.Dim(e.SearchedAt.Format("2006-01-02 15:04")),
					})
				}
				fmt.Println(formatter.RenderTable([]string{"Query", "Hits", "When"}, rows))
				return nil
			}

			set, err := app.Search.Search(ctx, args[0])
			if errors.Is(err, service.ErrEmptyQuery) {
				fmt.Println(formatter.Dim("Query too short; use at least 3 characters."))
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatSearchResults(set.Results))
			return nil
		},
	}

	cmd.Flags().IntVar(&recent, "recent", 10, "How many recent searches to show when no query is given")

	return cmd
}
