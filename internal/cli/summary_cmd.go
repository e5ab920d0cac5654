package cli

import (
	"context"
	"fmt"

	"github.com/avelise/scopeflow/internal/cli/formatter"
	"github.com/avelise/scopeflow/internal/domain"
	"github.com/spf13/cobra"
)

func newSummaryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Generate and browse weekly project summaries",
	}

	cmd.AddCommand(
		newSummaryGenerateCmd(app),
		newSummaryListCmd(app),
	)

	return cmd
}

func newSummaryGenerateCmd(app *App) *cobra.Command {
	tone := newEnumFlag("technical", "technical", "executive")

	cmd := &cobra.Command{
		Use:   "generate PROJECT",
		Short: "Generate a summary of the current week's activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			s, err := app.Summaries.Generate(ctx, id, domain.SummaryTone(tone.String()))
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatSummaries([]domain.Summary{*s}))
			return nil
		},
	}

	cmd.Flags().Var(tone, "tone", "Summary tone (technical|executive)")

	return cmd
}

func newSummaryListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list PROJECT",
		Short: "List past summaries, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			sums, err := app.Summaries.List(ctx, id)
			if err != nil {
				return err
			}
			if len(sums) == 0 {
				fmt.Println("No summaries yet.")
				return nil
			}
			fmt.Println(formatter.FormatSummaries(sums))
			return nil
		},
	}
}
