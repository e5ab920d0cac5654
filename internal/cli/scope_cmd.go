package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/avelise/scopeflow/internal/api"
	"github.com/avelise/scopeflow/internal/cli/formatter"
	"github.com/spf13/cobra"
)

// resolveScopeID matches exact IDs first, then unambiguous prefixes.
func resolveScopeID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("scope ID is required")
	}

	scopes, err := app.Cache.Scopes().Await(ctx)
	if err != nil {
		return "", err
	}

	for _, s := range scopes {
		if s.ID == input {
			return s.ID, nil
		}
	}

	var matches []string
	for _, s := range scopes {
		if strings.HasPrefix(s.ID, input) {
			matches = append(matches, s.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("scope not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("scope ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

func newScopesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scopes",
		Short: "Manage saved scope drafts",
	}

	cmd.AddCommand(
		newScopesListCmd(app),
		newScopesShowCmd(app),
		newScopesEditCmd(app),
		newScopesSaveCmd(app),
		newScopesConvertCmd(app),
		newScopesArchiveCmd(app),
	)

	return cmd
}

func newScopesListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved scopes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			scopes, err := app.Cache.Scopes().Await(ctx)
			if errors.Is(err, api.ErrUnavailable) {
				stale, fetchedAt, snapErr := app.Cache.LastKnownScopes(ctx)
				if snapErr != nil {
					return err
				}
				fmt.Println(formatter.Dim(fmt.Sprintf("Server unreachable. Showing data from %s.",
					fetchedAt.Local().Format("2006-01-02 15:04"))))
				scopes = stale
			} else if err != nil {
				return err
			}
			if len(scopes) == 0 {
				fmt.Println("No scopes yet. Start with 'scopeflow generate'.")
				return nil
			}
			fmt.Println(formatter.FormatScopeList(scopes))
			return nil
		},
	}
}

func newScopesShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a scope breakdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveScopeID(ctx, app, args[0])
			if err != nil {
				return err
			}
			scope, err := app.Scopes.Load(ctx, id)
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatScope(scope))
			return nil
		},
	}
}

func newScopesEditCmd(app *App) *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "edit SCOPE_ID EPIC_ID",
		Short: "Edit an epic's name or description and save",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveScopeID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if _, err := app.Scopes.Load(ctx, id); err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				if err := app.Scopes.EditField(args[1], "name", name); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("description") {
				if err := app.Scopes.EditField(args[1], "description", description); err != nil {
					return err
				}
			}
			if !app.Scopes.HasEdits() {
				return fmt.Errorf("nothing to edit: pass --name and/or --description")
			}

			if err := app.Scopes.SaveEdits(ctx); err != nil {
				return err
			}
			fmt.Println("Saved epic edits.")
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New epic name")
	cmd.Flags().StringVar(&description, "description", "", "New epic description")

	return cmd
}

func newScopesSaveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "save ID",
		Short: "Save a scope as a draft for later",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveScopeID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if _, err := app.Scopes.Load(ctx, id); err != nil {
				return err
			}
			if err := app.Scopes.SaveDraft(ctx); err != nil {
				return err
			}
			fmt.Printf("Saved draft %s\n", id[:8])
			return nil
		},
	}
}

func newScopesConvertCmd(app *App) *cobra.Command {
	var start string

	cmd := &cobra.Command{
		Use:   "convert ID",
		Short: "Convert a scope into a tracked project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveScopeID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if start != "" {
				if err := validateDate(start); err != nil {
					return fmt.Errorf("invalid start date %q: %w", start, err)
				}
			}
			if _, err := app.Scopes.Load(ctx, id); err != nil {
				return err
			}
			projectID, err := app.Scopes.Convert(ctx, start)
			if err != nil {
				return err
			}
			fmt.Printf("Converted into project %s — one milestone per epic.\n", projectID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Project start date (YYYY-MM-DD, default today)")

	return cmd
}

func newScopesArchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "archive ID",
		Short: "Archive a draft scope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveScopeID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if _, err := app.Scopes.Load(ctx, id); err != nil {
				return err
			}
			if err := app.Scopes.Archive(ctx); err != nil {
				return err
			}
			fmt.Printf("Archived scope %s\n", id[:8])
			return nil
		},
	}
}
