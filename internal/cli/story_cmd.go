package cli

import (
	"context"
	"fmt"

	"github.com/avelise/scopeflow/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newStoriesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stories",
		Short: "Work with a milestone's user stories",
	}

	cmd.AddCommand(
		newStoriesAddCmd(app),
		newStoriesToggleCmd(app),
		newStoriesRemoveCmd(app),
	)

	return cmd
}

// resolveStoryID matches a story reference against the loaded milestone's
// stories, by 1-based position or ID prefix.
func resolveStoryID(app *App, ref string) (string, error) {
	m := app.Milestones.Milestone()
	if m == nil {
		return "", fmt.Errorf("no milestone loaded")
	}
	for i, s := range m.UserStories {
		if fmt.Sprintf("%d", i+1) == ref || s.ID == ref {
			return s.ID, nil
		}
	}
	var id string
	for _, s := range m.UserStories {
		if len(ref) >= 4 && len(s.ID) >= len(ref) && s.ID[:len(ref)] == ref {
			if id != "" {
				return "", fmt.Errorf("story reference %q is ambiguous", ref)
			}
			id = s.ID
		}
	}
	if id == "" {
		return "", fmt.Errorf("story not found: %q", ref)
	}
	return id, nil
}

func newStoriesAddCmd(app *App) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "add PROJECT MILESTONE TITLE",
		Short: "Add a user story to a milestone",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := loadMilestone(ctx, app, args[0], args[1]); err != nil {
				return err
			}
			story, err := app.Milestones.AddUserStory(ctx, args[2], description)
			if err != nil {
				return err
			}
			if story != nil {
				fmt.Printf("Added story %s %s\n", formatter.TruncID(story.ID), story.Title)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Story description")

	return cmd
}

func newStoriesToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle PROJECT MILESTONE STORY",
		Short: "Flip a user story between done and not done",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := loadMilestone(ctx, app, args[0], args[1]); err != nil {
				return err
			}
			id, err := resolveStoryID(app, args[2])
			if err != nil {
				return err
			}
			if err := app.Milestones.ToggleUserStory(ctx, id); err != nil {
				return err
			}
			s := app.Milestones.Milestone().StoryByID(id)
			if s.IsCompleted {
				fmt.Printf("✔ %s\n", s.Title)
			} else {
				fmt.Printf("○ %s\n", s.Title)
			}
			return nil
		},
	}
}

func newStoriesRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove PROJECT MILESTONE STORY",
		Short: "Delete a user story",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := loadMilestone(ctx, app, args[0], args[1]); err != nil {
				return err
			}
			id, err := resolveStoryID(app, args[2])
			if err != nil {
				return err
			}
			title := app.Milestones.Milestone().StoryByID(id).Title
			confirmed, err := confirmDestructive(app, yes,
				fmt.Sprintf("Delete story %q?", title))
			if err != nil {
				return err
			}
			if !confirmed {
				fmt.Println("Aborted.")
				return nil
			}
			if err := app.Milestones.DeleteUserStory(ctx, id, true); err != nil {
				return err
			}
			fmt.Printf("Deleted story %s\n", title)
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")

	return cmd
}
