package cli

import (
	"os"

	"github.com/avelise/scopeflow/internal/api"
	"github.com/avelise/scopeflow/internal/reorder"
	"github.com/avelise/scopeflow/internal/service"
	"github.com/avelise/scopeflow/internal/store"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// App holds references to all services used by CLI commands.
type App struct {
	Scopes     *service.ScopeManager
	Milestones *service.MilestoneManager
	Projects   service.ProjectService
	Team       service.TeamService
	Summaries  service.SummaryService
	Search     service.SearchService
	Reorder    *reorder.Engine
	Cache      *store.Store
	Client     api.Client

	// IsInteractive gates huh forms and the generation spinner; when false
	// (piped output, tests) commands fall back to flags and plain prints.
	IsInteractive func() bool
}

// Interactive reports whether forms and spinners may be shown.
func (a *App) Interactive() bool {
	if a.IsInteractive != nil {
		return a.IsInteractive()
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// NewRootCmd creates the top-level "scopeflow" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "scopeflow",
		Short: "Turn raw product ideas into scoped, trackable projects",
	}

	root.AddCommand(
		newGenerateCmd(app),
		newScopesCmd(app),
		newProjectsCmd(app),
		newMilestonesCmd(app),
		newStoriesCmd(app),
		newUpdatesCmd(app),
		newTeamCmd(app),
		newSummaryCmd(app),
		newNotificationsCmd(app),
		newSearchCmd(app),
	)

	return root
}
