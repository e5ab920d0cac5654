package cli

import (
	"context"
	"fmt"

	"github.com/avelise/scopeflow/internal/api"
	"github.com/avelise/scopeflow/internal/cli/formatter"
	"github.com/avelise/scopeflow/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newGenerateCmd(app *App) *cobra.Command {
	var name, idea, audience, budget, pressure string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a scoped breakdown from a product idea",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Interactive() && (name == "" || idea == "") {
				if err := generateWizard(&name, &idea, &audience, &budget, &pressure); err != nil {
					return err
				}
			}

			in := api.GenerateScopeInput{
				ProductName:      name,
				IdeaText:         idea,
				TargetAudience:   audience,
				BudgetRange:      domain.BudgetRange(budget),
				TimelinePressure: domain.TimelinePressure(pressure),
			}

			scope, err := runGeneration(app, in)
			if err != nil {
				return err
			}

			fmt.Println(formatter.FormatScope(scope))
			fmt.Println(formatter.Dim(fmt.Sprintf(
				"Saved as draft %s. Convert with 'scopeflow scopes convert %s --start YYYY-MM-DD'.",
				scope.ID[:8], scope.ID[:8])))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Product name")
	cmd.Flags().StringVar(&idea, "idea", "", "The raw product idea")
	cmd.Flags().StringVar(&audience, "audience", "", "Target audience")
	cmd.Flags().StringVar(&budget, "budget", "", "Budget range (low|medium|high)")
	cmd.Flags().StringVar(&pressure, "pressure", "", "Timeline pressure (asap|1_3_months|3_6_months|flexible)")

	return cmd
}

// runGeneration performs the blocking generate call, behind the animated
// spinner when the terminal is interactive.
func runGeneration(app *App, in api.GenerateScopeInput) (*domain.Scope, error) {
	ctx := context.Background()

	if !app.Interactive() {
		fmt.Println(formatter.Dim("Generating scope…"))
		return app.Scopes.Generate(ctx, in)
	}

	model := newGenModel(func() tea.Msg {
		scope, err := app.Scopes.Generate(ctx, in)
		return genDoneMsg{scope: scope, err: err}
	})
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return nil, err
	}
	m := final.(genModel)
	if m.err != nil {
		return nil, m.err
	}
	return m.scope, nil
}

func generateWizard(name, idea, audience, budget, pressure *string) error {
	budgetOpts := []huh.Option[string]{
		huh.NewOption("Low — shoestring", "low"),
		huh.NewOption("Medium", "medium"),
		huh.NewOption("High — well funded", "high"),
	}
	pressureOpts := []huh.Option[string]{
		huh.NewOption("ASAP", "asap"),
		huh.NewOption("1-3 months", "1_3_months"),
		huh.NewOption("3-6 months", "3_6_months"),
		huh.NewOption("Flexible", "flexible"),
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Product Name").
				Placeholder("Atlas").
				Value(name).
				Validate(requireNonEmpty("product name")),
			huh.NewText().
				Title("Describe the idea").
				Placeholder("A collaborative planner for small agencies…").
				Value(idea).
				Validate(requireNonEmpty("idea")),
			huh.NewInput().
				Title("Target Audience (optional)").
				Value(audience),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Budget Range").
				Options(budgetOpts...).
				Value(budget),
			huh.NewSelect[string]().
				Title("Timeline Pressure").
				Options(pressureOpts...).
				Value(pressure),
		),
	).WithTheme(scopeflowHuhTheme()).WithShowHelp(false)

	return form.Run()
}

func requireNonEmpty(field string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}
