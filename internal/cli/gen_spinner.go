package cli

import (
	"fmt"
	"time"

	"github.com/avelise/scopeflow/internal/cli/formatter"
	"github.com/avelise/scopeflow/internal/domain"
	"github.com/avelise/scopeflow/internal/service"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// rotateInterval is how often the generation loading message advances. The
// messages are cosmetic; the server reports no sub-progress.
const rotateInterval = 2 * time.Second

type genDoneMsg struct {
	scope *domain.Scope
	err   error
}

type rotateMsg struct{}

// genModel shows a spinner with rotating loading messages while the blocking
// generation call runs in a tea.Cmd.
type genModel struct {
	spin   spinner.Model
	msgIdx int
	run    func() tea.Msg

	scope *domain.Scope
	err   error
}

func newGenModel(run func() tea.Msg) genModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	return genModel{spin: s, run: run}
}

func rotateTick() tea.Cmd {
	return tea.Tick(rotateInterval, func(time.Time) tea.Msg { return rotateMsg{} })
}

func (m genModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.run, rotateTick())
}

func (m genModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case genDoneMsg:
		m.scope = msg.scope
		m.err = msg.err
		return m, tea.Quit
	case rotateMsg:
		m.msgIdx = (m.msgIdx + 1) % len(service.LoadingMessages)
		return m, rotateTick()
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.err = fmt.Errorf("generation cancelled")
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m genModel) View() string {
	if m.scope != nil || m.err != nil {
		return ""
	}
	return fmt.Sprintf("  %s %s\n", m.spin.View(), formatter.Dim(service.LoadingMessages[m.msgIdx]))
}
