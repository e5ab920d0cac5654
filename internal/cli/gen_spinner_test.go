package cli

import (
	"errors"
	"testing"
	"time"

	"github.com/avelise/scopeflow/internal/service"
	"github.com/avelise/scopeflow/internal/teatest"
	"github.com/avelise/scopeflow/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// slowRun stands in for the generation call: it outlives the driver's Cmd
// timeout, so the model stays in its loading state after DrainInit.
func slowRun() tea.Msg {
	time.Sleep(50 * time.Millisecond)
	return nil
}

func TestGenModel_ShowsRotatingMessages(t *testing.T) {
	d := teatest.New(t, newGenModel(slowRun))
	d.DrainInit()

	view := stripANSI(d.View())
	assert.Contains(t, view, service.LoadingMessages[0])

	d.Send(rotateMsg{})
	view = stripANSI(d.View())
	assert.Contains(t, view, service.LoadingMessages[1])
	assert.NotContains(t, view, service.LoadingMessages[0])
}

func TestGenModel_RotationWrapsAround(t *testing.T) {
	d := teatest.New(t, newGenModel(slowRun))
	d.DrainInit()

	for range service.LoadingMessages {
		d.Send(rotateMsg{})
	}
	assert.Contains(t, stripANSI(d.View()), service.LoadingMessages[0])
}

func TestGenModel_DoneQuitsWithScope(t *testing.T) {
	scope := testutil.BuildScope("Atlas", "idea")
	d := teatest.New(t, newGenModel(slowRun))
	d.DrainInit()

	d.Send(genDoneMsg{scope: scope})
	assert.True(t, d.Quitting)
	assert.Empty(t, d.View(), "view clears once the result is in")

	m := d.Model.(genModel)
	require.NotNil(t, m.scope)
	assert.Equal(t, scope.ID, m.scope.ID)
	assert.NoError(t, m.err)
}

func TestGenModel_DoneQuitsWithError(t *testing.T) {
	d := teatest.New(t, newGenModel(slowRun))
	d.DrainInit()

	d.Send(genDoneMsg{err: errors.New("model overloaded")})
	assert.True(t, d.Quitting)

	m := d.Model.(genModel)
	assert.Nil(t, m.scope)
	assert.EqualError(t, m.err, "model overloaded")
}

func TestGenModel_CtrlCCancels(t *testing.T) {
	d := teatest.New(t, newGenModel(slowRun))
	d.DrainInit()

	d.PressCtrlC()
	assert.True(t, d.Quitting)

	m := d.Model.(genModel)
	assert.EqualError(t, m.err, "generation cancelled")
}
