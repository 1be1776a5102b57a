package prompt_test

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/inso/internal/adapters/prompt"
)

func press(t *testing.T, m prompt.Model, msg tea.KeyMsg) (prompt.Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(prompt.Model)
	require.True(t, ok)
	return model, cmd
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyJ     = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")}
	keyQ     = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}
)

func items() []prompt.Item {
	return []prompt.Item{
		{Label: "W1 (2 suites)"},
		{Label: "Auth Suite", Depth: 1},
		{Label: "Billing", Depth: 1},
	}
}

func TestModel_Navigation(t *testing.T) {
	m := prompt.NewModel("Pick", items())
	assert.Nil(t, m.Init())
	assert.Equal(t, 0, m.Cursor())

	m, cmd := press(t, m, keyUp)
	assert.Nil(t, cmd)
	assert.Equal(t, 0, m.Cursor(), "cursor stops at the top")

	m, _ = press(t, m, keyDown)
	m, _ = press(t, m, keyJ)
	assert.Equal(t, 2, m.Cursor())

	m, _ = press(t, m, keyDown)
	assert.Equal(t, 2, m.Cursor(), "cursor stops at the bottom")

	m, _ = press(t, m, keyUp)
	assert.Equal(t, 1, m.Cursor())
}

func TestModel_Choose(t *testing.T) {
	m := prompt.NewModel("Pick", items())
	m, _ = press(t, m, keyDown)

	m, cmd := press(t, m, keyEnter)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, 1, m.Chosen())
	assert.False(t, m.Aborted())
	assert.Empty(t, m.View())
}

func TestModel_Quit(t *testing.T) {
	m := prompt.NewModel("Pick", items())

	m, cmd := press(t, m, keyQ)
	require.NotNil(t, cmd)
	assert.True(t, m.Aborted())
	assert.Equal(t, -1, m.Chosen())
}

func TestModel_ChooseFromEmptyListAborts(t *testing.T) {
	m := prompt.NewModel("Pick", nil)

	m, _ = press(t, m, keyEnter)
	assert.True(t, m.Aborted())
	assert.Equal(t, -1, m.Chosen())
}

func TestModel_IgnoresOtherMessages(t *testing.T) {
	m := prompt.NewModel("Pick", items())

	next, cmd := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.Nil(t, cmd)
	assert.Equal(t, m.Cursor(), next.(prompt.Model).Cursor())
}

func TestModel_View(t *testing.T) {
	m := prompt.NewModel("Select a workspace or unit test suite", items())
	m, _ = press(t, m, keyDown)

	view := m.View()
	assert.Contains(t, view, "Select a workspace or unit test suite")
	assert.Contains(t, view, "  W1 (2 suites)")
	assert.Contains(t, view, "›   Auth Suite")
	assert.Contains(t, view, "    Billing")
	assert.Contains(t, view, "enter")
}
