package prompt

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/inso/internal/ui/style"
)

// Item is one selectable row.
type Item struct {
	Label string
	// Depth indents the row under the preceding shallower row.
	Depth int
}

// Model is a single-choice list.
type Model struct {
	Title string
	Items []Item

	cursor  int
	chosen  int
	aborted bool
	keys    keyMap
	help    help.Model
}

// NewModel creates a list with the cursor on the first item.
func NewModel(title string, items []Item) Model {
	return Model{
		Title:  title,
		Items:  items,
		chosen: -1,
		keys:   defaultKeyMap(),
		help:   help.New(),
	}
}

// Chosen returns the index of the selected item, or -1 when nothing was selected.
func (m Model) Chosen() int {
	return m.chosen
}

// Aborted reports whether the user left without choosing.
func (m Model) Aborted() bool {
	return m.aborted
}

// Cursor returns the index of the highlighted item.
func (m Model) Cursor() int {
	return m.cursor
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles key presses. Choosing or quitting ends the program.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.aborted = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Choose):
		if len(m.Items) == 0 {
			m.aborted = true
		} else {
			m.chosen = m.cursor
		}
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.Items)-1 {
			m.cursor++
		}
	}
	return m, nil
}

// View renders the list. It renders nothing once a choice is final.
func (m Model) View() string {
	if m.chosen >= 0 || m.aborted {
		return ""
	}

	var b strings.Builder
	b.WriteString(style.Title.Render(m.Title))
	b.WriteString("\n\n")

	for i, item := range m.Items {
		label := strings.Repeat("  ", item.Depth) + item.Label
		if i == m.cursor {
			b.WriteString(style.Cursor.Render(style.Pointer + " " + label))
		} else {
			b.WriteString("  " + label)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(style.Hint.Render(m.help.View(m.keys)))
	b.WriteString("\n")
	return b.String()
}
