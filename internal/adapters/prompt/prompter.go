// Package prompt asks the user to pick test suites and environments in the terminal.
package prompt

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/inso/internal/core/domain"
	"go.trai.ch/inso/internal/core/ports"
	"go.trai.ch/zerr"
)

// Prompter implements ports.Prompter with bubbletea lists.
type Prompter struct {
	in   io.Reader
	out  io.Writer
	opts []tea.ProgramOption
}

var _ ports.Prompter = (*Prompter)(nil)

// New creates a Prompter reading stdin and drawing on stderr, leaving stdout to reporters.
func New() *Prompter {
	return &Prompter{in: os.Stdin, out: os.Stderr}
}

// WithIO replaces the prompter's input and output.
func (p *Prompter) WithIO(in io.Reader, out io.Writer) *Prompter {
	p.in = in
	p.out = out
	return p
}

// WithTeaOptions adds bubbletea program options, mainly to run headless in tests.
func (p *Prompter) WithTeaOptions(opts ...tea.ProgramOption) *Prompter {
	p.opts = append(p.opts, opts...)
	return p
}

// suiteChoice is what a row of the suite list expands to.
type suiteChoice struct {
	suites []domain.TestSuite
}

// SelectSuites lists each workspace that has suites, followed by its suites.
// Choosing a workspace selects all of its suites.
func (p *Prompter) SelectSuites(ctx context.Context, db *domain.Database) ([]domain.TestSuite, error) {
	var (
		items   []Item
		choices []suiteChoice
	)
	for _, ws := range db.Workspaces {
		suites := domain.Match{Kind: domain.MatchWorkspace, Workspace: &ws}.Suites(db)
		if len(suites) == 0 {
			continue
		}
		items = append(items, Item{Label: fmt.Sprintf("%s (%d suites)", ws.Name, len(suites))})
		choices = append(choices, suiteChoice{suites: suites})
		for _, s := range suites {
			items = append(items, Item{Label: s.Name, Depth: 1})
			choices = append(choices, suiteChoice{suites: []domain.TestSuite{s}})
		}
	}
	if len(items) == 0 {
		return nil, nil
	}

	idx, err := p.choose(ctx, "Select a workspace or unit test suite", items)
	if err != nil {
		return nil, err
	}
	return choices[idx].suites, nil
}

// SelectEnvironment lists candidates by name.
func (p *Prompter) SelectEnvironment(ctx context.Context, candidates []domain.Environment) (*domain.Environment, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	items := make([]Item, len(candidates))
	for i, env := range candidates {
		items[i] = Item{Label: env.Name}
	}

	idx, err := p.choose(ctx, "Select an environment", items)
	if err != nil {
		return nil, err
	}
	return &candidates[idx], nil
}

func (p *Prompter) choose(ctx context.Context, title string, items []Item) (int, error) {
	opts := append([]tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	}, p.opts...)

	final, err := tea.NewProgram(NewModel(title, items), opts...).Run()
	if err != nil {
		return -1, zerr.With(zerr.Wrap(domain.ErrPromptAborted, err.Error()), "prompt", title)
	}

	m, ok := final.(Model)
	if !ok || m.Aborted() || m.Chosen() < 0 {
		return -1, zerr.With(zerr.Wrap(domain.ErrPromptAborted, "selection cancelled"), "prompt", title)
	}
	return m.Chosen(), nil
}
