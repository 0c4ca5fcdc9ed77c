package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrSelectionCancelled is returned when the user leaves the selector
var ErrSelectionCancelled = errors.New("selection cancelled")

var (
	colorAccent = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"}
	colorMuted  = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"}
)

// modelItem is one entry of the model selector
type modelItem string

func (i modelItem) Title() string       { return string(i) }
func (i modelItem) Description() string { return "/api/" + string(i) }
func (i modelItem) FilterValue() string { return string(i) }

type selectorModel struct {
	list   list.Model
	choice string
	done   bool
}

func newSelectorModel(models []string) selectorModel {
	items := make([]list.Item, len(models))
	for i, name := range models {
		items[i] = modelItem(name)
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(colorAccent).
		BorderForeground(colorAccent)

	l := list.New(items, delegate, 60, min(len(models)+6, 20))
	l.Title = "Models"
	l.Styles.Title = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	l.Styles.HelpStyle = l.Styles.HelpStyle.Foreground(colorMuted)
	l.SetShowStatusBar(false)
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open"))}
	}

	return selectorModel{list: l}
}

func (m selectorModel) Init() tea.Cmd {
	return nil
}

func (m selectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, min(msg.Height, m.list.Height()))
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "enter":
			if selected, ok := m.list.SelectedItem().(modelItem); ok {
				m.choice = string(selected)
			}
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "esc", "q":
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m selectorModel) View() string {
	if m.done {
		return ""
	}
	return m.list.View()
}

// SelectModel asks the user to pick one of the server's models. A single
// model is returned without prompting.
func SelectModel(models []string) (string, error) {
	switch len(models) {
	case 0:
		return "", fmt.Errorf("server exposes no models")
	case 1:
		return models[0], nil
	}

	final, err := tea.NewProgram(newSelectorModel(models)).Run()
	if err != nil {
		return "", fmt.Errorf("failed to run model selector: %w", err)
	}
	if choice := final.(selectorModel).choice; choice != "" {
		return choice, nil
	}
	return "", ErrSelectionCancelled
}
