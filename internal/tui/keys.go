package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/restadmin/internal/keybinds"
	"github.com/studiowebux/restadmin/internal/panel"
)

// handleKey routes a key press to the handler of the active mode
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, _ := m.keybinds.Match(m.keyContext(), msg.String())
	if action == keybinds.ActionQuitForce {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.mode() {
	case ModeConfirm:
		return m.handleConfirmKeys(action)
	case ModeForm:
		return m.handleFormKeys(msg, action)
	case ModeSearch:
		return m.handleSearchKeys(msg, action)
	default:
		return m.handleTableKeys(action)
	}
}

func (m Model) handleTableKeys(action keybinds.Action) (tea.Model, tea.Cmd) {
	switch action {
	case keybinds.ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case keybinds.ActionRefresh:
		return m.dispatch(panel.RefreshRequested{})

	case keybinds.ActionAdd:
		return m.dispatch(panel.AddRequested{})

	case keybinds.ActionEdit:
		return m.dispatch(panel.EditRequested{ID: m.selectedID()})

	case keybinds.ActionDelete:
		return m.dispatch(panel.DeleteRequested{ID: m.selectedID()})

	case keybinds.ActionCopy:
		return m, m.copySelected()

	case keybinds.ActionOpenSearch:
		m.searching = true
		m.searchInput.SetValue(m.state.Search)
		m.searchInput.CursorEnd()
		cmd := m.searchInput.Focus()
		return m, cmd

	case keybinds.ActionClearSearch:
		if m.state.Search == "" {
			return m, nil
		}
		m.searchInput.SetValue("")
		return m.dispatch(panel.SearchChanged{Term: ""})

	case keybinds.ActionNavigateUp:
		m.cursor--
	case keybinds.ActionNavigateDown:
		m.cursor++
	case keybinds.ActionGoToTop:
		m.cursor = 0
	case keybinds.ActionGoToBottom:
		m.cursor = len(m.visibleRows()) - 1
	}

	m.clampCursor()
	return m, nil
}

// handleSearchKeys filters rows on every keystroke
func (m Model) handleSearchKeys(msg tea.KeyMsg, action keybinds.Action) (tea.Model, tea.Cmd) {
	switch action {
	case keybinds.ActionSubmit:
		m.searching = false
		m.searchInput.Blur()
		return m, nil

	case keybinds.ActionCancel:
		m.searching = false
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		return m.dispatch(panel.SearchChanged{Term: ""})
	}

	var cmd tea.Cmd
	before := m.searchInput.Value()
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.searchInput.Value() == before {
		return m, cmd
	}

	m.cursor = 0
	next, searchCmd := m.dispatch(panel.SearchChanged{Term: m.searchInput.Value()})
	return next, tea.Batch(cmd, searchCmd)
}

func (m Model) handleFormKeys(msg tea.KeyMsg, action keybinds.Action) (tea.Model, tea.Cmd) {
	switch action {
	case keybinds.ActionCancel:
		return m.dispatch(panel.CancelRequested{})

	case keybinds.ActionSubmit:
		return m.dispatch(panel.SubmitRequested{})

	case keybinds.ActionNextField:
		m.focusInput(m.focus + 1)
		return m, textinput.Blink

	case keybinds.ActionPrevField:
		m.focusInput(m.focus - 1)
		return m, textinput.Blink

	case keybinds.ActionToggle:
		if m.focusedIsCheckbox() {
			value := "true"
			if m.inputs[m.focus].Value() == "true" {
				value = "false"
			}
			m.inputs[m.focus].SetValue(value)
			return m.dispatch(panel.FieldChanged{Name: m.fields[m.focus].Name, Value: value})
		}
	}

	if len(m.inputs) == 0 || m.focusedIsCheckbox() {
		return m, nil
	}

	var cmd tea.Cmd
	before := m.inputs[m.focus].Value()
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	value := m.inputs[m.focus].Value()
	if value == before {
		return m, cmd
	}

	next, changeCmd := m.dispatch(panel.FieldChanged{Name: m.fields[m.focus].Name, Value: value})
	return next, tea.Batch(cmd, changeCmd)
}

func (m Model) handleConfirmKeys(action keybinds.Action) (tea.Model, tea.Cmd) {
	switch action {
	case keybinds.ActionConfirm:
		return m.dispatch(panel.DeleteConfirmed{})
	case keybinds.ActionCancel:
		return m.dispatch(panel.DeleteCancelled{})
	}
	return m, nil
}

func (m Model) focusedIsCheckbox() bool {
	return m.focus < len(m.fields) && m.fields[m.focus].InputType == "checkbox"
}
