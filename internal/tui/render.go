package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/studiowebux/restadmin/internal/keybinds"
	"github.com/studiowebux/restadmin/internal/panel"
	"github.com/studiowebux/restadmin/internal/types"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"} // Dark green / Bright green
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"} // Dark red / Bright red
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"} // Dark goldenrod / Yellow
	colorBlue   = lipgloss.AdaptiveColor{Light: "#00008b", Dark: "#0000ff"} // Dark blue / Blue
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"} // Dark gray / Light gray
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"} // Dark cyan / Cyan
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleSelected = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorYellow)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)

	styleCell = lipgloss.NewStyle().Padding(0, 1)

	styleHeader = styleCell.Bold(true).Foreground(colorCyan)

	styleButton = lipgloss.NewStyle().
			Padding(0, 2).
			Background(colorBlue).
			Foreground(lipgloss.Color("#ffffff"))

	styleButtonDisabled = lipgloss.NewStyle().
				Padding(0, 2).
				Foreground(colorGray)
)

// View renders the current state
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	view := m.state.Render()
	width, height := m.size()

	switch {
	case view.Confirm != nil:
		return m.renderConfirm(view.Confirm, width, height)
	case view.Modal != nil:
		return m.renderModal(view.Modal, width, height)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(view),
		m.renderNotifications(view.Notifications),
		m.renderTable(view, width),
		"",
		m.renderFooter(),
	)
}

// renderHeader renders the model name, record count and search line
func (m Model) renderHeader(view panel.View) string {
	title := styleTitle.Render(fmt.Sprintf("Admin: %s", view.Model))

	var count string
	switch {
	case !view.Loaded:
		count = styleSubtle.Render("loading...")
	case view.Search != "" && view.SearchApplied:
		count = styleSubtle.Render(fmt.Sprintf("%d of %d records", len(m.visibleRows()), len(m.state.Records)))
	default:
		count = styleSubtle.Render(fmt.Sprintf("%d records", len(m.state.Records)))
	}

	var search string
	switch {
	case m.searching:
		search = m.searchInput.View()
	case view.Search != "" && !view.SearchApplied:
		search = styleSubtle.Render("Search: " + view.Search + " (not applied)")
	case view.Search != "":
		search = styleWarning.Render("Search: " + view.Search)
	default:
		search = styleSubtle.Render("Search: " + m.keybinds.GetBindingString(keybinds.ContextTable, keybinds.ActionOpenSearch))
	}

	return title + "  " + count + "\n" + search
}

// renderNotifications renders the stack, newest last
func (m Model) renderNotifications(notes []types.Notification) string {
	if len(notes) == 0 {
		return ""
	}

	var lines []string
	if len(notes) > MaxNotifications {
		lines = append(lines, styleSubtle.Render(fmt.Sprintf("(+%d more)", len(notes)-MaxNotifications)))
		notes = notes[len(notes)-MaxNotifications:]
	}
	for _, n := range notes {
		if n.Kind == types.NotificationError {
			lines = append(lines, styleError.Render("✗ "+n.Message))
		} else {
			lines = append(lines, styleSuccess.Render("✓ "+n.Message))
		}
	}
	return strings.Join(lines, "\n")
}

// renderTable renders the visible rows with the cursor row highlighted
func (m Model) renderTable(view panel.View, width int) string {
	// the actions column is replaced by the id column and key hints
	headers := []string{types.IDField}
	headers = append(headers, view.Columns[:len(view.Columns)-1]...)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleSubtle).
		Width(width).
		Headers(headers...)

	rows := m.visibleRows()
	if len(rows) == 0 {
		message := panel.NoDataMessage
		if !view.Loaded {
			message = "Loading..."
		}
		t.Row(message)
		return t.StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			return styleCell.Foreground(colorGray)
		}).Render()
	}

	end := min(m.offset+m.pageSize(), len(rows))
	for _, r := range rows[m.offset:end] {
		cells := []string{r.ID}
		for _, c := range r.Cells {
			cells = append(cells, truncate(c, CellMaxWidth))
		}
		t.Row(cells...)
	}

	selected := m.cursor - m.offset
	return t.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return styleHeader
		case row == selected:
			return styleSelected.Padding(0, 1)
		default:
			return styleCell
		}
	}).Render()
}

// renderModal renders the add/edit form
func (m Model) renderModal(modal *panel.ModalView, width, height int) string {
	var b strings.Builder
	b.WriteString(styleTitle.Render(modal.Title))
	b.WriteString("\n\n")

	for i, f := range modal.Fields {
		label := lipgloss.NewStyle().Width(ModalLabelWidth).Render(f.Name)
		if i == m.focus {
			label = styleSelected.Width(ModalLabelWidth).Render(f.Name)
		}

		var input string
		switch {
		case f.InputType == "checkbox":
			input = CheckboxUnchecked
			if f.Value == "true" {
				input = CheckboxChecked
			}
		case i < len(m.inputs):
			input = m.inputs[i].View()
		default:
			input = f.Value
		}
		b.WriteString(label + " " + input + "\n")
	}

	b.WriteString("\n")
	if modal.SubmitDisabled {
		b.WriteString(styleButtonDisabled.Render(modal.SubmitLabel))
	} else {
		b.WriteString(styleButton.Render(modal.SubmitLabel))
	}

	footer := fmt.Sprintf("%s: save | %s: next field | %s: close",
		m.keybinds.GetBindingString(keybinds.ContextForm, keybinds.ActionSubmit),
		m.keybinds.GetBindingString(keybinds.ContextForm, keybinds.ActionNextField),
		m.keybinds.GetBindingString(keybinds.ContextForm, keybinds.ActionCancel),
	)
	b.WriteString("\n\n" + styleSubtle.Render(footer))

	if len(m.state.Notifications) > 0 {
		b.WriteString("\n\n" + m.renderNotifications(m.state.Notifications))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBlue).
		Width(max(ModalMinWidth, width-ModalWidthMargin)).
		Padding(1, 2).
		Render(b.String())

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

// renderConfirm renders the delete confirmation dialog
func (m Model) renderConfirm(confirm *panel.ConfirmView, width, height int) string {
	footer := fmt.Sprintf("%s: delete | %s: cancel",
		m.keybinds.GetBindingString(keybinds.ContextConfirm, keybinds.ActionConfirm),
		m.keybinds.GetBindingString(keybinds.ContextConfirm, keybinds.ActionCancel),
	)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorRed).
		Padding(1, 2).
		Render(styleWarning.Render(confirm.Message) + "\n\n" + styleSubtle.Render(footer))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

// renderFooter renders the table key hints
func (m Model) renderFooter() string {
	hint := func(action keybinds.Action, label string) string {
		return m.keybinds.GetBindingString(keybinds.ContextTable, action) + ": " + label
	}

	return styleSubtle.Render(strings.Join([]string{
		hint(keybinds.ActionAdd, "add"),
		hint(keybinds.ActionEdit, "edit"),
		hint(keybinds.ActionDelete, "delete"),
		hint(keybinds.ActionRefresh, "refresh"),
		hint(keybinds.ActionOpenSearch, "search"),
		hint(keybinds.ActionCopy, "copy"),
		hint(keybinds.ActionQuit, "quit"),
	}, " | "))
}

// truncate shortens s to at most n cells
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
