package tui

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/restadmin/internal/api"
	"github.com/studiowebux/restadmin/internal/panel"
	"github.com/studiowebux/restadmin/internal/types"
)

// CreateTestModel creates a Model backed by an httptest server running handler.
// Notification timers never fire and the clipboard is captured in copied.
func CreateTestModel(t *testing.T, handler http.HandlerFunc, inputs []types.Field) (*Model, *[]string) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := api.NewClient(api.Options{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	m := New(Options{Client: client, Model: "user", Inputs: inputs})

	var copied []string
	m.copyToClipboard = func(s string) error {
		copied = append(copied, s)
		return nil
	}
	m.cursorMode = cursor.CursorStatic
	m.searchInput.Cursor.SetMode(cursor.CursorStatic)
	m.tick = func(time.Duration, func(time.Time) tea.Msg) tea.Cmd { return nil }

	next := RunCmd(t, m, m.Init())
	return &next, &copied
}

// RunCmd executes cmd and feeds every resulting panel event back into the
// model until no command is left
func RunCmd(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()

	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}

		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case panel.Event:
			next, more := m.Update(msg)
			m = next.(Model)
			queue = append(queue, more)
		}
	}
	return m
}

// PressKey sends a key and runs the resulting commands
func PressKey(t *testing.T, m Model, key string) Model {
	t.Helper()

	next, cmd := m.Update(keyMsg(key))
	return RunCmd(t, next.(Model), cmd)
}

// TypeText sends each rune of s as a key press
func TypeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = PressKey(t, m, string(r))
	}
	return m
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}

// AssertModelField is a generic helper for checking model field values
func AssertModelField[T comparable](t *testing.T, fieldName string, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %v, want %v", fieldName, got, want)
	}
}
