package tui

import (
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/restadmin/internal/api"
	"github.com/studiowebux/restadmin/internal/keybinds"
	"github.com/studiowebux/restadmin/internal/panel"
	"github.com/studiowebux/restadmin/internal/types"
	"go.uber.org/zap"
)

// Mode represents the current TUI mode
type Mode int

const (
	ModeTable Mode = iota
	ModeSearch
	ModeForm
	ModeConfirm
)

func (m Mode) String() string {
	switch m {
	case ModeSearch:
		return "search"
	case ModeForm:
		return "form"
	case ModeConfirm:
		return "confirm"
	default:
		return "table"
	}
}

// Options configures a panel program
type Options struct {
	Client   *api.Client
	Model    string
	Inputs   []types.Field // configured form inputs; inferred when empty
	Logger   *zap.Logger
	Keybinds *keybinds.Registry
}

// tickFunc schedules a message after a delay (tea.Tick)
type tickFunc func(time.Duration, func(time.Time) tea.Msg) tea.Cmd

// Model represents the TUI state
type Model struct {
	state    panel.State
	client   *api.Client
	logger   *zap.Logger
	keybinds *keybinds.Registry

	width  int
	height int

	// Table selection, an index into the visible rows
	cursor int
	offset int

	// Search input
	searching   bool
	searchInput textinput.Model

	// Form inputs, rebuilt whenever a form opens
	formKey string
	inputs  []textinput.Model
	fields  []panel.FieldView
	focus   int

	quitting bool

	// cursorMode applies to every text input
	cursorMode cursor.Mode

	copyToClipboard func(string) error
	tick            tickFunc
}

// New creates a panel model
func New(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	registry := opts.Keybinds
	if registry == nil {
		registry = keybinds.NewDefaultRegistry()
	}

	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "search"

	return Model{
		state:           panel.New(opts.Model, opts.Inputs),
		client:          opts.Client,
		logger:          logger.With(zap.String("model", opts.Model)),
		keybinds:        registry,
		searchInput:     search,
		cursorMode:      cursor.CursorBlink,
		copyToClipboard: clipboard.WriteAll,
		tick:            tea.Tick,
	}
}

// Init loads the table
func (m Model) Init() tea.Cmd {
	return m.applyEffects(m.state.Init())
}

// Update handles one message
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case panel.Event:
		return m.dispatch(msg)
	}

	return m.updateInputs(msg)
}

// updateInputs forwards other messages (cursor blinks) to the focused input
func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.mode() {
	case ModeForm:
		if m.focus < len(m.inputs) {
			m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		}
	case ModeSearch:
		m.searchInput, cmd = m.searchInput.Update(msg)
	}
	return m, cmd
}

// dispatch feeds an event to the panel and turns its effects into commands
func (m Model) dispatch(ev panel.Event) (Model, tea.Cmd) {
	var effects []panel.Effect
	m.state, effects = m.state.Update(ev)
	m.syncForm()
	m.clampCursor()
	return m, m.applyEffects(effects)
}

// mode derives the active mode from the panel state
func (m Model) mode() Mode {
	switch {
	case m.state.PendingDelete != "":
		return ModeConfirm
	case m.state.Form.IsOpen():
		return ModeForm
	case m.searching:
		return ModeSearch
	default:
		return ModeTable
	}
}

// keyContext maps the mode to its keybinding context
func (m Model) keyContext() keybinds.Context {
	switch m.mode() {
	case ModeConfirm:
		return keybinds.ContextConfirm
	case ModeForm:
		return keybinds.ContextForm
	case ModeSearch:
		return keybinds.ContextSearch
	default:
		return keybinds.ContextTable
	}
}

// syncForm rebuilds the text inputs when a form opens or switches record
func (m *Model) syncForm() {
	key := m.state.Form.String()
	if !m.state.Form.IsOpen() {
		m.formKey = ""
		m.inputs = nil
		m.fields = nil
		m.focus = 0
		return
	}
	if key == m.formKey {
		return
	}

	m.formKey = key
	m.focus = 0
	m.fields = m.state.Render().Modal.Fields
	m.inputs = make([]textinput.Model, len(m.fields))
	for i, f := range m.fields {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = f.InputType
		in.SetValue(f.Value)
		if m.cursorMode != cursor.CursorBlink {
			in.Cursor.SetMode(m.cursorMode)
		}
		m.inputs[i] = in
	}
	m.focusInput(0)
}

func (m *Model) focusInput(i int) {
	if len(m.inputs) == 0 {
		return
	}
	m.focus = (i + len(m.inputs)) % len(m.inputs)
	for j := range m.inputs {
		if j == m.focus {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
}

// visibleRows returns the data rows not hidden by the search
func (m Model) visibleRows() []panel.Row {
	var rows []panel.Row
	for _, r := range m.state.Render().VisibleRows() {
		if !r.Placeholder {
			rows = append(rows, r)
		}
	}
	return rows
}

// selectedID returns the id of the highlighted row, "" when none
func (m Model) selectedID() string {
	rows := m.visibleRows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return ""
	}
	return rows[m.cursor].ID
}

func (m *Model) clampCursor() {
	n := len(m.visibleRows())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	page := m.pageSize()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+page {
		m.offset = m.cursor - page + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// size returns the terminal size, falling back to defaults
func (m Model) size() (int, int) {
	w, h := m.width, m.height
	if w == 0 {
		w = DefaultWidth
	}
	if h == 0 {
		h = DefaultHeight
	}
	return w, h
}

// pageSize is the number of table rows that fit on screen
func (m Model) pageSize() int {
	_, h := m.size()
	notes := len(m.state.Notifications)
	if notes > MaxNotifications {
		notes = MaxNotifications + 1
	}
	rows := h - HeaderLines - FooterLines - TableChromeLines - notes
	if rows < MinVisibleRows {
		rows = MinVisibleRows
	}
	return rows
}

// State returns the underlying panel state
func (m Model) State() panel.State {
	return m.state
}

// Run starts the interactive panel
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
