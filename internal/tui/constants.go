package tui

// UI Layout Constants
const (
	// Fallback size before the first WindowSizeMsg
	DefaultWidth  = 80
	DefaultHeight = 24

	// Modal Dimensions
	ModalMinWidth    = 40
	ModalWidthMargin = 10 // m.width - 10
	ModalLabelWidth  = 16 // Field label column

	// Table layout
	HeaderLines       = 2 // Title + search line
	FooterLines       = 2 // Blank line + key hints
	TableChromeLines  = 4 // Top border + header + separator + bottom border
	MinVisibleRows    = 3
	MaxNotifications  = 5 // Older notifications are collapsed into a counter
	CellMaxWidth      = 32
	CheckboxChecked   = "[x]"
	CheckboxUnchecked = "[ ]"
)
