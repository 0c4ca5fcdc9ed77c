package keybinds

// Action represents a user action that can be triggered by a keybinding
type Action string

// Context represents the context in which keybindings are active
type Context string

const (
	// Contexts define where keybindings are active
	ContextGlobal  Context = "global"  // Available everywhere
	ContextTable   Context = "table"   // Record table
	ContextForm    Context = "form"    // Add/edit modal
	ContextSearch  Context = "search"  // Search input
	ContextConfirm Context = "confirm" // Delete confirmation
)

const (
	// Global actions
	ActionQuit      Action = "quit"       // Quit application
	ActionQuitForce Action = "quit_force" // Force quit (ctrl+c)

	// Table actions
	ActionRefresh      Action = "refresh"       // Reload records
	ActionAdd          Action = "add"           // Open the create form
	ActionEdit         Action = "edit"          // Open the edit form for the selected row
	ActionDelete       Action = "delete"        // Delete the selected row
	ActionOpenSearch   Action = "open_search"   // Focus the search input
	ActionClearSearch  Action = "clear_search"  // Clear the search term
	ActionCopy         Action = "copy"          // Copy the selected record as JSON
	ActionNavigateUp   Action = "navigate_up"   // Move selection up
	ActionNavigateDown Action = "navigate_down" // Move selection down
	ActionGoToTop      Action = "go_to_top"     // Jump to first row
	ActionGoToBottom   Action = "go_to_bottom"  // Jump to last row

	// Form actions
	ActionSubmit    Action = "submit"     // Submit the form / apply the search
	ActionCancel    Action = "cancel"     // Close the form / search / dialog
	ActionNextField Action = "next_field" // Focus next input
	ActionPrevField Action = "prev_field" // Focus previous input
	ActionToggle    Action = "toggle"     // Toggle a checkbox input

	// Confirm actions
	ActionConfirm Action = "confirm" // Accept the confirmation
)

// AllActions lists every known action
var AllActions = []Action{
	ActionQuit, ActionQuitForce,
	ActionRefresh, ActionAdd, ActionEdit, ActionDelete,
	ActionOpenSearch, ActionClearSearch, ActionCopy,
	ActionNavigateUp, ActionNavigateDown, ActionGoToTop, ActionGoToBottom,
	ActionSubmit, ActionCancel, ActionNextField, ActionPrevField, ActionToggle,
	ActionConfirm,
}

// AllContexts lists every known context
var AllContexts = []Context{ContextGlobal, ContextTable, ContextForm, ContextSearch, ContextConfirm}

// IsKnownAction reports whether the action is defined
func IsKnownAction(a Action) bool {
	for _, known := range AllActions {
		if a == known {
			return true
		}
	}
	return false
}

// IsKnownContext reports whether the context is defined
func IsKnownContext(c Context) bool {
	for _, known := range AllContexts {
		if c == known {
			return true
		}
	}
	return false
}
