/*
Package tui implements the terminal admin panel.

# Architecture

The TUI follows the Bubble Tea Model-Update-View pattern around a pure
panel.State:
  - keys.go maps key presses (through the keybinds registry) to panel events
  - model.go feeds events to panel.State.Update and keeps the text inputs in
    sync with the open form
  - actions.go turns the returned effects into commands; every command
    answers with a panel event, so request outcomes re-enter Update as
    messages
  - render.go draws panel.State.Render(): header, notification stack,
    table, form modal and delete confirmation

# Modes

The mode is derived from the panel state, not stored:
  - ModeConfirm while a delete awaits confirmation
  - ModeForm while the add/edit form is open
  - ModeSearch while the search input has focus
  - ModeTable otherwise

Errors reported through LogError effects are written to the zap logger with
a hint from categorizeError.
*/
package tui
