/*
Package keybinds provides customizable keyboard binding management for the
admin panel.

# Overview

Bindings are grouped by context. A key is first looked up in the active
context, then in the global context, so a context binding shadows a global
one.

Contexts:
  - global: available everywhere (ctrl+c force quit)
  - table: the record table (add, edit, delete, refresh, search, copy)
  - form: the add/edit modal
  - search: the search input
  - confirm: the delete confirmation dialog

# Configuration File Format

Overrides live in ~/.restadmin/keybinds.yaml. Each section maps an action to
a comma-separated list of keys; a configured action replaces all default
keys for that action in the section:

	version: "1.0"
	table:
	  add: "n,a"
	  delete: "x"
	form:
	  submit: "ctrl+s"

# Validation

LoadOrDefault rejects unknown actions, empty keys, and configurations that
leave the form, search, or confirm contexts without a submit/cancel key.
Shadowing and reserved key rebinding (ctrl+c) are reported as warnings.
*/
package keybinds
