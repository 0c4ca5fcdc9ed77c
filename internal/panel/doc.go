/*
Package panel holds the resource sync panel as a pure state machine.

# Overview

State is a value. Update applies one Event and returns the next State plus
the Effects the caller must carry out (HTTP calls, timers, logging). Render
projects a State into a View that any front end can draw. Nothing in this
package performs I/O, which is what lets the form, table, search and
notification rules be tested without a terminal or a server.

	s := panel.New("user", inputs)
	s, effects := s.Update(panel.RefreshRequested{})
	// run effects; feed results back:
	s, effects = s.Update(panel.RecordsLoaded{Records: records})
	view := s.Render()

# Form

The form is always exactly one of closed, creating or editing(id). Opening
an edit copies the record's values into the inputs by field name. Submitting
drops empty inputs and sends POST /api/{model} or PUT /api/{model}/{id}.
Each opened form gets a new FormSession; a save result only closes the form
and restores the submit control when its session is still the open one.

# Ordering

Effects run concurrently in the caller; results come back as events in
completion order and the last one wins. There is no cancellation and no
deduplication.
*/
package panel
