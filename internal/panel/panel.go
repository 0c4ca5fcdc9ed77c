package panel

import (
	"errors"
	"maps"
	"net/http"

	"github.com/studiowebux/restadmin/internal/api"
	"github.com/studiowebux/restadmin/internal/schema"
	"github.com/studiowebux/restadmin/internal/types"
)

// ErrRecordNotFound is reported when an action names a row that is not rendered
var ErrRecordNotFound = errors.New("record not found")

// ErrNoFields is reported when a form is submitted for a model without fields
var ErrNoFields = errors.New("no fields to submit")

// State is the complete panel state. Treat it as a value: Update never
// mutates the receiver's slices or maps.
type State struct {
	Model string

	// Inputs is the configured form definition. When empty the inputs are
	// inferred from the loaded records on every read.
	Inputs []types.Field

	Records []types.Record
	Loaded  bool

	Form   types.FormState
	Values map[string]string
	// FormSession identifies the open form; every add or edit starts a new one
	FormSession int
	// Submitting is set while a save of the current form session is in flight
	Submitting bool

	PendingDelete string

	Search string
	hidden []bool // per rendered row, set by the last applied search

	Notifications []types.Notification
	nextNoteID    int
}

// New returns a closed panel for a model
func New(model string, inputs []types.Field) State {
	return State{
		Model:  model,
		Inputs: inputs,
		Form:   types.FormClosed(),
		Values: map[string]string{},
	}
}

// Fields returns the current field descriptors (id excluded)
func (s State) Fields() []types.Field {
	inputs := s.Inputs
	if len(inputs) == 0 {
		inputs = schema.Infer(s.Records)
	}
	return schema.Fields(inputs)
}

// Rows returns the table rows for the current records and fields
func (s State) Rows() []Row {
	return BuildRows(s.Records, s.Fields())
}

// Record returns the rendered record with the given id
func (s State) Record(id string) (types.Record, bool) {
	for _, r := range s.Records {
		if r.ID() == id {
			return r, true
		}
	}
	return nil, false
}

// Init returns the effects that load the first page of data
func (s State) Init() []Effect {
	return []Effect{s.fetch()}
}

// Update applies one event
func (s State) Update(ev Event) (State, []Effect) {
	switch ev := ev.(type) {
	case RefreshRequested:
		return s, []Effect{s.fetch()}

	case RecordsLoaded:
		s.Records = ev.Records
		s.Loaded = true
		s.hidden = nil
		return s, nil

	case LoadFailed:
		return s.fail("load", "Failed to load data: ", ev.Err)

	case AddRequested:
		return s.openCreate(), nil

	case EditRequested:
		return s.openEdit(ev.ID)

	case CancelRequested:
		s.Form = types.FormClosed()
		s.Submitting = false
		return s, nil

	case FieldChanged:
		if !s.Form.IsOpen() {
			return s, nil
		}
		s.Values = maps.Clone(s.Values)
		s.Values[ev.Name] = ev.Value
		return s, nil

	case SubmitRequested:
		return s.submit()

	case SubmitSucceeded:
		// a save from an abandoned form still lands, but must not close the current one
		if ev.Session == s.FormSession {
			s.Submitting = false
			s.Form = types.FormClosed()
		}
		next, note := s.notify(types.NotificationSuccess, "Saved successfully")
		return next, []Effect{next.fetch(), note}

	case SubmitFailed:
		if ev.Session == s.FormSession {
			s.Submitting = false
		}
		return s.fail("save", "Save failed: ", ev.Err)

	case DeleteRequested:
		if s.Form.IsOpen() {
			return s, nil
		}
		if _, ok := s.Record(ev.ID); !ok {
			return s.fail("delete", "Delete failed: ", ErrRecordNotFound)
		}
		s.PendingDelete = ev.ID
		return s, nil

	case DeleteConfirmed:
		if s.PendingDelete == "" {
			return s, nil
		}
		id := s.PendingDelete
		s.PendingDelete = ""
		return s, []Effect{DeleteRecord{ID: id, Path: api.ItemPath(s.Model, id)}}

	case DeleteCancelled:
		s.PendingDelete = ""
		return s, nil

	case DeleteSucceeded:
		next, note := s.notify(types.NotificationSuccess, "Deleted successfully")
		return next, []Effect{next.fetch(), note}

	case DeleteFailed:
		return s.fail("delete", "Delete failed: ", ev.Err)

	case SearchChanged:
		return s.applySearch(ev.Term), nil

	case NotificationExpired:
		return s.dismiss(ev.ID), nil

	case Notify:
		next, note := s.notify(ev.Kind, ev.Message)
		return next, []Effect{note}
	}

	return s, nil
}

func (s State) fetch() Effect {
	return FetchRecords{Model: s.Model, Path: api.CollectionPath(s.Model)}
}

// fail shows an error notification and logs the error
func (s State) fail(op, prefix string, err error) (State, []Effect) {
	next, note := s.notify(types.NotificationError, prefix+errorMessage(err))
	return next, []Effect{LogError{Op: op, Err: err}, note}
}

func errorMessage(err error) string {
	if err == nil {
		return "unknown error"
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		if apiErr.Detail != "" {
			return apiErr.Detail
		}
		return http.StatusText(apiErr.Status)
	}
	if errors.Is(err, ErrRecordNotFound) {
		return "Record not found"
	}
	if errors.Is(err, ErrNoFields) {
		return "No fields defined for this model"
	}
	return err.Error()
}
