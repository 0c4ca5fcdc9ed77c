package panel

import (
	"net/http"
	"strings"

	"github.com/studiowebux/restadmin/internal/api"
	"github.com/studiowebux/restadmin/internal/types"
)

const (
	// SubmitLabel is the idle label of the submit control
	SubmitLabel = "Save"
	// SubmitLoadingLabel replaces SubmitLabel while a save is in flight
	SubmitLoadingLabel = "Saving..."

	createTitle = "Add item"
	editTitle   = "Edit item"
)

func (s State) openCreate() State {
	s.Form = types.FormCreating()
	s.FormSession++
	s.Submitting = false
	s.Values = make(map[string]string)
	for _, f := range s.Fields() {
		s.Values[f.Name] = ""
	}
	return s
}

// openEdit copies the record's values into the inputs by field name
func (s State) openEdit(id string) (State, []Effect) {
	rec, ok := s.Record(id)
	if !ok {
		return s.fail("edit", "", ErrRecordNotFound)
	}

	s.Form = types.FormEditing(id)
	s.FormSession++
	s.Submitting = false
	s.Values = make(map[string]string)
	for _, f := range s.Fields() {
		text, _ := rec.Text(f.Name)
		s.Values[f.Name] = strings.TrimSpace(text)
	}
	return s, nil
}

// Payload returns the non-empty form values. Empty inputs are dropped, not
// sent as empty strings.
func (s State) Payload() types.Record {
	payload := make(types.Record)
	for _, f := range s.Fields() {
		if v := s.Values[f.Name]; v != "" {
			payload[f.Name] = v
		}
	}
	return payload
}

func (s State) submit() (State, []Effect) {
	if !s.Form.IsOpen() || s.Submitting {
		return s, nil
	}
	if len(s.Fields()) == 0 {
		return s.fail("save", "Save failed: ", ErrNoFields)
	}

	effect := SendRecord{
		Session: s.FormSession,
		Method:  http.MethodPost,
		Path:    api.CollectionPath(s.Model),
		Body:    s.Payload(),
	}
	if id, ok := s.Form.EditingID(); ok {
		effect.Method = http.MethodPut
		effect.Path = api.ItemPath(s.Model, id)
	}

	s.Submitting = true
	return s, []Effect{effect}
}
