package panel

import "github.com/studiowebux/restadmin/internal/types"

// View is a front-end independent description of what to draw
type View struct {
	Model         string
	Loaded        bool
	Columns       []string
	Rows          []RowView
	Search        string
	SearchApplied bool // false once a refresh has re-shown every row
	Modal         *ModalView
	Confirm       *ConfirmView
	Notifications []types.Notification
}

// RowView is a row plus its search visibility
type RowView struct {
	Row
	Hidden bool
}

// ModalView describes the open form
type ModalView struct {
	Mode           types.FormMode
	Title          string
	Fields         []FieldView
	SubmitLabel    string
	SubmitDisabled bool
}

// FieldView is one form input
type FieldView struct {
	Name      string
	InputType string
	Value     string
}

// ConfirmView is the delete confirmation prompt
type ConfirmView struct {
	ID      string
	Message string
}

// VisibleRows returns the rows not hidden by the search
func (v View) VisibleRows() []Row {
	rows := make([]Row, 0, len(v.Rows))
	for _, r := range v.Rows {
		if !r.Hidden {
			rows = append(rows, r.Row)
		}
	}
	return rows
}

// Render projects the state into a view
func (s State) Render() View {
	fields := s.Fields()
	rows := BuildRows(s.Records, fields)

	v := View{
		Model:         s.Model,
		Loaded:        s.Loaded,
		Columns:       Columns(fields),
		Rows:          make([]RowView, len(rows)),
		Search:        s.Search,
		SearchApplied: s.hidden != nil,
		Notifications: s.Notifications,
	}
	for i, r := range rows {
		v.Rows[i] = RowView{Row: r, Hidden: s.Hidden(i)}
	}

	if s.Form.IsOpen() {
		modal := &ModalView{
			Mode:           s.Form.Mode(),
			Title:          createTitle,
			SubmitLabel:    SubmitLabel,
			SubmitDisabled: s.Submitting,
		}
		if s.Form.Mode() == types.FormModeEditing {
			modal.Title = editTitle
		}
		if s.Submitting {
			modal.SubmitLabel = SubmitLoadingLabel
		}
		for _, f := range fields {
			modal.Fields = append(modal.Fields, FieldView{
				Name:      f.Name,
				InputType: f.InputType,
				Value:     s.Values[f.Name],
			})
		}
		v.Modal = modal
	}

	if s.PendingDelete != "" {
		v.Confirm = &ConfirmView{
			ID:      s.PendingDelete,
			Message: "Delete record " + s.PendingDelete + "? This cannot be undone.",
		}
	}

	return v
}
