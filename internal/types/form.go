package types

// FormMode identifies which shape a FormState has
type FormMode int

const (
	FormModeClosed FormMode = iota
	FormModeCreating
	FormModeEditing
)

// String returns a readable name for the mode
func (m FormMode) String() string {
	switch m {
	case FormModeCreating:
		return "creating"
	case FormModeEditing:
		return "editing"
	default:
		return "closed"
	}
}

// FormState is the single edit session of the panel: closed, creating a
// new record, or editing the record with a given id.
type FormState struct {
	mode FormMode
	id   string
}

// FormClosed returns the state with no form shown
func FormClosed() FormState {
	return FormState{mode: FormModeClosed}
}

// FormCreating returns the state of a form that will create a record
func FormCreating() FormState {
	return FormState{mode: FormModeCreating}
}

// FormEditing returns the state of a form editing the record with the given id
func FormEditing(id string) FormState {
	return FormState{mode: FormModeEditing, id: id}
}

// Mode returns the state's shape
func (f FormState) Mode() FormMode {
	return f.mode
}

// IsOpen reports whether the form modal is shown
func (f FormState) IsOpen() bool {
	return f.mode != FormModeClosed
}

// EditingID returns the id under edit, if any
func (f FormState) EditingID() (string, bool) {
	if f.mode != FormModeEditing {
		return "", false
	}
	return f.id, true
}

// String implements fmt.Stringer
func (f FormState) String() string {
	if f.mode == FormModeEditing {
		return "editing(" + f.id + ")"
	}
	return f.mode.String()
}
