package panel

import "github.com/studiowebux/restadmin/internal/types"

// Event is an input to Update
type Event interface {
	isEvent()
}

// RefreshRequested reloads the record list
type RefreshRequested struct{}

// RecordsLoaded carries a freshly fetched record list
type RecordsLoaded struct {
	Records []types.Record
}

// LoadFailed reports a failed list request
type LoadFailed struct {
	Err error
}

// AddRequested opens the form in create mode
type AddRequested struct{}

// EditRequested opens the form for the record with the given id
type EditRequested struct {
	ID string
}

// CancelRequested closes the form without saving
type CancelRequested struct{}

// FieldChanged updates one form input
type FieldChanged struct {
	Name  string
	Value string
}

// SubmitRequested saves the form
type SubmitRequested struct{}

// SubmitSucceeded reports a saved record for the form session that sent it
type SubmitSucceeded struct {
	Session int
	Result  any
}

// SubmitFailed reports a failed save for the form session that sent it
type SubmitFailed struct {
	Session int
	Err     error
}

// DeleteRequested asks for confirmation to delete a record
type DeleteRequested struct {
	ID string
}

// DeleteConfirmed proceeds with the pending delete
type DeleteConfirmed struct{}

// DeleteCancelled drops the pending delete
type DeleteCancelled struct{}

// DeleteSucceeded reports a deleted record
type DeleteSucceeded struct {
	ID string
}

// DeleteFailed reports a failed delete
type DeleteFailed struct {
	ID  string
	Err error
}

// SearchChanged applies a new search term to the rendered rows
type SearchChanged struct {
	Term string
}

// NotificationExpired removes a notification
type NotificationExpired struct {
	ID int
}

// Notify shows an arbitrary notification
type Notify struct {
	Kind    types.NotificationKind
	Message string
}

func (RefreshRequested) isEvent()    {}
func (RecordsLoaded) isEvent()       {}
func (LoadFailed) isEvent()          {}
func (AddRequested) isEvent()        {}
func (EditRequested) isEvent()       {}
func (CancelRequested) isEvent()     {}
func (FieldChanged) isEvent()        {}
func (SubmitRequested) isEvent()     {}
func (SubmitSucceeded) isEvent()     {}
func (SubmitFailed) isEvent()        {}
func (DeleteRequested) isEvent()     {}
func (DeleteConfirmed) isEvent()     {}
func (DeleteCancelled) isEvent()     {}
func (DeleteSucceeded) isEvent()     {}
func (DeleteFailed) isEvent()        {}
func (SearchChanged) isEvent()       {}
func (NotificationExpired) isEvent() {}
func (Notify) isEvent()              {}
