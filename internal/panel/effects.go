package panel

import (
	"time"

	"github.com/studiowebux/restadmin/internal/types"
)

// Effect is work Update asks the caller to perform
type Effect interface {
	isEffect()
}

// FetchRecords lists the model; the result comes back as RecordsLoaded or LoadFailed
type FetchRecords struct {
	Model string
	Path  string
}

// SendRecord creates or updates a record; the result comes back as
// SubmitSucceeded or SubmitFailed carrying the same Session
type SendRecord struct {
	Session int
	Method  string
	Path    string
	Body    types.Record
}

// DeleteRecord deletes a record; the result comes back as DeleteSucceeded or DeleteFailed
type DeleteRecord struct {
	ID   string
	Path string
}

// DismissAfter schedules NotificationExpired for a notification
type DismissAfter struct {
	ID    int
	Delay time.Duration
}

// LogError writes an error to the developer log
type LogError struct {
	Op  string
	Err error
}

func (FetchRecords) isEffect() {}
func (SendRecord) isEffect()   {}
func (DeleteRecord) isEffect() {}
func (DismissAfter) isEffect() {}
func (LogError) isEffect()     {}
