package types

// NotificationKind tags a notification as success or error
type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

// Notification is a transient message shown by the panel
type Notification struct {
	ID      int              `json:"id"`
	Kind    NotificationKind `json:"kind"`
	Message string           `json:"message"`
}
