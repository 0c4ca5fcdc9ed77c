package panel

import (
	"slices"
	"time"

	"github.com/studiowebux/restadmin/internal/types"
)

// NotificationTimeout is how long a notification stays visible
const NotificationTimeout = 3 * time.Second

// notify appends a notification; notifications stack and are never merged
func (s State) notify(kind types.NotificationKind, message string) (State, Effect) {
	s.nextNoteID++
	n := types.Notification{ID: s.nextNoteID, Kind: kind, Message: message}
	s.Notifications = append(slices.Clip(s.Notifications), n)
	return s, DismissAfter{ID: n.ID, Delay: NotificationTimeout}
}

func (s State) dismiss(id int) State {
	s.Notifications = slices.DeleteFunc(slices.Clone(s.Notifications), func(n types.Notification) bool {
		return n.ID == id
	})
	return s
}
