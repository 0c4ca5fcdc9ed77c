package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/restadmin/internal/panel"
	"github.com/studiowebux/restadmin/internal/types"
	"go.uber.org/zap"
)

// applyEffects turns panel effects into commands. Log effects run inline.
func (m Model) applyEffects(effects []panel.Effect) tea.Cmd {
	var cmds []tea.Cmd
	for _, effect := range effects {
		switch e := effect.(type) {
		case panel.FetchRecords:
			cmds = append(cmds, m.fetchRecords(e))
		case panel.SendRecord:
			cmds = append(cmds, m.sendRecord(e))
		case panel.DeleteRecord:
			cmds = append(cmds, m.deleteRecord(e))
		case panel.DismissAfter:
			id := e.ID
			cmds = append(cmds, m.tick(e.Delay, func(time.Time) tea.Msg {
				return panel.NotificationExpired{ID: id}
			}))
		case panel.LogError:
			m.logger.Error("operation failed",
				zap.String("op", e.Op),
				zap.String("hint", categorizeError(e.Err)),
				zap.Error(e.Err),
			)
		}
	}
	return tea.Batch(cmds...)
}

// fetchRecords loads the collection
func (m Model) fetchRecords(e panel.FetchRecords) tea.Cmd {
	client, logger := m.client, m.logger
	return func() tea.Msg {
		logger.Debug("fetch", zap.String("path", e.Path))
		out, err := client.Do(context.Background(), http.MethodGet, e.Path, nil, nil)
		if err != nil {
			return panel.LoadFailed{Err: err}
		}
		records, err := types.RecordsFrom(out)
		if err != nil {
			return panel.LoadFailed{Err: err}
		}
		return panel.RecordsLoaded{Records: records}
	}
}

// sendRecord posts or puts the form payload
func (m Model) sendRecord(e panel.SendRecord) tea.Cmd {
	client, logger := m.client, m.logger
	return func() tea.Msg {
		logger.Debug("send", zap.String("method", e.Method), zap.String("path", e.Path))
		result, err := client.Do(context.Background(), e.Method, e.Path, e.Body, nil)
		if err != nil {
			return panel.SubmitFailed{Session: e.Session, Err: err}
		}
		return panel.SubmitSucceeded{Session: e.Session, Result: result}
	}
}

// deleteRecord removes a confirmed record
func (m Model) deleteRecord(e panel.DeleteRecord) tea.Cmd {
	client, logger := m.client, m.logger
	return func() tea.Msg {
		logger.Debug("delete", zap.String("path", e.Path))
		if _, err := client.Do(context.Background(), http.MethodDelete, e.Path, nil, nil); err != nil {
			return panel.DeleteFailed{ID: e.ID, Err: err}
		}
		return panel.DeleteSucceeded{ID: e.ID}
	}
}

// copySelected copies the highlighted record to the clipboard as JSON
func (m Model) copySelected() tea.Cmd {
	id := m.selectedID()
	rec, ok := m.state.Record(id)
	if !ok {
		return notify(types.NotificationError, "Copy failed: Record not found")
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return notify(types.NotificationError, "Copy failed: "+err.Error())
	}

	write := m.copyToClipboard
	return func() tea.Msg {
		if err := write(string(data)); err != nil {
			return panel.Notify{Kind: types.NotificationError, Message: fmt.Sprintf("Failed to copy to clipboard: %v", err)}
		}
		return panel.Notify{Kind: types.NotificationSuccess, Message: fmt.Sprintf("Record %s copied to clipboard", id)}
	}
}

func notify(kind types.NotificationKind, message string) tea.Cmd {
	return func() tea.Msg {
		return panel.Notify{Kind: kind, Message: message}
	}
}
