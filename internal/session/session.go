package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/studiowebux/restadmin/internal/config"
)

// Session remembers the last panel that was opened
type Session struct {
	BaseURL  string    `json:"baseUrl"`
	Model    string    `json:"model"`
	OpenedAt time.Time `json:"openedAt"`
}

// PanelURL rebuilds the panel URL the session was opened with
func (s Session) PanelURL() string {
	if s.BaseURL == "" || s.Model == "" {
		return ""
	}
	return s.BaseURL + "/admin/" + s.Model
}

// Manager loads and saves the session file
type Manager struct {
	path    string
	session Session
}

// NewManager creates a manager for path; an empty path uses ~/.restadmin/session.json
func NewManager(path string) *Manager {
	if path == "" {
		path = config.SessionFile
	}
	return &Manager{path: path}
}

// Load reads the session file. A missing file leaves an empty session.
func (m *Manager) Load() error {
	data, err := os.ReadFile(m.path)
	if errors.Is(err, fs.ErrNotExist) {
		m.session = Session{}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read session file: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("failed to parse session file: %w", err)
	}
	m.session = s
	return nil
}

// Save writes the session to disk
func (m *Manager) Save() error {
	data, err := json.MarshalIndent(m.session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(m.path), config.DirPermissions); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	if err := os.WriteFile(m.path, data, config.FilePermissions); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Get returns the current session
func (m *Manager) Get() Session {
	return m.session
}

// Remember records the opened panel and saves it
func (m *Manager) Remember(baseURL, model string) error {
	m.session = Session{BaseURL: baseURL, Model: model, OpenedAt: time.Now().UTC()}
	return m.Save()
}
