package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/studiowebux/restadmin/internal/types"
)

func initTestHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	if err := Initialize(); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	return home
}

func TestInitialize_CreatesConfigDir(t *testing.T) {
	home := initTestHome(t)

	want := filepath.Join(home, ".restadmin")
	if ConfigDir != want {
		t.Errorf("ConfigDir = %s, want %s", ConfigDir, want)
	}
	if info, err := os.Stat(ConfigDir); err != nil || !info.IsDir() {
		t.Errorf("Expected config dir to exist: %v", err)
	}
	if DatabasePath != filepath.Join(want, "restadmin.db") {
		t.Errorf("Unexpected DatabasePath %s", DatabasePath)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	initTestHome(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.BaseURL != defaultBaseURL {
		t.Errorf("BaseURL = %s, want %s", cfg.BaseURL, defaultBaseURL)
	}
	if cfg.Server.Addr != defaultServerAddr {
		t.Errorf("Server.Addr = %s", cfg.Server.Addr)
	}
	if cfg.Server.Database != DatabasePath {
		t.Errorf("Server.Database = %s, want %s", cfg.Server.Database, DatabasePath)
	}
	if cfg.LogFile != LogPath {
		t.Errorf("LogFile = %s, want %s", cfg.LogFile, LogPath)
	}
}

func TestLoad_ReadsModels(t *testing.T) {
	home := initTestHome(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
base_url: http://api.local:9000
headers:
  X-Api-Key: secret
log_file: ~/logs/admin.log
models:
  - name: user
    fields:
      - name: id
        type: hidden
      - name: name
        required: true
      - name: age
        type: number
server:
  addr: ":9000"
`
	if err := os.WriteFile(path, []byte(content), FilePermissions); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.BaseURL != "http://api.local:9000" {
		t.Errorf("BaseURL = %s", cfg.BaseURL)
	}
	if cfg.Headers["x-api-key"] != "secret" {
		t.Errorf("Expected header to be loaded, got %v", cfg.Headers)
	}
	if cfg.LogFile != filepath.Join(home, "logs", "admin.log") {
		t.Errorf("LogFile not expanded: %s", cfg.LogFile)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("Server.Addr = %s", cfg.Server.Addr)
	}

	want := map[string]types.ModelDef{
		"user": {Name: "user", Fields: []types.FieldDef{
			{Name: "id", Type: "hidden"},
			{Name: "name", Required: true},
			{Name: "age", Type: "number"},
		}},
	}
	if diff := cmp.Diff(want, cfg.ModelDefs()); diff != "" {
		t.Errorf("ModelDefs mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	initTestHome(t)
	t.Setenv("RESTADMIN_BASE_URL", "http://from-env:1234")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.BaseURL != "http://from-env:1234" {
		t.Errorf("BaseURL = %s, want env override", cfg.BaseURL)
	}
}

func TestLoad_RejectsDuplicateModels(t *testing.T) {
	initTestHome(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "models:\n  - name: user\n  - name: user\n"
	if err := os.WriteFile(path, []byte(content), FilePermissions); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Expected error for duplicate model")
	}
}
