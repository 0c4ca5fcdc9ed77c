package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/studiowebux/restadmin/internal/api"
	"github.com/studiowebux/restadmin/internal/types"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755

	// EnvPrefix prefixes environment overrides (RESTADMIN_BASE_URL, ...)
	EnvPrefix = "RESTADMIN"

	defaultBaseURL    = "http://localhost:8000"
	defaultServerAddr = "localhost:8000"
)

var (
	// ConfigDir is the global configuration directory (~/.restadmin)
	ConfigDir string

	// ConfigFile is the default configuration file
	ConfigFile string

	// DatabasePath is the SQLite database served by `restadmin serve`
	DatabasePath string

	// LogPath is the panel's log file
	LogPath string

	// KeybindsFile holds user keybinding overrides
	KeybindsFile string

	// SessionFile remembers the last opened panel
	SessionFile string
)

// Config is the resolved restadmin configuration
type Config struct {
	BaseURL  string            `mapstructure:"base_url"`
	Headers  map[string]string `mapstructure:"headers"`
	TLS      *api.TLSConfig    `mapstructure:"tls"`
	LogFile  string            `mapstructure:"log_file"`
	Debug    bool              `mapstructure:"debug"`
	Keybinds string            `mapstructure:"keybinds"`
	Models   []types.ModelDef  `mapstructure:"models"`
	Server   ServerConfig      `mapstructure:"server"`
}

// ServerConfig configures the CRUD server
type ServerConfig struct {
	Addr     string `mapstructure:"addr"`
	Database string `mapstructure:"database"`
}

// Initialize sets up the configuration directory
// It creates ~/.restadmin/ if it doesn't exist
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	// Set global paths
	ConfigDir = filepath.Join(homeDir, ".restadmin")
	ConfigFile = filepath.Join(ConfigDir, "config.yaml")
	DatabasePath = filepath.Join(ConfigDir, "restadmin.db")
	LogPath = filepath.Join(ConfigDir, "restadmin.log")
	KeybindsFile = filepath.Join(ConfigDir, "keybinds.yaml")
	SessionFile = filepath.Join(ConfigDir, "session.json")

	if err := os.MkdirAll(ConfigDir, DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", ConfigDir, err)
	}

	return nil
}

// Load reads configuration from the provided path. If path is empty, uses
// ConfigFile. A missing file yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		path = ConfigFile
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("base_url", defaultBaseURL)
	v.SetDefault("log_file", LogPath)
	v.SetDefault("debug", false)
	v.SetDefault("keybinds", KeybindsFile)
	v.SetDefault("server.addr", defaultServerAddr)
	v.SetDefault("server.database", DatabasePath)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.LogFile = expandHome(cfg.LogFile)
	cfg.Keybinds = expandHome(cfg.Keybinds)
	cfg.Server.Database = expandHome(cfg.Server.Database)
	if cfg.TLS != nil {
		cfg.TLS.CertFile = expandHome(cfg.TLS.CertFile)
		cfg.TLS.KeyFile = expandHome(cfg.TLS.KeyFile)
		cfg.TLS.CAFile = expandHome(cfg.TLS.CAFile)
	}

	if err := validate(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ModelDefs indexes the configured models by name
func (c Config) ModelDefs() map[string]types.ModelDef {
	defs := make(map[string]types.ModelDef, len(c.Models))
	for _, m := range c.Models {
		defs[m.Name] = m
	}
	return defs
}

// validate validates the model declarations
func validate(cfg Config) error {
	seen := make(map[string]bool)
	for i, m := range cfg.Models {
		if m.Name == "" {
			return fmt.Errorf("model %d: name is required", i)
		}
		if seen[m.Name] {
			return fmt.Errorf("model %q declared twice", m.Name)
		}
		seen[m.Name] = true
		for j, f := range m.Fields {
			if f.Name == "" {
				return fmt.Errorf("model %q field %d: name is required", m.Name, j)
			}
		}
	}
	return nil
}

// expandHome expands a leading ~/ to the home directory
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(homeDir, path[2:])
}
