package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/studiowebux/restadmin/internal/api"
	"github.com/studiowebux/restadmin/internal/cli"
	"github.com/studiowebux/restadmin/internal/config"
	"github.com/studiowebux/restadmin/internal/keybinds"
	"github.com/studiowebux/restadmin/internal/logging"
	"github.com/studiowebux/restadmin/internal/route"
	"github.com/studiowebux/restadmin/internal/server"
	"github.com/studiowebux/restadmin/internal/session"
	"github.com/studiowebux/restadmin/internal/store"
	"github.com/studiowebux/restadmin/internal/tui"
	"github.com/studiowebux/restadmin/internal/types"
	"github.com/studiowebux/restadmin/internal/version"
	"go.uber.org/zap"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "restadmin [panel-url]",
	Short: "REST admin panel for the terminal",
	Long: `restadmin is a generic CRUD admin panel for REST APIs that follow the
/api/{model} contract. It ships the matching SQLite-backed server.

The panel URL names the model: http://localhost:8000/admin/user edits the
"user" model through http://localhost:8000/api/user. A bare model name uses
base_url from the config file. Without a model, the server's models are
listed for selection.

Examples:
  restadmin serve                                  # Start the CRUD server
  restadmin http://localhost:8000/admin/user       # Open the panel
  restadmin user                                   # Same, using base_url
  restadmin --last                                 # Reopen the last panel
  restadmin list user -o json --query '[].name'    # Print records
  restadmin create user -e name=Ada -e age=36      # Create a record
  restadmin delete user 3 --yes                    # Delete without prompt`,
	Version: version.Version,
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		sessions := session.NewManager("")
		if err := sessions.Load(); err != nil {
			return err
		}
		arg := ""
		if len(args) > 0 {
			arg = args[0]
		} else if flagLast {
			if arg = sessions.Get().PanelURL(); arg == "" {
				return fmt.Errorf("no panel has been opened yet")
			}
		}
		return runTUI(cmd, cfg, sessions, arg)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the CRUD server for the configured models",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return runServe(cmd, cfg)
	},
}

var listCmd = &cobra.Command{
	Use:   "list <panel-url>",
	Short: "Print the records of a model",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, client, target, err := setupClient(args[0])
		if err != nil {
			return err
		}
		return cli.List(cmd.Context(), client, cli.ListOptions{
			Model:        target.Model,
			OutputFormat: flagOutput,
			Filter:       flagFilter,
			Query:        flagQuery,
			Models:       cfg.ModelDefs(),
		}, cmd.OutOrStdout())
	},
}

var createCmd = &cobra.Command{
	Use:   "create <panel-url>",
	Short: "Create a record from key=value pairs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, target, err := setupClient(args[0])
		if err != nil {
			return err
		}
		return cli.Create(cmd.Context(), client, cli.WriteOptions{
			Model:        target.Model,
			Assignments:  flagExtraVars,
			OutputFormat: flagOutput,
		}, cmd.OutOrStdout())
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <panel-url> <id>",
	Short: "Update a record from key=value pairs",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, target, err := setupClient(args[0])
		if err != nil {
			return err
		}
		return cli.Update(cmd.Context(), client, cli.WriteOptions{
			Model:        target.Model,
			ID:           args[1],
			Assignments:  flagExtraVars,
			OutputFormat: flagOutput,
		}, cmd.OutOrStdout())
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <panel-url> <id>",
	Short: "Delete a record",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, target, err := setupClient(args[0])
		if err != nil {
			return err
		}
		return cli.Delete(cmd.Context(), client, cli.DeleteOptions{
			Model: target.Model,
			ID:    args[1],
			Yes:   flagYes,
		}, cmd.OutOrStdout())
	},
}

var keybindsCmd = &cobra.Command{
	Use:   "keybinds",
	Short: "Print the default keybindings or write them to the keybinds file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if !flagInit {
			registry, err := keybinds.LoadOrDefault(cfg.Keybinds)
			if err != nil {
				return err
			}
			for _, ctx := range keybinds.AllContexts {
				for _, b := range registry.ListBindings(ctx) {
					if b.Context == ctx {
						fmt.Fprintf(cmd.OutOrStdout(), "%-8s %-10q %s\n", b.Context, b.Key, b.Action)
					}
				}
			}
			return nil
		}
		if err := keybinds.SaveConfig(keybinds.ExportDefaults(), cfg.Keybinds); err != nil {
			return fmt.Errorf("failed to write %s: %w", cfg.Keybinds, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", cfg.Keybinds)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and check for updates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "restadmin %s\n", version.Version)
		if !flagCheck {
			return nil
		}
		rel, err := version.NewChecker().Check(cmd.Context(), version.Version)
		if err != nil {
			return err
		}
		if rel.Available {
			fmt.Fprintf(cmd.OutOrStdout(), "Update available: %s (%s)\n", rel.Version, rel.URL)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "Up to date")
		}
		return nil
	},
}

// Global flags
var (
	flagConfig string
	flagDebug  bool
)

// Flags for list/create/update/delete
var (
	flagOutput    string
	flagFilter    string
	flagQuery     string
	flagExtraVars []string
	flagYes       bool
)

// Flags for serve
var (
	flagAddr     string
	flagDatabase string
)

var (
	flagLast  bool
	flagInit  bool
	flagCheck bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default ~/.restadmin/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	rootCmd.Flags().BoolVar(&flagLast, "last", false, "Reopen the last panel")

	listCmd.Flags().StringVarP(&flagOutput, "output", "o", "text", "Output format (json/yaml/text)")
	listCmd.Flags().StringVar(&flagFilter, "filter", "", "JMESPath filter expression")
	listCmd.Flags().StringVarP(&flagQuery, "query", "q", "", "JMESPath query expression")

	createCmd.Flags().StringArrayVarP(&flagExtraVars, "extra-vars", "e", []string{}, "Set field (key=value), can be repeated")
	createCmd.Flags().StringVarP(&flagOutput, "output", "o", "text", "Output format (json/yaml/text)")
	updateCmd.Flags().StringArrayVarP(&flagExtraVars, "extra-vars", "e", []string{}, "Set field (key=value), can be repeated")
	updateCmd.Flags().StringVarP(&flagOutput, "output", "o", "text", "Output format (json/yaml/text)")

	deleteCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Skip the confirmation prompt")

	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (default from config, localhost:8000)")
	serveCmd.Flags().StringVar(&flagDatabase, "db", "", "SQLite database path (default ~/.restadmin/restadmin.db)")

	keybindsCmd.Flags().BoolVar(&flagInit, "init", false, "Write the defaults to the keybinds file")
	versionCmd.Flags().BoolVar(&flagCheck, "check", false, "Check for a newer release")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(keybindsCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig initializes ~/.restadmin and reads the config file
func loadConfig() (config.Config, error) {
	if err := config.Initialize(); err != nil {
		return config.Config{}, fmt.Errorf("failed to initialize config: %w", err)
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	if flagDebug {
		cfg.Debug = true
	}
	return cfg, nil
}

func newClient(cfg config.Config, baseURL string) (*api.Client, error) {
	return api.NewClient(api.Options{
		BaseURL: baseURL,
		Headers: cfg.Headers,
		TLS:     cfg.TLS,
	})
}

// setupClient resolves a panel URL that must name a model
func setupClient(panelURL string) (config.Config, *api.Client, route.Target, error) {
	cfg, err := loadConfig()
	if err != nil {
		return config.Config{}, nil, route.Target{}, err
	}

	target, err := route.Parse(panelURL, cfg.BaseURL)
	if err != nil {
		return config.Config{}, nil, route.Target{}, err
	}
	if target.Model == "" {
		return config.Config{}, nil, route.Target{}, fmt.Errorf("no model in %q (expected .../admin/<model> or <model>)", panelURL)
	}

	client, err := newClient(cfg, target.BaseURL)
	if err != nil {
		return config.Config{}, nil, route.Target{}, err
	}
	return cfg, client, target, nil
}

func runTUI(cmd *cobra.Command, cfg config.Config, sessions *session.Manager, panelURL string) error {
	logger, err := logging.New(logging.Options{Path: cfg.LogFile, Debug: cfg.Debug})
	if err != nil {
		return err
	}
	defer logger.Sync()

	registry, err := keybinds.LoadOrDefault(cfg.Keybinds)
	if err != nil {
		return err
	}

	target, err := route.Parse(panelURL, cfg.BaseURL)
	if err != nil {
		return err
	}

	client, err := newClient(cfg, target.BaseURL)
	if err != nil {
		return err
	}

	model := target.Model
	local, configured := cfg.ModelDefs()[model]
	configured = configured && len(local.Fields) > 0

	// The server publishes field definitions; they drive the form when the
	// config has none for the model.
	var served map[string]types.ModelDef
	if model == "" || !configured {
		defs, err := client.Models(cmd.Context())
		if err != nil && model == "" {
			return fmt.Errorf("failed to list models from %s: %w", target.BaseURL, err)
		}
		if err != nil {
			logger.Warn("failed to fetch model definitions", zap.Error(err))
		}
		served = make(map[string]types.ModelDef, len(defs))
		names := make([]string, 0, len(defs))
		for _, def := range defs {
			served[def.Name] = def
			names = append(names, def.Name)
		}
		if model == "" {
			if model, err = cli.SelectModel(names); err != nil {
				return err
			}
			local, configured = cfg.ModelDefs()[model]
			configured = configured && len(local.Fields) > 0
		}
	}

	logger.Info("panel started", zap.String("base_url", target.BaseURL), zap.String("model", model))
	if err := sessions.Remember(target.BaseURL, model); err != nil {
		logger.Warn("failed to save session", zap.Error(err))
	}

	var opts = tui.Options{
		Client:   client,
		Model:    model,
		Logger:   logger,
		Keybinds: registry,
	}
	switch {
	case configured:
		opts.Inputs = local.FormInputs()
	case len(served[model].Fields) > 0:
		opts.Inputs = served[model].FormInputs()
	default:
		logger.Warn("no field definitions, inferring from records", zap.String("model", model))
	}
	return tui.Run(opts)
}

func runServe(cmd *cobra.Command, cfg config.Config) error {
	logger, err := logging.New(logging.Options{Debug: cfg.Debug})
	if err != nil {
		return err
	}
	defer logger.Sync()

	addr := cfg.Server.Addr
	if flagAddr != "" {
		addr = flagAddr
	}
	dbPath := cfg.Server.Database
	if flagDatabase != "" {
		dbPath = flagDatabase
	}
	if len(cfg.Models) == 0 {
		logger.Warn("no models configured", zap.String("config", config.ConfigFile))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, dbPath, cfg.Models)
	if err != nil {
		return err
	}
	defer st.Close()

	history, err := st.Migrations(ctx)
	if err != nil {
		return err
	}
	for _, m := range history {
		logger.Debug("migration", zap.Int("version", m.Version), zap.String("name", m.Name))
	}
	logger.Info("database ready", zap.String("path", dbPath), zap.Int("schema_version", len(history)))

	srv := server.New(st, addr, logger)
	if err := srv.Start(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Serving %v on %s (ctrl+c to stop)\n", st.Models(), srv.Address())

	<-ctx.Done()
	logger.Info("shutting down")
	return srv.Stop()
}
