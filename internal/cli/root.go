package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"termometro-trader/internal/config"
	"termometro-trader/internal/journal"
	"termometro-trader/internal/ledger"
	"termometro-trader/internal/logging"
	"termometro-trader/internal/models"
)

// Version information
const (
	Version = "0.1.0"
)

// App holds the application dependencies.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
	Ledger *ledger.Cache
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
		Ledger: ledger.NewCache(cfg.Journal.TradesFile, logger),
	}

	rootCmd := &cobra.Command{
		Use:   "termometro",
		Short: "Termômetro do Trader - day-trading journal CLI",
		Long: `Termômetro do Trader is a day-trading journal for the terminal.

It keeps a CSV trade ledger and an optional daily market-context ledger,
and derives the equity curve, performance statistics and a composite
daily "temperature" score on every run.

Use 'termometro help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/termometro)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
	rootCmd.AddCommand(newAddCmd(app))
	rootCmd.AddCommand(newReportCmd(app))
	rootCmd.AddCommand(newEquityCmd(app))
	rootCmd.AddCommand(newThermometerCmd(app))
	rootCmd.AddCommand(newContextCmd(app))
	rootCmd.AddCommand(newRecalcCmd(app))
	rootCmd.AddCommand(newExportCmd(app))
	rootCmd.AddCommand(newSyncCmd(app))

	return rootCmd
}

// policyConfig maps the discipline configuration onto the scorer.
func (app *App) policyConfig() journal.PolicyConfig {
	return journal.PolicyConfig{
		MaxTradesPerDay:   app.Config.Discipline.MaxTradesPerDay,
		DailyProfitTarget: app.Config.Discipline.DailyProfitTarget,
		MaxDailyLoss:      app.Config.Discipline.MaxDailyLoss,
	}
}

// loadSession loads the trade ledger into a fresh session. A load
// failure here is fatal: nothing downstream can run without trades.
func (app *App) loadSession() (*journal.Session, *ledger.LoadReport, error) {
	trades, report, err := app.Ledger.Load()
	if err != nil {
		return nil, nil, err
	}
	policy, err := journal.PolicyByName(app.Config.Discipline.Policy)
	if err != nil {
		return nil, nil, err
	}
	return journal.NewSession(trades, policy, app.policyConfig(), app.Logger), report, nil
}

// loadContextDays loads the context ledger, degrading to no context
// when the file is absent or unreadable.
func (app *App) loadContextDays() []models.ContextDay {
	path := app.Config.Journal.ContextFile
	if path == "" {
		return nil
	}
	days, err := ledger.LoadContext(path, app.Logger)
	if err != nil {
		app.Logger.Warn().Err(err).Msg("Context ledger unavailable, direction and risk scores degrade to zero")
		return nil
	}
	return days
}

// addFilterFlags registers the shared view filter flags.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("from", "", "start date filter (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "end date filter (YYYY-MM-DD)")
	cmd.Flags().String("asset", "", "asset substring filter (case-insensitive)")
}

// parseFilter reads the shared view filter flags.
func parseFilter(cmd *cobra.Command) (journal.Filter, error) {
	var f journal.Filter
	if v, _ := cmd.Flags().GetString("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return f, fmt.Errorf("invalid --from date %q: want YYYY-MM-DD", v)
		}
		f.From = t
	}
	if v, _ := cmd.Flags().GetString("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return f, fmt.Errorf("invalid --to date %q: want YYYY-MM-DD", v)
		}
		f.To = t
	}
	f.Asset, _ = cmd.Flags().GetString("asset")
	return f, nil
}

// renderEmptyResult reports the empty-filter state and tells the caller
// whether it handled the error.
func renderEmptyResult(output *Output, err error) bool {
	var empty *journal.EmptyResultError
	if errors.As(err, &empty) {
		output.Info("No trades found with the current filters.")
		return true
	}
	return false
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"version": Version})
			} else {
				output.Printf("Termômetro do Trader v%s\n", Version)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and manage application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			showConfig(output, app.Config)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration files",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("✓ Configuration is valid")
			}
			return nil
		},
	})

	return cmd
}

func showConfig(output *Output, cfg *config.Config) {
	output.Bold("Journal Configuration")
	output.Printf("  Trades File:      %s\n", cfg.Journal.TradesFile)
	output.Printf("  Context File:     %s\n", cfg.Journal.ContextFile)
	output.Printf("  Initial Balance:  %s\n", FormatBRL(cfg.Journal.InitialBalance))
	output.Printf("  Default Asset:    %s\n", cfg.Journal.DefaultAsset)
	output.Printf("  Point Cost:       %s\n", FormatBRL(cfg.Journal.DefaultPointCost))
	output.Println()

	output.Bold("Discipline Configuration")
	output.Printf("  Policy:           %s\n", cfg.Discipline.Policy)
	output.Printf("  Max Trades/Day:   %d\n", cfg.Discipline.MaxTradesPerDay)
	output.Printf("  Profit Target:    %s\n", FormatBRL(cfg.Discipline.DailyProfitTarget))
	output.Printf("  Max Daily Loss:   %s\n", FormatBRL(cfg.Discipline.MaxDailyLoss))
	output.Println()

	output.Bold("Store")
	output.Printf("  Enabled:          %v\n", cfg.Store.Enabled)
	output.Printf("  Path:             %s\n", cfg.Store.Path)
}
