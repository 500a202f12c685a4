package cli

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"termometro-trader/internal/ledger"
	"termometro-trader/internal/store"
)

// newRecalcCmd recomputes every discipline score under the configured
// policy and rewrites the ledger.
func newRecalcCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recalc",
		Short: "Recalculate discipline scores",
		Long: `Recompute the discipline score of every trade under the configured
policy, replaying the ledger in date order, and rewrite the ledger.`,
		Example: `  termometro recalc
  termometro recalc --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			session, _, err := app.loadSession()
			if err != nil {
				output.Error("Failed to load trade ledger: %v", err)
				return err
			}

			changed := session.RecalcDiscipline()
			if changed == 0 {
				output.Info("All discipline scores already match the %s policy.", app.Config.Discipline.Policy)
				return nil
			}

			if dryRun {
				output.Info("%d trade(s) would change under the %s policy (dry run, ledger untouched).",
					changed, app.Config.Discipline.Policy)
				return nil
			}

			if err := app.Ledger.Save(session.Trades()); err != nil {
				output.Error("Failed to save trade ledger: %v", err)
				return err
			}
			output.Success("✓ %d discipline score(s) updated under the %s policy", changed, app.Config.Discipline.Policy)
			return nil
		},
	}

	cmd.Flags().Bool("dry-run", false, "report changes without rewriting the ledger")
	return cmd
}

// newExportCmd writes the current ledger to a new CSV, reproducing the
// column contract byte for byte.
func newExportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export the trade ledger",
		Long:  "Write the current trade ledger to a CSV file in the journal column contract.",
		Example: `  termometro export
  termometro export trades_atualizado.csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			outFile := "trades_atualizado.csv"
			if len(args) > 0 {
				outFile = args[0]
			}

			session, _, err := app.loadSession()
			if err != nil {
				output.Error("Failed to load trade ledger: %v", err)
				return err
			}
			trades := session.Trades()
			if len(trades) == 0 {
				output.Warning("No trades to export.")
				return nil
			}

			file, err := os.Create(outFile)
			if err != nil {
				output.Error("Failed to create file: %v", err)
				return err
			}
			defer file.Close()

			if err := ledger.WriteTrades(file, trades); err != nil {
				output.Error("Failed to write trades: %v", err)
				return err
			}

			output.Success("✓ Exported %d trades to %s", len(trades), outFile)
			return nil
		},
	}
	return cmd
}

// newSyncCmd mirrors the CSV ledgers into the SQLite store.
func newSyncCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Mirror the ledgers into the SQLite store",
		Long: `Rebuild the SQLite mirror from the CSV ledgers. The mirror backs
filtered queries and survives a corrupted CSV; the CSV stays canonical.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if !app.Config.Store.Enabled {
				output.Warning("Store is disabled. Enable it under [store] in config.toml.")
				return nil
			}

			session, _, err := app.loadSession()
			if err != nil {
				output.Error("Failed to load trade ledger: %v", err)
				return err
			}

			db, err := store.NewSQLiteStore(app.Config.Store.Path)
			if err != nil {
				output.Error("Failed to open store: %v", err)
				return err
			}
			defer db.Close()

			if err := db.ReplaceTrades(ctx, session.Trades()); err != nil {
				output.Error("Failed to mirror trades: %v", err)
				return err
			}
			output.Success("✓ Mirrored %d trades to %s", len(session.Trades()), app.Config.Store.Path)

			days := app.loadContextDays()
			if len(days) > 0 {
				if err := db.ReplaceContextDays(ctx, days); err != nil {
					output.Error("Failed to mirror context days: %v", err)
					return err
				}
				output.Success("✓ Mirrored %d context days", len(days))
			}
			return nil
		},
	}
	return cmd
}
