package cmd

import (
	"fmt"

	"github.com/huangsam/covgate/internal/contract"
	"github.com/huangsam/covgate/internal/history"
	"github.com/huangsam/covgate/internal/outwriter"
	"github.com/huangsam/covgate/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historySetup loads minimal configuration needed for history operations.
// This is used by commands that need history access without full shared setup.
func historySetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get history-related config values
	backend := schema.DatabaseBackend(viper.GetString("history-backend"))
	connStr := viper.GetString("history-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Get output-related config values (used by list and export commands)
	cfg.Output = schema.OutputMode(viper.GetString("output"))
	if cfg.Output == "" {
		cfg.Output = schema.TextOut
	}
	cfg.OutputFile = viper.GetString("output-file")
	cfg.Precision = viper.GetInt("precision")
	if cfg.Precision == 0 {
		cfg.Precision = contract.DefaultPrecision
	}

	// Initialize the stores with the loaded config
	if err := history.InitStores(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize history: %w", err)
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr

	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize stores or create tables,
// allowing migrations to run on a fresh database.
func historyMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("history-backend"))
	connStr := viper.GetString("history-db-connect")

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = history.GetHistoryDBFilePath()
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr

	return nil
}

// historyMigrateSetupWrapper wraps historyMigrateSetup to provide PreRunE for migrate command.
func historyMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return historyMigrateSetup()
}

// historyCmd focused on gate run history management.
//
// Note: History subcommands use minimal initialization (historySetup) instead
// of the full sharedSetup used by the check command. This avoids Git repo
// validation and complex config processing for simple history operations.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage recorded gate runs",
	Long: `Manage the gate run history used for auditing and trend tracking.

When enabled, covgate records every gate run, storing:
- Run metadata (timestamp, repository, refs)
- The classification, enforcement mode, and verdict
- Head and base coverage per axis and the reasons behind the verdict

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show history statistics and connection info
  list    - Display recent gate runs
  export  - Export runs to Parquet for analytics
  clear   - Remove all recorded runs
  migrate - Run database schema migrations

Examples:
  # Check history status
  covgate history status

  # Show the last 20 runs
  covgate history list

  # Export for offline analysis
  covgate history export --output-file runs.parquet`,
}

// historyStatusCmd shows history status.
var historyStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Display history statistics and connection details",
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := history.Manager.GetGateStore()
		if store == nil {
			fmt.Println("History tracking is disabled.")
			return
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		history.PrintHistoryStatus(status)
	},
}

// historyListCmd lists recent gate runs.
var historyListCmd = &cobra.Command{
	Use:     "list",
	Short:   "Display recent gate runs, newest first",
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := history.Manager.GetGateStore()
		if store == nil {
			fmt.Println("History tracking is disabled.")
			return
		}
		records, err := store.ListRuns(viper.GetInt("limit"))
		if err != nil {
			contract.LogFatal("Failed to list gate runs", err)
		}
		if err := outwriter.NewOutWriter().WriteHistory(records, cfg); err != nil {
			contract.LogFatal("Could not write gate runs", err)
		}
	},
}

// historyClearCmd clears the recorded runs.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded gate runs",
	Long: `Delete all recorded gate runs from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the history table

Examples:
  # Clear SQLite history (default)
  covgate history clear

  # Clear MySQL history (set connection string via env variable)
  COVGATE_HISTORY_BACKEND=mysql COVGATE_HISTORY_DB_CONNECT="..." covgate history clear`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := history.ClearHistory(cfg.HistoryBackend, history.GetHistoryDBFilePath(), cfg.HistoryDBConnect); err != nil {
			contract.LogFatal("Failed to clear history", err)
		}
		fmt.Println("History cleared successfully.")
	},
}

// historyExportCmd exports recorded runs to Parquet.
var historyExportCmd = &cobra.Command{
	Use:     "export",
	Short:   "Export recorded gate runs to a Parquet file",
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := history.ExecuteHistoryExport(cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export history", err)
		}
	},
}

// historyMigrateCmd runs database schema migrations.
var historyMigrateCmd = &cobra.Command{
	Use:     "migrate",
	Short:   "Run database schema migrations for the history store",
	PreRunE: historyMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := history.MigrateHistory(cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
		fmt.Println("Migrations completed successfully.")
	},
}
