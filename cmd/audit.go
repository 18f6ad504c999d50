package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/amckenna/riskline/internal/auditstore"
	"github.com/amckenna/riskline/internal/contract"
	"github.com/amckenna/riskline/schema"
)

// auditSetup loads minimal configuration needed for audit operations.
// This is used by commands that need audit access without full shared setup.
func auditSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend, connStr, err := auditBackendConfig()
	if err != nil {
		return err
	}

	store, err = auditstore.NewStore(backend, connStr)
	if err != nil {
		return fmt.Errorf("failed to initialize audit store: %w", err)
	}

	cfg.AuditBackend = backend
	cfg.AuditDBConnect = connStr
	cfg.ResultLimit = viper.GetInt("limit")
	if cfg.ResultLimit <= 0 {
		cfg.ResultLimit = contract.DefaultResultLimit
	}

	return nil
}

// auditMigrateSetup loads minimal configuration needed for migrate
// operations. It does NOT open the store or create tables, allowing
// migrations to run on a fresh database.
func auditMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend, connStr, err := auditBackendConfig()
	if err != nil {
		return err
	}

	cfg.AuditBackend = backend
	cfg.AuditDBConnect = connStr

	return nil
}

// auditBackendConfig resolves and validates the audit backend settings.
func auditBackendConfig() (schema.DatabaseBackend, string, error) {
	backendStr := viper.GetString("audit-backend")
	connStr := viper.GetString("audit-db-connect")

	backend := schema.DatabaseBackend(backendStr)
	if backendStr == "" {
		backend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidAuditBackends[backend]; !ok {
		return "", "", fmt.Errorf("invalid audit backend '%s'. must be sqlite, mysql, postgresql, none", backendStr)
	}

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", err
	}

	return backend, connStr, nil
}

// auditCmd groups the audit trail maintenance subcommands.
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect and maintain the analysis audit trail.",
	Long:  `Inspect recorded analysis events and manage the audit database schema.`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// auditEventsCmd lists the most recent audit events.
var auditEventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List recent analysis and report events.",
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return auditSetup()
	},
	Run: func(cmd *cobra.Command, _ []string) {
		events, err := store.ListEvents(cfg.ResultLimit)
		if err != nil {
			contract.LogFatal("Cannot list audit events", err)
		}
		if len(events) == 0 {
			cmd.Println("No audit events recorded.")
			return
		}
		for _, event := range events {
			cmd.Printf("%6d  %s  %s  %v\n",
				event.ID,
				event.OccurredAt.Format("2006-01-02 15:04:05"),
				event.Name,
				event.Payload)
		}
	},
}

// auditMigrateCmd applies schema migrations to the audit database.
var auditMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply audit database schema migrations.",
	Long: `Apply schema migrations to the audit database.

By default migrates to the latest version. Use --target-version to
migrate to a specific version, or 0 to roll back to the initial state.`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return auditMigrateSetup()
	},
	Run: func(cmd *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := auditstore.Migrate(cfg.AuditBackend, cfg.AuditDBConnect, targetVersion); err != nil {
			contract.LogFatal("Cannot run audit migrations", err)
		}
		cmd.Println("Audit migrations applied.")
	},
}
