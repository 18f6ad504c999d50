// Package cmd defines the command-line interface for riskline.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/amckenna/riskline/internal/contract"
	"github.com/amckenna/riskline/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(auditCmd)

	// Add the audit subcommands to the parent audit command
	auditCmd.AddCommand(auditEventsCmd)
	auditCmd.AddCommand(auditMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().StringP("output", "o", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output directly (overrides stdout)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("audit-backend", string(schema.SQLiteBackend), "Audit backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("audit-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Project metadata flags map onto nested config keys, so they need
	// explicit bindings rather than BindPFlags.
	rootCmd.PersistentFlags().String("project-name", "", "Project name shown in report headers")
	rootCmd.PersistentFlags().Float64("project-budget", 0, "Total project budget in dollars")
	rootCmd.PersistentFlags().Float64("project-duration", 0, "Planned project duration in days")
	if err := viper.BindPFlag("project.name", rootCmd.PersistentFlags().Lookup("project-name")); err != nil {
		contract.LogFatal("Error binding project name flag", err)
	}
	if err := viper.BindPFlag("project.budget", rootCmd.PersistentFlags().Lookup("project-budget")); err != nil {
		contract.LogFatal("Error binding project budget flag", err)
	}
	if err := viper.BindPFlag("project.duration", rootCmd.PersistentFlags().Lookup("project-duration")); err != nil {
		contract.LogFatal("Error binding project duration flag", err)
	}

	// Bind all flags of reportCmd to Viper
	reportCmd.Flags().Bool("insight", false, "Generate an AI narrative section for the report")
	reportCmd.Flags().String("insight-model", "", "Model to use for the insight narrative")
	reportCmd.Flags().Bool("save", false, "Write the report to an auto-named file instead of stdout")
	if err := viper.BindPFlags(reportCmd.Flags()); err != nil {
		contract.LogFatal("Error binding report flags", err)
	}

	// Bind all flags of auditMigrateCmd to Viper
	auditMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(auditMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding audit migrate flags", err)
	}
}
