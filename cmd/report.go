package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/amckenna/riskline/core"
	"github.com/amckenna/riskline/internal/auditstore"
	"github.com/amckenna/riskline/internal/contract"
	"github.com/amckenna/riskline/internal/insight"
	"github.com/amckenna/riskline/internal/loader"
	"github.com/amckenna/riskline/internal/outwriter"
)

// reportCmd assembles and writes the full risk report document.
var reportCmd = &cobra.Command{
	Use:   "report [input-file]",
	Short: "Assemble a full risk report for a project schedule.",
	Long: `Run the full analysis pipeline and assemble a readable report with a
portfolio summary, a ranked risk table, and per-activity detail sections.

With --insight, an AI-generated narrative section is appended. This calls
the Anthropic API and requires ANTHROPIC_API_KEY to be set; a failed
narrative call degrades to a report without the insight section.

Examples:
  # Print a report for a CSV export to stdout
  riskline report schedule.csv --project-name "Harbor Bridge Retrofit"

  # Write the report to a conventionally named file
  riskline report schedule.csv --save

  # Include the AI narrative section
  riskline report schedule.json --insight`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		records, err := loader.LoadRecords(cfg.InputFile)
		if err != nil {
			contract.LogFatal("Cannot load activities", err)
		}

		result := core.RunAnalysis(cfg, records, store)

		var gen insight.Generator
		if cfg.InsightEnabled {
			anthropicGen, err := insight.NewAnthropicGenerator("", cfg.InsightModel)
			if err != nil {
				contract.LogFatal("Cannot initialize insight generator", err)
			}
			gen = anthropicGen
		}

		report := core.BuildReport(rootCtx, cfg, result, gen)

		if viper.GetBool("save") && cfg.OutputFile == "" {
			cfg.OutputFile = outwriter.DeriveReportFilename(cfg.Project.Name, report.GeneratedAt, ".txt")
		}

		ow := outwriter.NewOutWriter()
		if err := ow.WriteReport(&report, cfg); err != nil {
			contract.LogFatal("Cannot write report", err)
		}

		if store != nil {
			if _, err := store.RecordEvent(auditstore.EventReportExported, time.Now(), map[string]any{
				"project": report.Project,
				"file":    cfg.OutputFile,
			}); err != nil {
				contract.LogWarn("audit event not recorded", err)
			}
		}
	},
}
