package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/amckenna/riskline/core"
	"github.com/amckenna/riskline/internal/contract"
	"github.com/amckenna/riskline/internal/loader"
	"github.com/amckenna/riskline/internal/outwriter"
)

// analyzeCmd runs the risk analysis pipeline and prints ranked assessments.
var analyzeCmd = &cobra.Command{
	Use:   "analyze [input-file]",
	Short: "Score and rank the activities in a project schedule.",
	Long: `Normalize a project schedule export, score every activity across the
risk factors, and print the activities ranked from highest to lowest risk.

The input file may be CSV or JSON. With no input file, a built-in sample
portfolio is analyzed, which is useful for trying out the tool.

Examples:
  # Rank the activities in a CSV export
  riskline analyze schedule.csv

  # Show only the ten riskiest activities
  riskline analyze schedule.json --limit 10

  # Export the full scored portfolio for tracking
  riskline analyze schedule.csv --output csv --output-file scored.csv

  # Columnar export for downstream analytics
  riskline analyze schedule.csv --output parquet --output-file scored.parquet`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		records, err := loader.LoadRecords(cfg.InputFile)
		if err != nil {
			contract.LogFatal("Cannot load activities", err)
		}

		startTime := time.Now()
		result := core.RunAnalysis(cfg, records, store)

		ow := outwriter.NewOutWriter()
		if err := ow.WriteAssessments(result, cfg, time.Since(startTime)); err != nil {
			contract.LogFatal("Cannot write assessment results", err)
		}
	},
}
