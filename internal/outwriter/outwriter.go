// Package outwriter has output and writer logic. It is the reference
// rendering collaborator: it owns all visual formatting, pagination and
// file output for reports and ranked assessments.
package outwriter

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/amckenna/riskline/internal/contract"
	"github.com/amckenna/riskline/schema"
)

// OutWriter provides a unified interface for all output operations.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteAssessments prints ranked assessments using the configured
// output format.
func (ow *OutWriter) WriteAssessments(result *schema.AnalysisResult, cfg *contract.Config, duration time.Duration) error {
	return writeAssessmentResults(result, cfg, duration)
}

// WriteReport renders a full report document as text.
func (ow *OutWriter) WriteReport(report *schema.Report, cfg *contract.Config) error {
	return writeReportDocument(report, cfg)
}

// nonFilenameChars matches anything unsafe for a derived filename.
var nonFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// DeriveReportFilename builds the canonical export name,
// Risk_Analysis_<ProjectName>_<ISODate>, with the given extension.
func DeriveReportFilename(projectName string, date time.Time, ext string) string {
	name := strings.TrimSpace(projectName)
	if name == "" {
		name = "Unknown_Project"
	}
	name = strings.ReplaceAll(name, " ", "_")
	name = nonFilenameChars.ReplaceAllString(name, "")

	return fmt.Sprintf("Risk_Analysis_%s_%s%s", name, date.Format(schema.DateFormat), ext)
}

// getMaxTableNameWidth calculates the maximum width for activity names
// in table output based on terminal width.
func getMaxTableNameWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default for narrow terminals and CI
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for Rank + ID + Score + Severity + Status columns
	// plus borders, separators, and padding.
	baseWidth := 52

	available := termWidth - baseWidth
	if available < 15 {
		return 15
	}
	if available > 60 {
		return 60
	}
	return available
}
