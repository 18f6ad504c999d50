package outwriter

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/amckenna/riskline/internal/contract"
	"github.com/amckenna/riskline/schema"
)

// writeReportDocument renders every section of the report in order.
// The page-break hint becomes a form feed, the closest a text stream
// gets to pagination.
func writeReportDocument(report *schema.Report, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		for _, section := range report.Sections {
			if section.PageBreakBefore() {
				if _, err := fmt.Fprint(w, "\f\n"); err != nil {
					return err
				}
			}
			if err := renderSection(w, section, cfg); err != nil {
				return fmt.Errorf("failed to render %s section: %w", section.Kind(), err)
			}
		}
		return nil
	}, "Wrote report")
}

// renderSection dispatches on the concrete section type.
func renderSection(w io.Writer, section schema.Section, cfg *contract.Config) error {
	switch s := section.(type) {
	case schema.HeaderSection:
		return renderHeader(w, s)
	case schema.SummarySection:
		return renderSummary(w, s)
	case schema.RankedTableSection:
		return renderRankedTable(w, s, cfg)
	case schema.DetailsSection:
		return renderDetails(w, s)
	case schema.InsightSection:
		return renderInsight(w, s)
	case schema.FooterSection:
		return renderFooter(w, s)
	default:
		return fmt.Errorf("unknown section kind %q", section.Kind())
	}
}

func renderHeader(w io.Writer, s schema.HeaderSection) error {
	title := fmt.Sprintf("%s: %s", s.Title, s.ProjectName)
	if _, err := fmt.Fprintf(w, "%s\n%s\nGenerated %s\n\n",
		title, strings.Repeat("=", len(title)), s.GeneratedAt.Format(schema.DateFormat)); err != nil {
		return err
	}
	return nil
}

func renderSummary(w io.Writer, s schema.SummarySection) error {
	if _, err := fmt.Fprintln(w, "Executive Summary"); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Metric", "Value"})

	var data [][]string
	for _, row := range s.Rows {
		data = append(data, []string{row.Label, row.Value})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}

func renderRankedTable(w io.Writer, s schema.RankedTableSection, cfg *contract.Config) error {
	if _, err := fmt.Fprintln(w, "Top Risks"); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "ID", "Name", "Score", "Severity", "Status"})

	var data [][]string
	for _, row := range s.Rows {
		severity := contract.GetPlainLabel(row.Severity)
		if cfg.UseColors {
			severity = contract.GetColorLabel(row.Severity)
		}
		data = append(data, []string{
			strconv.Itoa(row.Rank),
			row.ID,
			row.Name,
			fmt.Sprintf("%.*f", cfg.Precision, row.Score),
			severity,
			row.Status,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}

func renderDetails(w io.Writer, s schema.DetailsSection) error {
	if _, err := fmt.Fprintln(w, "Risk Details"); err != nil {
		return err
	}

	for _, entry := range s.Entries {
		heading := fmt.Sprintf("#%d %s (%s): %.1f %s",
			entry.Rank, entry.Name, entry.ID, entry.Score, schema.SeverityLabel(entry.Severity))
		if _, err := fmt.Fprintf(w, "\n%s\n%s\n", heading, strings.Repeat("-", len(heading))); err != nil {
			return err
		}

		for _, block := range entry.Blocks {
			if _, err := fmt.Fprintf(w, "  %s\n", block.Title); err != nil {
				return err
			}
			for _, field := range block.Fields {
				if _, err := fmt.Fprintf(w, "    %-20s %s\n", field.Label+":", field.Value); err != nil {
					return err
				}
			}
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

func renderInsight(w io.Writer, s schema.InsightSection) error {
	_, err := fmt.Fprintf(w, "Insights\n\n%s\n\n", s.Narrative)
	return err
}

func renderFooter(w io.Writer, s schema.FooterSection) error {
	_, err := fmt.Fprintf(w, "---\nGenerated by %s on %s\n",
		s.GeneratedBy, s.GeneratedAt.Format(schema.DateFormat))
	return err
}
