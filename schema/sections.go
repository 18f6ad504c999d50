package schema

import "time"

// SectionKind identifies one section of an assembled report.
type SectionKind string

// All section kinds, in assembly order.
const (
	HeaderKind      SectionKind = "header"
	SummaryKind     SectionKind = "summary"
	RankedTableKind SectionKind = "ranked_table"
	DetailsKind     SectionKind = "details"
	InsightKind     SectionKind = "insight"
	FooterKind      SectionKind = "footer"
)

// Section is one typed block of an assembled report. Rendering,
// pagination and file output belong to the report consumer; the
// PageBreakBefore hint is the only layout signal the engine gives.
type Section interface {
	Kind() SectionKind
	PageBreakBefore() bool
}

// Report is the ordered, immutable section list handed to a renderer.
type Report struct {
	Project     ProjectMeta
	GeneratedAt time.Time
	Sections    []Section
}

// HeaderSection opens the report.
type HeaderSection struct {
	Title       string
	ProjectName string
	GeneratedAt time.Time
}

// SummaryRow is one labeled metric in the executive summary.
type SummaryRow struct {
	Label string
	Value string
}

// SummarySection is the executive summary metric table.
type SummarySection struct {
	Rows []SummaryRow
}

// RankedRow is one row of the ranked risk table.
type RankedRow struct {
	Rank     int
	ID       string
	Name     string // truncated for display
	Score    float64
	Severity Severity
	Status   string // "Nd late" or "On time"
}

// RankedTableSection is the top-N ranked risk table.
type RankedTableSection struct {
	Rows []RankedRow
}

// DetailField is one labeled value inside a detail sub-block.
type DetailField struct {
	Label string
	Value string
}

// DetailBlock is one labeled sub-block of a risk detail entry,
// e.g. "Schedule" or "Factor Breakdown".
type DetailBlock struct {
	Title  string
	Fields []DetailField
}

// DetailEntry is the expanded view of one high-ranked assessment.
type DetailEntry struct {
	Rank     int
	ID       string
	Name     string
	Score    float64
	Severity Severity
	Blocks   []DetailBlock
}

// DetailsSection holds the top-M expanded risk entries.
type DetailsSection struct {
	Entries []DetailEntry
}

// InsightSection carries the optional narrative produced by an external
// text collaborator. It is omitted entirely when no narrative exists.
type InsightSection struct {
	Narrative string
}

// FooterSection closes the report.
type FooterSection struct {
	GeneratedBy string
	GeneratedAt time.Time
}

func (HeaderSection) Kind() SectionKind      { return HeaderKind }
func (SummarySection) Kind() SectionKind     { return SummaryKind }
func (RankedTableSection) Kind() SectionKind { return RankedTableKind }
func (DetailsSection) Kind() SectionKind     { return DetailsKind }
func (InsightSection) Kind() SectionKind     { return InsightKind }
func (FooterSection) Kind() SectionKind      { return FooterKind }

func (HeaderSection) PageBreakBefore() bool      { return false }
func (SummarySection) PageBreakBefore() bool     { return false }
func (RankedTableSection) PageBreakBefore() bool { return false }
func (DetailsSection) PageBreakBefore() bool     { return false }

// The insight narrative can run long, so renderers are asked to start
// it on a fresh page.
func (InsightSection) PageBreakBefore() bool { return true }

func (FooterSection) PageBreakBefore() bool { return false }
