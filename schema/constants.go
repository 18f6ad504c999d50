package schema

// Custom string types for type safety.
type (
	// FactorKey represents keys used in the factor breakdown.
	FactorKey string

	// Severity represents a discrete risk-score band.
	Severity string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for audit events.
	DatabaseBackend string

	// DependencyType represents a CPM dependency relation.
	DependencyType string
)

// Factor keys used in the scoring logic.
const (
	FactorSchedule     FactorKey = "schedule"      // schedule slippage
	FactorCost         FactorKey = "cost"          // EMV exposure
	FactorDependency   FactorKey = "dependency"    // predecessor/successor coupling
	FactorResource     FactorKey = "resource"      // FTE overallocation
	FactorCriticalPath FactorKey = "critical_path" // critical-path proximity
)

// FactorOrder is the fixed evaluation and display order of factors.
var FactorOrder = []FactorKey{
	FactorSchedule,
	FactorCost,
	FactorDependency,
	FactorResource,
	FactorCriticalPath,
}

// All severities supported, lowest band first.
const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// AllSeverities lists severities in ascending band order.
var AllSeverities = []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All audit backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All dependency types supported.
const (
	FinishToStart  DependencyType = "FS" // default
	StartToStart   DependencyType = "SS"
	FinishToFinish DependencyType = "FF"
	StartToFinish  DependencyType = "SF"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidAuditBackends lists all valid audit backends.
var ValidAuditBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidDependencyTypes lists all valid dependency types.
var ValidDependencyTypes = map[DependencyType]struct{}{
	FinishToStart:  {},
	StartToStart:   {},
	FinishToFinish: {},
	StartToFinish:  {},
}

// DefaultWeights returns the default weight of each factor in the
// combined risk score. Weights sum to 1.0 so that a full set of
// factors at 100 yields a score of exactly 100.
func DefaultWeights() map[FactorKey]float64 {
	return map[FactorKey]float64{
		FactorSchedule:     0.25,
		FactorCost:         0.20,
		FactorDependency:   0.10,
		FactorResource:     0.10,
		FactorCriticalPath: 0.35,
	}
}

// DefaultThresholds returns the lower bound of each severity band above
// low. Bands are contiguous and a boundary score belongs to the higher
// band.
func DefaultThresholds() map[Severity]float64 {
	return map[Severity]float64{
		SeverityMedium:   25,
		SeverityHigh:     50,
		SeverityCritical: 75,
	}
}

// SeverityRank returns the ordinal of a severity band, low first.
// Unknown severities rank below low.
func SeverityRank(s Severity) int {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityHigh:
		return 2
	case SeverityMedium:
		return 1
	case SeverityLow:
		return 0
	default:
		return -1
	}
}

// SeverityForScore maps a score to its band using the given thresholds.
func SeverityForScore(score float64, thresholds map[Severity]float64) Severity {
	switch {
	case score >= thresholds[SeverityCritical]:
		return SeverityCritical
	case score >= thresholds[SeverityHigh]:
		return SeverityHigh
	case score >= thresholds[SeverityMedium]:
		return SeverityMedium
	default:
		return SeverityLow
	}
}
