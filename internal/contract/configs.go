package contract

import (
	"fmt"
	"maps"
	"math"
	"strings"

	"github.com/amckenna/riskline/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 25
	MaxResultLimit     = 1000
	DefaultPrecision   = 1
)

// WeightsRawInput holds custom factor weight overrides from the YAML
// config file. Use float64 pointers so absent fields stay absent.
type WeightsRawInput struct {
	Schedule     *float64 `mapstructure:"schedule"`
	Cost         *float64 `mapstructure:"cost"`
	Dependency   *float64 `mapstructure:"dependency"`
	Resource     *float64 `mapstructure:"resource"`
	CriticalPath *float64 `mapstructure:"critical_path"`
}

// ThresholdsRawInput holds severity band overrides from the YAML config file.
type ThresholdsRawInput struct {
	Medium   *float64 `mapstructure:"medium"`
	High     *float64 `mapstructure:"high"`
	Critical *float64 `mapstructure:"critical"`
}

// ProjectRawInput holds project metadata from flags or the config file.
type ProjectRawInput struct {
	Name     string  `mapstructure:"name"`
	Budget   float64 `mapstructure:"budget"`
	Duration float64 `mapstructure:"duration"`
}

// Config holds the runtime configuration for an analysis.
// This struct remains the "final, validated" config.
type Config struct {
	InputFile   string
	ResultLimit int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)

	Project schema.ProjectMeta

	AuditBackend   schema.DatabaseBackend
	AuditDBConnect string // Please use env var as this is plaintext

	// Weights is the final factor weight map, computed from defaults +
	// custom overrides. Always sums to 1.0 after validation.
	Weights map[schema.FactorKey]float64

	// Thresholds is the final severity band map (lower bound of each
	// band above low), ascending after validation.
	Thresholds map[schema.Severity]float64

	InsightEnabled bool
	InsightModel   string

	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env,
// config file). Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	InputFileStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Limit          int    `mapstructure:"limit"`
	Precision      int    `mapstructure:"precision"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Width          int    `mapstructure:"width"`
	AuditBackend   string `mapstructure:"audit-backend"`
	AuditDBConnect string `mapstructure:"audit-db-connect"`
	Color          string `mapstructure:"color"`

	// --- Fields from reportCmd.Flags() ---
	Insight      bool   `mapstructure:"insight"`
	InsightModel string `mapstructure:"insight-model"`

	// --- Project metadata from flags or config file ---
	Project ProjectRawInput `mapstructure:"project"`

	// --- Custom weights from config file ---
	Weights WeightsRawInput `mapstructure:"weights"`

	// --- Severity thresholds from config file ---
	Thresholds ThresholdsRawInput `mapstructure:"thresholds"`
}

// Clone returns a deep copy of the Config struct. Each concurrent
// analysis operates on its own copy.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Weights != nil {
		clone.Weights = make(map[schema.FactorKey]float64, len(c.Weights))
		maps.Copy(clone.Weights, c.Weights)
	}
	if c.Thresholds != nil {
		clone.Thresholds = make(map[schema.Severity]float64, len(c.Thresholds))
		maps.Copy(clone.Thresholds, c.Thresholds)
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw
// inputs and populates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateAuditBackend(cfg, input); err != nil {
		return err
	}
	if err := processCustomWeights(cfg, input); err != nil {
		return err
	}
	if err := processThresholds(cfg, input); err != nil {
		return err
	}
	return nil
}

// validateSimpleInputs processes and validates all scalar fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.InputFile = input.InputFileStr
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.InsightEnabled = input.Insight
	cfg.InsightModel = input.InsightModel

	cfg.ResultLimit = input.Limit
	if cfg.ResultLimit <= 0 {
		cfg.ResultLimit = DefaultResultLimit
	}
	if cfg.ResultLimit > MaxResultLimit {
		return fmt.Errorf("limit %d exceeds maximum of %d", cfg.ResultLimit, MaxResultLimit)
	}

	cfg.Precision = input.Precision
	if cfg.Precision < 0 || cfg.Precision > 6 {
		return fmt.Errorf("precision must be between 0 and 6, got %d", cfg.Precision)
	}

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if cfg.Output == "" {
		cfg.Output = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output mode '%s'. must be text, csv, json, parquet", input.Output)
	}

	cfg.UseColors = strings.EqualFold(input.Color, "yes") || strings.EqualFold(input.Color, "true")

	cfg.Project = schema.ProjectMeta{
		Name:         strings.TrimSpace(input.Project.Name),
		Budget:       input.Project.Budget,
		DurationDays: input.Project.Duration,
	}
	if cfg.Project.Budget < 0 {
		return fmt.Errorf("project budget cannot be negative, got %v", cfg.Project.Budget)
	}

	return nil
}

// validateAuditBackend validates the audit store configuration.
func validateAuditBackend(cfg *Config, input *ConfigRawInput) error {
	cfg.AuditBackend = schema.DatabaseBackend(strings.ToLower(input.AuditBackend))
	if cfg.AuditBackend == "" {
		cfg.AuditBackend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidAuditBackends[cfg.AuditBackend]; !ok {
		return fmt.Errorf("invalid audit backend '%s'. must be sqlite, mysql, postgresql, none", input.AuditBackend)
	}
	cfg.AuditDBConnect = input.AuditDBConnect
	return ValidateDatabaseConnectionString(cfg.AuditBackend, cfg.AuditDBConnect)
}

// ValidateDatabaseConnectionString validates the format of database
// connection strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("audit-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("audit-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") && !strings.HasPrefix(connStr, "postgres://") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' or use a postgres:// URL")
		}
	}
	return nil
}

// processCustomWeights merges weight overrides over the defaults and
// checks that the final map is a valid convex combination.
func processCustomWeights(cfg *Config, input *ConfigRawInput) error {
	weights := schema.DefaultWeights()

	overrides := map[schema.FactorKey]*float64{
		schema.FactorSchedule:     input.Weights.Schedule,
		schema.FactorCost:         input.Weights.Cost,
		schema.FactorDependency:   input.Weights.Dependency,
		schema.FactorResource:     input.Weights.Resource,
		schema.FactorCriticalPath: input.Weights.CriticalPath,
	}
	for key, override := range overrides {
		if override == nil {
			continue
		}
		if *override < 0 {
			return fmt.Errorf("weight for factor '%s' cannot be negative, got %v", key, *override)
		}
		weights[key] = *override
	}

	var sum float64
	for _, w := range weights {
		sum += w
	}
	if math.Abs(sum-1.0) > 0.001 {
		return fmt.Errorf("factor weights must sum to 1.0, got %.3f", sum)
	}

	cfg.Weights = weights
	return nil
}

// processThresholds merges severity band overrides over the defaults
// and checks that bands stay contiguous and ascending.
func processThresholds(cfg *Config, input *ConfigRawInput) error {
	thresholds := schema.DefaultThresholds()

	overrides := map[schema.Severity]*float64{
		schema.SeverityMedium:   input.Thresholds.Medium,
		schema.SeverityHigh:     input.Thresholds.High,
		schema.SeverityCritical: input.Thresholds.Critical,
	}
	for sev, override := range overrides {
		if override == nil {
			continue
		}
		if *override <= 0 || *override > 100 {
			return fmt.Errorf("threshold for severity '%s' must be in (0, 100], got %v", sev, *override)
		}
		thresholds[sev] = *override
	}

	if !(thresholds[schema.SeverityMedium] < thresholds[schema.SeverityHigh] &&
		thresholds[schema.SeverityHigh] < thresholds[schema.SeverityCritical]) {
		return fmt.Errorf("severity thresholds must be strictly ascending: medium(%v) < high(%v) < critical(%v)",
			thresholds[schema.SeverityMedium], thresholds[schema.SeverityHigh], thresholds[schema.SeverityCritical])
	}

	cfg.Thresholds = thresholds
	return nil
}
