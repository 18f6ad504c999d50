// Package loader supplies raw activity records to the engine: CSV and
// JSON file imports plus a deterministic sample portfolio. The loader
// does no field reconciliation; that is the normalizer's job.
package loader

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/amckenna/riskline/schema"
)

// LoadRecords reads raw records from the given file, dispatching on the
// extension. An empty path yields the built-in sample portfolio.
func LoadRecords(path string) ([]schema.RawActivity, error) {
	if path == "" {
		return SampleRecords(), nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(path)
	case ".json":
		return LoadJSON(path)
	default:
		return nil, fmt.Errorf("unsupported input format %q: expected .csv or .json", filepath.Ext(path))
	}
}

// LoadCSV reads one record per row, keyed by the header row. Values
// stay strings; the normalizer handles coercion and defaults.
func LoadCSV(path string) ([]schema.RawActivity, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV file: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := rows[0]
	records := make([]schema.RawActivity, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(schema.RawActivity, len(header))
		for i, col := range header {
			if i >= len(row) {
				break
			}
			value := strings.TrimSpace(row[i])
			if value == "" {
				continue // absent, not empty string
			}
			rec[strings.TrimSpace(col)] = value
		}
		if len(rec) > 0 {
			records = append(records, rec)
		}
	}
	return records, nil
}

// LoadJSON reads an array of activity-like objects. gjson tolerates the
// loosely-typed field values real exports contain.
func LoadJSON(path string) ([]schema.RawActivity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON file: %w", err)
	}

	parsed := gjson.ParseBytes(data)
	if !parsed.IsArray() {
		return nil, fmt.Errorf("JSON input must be an array of activity objects")
	}

	var records []schema.RawActivity
	parsed.ForEach(func(_, item gjson.Result) bool {
		if !item.IsObject() {
			return true
		}
		rec := make(schema.RawActivity)
		item.ForEach(func(key, value gjson.Result) bool {
			if value.Type == gjson.Null {
				return true
			}
			rec[key.String()] = value.Value()
			return true
		})
		records = append(records, rec)
		return true
	})
	return records, nil
}
