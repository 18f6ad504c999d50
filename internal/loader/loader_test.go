package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amckenna/riskline/core"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestLoadRecordsDispatch tests extension-based dispatch.
func TestLoadRecordsDispatch(t *testing.T) {
	t.Run("empty path yields sample portfolio", func(t *testing.T) {
		records, err := LoadRecords("")
		require.NoError(t, err)
		assert.NotEmpty(t, records)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := LoadRecords("schedule.xlsx")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported input format")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadRecords("does-not-exist.csv")
		assert.Error(t, err)
	})
}

// TestLoadCSV tests header-keyed row parsing.
func TestLoadCSV(t *testing.T) {
	path := writeTempFile(t, "schedule.csv",
		"id,name,duration,probability,cost_impact\n"+
			"A1,Excavation,10,0.5,25000\n"+
			"A2,Framing,,0.3,\n")

	records, err := LoadCSV(path)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "A1", records[0]["id"])
	assert.Equal(t, "25000", records[0]["cost_impact"])

	// Empty cells are absent, not empty strings.
	_, hasDuration := records[1]["duration"]
	assert.False(t, hasDuration)
	_, hasCost := records[1]["cost_impact"]
	assert.False(t, hasCost)
}

// TestLoadCSVEmpty tests the degenerate CSV shapes.
func TestLoadCSVEmpty(t *testing.T) {
	t.Run("empty file", func(t *testing.T) {
		records, err := LoadCSV(writeTempFile(t, "empty.csv", ""))
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("header only", func(t *testing.T) {
		records, err := LoadCSV(writeTempFile(t, "header.csv", "id,name\n"))
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

// TestLoadJSON tests array parsing with loose value types.
func TestLoadJSON(t *testing.T) {
	path := writeTempFile(t, "schedule.json", `[
		{"id": "A1", "name": "Excavation", "duration": 10, "critical": true, "preds": ["B1", "B2"]},
		{"id": "A2", "cost_impact": null, "probability": 0.4},
		"not an object"
	]`)

	records, err := LoadJSON(path)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "A1", records[0]["id"])
	assert.Equal(t, 10.0, records[0]["duration"])
	assert.Equal(t, true, records[0]["critical"])

	// Nulls are dropped entirely.
	_, hasCost := records[1]["cost_impact"]
	assert.False(t, hasCost)
	assert.Equal(t, 0.4, records[1]["probability"])
}

// TestLoadJSONNotArray rejects non-array documents.
func TestLoadJSONNotArray(t *testing.T) {
	path := writeTempFile(t, "object.json", `{"id": "A1"}`)
	_, err := LoadJSON(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "array")
}

// TestSampleRecordsNormalize verifies the bundled portfolio survives
// normalization without rejections.
func TestSampleRecordsNormalize(t *testing.T) {
	activities, rejections := core.NormalizeAll(SampleRecords())
	assert.Empty(t, rejections)
	assert.Len(t, activities, len(SampleRecords()))

	seen := make(map[string]bool)
	for _, a := range activities {
		assert.NotEmpty(t, a.ID)
		assert.False(t, seen[a.ID], "duplicate id %s", a.ID)
		seen[a.ID] = true
	}
}
