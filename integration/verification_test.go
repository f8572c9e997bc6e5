//go:build basic

package integration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/burndown/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sprintArgs are the series flags shared by the verification tests.
var sprintArgs = []string{"--interval", "daily", "--start", "2024-01-01", "--end", "2024-01-20", "--as-of", "2024-01-10"}

// TestSeriesCSVVerification checks the CSV series against hand-computed values.
func TestSeriesCSVVerification(t *testing.T) {
	args := append([]string{"series", writeSprintCSV(t), "--output", "csv"}, sprintArgs...)
	output, err := runBurndownCommand(t, args...)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(output), "\n")
	require.Len(t, lines, 21, "Header plus one row per day")
	assert.True(t, strings.HasPrefix(lines[0], "date,phase,cumulative_created"), "Header must come first with no banner")

	rows := make(map[string]string, len(lines)-1)
	for _, line := range lines[1:] {
		date, _, _ := strings.Cut(line, ",")
		rows[date] = line
	}

	assert.True(t, strings.HasPrefix(rows["2024-01-01"], "2024-01-01,Actual,8.0,0.0,8.0,8.0,"))
	assert.True(t, strings.HasPrefix(rows["2024-01-04"], "2024-01-04,Actual,18.0,3.0,15.0,15.0,"))
	assert.True(t, strings.HasPrefix(rows["2024-01-10"], "2024-01-10,Today,22.0,11.0,11.0,11.0,"))
	assert.True(t, strings.HasPrefix(rows["2024-01-11"], "2024-01-11,Projected,22.0,11.0,11.0,9.9,"))
	assert.True(t, strings.HasSuffix(rows["2024-01-11"], ",true"))
}

// TestSeriesJSONVerification checks velocity and the projection in JSON output.
func TestSeriesJSONVerification(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "series.json")
	args := append([]string{"series", writeSprintCSV(t), "--output", "json", "--output-file", outputFile, "--velocity", "2"}, sprintArgs...)
	_, err := runBurndownCommand(t, args...)
	require.NoError(t, err)

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)

	var result schema.BurndownResult
	require.NoError(t, json.Unmarshal(data, &result))
	assert.Len(t, result.Points, 20)
	assert.Equal(t, 2.0, result.Velocity)
	assert.Equal(t, schema.OverrideVelocity, result.VelocitySource)
	assert.Equal(t, "/day", result.VelocityLabel)
	require.NotNil(t, result.CompletionDate)
	assert.Equal(t, "2024-01-16", result.CompletionDate.Format("2006-01-02"))
}

// TestChartVerification checks that both chart formats are written.
func TestChartVerification(t *testing.T) {
	input := writeSprintCSV(t)
	dir := t.TempDir()

	pngFile := filepath.Join(dir, "burndown.png")
	_, err := runBurndownCommand(t, append([]string{"chart", input, "--chart-file", pngFile}, sprintArgs...)...)
	require.NoError(t, err)
	data, err := os.ReadFile(pngFile)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), data[:4])

	svgFile := filepath.Join(dir, "burndown.svg")
	_, err = runBurndownCommand(t, append([]string{"chart", input, "--chart-file", svgFile}, sprintArgs...)...)
	require.NoError(t, err)
	data, err = os.ReadFile(svgFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
}

// TestInvalidInputs checks that bad flags fail fast.
func TestInvalidInputs(t *testing.T) {
	input := writeSprintCSV(t)

	tests := []struct {
		name string
		args []string
	}{
		{"bad interval", []string{"series", input, "--interval", "hourly"}},
		{"start after end", []string{"series", input, "--start", "2024-02-01", "--end", "2024-01-01"}},
		{"negative velocity", []string{"series", input, "--velocity", "-1"}},
		{"unknown extension", []string{"series", "notes.txt"}},
		{"parquet without file", []string{"series", input, "--output", "parquet"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runBurndownCommand(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

// TestVersion checks the version banner.
func TestVersion(t *testing.T) {
	output, err := runBurndownCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, output, "burndown CLI")
}
