package format

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/casedesk/cli/internal/config"
	"github.com/casedesk/cli/internal/models"
)

var sampleCases = []models.Case{
	{ID: 1, CaseNumber: "CR/1234/2023", Title: "State vs. Doe", Client: "John Doe", NextHearing: "2024-01-15", Status: models.StatusActive, Priority: models.PriorityHigh},
}

func TestGetFormatter(t *testing.T) {
	for _, name := range []string{"table", "json", "json-compact", "yaml", "text"} {
		f, err := GetFormatter(name)
		require.NoError(t, err, name)
		assert.NotNil(t, f)
	}

	_, err := GetFormatter("xml")
	assert.EqualError(t, err, "unsupported format: xml")
}

func TestTableFormatter_Cases(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableFormatter(false).Format(&buf, sampleCases))

	assert.Contains(t, buf.String(), "CR/1234/2023")
	assert.Contains(t, buf.String(), "John Doe")
	assert.Contains(t, buf.String(), "active")
}

func TestTableFormatter_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableFormatter(false).Format(&buf, []models.Case{}))
	assert.Equal(t, "No cases found matching your criteria\n", buf.String())

	buf.Reset()
	require.NoError(t, NewTableFormatter(false).Format(&buf, []models.Hearing{}))
	assert.Equal(t, "No upcoming hearings\n", buf.String())
}

func TestTableFormatter_Dashboard(t *testing.T) {
	var buf bytes.Buffer
	d := models.Dashboard{
		Stats:       models.DashboardStats{TotalCases: 12, PendingCases: 3},
		RecentCases: sampleCases,
	}
	require.NoError(t, NewTableFormatter(false).Format(&buf, d))
	assert.Contains(t, buf.String(), "12")
	assert.Contains(t, buf.String(), "CR/1234/2023")
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(false).Format(&buf, sampleCases))

	var got []models.Case
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sampleCases, got)
	assert.Contains(t, buf.String(), `"caseNumber":"CR/1234/2023"`)
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewYAMLFormatter().Format(&buf, sampleCases[0]))

	var got map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "CR/1234/2023", got["case_number"])
}

func TestYAMLFormatter_Indent(t *testing.T) {
	var buf bytes.Buffer
	d := models.Dashboard{Stats: models.DashboardStats{TotalCases: 2}}
	require.NoError(t, NewYAMLFormatter().Format(&buf, d))
	assert.Contains(t, buf.String(), "stats:\n  total_cases: 2\n")
}

func TestTextFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTextFormatter().Format(&buf, sampleCases))
	assert.Equal(t, "CR/1234/2023  State vs. Doe  (John Doe, active)  next: 2024-01-15\n", buf.String())
}

func TestPrintHelpers(t *testing.T) {
	var out, errOut bytes.Buffer
	oldOut, oldErr := Out, Err
	Out, Err = &out, &errOut
	t.Cleanup(func() { Out, Err = oldOut, oldErr })

	cfg := config.Defaults()
	cfg.Format.Colors = false
	config.Set(&cfg)
	t.Cleanup(func() { config.Set(nil) })

	PrintWarning("session for %s expired", "Jane")
	PrintError("boom")
	assert.Equal(t, "Warning: session for Jane expired\nError: boom\n", out.String())

	PrintDebug("hidden")
	assert.Empty(t, errOut.String())

	config.SetDebug(true)
	t.Cleanup(func() { config.SetDebug(false) })
	PrintDebug("visible %d", 1)
	assert.Equal(t, "[DEBUG] visible 1\n", errOut.String())
}
