package section

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestValidateNumericDefaults(t *testing.T) {
	s := NewSevenEleven("docs", "")

	cases := []struct {
		task  string
		value float64
		pass  bool
	}{
		{"2.1", 101.27, true},
		{"2.1", 99.5, true},
		{"2.1", 90, false},
		{"2.2_japan", 15000, true},
		{"2.2_japan", 15500, true}, // exactly at tolerance
		{"2.2_japan", 15501, false},
		{"2.2_us", 7500, true},
		{"2.2_us", 8100, false},
		{"2.2_difference", 7000, true},
		{"2.2_difference", 6999, false},
	}
	for _, tc := range cases {
		ok, msg := s.ValidateNumeric(tc.task, tc.value)
		assert.Equal(t, tc.pass, ok, "%s %v", tc.task, tc.value)
		assert.NotEmpty(t, msg)
	}
}

func TestValidateNumericFeedbackWording(t *testing.T) {
	s := NewSevenEleven("docs", "")

	ok, msg := s.ValidateNumeric("2.1", 101.27)
	require.True(t, ok)
	assert.Equal(t, "Task 2.1 OK — your 101.27 is within ±2 of the expected range.", msg)

	ok, msg = s.ValidateNumeric("2.1", 90)
	require.False(t, ok)
	assert.Contains(t, msg, "dividing total stores by number of DCs")

	_, msg = s.ValidateNumeric("2.2_japan", 15400)
	assert.Equal(t, "Japan cost: 15400.00 ¥/day", msg)

	ok, msg = s.ValidateNumeric("2.2_difference", 7400)
	require.True(t, ok)
	assert.Equal(t, "Task 2.2 OK — your values are within the acceptable tolerance.", msg)

	ok, msg = s.ValidateNumeric("9.9", 1)
	assert.False(t, ok)
	assert.Equal(t, "Unknown task", msg)
}

func TestToleranceWorkbookOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tolerances.xlsx")

	x := excelize.NewFile()
	require.NoError(t, x.SetSheetName("Sheet1", "Tolerances"))
	require.NoError(t, x.SetSheetRow("Tolerances", "A1", &[]any{"task", "expected", "tolerance"}))
	require.NoError(t, x.SetSheetRow("Tolerances", "A2", &[]any{"2.1", 100, 5}))
	require.NoError(t, x.SetSheetRow("Tolerances", "A3", &[]any{"made_up_task", 1, 1}))
	require.NoError(t, x.SetSheetRow("Tolerances", "A4", &[]any{"2.2_japan", "not a number", 5}))
	require.NoError(t, x.SaveAs(path))

	s := NewSevenEleven(dir, path)

	// Overridden: 104 is inside the widened ±5 band around 100.
	ok, _ := s.ValidateNumeric("2.1", 104)
	assert.True(t, ok)
	ok, _ = s.ValidateNumeric("2.1", 106)
	assert.False(t, ok)

	// Invalid rows are skipped, so the default band still applies.
	ok, _ = s.ValidateNumeric("2.2_japan", 15000)
	assert.True(t, ok)
	ok, msg := s.ValidateNumeric("made_up_task", 1)
	assert.False(t, ok)
	assert.Equal(t, "Unknown task", msg)
}

func TestToleranceWorkbookLoadFailureKeepsDefaults(t *testing.T) {
	s := NewSevenEleven("docs", filepath.Join(t.TempDir(), "missing.xlsx"))

	ok, _ := s.ValidateNumeric("2.1", 101)
	assert.True(t, ok)
}
