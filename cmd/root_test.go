package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ttconv/pkg/sheet"
)

func TestSplitSheets(t *testing.T) {
	wb := &sheet.Workbook{Sheets: []*sheet.Sheet{
		{Name: "CS"},
		{Name: "Fall TT"},
		{Name: "DS"},
	}}

	grid, details := splitSheets(wb, "")
	require.NotNil(t, grid)
	assert.Equal(t, "Fall TT", grid.Name, "sheet named like a timetable wins")
	require.Len(t, details, 2)
	assert.Equal(t, "CS", details[0].Name)
	assert.Equal(t, "DS", details[1].Name)
}

func TestSplitSheetsExplicitName(t *testing.T) {
	wb := &sheet.Workbook{Sheets: []*sheet.Sheet{
		{Name: "Schedule"},
		{Name: "CS"},
	}}

	grid, details := splitSheets(wb, "Schedule")
	require.NotNil(t, grid)
	assert.Equal(t, "Schedule", grid.Name)
	assert.Len(t, details, 1)

	grid, _ = splitSheets(wb, "missing")
	assert.Nil(t, grid)
}

func TestSplitSheetsFallsBackToFirst(t *testing.T) {
	wb := &sheet.Workbook{Sheets: []*sheet.Sheet{
		{Name: "Schedule"},
		{Name: "CS"},
	}}

	grid, details := splitSheets(wb, "")
	require.NotNil(t, grid)
	assert.Equal(t, "Schedule", grid.Name)
	assert.Len(t, details, 1)
}
