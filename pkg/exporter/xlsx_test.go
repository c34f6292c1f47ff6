package exporter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleRows()))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, []string{"Timetable"}, f.GetSheetList())

	header, err := f.GetRows("Timetable")
	require.NoError(t, err)
	require.Len(t, header, 3)
	assert.Equal(t, columns, header[0])

	code, err := f.GetCellValue("Timetable", "A2")
	require.NoError(t, err)
	assert.Equal(t, "CS201", code)

	start, err := f.GetCellValue("Timetable", "M3")
	require.NoError(t, err)
	assert.Equal(t, "11:30", start)
}
