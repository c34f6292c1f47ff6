package exporter

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"ttconv/pkg/timetable"
)

const xlsxSheet = "Timetable"

// WriteXLSX writes the reconciled table as a styled XLSX workbook: a bold
// filled header row frozen at the top, one row per lecture below it.
func WriteXLSX(w io.Writer, rows []timetable.ReconciledRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D9D9D9"}},
		Border: []excelize.Border{
			{Type: "bottom", Style: 2, Color: "333333"},
		},
	})
	if err != nil {
		return err
	}

	header := make([]interface{}, len(columns))
	for i, name := range columns {
		header[i] = name
	}
	if err := f.SetSheetRow(xlsxSheet, "A1", &header); err != nil {
		return err
	}
	endCol, err := excelize.ColumnNumberToName(len(columns))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(xlsxSheet, "A1", endCol+"1", headerStyle); err != nil {
		return err
	}

	for i, row := range rows {
		values := flatten(row)
		cells := make([]interface{}, len(values))
		for j, v := range values {
			cells[j] = v
		}
		addr := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(xlsxSheet, addr, &cells); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(xlsxSheet, "A", endCol, 16); err != nil {
		return err
	}
	if err := f.SetPanes(xlsxSheet, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	}); err != nil {
		return err
	}

	return f.Write(w)
}
