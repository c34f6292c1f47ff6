package exporter

import (
	"encoding/csv"
	"io"
	"strconv"

	"ttconv/pkg/timetable"
)

// columns is the flat export order shared by the CSV and XLSX exporters.
var columns = []string{
	"code", "title", "section", "instructor", "credit_hours",
	"program", "target_department", "parent_department", "type", "repeat",
	"room", "day", "start_time", "end_time",
}

// flatten renders one reconciled row in columns order.
func flatten(row timetable.ReconciledRow) []string {
	credits := ""
	if row.CreditHours != nil {
		credits = strconv.Itoa(*row.CreditHours)
	}
	return []string{
		row.Code,
		row.Title,
		row.Section,
		row.Instructor,
		credits,
		row.Program,
		row.TargetDepartment,
		row.ParentDepartment,
		row.Type,
		strconv.FormatBool(row.Repeat),
		row.Room,
		row.Day,
		row.Start.String(),
		row.End.String(),
	}
}

// WriteCSV writes the reconciled table as CSV with a header row.
func WriteCSV(w io.Writer, rows []timetable.ReconciledRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(flatten(row)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
