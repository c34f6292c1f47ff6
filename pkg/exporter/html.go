package exporter

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"ttconv/pkg/timetable"
)

// dayOrder fixes the page sequence of the rendered document.
var dayOrder = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// RenderHTML formats the reconciled table as a multi-page HTML document:
// one page per weekday, each a table of that day's lectures sorted by
// start time then room. Days with no lectures are omitted; rows with no
// recognized day are collected on a trailing "Unscheduled" page.
func RenderHTML(rows []timetable.ReconciledRow, title string) string {
	byDay := make(map[string][]timetable.ReconciledRow)
	for _, row := range rows {
		byDay[row.Day] = append(byDay[row.Day], row)
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html><head>\n")
	b.WriteString(fmt.Sprintf("<title>%s</title>\n", html.EscapeString(title)))
	b.WriteString(`<style>
body { font-family: 'Calibri', sans-serif; font-size: 10pt; margin: 24px; }
h1 { font-size: 14pt; }
h2 { font-size: 12pt; border-bottom: 2px solid #333; padding-bottom: 4px; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #333; padding: 3px 6px; text-align: left; white-space: nowrap; }
th { background-color: #D9D9D9; }
tr.repeat td { background-color: #FFF2CC; }
div.page { page-break-after: always; }
</style>
`)
	b.WriteString("</head><body>\n")
	b.WriteString(fmt.Sprintf("<h1>%s</h1>\n", html.EscapeString(title)))

	pages := append([]string{}, dayOrder...)
	pages = append(pages, "")
	for _, day := range pages {
		dayRows := byDay[day]
		if len(dayRows) == 0 {
			continue
		}
		sort.SliceStable(dayRows, func(i, j int) bool {
			if dayRows[i].Start != dayRows[j].Start {
				return dayRows[i].Start.Minutes() < dayRows[j].Start.Minutes()
			}
			return dayRows[i].Room < dayRows[j].Room
		})

		heading := day
		if heading == "" {
			heading = "Unscheduled"
		}
		b.WriteString("<div class=\"page\">\n")
		b.WriteString(fmt.Sprintf("<h2>%s</h2>\n", html.EscapeString(heading)))
		b.WriteString("<table>\n<tr>")
		for _, h := range []string{"Time", "Room", "Code", "Title", "Section", "Instructor", "Credits", "Type"} {
			b.WriteString("<th>" + h + "</th>")
		}
		b.WriteString("</tr>\n")

		for _, row := range dayRows {
			cls := ""
			if row.Repeat {
				cls = " class=\"repeat\""
			}
			credits := ""
			if row.CreditHours != nil {
				credits = fmt.Sprintf("%d", *row.CreditHours)
			}
			b.WriteString(fmt.Sprintf("<tr%s>", cls))
			for _, v := range []string{
				row.Start.String() + " - " + row.End.String(),
				row.Room,
				row.Code,
				row.Title,
				row.Section,
				row.Instructor,
				credits,
				row.Type,
			} {
				b.WriteString("<td>" + html.EscapeString(v) + "</td>")
			}
			b.WriteString("</tr>\n")
		}
		b.WriteString("</table>\n</div>\n")
	}

	b.WriteString("</body></html>\n")
	return b.String()
}
