package exporter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"ttconv/pkg/timetable"
)

func TestRenderHTML(t *testing.T) {
	out := RenderHTML(sampleRows(), "Fall 2026 <draft>")

	assert.Contains(t, out, "<h1>Fall 2026 &lt;draft&gt;</h1>")
	assert.Contains(t, out, "<h2>Monday</h2>")
	assert.Contains(t, out, "<h2>Wednesday</h2>")
	assert.Contains(t, out, "08:30 - 09:30")
	assert.Contains(t, out, "<td>Alice Khan</td>")
	assert.Contains(t, out, "class=\"repeat\"")

	// one page per scheduled day
	assert.Equal(t, 2, strings.Count(out, "<div class=\"page\">"))
	assert.NotContains(t, out, "<h2>Tuesday</h2>", "unscheduled days are omitted")

	// Monday's page precedes Wednesday's
	assert.Less(t, strings.Index(out, "<h2>Monday</h2>"), strings.Index(out, "<h2>Wednesday</h2>"))
}

func TestRenderHTMLSortsWithinDay(t *testing.T) {
	rows := []timetable.ReconciledRow{
		{
			CourseRecord: timetable.CourseRecord{Title: "Late", Section: "B"},
			Lecture: timetable.Lecture{Room: "E-2", Day: "Monday",
				Start: timetable.ClockTime{Hour: 14}, End: timetable.ClockTime{Hour: 15}},
		},
		{
			CourseRecord: timetable.CourseRecord{Title: "Early", Section: "A"},
			Lecture: timetable.Lecture{Room: "E-1", Day: "Monday",
				Start: timetable.ClockTime{Hour: 9}, End: timetable.ClockTime{Hour: 10}},
		},
	}
	out := RenderHTML(rows, "Timetable")
	assert.Less(t, strings.Index(out, "<td>Early</td>"), strings.Index(out, "<td>Late</td>"))
}

func TestRenderHTMLUnscheduledPage(t *testing.T) {
	rows := []timetable.ReconciledRow{
		{
			CourseRecord: timetable.CourseRecord{Title: "Floating Course", Section: "A"},
			Lecture:      timetable.Lecture{Room: "E-1"},
		},
	}
	out := RenderHTML(rows, "Timetable")
	assert.Contains(t, out, "<h2>Unscheduled</h2>")
}
