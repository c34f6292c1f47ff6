package exporter

import (
	"fmt"
	"io"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"ttconv/pkg/timetable"
)

var icsWeekdays = map[string]time.Weekday{
	"Monday":    time.Monday,
	"Tuesday":   time.Tuesday,
	"Wednesday": time.Wednesday,
	"Thursday":  time.Thursday,
	"Friday":    time.Friday,
	"Saturday":  time.Saturday,
	"Sunday":    time.Sunday,
}

// WriteICS writes one weekly-recurring calendar event per reconciled row,
// anchored to the first occurrence of the lecture's weekday on or after
// termStart. Rows without a recognized day are skipped.
func WriteICS(w io.Writer, rows []timetable.ReconciledRow, termStart time.Time) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)

	now := time.Now()
	for i, row := range rows {
		weekday, ok := icsWeekdays[row.Day]
		if !ok {
			continue
		}

		// first lecture date on or after the term start
		date := termStart
		for date.Weekday() != weekday {
			date = date.AddDate(0, 0, 1)
		}
		start := time.Date(date.Year(), date.Month(), date.Day(),
			row.Start.Hour, row.Start.Minute, 0, 0, termStart.Location())
		end := time.Date(date.Year(), date.Month(), date.Day(),
			row.End.Hour, row.End.Minute, 0, 0, termStart.Location())

		event := cal.AddEvent(fmt.Sprintf("%s-%s-%d", slugify(row.Title), slugify(row.Section), i))
		event.SetCreatedTime(now)
		event.SetDtStampTime(now)
		event.SetModifiedAt(now)
		event.SetStartAt(start)
		event.SetEndAt(end)
		event.SetSummary(row.Title)
		event.SetLocation(row.Room)
		event.AddRrule("FREQ=WEEKLY")

		var desc []string
		if row.Code != "" {
			desc = append(desc, "Code: "+row.Code)
		}
		desc = append(desc, "Section: "+row.Section)
		if row.Instructor != "" {
			desc = append(desc, "Instructor: "+row.Instructor)
		}
		event.SetDescription(strings.Join(desc, "\n"))
	}

	return cal.SerializeTo(w)
}

// slugify makes a title/section safe for use inside an event UID.
func slugify(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('-')
		}
	}
	return b.String()
}
