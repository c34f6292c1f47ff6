package timetable

import (
	"regexp"
	"strconv"
	"strings"

	"ttconv/pkg/sheet"
)

// GridOptions locates the schedule within the grid sheet. The zero value
// is not usable; call DefaultGridOptions.
type GridOptions struct {
	StartRow int // first schedule row
	DayCol   int // sticky day labels
	RoomCol  int // room names; time slots begin one column right
	Offset   ClockTime
}

// DefaultGridOptions anchors the schedule at row 5 with day labels in
// column 1 and rooms in column 2, starting at 08:30 unless the sheet's
// header row carries its own start-time label.
func DefaultGridOptions() GridOptions {
	return GridOptions{StartRow: 5, DayCol: 1, RoomCol: 2, Offset: ClockTime{Hour: 8, Minute: 30}}
}

// Each time column spans 10 minutes; 6 columns make an hour.
const slotsPerHour = 6

var offsetLabelRe = regexp.MustCompile(`(\d{1,2}):(\d{2})\s*([AaPp][Mm])`)

// detectOffset scans row 1 for an "H:MMam/pm" label. Sheets disagree on
// where the grid starts, so the label wins over the default when present.
func detectOffset(s *sheet.Sheet, def ClockTime) ClockTime {
	for c := 1; c <= s.MaxCol(); c++ {
		m := offsetLabelRe.FindStringSubmatch(s.Value(1, c))
		if m == nil {
			continue
		}
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if hour < 1 || hour > 12 || minute > 59 {
			continue
		}
		hour %= 12
		if strings.EqualFold(m[3], "pm") {
			hour += 12
		}
		return ClockTime{Hour: hour, Minute: minute}
	}
	return def
}

// splitCourseToken splits a grid cell like
// "Data Structures & Algorithms (BCS-5A, BCS-5B)" into its cleaned title
// and section list. Empty section tokens are dropped.
func splitCourseToken(v string) (string, []string) {
	i := strings.Index(v, "(")
	title := cleanTitle(v[:i])
	rest := v[i+1:]
	if j := strings.Index(rest, ")"); j >= 0 {
		rest = rest[:j]
	}
	var sections []string
	for _, tok := range strings.Split(rest, ",") {
		if tok = strings.TrimSpace(tok); tok != "" {
			sections = append(sections, tok)
		}
	}
	return title, sections
}

// DecodeGrid walks the timetable grid sheet and returns the course
// sections found, in first-discovery order (top-to-bottom, left-to-right).
// A sheet with no course tokens yields an empty result.
func DecodeGrid(s *sheet.Sheet, opts GridOptions) []CourseSection {
	offset := detectOffset(s, opts.Offset)
	norm := NewDayNormalizer()

	var courses []CourseSection
	index := make(map[[2]string]int)

	day := ""
	for r := opts.StartRow; r <= s.MaxRow(); r++ {
		if label := strings.TrimSpace(s.Value(r, opts.DayCol)); label != "" {
			day = norm.Normalize(label)
		}

		room := strings.TrimSpace(s.Value(r, opts.RoomCol))
		if room == "" {
			continue
		}

		slot := 0
		c := opts.RoomCol + 1
		for c <= s.MaxCol() {
			// hidden columns do not consume a time slot
			if s.Hidden(c) {
				c++
				continue
			}

			v := s.Value(r, c)
			if !strings.Contains(v, "(") {
				span := s.Span(r, c)
				slot += s.VisibleWidth(c, span)
				c += span
				continue
			}

			span := s.VisualSpan(r, c)
			start := offset.Add(slot/slotsPerHour, (slot%slotsPerHour)*10)
			end := start.Add(span/slotsPerHour, (span%slotsPerHour)*10)

			title, sections := splitCourseToken(v)
			lecture := Lecture{Room: room, Day: day, Start: start, End: end}

			for _, section := range sections {
				key := [2]string{title, section}
				if i, ok := index[key]; ok {
					courses[i].Lectures = append(courses[i].Lectures, lecture)
					continue
				}
				index[key] = len(courses)
				courses = append(courses, CourseSection{
					Title:    title,
					Section:  section,
					Lectures: []Lecture{lecture},
				})
			}

			slot += s.VisibleWidth(c, span)
			c += span
		}
	}

	return courses
}
