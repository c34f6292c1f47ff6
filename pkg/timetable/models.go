package timetable

import (
	"fmt"
	"strings"
)

// ClockTime is a wall-clock time of day.
type ClockTime struct {
	Hour   int
	Minute int
}

// Add returns the time shifted by the given hours and minutes, carrying
// minute overflow into hours.
func (t ClockTime) Add(hours, minutes int) ClockTime {
	h, m := t.Hour+hours, t.Minute+minutes
	for m >= 60 {
		m -= 60
		h++
	}
	return ClockTime{Hour: h, Minute: m}
}

// Minutes returns the time as minutes since midnight.
func (t ClockTime) Minutes() int {
	return t.Hour*60 + t.Minute
}

func (t ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Lecture is one scheduled block for a course section.
type Lecture struct {
	Room  string
	Day   string // canonical weekday name, "" if unknown
	Start ClockTime
	End   ClockTime
}

// CourseSection groups the lectures decoded from the grid for one
// (title, section) pair. The title is raw grid text until reconciled.
type CourseSection struct {
	Title    string
	Section  string
	Lectures []Lecture
}

// CourseRecord is one course row extracted from a details sheet.
// Optional columns that were absent from the sheet are left empty;
// CreditHours is nil when the raw value was not an integer.
type CourseRecord struct {
	Code             string
	Title            string
	Section          string
	Instructor       string
	CreditHours      *int
	Program          string
	TargetDepartment string
	ParentDepartment string
	Type             string
	Repeat           bool
}

// ReconciledRow joins one CourseRecord with one Lecture. Unmatched marks
// grid rows that never found a ledger record and carry only the grid's
// title, section and lecture fields.
type ReconciledRow struct {
	CourseRecord
	Lecture
	Unmatched bool
}

// cleanTitle truncates at the first '(' to drop bracketed annotations,
// trims, and replaces the first '&' with "and" so the two sources match
// more easily.
func cleanTitle(raw string) string {
	if i := strings.Index(raw, "("); i >= 0 {
		raw = raw[:i]
	}
	return strings.Replace(strings.TrimSpace(raw), "&", "and", 1)
}
