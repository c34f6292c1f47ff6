package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(code, title, section string) CourseRecord {
	return CourseRecord{Code: code, Title: title, Section: section}
}

func section(title, section string, lectures ...Lecture) CourseSection {
	if lectures == nil {
		lectures = []Lecture{{Room: "E-101", Day: "Monday",
			Start: ClockTime{8, 30}, End: ClockTime{9, 30}}}
	}
	return CourseSection{Title: title, Section: section, Lectures: lectures}
}

func TestReconcileExactJoin(t *testing.T) {
	ledger := []CourseRecord{
		record("CS201", "Data Structures and Algorithms", "BCS-5A"),
		record("CS202", "Operating Systems", "BCS-5A"),
	}
	grid := []CourseSection{
		// grid titles are rarely typed identically
		section("Data Structure and Algorithm", "BCS-5A"),
	}

	rows := Reconcile(ledger, grid, Options{})
	require.Len(t, rows, 1)
	assert.Equal(t, "CS201", rows[0].Code)
	assert.Equal(t, "Data Structures and Algorithms", rows[0].Title)
	assert.Equal(t, "E-101", rows[0].Room)
	assert.False(t, rows[0].Unmatched)
}

func TestReconcileOneRowPerLecture(t *testing.T) {
	ledger := []CourseRecord{record("CS201", "Data Structures and Algorithms", "BCS-5A")}
	grid := []CourseSection{section("Data Structures and Algorithms", "BCS-5A",
		Lecture{Room: "E-101", Day: "Monday", Start: ClockTime{8, 30}, End: ClockTime{9, 30}},
		Lecture{Room: "E-102", Day: "Wednesday", Start: ClockTime{11, 30}, End: ClockTime{12, 30}},
	)}

	rows := Reconcile(ledger, grid, Options{})
	require.Len(t, rows, 2)
	assert.Equal(t, "Monday", rows[0].Day)
	assert.Equal(t, "Wednesday", rows[1].Day)
	assert.Equal(t, "CS201", rows[1].Code)
}

func TestReconcileSectionPrefixRepair(t *testing.T) {
	// grid carries a lab sub-section suffix absent from the ledger
	ledger := []CourseRecord{record("CS203", "Database Systems", "BCS-5A")}
	grid := []CourseSection{section("Database Systems", "BCS-5A1")}

	rows := Reconcile(ledger, grid, Options{})
	require.Len(t, rows, 1)
	assert.Equal(t, "CS203", rows[0].Code)
	assert.Equal(t, "BCS-5A", rows[0].Section)
	assert.False(t, rows[0].Unmatched)
}

func TestReconcileJoinedBeforeRepaired(t *testing.T) {
	ledger := []CourseRecord{
		record("CS203", "Database Systems", "BCS-5A"),
		record("CS201", "Data Structures and Algorithms", "BCS-5B"),
	}
	grid := []CourseSection{
		section("Database Systems", "BCS-5A1"), // repair path
		section("Data Structures and Algorithms", "BCS-5B"),
	}

	rows := Reconcile(ledger, grid, Options{})
	require.Len(t, rows, 2)
	// exact joins come first in ledger order, repairs append after
	assert.Equal(t, "CS201", rows[0].Code)
	assert.Equal(t, "CS203", rows[1].Code)
}

func TestReconcileUnmatchedStrictness(t *testing.T) {
	ledger := []CourseRecord{record("CS201", "Data Structures and Algorithms", "BCS-5A")}
	grid := []CourseSection{section("Thermodynamics", "BME-3A")}

	strict := Reconcile(ledger, grid, Options{})
	assert.Empty(t, strict)

	lenient := Reconcile(ledger, grid, Options{KeepUnmatched: true})
	require.Len(t, lenient, 1)
	assert.True(t, lenient[0].Unmatched)
	assert.Equal(t, "Thermodynamics", lenient[0].Title, "raw grid title retained")
	assert.Equal(t, "BME-3A", lenient[0].Section)
	assert.Empty(t, lenient[0].Code)
}

func TestReconcileNeverFabricatesKeys(t *testing.T) {
	ledger := []CourseRecord{
		record("CS201", "Data Structures and Algorithms", "BCS-5A"),
		record("SS101", "Intro to Sociology", "BCS-1A"),
	}
	grid := []CourseSection{
		section("Data Structure and Algorithm", "BCS-5A"),
		section("Sociology Intro", "BCS-1A"),
		section("Unknown Course", "XYZ-9Z"),
	}

	ledgerKeys := map[[2]string]bool{}
	for _, rec := range ledger {
		ledgerKeys[[2]string{rec.Title, rec.Section}] = true
	}
	gridKeys := map[[2]string]bool{}
	for _, sec := range grid {
		gridKeys[[2]string{sec.Title, sec.Section}] = true
	}

	rows := Reconcile(ledger, grid, Options{KeepUnmatched: true})
	for _, row := range rows {
		key := [2]string{row.Title, row.Section}
		if row.Unmatched {
			assert.True(t, gridKeys[key], "unmatched row %v must come from the grid", key)
		} else {
			assert.True(t, ledgerKeys[key], "matched row %v must come from the ledger", key)
		}
	}
}

func TestResolveTitleEscalation(t *testing.T) {
	ledger := []CourseRecord{
		record("CS201", "Data Structures and Algorithms", "BCS-5A"),
		record("CS301", "Computer Networks", "BCS-7A"),
	}

	// exact section match
	title, ok := resolveTitle(section("Data Structure and Algorithm", "BCS-5A"), ledger, defaultMinSimilarity)
	assert.True(t, ok)
	assert.Equal(t, "Data Structures and Algorithms", title)

	// cohort prefix: BCS-5C shares the first five characters with BCS-5A
	title, ok = resolveTitle(section("Data Structures and Algorithms", "BCS-5C"), ledger, defaultMinSimilarity)
	assert.True(t, ok)
	assert.Equal(t, "Data Structures and Algorithms", title)

	// global fallback
	title, ok = resolveTitle(section("Computer Network", "MDS-1A"), ledger, defaultMinSimilarity)
	assert.True(t, ok)
	assert.Equal(t, "Computer Networks", title)

	// nothing close: raw title retained
	title, ok = resolveTitle(section("Thermodynamics", "BME-3A"), ledger, defaultMinSimilarity)
	assert.False(t, ok)
	assert.Equal(t, "Thermodynamics", title)
}

func TestClosestTitle(t *testing.T) {
	candidates := []string{"Operating Systems", "Computer Networks"}

	best, ok := closestTitle("Operating System", candidates, defaultMinSimilarity)
	assert.True(t, ok)
	assert.Equal(t, "Operating Systems", best)

	_, ok = closestTitle("Marine Biology", candidates, defaultMinSimilarity)
	assert.False(t, ok)

	_, ok = closestTitle("Operating System", nil, defaultMinSimilarity)
	assert.False(t, ok)
}
