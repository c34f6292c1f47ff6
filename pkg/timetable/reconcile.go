package timetable

import (
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// cohortPrefixLen is how many leading characters of a section string
// identify the shared cohort/batch across sub-sections (e.g. "BCS-5").
const cohortPrefixLen = 5

// repairPrefixLen is the section prefix used for the secondary join; grid
// sections may carry a lab suffix ("BCS-5A1") absent from the ledger's
// section ("BCS-5A") for the same logical course.
const repairPrefixLen = 6

// Options configures reconciliation. KeepUnmatched keeps grid rows that
// never matched a ledger record, flagged, instead of dropping them.
// MinSimilarity is the fuzzy-match acceptance threshold; zero means the
// default of 0.6.
type Options struct {
	KeepUnmatched bool
	MinSimilarity float64
}

// defaultMinSimilarity mirrors difflib's default cutoff for close matches.
const defaultMinSimilarity = 0.6

// titleMetric scores candidate titles. Sørensen–Dice over bigrams behaves
// like a sequence-matcher ratio on prose-length titles.
var titleMetric = metrics.NewSorensenDice()

// closestTitle returns the candidate most similar to title, or false when
// none reaches the threshold.
func closestTitle(title string, candidates []string, threshold float64) (string, bool) {
	best := ""
	bestScore := 0.0
	for _, cand := range candidates {
		if score := strutil.Similarity(title, cand, titleMetric); score > bestScore {
			best, bestScore = cand, score
		}
	}
	if bestScore < threshold {
		return "", false
	}
	return best, true
}

// matchStrategy yields the candidate ledger titles for one grid section.
// Strategies escalate from exact section match to the whole ledger; the
// ordered list keeps the escalation policy independently testable.
type matchStrategy func(sec CourseSection, ledger []CourseRecord) []string

func bySectionExact(sec CourseSection, ledger []CourseRecord) []string {
	var titles []string
	for _, rec := range ledger {
		if rec.Section == sec.Section {
			titles = append(titles, rec.Title)
		}
	}
	return titles
}

func byCohortPrefix(sec CourseSection, ledger []CourseRecord) []string {
	prefix := sec.Section
	if len(prefix) > cohortPrefixLen {
		prefix = prefix[:cohortPrefixLen]
	}
	if prefix == "" {
		return nil
	}
	var titles []string
	for _, rec := range ledger {
		if strings.Contains(rec.Section, prefix) {
			titles = append(titles, rec.Title)
		}
	}
	return titles
}

func byWholeLedger(_ CourseSection, ledger []CourseRecord) []string {
	titles := make([]string, 0, len(ledger))
	for _, rec := range ledger {
		titles = append(titles, rec.Title)
	}
	return titles
}

var strategies = []matchStrategy{bySectionExact, byCohortPrefix, byWholeLedger}

// resolveTitle finds the ledger title for a grid section via the strategy
// escalation. When no strategy yields a fuzzy hit the raw grid title is
// returned with ok=false.
func resolveTitle(sec CourseSection, ledger []CourseRecord, threshold float64) (string, bool) {
	for _, strategy := range strategies {
		if title, ok := closestTitle(sec.Title, strategy(sec, ledger), threshold); ok {
			return title, true
		}
	}
	return sec.Title, false
}

// gridEntry tracks one grid section through the join.
type gridEntry struct {
	CourseSection
	resolved string
	matched  bool
}

func sectionPrefix(section string) string {
	if len(section) > repairPrefixLen {
		return section[:repairPrefixLen]
	}
	return section
}

// Reconcile joins ledger records with grid sections: exact
// (resolved title, section) matches first in ledger order, then a repair
// pass re-keyed on the six-character section prefix in grid order.
// Leftover grid entries are appended flagged when KeepUnmatched is set.
// A course with N lectures yields N rows under the same course fields.
func Reconcile(ledger []CourseRecord, grid []CourseSection, opts Options) []ReconciledRow {
	threshold := opts.MinSimilarity
	if threshold == 0 {
		threshold = defaultMinSimilarity
	}

	entries := make([]gridEntry, len(grid))
	index := make(map[[2]string]*gridEntry)
	for i, sec := range grid {
		resolved, _ := resolveTitle(sec, ledger, threshold)
		entries[i] = gridEntry{CourseSection: sec, resolved: resolved}
		key := [2]string{resolved, sec.Section}
		if _, ok := index[key]; !ok {
			index[key] = &entries[i]
		}
	}

	var rows []ReconciledRow
	emit := func(rec CourseRecord, lectures []Lecture, unmatched bool) {
		for _, lec := range lectures {
			rows = append(rows, ReconciledRow{CourseRecord: rec, Lecture: lec, Unmatched: unmatched})
		}
	}

	// phase 1: exact join, ledger order
	for _, rec := range ledger {
		if e, ok := index[[2]string{rec.Title, rec.Section}]; ok {
			emit(rec, e.Lectures, false)
			e.matched = true
		}
	}

	// phase 2: repair right-only rows on the section prefix, grid order
	prefixIndex := make(map[[2]string]CourseRecord)
	for _, rec := range ledger {
		key := [2]string{rec.Title, sectionPrefix(rec.Section)}
		if _, ok := prefixIndex[key]; !ok {
			prefixIndex[key] = rec
		}
	}
	for i := range entries {
		e := &entries[i]
		if e.matched {
			continue
		}
		if rec, ok := prefixIndex[[2]string{e.resolved, sectionPrefix(e.Section)}]; ok {
			emit(rec, e.Lectures, false)
			e.matched = true
		}
	}

	if opts.KeepUnmatched {
		for i := range entries {
			e := &entries[i]
			if e.matched {
				continue
			}
			emit(CourseRecord{Title: e.resolved, Section: e.Section}, e.Lectures, true)
		}
	}

	return rows
}
