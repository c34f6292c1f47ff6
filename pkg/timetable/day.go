package timetable

import "strings"

// weekdays in calendar order; the earlier-declared day wins if a label
// somehow mentions more than one.
var weekdays = [...]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// DayNormalizer maps free-form day labels to canonical weekday names.
// Grid day labels repeat per row-group, so results are memoized by the
// raw input text. The cache lives on the normalizer, not the package.
type DayNormalizer struct {
	cache map[string]string
}

// NewDayNormalizer returns a normalizer with an empty cache.
func NewDayNormalizer() *DayNormalizer {
	return &DayNormalizer{cache: make(map[string]string)}
}

// Normalize returns the first weekday (in calendar order) found as a
// case-insensitive substring of text, or "" when text is empty or names
// no weekday.
func (n *DayNormalizer) Normalize(text string) string {
	if text == "" {
		return ""
	}
	if day, ok := n.cache[text]; ok {
		return day
	}
	lower := strings.ToLower(text)
	day := ""
	for _, d := range weekdays {
		if strings.Contains(lower, strings.ToLower(d)) {
			day = d
			break
		}
	}
	n.cache[text] = day
	return day
}
