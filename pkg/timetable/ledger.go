package timetable

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"ttconv/pkg/sheet"
)

// LedgerOptions controls the details-sheet scan. HeaderRow pins the header
// to a fixed row; zero means the header is located by scanning from row 2.
type LedgerOptions struct {
	HeaderRow int
	Logger    zerolog.Logger
}

// headerFields are matched against header cells case-insensitively by
// substring, in declared order. code, title and section are mandatory.
var headerFields = []struct {
	key     string
	aliases []string
}{
	{"code", []string{"code"}},
	{"title", []string{"title", "course"}},
	{"section", []string{"section"}},
	{"instructor", []string{"instructor", "teacher"}},
	{"credit_hours", []string{"credit hour"}},
	{"offered_for", []string{"offered"}},
	{"category", []string{"category"}},
}

// departmentRules map course-code prefixes to parent departments, checked
// in order against the first two characters of the code.
var departmentRules = []struct {
	prefixes   []string
	department string
}{
	{[]string{"NS"}, "NS"},
	{[]string{"MT", "SS", "SL"}, "HSS"},
	{[]string{"CS", "SE"}, "CS"},
	{[]string{"DS"}, "DS"},
}

// departmentForCode returns the parent department for a course code, or
// "" for unrecognized codes.
func departmentForCode(code string) string {
	if len(code) < 2 {
		return ""
	}
	prefix := code[:2]
	for _, rule := range departmentRules {
		for _, p := range rule.prefixes {
			if p == prefix {
				return rule.department
			}
		}
	}
	return ""
}

// detectColumns maps field keys to 1-indexed columns for one candidate
// header row. Per column the first unclaimed field wins, so a sheet with
// both "Course Code" and "Course Title" columns resolves correctly as
// long as code precedes title.
func detectColumns(s *sheet.Sheet, row int) map[string]int {
	cols := make(map[string]int)
	for c := 1; c <= s.MaxCol(); c++ {
		text := strings.ToLower(strings.TrimSpace(s.Value(row, c)))
		if text == "" {
			continue
		}
		for _, field := range headerFields {
			if _, taken := cols[field.key]; taken {
				continue
			}
			for _, alias := range field.aliases {
				if strings.Contains(text, alias) {
					cols[field.key] = c
					break
				}
			}
			if _, ok := cols[field.key]; ok {
				break
			}
		}
	}
	return cols
}

func hasMandatory(cols map[string]int) bool {
	_, code := cols["code"]
	_, title := cols["title"]
	_, section := cols["section"]
	return code && title && section
}

// findHeader locates the details header row and its column map. ok is
// false when the sheet lacks the mandatory columns everywhere.
func findHeader(s *sheet.Sheet, opts LedgerOptions) (int, map[string]int, bool) {
	if opts.HeaderRow > 0 {
		cols := detectColumns(s, opts.HeaderRow)
		return opts.HeaderRow, cols, hasMandatory(cols)
	}
	for r := 2; r <= s.MaxRow(); r++ {
		if cols := detectColumns(s, r); hasMandatory(cols) {
			return r, cols, true
		}
	}
	return 0, nil, false
}

// isRepeatMarker reports whether a marker row's title flags the following
// rows as repeated courses. Sheet authors interleave these markers freely,
// so matching is case-insensitive substring.
func isRepeatMarker(title string) bool {
	return strings.Contains(strings.ToLower(title), "repeat")
}

// BuildLedger extracts one CourseRecord per (title, section) pair from
// each details sheet, in sheet-then-row order. Sheets without the
// mandatory code/title/section columns are skipped.
func BuildLedger(sheets []*sheet.Sheet, opts LedgerOptions) []CourseRecord {
	var records []CourseRecord

	for _, s := range sheets {
		headerRow, cols, ok := findHeader(s, opts)
		if !ok {
			opts.Logger.Warn().Str("sheet", s.Name).Msg("no usable header row, skipping sheet")
			continue
		}

		field := func(row int, key string) (string, bool) {
			c, ok := cols[key]
			if !ok {
				return "", false
			}
			return strings.TrimSpace(s.Value(row, c)), true
		}

		repeat := false
		seen := make(map[[2]string]bool)

		for r := headerRow + 1; r <= s.MaxRow(); r++ {
			rawTitle, _ := field(r, "title")
			if rawTitle == "" {
				continue
			}

			code, _ := field(r, "code")
			section, _ := field(r, "section")
			if code == "" || section == "" {
				// marker row: a "repeat" heading makes the flag sticky,
				// anything else clears it
				repeat = isRepeatMarker(rawTitle)
				continue
			}

			title := cleanTitle(rawTitle)
			key := [2]string{title, section}
			if seen[key] {
				continue
			}
			seen[key] = true

			rec := CourseRecord{
				Code:    code,
				Title:   title,
				Section: section,
				Repeat:  repeat,
			}

			if instructor, ok := field(r, "instructor"); ok {
				// drop VF/CC annotations
				if i := strings.Index(instructor, "("); i >= 0 {
					instructor = instructor[:i]
				}
				rec.Instructor = strings.TrimSpace(instructor)
			}

			if raw, ok := field(r, "credit_hours"); ok {
				if n, err := strconv.Atoi(raw); err == nil {
					rec.CreditHours = &n
				}
			}

			if raw, ok := field(r, "offered_for"); ok && raw != "" {
				if i := strings.Index(raw, "("); i >= 0 {
					rec.Program = strings.TrimSpace(raw[:i])
					inner := raw[i+1:]
					if j := strings.Index(inner, ")"); j >= 0 {
						inner = inner[:j]
					}
					rec.TargetDepartment = strings.TrimSpace(inner)
				} else if len(raw) > 2 {
					rec.Program = raw[:2]
					rec.TargetDepartment = strings.TrimSpace(raw[2:])
				} else {
					rec.Program = raw
				}
			}

			if raw, ok := field(r, "category"); ok {
				if i := strings.Index(raw, "("); i >= 0 {
					rec.ParentDepartment = strings.TrimSpace(raw[:i])
					inner := raw[i+1:]
					if j := strings.Index(inner, ")"); j >= 0 {
						inner = inner[:j]
					}
					rec.Type = strings.TrimSpace(inner)
				} else {
					rec.ParentDepartment = departmentForCode(code)
					if rec.ParentDepartment == "" {
						rec.ParentDepartment = rec.TargetDepartment
					}
					rec.Type = raw
				}
			}

			records = append(records, rec)
		}
	}

	return records
}
