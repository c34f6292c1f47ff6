package sheet

// Intermediate representation for a workbook. The decoding and ledger code
// works only against these types, never against the underlying XLSX library.

// Cell holds the rendered value of one cell plus the two pieces of styling
// the grid decoder cares about: the background fill and whether the cell
// carries a right border. Merged shadow cells are zero Cells; only the
// merge master holds the value.
type Cell struct {
	Value       string
	Fill        string // "RRGGBB", empty if unfilled
	RightBorder bool
}

// Sheet is one worksheet. Rows are stored 0-indexed but all accessors take
// 1-indexed coordinates, matching how spreadsheets are addressed.
type Sheet struct {
	Name      string
	Rows      [][]Cell
	ColHidden []bool
	// Merges maps the 1-indexed (row, col) of a merged range's top-left
	// cell to the range's column span.
	Merges map[[2]int]int
}

// MaxRow returns the number of rows in the sheet.
func (s *Sheet) MaxRow() int {
	return len(s.Rows)
}

// MaxCol returns the widest row's column count.
func (s *Sheet) MaxCol() int {
	max := len(s.ColHidden)
	for _, row := range s.Rows {
		if len(row) > max {
			max = len(row)
		}
	}
	return max
}

// Cell returns the cell at the 1-indexed (row, col), or a zero Cell when
// the coordinates fall outside the sheet.
func (s *Sheet) Cell(row, col int) Cell {
	if row < 1 || row > len(s.Rows) {
		return Cell{}
	}
	r := s.Rows[row-1]
	if col < 1 || col > len(r) {
		return Cell{}
	}
	return r[col-1]
}

// Value returns the cell value at the 1-indexed (row, col).
func (s *Sheet) Value(row, col int) string {
	return s.Cell(row, col).Value
}

// Hidden reports whether the 1-indexed column is hidden.
func (s *Sheet) Hidden(col int) bool {
	if col < 1 || col > len(s.ColHidden) {
		return false
	}
	return s.ColHidden[col-1]
}

// Span returns the column span of the merged range starting at (row, col),
// or 1 when the cell does not start a merge.
func (s *Sheet) Span(row, col int) int {
	if span, ok := s.Merges[[2]int{row, col}]; ok && span > 0 {
		return span
	}
	return 1
}

// VisualSpan resolves how many columns the cell at (row, col) occupies.
// A merged range wins. Otherwise the span is inferred by scanning right
// while cells are empty and share the starting cell's fill: some sheets
// omit explicit merges and rely on fill runs to show a block's extent.
// A right border marks the last column of such a run, so a border on a
// scanned cell ends the span inclusively and a border on the starting
// cell pins the span to 1. A populated cell, a differing fill, or another
// merge master stops the scan.
func (s *Sheet) VisualSpan(row, col int) int {
	if span, ok := s.Merges[[2]int{row, col}]; ok && span > 0 {
		return span
	}
	start := s.Cell(row, col)
	if start.RightBorder {
		return 1
	}
	span := 1
	for c := col + 1; c <= s.MaxCol(); c++ {
		if _, master := s.Merges[[2]int{row, c}]; master {
			break
		}
		cell := s.Cell(row, c)
		if cell.Value != "" || cell.Fill != start.Fill {
			break
		}
		span++
		if cell.RightBorder {
			break
		}
	}
	return span
}

// VisibleWidth counts the columns in [col, col+span) that are not hidden.
func (s *Sheet) VisibleWidth(col, span int) int {
	n := 0
	for c := col; c < col+span; c++ {
		if !s.Hidden(c) {
			n++
		}
	}
	return n
}

// Workbook is an ordered collection of parsed sheets.
type Workbook struct {
	Sheets []*Sheet
}

// Sheet returns the sheet with the given name, or nil.
func (w *Workbook) Sheet(name string) *Sheet {
	for _, s := range w.Sheets {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// SheetNames returns the sheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	names := make([]string, 0, len(w.Sheets))
	for _, s := range w.Sheets {
		names = append(names, s.Name)
	}
	return names
}
