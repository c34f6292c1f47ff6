package sheet

import (
	"io"

	"github.com/unidoc/unioffice/schema/soo/dml"
	"github.com/unidoc/unioffice/schema/soo/sml"
	"github.com/unidoc/unioffice/spreadsheet"
	"github.com/unidoc/unioffice/spreadsheet/reference"
)

// ParseWorkbook reads an XLSX from r/size and returns the intermediate
// representation: formatted cell values, merged-range spans, per-column
// hidden flags, background fills and right borders.
func ParseWorkbook(r io.ReaderAt, size int64) (*Workbook, error) {
	wb, err := spreadsheet.Read(r, size)
	if err != nil {
		return nil, err
	}

	var model Workbook

	for _, sh := range wb.Sheets() {
		// ---- find max column ----
		maxCols := 0
		for _, row := range sh.Rows() {
			if len(row.Cells()) > maxCols {
				maxCols = len(row.Cells())
			}
		}

		colHidden := make([]bool, maxCols)
		for c := 0; c < maxCols; c++ {
			colObj := sh.Column(uint32(c + 1))
			if colObj.X().HiddenAttr != nil {
				colHidden[c] = *colObj.X().HiddenAttr
			}
		}

		out := &Sheet{
			Name:      sh.Name(),
			ColHidden: colHidden,
			Merges:    make(map[[2]int]int),
		}

		// --- process merges ---
		skipCells := make(map[[2]int]bool)
		if sh.X().MergeCells != nil {
			for _, mc := range sh.X().MergeCells.MergeCell {
				from, to, err := reference.ParseRangeReference(mc.RefAttr)
				if err != nil {
					continue
				}
				fromRow := int(from.RowIdx)
				fromCol := int(from.ColumnIdx) + 1
				toRow := int(to.RowIdx)
				toCol := int(to.ColumnIdx) + 1
				out.Merges[[2]int{fromRow, fromCol}] = toCol - fromCol + 1

				for r := fromRow; r <= toRow; r++ {
					for c := fromCol; c <= toCol; c++ {
						if r == fromRow && c == fromCol {
							continue
						}
						skipCells[[2]int{r, c}] = true
					}
				}
			}
		}

		// --- build rows ---
		for _, row := range sh.Rows() {
			rowNum := int(row.RowNumber())
			if rowNum > len(out.Rows) {
				// grow slice to accommodate sparse rows
				newRows := make([][]Cell, rowNum-len(out.Rows))
				out.Rows = append(out.Rows, newRows...)
			}

			cells := make([]Cell, maxCols)
			for _, cell := range row.Cells() {
				colName, err := cell.Column()
				if err != nil {
					continue
				}
				colNum := int(reference.ColumnToIndex(colName)) + 1
				if colNum > maxCols {
					continue
				}
				if skipCells[[2]int{rowNum, colNum}] {
					continue
				}

				c := Cell{Value: cell.GetFormattedValue()}
				if cell.X().SAttr != nil {
					styleID := *cell.X().SAttr
					if fill := fillProps(wb.StyleSheet, styleID); fill != nil &&
						fill.PatternFill != nil && fill.PatternFill.FgColor != nil {
						fg := fill.PatternFill.FgColor
						if fg.RgbAttr != nil {
							c.Fill = normalizeColor(*fg.RgbAttr)
						} else if fg.ThemeAttr != nil {
							if hex, ok := themeColorToRGB(wb, int(*fg.ThemeAttr)); ok {
								c.Fill = hex
							}
						}
					}
					if border := borderProps(wb.StyleSheet, styleID); border != nil && border.Right != nil {
						switch border.Right.StyleAttr {
						case sml.ST_BorderStyleUnset, sml.ST_BorderStyleNone:
						default:
							c.RightBorder = true
						}
					}
				}
				cells[colNum-1] = c
			}
			out.Rows[rowNum-1] = cells
		}

		// sparse rows left nil by the grow step become empty rows
		for i, row := range out.Rows {
			if row == nil {
				out.Rows[i] = make([]Cell, maxCols)
			}
		}

		model.Sheets = append(model.Sheets, out)
	}

	return &model, nil
}

// Helper to extract the underlying fill XML struct from a style ID
func fillProps(ss spreadsheet.StyleSheet, styleID uint32) *sml.CT_Fill {
	if int(styleID) >= len(ss.X().CellXfs.Xf) {
		return nil
	}
	xf := ss.X().CellXfs.Xf[styleID]
	if xf.FillIdAttr == nil {
		return nil
	}
	fillIdx := int(*xf.FillIdAttr)
	if fillIdx < 0 || fillIdx >= len(ss.X().Fills.Fill) {
		return nil
	}
	return ss.X().Fills.Fill[fillIdx]
}

// Helper to extract the underlying border XML struct from a style ID
func borderProps(ss spreadsheet.StyleSheet, styleID uint32) *sml.CT_Border {
	if int(styleID) >= len(ss.X().CellXfs.Xf) {
		return nil
	}
	xf := ss.X().CellXfs.Xf[styleID]
	if xf.BorderIdAttr == nil {
		return nil
	}
	borderIdx := int(*xf.BorderIdAttr)
	if borderIdx < 0 || borderIdx >= len(ss.X().Borders.Border) {
		return nil
	}
	return ss.X().Borders.Border[borderIdx]
}

// themeColorToRGB resolves a theme color index (0-based) to an RGB hex
// string (e.g. "FFFFFF"). It does not apply tint. Returns false if the
// index is invalid or the color cannot be resolved.
func themeColorToRGB(wb *spreadsheet.Workbook, themeIdx int) (string, bool) {
	themes := wb.Themes()
	if len(themes) == 0 || themes[0] == nil {
		return "", false
	}
	clrScheme := themes[0].ThemeElements.ClrScheme

	var clr *dml.CT_Color
	switch themeIdx {
	case 0:
		clr = clrScheme.Dk1
	case 1:
		clr = clrScheme.Lt1
	case 2:
		clr = clrScheme.Dk2
	case 3:
		clr = clrScheme.Lt2
	case 4:
		clr = clrScheme.Accent1
	case 5:
		clr = clrScheme.Accent2
	case 6:
		clr = clrScheme.Accent3
	case 7:
		clr = clrScheme.Accent4
	case 8:
		clr = clrScheme.Accent5
	case 9:
		clr = clrScheme.Accent6
	case 10:
		clr = clrScheme.Hlink
	case 11:
		clr = clrScheme.FolHlink
	default:
		return "", false
	}

	if clr == nil {
		return "", false
	}

	if clr.SrgbClr != nil && clr.SrgbClr.ValAttr != "" {
		return clr.SrgbClr.ValAttr, true
	} else if clr.SysClr != nil && clr.SysClr.LastClrAttr != nil {
		return *clr.SysClr.LastClrAttr, true
	}
	return "", false
}

// normalizeColor converts an 8-digit ARGB hex (as used in XLSX) to a
// 6-digit RGB string. Any other length is returned unchanged.
func normalizeColor(hex string) string {
	if len(hex) == 8 {
		return hex[2:]
	}
	return hex
}
