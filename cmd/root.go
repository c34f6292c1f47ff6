package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"ttconv/pkg/exporter"
	"ttconv/pkg/sheet"
	"ttconv/pkg/timetable"
)

var (
	flagOut       string
	flagFormat    string
	flagGridSheet string
	flagStrict    bool
	flagTermStart string
	flagHeaderRow int
	flagVerbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "ttconv <workbook.xlsx>",
	Short: "Convert a university timetable workbook into a reconciled course table",
	Long: `ttconv decodes the merged-cell timetable grid of an XLSX workbook,
extracts the per-department course details sheets, reconciles the two into
one record per course section and lecture, and exports the result as CSV,
a multi-page HTML document, an iCalendar feed, or a clean XLSX workbook.`,
	Args:          cobra.ExactArgs(1),
	RunE:          run,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Flags().StringVarP(&flagOut, "out", "o", "", "output file (default: input basename + format extension)")
	rootCmd.Flags().StringVarP(&flagFormat, "format", "f", "csv", "output format: csv, html, ics or xlsx")
	rootCmd.Flags().StringVar(&flagGridSheet, "grid-sheet", "", "grid sheet name (default: first sheet containing 'tt' or 'timetable')")
	rootCmd.Flags().BoolVar(&flagStrict, "strict", false, "drop grid rows that match no course record")
	rootCmd.Flags().StringVar(&flagTermStart, "term-start", "", "term start date for calendar export (YYYY-MM-DD, default: today)")
	rootCmd.Flags().IntVar(&flagHeaderRow, "header-row", 0, "pin the details header to a fixed row instead of scanning")
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if flagVerbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
		Level(level).
		With().Timestamp().Logger()
}

func run(cmd *cobra.Command, args []string) error {
	log := newLogger()
	path := args[0]

	log.Info().Str("workbook", path).Msg("opening workbook")
	f, err := os.Open(path)
	if err != nil {
		// no core logic runs without a workbook
		fmt.Fprintf(os.Stderr, "Error: unable to open workbook: %s\n", path)
		os.Exit(2)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	wb, err := sheet.ParseWorkbook(f, info.Size())
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(wb.Sheets) == 0 {
		return fmt.Errorf("workbook %s has no sheets", path)
	}

	grid, details := splitSheets(wb, flagGridSheet)
	if grid == nil {
		return fmt.Errorf("grid sheet %q not found", flagGridSheet)
	}
	log.Info().Str("grid", grid.Name).Int("details", len(details)).Msg("selected sheets")

	log.Info().Msg("extracting course details")
	ledger := timetable.BuildLedger(details, timetable.LedgerOptions{
		HeaderRow: flagHeaderRow,
		Logger:    log,
	})
	log.Info().Int("courses", len(ledger)).Msg("course details extracted")

	log.Info().Msg("decoding timetable grid")
	sections := timetable.DecodeGrid(grid, timetable.DefaultGridOptions())
	log.Info().Int("sections", len(sections)).Msg("grid decoded")

	log.Info().Msg("merging course and class details")
	rows := timetable.Reconcile(ledger, sections, timetable.Options{
		KeepUnmatched: !flagStrict,
	})
	for _, row := range rows {
		if row.Unmatched {
			log.Debug().Str("title", row.Title).Str("section", row.Section).Msg("no course record matched")
		}
	}
	log.Info().Int("rows", len(rows)).Msg("merged")

	out := flagOut
	if out == "" {
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		out = base + "." + flagFormat
	}

	if err := export(out, flagFormat, rows); err != nil {
		return err
	}
	log.Info().Str("out", out).Msg("exported")
	return nil
}

// splitSheets picks the grid sheet and returns the rest as details sheets.
// Without an explicit name the first sheet whose lowercase name contains
// "tt" (which also covers "timetable") wins, falling back to the first
// sheet in the workbook.
func splitSheets(wb *sheet.Workbook, gridName string) (*sheet.Sheet, []*sheet.Sheet) {
	var grid *sheet.Sheet
	if gridName != "" {
		grid = wb.Sheet(gridName)
	} else {
		for _, s := range wb.Sheets {
			if strings.Contains(strings.ToLower(s.Name), "tt") {
				grid = s
				break
			}
		}
		if grid == nil {
			grid = wb.Sheets[0]
		}
	}
	if grid == nil {
		return nil, nil
	}

	var details []*sheet.Sheet
	for _, s := range wb.Sheets {
		if s != grid {
			details = append(details, s)
		}
	}
	return grid, details
}

func export(path, format string, rows []timetable.ReconciledRow) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer out.Close()

	switch format {
	case "csv":
		return exporter.WriteCSV(out, rows)
	case "html":
		_, err := out.WriteString(exporter.RenderHTML(rows, "Timetable"))
		return err
	case "ics":
		termStart := time.Now()
		if flagTermStart != "" {
			termStart, err = time.ParseInLocation("2006-01-02", flagTermStart, time.Local)
			if err != nil {
				return fmt.Errorf("invalid --term-start: %w", err)
			}
		}
		return exporter.WriteICS(out, rows, termStart)
	case "xlsx":
		return exporter.WriteXLSX(out, rows)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
