// =============================================================================
// Trade Documents - Sheet Writer Module
// =============================================================================
//
// This module writes consolidation outputs (label sheet, dispatch sheet) as
// plain workbooks. Every cell is written as text so downstream carrier tools
// never reinterpret order numbers or phone numbers as numbers.
//
// LAYOUT:
//
//	row 1       bold header row, frozen
//	row 2..n    one row per record, wrapped text
//
// Column widths follow the longest line in each column, counting East Asian
// wide characters as two.
//
// =============================================================================

package sheetwriter

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/width"
)

// =============================================================================
// TABLE AND OPTIONS
// =============================================================================

// Table is one output sheet.
type Table struct {
	// Sheet is the sheet name. Empty keeps excelize's default "Sheet1".
	Sheet string

	Headers []string

	// Rows hold one value per header. Short rows leave trailing cells empty.
	Rows [][]string
}

// Options contains options for sheet generation.
type Options struct {
	// FreezeHeader keeps the header row visible while scrolling.
	FreezeHeader bool

	// MinWidth and MaxWidth bound the computed column widths.
	MinWidth float64
	MaxWidth float64
}

// DefaultOptions returns the default generation options.
func DefaultOptions() Options {
	return Options{
		FreezeHeader: true,
		MinWidth:     8,
		MaxWidth:     60,
	}
}

// =============================================================================
// GENERATION FUNCTIONS
// =============================================================================

// Write builds the table with the default options and saves it to path.
func Write(path string, table Table) error {
	return WriteWithOptions(path, table, DefaultOptions())
}

// WriteWithOptions builds the table and saves it to path.
//
// PARAMETERS:
//   - path: The output file. Its directory must exist.
//   - table: The sheet name, headers and rows.
//   - options: Layout options.
//
// RETURNS:
//   - An error if the workbook cannot be built or saved.
func WriteWithOptions(path string, table Table, options Options) error {
	f, err := Build(table, options)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// Build creates an in-memory workbook holding table.
func Build(table Table, options Options) (*excelize.File, error) {
	f := excelize.NewFile()

	sheet := f.GetSheetName(0)
	if table.Sheet != "" && table.Sheet != sheet {
		if err := f.SetSheetName(sheet, table.Sheet); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to name sheet %q: %w", table.Sheet, err)
		}
		sheet = table.Sheet
	}

	if err := writeTable(f, sheet, table, options); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func writeTable(f *excelize.File, sheet string, table Table, options Options) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	dataStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	})
	if err != nil {
		return fmt.Errorf("create data style: %w", err)
	}

	widths := make([]float64, len(table.Headers))

	// --- Row 1: Column headers ---
	for i, header := range table.Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellStr(sheet, cell, header); err != nil {
			return fmt.Errorf("write header %s: %w", cell, err)
		}
		widths[i] = displayWidth(header)
	}
	if len(table.Headers) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(table.Headers), 1)
		if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
			return fmt.Errorf("style header: %w", err)
		}
	}

	// --- Data rows starting at row 2 ---
	for r, row := range table.Rows {
		for c := range table.Headers {
			if c >= len(row) {
				break
			}
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellStr(sheet, cell, row[c]); err != nil {
				return fmt.Errorf("write %s: %w", cell, err)
			}
			if w := displayWidth(row[c]); w > widths[c] {
				widths[c] = w
			}
		}
	}
	if len(table.Rows) > 0 && len(table.Headers) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(table.Headers), len(table.Rows)+1)
		if err := f.SetCellStyle(sheet, "A2", last, dataStyle); err != nil {
			return fmt.Errorf("style rows: %w", err)
		}
	}

	// --- Column widths ---
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, col, col, clamp(w+2, options.MinWidth, options.MaxWidth)); err != nil {
			return fmt.Errorf("set width of %s: %w", col, err)
		}
	}

	if options.FreezeHeader {
		err := f.SetPanes(sheet, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		})
		if err != nil {
			return fmt.Errorf("freeze header: %w", err)
		}
	}
	return nil
}

// displayWidth is the width of the longest line of s, in narrow columns.
func displayWidth(s string) float64 {
	longest := 0
	for _, line := range strings.Split(s, "\n") {
		n := 0
		for _, r := range line {
			switch width.LookupRune(r).Kind() {
			case width.EastAsianWide, width.EastAsianFullwidth:
				n += 2
			default:
				n++
			}
		}
		if n > longest {
			longest = n
		}
	}
	return float64(longest)
}

func clamp(v, lo, hi float64) float64 {
	if lo > 0 && v < lo {
		return lo
	}
	if hi > 0 && v > hi {
		return hi
	}
	return v
}
