// =============================================================================
// Trade Documents - Export Reader Module
// =============================================================================
//
// This module reads marketplace order exports. An export is a workbook whose
// first sheet holds one header row followed by one row per ordered item.
//
// FEATURES:
//   - Configurable header row (Naver puts a title row above the headers)
//   - Optional password decryption (Naver exports are encrypted)
//   - Header renaming to the canonical label-sheet names
//   - Constant columns added to every row
//   - Empty rows are skipped
//
// A cell that is missing or blank is not stored in the row, so callers can
// tell an absent value from a present one with Lookup.
//
// =============================================================================

package exportreader

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrMissingColumn is returned when a required column is not in the export.
var ErrMissingColumn = errors.New("missing column")

// =============================================================================
// EXPORT DATA STRUCTURE
// =============================================================================

// Options controls how an export is read.
type Options struct {
	// HeaderRow is the 1-based row holding the column headers.
	HeaderRow int

	// Password decrypts the workbook. Empty means not encrypted.
	Password string

	// Rename maps export headers to canonical names.
	Rename map[string]string

	// Constants are added to every row, replacing any exported value.
	Constants map[string]string

	// Required columns must exist after renaming.
	Required []string
}

// Row is one data row of an export.
type Row struct {
	// Number is the 1-based sheet row.
	Number int

	values map[string]string
}

// NewRow builds a row from canonical column values. Blank values are dropped.
func NewRow(number int, values map[string]string) Row {
	r := Row{Number: number, values: make(map[string]string, len(values))}
	for k, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			r.values[k] = v
		}
	}
	return r
}

// Lookup returns the value of column and whether the cell had one.
func (r Row) Lookup(column string) (string, bool) {
	v, ok := r.values[column]
	return v, ok
}

// Values returns a copy of the row's non-empty cells.
func (r Row) Values() map[string]string {
	out := make(map[string]string, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// Get returns the value of column, or "" when the cell was empty.
func (r Row) Get(column string) string {
	return r.values[column]
}

// Export is a parsed export sheet.
type Export struct {
	SourceFile string
	Sheet      string

	// Headers are the canonical column names in sheet order, followed by
	// any constant columns the sheet did not have.
	Headers []string

	Rows []Row
}

// =============================================================================
// READER FUNCTIONS
// =============================================================================

// Read opens an export workbook and parses its first sheet.
//
// PARAMETERS:
//   - path: The export file.
//   - opts: Header row, password, renames, constants and required columns.
//
// RETURNS:
//   - The parsed export.
//   - An error if the file cannot be opened or decrypted, the header row is
//     missing, or a required column is absent (ErrMissingColumn).
func Read(path string, opts Options) (*Export, error) {
	if opts.HeaderRow < 1 {
		opts.HeaderRow = 1
	}

	f, err := excelize.OpenFile(path, excelize.Options{Password: opts.Password})
	if err != nil {
		return nil, fmt.Errorf("failed to open export: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) < opts.HeaderRow {
		return nil, fmt.Errorf("header row %d not found in %q", opts.HeaderRow, sheet)
	}

	headers := renameHeaders(rows[opts.HeaderRow-1], opts.Rename)
	export := &Export{
		SourceFile: path,
		Sheet:      sheet,
		Headers:    withConstants(headers, opts.Constants),
	}

	if err := checkRequired(export.Headers, opts.Required); err != nil {
		return nil, err
	}

	for i := opts.HeaderRow; i < len(rows); i++ {
		if isRowEmpty(rows[i]) {
			continue
		}
		export.Rows = append(export.Rows, buildRow(i+1, headers, rows[i], opts.Constants))
	}

	return export, nil
}

// renameHeaders trims every header and applies the rename map.
func renameHeaders(raw []string, rename map[string]string) []string {
	headers := make([]string, len(raw))
	for i, h := range raw {
		h = strings.TrimSpace(h)
		if to, ok := rename[h]; ok {
			h = to
		}
		headers[i] = h
	}
	return headers
}

// withConstants appends constant columns the sheet does not already have.
func withConstants(headers []string, constants map[string]string) []string {
	out := append([]string(nil), headers...)
	seen := make(map[string]bool, len(headers))
	for _, h := range headers {
		seen[h] = true
	}

	// Map order is random; keep the appended columns stable.
	var extra []string
	for name := range constants {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}

func checkRequired(headers, required []string) error {
	have := make(map[string]bool, len(headers))
	for _, h := range headers {
		have[h] = true
	}

	var missing []string
	for _, name := range required {
		if !have[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return nil
}

func buildRow(number int, headers, cells []string, constants map[string]string) Row {
	values := make(map[string]string, len(headers)+len(constants))
	for i, h := range headers {
		if h == "" || i >= len(cells) {
			continue
		}
		// The first column with a given name wins.
		if _, dup := values[h]; !dup {
			values[h] = cells[i]
		}
	}
	for name, v := range constants {
		values[name] = v
	}
	return NewRow(number, values)
}

// isRowEmpty checks if a row is empty (all fields are empty or whitespace).
func isRowEmpty(row []string) bool {
	for _, field := range row {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// Column returns every row's value for column, in row order.
func (e *Export) Column(column string) []string {
	values := make([]string, len(e.Rows))
	for i, row := range e.Rows {
		values[i] = row.Get(column)
	}
	return values
}

// UniqueValues returns the distinct values of column in first-occurrence
// order. Rows without a value are grouped under "".
func (e *Export) UniqueValues(column string) []string {
	seen := make(map[string]bool)
	var unique []string
	for _, v := range e.Column(column) {
		if !seen[v] {
			seen[v] = true
			unique = append(unique, v)
		}
	}
	return unique
}
