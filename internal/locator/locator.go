// =============================================================================
// Trade Documents - Template Cell Locator
// =============================================================================
//
// This module finds the cells a value belongs in. Templates have a fixed
// visual layout but no declared schema, so every target is discovered by the
// text printed next to it.
//
// TWO PHASES:
//   1. Open indexes the sheet once: the normalized text of every cell in
//      document order (row by row, left to right) and the merged regions.
//   2. Queries (Find, WriteRightOf, DetectHeader, FooterRow) run against the
//      index. Writes go through Set so the index stays current.
//
// NORMALIZATION:
//   Cell text and labels are compared after NFC composition, full-width
//   folding, whitespace removal and lower-casing (utils.NormalizeLabel).
//
// MERGED CELLS:
//   Only the top-left anchor of a merged region holds a value. The other
//   members are "merged" here: they never match a label and are never
//   written.
//
// =============================================================================

package locator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hobbybrown/tradedocs/pkg/utils"
	"github.com/xuri/excelize/v2"
)

// =============================================================================
// CELL ADDRESSES
// =============================================================================

// Cell is a 1-based column/row address.
type Cell struct {
	Col int
	Row int
}

// Name returns the A1-style name of the cell.
func (c Cell) Name() string {
	name, err := excelize.CoordinatesToCellName(c.Col, c.Row)
	if err != nil {
		return fmt.Sprintf("R%dC%d", c.Row, c.Col)
	}
	return name
}

func (c Cell) String() string { return c.Name() }

// less orders cells row by row, left to right.
func (c Cell) less(o Cell) bool {
	if c.Row != o.Row {
		return c.Row < o.Row
	}
	return c.Col < o.Col
}

// MatchMode selects how a label is compared with cell text.
type MatchMode int

const (
	// MatchExact requires the normalized texts to be equal.
	MatchExact MatchMode = iota

	// MatchContains requires the normalized cell text to contain the label.
	MatchContains
)

func (m MatchMode) matches(cellText, label string) bool {
	if cellText == "" || label == "" {
		return false
	}
	if m == MatchContains {
		return strings.Contains(cellText, label)
	}
	return cellText == label
}

// =============================================================================
// SHEET INDEX
// =============================================================================

// Sheet is the cell index of one worksheet.
type Sheet struct {
	file *excelize.File
	name string

	// text and norm hold the display text and normalized text per cell.
	text map[Cell]string
	norm map[Cell]string

	// formula marks cells whose value is a formula without cached text.
	formula map[Cell]bool

	// cells lists every indexed cell in document order.
	cells []Cell

	// anchors maps every member of a merged region to its top-left cell.
	anchors map[Cell]Cell

	maxRow int
	maxCol int
}

// Open indexes the named sheet of f.
//
// PARAMETERS:
//   - f: An open workbook. The Sheet writes into it; saving is the caller's job.
//   - sheet: The worksheet name. Empty selects the active sheet.
//
// RETURNS:
//   - The sheet index.
//   - An error if the sheet does not exist or cannot be read.
func Open(f *excelize.File, sheet string) (*Sheet, error) {
	if sheet == "" {
		sheet = f.GetSheetName(f.GetActiveSheetIndex())
	}
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet %q not found", sheet)
	}

	s := &Sheet{file: f, name: sheet}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload rebuilds the index from the workbook. It must be called after
// structural edits such as row insertion.
func (s *Sheet) Reload() error {
	s.text = make(map[Cell]string)
	s.norm = make(map[Cell]string)
	s.formula = make(map[Cell]bool)
	s.anchors = make(map[Cell]Cell)
	s.cells = s.cells[:0]
	s.maxRow, s.maxCol = 0, 0

	rows, err := s.file.GetRows(s.name)
	if err != nil {
		return fmt.Errorf("failed to read rows of %q: %w", s.name, err)
	}

	for r, row := range rows {
		for c, value := range row {
			cell := Cell{Col: c + 1, Row: r + 1}
			s.grow(cell)
			if strings.TrimSpace(value) == "" {
				continue
			}
			s.text[cell] = value
			s.norm[cell] = utils.NormalizeLabel(value)
			s.cells = append(s.cells, cell)
		}
	}

	merged, err := s.file.GetMergeCells(s.name)
	if err != nil {
		return fmt.Errorf("failed to read merged cells of %q: %w", s.name, err)
	}
	for _, m := range merged {
		if err := s.indexMerge(m.GetStartAxis(), m.GetEndAxis()); err != nil {
			return err
		}
	}

	// Formula cells without a cached value read as empty but are not free.
	for row := 1; row <= s.maxRow; row++ {
		for col := 1; col <= s.maxCol; col++ {
			cell := Cell{Col: col, Row: row}
			if _, ok := s.text[cell]; ok {
				continue
			}
			if f, err := s.file.GetCellFormula(s.name, cell.Name()); err == nil && f != "" {
				s.formula[cell] = true
			}
		}
	}
	return nil
}

func (s *Sheet) indexMerge(start, end string) error {
	c1, r1, err := excelize.CellNameToCoordinates(start)
	if err != nil {
		return fmt.Errorf("bad merged range %s:%s: %w", start, end, err)
	}
	c2, r2, err := excelize.CellNameToCoordinates(end)
	if err != nil {
		return fmt.Errorf("bad merged range %s:%s: %w", start, end, err)
	}
	anchor := Cell{Col: c1, Row: r1}
	for row := r1; row <= r2; row++ {
		for col := c1; col <= c2; col++ {
			cell := Cell{Col: col, Row: row}
			s.anchors[cell] = anchor
			s.grow(cell)
		}
	}
	return nil
}

func (s *Sheet) grow(c Cell) {
	if c.Row > s.maxRow {
		s.maxRow = c.Row
	}
	if c.Col > s.maxCol {
		s.maxCol = c.Col
	}
}

// File returns the underlying workbook.
func (s *Sheet) File() *excelize.File { return s.file }

// Name returns the worksheet name.
func (s *Sheet) Name() string { return s.name }

// MaxRow returns the last row holding a value or a merged region.
func (s *Sheet) MaxRow() int { return s.maxRow }

// MaxCol returns the last column holding a value or a merged region.
func (s *Sheet) MaxCol() int { return s.maxCol }

// Text returns the display text of a cell.
func (s *Sheet) Text(c Cell) string { return s.text[c] }

// Normalized returns the normalized text of a cell.
func (s *Sheet) Normalized(c Cell) string { return s.norm[c] }

// IsMerged reports whether c is a non-anchor member of a merged region.
func (s *Sheet) IsMerged(c Cell) bool {
	anchor, ok := s.anchors[c]
	return ok && anchor != c
}

// IsEmpty reports whether c has neither text nor a formula.
func (s *Sheet) IsEmpty(c Cell) bool {
	_, hasText := s.text[c]
	return !hasText && !s.formula[c]
}

// Anchor returns the top-left cell of the merged region containing c, or c
// itself when it is not merged.
func (s *Sheet) Anchor(c Cell) Cell {
	if anchor, ok := s.anchors[c]; ok {
		return anchor
	}
	return c
}

// =============================================================================
// WRITES
// =============================================================================

// Set writes value into c, keeping the cell's style, and updates the index.
// An empty string clears the cell.
func (s *Sheet) Set(c Cell, value interface{}) error {
	if s.IsMerged(c) {
		return fmt.Errorf("cell %s is inside a merged region", c)
	}

	name := c.Name()
	styleID, _ := s.file.GetCellStyle(s.name, name)
	if err := s.file.SetCellValue(s.name, name, value); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if styleID > 0 {
		if err := s.file.SetCellStyle(s.name, name, name, styleID); err != nil {
			return fmt.Errorf("failed to restore style of %s: %w", name, err)
		}
	}

	s.index(c, value)
	return nil
}

// Clear blanks c. Merged members are left alone.
func (s *Sheet) Clear(c Cell) error {
	if s.IsMerged(c) {
		return nil
	}
	if s.IsEmpty(c) {
		return nil
	}
	return s.Set(c, "")
}

func (s *Sheet) index(c Cell, value interface{}) {
	delete(s.formula, c)

	text := ""
	if value != nil {
		text = fmt.Sprint(value)
	}
	if strings.TrimSpace(text) == "" {
		delete(s.text, c)
		delete(s.norm, c)
		return
	}

	if _, known := s.text[c]; !known {
		i := sort.Search(len(s.cells), func(i int) bool { return !s.cells[i].less(c) })
		if i == len(s.cells) || s.cells[i] != c {
			s.cells = append(s.cells, Cell{})
			copy(s.cells[i+1:], s.cells[i:])
			s.cells[i] = c
		}
	}
	s.text[c] = text
	s.norm[c] = utils.NormalizeLabel(text)
	s.grow(c)
}

// =============================================================================
// LABEL QUERIES
// =============================================================================

// Find returns every non-merged cell whose text matches label, in document
// order.
func (s *Sheet) Find(label string, mode MatchMode) []Cell {
	want := utils.NormalizeLabel(label)
	var found []Cell
	for _, c := range s.cells {
		if s.IsMerged(c) {
			continue
		}
		if mode.matches(s.norm[c], want) {
			found = append(found, c)
		}
	}
	return found
}

// Cells returns every non-merged cell holding text, in document order.
func (s *Sheet) Cells() []Cell {
	out := make([]Cell, 0, len(s.cells))
	for _, c := range s.cells {
		if s.IsMerged(c) || s.norm[c] == "" {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Lookup describes a label-proximity write.
type Lookup struct {
	// Label is the text printed next to the target.
	Label string

	// Match selects exact or substring comparison.
	Match MatchMode

	// Overwrite writes the first non-merged cell to the right even when it
	// already has a value. Otherwise only an empty cell is taken.
	Overwrite bool

	// All writes next to every matching label instead of the first one that
	// accepts the value.
	All bool

	// SkipRows excludes rows from matching, e.g. the item table.
	SkipRows map[int]bool

	// MaxRow limits matching to rows 1..MaxRow. Zero means no limit.
	MaxRow int
}

// WriteRightOf finds the label and writes value into the first writable cell
// to its right, skipping merged cells.
//
// Matches are tried in document order. A match whose row has no writable
// cell is passed over and the next match is tried. A missing label is not an
// error; the returned slice is then empty.
//
// RETURNS:
//   - The cells written.
//   - An error only if the workbook rejected a write.
func (s *Sheet) WriteRightOf(l Lookup, value interface{}) ([]Cell, error) {
	var written []Cell
	for _, match := range s.Find(l.Label, l.Match) {
		if l.SkipRows[match.Row] || (l.MaxRow > 0 && match.Row > l.MaxRow) {
			continue
		}

		target, ok := s.RightOf(match, l.Overwrite)
		if !ok {
			continue
		}
		if err := s.Set(target, value); err != nil {
			return written, err
		}
		written = append(written, target)

		if !l.All {
			break
		}
	}
	return written, nil
}

// RightOf returns the first non-merged cell to the right of c that is empty,
// or simply the first non-merged one when overwrite is set. The scan stops at
// the used range, but the column next to the label is always considered.
func (s *Sheet) RightOf(c Cell, overwrite bool) (Cell, bool) {
	last := s.maxCol
	if last < c.Col+1 {
		last = c.Col + 1
	}
	for col := c.Col + 1; col <= last; col++ {
		target := Cell{Col: col, Row: c.Row}
		if s.IsMerged(target) {
			continue
		}
		if overwrite || s.IsEmpty(target) {
			return target, true
		}
	}
	return Cell{}, false
}

// RowText returns the normalized text of columns from..to of row joined
// together.
func (s *Sheet) RowText(row, from, to int) string {
	var b strings.Builder
	for col := from; col <= to; col++ {
		b.WriteString(s.norm[Cell{Col: col, Row: row}])
	}
	return b.String()
}
