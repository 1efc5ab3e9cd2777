// =============================================================================
// Trade Documents - Order Consolidator Module
// =============================================================================
//
// This module merges marketplace export rows that ship together into one
// label record per fulfillment identifier, and projects the same rows into
// a carrier dispatch table.
//
// LABEL RECORD:
//   The item-name column becomes the display field and the engraving column
//   carries the full merged text:
//
//	[hobby brown] total => 7 ea
//
//	1. 하비 => 2 ea
//	2. 머그컵 => 1 ea
//	3. 브라운 => 4 ea
//
//   The display field is cut to MaxLines entries (KeepLines entries, the
//   truncate mark, then filler lines). The engraving field is never cut and,
//   when the profile has an order-count column, starts with
//   "1년 주문건수 : N건".
//
// ORDERING:
//   Groups appear in the order their identifier first occurs in the export.
//   Rows keep their export order inside a group.
//
// =============================================================================

package consolidator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/shopspring/decimal"

	"github.com/hobbybrown/tradedocs/internal/config"
	"github.com/hobbybrown/tradedocs/internal/exportreader"
	"github.com/hobbybrown/tradedocs/internal/logging"
	"github.com/hobbybrown/tradedocs/internal/sheetwriter"
	"github.com/hobbybrown/tradedocs/pkg/utils"
)

// =============================================================================
// OUTPUT STRUCTURES
// =============================================================================

// Record is one consolidated label row.
type Record struct {
	// Group is the fulfillment identifier shared by the merged rows.
	Group string

	// Rows is the number of export rows merged into this record.
	Rows int

	// Total is the sum of the merged rows' quantities.
	Total int64

	// Values holds the label-sheet columns.
	Values map[string]string
}

// Output is the result of one consolidation.
type Output struct {
	Records []Record

	// Labels and Dispatch are the two output sheets.
	Labels   sheetwriter.Table
	Dispatch sheetwriter.Table

	// Skipped counts rows excluded by the profile's skip_if expression.
	Skipped int
}

// =============================================================================
// CONSOLIDATOR
// =============================================================================

// Consolidator merges export rows for one marketplace profile.
type Consolidator struct {
	profile *config.MarketplaceProfile
	cleaner *Cleaner
	skipIf  *vm.Program
	logger  logging.Logger
}

// New prepares a consolidator for profile. It fails when the profile's
// cleanup actions or skip_if expression are invalid.
func New(profile *config.MarketplaceProfile, logger logging.Logger) (*Consolidator, error) {
	if logger == nil {
		logger = logging.Nop()
	}

	cleaner, err := NewCleaner(profile.NoteCleanup)
	if err != nil {
		return nil, err
	}

	c := &Consolidator{profile: profile, cleaner: cleaner, logger: logger}

	if profile.SkipIf != "" {
		env := map[string]any{"row": map[string]string{}}
		program, err := expr.Compile(profile.SkipIf, expr.Env(env), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("skip_if: %w", err)
		}
		c.skipIf = program
	}
	return c, nil
}

// ReadOptions returns the export reader options for the profile.
func (c *Consolidator) ReadOptions() exportreader.Options {
	p := c.profile
	return exportreader.Options{
		HeaderRow: p.HeaderRow,
		Password:  p.Password,
		Rename:    p.Rename,
		Constants: p.Constants,
		Required:  []string{p.GroupColumn, p.NameColumn, p.QuantityColumn},
	}
}

// Consolidate merges rows into label records and builds both output sheets.
//
// PARAMETERS:
//   - rows: Export rows with canonical column names, in export order.
//
// RETURNS:
//   - The records and the two output tables.
//   - An error if a quantity is not a number or skip_if fails on a row.
func (c *Consolidator) Consolidate(rows []exportreader.Row) (*Output, error) {
	out := &Output{}

	// =========================================================================
	// STEP 1: Drop rows matched by skip_if
	// =========================================================================
	kept := make([]exportreader.Row, 0, len(rows))
	for _, row := range rows {
		skip, err := c.skip(row)
		if err != nil {
			return nil, err
		}
		if skip {
			out.Skipped++
			continue
		}
		kept = append(kept, row)
	}

	// =========================================================================
	// STEP 2: Group rows by fulfillment identifier
	// =========================================================================
	groups := c.group(kept)
	c.logger.Debug("%d rows in %d groups (%d skipped)", len(kept), len(groups), out.Skipped)

	// =========================================================================
	// STEP 3: Merge each group
	// =========================================================================
	for _, g := range groups {
		acc := newAccumulator(g.key)
		for _, row := range g.rows {
			if err := c.addRow(acc, row); err != nil {
				return nil, err
			}
		}
		out.Records = append(out.Records, c.finish(acc))
	}

	// =========================================================================
	// STEP 4: Project the output sheets
	// =========================================================================
	out.Labels = c.labelTable(out.Records)
	out.Dispatch = c.dispatchTable(groups)

	return out, nil
}

// skip evaluates skip_if against row.
func (c *Consolidator) skip(row exportreader.Row) (bool, error) {
	if c.skipIf == nil {
		return false, nil
	}

	result, err := expr.Run(c.skipIf, map[string]any{"row": row.Values()})
	if err != nil {
		return false, fmt.Errorf("skip_if on row %d: %w", row.Number, err)
	}
	skip, _ := result.(bool)
	return skip, nil
}

// =============================================================================
// GROUPING
// =============================================================================

type group struct {
	key  string
	rows []exportreader.Row
}

// group splits rows by GroupColumn in first-occurrence order. A row without
// an identifier ships alone.
func (c *Consolidator) group(rows []exportreader.Row) []*group {
	var groups []*group
	index := make(map[string]*group)

	for _, row := range rows {
		key, ok := row.Lookup(c.profile.GroupColumn)
		if !ok {
			groups = append(groups, &group{rows: []exportreader.Row{row}})
			continue
		}
		g, exists := index[key]
		if !exists {
			g = &group{key: key}
			index[key] = g
			groups = append(groups, g)
		}
		g.rows = append(g.rows, row)
	}
	return groups
}

// =============================================================================
// MERGING
// =============================================================================

// accumulator is the in-progress state of one group.
type accumulator struct {
	key   string
	first exportreader.Row
	rows  int
	lines []string
	total int64

	// inserted holds the normalized descriptions already merged.
	inserted map[string]bool
}

func newAccumulator(key string) *accumulator {
	return &accumulator{key: key, inserted: make(map[string]bool)}
}

// addRow merges one row into acc. The n-th row of a group is numbered n
// even when an earlier duplicate was skipped.
func (c *Consolidator) addRow(acc *accumulator, row exportreader.Row) error {
	qty, err := parseQuantity(row.Get(c.profile.QuantityColumn))
	if err != nil {
		return fmt.Errorf("row %d: %s: %w", row.Number, c.profile.QuantityColumn, err)
	}

	acc.rows++
	acc.total += qty
	if acc.rows == 1 {
		acc.first = row
	}

	desc := c.describe(row)
	key := utils.NormalizeLabel(desc)
	if acc.rows > 1 && c.profile.DedupeNotes && acc.inserted[key] {
		c.logger.Debug("group %s: row %d repeats %q", acc.key, row.Number, desc)
		return nil
	}
	acc.inserted[key] = true
	acc.lines = append(acc.lines, entryLine(acc.rows, desc, qty))
	return nil
}

// describe returns the text merged for row: the cleaned note when the row
// has one, else the item name. With an option column, the option comes
// first, separated by a colon.
func (c *Consolidator) describe(row exportreader.Row) string {
	var desc string
	if note, ok := c.note(row); ok {
		desc = strings.TrimSpace(c.cleaner.Clean(note))
	} else {
		desc = row.Get(c.profile.NameColumn)
	}

	if c.profile.OptionColumn != "" {
		desc = row.Get(c.profile.OptionColumn) + ":" + desc
	}
	return desc
}

func (c *Consolidator) note(row exportreader.Row) (string, bool) {
	if c.profile.NoteColumn == "" {
		return "", false
	}
	return row.Lookup(c.profile.NoteColumn)
}

// entryLine formats "{n}. {desc} => {qty} ea".
func entryLine(n int, desc string, qty int64) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(n))
	b.WriteString(".")
	if desc != "" {
		b.WriteString(" ")
		b.WriteString(desc)
	}
	fmt.Fprintf(&b, " => %d ea", qty)
	return b.String()
}

// parseQuantity accepts "2", "2.0" and "1,000".
func parseQuantity(s string) (int64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, fmt.Errorf("quantity is empty")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid quantity %q", s)
	}
	if !d.IsInteger() || d.IsNegative() {
		return 0, fmt.Errorf("invalid quantity %q", s)
	}
	return d.IntPart(), nil
}

// finish builds the label record for a completed group.
func (c *Consolidator) finish(acc *accumulator) Record {
	p := c.profile

	summary := fmt.Sprintf("[%s] total => %d ea", p.Brand, acc.total)
	full := strings.Join(acc.lines, "\n")

	engraving := summary + "\n\n" + full
	if p.OrderCountColumn != "" {
		count := acc.first.Get(p.OrderCountColumn)
		if count == "" {
			count = "0"
		}
		engraving = fmt.Sprintf("%s : %s건\n", p.OrderCountColumn, count) + engraving
	}

	display := summary + "\n\n" + strings.Join(Truncate(acc.lines, p.MaxLines, p.KeepLines, p.TruncateMark, p.TruncateFiller), "\n")

	values := acc.first.Values()
	values[p.NameColumn] = display
	values[p.EngravingColumn] = engraving
	values[p.QuantityColumn] = "1"

	return Record{Group: acc.key, Rows: acc.rows, Total: acc.total, Values: values}
}

// Truncate cuts more than maxLines lines down to keep lines and the mark,
// padded with filler lines to maxLines. Shorter input is returned unchanged.
func Truncate(lines []string, maxLines, keep int, mark, filler string) []string {
	if maxLines <= 0 || len(lines) <= maxLines {
		return lines
	}
	if keep > maxLines-1 {
		keep = maxLines - 1
	}

	out := make([]string, 0, maxLines)
	out = append(out, lines[:keep]...)
	out = append(out, mark)
	for len(out) < maxLines {
		out = append(out, filler)
	}
	return out
}

// =============================================================================
// OUTPUT TABLES
// =============================================================================

func (c *Consolidator) labelTable(records []Record) sheetwriter.Table {
	t := sheetwriter.Table{Headers: c.profile.LabelColumns}
	for _, rec := range records {
		row := make([]string, len(t.Headers))
		for i, col := range t.Headers {
			row[i] = rec.Values[col]
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// dispatchTable has one row per kept export row, grouped like the labels.
func (c *Consolidator) dispatchTable(groups []*group) sheetwriter.Table {
	cols := c.profile.DispatchColumns
	t := sheetwriter.Table{Sheet: c.profile.DispatchSheet, Headers: make([]string, len(cols))}
	for i, col := range cols {
		t.Headers[i] = col.Header
	}

	for _, g := range groups {
		for _, src := range g.rows {
			row := make([]string, len(cols))
			for i, col := range cols {
				if col.Source != "" {
					row[i] = src.Get(col.Source)
				}
			}
			t.Rows = append(t.Rows, row)
		}
	}
	return t
}
