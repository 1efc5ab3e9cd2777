package filler

import (
	"fmt"

	"github.com/hobbybrown/tradedocs/internal/locator"
)

// itemUnit is written into the unit column of every item row.
const itemUnit = "EA"

// writeBody detects the item table, clears the previous contents, makes
// room for the items when the body is too short and writes one row per item.
func (j *job) writeBody() error {
	header, err := j.sheet.DetectHeader(j.rules)
	if err != nil {
		return err
	}
	j.header = header

	footer := j.sheet.FooterRow(header, j.rules)
	if err := j.clearBody(footer); err != nil {
		return err
	}
	if err := j.makeRoom(footer); err != nil {
		return err
	}

	for i, item := range j.items {
		row := header.Row + 1 + i
		cells := []struct {
			role  locator.Role
			value interface{}
		}{
			{locator.RoleSeq, i + 1},
			{locator.RoleName, item.Name},
			{locator.RoleSpec, item.Spec},
			{locator.RoleUnit, itemUnit},
			{locator.RoleQty, item.Quantity},
			// price columns show per-unit amounts after discount
			{locator.RoleUnitPrice, item.UnitSupplyDiscounted},
			{locator.RoleSupply, item.UnitSupplyDiscounted},
			{locator.RoleVAT, item.UnitVAT},
			{locator.RoleGross, item.GrossTotal},
		}

		for _, c := range cells {
			if err := j.writeItemCell(row, c.role, c.value); err != nil {
				return err
			}
		}
	}
	return nil
}

func (j *job) writeItemCell(row int, role locator.Role, value interface{}) error {
	col, ok := j.header.Column(role)
	if !ok {
		return nil
	}
	cell := locator.Cell{Col: col, Row: row}
	if j.sheet.IsMerged(cell) {
		return nil
	}

	if err := j.sheet.Set(cell, value); err != nil {
		return err
	}

	kind := styleItemText
	switch value.(type) {
	case int, int64:
		kind = styleItemNumber
	}
	return j.styles.apply(cell, kind)
}

// clearBody blanks every non-merged cell of the body, row by row, up to the
// footer row or the configured row limit.
func (j *job) clearBody(footer int) error {
	last := j.rules.BodyRowLimit
	if footer > 0 {
		last = footer - 1
	}
	if last > j.sheet.MaxRow() {
		last = j.sheet.MaxRow()
	}

	for row := j.header.Row + 1; row <= last; row++ {
		for col := 1; col <= j.rules.ClearColumns; col++ {
			if err := j.sheet.Clear(locator.Cell{Col: col, Row: row}); err != nil {
				return err
			}
		}
	}
	return nil
}

// makeRoom inserts rows above the footer when there are more items than
// body rows. The last body row is duplicated so the new rows keep its
// styles and merges; a template without body rows gets plain rows.
func (j *job) makeRoom(footer int) error {
	if footer == 0 {
		return nil
	}
	available := footer - j.header.Row - 1
	need := len(j.items) - available
	if need <= 0 {
		return nil
	}

	f, sheet := j.sheet.File(), j.sheet.Name()
	if available > 0 {
		for i := 0; i < need; i++ {
			if err := f.DuplicateRow(sheet, footer-1); err != nil {
				return fmt.Errorf("failed to extend body: %w", err)
			}
		}
	} else if err := f.InsertRows(sheet, footer, need); err != nil {
		return fmt.Errorf("failed to extend body: %w", err)
	}

	return j.sheet.Reload()
}
