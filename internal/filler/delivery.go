package filler

import (
	"github.com/hobbybrown/tradedocs/internal/locator"
)

// Delivery note labels that receive the customer name.
var deliveryCustomerLabels = []string{"사업장소재지", "공급받는자"}

func (j *job) fillDeliveryHeader() error {
	for _, label := range deliveryCustomerLabels {
		if err := j.writeLabel(label, j.info.CustomerName); err != nil {
			return err
		}
	}
	return nil
}

// fillDeliveryTotals writes the totals into the sum row of the item table,
// in the supply, VAT and gross columns. The sum row is the first row after
// the items whose leading cells mention a sum keyword; without one, the row
// right after the last item is used.
func (j *job) fillDeliveryTotals() error {
	sumRow := j.sumRow()

	totals := []struct {
		role  locator.Role
		value int64
	}{
		{locator.RoleSupply, j.totals.Supply},
		{locator.RoleVAT, j.totals.VAT},
		{locator.RoleGross, j.totals.Gross},
	}
	for _, t := range totals {
		col, ok := j.header.Column(t.role)
		if !ok {
			continue
		}
		cell := locator.Cell{Col: col, Row: sumRow}
		if j.sheet.IsMerged(cell) {
			continue
		}
		if err := j.sheet.Set(cell, t.value); err != nil {
			return err
		}
		if err := j.styles.apply(cell, styleNumber); err != nil {
			return err
		}
	}
	return nil
}

func (j *job) sumRow() int {
	keywords := normalizeAll(j.rules.SumRowKeywords)

	after := j.header.Row + len(j.items)
	for row := after + 1; row <= j.sheet.MaxRow(); row++ {
		if containsAny(j.sheet.RowText(row, 1, j.rules.SumRowProbeColumns), keywords) {
			return row
		}
	}
	return after + 1
}
