package filler

import (
	"strings"

	"github.com/hobbybrown/tradedocs/pkg/utils"
)

// fillStatementTotals overwrites the cell right of every footer label. A
// label cell is classified by the first group it mentions: subtotal, then
// VAT, then gross. The item table is not searched.
func (j *job) fillStatementTotals() error {
	groups := []struct {
		labels []string
		value  int64
	}{
		{normalizeAll(j.rules.SubtotalLabels), j.totals.Supply},
		{normalizeAll(j.rules.VATLabels), j.totals.VAT},
		{normalizeAll(j.rules.GrossLabels), j.totals.Gross},
	}
	skip := j.bodyRows()

	for _, c := range j.sheet.Cells() {
		if skip[c.Row] {
			continue
		}
		text := j.sheet.Normalized(c)

		for _, g := range groups {
			if !containsAny(text, g.labels) {
				continue
			}
			if target, ok := j.sheet.RightOf(c, true); ok {
				if err := j.sheet.Set(target, g.value); err != nil {
					return err
				}
			}
			break
		}
	}
	return nil
}

func normalizeAll(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if n := utils.NormalizeLabel(t); n != "" {
			out = append(out, n)
		}
	}
	return out
}

func containsAny(text string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}
