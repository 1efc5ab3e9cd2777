package filler

import (
	"regexp"
	"strings"
	"time"

	"github.com/hobbybrown/tradedocs/internal/locator"
	"github.com/hobbybrown/tradedocs/internal/numwords"
	"github.com/xuri/excelize/v2"
)

// Quote header labels.
const (
	quoteDateLabel     = "견적일자"
	quoteNumberLabel   = "견적번호"
	deliveryPlaceLabel = "납품장소"
	leadTimeLabel      = "납기일자"
)

// fillQuoteHeader stamps the quote date and number from now, overwriting
// whatever the template holds, then fills the delivery place and lead time.
func (j *job) fillQuoteHeader(now time.Time, leadTime string) error {
	stamps := []struct {
		label string
		value string
	}{
		{quoteDateLabel, now.Format("2006-01-02")},
		{quoteNumberLabel, now.Format("150405")},
	}
	for _, st := range stamps {
		lookup := locator.Lookup{Label: st.label, Match: locator.MatchContains, Overwrite: true, All: true}
		if _, err := j.sheet.WriteRightOf(lookup, st.value); err != nil {
			return err
		}
	}

	if err := j.writeLabel(deliveryPlaceLabel, j.info.CustomerName); err != nil {
		return err
	}
	return j.writeLabel(leadTimeLabel, leadTime)
}

// fillFooterTotals writes supply, VAT and gross totals next to their exact
// footer labels. The first synonym that takes the value wins.
func (j *job) fillFooterTotals() error {
	skip := j.bodyRows()
	totals := []struct {
		labels []string
		value  int64
	}{
		{j.rules.SubtotalLabels, j.totals.Supply},
		{j.rules.VATLabels, j.totals.VAT},
		{j.rules.GrossLabels, j.totals.Gross},
	}

	for _, t := range totals {
		for _, label := range t.labels {
			cells, err := j.sheet.WriteRightOf(locator.Lookup{Label: label, SkipRows: skip}, t.value)
			if err != nil {
				return err
			}
			if len(cells) > 0 {
				break
			}
		}
	}
	return nil
}

// Placeholders a quote template may already have in the amount row.
var (
	amountTextRe = regexp.MustCompile(`^[₩￦\\]?\s*-?[\d,]+\s*(원)?$`)
	wordsTextRe  = regexp.MustCompile(`^(\(\s*\)|\(.*원정?\s*\)|일금.*)$`)
)

// fillQuoteAmount writes the grand total and its amount in words on the
// quotation amount row.
//
// CELL SELECTION:
//   1. Cells right of the label that already look like an amount
//      ("₩ 0", "1,000") or like words in parentheses ("( 원정 )")
//   2. The configured columns of the label row, resolved to merge anchors
//   3. The first cells right of the label
func (j *job) fillQuoteAmount() error {
	label, ok := j.quoteAmountLabel()
	if !ok {
		return nil
	}

	amount, words := j.scanAmountRow(label)
	if amount == nil {
		amount = j.configuredCell(j.rules.QuoteAmountColumn, label.Row)
	}
	if amount == nil {
		if c, ok := j.sheet.RightOf(label, true); ok {
			amount = &c
		}
	}
	if amount == nil {
		return nil
	}

	if err := j.sheet.Set(*amount, j.totals.Gross); err != nil {
		return err
	}
	if err := j.styles.apply(*amount, styleCurrency); err != nil {
		return err
	}

	if words == nil {
		words = j.configuredCell(j.rules.QuoteWordsColumn, label.Row)
	}
	if words == nil || *words == *amount {
		if c, ok := j.sheet.RightOf(*amount, false); ok {
			words = &c
		} else {
			return nil
		}
	}

	if err := j.sheet.Set(*words, " "+numwords.Korean(j.totals.Gross)+" "); err != nil {
		return err
	}
	return j.styles.apply(*words, styleCentered)
}

func (j *job) quoteAmountLabel() (locator.Cell, bool) {
	for _, c := range j.sheet.Find(j.rules.QuoteAmountLabel, locator.MatchContains) {
		if c.Row <= j.rules.QuoteLabelRows {
			return c, true
		}
	}
	return locator.Cell{}, false
}

// scanAmountRow looks right of the label for placeholder cells.
func (j *job) scanAmountRow(label locator.Cell) (amount, words *locator.Cell) {
	for col := label.Col + 1; col <= j.sheet.MaxCol(); col++ {
		c := locator.Cell{Col: col, Row: label.Row}
		if j.sheet.IsMerged(c) {
			continue
		}
		text := strings.TrimSpace(j.sheet.Text(c))
		if text == "" {
			continue
		}
		switch {
		case amount == nil && amountTextRe.MatchString(text):
			found := c
			amount = &found
		case words == nil && wordsTextRe.MatchString(text):
			found := c
			words = &found
		}
	}
	return amount, words
}

// configuredCell resolves a column letter on row to a writable cell.
func (j *job) configuredCell(column string, row int) *locator.Cell {
	if column == "" {
		return nil
	}
	col, err := excelize.ColumnNameToNumber(column)
	if err != nil {
		return nil
	}
	c := j.sheet.Anchor(locator.Cell{Col: col, Row: row})
	return &c
}
