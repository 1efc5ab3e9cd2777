// =============================================================================
// Trade Documents - Template Filler
// =============================================================================
//
// This module writes one trade into one template workbook. The three
// document types share most of the pipeline and differ in their header
// labels and in where the totals go.
//
// FILL STAGES (in order):
//   1. Replace customer placeholder cells with the customer name
//   2. Write the supply date next to date labels (ISO or "Y년 M월 D일")
//   3. Document-specific labels (quote number, delivery place, ...)
//   4. Clear the body between the item header and the footer
//   5. Write one row per line item, thin borders and #,##0 on numbers
//   6. Write the totals into the footer
//   7. Quote only: the quotation amount and its amount in words
//
// FAILURE SEMANTICS:
//   A template without an item header fails with locator.ErrHeaderNotFound.
//   Labels that are missing from a template are skipped silently, as are
//   column roles the header does not have.
//
// =============================================================================

package filler

import (
	"fmt"
	"time"

	"github.com/hobbybrown/tradedocs/internal/calculator"
	"github.com/hobbybrown/tradedocs/internal/config"
	"github.com/hobbybrown/tradedocs/internal/locator"
	"github.com/hobbybrown/tradedocs/internal/types"
	"github.com/xuri/excelize/v2"
)

// =============================================================================
// FILLER STRUCTURE
// =============================================================================

// Filler fills templates using the configured template vocabulary.
type Filler struct {
	rules    config.TemplateRules
	leadTime string

	// now is the clock behind the quote number and quote date.
	now func() time.Time
}

// New creates a Filler from the main configuration.
func New(cfg *config.MainConfig) *Filler {
	return &Filler{
		rules:    cfg.TemplateRules,
		leadTime: cfg.LeadTimeNote,
		now:      time.Now,
	}
}

// WithClock replaces the clock used for the quote header. Tests use it to
// pin the quote number.
func (fl *Filler) WithClock(now func() time.Time) *Filler {
	fl.now = now
	return fl
}

// FillFile opens a template, fills it and saves the result.
//
// PARAMETERS:
//   - kind: The document type, which selects the document-specific stages.
//   - templatePath: The template workbook. It is never modified.
//   - outputPath: Where the filled workbook is written.
//   - info: The trade party.
//   - items: The computed line items, in display order.
//
// RETURNS:
//   - An error if the template cannot be opened or filled, or the output
//     cannot be written.
func (fl *Filler) FillFile(kind types.DocumentKind, templatePath, outputPath string, info types.TradeInfo, items []types.LineItemComputed) error {
	f, err := excelize.OpenFile(templatePath)
	if err != nil {
		return fmt.Errorf("failed to open template %s: %w", templatePath, err)
	}
	defer f.Close()

	if err := fl.Fill(kind, f, info, items); err != nil {
		return err
	}

	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("failed to save %s: %w", outputPath, err)
	}
	return nil
}

// Fill fills the active sheet of an open workbook in place.
func (fl *Filler) Fill(kind types.DocumentKind, f *excelize.File, info types.TradeInfo, items []types.LineItemComputed) error {
	s, err := locator.Open(f, "")
	if err != nil {
		return err
	}

	j := &job{
		sheet:  s,
		styles: newStyleCache(f, s.Name()),
		rules:  fl.rules,
		info:   info,
		items:  items,
		totals: calculator.Sum(items),
	}

	stages := []fillStage{
		{"customer", j.replaceCustomer},
		{"dates", j.fillDates},
	}

	switch kind {
	case types.DocumentQuote:
		stages = append(stages,
			fillStage{"quote header", func() error { return j.fillQuoteHeader(fl.now(), fl.leadTime) }},
			fillStage{"body", j.writeBody},
			fillStage{"totals", j.fillFooterTotals},
			fillStage{"quote amount", j.fillQuoteAmount},
		)
	case types.DocumentDelivery:
		stages = append(stages,
			fillStage{"delivery header", j.fillDeliveryHeader},
			fillStage{"body", j.writeBody},
			fillStage{"totals", j.fillDeliveryTotals},
		)
	case types.DocumentStatement:
		stages = append(stages,
			fillStage{"statement dates", j.fillKoreanDates},
			fillStage{"body", j.writeBody},
			fillStage{"totals", j.fillStatementTotals},
		)
	default:
		return fmt.Errorf("unknown document kind %q", kind)
	}

	for _, st := range stages {
		if err := st.run(); err != nil {
			return fmt.Errorf("%s: %s: %w", kind, st.name, err)
		}
	}
	return nil
}

// fillStage is one named step of a fill. The name prefixes its errors.
type fillStage struct {
	name string
	run  func() error
}

// =============================================================================
// FILL JOB
// =============================================================================

// job is the state of one fill. It owns the sheet index for its duration.
type job struct {
	sheet  *locator.Sheet
	styles *styleCache
	rules  config.TemplateRules
	info   types.TradeInfo
	items  []types.LineItemComputed
	totals types.Totals

	// header is set by writeBody.
	header *locator.HeaderMap
}

// bodyRows returns the header row and the rows holding items. Footer label
// searches skip them so a "부가세" column header is not taken for the VAT
// total label.
func (j *job) bodyRows() map[int]bool {
	rows := make(map[int]bool)
	if j.header == nil {
		return rows
	}
	for r := j.header.Row; r <= j.header.Row+len(j.items); r++ {
		rows[r] = true
	}
	return rows
}

// replaceCustomer swaps every customer placeholder cell for the name.
func (j *job) replaceCustomer() error {
	name := j.info.CustomerName
	if name == "" {
		return nil
	}
	for _, c := range j.sheet.Find(j.rules.CustomerPlaceholder, locator.MatchExact) {
		if err := j.sheet.Set(c, name); err != nil {
			return err
		}
	}
	return nil
}

// writeLabel writes value next to the first label cell that accepts it.
func (j *job) writeLabel(label string, value interface{}) error {
	_, err := j.sheet.WriteRightOf(locator.Lookup{Label: label}, value)
	return err
}
