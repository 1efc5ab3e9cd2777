package filler

import (
	"fmt"

	"github.com/hobbybrown/tradedocs/internal/locator"
	"github.com/xuri/excelize/v2"
)

// numFmtThousands is the built-in "#,##0" number format.
const numFmtThousands = 3

// currencyFormat renders the quotation amount, e.g. ₩ 7,040,000.
const currencyFormat = `"₩" #,##0`

type styleKind int

const (
	// styleItemText is a body cell holding text: thin border.
	styleItemText styleKind = iota

	// styleItemNumber is a body cell holding a number: thin border, #,##0.
	styleItemNumber

	// styleNumber is a totals cell: #,##0.
	styleNumber

	// styleCurrency is the quotation amount.
	styleCurrency

	// styleCentered is the amount in words.
	styleCentered
)

type styleKey struct {
	base int
	kind styleKind
}

// styleCache derives styles from the style a cell already has, so fonts,
// fills and alignment of the template survive while borders or number
// formats are replaced. Each (base style, kind) pair is registered once.
type styleCache struct {
	file  *excelize.File
	sheet string
	ids   map[styleKey]int
}

func newStyleCache(f *excelize.File, sheet string) *styleCache {
	return &styleCache{file: f, sheet: sheet, ids: make(map[styleKey]int)}
}

func (c *styleCache) apply(cell locator.Cell, kind styleKind) error {
	name := cell.Name()
	base, err := c.file.GetCellStyle(c.sheet, name)
	if err != nil {
		return fmt.Errorf("failed to read style of %s: %w", name, err)
	}

	key := styleKey{base: base, kind: kind}
	id, ok := c.ids[key]
	if !ok {
		st, err := c.file.GetStyle(base)
		if err != nil {
			return fmt.Errorf("failed to load style %d: %w", base, err)
		}
		derive(st, kind)

		id, err = c.file.NewStyle(st)
		if err != nil {
			return fmt.Errorf("failed to register style for %s: %w", name, err)
		}
		c.ids[key] = id
	}
	return c.file.SetCellStyle(c.sheet, name, name, id)
}

func derive(st *excelize.Style, kind styleKind) {
	switch kind {
	case styleItemText:
		st.Border = thinBorders()
	case styleItemNumber:
		st.Border = thinBorders()
		st.NumFmt = numFmtThousands
		st.CustomNumFmt = nil
	case styleNumber:
		st.NumFmt = numFmtThousands
		st.CustomNumFmt = nil
	case styleCurrency:
		format := currencyFormat
		st.CustomNumFmt = &format
	case styleCentered:
		align := excelize.Alignment{}
		if st.Alignment != nil {
			align = *st.Alignment
		}
		align.Horizontal = "center"
		align.Vertical = "center"
		st.Alignment = &align
	}
}

// thinBorders returns thin borders on all four sides. Any existing border,
// double lines included, is replaced.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{Type: side, Color: "000000", Style: 1}
	}
	return borders
}
