package filler

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/hobbybrown/tradedocs/internal/calculator"
	"github.com/hobbybrown/tradedocs/internal/config"
	"github.com/hobbybrown/tradedocs/internal/locator"
	"github.com/hobbybrown/tradedocs/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const sheet = "Sheet1"

var testDay = time.Date(2025, 1, 2, 9, 30, 5, 0, time.Local)

func newFiller(t *testing.T) *Filler {
	t.Helper()
	cfg, err := config.Default()
	require.NoError(t, err)
	return New(cfg).WithClock(func() time.Time { return testDay })
}

func tradeInfo() types.TradeInfo {
	return types.TradeInfo{CustomerName: "하비브라운", SupplyDate: "2024-08-20", VATRate: 10}
}

// mugs is one line of 8 mugs at 27,500: supply 200,000, VAT 20,000.
func mugs() []types.LineItemComputed {
	return calculator.Compute([]types.LineItemInput{
		{Name: "머그컵", Spec: "350ml", Quantity: 8, UnitGross: 27500},
	}, 10)
}

// template writes a workbook with the given cells and merged ranges and
// returns its path.
func template(t *testing.T, cells map[string]interface{}, merges ...[2]string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for name, v := range cells {
		require.NoError(t, f.SetCellValue(sheet, name, v))
	}
	for _, m := range merges {
		require.NoError(t, f.MergeCell(sheet, m[0], m[1]))
	}

	path := filepath.Join(t.TempDir(), "template.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

// fill fills the template at path and reopens the output.
func fill(t *testing.T, kind types.DocumentKind, path string, items []types.LineItemComputed) *excelize.File {
	t.Helper()
	out := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, newFiller(t).FillFile(kind, path, out, tradeInfo(), items))

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func raw(t *testing.T, f *excelize.File, cell string) string {
	t.Helper()
	v, err := f.GetCellValue(sheet, cell, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	return v
}

func styleOf(t *testing.T, f *excelize.File, cell string) *excelize.Style {
	t.Helper()
	id, err := f.GetCellStyle(sheet, cell)
	require.NoError(t, err)
	st, err := f.GetStyle(id)
	require.NoError(t, err)
	return st
}

func TestFill_MinimalTemplate(t *testing.T) {
	path := template(t, map[string]interface{}{
		"A1": "item", "B1": "quantity", "C1": "amount",
		"A3": "subtotal",
	})

	f := fill(t, types.DocumentQuote, path, mugs())

	assert.Equal(t, "머그컵", raw(t, f, "A2"))
	assert.Equal(t, "8", raw(t, f, "B2"))
	assert.Equal(t, "25000", raw(t, f, "C2"))
	assert.Equal(t, "200000", raw(t, f, "B3"))
	assert.Equal(t, "subtotal", raw(t, f, "A3"))
}

func TestFill_Quote(t *testing.T) {
	path := template(t, map[string]interface{}{
		"A1": "견적일자",
		"A2": "견적번호", "B2": "000000",
		"A3": "거래처명",
		"A4": "납품장소",
		"A5": "납기일자",
		"A6": "견적금액", "B6": 0, "G6": "(  원정 )",
		"A8": "품명", "B8": "수량", "C8": "단가", "D8": "공급가액", "E8": "세액", "F8": "합계",
		"A11": "소계", "A12": "부가세", "A13": "총합계금액",
	}, [2]string{"B6", "F6"})

	f := fill(t, types.DocumentQuote, path, mugs())

	// header
	assert.Equal(t, "2025-01-02", raw(t, f, "B1"))
	assert.Equal(t, "093005", raw(t, f, "B2"))
	assert.Equal(t, "하비브라운", raw(t, f, "A3"))
	assert.Equal(t, "하비브라운", raw(t, f, "B4"))
	assert.Equal(t, "시안 확정 후 영업일 기준 10일 내외", raw(t, f, "B5"))

	// body
	assert.Equal(t, "머그컵", raw(t, f, "A9"))
	assert.Equal(t, "8", raw(t, f, "B9"))
	assert.Equal(t, "25000", raw(t, f, "C9"))
	assert.Equal(t, "25000", raw(t, f, "D9"))
	assert.Equal(t, "2500", raw(t, f, "E9"))
	assert.Equal(t, "220000", raw(t, f, "F9"))

	st := styleOf(t, f, "C9")
	assert.Equal(t, numFmtThousands, st.NumFmt)
	assert.Len(t, st.Border, 4)
	assert.Len(t, styleOf(t, f, "A9").Border, 4)

	// footer
	assert.Equal(t, "200000", raw(t, f, "B11"))
	assert.Equal(t, "20000", raw(t, f, "B12"))
	assert.Equal(t, "220000", raw(t, f, "B13"))

	// amount
	assert.Equal(t, "220000", raw(t, f, "B6"))
	assert.Equal(t, " 이십이만 ", raw(t, f, "G6"))
	amount := styleOf(t, f, "B6")
	require.NotNil(t, amount.CustomNumFmt)
	assert.Equal(t, currencyFormat, *amount.CustomNumFmt)
	words := styleOf(t, f, "G6")
	require.NotNil(t, words.Alignment)
	assert.Equal(t, "center", words.Alignment.Horizontal)
}

func TestFill_QuoteAmountConfiguredColumns(t *testing.T) {
	path := template(t, map[string]interface{}{
		"A2": "견 적 금 액 (VAT 포함)",
		"A4": "품명", "B4": "합계",
	}, [2]string{"H2", "K2"}, [2]string{"M2", "P2"})

	f := fill(t, types.DocumentQuote, path, mugs())

	assert.Equal(t, "220000", raw(t, f, "H2"))
	assert.Equal(t, " 이십이만 ", raw(t, f, "M2"))
}

func TestFill_DeliveryGrowsBody(t *testing.T) {
	path := template(t, map[string]interface{}{
		"A1": "공급받는자",
		"A2": "납품일",
		"A4": "품명", "B4": "수량", "C4": "공급가액", "D4": "세액", "E4": "합계",
		"A5": "stale", "B6": 99,
		"A7": "합 계",
	})

	var inputs []types.LineItemInput
	for i := 0; i < 5; i++ {
		inputs = append(inputs, types.LineItemInput{Name: "텀블러", Quantity: 1, UnitGross: 11000})
	}
	f := fill(t, types.DocumentDelivery, path, calculator.Compute(inputs, 10))

	assert.Equal(t, "하비브라운", raw(t, f, "B1"))
	assert.Equal(t, "2024년 8월 20일", raw(t, f, "B2"))

	for row := 5; row <= 9; row++ {
		assert.Equal(t, "텀블러", raw(t, f, cellName(1, row)))
		assert.Equal(t, "11000", raw(t, f, cellName(5, row)))
	}

	// the footer moved down by three rows and carries the totals
	assert.Equal(t, "합 계", raw(t, f, "A10"))
	assert.Equal(t, "50000", raw(t, f, "C10"))
	assert.Equal(t, "5000", raw(t, f, "D10"))
	assert.Equal(t, "55000", raw(t, f, "E10"))
	assert.Equal(t, numFmtThousands, styleOf(t, f, "E10").NumFmt)
}

func TestFill_DeliverySumRowFallback(t *testing.T) {
	path := template(t, map[string]interface{}{
		"A1": "품목", "B1": "공급가", "C1": "부가세", "D1": "비고",
	})

	f := fill(t, types.DocumentDelivery, path, mugs())

	assert.Equal(t, "220000", raw(t, f, "D2"))
	assert.Equal(t, "200000", raw(t, f, "B3"))
	assert.Equal(t, "20000", raw(t, f, "C3"))
	assert.Equal(t, "220000", raw(t, f, "D3"))
}

func TestFill_Statement(t *testing.T) {
	path := template(t, map[string]interface{}{
		"A1": "2023년 1월 1일", "D1": "2023 년", "E1": "1월", "F1": "1일", "G1": "공급일",
		"A3": "품명", "B3": "수량", "C3": "공급가액", "D3": "부가세", "E3": "비고",
		"A4": "old", "A5": "old", "B5": "stale", "A6": "old",
		"A7": "소 계", "A8": "부가세", "A9": "합계금액", "B9": "0",
	}, [2]string{"B5", "C5"})

	f := fill(t, types.DocumentStatement, path, mugs())

	assert.Equal(t, "2024년 8월 20일", raw(t, f, "A1"))
	assert.Equal(t, "2024 년", raw(t, f, "D1"))
	assert.Equal(t, "8월", raw(t, f, "E1"))
	assert.Equal(t, "20일", raw(t, f, "F1"))
	assert.Equal(t, "공급일", raw(t, f, "G1"))
	assert.Equal(t, "2024-08-20", raw(t, f, "H1"))

	assert.Equal(t, "머그컵", raw(t, f, "A4"))
	assert.Equal(t, "220000", raw(t, f, "E4"), "remarks is the gross column")
	assert.Empty(t, raw(t, f, "A5"))
	assert.Empty(t, raw(t, f, "B5"))
	assert.Empty(t, raw(t, f, "A6"))

	assert.Equal(t, "비고", raw(t, f, "E3"), "the header row is not a footer label")
	assert.Equal(t, "200000", raw(t, f, "B7"))
	assert.Equal(t, "20000", raw(t, f, "B8"))
	assert.Equal(t, "220000", raw(t, f, "B9"))
}

func TestFill_HeaderNotFound(t *testing.T) {
	path := template(t, map[string]interface{}{"A1": "견적서"})

	err := newFiller(t).FillFile(types.DocumentQuote, path, filepath.Join(t.TempDir(), "out.xlsx"), tradeInfo(), mugs())
	assert.ErrorIs(t, err, locator.ErrHeaderNotFound)
}

func TestFill_UnknownKind(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	err := newFiller(t).Fill("invoice", f, tradeInfo(), mugs())
	assert.ErrorContains(t, err, "unknown document kind")
}

func TestFillFile_MissingTemplate(t *testing.T) {
	dir := t.TempDir()
	err := newFiller(t).FillFile(types.DocumentQuote, filepath.Join(dir, "none.xlsx"), filepath.Join(dir, "out.xlsx"), tradeInfo(), mugs())
	assert.ErrorContains(t, err, "failed to open template")
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2024-08-20", formatDate("2024-08-20", "iso"))
	assert.Equal(t, "2024년 8월 20일", formatDate("2024-08-20", "korean"))
	assert.Equal(t, "20240820", formatDate("20240820", "korean"))
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
