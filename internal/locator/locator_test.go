package locator

import (
	"testing"

	"github.com/hobbybrown/tradedocs/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const sheet = "Sheet1"

// newSheet builds an in-memory workbook from cell values and merged ranges
// and indexes it.
func newSheet(t *testing.T, cells map[string]interface{}, merges ...[2]string) (*excelize.File, *Sheet) {
	t.Helper()
	f := excelize.NewFile()
	t.Cleanup(func() { f.Close() })

	for name, v := range cells {
		require.NoError(t, f.SetCellValue(sheet, name, v))
	}
	for _, m := range merges {
		require.NoError(t, f.MergeCell(sheet, m[0], m[1]))
	}

	s, err := Open(f, sheet)
	require.NoError(t, err)
	return f, s
}

func cellValue(t *testing.T, f *excelize.File, name string) string {
	t.Helper()
	v, err := f.GetCellValue(sheet, name, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	return v
}

func TestOpen_UnknownSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	_, err := Open(f, "견적서")
	assert.Error(t, err)
}

func TestFind_NormalizesText(t *testing.T) {
	_, s := newSheet(t, map[string]interface{}{
		"A1": " 납 품 장 소 ",
		"A2": "ＴＯＴＡＬ",
		"B3": "총합계금액",
	})

	assert.Equal(t, []Cell{{Col: 1, Row: 1}}, s.Find("납품장소", MatchExact))
	assert.Equal(t, []Cell{{Col: 1, Row: 2}}, s.Find("total", MatchExact))
	assert.Empty(t, s.Find("합계금액", MatchExact))
	assert.Equal(t, []Cell{{Col: 2, Row: 3}}, s.Find("합계금액", MatchContains))
}

func TestWriteRightOf_SkipsMergedAndFilled(t *testing.T) {
	f, s := newSheet(t, map[string]interface{}{
		"A1": "납품장소",
		"D1": "기존값",
		"F1": "끝",
	}, [2]string{"B1", "C1"})

	// B1 is the anchor of B1:C1 and is empty, so it takes the value.
	cells, err := s.WriteRightOf(Lookup{Label: "납품장소"}, "하비브라운")
	require.NoError(t, err)
	assert.Equal(t, []Cell{{Col: 2, Row: 1}}, cells)
	assert.Equal(t, "하비브라운", cellValue(t, f, "B1"))

	// A second write must skip B1 (filled), C1 (merged) and D1 (filled).
	cells, err = s.WriteRightOf(Lookup{Label: "납품장소"}, "x")
	require.NoError(t, err)
	assert.Equal(t, []Cell{{Col: 5, Row: 1}}, cells)
	assert.Equal(t, "기존값", cellValue(t, f, "D1"))
}

func TestWriteRightOf_Overwrite(t *testing.T) {
	f, s := newSheet(t, map[string]interface{}{
		"A1": "견적번호",
		"B1": "000000",
	})

	_, err := s.WriteRightOf(Lookup{Label: "견적번호", Match: MatchContains, Overwrite: true}, "143022")
	require.NoError(t, err)
	assert.Equal(t, "143022", cellValue(t, f, "B1"))
	assert.Equal(t, "143022", s.Text(Cell{Col: 2, Row: 1}))
}

func TestWriteRightOf_TriesNextMatch(t *testing.T) {
	f, s := newSheet(t, map[string]interface{}{
		"A1": "소계", "B1": "full",
		"A5": "소계",
	})

	// Row 1 has no empty cell within the used range.
	cells, err := s.WriteRightOf(Lookup{Label: "소계"}, 100)
	require.NoError(t, err)
	assert.Equal(t, []Cell{{Col: 2, Row: 5}}, cells)
	assert.Equal(t, "100", cellValue(t, f, "B5"))
}

func TestWriteRightOf_All(t *testing.T) {
	_, s := newSheet(t, map[string]interface{}{
		"A1": "부가세",
		"A9": "부가세 합계",
	})

	cells, err := s.WriteRightOf(Lookup{Label: "부가세", Match: MatchContains, All: true, Overwrite: true}, 20000)
	require.NoError(t, err)
	assert.Equal(t, []Cell{{Col: 2, Row: 1}, {Col: 2, Row: 9}}, cells)
}

func TestWriteRightOf_MissingLabel(t *testing.T) {
	_, s := newSheet(t, map[string]interface{}{"A1": "품명"})

	cells, err := s.WriteRightOf(Lookup{Label: "총합계금액"}, 1)
	require.NoError(t, err)
	assert.Empty(t, cells)
}

func TestWriteRightOf_SkipRows(t *testing.T) {
	_, s := newSheet(t, map[string]interface{}{
		"A3": "부가세", "A9": "부가세",
	})

	cells, err := s.WriteRightOf(Lookup{Label: "부가세", SkipRows: map[int]bool{3: true}}, 1)
	require.NoError(t, err)
	assert.Equal(t, []Cell{{Col: 2, Row: 9}}, cells)
}

func TestWriteRightOf_MaxRow(t *testing.T) {
	_, s := newSheet(t, map[string]interface{}{"A40": "견적금액"})

	cells, err := s.WriteRightOf(Lookup{Label: "견적금액", MaxRow: 30}, 1)
	require.NoError(t, err)
	assert.Empty(t, cells)
}

func TestSet_KeepsIndexCurrent(t *testing.T) {
	_, s := newSheet(t, map[string]interface{}{"C3": "x"})

	require.NoError(t, s.Set(Cell{Col: 1, Row: 7}, "부가세"))
	assert.Equal(t, []Cell{{Col: 1, Row: 7}}, s.Find("부가세", MatchExact))
	assert.Equal(t, 7, s.MaxRow())

	require.NoError(t, s.Set(Cell{Col: 1, Row: 1}, "첫째"))
	assert.Equal(t, []Cell{{Col: 1, Row: 1}, {Col: 3, Row: 3}, {Col: 1, Row: 7}}, s.cells)

	require.NoError(t, s.Clear(Cell{Col: 1, Row: 7}))
	assert.Empty(t, s.Find("부가세", MatchExact))
	assert.True(t, s.IsEmpty(Cell{Col: 1, Row: 7}))
}

func TestSet_RejectsMergedMember(t *testing.T) {
	_, s := newSheet(t, map[string]interface{}{"A1": "x"}, [2]string{"A1", "C2"})

	assert.Error(t, s.Set(Cell{Col: 2, Row: 2}, "y"))
	assert.NoError(t, s.Clear(Cell{Col: 2, Row: 2}))
	assert.Equal(t, Cell{Col: 1, Row: 1}, s.Anchor(Cell{Col: 3, Row: 2}))
	assert.Equal(t, Cell{Col: 5, Row: 5}, s.Anchor(Cell{Col: 5, Row: 5}))
}

func TestIsEmpty_Formula(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetCellValue(sheet, "A1", "소계"))
	require.NoError(t, f.SetCellFormula(sheet, "B1", "SUM(B3:B9)"))
	require.NoError(t, f.SetCellValue(sheet, "D1", "원"))

	s, err := Open(f, sheet)
	require.NoError(t, err)
	assert.False(t, s.IsEmpty(Cell{Col: 2, Row: 1}))

	cells, err := s.WriteRightOf(Lookup{Label: "소계"}, 5)
	require.NoError(t, err)
	assert.Equal(t, []Cell{{Col: 3, Row: 1}}, cells)
}

func TestRowText(t *testing.T) {
	_, s := newSheet(t, map[string]interface{}{
		"A4": "합 계", "C4": "Total", "K4": "ignored",
	})
	assert.Equal(t, "합계total", s.RowText(4, 1, 9))
}

func TestDetectHeader(t *testing.T) {
	rules := config.DefaultTemplateRules()
	_, s := newSheet(t, map[string]interface{}{
		"A1": "거 래 명 세 표",
		"A5": "No", "B5": "품 명", "C5": "규격", "D5": "단위", "E5": "수량",
		"F5": "단가(원)", "G5": "공급가액", "H5": "세액", "I5": "비고",
	})

	header, err := s.DetectHeader(rules)
	require.NoError(t, err)
	assert.Equal(t, 5, header.Row)
	assert.Equal(t, map[Role]int{
		RoleSeq: 1, RoleName: 2, RoleSpec: 3, RoleUnit: 4, RoleQty: 5,
		RoleUnitPrice: 6, RoleSupply: 7, RoleVAT: 8, RoleGross: 9,
	}, header.Columns)
}

func TestDetectHeader_RemarksOnlyAsFallback(t *testing.T) {
	rules := config.DefaultTemplateRules()
	_, s := newSheet(t, map[string]interface{}{
		"A2": "품목", "B2": "비고", "C2": "합계",
	})

	header, err := s.DetectHeader(rules)
	require.NoError(t, err)
	col, ok := header.Column(RoleGross)
	require.True(t, ok)
	assert.Equal(t, 3, col)

	_, ok = header.Column(RoleVAT)
	assert.False(t, ok)
}

func TestDetectHeader_RemarksFallback(t *testing.T) {
	_, s := newSheet(t, map[string]interface{}{
		"A2": "Item", "B2": "Qty", "C2": "Remarks",
	})

	header, err := s.DetectHeader(config.DefaultTemplateRules())
	require.NoError(t, err)
	assert.Equal(t, map[Role]int{RoleName: 1, RoleQty: 2, RoleGross: 3}, header.Columns)
}

func TestDetectHeader_NotFound(t *testing.T) {
	_, s := newSheet(t, map[string]interface{}{"A1": "견적서", "B2": "합계"})

	_, err := s.DetectHeader(config.DefaultTemplateRules())
	assert.ErrorIs(t, err, ErrHeaderNotFound)
}

func TestFooterRow(t *testing.T) {
	rules := config.DefaultTemplateRules()
	_, s := newSheet(t, map[string]interface{}{
		"B3": "품명",
		"B4": "old item",
		"A9": "소 계",
		"Z12": "합계",
	})

	header, err := s.DetectHeader(rules)
	require.NoError(t, err)
	assert.Equal(t, 9, s.FooterRow(header, rules))

	rules.FooterKeywords = []string{"총계"}
	assert.Equal(t, 0, s.FooterRow(header, rules))
}

func TestCells_DocumentOrder(t *testing.T) {
	_, s := newSheet(t, map[string]interface{}{
		"C1": "c", "A2": "a", "B1": "b", "E1": "hidden",
	}, [2]string{"D1", "E1"})

	assert.Equal(t, []Cell{{Col: 2, Row: 1}, {Col: 3, Row: 1}, {Col: 1, Row: 2}}, s.Cells())
}
