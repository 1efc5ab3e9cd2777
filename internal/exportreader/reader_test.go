package exportreader

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeExport saves rows to a new workbook, starting at A1.
func writeExport(t *testing.T, rows [][]interface{}, opts ...excelize.Options) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	path := filepath.Join(t.TempDir(), "export.xlsx")
	require.NoError(t, f.SaveAs(path, opts...))
	return path
}

func naverRows() [][]interface{} {
	return [][]interface{}{
		{"스마트스토어 주문내역"},
		{"주문번호", " 수취인명 ", "상품명", "수량", "옵션정보"},
		{"A-1", "김하비", "머그컵", 2, "여기에 문구: 하비"},
		{"A-1", "김하비", "텀블러", 1, ""},
		{},
		{"B-7", "이브라운", "머그컵", 4},
	}
}

func naverOptions() Options {
	return Options{
		HeaderRow: 2,
		Rename:    map[string]string{"주문번호": "출고번호", "수취인명": "받으시는 분", "옵션정보": "메모1"},
		Constants: map[string]string{"택배사": "한진택배", "운임Type": "s"},
		Required:  []string{"출고번호", "상품명", "수량"},
	}
}

func TestRead(t *testing.T) {
	export, err := Read(writeExport(t, naverRows()), naverOptions())
	require.NoError(t, err)

	assert.Equal(t, "Sheet1", export.Sheet)
	assert.Equal(t,
		[]string{"출고번호", "받으시는 분", "상품명", "수량", "메모1", "운임Type", "택배사"},
		export.Headers)

	require.Len(t, export.Rows, 3, "the blank row is skipped")
	first := export.Rows[0]
	assert.Equal(t, 3, first.Number)
	assert.Equal(t, "김하비", first.Get("받으시는 분"))
	assert.Equal(t, "2", first.Get("수량"))
	assert.Equal(t, "한진택배", first.Get("택배사"))

	memo, ok := first.Lookup("메모1")
	assert.True(t, ok)
	assert.Equal(t, "여기에 문구: 하비", memo)

	_, ok = export.Rows[1].Lookup("메모1")
	assert.False(t, ok, "a blank cell has no value")
	_, ok = export.Rows[2].Lookup("메모1")
	assert.False(t, ok, "a short row has no value")
	assert.Equal(t, 6, export.Rows[2].Number)

	assert.Equal(t, []string{"A-1", "B-7"}, export.UniqueValues("출고번호"))
	assert.Equal(t, []string{"2", "1", "4"}, export.Column("수량"))
}

func TestRead_MissingColumn(t *testing.T) {
	opts := naverOptions()
	opts.Required = append(opts.Required, "묶음배송번호")

	_, err := Read(writeExport(t, naverRows()), opts)
	assert.ErrorIs(t, err, ErrMissingColumn)
	assert.ErrorContains(t, err, "묶음배송번호")
}

func TestRead_HeaderRowBeyondSheet(t *testing.T) {
	opts := naverOptions()
	opts.HeaderRow = 20

	_, err := Read(writeExport(t, naverRows()), opts)
	assert.ErrorContains(t, err, "header row 20 not found")
}

func TestRead_Encrypted(t *testing.T) {
	path := writeExport(t, naverRows(), excelize.Options{Password: "1111"})

	opts := naverOptions()
	opts.Password = "1111"
	export, err := Read(path, opts)
	require.NoError(t, err)
	assert.Len(t, export.Rows, 3)

	opts.Password = ""
	_, err = Read(path, opts)
	assert.Error(t, err, "an encrypted export needs its password")
}

func TestNewRow(t *testing.T) {
	r := NewRow(4, map[string]string{"a": " x ", "b": "  "})
	assert.Equal(t, "x", r.Get("a"))
	_, ok := r.Lookup("b")
	assert.False(t, ok)
}
