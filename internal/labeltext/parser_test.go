package labeltext

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hobbybrown/tradedocs/internal/exportreader"
	"github.com/hobbybrown/tradedocs/internal/sheetwriter"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		source Source
		want   []string
	}{
		{
			name:   "plain entries",
			text:   "1. Widget => 2 ea\n2. Gadget => 1 ea",
			source: SourceNaver,
			want:   []string{"Widget", "Gadget"},
		},
		{
			name:   "summary and order count are ignored",
			text:   "1년 주문건수 : 3건\n[hobby brown] total => 3 ea\n\n1. 하비 => 2 ea\r\n2. 브라운 => 1 ea",
			source: SourceNaver,
			want:   []string{"하비", "브라운"},
		},
		{
			name:   "coupang option prefix",
			text:   "1. 블랙:하비 => 2 ea\n2. 화이트:텀블러 => 1 ea",
			source: SourceCoupang,
			want:   []string{"하비", "텀블러"},
		},
		{
			name:   "naver keeps colons",
			text:   "1. 문구: 하비 => 1 ea",
			source: SourceNaver,
			want:   []string{"문구: 하비"},
		},
		{
			name:   "boilerplate and empty entries",
			text:   "1. 여기에 각인 문구: 하비 => 1 ea\n2. => 2 ea\n^_~\n.",
			source: SourceNaver,
			want:   []string{"하비"},
		},
		{
			name:   "nothing numbered",
			text:   "[hobby brown] total => 3 ea",
			source: SourceNaver,
		},
		{
			name:   "number without dot-space",
			text:   "10kg 박스 => 1 ea",
			source: SourceNaver,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.text, tt.source))
		})
	}
}

func TestParseSource(t *testing.T) {
	s, err := ParseSource(" Coupang ")
	require.NoError(t, err)
	assert.Equal(t, SourceCoupang, s)

	_, err = ParseSource("gmarket")
	assert.Error(t, err)
}

func TestParseSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.xlsx")
	require.NoError(t, sheetwriter.Write(path, sheetwriter.Table{
		Headers: []string{"받으시는 분", "각인"},
		Rows: [][]string{
			{"김하비", "[hobby brown] total => 3 ea\n\n1. 하비 => 2 ea\n2. 브라운 => 1 ea"},
			{"이브라운", "[hobby brown] total => 1 ea"},
			{"박머그", "1. 머그 => 1 ea"},
		},
	}))

	result, err := ParseSheet(path, "각인", SourceNaver)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Rows)
	assert.False(t, result.Empty())
	require.Len(t, result.Entries, 2)
	assert.Equal(t, 2, result.Entries[0].Row)
	assert.Equal(t, 4, result.Entries[1].Row)
	assert.Equal(t, []string{"하비", "브라운", "머그"}, result.Items())

	_, err = ParseSheet(path, "메모", SourceNaver)
	assert.ErrorIs(t, err, exportreader.ErrMissingColumn)
}

func TestParseSheet_NothingParsed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.xlsx")
	require.NoError(t, sheetwriter.Write(path, sheetwriter.Table{
		Headers: []string{"각인"},
		Rows:    [][]string{{"메모 없음"}},
	}))

	result, err := ParseSheet(path, "각인", SourceNaver)
	require.NoError(t, err)
	assert.True(t, result.Empty())
	assert.Empty(t, result.Items())
}
