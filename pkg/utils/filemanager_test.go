package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "A_B_C_D_E_F_G_H_I", SanitizeName(`A\B/C:D*E?F"G<H>I`))
	assert.Equal(t, "하비브라운", SanitizeName("  하비브라운 "))
	assert.Equal(t, "a_b", SanitizeName("a|b"))
}

func TestDocumentDir(t *testing.T) {
	root := t.TempDir()
	fm := NewFileManager(root, filepath.Join(root, "result"))

	dir, err := fm.DocumentDir("2024-08-20", "(주)하비/브라운")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "2024-08-20_(주)하비_브라운"), dir)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestConsolidationPath(t *testing.T) {
	root := t.TempDir()
	fm := NewFileManager(root, root)
	at := time.Date(2024, 3, 7, 9, 5, 0, 0, time.Local)

	path, err := fm.ConsolidationPath("네이버_송장발부.xlsx", at)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "2024", "03", "07d_09h05m네이버_송장발부.xlsx"), path)
	assert.DirExists(t, filepath.Join(root, "2024", "03"))
}

func TestWriteSummaryLog(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	start := time.Date(2024, 8, 20, 14, 30, 22, 0, time.UTC)

	path, err := WriteSummaryLog(RunSummary{
		RunID:     "abc",
		Command:   "generate",
		StartTime: start,
		EndTime:   start.Add(time.Second),
		Succeeded: []string{"견적서_자동생성.xlsx"},
		Failed:    []FailedArtifact{{Name: "납품서", Error: "template not found"}},
	}, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "run_20240820_143022_abc.log"), path)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "✓ 견적서_자동생성.xlsx")
	assert.Contains(t, string(b), "✗ 납품서: template not found")
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.xlsx")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	assert.True(t, FileExists(file))
	assert.False(t, FileExists(dir))
	assert.False(t, FileExists(filepath.Join(dir, "missing.xlsx")))
}

func TestNormalizeLabel(t *testing.T) {
	assert.Equal(t, "합계", NormalizeLabel(" 합 계 "))
	assert.Equal(t, "total", NormalizeLabel("ＴＯＴＡＬ"))
	assert.Equal(t, "unitprice", NormalizeLabel("Unit\tPrice"))
	// decomposed jamo compose to the same syllables
	assert.Equal(t, "품목", NormalizeLabel("품목"))
	assert.Equal(t, "", NormalizeLabel(""))
}
