package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hobbybrown/tradedocs/internal/sheetwriter"
)

// run executes the root command with args and returns its stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestWords(t *testing.T) {
	out, err := run(t, "words", "220,000")
	require.NoError(t, err)
	assert.Equal(t, "이십이만\n", out)

	_, err = run(t, "words", "abc")
	assert.Error(t, err)
}

func TestSchema(t *testing.T) {
	out, err := run(t, "schema", "order")
	require.NoError(t, err)
	assert.Contains(t, out, `"tradedocs order"`)

	_, err = run(t, "schema", "invoice")
	assert.Error(t, err)
}

func TestCalcTotal(t *testing.T) {
	out, err := run(t, "calc", "total", "--amount", "220000", "--qty", "8")
	require.NoError(t, err)
	assert.Contains(t, out, "Gross per unit:  27,500")
	assert.Contains(t, out, "Supply per unit: 25,000")
	assert.Contains(t, out, "VAT total:       20,000")
}

func TestLabels_NothingParsed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.xlsx")
	require.NoError(t, sheetwriter.Write(path, sheetwriter.Table{
		Headers: []string{"각인"},
		Rows:    [][]string{{"[hobby brown] total => 1 ea"}},
	}))

	out, err := run(t, "labels", "--file", path)
	require.NoError(t, err)
	assert.Equal(t, "nothing parsed\n", out)
}

func TestLabels_Flat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.xlsx")
	require.NoError(t, sheetwriter.Write(path, sheetwriter.Table{
		Headers: []string{"각인"},
		Rows: [][]string{
			{"[hobby brown] total => 3 ea\n\n1. 하비 => 2 ea\n2. 브라운 => 1 ea"},
			{"[hobby brown] total => 1 ea\n\n1. 머그 => 1 ea"},
		},
	}))

	out, err := run(t, "labels", "--file", path, "--flat")
	require.NoError(t, err)
	assert.Equal(t, "하비\n브라운\n머그\n", out)

	out, err = run(t, "labels", "--file", path, "--flat=false", "--row", "3")
	require.NoError(t, err)
	assert.Equal(t, "row 3:\n  머그\n", out)
}
