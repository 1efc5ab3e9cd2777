// =============================================================================
// Trade Documents - Label-Text Parser Module
// =============================================================================
//
// This module turns a consolidated label cell back into the item
// descriptions it was built from:
//
//	[hobby brown] total => 3 ea          ignored (not numbered)
//
//	1. 블랙:하비 => 2 ea                  → "하비"      (coupang)
//	2. 여기에 문구: 브라운 => 1 ea        → "브라운"
//
// Only lines starting with "<number>. " are entries. An empty result is not
// an error; callers report it as "nothing parsed".
//
// =============================================================================

package labeltext

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hobbybrown/tradedocs/internal/exportreader"
)

// Source is the marketplace a label sheet came from.
type Source string

const (
	SourceNaver   Source = "naver"
	SourceCoupang Source = "coupang"
)

// ParseSource validates a source name.
func ParseSource(s string) (Source, error) {
	switch Source(strings.ToLower(strings.TrimSpace(s))) {
	case SourceNaver:
		return SourceNaver, nil
	case SourceCoupang:
		return SourceCoupang, nil
	}
	return "", fmt.Errorf("unknown label source %q (want naver or coupang)", s)
}

var (
	entryPrefix = regexp.MustCompile(`^\d+\.(\s+|$)`)
	qtySuffix   = regexp.MustCompile(`\s*=>\s*\d+\s*ea\s*$`)
)

// boilerplate are order-form placeholders left in front of engraving text.
var boilerplate = []string{"여기에 각인 문구:", "여기에 문구:"}

// Parse extracts the item descriptions from a consolidated label cell.
//
// PARAMETERS:
//   - text: The merged multi-line description.
//   - source: Coupang entries carry an "option:" prefix that is removed.
//
// RETURNS:
//   - One description per numbered entry, in order. Entries left empty
//     after cleaning are dropped.
func Parse(text string, source Source) []string {
	var items []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))

		loc := entryPrefix.FindStringIndex(line)
		if loc == nil {
			continue
		}

		item := qtySuffix.ReplaceAllString(line[loc[1]:], "")
		if source == SourceCoupang {
			if i := strings.Index(item, ":"); i >= 0 {
				item = item[i+1:]
			}
		}
		for _, b := range boilerplate {
			item = strings.ReplaceAll(item, b, "")
		}

		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// =============================================================================
// LABEL SHEETS
// =============================================================================

// Entry is the parsed content of one label-sheet row.
type Entry struct {
	Row   int
	Items []string
}

// SheetResult holds every row that yielded at least one item.
type SheetResult struct {
	SourceFile string
	Column     string
	Rows       int
	Entries    []Entry
}

// Empty reports whether nothing was parsed.
func (r *SheetResult) Empty() bool {
	return len(r.Entries) == 0
}

// Items flattens the entries in sheet order.
func (r *SheetResult) Items() []string {
	var items []string
	for _, e := range r.Entries {
		items = append(items, e.Items...)
	}
	return items
}

// ParseSheet parses column of every row of a label sheet written by the
// consolidator (headers on row 1).
func ParseSheet(path, column string, source Source) (*SheetResult, error) {
	export, err := exportreader.Read(path, exportreader.Options{
		HeaderRow: 1,
		Required:  []string{column},
	})
	if err != nil {
		return nil, err
	}

	result := &SheetResult{SourceFile: path, Column: column, Rows: len(export.Rows)}
	for _, row := range export.Rows {
		if items := Parse(row.Get(column), source); len(items) > 0 {
			result.Entries = append(result.Entries, Entry{Row: row.Number, Items: items})
		}
	}
	return result, nil
}
