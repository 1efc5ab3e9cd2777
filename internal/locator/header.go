package locator

import (
	"errors"
	"strings"

	"github.com/hobbybrown/tradedocs/internal/config"
	"github.com/hobbybrown/tradedocs/pkg/utils"
)

// ErrHeaderNotFound is returned when no row of the sheet looks like the
// item-table header. It is fatal for the document being filled.
var ErrHeaderNotFound = errors.New("item table header row not found")

// Role is the meaning of an item-table column.
type Role string

const (
	RoleSeq       Role = "seq"
	RoleName      Role = "name"
	RoleSpec      Role = "spec"
	RoleUnit      Role = "unit"
	RoleQty       Role = "qty"
	RoleUnitPrice Role = "unit_price"
	RoleSupply    Role = "supply"
	RoleVAT       Role = "vat"
	RoleGross     Role = "gross"
)

// HeaderMap is the detected item-table header.
type HeaderMap struct {
	// Row is the 1-based header row. The body starts at Row+1.
	Row int

	// Columns maps each discovered role to its 1-based column. Roles the
	// template does not have are absent.
	Columns map[Role]int
}

// Column returns the column for role.
func (h *HeaderMap) Column(role Role) (int, bool) {
	col, ok := h.Columns[role]
	return col, ok
}

// compiledRule is a ColumnRule with its terms normalized once.
type compiledRule struct {
	role     Role
	exact    []string
	contains []string
	prefix   []string
	fallback bool
}

func compileRules(rules []config.ColumnRule) []compiledRule {
	out := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		out = append(out, compiledRule{
			role:     Role(r.Role),
			exact:    normalizeAll(r.Exact),
			contains: normalizeAll(r.Contains),
			prefix:   normalizeAll(r.Prefix),
			fallback: r.Fallback,
		})
	}
	return out
}

func (r compiledRule) matches(text string) bool {
	for _, t := range r.exact {
		if text == t {
			return true
		}
	}
	for _, t := range r.contains {
		if strings.Contains(text, t) {
			return true
		}
	}
	for _, t := range r.prefix {
		if strings.HasPrefix(text, t) {
			return true
		}
	}
	return false
}

func normalizeAll(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if n := utils.NormalizeLabel(t); n != "" {
			out = append(out, n)
		}
	}
	return out
}

func containsAny(text string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}

// DetectHeader finds the item-table header row and maps its columns to roles.
//
// The header is the first row with a cell containing one of the header
// keywords. Each cell of that row is tested against the ordered column
// rules and takes the role of the first non-fallback rule it matches; when
// two cells claim a role the later one wins. Fallback rules (remarks as
// gross) only fill roles no cell claimed.
//
// RETURNS:
//   - The header map.
//   - ErrHeaderNotFound if no row qualifies.
func (s *Sheet) DetectHeader(rules config.TemplateRules) (*HeaderMap, error) {
	keywords := normalizeAll(rules.HeaderKeywords)
	compiled := compileRules(rules.Columns)

	headerRow := 0
	for _, c := range s.cells {
		if s.IsMerged(c) {
			continue
		}
		if containsAny(s.norm[c], keywords) {
			headerRow = c.Row
			break
		}
	}
	if headerRow == 0 {
		return nil, ErrHeaderNotFound
	}

	header := &HeaderMap{Row: headerRow, Columns: make(map[Role]int)}
	fallbacks := make(map[Role]int)

	for col := 1; col <= s.maxCol; col++ {
		text := s.norm[Cell{Col: col, Row: headerRow}]
		if text == "" {
			continue
		}

		for _, rule := range compiled {
			if !rule.matches(text) {
				continue
			}
			if rule.fallback {
				if _, seen := fallbacks[rule.role]; !seen {
					fallbacks[rule.role] = col
				}
				continue
			}
			header.Columns[rule.role] = col
			break
		}
	}

	for role, col := range fallbacks {
		if _, claimed := header.Columns[role]; !claimed {
			header.Columns[role] = col
		}
	}
	return header, nil
}

// FooterRow returns the first row after the header whose first probeCols
// cells contain a footer keyword, or 0 when none appears before limit.
func (s *Sheet) FooterRow(header *HeaderMap, rules config.TemplateRules) int {
	keywords := normalizeAll(rules.FooterKeywords)
	for row := header.Row + 1; row <= rules.BodyRowLimit; row++ {
		for col := 1; col <= rules.FooterProbeColumns; col++ {
			if containsAny(s.norm[Cell{Col: col, Row: row}], keywords) {
				return row
			}
		}
	}
	return 0
}
