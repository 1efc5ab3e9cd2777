// =============================================================================
// Trade Documents - Numeral-to-Words Converter
// =============================================================================
//
// Renders an integer amount as Korean words for the legal-amount annotation
// on a quotation, e.g. 7040000 -> "칠백사만".
//
// RULES:
//   - The number is split into 4-digit groups from the right.
//   - Each group is read with 십/백/천 and suffixed with its magnitude word
//     (만, 억, 조, 경).
//   - Zero groups are omitted entirely.
//   - "일" is dropped before 십/백/천, and a group that is exactly 1 above
//     the lowest group reads as the bare magnitude word ("만", not "일만").
//   - Groups are joined with a single space.
//
// =============================================================================

package numwords

import "strings"

var (
	digits     = [...]string{"", "일", "이", "삼", "사", "오", "육", "칠", "팔", "구"}
	smallUnits = [...]string{"", "십", "백", "천"}
	bigUnits   = [...]string{"", "만", "억", "조", "경"}
)

// Zero is the word for 0.
const Zero = "영"

// Korean converts n to its Korean word form.
func Korean(n int64) string {
	if n == 0 {
		return Zero
	}
	if n < 0 {
		// -MinInt64 overflows; read it through its unsigned magnitude.
		return "마이너스 " + korean(uint64(-(n+1))+1)
	}
	return korean(uint64(n))
}

func korean(n uint64) string {
	var groups []string
	for pos := 0; n > 0; pos++ {
		four := int(n % 10000)
		n /= 10000
		if four == 0 {
			continue
		}
		groups = append(groups, readGroup(four, pos))
	}

	// groups were collected lowest first.
	for i, j := 0, len(groups)-1; i < j; i, j = i+1, j-1 {
		groups[i], groups[j] = groups[j], groups[i]
	}
	return strings.Join(groups, " ")
}

// readGroup reads a 1..9999 group at magnitude position pos.
func readGroup(four, pos int) string {
	big := bigUnitAt(pos)
	if four == 1 && pos > 0 {
		return big
	}

	var b strings.Builder
	for i := 3; i >= 0; i-- {
		d := four
		for k := 0; k < i; k++ {
			d /= 10
		}
		d %= 10
		if d == 0 {
			continue
		}
		if !(d == 1 && i > 0) {
			b.WriteString(digits[d])
		}
		b.WriteString(smallUnits[i])
	}
	b.WriteString(big)
	return b.String()
}

// bigUnitAt returns the magnitude word for a group position. Positions past
// 경 cannot occur for int64 amounts.
func bigUnitAt(pos int) string {
	if pos < len(bigUnits) {
		return bigUnits[pos]
	}
	return ""
}
