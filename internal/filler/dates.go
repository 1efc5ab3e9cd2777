package filler

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/hobbybrown/tradedocs/internal/locator"
	"github.com/hobbybrown/tradedocs/internal/validation"
)

// formatDate renders an ISO date for a date label. A date that does not
// parse is written as given.
func formatDate(iso, format string) string {
	if format != "korean" {
		return iso
	}
	t, err := time.Parse(validation.DateLayout, iso)
	if err != nil {
		return iso
	}
	return koreanDate(t)
}

func koreanDate(t time.Time) string {
	return fmt.Sprintf("%d년 %d월 %d일", t.Year(), int(t.Month()), t.Day())
}

// fillDates writes the supply date into the first free cell right of every
// date label. A cell matching several labels takes the format of the first.
func (j *job) fillDates() error {
	seen := make(map[locator.Cell]bool)
	for _, dl := range j.rules.DateLabels {
		value := formatDate(j.info.SupplyDate, dl.Format)
		for _, c := range j.sheet.Find(dl.Label, locator.MatchContains) {
			if seen[c] {
				continue
			}
			seen[c] = true

			target, ok := j.sheet.RightOf(c, false)
			if !ok {
				continue
			}
			if err := j.sheet.Set(target, value); err != nil {
				return err
			}
		}
	}
	return nil
}

// Statement templates print the date without a label, either as one cell
// ("2024년 8월 20일") or split over cells ("2024년", "8월", "20일").
// Single-part cells must carry digits so words such as "공급일" are left
// alone.
var (
	yearCellRe  = regexp.MustCompile(`^\d+\s*년$`)
	monthCellRe = regexp.MustCompile(`^\d+\s*월$`)
	dayCellRe   = regexp.MustCompile(`^\d+\s*일$`)
	fullDateRe  = regexp.MustCompile(`^\d*\s*년\s*\d*\s*월\s*\d*\s*일$`)
	digitsRe    = regexp.MustCompile(`\d+`)
)

// fillKoreanDates rewrites the label-less date cells in the top rows of the
// sheet to the supply date.
func (j *job) fillKoreanDates() error {
	t, err := time.Parse(validation.DateLayout, j.info.SupplyDate)
	if err != nil {
		// nothing sensible to write; validation reports the date
		return nil
	}

	for _, c := range j.sheet.Cells() {
		if c.Row > j.rules.KoreanDateRows {
			break
		}

		text := strings.TrimSpace(j.sheet.Text(c))
		var value string
		switch {
		case fullDateRe.MatchString(text):
			value = koreanDate(t)
		case yearCellRe.MatchString(text):
			value = digitsRe.ReplaceAllString(text, fmt.Sprint(t.Year()))
		case monthCellRe.MatchString(text):
			value = digitsRe.ReplaceAllString(text, fmt.Sprint(int(t.Month())))
		case dayCellRe.MatchString(text):
			value = digitsRe.ReplaceAllString(text, fmt.Sprint(t.Day()))
		default:
			continue
		}

		if err := j.sheet.Set(c, value); err != nil {
			return err
		}
	}
	return nil
}
