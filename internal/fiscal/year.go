package fiscal

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// The fiscal year runs April through March and is labeled by its
// starting calendar year, e.g. "2018-2019", "2018-19", "FY 2018".

var fourDigitYear = regexp.MustCompile(`(20\d{2})`)

// StartYear extracts the starting calendar year from a fiscal-year
// label. The first 4-digit token beginning with "20" wins; otherwise a
// bare number below 2000 is folded into the 2000s. ok is false when the
// label yields no usable year.
func StartYear(label string) (int, bool) {
	s := strings.TrimSpace(label)
	if m := fourDigitYear.FindString(s); m != "" {
		y, _ := strconv.Atoi(m)
		return y, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	y := int(f)
	if y < 2000 {
		y = 2000 + (y % 100)
	}
	return y, true
}

// CalendarMonth places a month number into the calendar given the fiscal
// year's starting year. April through December fall in the starting
// year; January through March fall in the following year.
func CalendarMonth(startYear, month int) time.Time {
	year := startYear
	if month <= 3 {
		year = startYear + 1
	}
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
}

// LooksLikeFiscalYear reports whether text resembles a fiscal-year label:
// it contains a hyphen and at least one digit, like "2018-2019".
func LooksLikeFiscalYear(text string) bool {
	if !strings.Contains(text, "-") {
		return false
	}
	return strings.IndexFunc(text, func(r rune) bool { return r >= '0' && r <= '9' }) >= 0
}
