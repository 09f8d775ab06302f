package fiscal

import (
	"strings"
)

// monthTokens lists the lowercase month tokens (full names and common
// abbreviations, including the irregular "sept") in fiscal order, full
// names before abbreviations. The substring fallback in HeaderMonth
// walks this slice in order so resolution is deterministic.
var monthTokens = []struct {
	token string
	month int
}{
	{"april", 4}, {"apr", 4},
	{"may", 5},
	{"june", 6}, {"jun", 6},
	{"july", 7}, {"jul", 7},
	{"august", 8}, {"aug", 8},
	{"september", 9}, {"sept", 9}, {"sep", 9},
	{"october", 10}, {"oct", 10},
	{"november", 11}, {"nov", 11},
	{"december", 12}, {"dec", 12},
	{"january", 1}, {"jan", 1},
	{"february", 2}, {"feb", 2},
	{"march", 3}, {"mar", 3},
}

// monthsByToken indexes monthTokens for exact lookups.
var monthsByToken = func() map[string]int {
	m := make(map[string]int, len(monthTokens))
	for _, t := range monthTokens {
		m[t.token] = t.month
	}
	return m
}()

// fullMonthNames holds the twelve expected month-column headers in
// fiscal order (April first), as they appear on the known sheet layouts.
var fullMonthNames = []string{
	"April", "May", "June", "July", "August", "September",
	"October", "November", "December", "January", "February", "March",
}

// MonthNames returns the twelve full month names in fiscal order
// (April through March). The slice is a copy and safe to modify.
func MonthNames() []string {
	out := make([]string, len(fullMonthNames))
	copy(out, fullMonthNames)
	return out
}

// MonthNumber resolves a month name or abbreviation to its number 1-12.
// Matching is case-insensitive; ok is false for unknown tokens.
func MonthNumber(token string) (int, bool) {
	n, ok := monthsByToken[strings.ToLower(strings.TrimSpace(token))]
	return n, ok
}

// NormalizeHeader lowercases a column header and collapses the
// separators ". - _" and runs of whitespace to single spaces, so month
// tokens can be compared regardless of the sheet's formatting.
func NormalizeHeader(header string) string {
	key := strings.ToLower(strings.TrimSpace(header))
	for _, sep := range []string{".", "-", "_"} {
		key = strings.ReplaceAll(key, sep, " ")
	}
	return strings.Join(strings.Fields(key), " ")
}

// HeaderMonth resolves the month number of a column header. The trailing
// whitespace-split token is tried first (headers like "FY April"), then
// every token, then a substring scan over known month tokens. ok is
// false when the header carries no recognizable month.
func HeaderMonth(header string) (int, bool) {
	key := NormalizeHeader(header)
	parts := strings.Fields(key)
	if len(parts) == 0 {
		return 0, false
	}
	if n, ok := monthsByToken[parts[len(parts)-1]]; ok {
		return n, true
	}
	for _, tok := range parts {
		if n, ok := monthsByToken[tok]; ok {
			return n, true
		}
	}
	for _, t := range monthTokens {
		if strings.Contains(key, t.token) {
			return t.month, true
		}
	}
	return 0, false
}

// ContainsMonthName reports whether the text mentions any month name.
// Used by the brute-force header scan, which inspects raw cell contents
// rather than parsed column headers.
func ContainsMonthName(text string) bool {
	key := strings.ToLower(text)
	for _, name := range fullMonthNames {
		if strings.Contains(key, strings.ToLower(name)) {
			return true
		}
	}
	return false
}

// FiscalOrder returns the position 0-11 of a month number in the fiscal
// April-to-March cycle. April is 0, March is 11.
func FiscalOrder(month int) int {
	return (month + 8) % 12
}
