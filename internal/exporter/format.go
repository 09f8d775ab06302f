package exporter

import (
	"strconv"
	"strings"
)

// FormatLakhs renders a lakh amount for display, e.g. "₹1,234.5L".
// Amounts are expected in lakhs already, matching the report rows.
func FormatLakhs(lakhs float64) string {
	s := strconv.FormatFloat(lakhs, 'f', 1, 64)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, d := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return "₹" + sign + b.String() + "." + frac + "L"
}
