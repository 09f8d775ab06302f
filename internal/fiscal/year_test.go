package fiscal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartYear(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  int
		ok    bool
	}{
		{"full range label", "2018-2019", 2018, true},
		{"short range label", "2018-19", 2018, true},
		{"bare year", "2020", 2020, true},
		{"prefixed label", "FY 2021-22", 2021, true},
		{"two digit fallback", "19", 2019, true},
		{"float formatted year", "2018.0", 2018, true},
		{"garbage", "PARTICULARS", 0, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := StartYear(tt.label)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

// TestCalendarMonth verifies the fiscal placement rule: April-December
// fall in the starting year, January-March in the following year.
func TestCalendarMonth(t *testing.T) {
	tests := []struct {
		name      string
		startYear int
		month     int
		wantYear  int
	}{
		{"april stays in start year", 2020, 4, 2020},
		{"december stays in start year", 2020, 12, 2020},
		{"january rolls over", 2020, 1, 2021},
		{"march rolls over", 2020, 3, 2021},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalendarMonth(tt.startYear, tt.month)
			assert.Equal(t, tt.wantYear, got.Year())
			assert.Equal(t, time.Month(tt.month), got.Month())
			assert.Equal(t, 1, got.Day())
		})
	}
}

func TestCalendarMonthFromLabel(t *testing.T) {
	// Fiscal label "2020-2021" with January must land on 2021-01-01.
	y, ok := StartYear("2020-2021")
	require.True(t, ok)
	m, ok := MonthNumber("January")
	require.True(t, ok)
	assert.Equal(t, time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC), CalendarMonth(y, m))
}

func TestLooksLikeFiscalYear(t *testing.T) {
	assert.True(t, LooksLikeFiscalYear("2018-2019"))
	assert.True(t, LooksLikeFiscalYear("FY-19"))
	assert.False(t, LooksLikeFiscalYear("KERALA"))
	assert.False(t, LooksLikeFiscalYear("APRIL-MAY"))
}
