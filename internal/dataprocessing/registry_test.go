package dataprocessing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryDispatch(t *testing.T) {
	r := NewRegistry(RegistryOptions{}, discardLogger())

	tests := []struct {
		sheet string
		want  string
	}{
		{"MONTHLY COMPARISON 2024-25", "monthly_comparison"},
		{"Monthly Comparison", "monthly_comparison"},
		{"COMPARISON REPORT", "comparison_report"},
		{"2023-2024", "yearly_territory"},
		{"2018-19", "yearly_territory"},
		{"Sheet1", "generic"},
		{"Territory Summary", "generic"},
	}

	for _, tt := range tests {
		t.Run(tt.sheet, func(t *testing.T) {
			assert.Equal(t, tt.want, r.ParserFor(tt.sheet).Name())
		})
	}
}

func TestRegistryParseReportsParserName(t *testing.T) {
	wb := buildWorkbook(t, sheetSpec{
		name: "2023-2024",
		rows: map[int][]interface{}{
			6: fiscalMonthHeaders("Particulars"),
			7: {"ROUTE SALES"},
			8: {"TRIVANDRUM", 100000},
		},
	})

	r := NewRegistry(RegistryOptions{}, discardLogger())
	records, parserName, err := r.Parse(context.Background(), wb, "2023-2024")
	require.NoError(t, err)
	assert.Equal(t, "yearly_territory", parserName)
	require.Len(t, records, 1)
	assert.Equal(t, "TRIVANDRUM", records[0].Area)
}
