package dataprocessing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salescli/pkg/contracts/domain"
)

func TestGenericParserAreaAndYearColumns(t *testing.T) {
	rows := map[int][]interface{}{
		6: append([]interface{}{"Territory", "Year"},
			"April", "May", "June", "July", "August", "September", "October", "November")}
	rows[7] = []interface{}{"NORTH ZONE", "2021-2022", 10, 20, 0, 40, 50, 60, 70, 80}
	rows[8] = []interface{}{"SOUTH ZONE", "2021-2022", 1, 2, 3, 4, 5, 6, 7, 8}
	wb := buildWorkbook(t, sheetSpec{name: "Regional", rows: rows})

	p := NewGenericParser(DefaultHeaderCandidates, discardLogger())
	records, err := p.Parse(context.Background(), wb, "Regional")
	require.NoError(t, err)

	// 7 north (June zero dropped) + 8 south.
	require.Len(t, records, 15)
	assert.Equal(t, "NORTH ZONE", records[0].Area)
	assert.Equal(t, "2021-2022", records[0].FiscalYear)
	assert.Equal(t, time.Date(2021, time.April, 1, 0, 0, 0, 0, time.UTC), records[0].Date)
}

func TestGenericParserSynthesizesAreaFromSheetName(t *testing.T) {
	rows := map[int][]interface{}{
		6: append([]interface{}{"FY"},
			"April", "May", "June", "July", "August", "September", "October", "November"),
		7: {"2021-22", 1, 2, 3, 4, 5, 6, 7, 8},
	}
	wb := buildWorkbook(t, sheetSpec{name: "Misc-Data", rows: rows})

	p := NewGenericParser(DefaultHeaderCandidates, discardLogger())
	records, err := p.Parse(context.Background(), wb, "Misc-Data")
	require.NoError(t, err)
	require.NotEmpty(t, records)
	for _, r := range records {
		assert.Equal(t, "FY_Misc_Data", r.Area)
	}
}

func TestGenericParserHarvestsParticularsArea(t *testing.T) {
	rows := map[int][]interface{}{
		6: append([]interface{}{"Particulars", "Year"},
			"April", "May", "June", "July", "August", "September", "October", "November"),
		7: {"MSD OUTSIDE KERALA", "2020-2021", 1, 2, 3, 4, 5, 6, 7, 8},
	}
	wb := buildWorkbook(t, sheetSpec{name: "Summary 2020", rows: rows})

	p := NewGenericParser(DefaultHeaderCandidates, discardLogger())
	records, err := p.Parse(context.Background(), wb, "Summary 2020")
	require.NoError(t, err)
	require.NotEmpty(t, records)
	assert.Equal(t, "MSD OUTSIDE KERALA", records[0].Area)
}

func TestGenericParserLayoutNotFound(t *testing.T) {
	wb := buildWorkbook(t, sheetSpec{
		name: "Notes",
		rows: map[int][]interface{}{0: {"random", "text"}},
	})

	p := NewGenericParser(DefaultHeaderCandidates, discardLogger())
	_, err := p.Parse(context.Background(), wb, "Notes")
	assert.ErrorIs(t, err, ErrLayoutNotFound)
}

func TestInferMissingDates(t *testing.T) {
	dated := domain.SalesRecord{
		Area: "A", FiscalYear: "2020-2021", Month: 4,
		Date: time.Date(2020, 4, 1, 0, 0, 0, 0, time.UTC), Sales: 1,
	}
	undated := domain.SalesRecord{Area: "A", FiscalYear: "2020-2021", Month: 1, Sales: 2}
	hopeless := domain.SalesRecord{Area: "A", FiscalYear: "??", Month: 5, Sales: 3}

	out := inferMissingDates([]domain.SalesRecord{dated, undated, hopeless})
	require.Len(t, out, 2)
	assert.Equal(t, time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC), out[1].Date)
}
