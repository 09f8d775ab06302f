package series

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salescli/pkg/contracts/domain"
)

func month(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func TestGroupKey(t *testing.T) {
	rec := domain.SalesRecord{Area: "KOLLAM", State: "KERALA"}
	noState := domain.SalesRecord{Area: "ZONE X"}

	tests := []struct {
		name string
		mode GroupingMode
		rec  domain.SalesRecord
		want string
	}{
		{"by area", GroupByArea, rec, "KOLLAM"},
		{"by state area", GroupByStateArea, rec, "KERALA - KOLLAM"},
		{"missing state becomes NA", GroupByStateArea, noState, "NA - ZONE X"},
		{"collapsed", GroupAll, rec, "All"},
		{"empty area sentinel", GroupByArea, domain.SalesRecord{}, domain.AreaUnspecified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.mode.GroupKey(tt.rec))
		})
	}
}

func TestBuildSumsDuplicatesAndScales(t *testing.T) {
	dataset := domain.Dataset{Records: []domain.SalesRecord{
		{Area: "KOLLAM", Date: month(2023, time.April), Sales: 100000, SourceSheet: "a"},
		{Area: "KOLLAM", Date: month(2023, time.April), Sales: 50000, SourceSheet: "b"},
		{Area: "KOLLAM", Date: month(2023, time.May), Sales: 200000},
		{Area: "KOLLAM", Month: 6, Sales: 999}, // no date: skipped
	}}

	built := Build(dataset, GroupByArea)
	require.Len(t, built, 1)
	s := built[0]
	assert.Equal(t, "KOLLAM", s.Key)
	require.Len(t, s.Points, 2)
	// Duplicates summed across sheets, then scaled to lakhs.
	assert.InDelta(t, 1.5, s.Points[0].Value, 1e-9)
	assert.InDelta(t, 2.0, s.Points[1].Value, 1e-9)
}

func TestBuildSortedByKey(t *testing.T) {
	dataset := domain.Dataset{Records: []domain.SalesRecord{
		{Area: "THRISSUR", Date: month(2023, time.April), Sales: 1},
		{Area: "ALAPPUZHA", Date: month(2023, time.April), Sales: 1},
	}}
	built := Build(dataset, GroupByArea)
	require.Len(t, built, 2)
	assert.Equal(t, "ALAPPUZHA", built[0].Key)
	assert.Equal(t, "THRISSUR", built[1].Key)
}

func TestResampleFillsGaps(t *testing.T) {
	points := []domain.MonthPoint{
		{Date: month(2023, time.April), Value: 10},
		{Date: month(2023, time.July), Value: 40},
	}

	out := Resample(points)
	require.Len(t, out, 4)
	// Interior gap forward-fills the prior value.
	assert.Equal(t, 10.0, out[1].Value)
	assert.Equal(t, 10.0, out[2].Value)
	assert.Equal(t, 40.0, out[3].Value)

	// Gap-free: consecutive month starts, no holes.
	for i := 1; i < len(out); i++ {
		assert.Equal(t, domain.NextMonth(out[i-1].Date), out[i].Date)
	}
}

func TestResampleEmptyAndSingle(t *testing.T) {
	assert.Nil(t, Resample(nil))

	out := Resample([]domain.MonthPoint{{Date: month(2024, time.January), Value: 5}})
	require.Len(t, out, 1)
	assert.Equal(t, 5.0, out[0].Value)
}

func TestLakhsRoundTrip(t *testing.T) {
	assert.Equal(t, 1.0, ToLakhs(100000))
	assert.Equal(t, 100000.0, FromLakhs(1.0))
	assert.Equal(t, 250000.0, FromLakhs(ToLakhs(250000)))
}
