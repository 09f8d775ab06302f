package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// sheetSpec describes one fixture sheet as literal rows. Row and column
// positions are zero-based to match header-row indices in the parsers.
type sheetSpec struct {
	name string
	rows map[int][]interface{}
}

// buildWorkbook assembles an in-memory workbook from sheet specs and
// returns it opened through the package's Workbook wrapper.
func buildWorkbook(t *testing.T, sheets ...sheetSpec) *Workbook {
	t.Helper()

	f := excelize.NewFile()
	for i, spec := range sheets {
		if i == 0 {
			f.SetSheetName(f.GetSheetName(0), spec.name)
		} else {
			_, err := f.NewSheet(spec.name)
			require.NoError(t, err)
		}
		for rowIdx, cells := range spec.rows {
			cell, err := excelize.CoordinatesToCellName(1, rowIdx+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(spec.name, cell, &cells))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	wb, err := OpenWorkbook(buf.Bytes())
	require.NoError(t, err)
	t.Cleanup(func() { wb.Close() })
	return wb
}

// fiscalMonthHeaders returns the twelve month headers April..March with
// a leading label column.
func fiscalMonthHeaders(first string) []interface{} {
	return []interface{}{first,
		"April", "May", "June", "July", "August", "September",
		"October", "November", "December", "January", "February", "March",
	}
}
