// Package exporter serializes forecast runs into downloadable report
// artifacts. BuildReport produces the row model, WriteXLSX renders the
// four-sheet workbook, and the CSV writers stream flat extracts.
package exporter
