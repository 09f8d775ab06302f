// Package dataprocessing recovers long-format monthly sales records from
// inconsistently laid-out workbook sheets.
//
// A Workbook serves rectangular tables at caller-chosen header rows,
// cached so re-reading with a different header guess is cheap. The
// layout detector locates the header row by counting exact month-name
// columns, falling back to a content scan of the first rows.
//
// Sheets are dispatched through a Registry of SheetParser strategies in
// priority order:
//
//   - MonthlyComparisonParser: stacked area blocks, fixed header row 8,
//     an area cursor advanced by section-marker rows.
//   - ComparisonReportParser: one row per area, one column per fiscal
//     year, a single reporting month named in the headers.
//   - YearlyTerritoryParser: sheets named after a fiscal year, a
//     "ROUTE SALES" block of territory rows plus a whole-sheet second
//     pass for territories reported in other sections.
//   - GenericParser: general header detection, key-column guessing and
//     wide-to-long unpivoting for every other sheet.
//
// Parsers fail per sheet; a problem sheet never aborts the run.
package dataprocessing
