// Package fiscal holds the calendar and naming conventions shared by the
// sheet parsers: the month-name table, fiscal-year label parsing under
// the April-to-March convention, and canonicalization of area labels
// against the fixed territory list.
//
// All lookup tables are immutable package data with no lifecycle beyond
// process start.
package fiscal
