package dataprocessing

import (
	"context"
	"log/slog"
	"strings"

	"salescli/internal/fiscal"
	"salescli/pkg/contracts/domain"
)

// SheetParser extracts long-format sales records from one sheet of a
// known layout archetype.
type SheetParser interface {
	// Name identifies the parser in logs and parse outcomes.
	Name() string
	// Matches reports whether this parser handles the named sheet.
	Matches(sheetName string) bool
	// Parse reads the sheet and emits its records. A parser returning
	// an error only fails its own sheet, never the whole run.
	Parse(ctx context.Context, wb *Workbook, sheetName string) ([]domain.SalesRecord, error)
}

// Registry dispatches sheets to parsers in priority order: the named
// archetypes first, the generic detector last.
type Registry struct {
	parsers []SheetParser
	logger  *slog.Logger
}

// RegistryOptions configures parser construction.
type RegistryOptions struct {
	Resolver         *fiscal.Resolver
	HeaderCandidates []int
}

// NewRegistry builds the standard parser chain.
func NewRegistry(opts RegistryOptions, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	resolver := opts.Resolver
	if resolver == nil {
		resolver = fiscal.NewResolver()
	}
	candidates := opts.HeaderCandidates
	if len(candidates) == 0 {
		candidates = DefaultHeaderCandidates
	}
	return &Registry{
		logger: logger,
		parsers: []SheetParser{
			NewMonthlyComparisonParser(logger),
			NewComparisonReportParser(resolver, logger),
			NewYearlyTerritoryParser(resolver, logger),
			NewGenericParser(candidates, logger),
		},
	}
}

// ParserFor returns the first parser claiming the sheet. The generic
// parser matches everything, so a parser is always found.
func (r *Registry) ParserFor(sheetName string) SheetParser {
	for _, p := range r.parsers {
		if p.Matches(sheetName) {
			return p
		}
	}
	return r.parsers[len(r.parsers)-1]
}

// Parse dispatches one sheet and returns its records plus the name of
// the parser that handled it.
func (r *Registry) Parse(ctx context.Context, wb *Workbook, sheetName string) ([]domain.SalesRecord, string, error) {
	parser := r.ParserFor(sheetName)
	records, err := parser.Parse(ctx, wb, sheetName)
	return records, parser.Name(), err
}

// isYearlySheetName reports whether a sheet name is itself a fiscal-year
// label, like "2023-2024".
func isYearlySheetName(name string) bool {
	return fiscal.LooksLikeFiscalYear(name)
}

// sheetNameContains is a case-insensitive substring test on sheet names.
func sheetNameContains(name, needle string) bool {
	return strings.Contains(strings.ToUpper(name), needle)
}
