package services

import (
	"context"
	"log/slog"

	"salescli/internal/dataprocessing"
	"salescli/internal/fiscal"
	"salescli/pkg/contracts/domain"
)

// DefaultExcludedSheets are workbook tabs that carry stale or template
// data and are never parsed.
var DefaultExcludedSheets = []string{
	"2017-2018",
	"2018-2019 (Old)",
	"Sheet1",
	"Sheet2",
	"Sheet3",
}

// SheetOutcome records what happened to one workbook sheet during
// ingestion.
type SheetOutcome struct {
	Sheet    string `json:"sheet"`
	Parser   string `json:"parser,omitempty"`
	Records  int    `json:"records"`
	Excluded bool   `json:"excluded,omitempty"`
	Error    string `json:"error,omitempty"`
}

// IngestResult is the outcome of parsing a full workbook.
type IngestResult struct {
	Dataset domain.Dataset `json:"-"`
	Sheets  []SheetOutcome `json:"sheets"`
}

// IngestService turns raw workbook bytes into a long-format dataset.
// Sheets that fail to parse are logged and skipped rather than failing
// the run, since real exports routinely carry a few malformed tabs.
type IngestService struct {
	registry *dataprocessing.Registry
	excluded map[string]struct{}
	logger   *slog.Logger
	metrics  *Metrics
}

// IngestOptions configures workbook ingestion.
type IngestOptions struct {
	// ExcludedSheets are skipped without parsing. Nil means the
	// default exclusion list; an empty non-nil slice excludes nothing.
	ExcludedSheets []string
	// Resolver overrides the territory canonicalizer.
	Resolver *fiscal.Resolver
	// HeaderCandidates overrides the generic parser's header rows.
	HeaderCandidates []int
	Metrics          *Metrics
}

// NewIngestService builds an ingest service around a parser registry.
func NewIngestService(opts IngestOptions, logger *slog.Logger) *IngestService {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "ingest")

	excluded := opts.ExcludedSheets
	if excluded == nil {
		excluded = DefaultExcludedSheets
	}
	excludedSet := make(map[string]struct{}, len(excluded))
	for _, name := range excluded {
		excludedSet[name] = struct{}{}
	}

	registry := dataprocessing.NewRegistry(dataprocessing.RegistryOptions{
		Resolver:         opts.Resolver,
		HeaderCandidates: opts.HeaderCandidates,
	}, logger)

	return &IngestService{
		registry: registry,
		excluded: excludedSet,
		logger:   logger,
		metrics:  opts.Metrics,
	}
}

// Ingest parses every non-excluded sheet of the workbook and
// concatenates the recovered records. It fails only when the workbook
// cannot be opened or yields no records at all.
func (s *IngestService) Ingest(ctx context.Context, data []byte) (*IngestResult, error) {
	wb, err := dataprocessing.OpenWorkbook(data)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	sheets := wb.SheetNames()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}

	result := &IngestResult{}
	for _, sheet := range sheets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		records, outcome := s.ingestSheet(ctx, wb, sheet)
		result.Dataset.Records = append(result.Dataset.Records, records...)
		result.Sheets = append(result.Sheets, outcome)
		s.logger.InfoContext(ctx, "sheet processed",
			slog.String("sheet", sheet),
			slog.String("parser", outcome.Parser),
			slog.Int("records", outcome.Records),
			slog.Bool("excluded", outcome.Excluded))
	}

	if result.Dataset.Empty() {
		return nil, ErrEmptyDataset
	}
	s.metrics.recordsIngested(result.Dataset.Len())
	return result, nil
}

func (s *IngestService) ingestSheet(ctx context.Context, wb *dataprocessing.Workbook, sheet string) ([]domain.SalesRecord, SheetOutcome) {
	if _, skip := s.excluded[sheet]; skip {
		s.metrics.sheetSkipped()
		return nil, SheetOutcome{Sheet: sheet, Excluded: true}
	}

	records, parser, err := s.registry.Parse(ctx, wb, sheet)
	if err != nil {
		s.logger.WarnContext(ctx, "sheet parse failed",
			slog.String("sheet", sheet),
			slog.String("parser", parser),
			slog.String("error", err.Error()))
		s.metrics.sheetSkipped()
		return nil, SheetOutcome{Sheet: sheet, Parser: parser, Error: err.Error()}
	}

	s.metrics.sheetParsed(parser)
	return records, SheetOutcome{Sheet: sheet, Parser: parser, Records: len(records)}
}
