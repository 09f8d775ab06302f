package services

import "time"

// DatasetSummary describes an ingested dataset at a glance.
type DatasetSummary struct {
	Records int            `json:"records"`
	Areas   []string       `json:"areas"`
	From    *time.Time     `json:"from,omitempty"`
	To      *time.Time     `json:"to,omitempty"`
	Sheets  []SheetOutcome `json:"sheets"`
}

// Summarize condenses an ingest result for API responses and logs.
func Summarize(result *IngestResult) DatasetSummary {
	summary := DatasetSummary{
		Records: result.Dataset.Len(),
		Areas:   result.Dataset.Areas(),
		Sheets:  result.Sheets,
	}
	if from, to, ok := result.Dataset.DateRange(); ok {
		summary.From = &from
		summary.To = &to
	}
	return summary
}
