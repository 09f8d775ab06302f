package services

import "errors"

// Ingest errors
var (
	ErrEmptyDataset = errors.New("no sales records recovered from workbook")
	ErrNoSheets     = errors.New("workbook has no usable sheets")
	ErrInvalidInput = errors.New("invalid input")
)

// Forecast errors
var (
	ErrNoSeries        = errors.New("no series to forecast")
	ErrInvalidHorizon  = errors.New("forecast horizon out of range")
	ErrInvalidGrouping = errors.New("unknown grouping mode")
)
