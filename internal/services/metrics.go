package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics aggregates the pipeline's Prometheus collectors. A nil
// *Metrics is valid and records nothing, which keeps tests quiet.
type Metrics struct {
	SheetsParsed      *prometheus.CounterVec
	SheetsSkipped     prometheus.Counter
	RecordsIngested   prometheus.Counter
	ForecastsByMethod *prometheus.CounterVec
	ForecastDuration  prometheus.Histogram
}

// NewMetrics registers the pipeline collectors with the given
// registerer, or the default one when nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		SheetsParsed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salescli",
			Subsystem: "ingest",
			Name:      "sheets_parsed_total",
			Help:      "Sheets successfully parsed, by parser strategy.",
		}, []string{"parser"}),
		SheetsSkipped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "salescli",
			Subsystem: "ingest",
			Name:      "sheets_skipped_total",
			Help:      "Sheets excluded or failed during parsing.",
		}),
		RecordsIngested: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "salescli",
			Subsystem: "ingest",
			Name:      "records_total",
			Help:      "Long-format sales records recovered from workbooks.",
		}),
		ForecastsByMethod: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salescli",
			Subsystem: "forecast",
			Name:      "models_total",
			Help:      "Forecasts produced, by model method.",
		}, []string{"method"}),
		ForecastDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "salescli",
			Subsystem: "forecast",
			Name:      "duration_seconds",
			Help:      "Wall time of a full forecast run.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) sheetParsed(parser string) {
	if m != nil {
		m.SheetsParsed.WithLabelValues(parser).Inc()
	}
}

func (m *Metrics) sheetSkipped() {
	if m != nil {
		m.SheetsSkipped.Inc()
	}
}

func (m *Metrics) recordsIngested(n int) {
	if m != nil {
		m.RecordsIngested.Add(float64(n))
	}
}

func (m *Metrics) forecastProduced(method string) {
	if m != nil {
		m.ForecastsByMethod.WithLabelValues(method).Inc()
	}
}

func (m *Metrics) observeForecastDuration(seconds float64) {
	if m != nil {
		m.ForecastDuration.Observe(seconds)
	}
}
